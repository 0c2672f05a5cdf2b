// Copyright (c) 2024-2026 SmokeRand Authors
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.

package stattest

import (
	"math"

	"github.com/smokerand/smokerand/battery/result"
	"github.com/smokerand/smokerand/generator"
	"github.com/smokerand/smokerand/specfn"
)

// UnitSpherePenalty is the suggested failure weight for unitsphere.
const UnitSpherePenalty = 2.0

// UnitSphereTest draws n random points uniformly in the d-dimensional
// cube [-1,1]^d, estimates the volume of the unit ball by the fraction
// landing inside it, and compares the estimate to the closed-form volume
// via a normal approximation to the underlying Bernoulli proportion.
func UnitSphereTest(d int, n uint64) result.TestDescription {
	return result.TestDescription{
		Name:    "unitsphere",
		Penalty: UnitSpherePenalty,
		Run: func(in *generator.Instance) result.TestResult {
			inside := uint64(0)
			for i := uint64(0); i < n; i++ {
				sum := 0.0
				for k := 0; k < d; k++ {
					u := 2*randUnit(in) - 1
					sum += u * u
				}
				if sum <= 1 {
					inside++
				}
			}
			pHat := float64(inside) / float64(n)
			cubeVolume := math.Pow(2, float64(d))
			ballVolume := unitBallVolume(d)
			pTheory := ballVolume / cubeVolume
			sigma := math.Sqrt(pTheory * (1 - pTheory) / float64(n))
			x := (pHat - pTheory) / sigma
			p := 2 * specfn.NormalCCDF(math.Abs(x))
			return result.TestResult{Name: "unitsphere", X: x, P: p, Penalty: UnitSpherePenalty}
		},
	}
}

// unitBallVolume returns the volume of the unit ball in R^d via the
// standard closed form V_d = pi^(d/2) / Gamma(d/2 + 1).
func unitBallVolume(d int) float64 {
	logV := float64(d)/2*math.Log(math.Pi) - specfn.LGamma(float64(d)/2+1)
	return math.Exp(logV)
}
