// Copyright (c) 2024-2026 SmokeRand Authors
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.

package stattest

import (
	"github.com/smokerand/smokerand/battery/result"
	"github.com/smokerand/smokerand/generator"
	"github.com/smokerand/smokerand/specfn"
)

// SumCollectorPenalty is the suggested failure weight for sumcollector.
const SumCollectorPenalty = 2.0

// SumCollectorTest runs nTrials independent trials, each summing
// sampleSize drawn words with native wraparound, and tabulates the low 16
// bits of each trial's final sum into a chi-squared goodness-of-fit test
// against the uniform distribution a well-mixed accumulator predicts.
func SumCollectorTest(sampleSize uint64, nTrials int) result.TestDescription {
	return result.TestDescription{
		Name:    "sumcollector",
		Penalty: SumCollectorPenalty,
		Run: func(in *generator.Instance) result.TestResult {
			const cells = 1 << 16
			hist := make([]int, cells)
			for t := 0; t < nTrials; t++ {
				var sum uint64
				for i := uint64(0); i < sampleSize; i++ {
					sum += in.Next()
				}
				hist[sum&(cells-1)]++
			}
			expected := float64(nTrials) / cells
			chi2 := 0.0
			for _, o := range hist {
				d := float64(o) - expected
				chi2 += d * d / expected
			}
			p := specfn.ChiSquareCCDF(chi2, cells-1)
			return result.TestResult{Name: "sumcollector", X: chi2, P: p, Penalty: SumCollectorPenalty}
		},
	}
}
