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

// ModThreePenalty is the suggested failure weight for mod3.
const ModThreePenalty = 2.0

// ModThreeTest draws n words and tabulates each value's residue mod 3
// into a 3-cell histogram, chi-squared tested against the near-uniform
// distribution a native-width uniform value induces mod 3.
func ModThreeTest(n uint64) result.TestDescription {
	return result.TestDescription{
		Name:    "mod3",
		Penalty: ModThreePenalty,
		Run: func(in *generator.Instance) result.TestResult {
			width := in.Descriptor.NBits
			var hist [3]int
			for i := uint64(0); i < n; i++ {
				hist[in.Next()%3]++
			}
			probs := mod3CellProbabilities(width)
			chi2 := 0.0
			for i, o := range hist {
				expected := float64(n) * probs[i]
				d := float64(o) - expected
				chi2 += d * d / expected
			}
			p := specfn.ChiSquareCCDF(chi2, 2)
			return result.TestResult{Name: "mod3", X: chi2, P: p, Penalty: ModThreePenalty}
		},
	}
}

// mod3CellProbabilities returns P(v mod 3 == 0), P(==1), P(==2) for v
// uniform over [0, 2^width). 2^width is never itself a multiple of 3 for
// width >= 1, so the three residues are not perfectly equiprobable; the
// exact counts (rather than a blanket 1/3) avoid a systematic bias in the
// expected frequencies.
func mod3CellProbabilities(width int) [3]float64 {
	if width >= 64 {
		// 2^64 mod 3 == 1, since 2^2 == 1 (mod 3) and 64 is even; the
		// total itself overflows uint64, so this case is hard-coded.
		const total = 18446744073709551616.0 // 2^64, exact in float64
		return [3]float64{
			(total + 2) / 3 / total,
			(total - 1) / 3 / total,
			(total - 1) / 3 / total,
		}
	}
	total := uint64(1) << uint(width)
	base := total / 3
	rem := total % 3
	var counts [3]uint64
	for i := uint64(0); i < 3; i++ {
		counts[i] = base
	}
	for i := uint64(0); i < rem; i++ {
		counts[i]++
	}
	var probs [3]float64
	for i := range probs {
		probs[i] = float64(counts[i]) / float64(total)
	}
	return probs
}
