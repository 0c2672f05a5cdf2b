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

// Gap16Count0Penalty is the suggested failure weight for gap16_count0.
const Gap16Count0Penalty = 2.0

// Gap16Count0Test is the gap test specialized to 16-bit words: a "hit" is
// a drawn 16-bit word equal to zero (probability 2^-16), and the gap
// between consecutive zero-words is tabulated and chi-squared tested
// against the geometric distribution the uniform-word null predicts,
// exactly as GapTest does for the unit-interval formulation but counting
// whole zero words instead of sub-interval membership.
func Gap16Count0Test(nHits int) result.TestDescription {
	const alpha = 1.0 / 65536
	const cells = 20
	return result.TestDescription{
		Name:    "gap16_count0",
		Penalty: Gap16Count0Penalty,
		Run: func(in *generator.Instance) result.TestResult {
			var obs [cells]int
			hits := 0
			gap := 0
			bitsLeft := 0
			var acc uint64
			width := in.Descriptor.NBits
			for hits < nHits {
				if bitsLeft < 16 {
					acc = acc<<uint(width) | in.Next()
					bitsLeft += width
				}
				word := uint16(acc >> uint(bitsLeft-16))
				bitsLeft -= 16
				if word == 0 {
					cell := gap
					if cell >= cells {
						cell = cells - 1
					}
					obs[cell]++
					hits++
					gap = 0
				} else {
					gap++
				}
			}
			chi2 := 0.0
			for i, o := range obs {
				p := gapCellProbability(i, cells, alpha)
				expected := float64(nHits) * p
				if expected <= 0 {
					continue
				}
				d := float64(o) - expected
				chi2 += d * d / expected
			}
			pval := specfn.ChiSquareCCDF(chi2, cells-1)
			return result.TestResult{Name: "gap16_count0", X: chi2, P: pval, Penalty: Gap16Count0Penalty}
		},
	}
}
