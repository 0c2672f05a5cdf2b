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

// GapPenalty is the suggested failure weight for the gap test.
const GapPenalty = 4.0

// GapTest implements Knuth's gap test on the sub-interval [0, 2^-shl) of
// the unit interval: draws landing in the interval are "hits"; the gap
// length between consecutive hits follows a known geometric-family
// distribution, tabulated here into a fixed number of cells and compared
// by chi-squared.
//
// shl selects the sub-interval width (alpha = 2^-shl); nHits is the number
// of hits (gaps) to record, and draws continue until that many are found.
func GapTest(shl uint, nHits int) result.TestDescription {
	return result.TestDescription{
		Name:    "gap",
		Penalty: GapPenalty,
		Run: func(in *generator.Instance) result.TestResult {
			alpha := 1.0 / float64(uint64(1)<<shl)
			const cells = 20
			var obs [cells]int
			hits := 0
			gap := 0
			for hits < nHits {
				u := unitInterval(in)
				if u < alpha {
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
			return result.TestResult{Name: "gap", X: chi2, P: pval, Penalty: GapPenalty}
		},
	}
}

// gapCellProbability returns P(gap length == i) for i < cells-1, and
// P(gap length >= cells-1) for the final, catch-all cell, under the
// geometric distribution with success probability alpha that the gap test
// predicts under H0.
func gapCellProbability(i, cells int, alpha float64) float64 {
	if i < cells-1 {
		return alpha * pow1MinusAlpha(alpha, i)
	}
	return pow1MinusAlpha(alpha, cells-1)
}

func pow1MinusAlpha(alpha float64, n int) float64 {
	v := 1.0
	base := 1 - alpha
	for i := 0; i < n; i++ {
		v *= base
	}
	return v
}
