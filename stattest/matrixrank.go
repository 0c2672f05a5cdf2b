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

// MatrixRankPenalty is the suggested failure weight for matrixrank.
const MatrixRankPenalty = 0.25

// gf2Rank computes the rank over GF(2) of a square bit matrix given as
// rows of equal-width bit vectors, via Gaussian elimination with XOR.
func gf2Rank(rows []uint64, width int) int {
	m := append([]uint64(nil), rows...)
	rank := 0
	for col := width - 1; col >= 0 && rank < len(m); col-- {
		pivot := -1
		mask := uint64(1) << uint(col)
		for r := rank; r < len(m); r++ {
			if m[r]&mask != 0 {
				pivot = r
				break
			}
		}
		if pivot == -1 {
			continue
		}
		m[rank], m[pivot] = m[pivot], m[rank]
		for r := 0; r < len(m); r++ {
			if r != rank && m[r]&mask != 0 {
				m[r] ^= m[rank]
			}
		}
		rank++
	}
	return rank
}

// MatrixRankTest implements the GF(2) binary matrix rank test: draws
// dim*dim bits, forms a dim x dim matrix, computes its rank, and
// chi-squared tests the observed distribution of full-rank / rank-minus-1
// / lower-rank matrices over nMatrices trials against Kovalenko's
// asymptotic rank probabilities (see matrixRankProbabilities).
//
// high selects between the low-order and high-order matrix variant: both
// drive the identical rank statistic over different slices of the stream,
// so the boolean only changes which bits are fed into gf2Rank.
func MatrixRankTest(dim int, nMatrices int, high bool) result.TestDescription {
	name := "matrixrank_low"
	if high {
		name = "matrixrank_high"
	}
	return result.TestDescription{
		Name:    name,
		Penalty: MatrixRankPenalty,
		Run: func(in *generator.Instance) result.TestResult {
			width := in.Descriptor.NBits
			var counts [3]int // full, full-1, deficient further
			for t := 0; t < nMatrices; t++ {
				rows := make([]uint64, dim)
				for r := 0; r < dim; r++ {
					v := in.Next()
					if high {
						v >>= uint(width - dim)
					}
					rows[r] = v & (uint64(1)<<uint(dim) - 1)
				}
				rank := gf2Rank(rows, dim)
				switch {
				case rank == dim:
					counts[0]++
				case rank == dim-1:
					counts[1]++
				default:
					counts[2]++
				}
			}
			pFull, pMinus1, pRest := matrixRankProbabilities(dim)
			n := float64(nMatrices)
			chi2 := 0.0
			for i, expectedP := range []float64{pFull, pMinus1, pRest} {
				expected := n * expectedP
				if expected <= 0 {
					continue
				}
				d := float64(counts[i]) - expected
				chi2 += d * d / expected
			}
			p := specfn.ChiSquareCCDF(chi2, 2)
			return result.TestResult{Name: name, X: chi2, P: p, Penalty: MatrixRankPenalty}
		},
	}
}

// matrixRankProbabilities returns the probabilities of a random dim x dim
// GF(2) matrix having full rank, rank dim-1, or lower rank. These are
// Kovalenko's asymptotic constants, the same values NIST SP 800-22's
// binary matrix rank test tabulates; they hold to several decimal places
// for any dim this test is run at (32 and up).
func matrixRankProbabilities(dim int) (pFull, pMinus1, pRest float64) {
	pFull, pMinus1 = 0.2888, 0.5776
	return pFull, pMinus1, 1 - pFull - pMinus1
}
