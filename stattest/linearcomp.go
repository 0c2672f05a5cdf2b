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

// LinearCompPenalty is the suggested failure weight for linearcomp.
const LinearCompPenalty = 0.25

// berlekampMasseyComplexity returns the linear complexity (the length of
// the shortest LFSR that generates bits) of a bit sequence via the
// Berlekamp-Massey algorithm over GF(2).
func berlekampMasseyComplexity(bitsSeq []byte) int {
	n := len(bitsSeq)
	c := make([]byte, n)
	b := make([]byte, n)
	c[0], b[0] = 1, 1
	l, m := 0, -1
	for i := 0; i < n; i++ {
		var d byte
		for j := 0; j <= l; j++ {
			d ^= c[j] & bitsSeq[i-j]
		}
		if d == 1 {
			t := append([]byte(nil), c...)
			shift := i - m
			for j := 0; j+shift < n; j++ {
				c[j+shift] ^= b[j]
			}
			if l <= i/2 {
				l = i + 1 - l
				m = i
				b = t
			}
		}
	}
	return l
}

// LinearComplexityTest implements the NIST SP 800-22 linear complexity
// test: the drawn bit stream is split into nBlocks blocks of blockSize
// bits, the Berlekamp-Massey linear complexity of each block is computed,
// and the resulting T statistics are binned into the 7 standard
// categories and chi-squared tested.
func LinearComplexityTest(blockSize, nBlocks int) result.TestDescription {
	return result.TestDescription{
		Name:    "linearcomp",
		Penalty: LinearCompPenalty,
		Run: func(in *generator.Instance) result.TestResult {
			width := in.Descriptor.NBits
			mu := float64(blockSize)/2 + (9+signMinusOne(blockSize+1))/36 -
				(float64(blockSize)/3+2.0/9)/math.Pow(2, float64(blockSize))

			var bins [7]int
			block := make([]byte, blockSize)
			var acc uint64
			haveBits := 0
			for i := 0; i < nBlocks; i++ {
				for b := 0; b < blockSize; b++ {
					if haveBits == 0 {
						acc = in.Next()
						haveBits = width
					}
					block[b] = byte(acc>>uint(haveBits-1)) & 1
					haveBits--
				}
				l := berlekampMasseyComplexity(block)
				t := signMinusOne(blockSize)*(float64(l)-mu) + 2.0/9
				bins[linearComplexityBin(t)]++
			}
			p := specfn.LinearComplexityCDF(bins)
			return result.TestResult{Name: "linearcomp", X: float64(bins[3]), P: p, Penalty: LinearCompPenalty}
		},
	}
}

// signMinusOne returns (-1)^n as a float64.
func signMinusOne(n int) float64 {
	if n%2 == 0 {
		return 1
	}
	return -1
}

// linearComplexityBin maps a T statistic onto one of the 7 standard
// NIST SP 800-22 categories at thresholds -2.5 .. 2.5.
func linearComplexityBin(t float64) int {
	thresholds := []float64{-2.5, -1.5, -0.5, 0.5, 1.5, 2.5}
	for i, th := range thresholds {
		if t < th {
			return i
		}
	}
	return len(thresholds)
}
