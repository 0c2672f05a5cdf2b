// Copyright (c) 2024-2026 SmokeRand Authors
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.

package stattest

import (
	"math"

	"github.com/smokerand/smokerand/battery/result"
	"github.com/smokerand/smokerand/bitutil"
	"github.com/smokerand/smokerand/generator"
	"github.com/smokerand/smokerand/specfn"
)

// HammingDC6Penalty is the suggested failure weight for the
// hamming_dc6 family.
const HammingDC6Penalty = 2.0

// HammingDC6Mode selects which of hamming_dc6's four sub-modes to run.
type HammingDC6Mode int

const (
	// HammingDC6Bytes counts bits within overlapping 6-byte windows.
	HammingDC6Bytes HammingDC6Mode = iota
	// HammingDC6Words counts bits within overlapping 6-word windows.
	HammingDC6Words
	// HammingDC6Distance compares the Hamming weight of consecutive words.
	HammingDC6Distance
	// HammingDC6Correlated compares weights two words apart.
	HammingDC6Correlated
)

// HammingDC6Test implements the overlapping-6-tuple Hamming weight test.
// In the Bytes and Words modes it slides a 6-unit window across the drawn
// stream, tabulates the weight of each window into a histogram, and
// chi-squared tests it against the binomial distribution the uniform-bit
// null hypothesis predicts. In the Distance and Correlated modes it
// chi-squared tests the difference between the weights of words one or two
// positions apart against its normal approximation.
func HammingDC6Test(mode HammingDC6Mode, n uint64) result.TestDescription {
	return result.TestDescription{
		Name:    "hamming_dc6",
		Penalty: HammingDC6Penalty,
		Run: func(in *generator.Instance) result.TestResult {
			switch mode {
			case HammingDC6Bytes:
				return hammingWindowTest(in, n, 6)
			case HammingDC6Words:
				return hammingWindowTest(in, n, 6*uint64(in.Descriptor.NBits/8))
			case HammingDC6Distance:
				return hammingDistanceTest(in, n, 1)
			default:
				return hammingDistanceTest(in, n, 2)
			}
		},
	}
}

// hammingWindowTest slides a windowBytes-wide window one byte at a time
// across n drawn words and tabulates the Hamming weight of each window.
func hammingWindowTest(in *generator.Instance, n uint64, windowBytes uint64) result.TestResult {
	data := drawBytes(in, n)
	wb := int(windowBytes)
	if wb < 1 {
		wb = 1
	}
	maxWeight := wb * 8
	hist := make([]int, maxWeight+1)
	count := 0
	for i := 0; i+wb <= len(data); i++ {
		w := 0
		for j := 0; j < wb; j++ {
			w += bitutil.Popcount8(data[i+j])
		}
		hist[w]++
		count++
	}
	chi2 := 0.0
	for w, o := range hist {
		p := specfn.BinomialPMF(w, maxWeight, 0.5)
		expected := float64(count) * p
		if expected <= 1e-9 {
			continue
		}
		d := float64(o) - expected
		chi2 += d * d / expected
	}
	pval := specfn.ChiSquareCCDF(chi2, float64(maxWeight))
	return result.TestResult{Name: "hamming_dc6", X: chi2, P: pval, Penalty: HammingDC6Penalty}
}

// hammingDistanceTest compares the popcount of word[i] against word[i+lag]
// and chi-squared tests the distribution of the signed difference.
func hammingDistanceTest(in *generator.Instance, n uint64, lag int) result.TestResult {
	width := in.Descriptor.NBits
	words := drawWords64(in, n+uint64(lag))
	maxWeight := width
	hist := make(map[int]int)
	count := 0
	for i := 0; i+lag < len(words); i++ {
		a := bitutil.Popcount64(words[i])
		b := bitutil.Popcount64(words[i+lag])
		hist[a-b]++
		count++
	}
	chi2 := 0.0
	for d, o := range hist {
		p := hammingDiffProbability(d, maxWeight)
		expected := float64(count) * p
		if expected <= 1e-9 {
			continue
		}
		diff := float64(o) - expected
		chi2 += diff * diff / expected
	}
	dof := float64(2*maxWeight + 1)
	pval := specfn.ChiSquareCCDF(chi2, dof)
	return result.TestResult{Name: "hamming_dc6", X: chi2, P: pval, Penalty: HammingDC6Penalty}
}

// hammingDiffProbability approximates P(popcount(A)-popcount(B) == d) for
// two independent Binomial(maxWeight, 1/2) variables via the normal
// approximation to their difference (variance maxWeight/2).
func hammingDiffProbability(d, maxWeight int) float64 {
	sigma := math.Sqrt(float64(maxWeight) / 2)
	lo := (float64(d) - 0.5) / sigma
	hi := (float64(d) + 0.5) / sigma
	return specfn.NormalCCDF(lo) - specfn.NormalCCDF(hi)
}
