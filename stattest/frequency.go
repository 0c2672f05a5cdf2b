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

// MonobitFreqPenalty is the suggested failure weight for monobit_freq.
const MonobitFreqPenalty = 4.0

// MonobitFreqTest counts the 1-bits across n draws and compares the count
// to its expectation under H0 via a standard-normal statistic:
// x = (count - N/2)/sqrt(N/4), p via normal ccdf.
func MonobitFreqTest(n uint64) result.TestDescription {
	return result.TestDescription{
		Name:    "monobit_freq",
		Penalty: MonobitFreqPenalty,
		Run: func(in *generator.Instance) result.TestResult {
			ones, bits := drawBitCounts(in, n)
			nBits := float64(bits)
			x := (float64(ones) - nBits/2) / math.Sqrt(nBits/4)
			p := 2 * specfn.NormalCCDF(math.Abs(x))
			return result.TestResult{Name: "monobit_freq", X: x, P: p, Penalty: MonobitFreqPenalty}
		},
	}
}

// ByteFreqPenalty is the suggested failure weight for byte_freq, the
// generic "freq" family.
const ByteFreqPenalty = 4.0

// ByteFreqTest runs a classical chi-squared goodness-of-fit test over the
// empirical byte-frequency histogram of n drawn words.
func ByteFreqTest(n uint64) result.TestDescription {
	return result.TestDescription{
		Name:    "byte_freq",
		Penalty: ByteFreqPenalty,
		Run: func(in *generator.Instance) result.TestResult {
			data := drawBytes(in, n)
			var hist [256]int
			for _, b := range data {
				hist[b]++
			}
			expected := float64(len(data)) / 256
			chi2 := 0.0
			for _, c := range hist {
				d := float64(c) - expected
				chi2 += d * d / expected
			}
			p := specfn.ChiSquareCCDF(chi2, 255)
			return result.TestResult{Name: "byte_freq", X: chi2, P: p, Penalty: ByteFreqPenalty}
		},
	}
}

// Word16FreqTest runs a chi-squared goodness-of-fit test over the
// empirical frequency histogram of 16-bit words extracted from n drawn
// native-width words.
func Word16FreqTest(n uint64) result.TestDescription {
	return result.TestDescription{
		Name:    "word16_freq",
		Penalty: ByteFreqPenalty,
		Run: func(in *generator.Instance) result.TestResult {
			bytesData := drawBytes(in, n)
			wordCount := len(bytesData) / 2
			hist := make(map[uint16]int, 65536)
			for i := 0; i < wordCount; i++ {
				w := uint16(bytesData[2*i]) | uint16(bytesData[2*i+1])<<8
				hist[w]++
			}
			expected := float64(wordCount) / 65536
			chi2 := 0.0
			seen := 0
			for _, c := range hist {
				d := float64(c) - expected
				chi2 += d * d / expected
				seen++
			}
			// Cells never observed still contribute (0-expected)^2/expected;
			// account for them without materializing all 65536 entries.
			missing := 65536 - seen
			chi2 += float64(missing) * expected
			p := specfn.ChiSquareCCDF(chi2, 65535)
			return result.TestResult{Name: "word16_freq", X: chi2, P: p, Penalty: ByteFreqPenalty}
		},
	}
}
