// Copyright (c) 2024-2026 SmokeRand Authors
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.

// Package stattest is the statistical test library: seventeen test
// constructors (some with several modes) over a generator's bit stream,
// each producing an empirical statistic x and a p-value under the
// bit-uniformity null hypothesis. Every test is a
// constructor that returns a battery/result.TestDescription; the battery
// engine (package battery) assembles these into the fixed and custom
// batteries.
package stattest

import (
	"math"

	"github.com/smokerand/smokerand/bitutil"
	"github.com/smokerand/smokerand/generator"
)

// drawBitCounts draws n words from in and returns the total number of
// set bits observed and the total number of bits drawn, using the
// instance's native width.
func drawBitCounts(in *generator.Instance, n uint64) (ones uint64, bits uint64) {
	width := uint(in.Descriptor.NBits)
	mask := uint64(1)<<width - 1
	for i := uint64(0); i < n; i++ {
		v := in.Next() & mask
		ones += uint64(bitutil.Popcount64(v))
	}
	return ones, n * uint64(width)
}

// drawBytes draws n words from in and appends their constituent bytes (in
// native-width, little-endian order) to a freshly allocated slice.
func drawBytes(in *generator.Instance, n uint64) []byte {
	width := in.Descriptor.NBits
	bytesPerWord := width / 8
	out := make([]byte, 0, n*uint64(bytesPerWord))
	for i := uint64(0); i < n; i++ {
		v := in.Next()
		for b := 0; b < bytesPerWord; b++ {
			out = append(out, byte(v>>(8*b)))
		}
	}
	return out
}

// drawWords64 draws n 64-bit values from in, widening 32-bit generators by
// treating each call as one word (zero-extended).
func drawWords64(in *generator.Instance, n uint64) []uint64 {
	out := make([]uint64, n)
	for i := range out {
		out[i] = in.Next()
	}
	return out
}

// unitInterval maps a native-width draw onto [0,1). math.Ldexp(1, width)
// computes 2^width directly in floating point, avoiding the
// uint64(1)<<width overflow-to-zero that a 64-bit width would otherwise
// hit (Go shifts by the full bit width wrap to 0, not 2^64).
func unitInterval(in *generator.Instance) float64 {
	width := in.Descriptor.NBits
	v := in.Next()
	return float64(v) / math.Ldexp(1, width)
}
