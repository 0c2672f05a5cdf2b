// Copyright (c) 2024-2026 SmokeRand Authors
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.

package stattest

import (
	"math"
	"sort"

	"github.com/smokerand/smokerand/battery/result"
	"github.com/smokerand/smokerand/generator"
	"github.com/smokerand/smokerand/specfn"
)

// BspacePenalty, CollOverPenalty, and BspaceDecPenalty are the suggested
// failure weights for the birthday-spacings, overlapping-collisions, and
// decimated birthday-spacings families, respectively.
const (
	BspacePenalty    = 3.0
	CollOverPenalty  = 3.0
	BspaceDecPenalty = 1.0
)

// bspaceSample draws n points, each d*b bits wide (d*b <= 64), packing the
// d b-bit coordinates of each point into one uint64 in the natural way: a
// point is itself already a random integer in [0, 2^(d*b)), which is all
// Marsaglia's birthday-spacings construction needs.
func bspaceSample(in *generator.Instance, n int, d, b int) []uint64 {
	total := d * b
	out := make([]uint64, n)
	for i := range out {
		var v uint64
		bitsLeft := total
		for bitsLeft > 0 {
			take := bitsLeft
			if take > in.Descriptor.NBits {
				take = in.Descriptor.NBits
			}
			v = v<<uint(take) | (in.Next() & (uint64(1)<<uint(take) - 1))
			bitsLeft -= take
		}
		out[i] = v
	}
	return out
}

// bspaceCollisions sorts the samples, forms the spacings between
// consecutive values (Marsaglia's construction), sorts the spacings, and
// counts exact ties among them: this is the birthday-spacings collision
// count, asymptotically Poisson with mean lambda = n^3 / (4*m) under H0,
// for m = 2^(d*b).
func bspaceCollisions(samples []uint64, m float64) (collisions int, lambda float64) {
	sorted := append([]uint64(nil), samples...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	spacings := make([]uint64, len(sorted)-1)
	for i := 1; i < len(sorted); i++ {
		spacings[i-1] = sorted[i] - sorted[i-1]
	}
	sort.Slice(spacings, func(i, j int) bool { return spacings[i] < spacings[j] })
	for i := 1; i < len(spacings); i++ {
		if spacings[i] == spacings[i-1] {
			collisions++
		}
	}

	n := float64(len(samples))
	lambda = n * n * n / (4 * m)
	return collisions, lambda
}

// BspaceNDTest implements Marsaglia's birthday-spacings test in d
// dimensions with b bits per dimension and n samples.
func BspaceNDTest(d, b, n int) result.TestDescription {
	return result.TestDescription{
		Name:    "bspace_nd",
		Penalty: BspacePenalty,
		Run: func(in *generator.Instance) result.TestResult {
			samples := bspaceSample(in, n, d, b)
			m := twoToThe(d * b)
			collisions, lambda := bspaceCollisions(samples, m)
			p := specfn.PoissonCCDF(collisions, lambda)
			return result.TestResult{Name: "bspace_nd", X: float64(collisions), P: p, Penalty: BspacePenalty}
		},
	}
}

// Bspace8_8dDecimatedTest is the fixed 8-dimensional, 8-bit-per-dimension
// variant of BspaceNDTest with a decimation step: only every
// decimationStep-th sample is kept before the spacings construction runs,
//, bspace8_8d_decimated.
func Bspace8_8dDecimatedTest(n, decimationStep int) result.TestDescription {
	const d, b = 8, 8
	return result.TestDescription{
		Name:    "bspace8_8d_decimated",
		Penalty: BspaceDecPenalty,
		Run: func(in *generator.Instance) result.TestResult {
			raw := bspaceSample(in, n*decimationStep, d, b)
			decimated := make([]uint64, 0, n)
			for i := 0; i < len(raw); i += decimationStep {
				decimated = append(decimated, raw[i])
			}
			m := twoToThe(d * b)
			collisions, lambda := bspaceCollisions(decimated, m)
			p := specfn.PoissonCCDF(collisions, lambda)
			return result.TestResult{Name: "bspace8_8d_decimated", X: float64(collisions), P: p, Penalty: BspaceDecPenalty}
		},
	}
}

// CollisionOverTest implements the overlapping-collision test on k-tuples
// of bits: slide a k-bit window one bit at a time across the drawn stream,
// count exact collisions among the resulting k-bit values, and compare
// against the Poisson distribution the birthday paradox predicts for
// n draws into a 2^k-entry table.
func CollisionOverTest(k uint, n int) result.TestDescription {
	return result.TestDescription{
		Name:    "collisionover",
		Penalty: CollOverPenalty,
		Run: func(in *generator.Instance) result.TestResult {
			width := uint(in.Descriptor.NBits)
			mask := uint64(1)<<k - 1
			var acc uint64
			haveBits := uint(0)
			seen := make(map[uint64]int)
			collisions := 0
			samples := 0
			for samples < n {
				if haveBits < k {
					acc = acc<<width | in.Next()
					haveBits += width
					if haveBits > 64 {
						haveBits = 64
					}
					continue
				}
				v := acc & mask
				if seen[v] > 0 {
					collisions++
				}
				seen[v]++
				acc >>= 1
				haveBits--
				samples++
			}
			m := twoToThe(int(k))
			lambda := float64(n) * float64(n) / (2 * m)
			p := specfn.PoissonCCDF(collisions, lambda)
			return result.TestResult{Name: "collisionover", X: float64(collisions), P: p, Penalty: CollOverPenalty}
		},
	}
}

// BirthdayPenalty is the suggested failure weight for the birthday
// test: it has no distinct entry of its own, so it inherits the general
// collision-family weight.
const BirthdayPenalty = 3.0

// BirthdayTest implements the 64-bit birthday paradox test: draws are
// filtered to those whose low e-1 bits are all zero, then the deviation of
// the observed number of repeats among the filtered values from the
// Poisson expectation is reported.
func BirthdayTest(e uint, n int) result.TestDescription {
	return result.TestDescription{
		Name:    "birthday",
		Penalty: BirthdayPenalty,
		Run: func(in *generator.Instance) result.TestResult {
			keepMask := uint64(1)<<(e-1) - 1
			filtered := make([]uint64, 0, n)
			for len(filtered) < n {
				v := in.Next()
				if v&keepMask == 0 {
					filtered = append(filtered, v)
				}
			}
			sorted := append([]uint64(nil), filtered...)
			sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })
			repeats := 0
			for i := 1; i < len(sorted); i++ {
				if sorted[i] == sorted[i-1] {
					repeats++
				}
			}
			width := uint(in.Descriptor.NBits)
			m := twoToThe(int(width)-int(e-1)) / twoToThe(0) // space size after filtering
			nf := float64(len(filtered))
			lambda := nf * nf / (2 * m)
			p := specfn.PoissonCCDF(repeats, lambda)
			return result.TestResult{Name: "birthday", X: float64(repeats), P: p, Penalty: BirthdayPenalty}
		},
	}
}

// twoToThe returns 2^n as a float64; used throughout this file to size
// the "table" a collision test draws into.
func twoToThe(n int) float64 {
	return math.Ldexp(1, n)
}
