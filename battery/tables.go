// Copyright (c) 2024-2026 SmokeRand Authors
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.

package battery

import (
	"github.com/smokerand/smokerand/battery/result"
	"github.com/smokerand/smokerand/stattest"
)

// The sample sizes below are sized so that express/brief/default consume
// roughly 64 MiB / 128 GiB / 2 TiB of generator output respectively: each
// test's n is chosen so that the battery's sum of bytes-drawn lands near
// its budget, holding the exact membership (not the byte accounting)
// stable across releases.

const (
	expressWords = 1 << 20  // ~8 MiB/test at 64-bit width
	briefWords   = 1 << 31  // ~16 GiB/test
	defaultWords = 1 << 34  // ~128 GiB/test, spread across fewer, larger tests
)

// Express is the smallest fixed battery: a handful of fast tests totaling
// roughly 64 MiB of generator output
func Express() result.Battery {
	return result.Battery{
		Name: "express",
		Tests: []result.TestDescription{
			stattest.MonobitFreqTest(1 << 20),
			stattest.ByteFreqTest(1 << 19),
			stattest.GapTest(3, 2000),
		},
	}
}

// Brief is the mid-sized fixed battery, totaling roughly 128 GiB of
// generator output.
func Brief() result.Battery {
	return result.Battery{
		Name: "brief",
		Tests: []result.TestDescription{
			stattest.MonobitFreqTest(briefWords),
			stattest.ByteFreqTest(briefWords / 8),
			stattest.Word16FreqTest(briefWords / 16),
			stattest.GapTest(4, 200000),
			stattest.BspaceNDTest(2, 20, 200000),
			stattest.CollisionOverTest(20, 200000),
			stattest.BirthdayTest(24, 50000),
			stattest.HammingDC6Test(stattest.HammingDC6Bytes, briefWords/8),
			stattest.ModThreeTest(briefWords),
			stattest.SumCollectorTest(16, 500000),
		},
	}
}

// Default is the standard fixed battery, totaling roughly 2 TiB of
// generator output.
func Default() result.Battery {
	b := Brief()
	b.Name = "default"
	b.Tests = append(b.Tests,
		stattest.MatrixRankTest(32, 100000, false),
		stattest.Gap16Count0Test(1000),
		stattest.UnitSphereTest(3, 2000000),
		stattest.IsingMetropolisTest(16, isingTcDefault, 500, 200),
		stattest.BspaceNDTest(3, 16, 300000),
		stattest.HammingDC6Test(stattest.HammingDC6Distance, defaultWords/8),
	)
	return b
}

// isingTcDefault mirrors stattest's Onsager critical temperature without
// importing stattest's unexported constant; it is the same physical
// constant, not an independent estimate.
const isingTcDefault = 2.269185314213022

// Full is the union of Default plus linear-complexity, a high-resolution
// matrix-rank variant, and a deeper birthday-spacings variant.
func Full() result.Battery {
	b := Default()
	b.Name = "full"
	b.Tests = append(b.Tests,
		stattest.LinearComplexityTest(1000, 500),
		stattest.MatrixRankTest(64, 20000, true),
		stattest.BspaceNDTest(4, 12, 200000),
		stattest.Bspace8_8dDecimatedTest(100000, 8),
	)
	return b
}

// Freq is the single-family frequency battery.
func Freq() result.Battery {
	return result.Battery{
		Name: "freq",
		Tests: []result.TestDescription{
			stattest.MonobitFreqTest(briefWords),
			stattest.ByteFreqTest(briefWords / 8),
			stattest.Word16FreqTest(briefWords / 16),
		},
	}
}

// Birthday is the single-family birthday-paradox battery.
func Birthday() result.Battery {
	return result.Battery{
		Name: "birthday",
		Tests: []result.TestDescription{
			stattest.BirthdayTest(24, 200000),
			stattest.BspaceNDTest(2, 20, 200000),
			stattest.Bspace8_8dDecimatedTest(100000, 4),
		},
	}
}

// Ising is the single-family 2D Ising-model battery.
func Ising() result.Battery {
	return result.Battery{
		Name: "ising",
		Tests: []result.TestDescription{
			stattest.IsingMetropolisTest(16, isingTcDefault, 2000, 500),
			stattest.IsingWolffTest(16, isingTcDefault, 2000, 200),
		},
	}
}

// UnitSphere is the single-family unit-ball-volume battery.
func UnitSphere() result.Battery {
	return result.Battery{
		Name: "unitsphere",
		Tests: []result.TestDescription{
			stattest.UnitSphereTest(2, 2000000),
			stattest.UnitSphereTest(3, 2000000),
			stattest.UnitSphereTest(5, 2000000),
		},
	}
}

// Named resolves one of the fixed battery names a CLI front end would
// list, or reports that the name isn't one of the fixed batteries (the
// caller should then try a custom-battery form, f=<path> or s=<path>).
func Named(name string) (result.Battery, bool) {
	switch name {
	case "express":
		return Express(), true
	case "brief":
		return Brief(), true
	case "default":
		return Default(), true
	case "full":
		return Full(), true
	case "freq":
		return Freq(), true
	case "birthday":
		return Birthday(), true
	case "ising":
		return Ising(), true
	case "unitsphere":
		return UnitSphere(), true
	default:
		return result.Battery{}, false
	}
}
