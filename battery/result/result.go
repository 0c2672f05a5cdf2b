// Copyright (c) 2024-2026 SmokeRand Authors
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.

// Package result defines the shapes shared by the statistical test
// library and the battery engine: a TestResult, a TestDescription, and a
// Battery. It has no dependency on either so that stattest (which
// produces TestResults) and battery (which schedules TestDescriptions)
// can both depend on it without a package cycle.
package result

import "github.com/smokerand/smokerand/generator"

// TestResult is the outcome of running one statistical test against one
// generator instance, data model.
type TestResult struct {
	// Name is the test's display name.
	Name string
	// ID is the test's 1-based position within its battery.
	ID int
	// X is the empirical statistic the test computed.
	X float64
	// P is the two-sided-where-applicable tail probability under H0. It
	// is in [0,1], or NaN to signal an undefined statistic.
	P float64
	// Penalty is the failure weight attached to this test's description,
	// carried onto the result so the reporter need not look it back up.
	Penalty float64
	// ThreadOrd is the worker ordinal that produced this result.
	ThreadOrd int
}

// Alpha returns 1-P, the complement of the p-value.
func (r TestResult) Alpha() float64 { return 1 - r.P }

// Run is the callable a TestDescription carries: given an acquired
// generator instance and the test's opaque options, produce a result. The
// options value is test-specific; stattest's constructors close over it
// rather than requiring every test to parse a common shape.
type Run func(in *generator.Instance) TestResult

// TestDescription is a named, runnable test plus its failure penalty.
type TestDescription struct {
	Name    string
	Run     Run
	Penalty float64
}

// Battery is a named, finite, ordered sequence of test descriptions.
type Battery struct {
	Name  string
	Tests []TestDescription
}
