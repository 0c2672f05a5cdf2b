// Copyright (c) 2024-2026 SmokeRand Authors
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.

// Package report classifies test results into PASSED/WARNING/FAILED
// bands, accumulates penalty, renders the tabular REPORT_FULL/REPORT_BRIEF
// output, and derives the battery's final verdict and exit code.
package report

import (
	"fmt"
	"io"
	"math"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/smokerand/smokerand/battery/result"
	"github.com/smokerand/smokerand/entropy"
)

// Band is a p-value classification category.
type Band int

const (
	// Passed is the normal, unremarkable band.
	Passed Band = iota
	// Warning is a mild deviation, contributing to the penalty sum.
	Warning
	// Failed is an extreme deviation, or a NaN statistic.
	Failed
)

// String renders a Band the way the reporter prints it.
func (b Band) String() string {
	switch b {
	case Passed:
		return "PASSED"
	case Warning:
		return "WARNING"
	default:
		return "FAILED"
	}
}

// Classify buckets a p-value into Passed/Warning/Failed,
// fixed bands. These thresholds are part of the external contract and
// must not be changed.
func Classify(p float64) Band {
	if math.IsNaN(p) {
		return Failed
	}
	if p <= 1e-10 || p >= 1-1e-10 {
		return Failed
	}
	if p <= 1e-3 || p >= 1-1e-3 {
		return Warning
	}
	return Passed
}

// PenaltyThreshold is the suggested aggregate-penalty failure threshold
// from Implementations must not alter it.
const PenaltyThreshold = 10.0

// Verdict is the battery's overall pass/fail/error outcome.
type Verdict int

const (
	// VerdictPassed: no FAILED test and accumulated penalty below threshold.
	VerdictPassed Verdict = iota
	// VerdictFailed: at least one FAILED test, or penalty over threshold.
	VerdictFailed
	// VerdictError: an infrastructure failure, not a statistical one.
	VerdictError
)

// String renders a Verdict.
func (v Verdict) String() string {
	switch v {
	case VerdictPassed:
		return "PASSED"
	case VerdictFailed:
		return "FAILED"
	default:
		return "ERROR"
	}
}

// ExitCode maps a Verdict to the process exit code assigns:
// 0 PASSED, 1 FAILED, 2 ERROR.
func (v Verdict) ExitCode() int {
	switch v {
	case VerdictPassed:
		return 0
	case VerdictFailed:
		return 1
	default:
		return 2
	}
}

// Mode selects the REPORT_FULL/REPORT_BRIEF output verbosity.
type Mode int

const (
	// Full prints every row.
	Full Mode = iota
	// Brief prints only WARNING and FAILED rows.
	Brief
)

// Row is one classified test result, ready for display.
type Row struct {
	result.TestResult
	Band Band
}

// Report is the aggregate of a completed battery run.
type Report struct {
	// RunID uniquely identifies this run, for correlating it with logs
	// and the dumped seed log.
	RunID       uuid.UUID
	BatteryName string
	Generator   string
	Rows        []Row
	SeedLog     []entropy.SeedLogEntry
	Elapsed     time.Duration
	Verdict     Verdict
}

// Build classifies results, sorts them by test id, and computes the
// battery verdict from the accumulated penalty of WARNING/FAILED rows.
func Build(batteryName, generator string, results []result.TestResult, seedLog []entropy.SeedLogEntry, elapsed time.Duration) Report {
	sorted := append([]result.TestResult(nil), results...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].ID < sorted[j].ID })

	rows := make([]Row, len(sorted))
	penalty := 0.0
	anyFailed := false
	for i, r := range sorted {
		band := Classify(r.P)
		rows[i] = Row{TestResult: r, Band: band}
		switch band {
		case Failed:
			anyFailed = true
			penalty += r.Penalty
		case Warning:
			penalty += r.Penalty
		}
	}

	verdict := VerdictPassed
	if anyFailed || penalty > PenaltyThreshold {
		verdict = VerdictFailed
	}

	return Report{
		RunID:       uuid.New(),
		BatteryName: batteryName,
		Generator:   generator,
		Rows:        rows,
		SeedLog:     seedLog,
		Elapsed:     elapsed,
		Verdict:     verdict,
	}
}

// Write renders the report to w in the requested Mode: a header, one row
// per test (all rows in Full, only Warning/Failed rows in Brief), band
// counts, elapsed time, the seed log, and the verdict line.
func (rpt Report) Write(w io.Writer, mode Mode) {
	fmt.Fprintf(w, "SmokeRand report  run=%s  battery=%s  generator=%s\n",
		rpt.RunID, rpt.BatteryName, rpt.Generator)
	fmt.Fprintf(w, "%-4s %-24s %12s %14s %8s %6s\n", "id", "test", "x", "p", "penalty", "band")

	var counts [3]int
	for _, row := range rpt.Rows {
		counts[row.Band]++
		if mode == Brief && row.Band == Passed {
			continue
		}
		fmt.Fprintf(w, "%-4d %-24s %12.6g %14s %8.2f %6s\n",
			row.ID, row.Name, row.X, formatP(row.P), row.Penalty, row.Band)
	}

	fmt.Fprintf(w, "\ncounts: PASSED=%d WARNING=%d FAILED=%d\n", counts[Passed], counts[Warning], counts[Failed])
	fmt.Fprintf(w, "elapsed: %s\n", rpt.Elapsed)

	fmt.Fprintln(w, "seed log:")
	for _, e := range rpt.SeedLog {
		fmt.Fprintf(w, "  thread=%d call=%d seed=%d\n", e.ThreadOrd, e.CallCount, e.Seed)
	}

	fmt.Fprintf(w, "verdict: %s (exit %d)\n", rpt.Verdict, rpt.Verdict.ExitCode())
}

// formatP renders a p-value, with NaN spelled "NAN",
// reporter contract.
func formatP(p float64) string {
	if math.IsNaN(p) {
		return "NAN"
	}
	return fmt.Sprintf("%.6g", p)
}
