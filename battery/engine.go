// Copyright (c) 2024-2026 SmokeRand Authors
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.

package battery

import (
	"fmt"
	"math"
	"sort"
	"sync"
	"time"

	"github.com/smokerand/smokerand/battery/result"
	"github.com/smokerand/smokerand/dispatch"
	"github.com/smokerand/smokerand/entropy"
	"github.com/smokerand/smokerand/generator"
	"github.com/smokerand/smokerand/hostapi"
	"github.com/smokerand/smokerand/report"
)

// estimatedRuntime is the per-test weight the serpentine scheduler sorts
// by: a test's declared sample count is the dominant cost, so a
// Penalty-based ordering is not used here; instead each TestDescription's
// relative weight is approximated from its name's family, since the
// engine has no direct access to the closed-over sample size. Heavier
// families (frequency/hamming/matrixrank sweep the most generator output)
// sort first.
var familyWeight = map[string]int{
	"monobit_freq":          100,
	"byte_freq":             90,
	"word16_freq":           90,
	"hamming_dc6":           80,
	"matrixrank_low":        70,
	"matrixrank_high":       70,
	"gap16_count0":          60,
	"sumcollector":          55,
	"mod3":                  50,
	"bspace_nd":             45,
	"bspace8_8d_decimated":  40,
	"collisionover":         40,
	"birthday":              35,
	"unitsphere":            35,
	"ising2d_metropolis":    30,
	"ising2d_wolff":         30,
	"linearcomp":            25,
	"gap":                   20,
}

func estimatedRuntime(td result.TestDescription) int {
	if w, ok := familyWeight[td.Name]; ok {
		return w
	}
	return 10
}

// Run executes one battery against one generator descriptor under cfg: it
// selects (or degenerates to) a single test when cfg.TestID/TestName is
// set, assigns the remaining tests to cfg.Threads workers via the
// serpentine schedule of, runs each test on its worker against a
// generator instance acquired for that test alone (its seeds drawn from
// svc under the worker's ordinal) and released when the test returns, and
// returns the assembled report.Report. Each result's ID is the test's
// 1-based position in b.
func Run(b result.Battery, descriptor *generator.Descriptor, cfg *Config, svc *entropy.Service) (report.Report, error) {
	start := time.Now()

	tests := b.Tests
	firstPos := 0
	if cfg.TestID > 0 || cfg.TestName != "" {
		i, err := selectOne(tests, cfg)
		if err != nil {
			return report.Report{}, err
		}
		tests = tests[i : i+1]
		firstPos = i
	}

	descriptor, err := cfg.ApplyFilter(descriptor)
	if err != nil {
		return report.Report{}, err
	}

	workers := cfg.Threads
	if len(tests) == 1 {
		workers = 1
	}
	if workers <= 0 {
		workers = 1
	}

	order := sortByRuntimeDesc(tests)
	assignment := dispatch.SerpentineAssign(len(order), workers)

	jobsPerWorker := make([][]dispatch.Job, workers)
	var resultsMu sync.Mutex
	var results []result.TestResult

	var printfMu sync.Mutex
	for k, i := range order {
		td := tests[i]
		id := firstPos + i + 1
		workerOrd := assignment[k]
		jobsPerWorker[workerOrd] = append(jobsPerWorker[workerOrd], func(wo int) {
			host := hostapi.New(wo, svc, cfg.Param, hostapi.DefaultSink, &printfMu)
			in, err := generator.Acquire(descriptor, host)
			if err != nil {
				resultsMu.Lock()
				results = append(results, result.TestResult{Name: td.Name, ID: id, P: failedProbe(), Penalty: td.Penalty, ThreadOrd: wo})
				resultsMu.Unlock()
				return
			}
			defer in.Release()

			r := td.Run(in)
			r.ID = id
			r.ThreadOrd = wo
			resultsMu.Lock()
			results = append(results, r)
			resultsMu.Unlock()
		})
	}

	pool := dispatch.NewPool(workers)
	pool.Run(jobsPerWorker)

	elapsed := time.Since(start)
	rpt := report.Build(b.Name, descriptor.Name, results, svc.SeedLog(), elapsed)
	return rpt, nil
}

// selectOne finds the index within tests of the single test cfg names by
// id or name.
func selectOne(tests []result.TestDescription, cfg *Config) (int, error) {
	if cfg.TestID > 0 {
		if cfg.TestID > len(tests) {
			return 0, fmt.Errorf("battery: testid %d out of range (battery has %d tests)", cfg.TestID, len(tests))
		}
		return cfg.TestID - 1, nil
	}
	for i, t := range tests {
		if t.Name == cfg.TestName {
			return i, nil
		}
	}
	return 0, fmt.Errorf("battery: no test named %q", cfg.TestName)
}

// sortByRuntimeDesc returns the indices of tests ordered by descending
// estimated runtime step 1; ties keep battery order.
func sortByRuntimeDesc(tests []result.TestDescription) []int {
	order := make([]int, len(tests))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return estimatedRuntime(tests[order[a]]) > estimatedRuntime(tests[order[b]])
	})
	return order
}

// failedProbe is the p-value a test result is given when its generator
// instance could not even be acquired: NaN, which report.Classify always
// buckets as FAILED.
func failedProbe() float64 {
	return math.NaN()
}
