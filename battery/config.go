// Copyright (c) 2024-2026 SmokeRand Authors
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.

package battery

import (
	"fmt"
	"runtime"
	"strconv"
	"strings"

	"github.com/smokerand/smokerand/generator"
	"github.com/smokerand/smokerand/report"
)

// Filter names recognised by --filter=, matching generator's filter
// wrappers.
const (
	FilterReverseBits   = "reverse-bits"
	FilterInterleaved32 = "interleaved32"
	FilterHigh32        = "high32"
	FilterLow32         = "low32"
)

// Config is SmokeRandSettings: the parsed, validated run configuration for
// one battery execution
type Config struct {
	Threads     int
	TestID      int // 0 means unset
	TestName    string
	Param       string
	BatParam    string
	Filter      string
	Seed        string
	MaxLenLog2  int
	ReportBrief bool
}

// Option mutates a Config under construction, the functional-options
// pattern used throughout this module's dependency stack.
type Option func(*Config)

// DefaultConfig returns the configuration used when no options are given:
// one worker per detected core, no test/filter/seed override, full report.
func DefaultConfig() *Config {
	return &Config{
		Threads:    runtime.GOMAXPROCS(0),
		MaxLenLog2: 20,
	}
}

// WithThreads pins the worker count, overriding core detection.
func WithThreads(n int) Option {
	return func(c *Config) { c.Threads = n }
}

// WithTestID selects a single test by its 1-based battery position,
// degenerating scheduling to one worker
func WithTestID(id int) Option {
	return func(c *Config) { c.TestID = id }
}

// WithTestName selects a single test by name; mutually exclusive with
// WithTestID (the last one applied wins).
func WithTestName(name string) Option {
	return func(c *Config) { c.TestName = name; c.TestID = 0 }
}

// WithParam sets the plugin's --param= variant selector.
func WithParam(s string) Option {
	return func(c *Config) { c.Param = s }
}

// WithBatParam sets --batparam=, the battery-level parameter string.
func WithBatParam(s string) Option {
	return func(c *Config) { c.BatParam = s }
}

// WithFilter selects a generator output filter.
func WithFilter(name string) Option {
	return func(c *Config) { c.Filter = name }
}

// WithSeed overrides the entropy service's seed, textual or base64.
func WithSeed(s string) Option {
	return func(c *Config) { c.Seed = s }
}

// WithMaxLenLog2 sets --maxlen_log2=, used only by the stdout-dump mode
// (package iohelpers); battery scheduling ignores it.
func WithMaxLenLog2(n int) Option {
	return func(c *Config) { c.MaxLenLog2 = n }
}

// WithReportBrief selects REPORT_BRIEF output.
func WithReportBrief() Option {
	return func(c *Config) { c.ReportBrief = true }
}

// New builds a Config from DefaultConfig plus the given options.
func New(opts ...Option) *Config {
	c := DefaultConfig()
	for _, o := range opts {
		o(c)
	}
	return c
}

// ReportMode returns the report.Mode this Config selects.
func (c *Config) ReportMode() report.Mode {
	if c.ReportBrief {
		return report.Brief
	}
	return report.Full
}

// ApplyFilter wraps d in the filter this Config names, or returns d
// unchanged if no filter was selected.
func (c *Config) ApplyFilter(d *generator.Descriptor) (*generator.Descriptor, error) {
	switch c.Filter {
	case "":
		return d, nil
	case FilterReverseBits:
		return generator.ReverseBitsFilter(d), nil
	case FilterInterleaved32:
		return generator.Interleaved32Filter(d)
	case FilterHigh32:
		return generator.High32Filter(d)
	case FilterLow32:
		return generator.Low32Filter(d)
	default:
		return nil, fmt.Errorf("battery: unknown filter %q", c.Filter)
	}
}

// SettingsFromArgs parses the CLI flag vocabulary Open Question
// decision pins to the canonical, most-recent draft: --threads,
// --nthreads=N, --testid=N, --testname=S, --param=S, --batparam=S,
// --filter=..., --seed=S, --maxlen_log2=N, --report-brief. It deliberately
// does not support the older @file battery syntax.
func SettingsFromArgs(args []string) (*Config, error) {
	c := DefaultConfig()
	for _, arg := range args {
		if err := applyArg(c, arg); err != nil {
			return nil, err
		}
	}
	return c, nil
}

func applyArg(c *Config, arg string) error {
	switch {
	case arg == "--threads":
		c.Threads = runtime.GOMAXPROCS(0)
	case strings.HasPrefix(arg, "--nthreads="):
		n, err := strconv.Atoi(strings.TrimPrefix(arg, "--nthreads="))
		if err != nil {
			return fmt.Errorf("battery: invalid --nthreads: %w", err)
		}
		c.Threads = n
	case strings.HasPrefix(arg, "--testid="):
		n, err := strconv.Atoi(strings.TrimPrefix(arg, "--testid="))
		if err != nil {
			return fmt.Errorf("battery: invalid --testid: %w", err)
		}
		c.TestID = n
		c.TestName = ""
	case strings.HasPrefix(arg, "--testname="):
		c.TestName = strings.TrimPrefix(arg, "--testname=")
		c.TestID = 0
	case strings.HasPrefix(arg, "--param="):
		c.Param = strings.TrimPrefix(arg, "--param=")
	case strings.HasPrefix(arg, "--batparam="):
		c.BatParam = strings.TrimPrefix(arg, "--batparam=")
	case strings.HasPrefix(arg, "--filter="):
		c.Filter = strings.TrimPrefix(arg, "--filter=")
	case strings.HasPrefix(arg, "--seed="):
		c.Seed = strings.TrimPrefix(arg, "--seed=")
	case strings.HasPrefix(arg, "--maxlen_log2="):
		n, err := strconv.Atoi(strings.TrimPrefix(arg, "--maxlen_log2="))
		if err != nil {
			return fmt.Errorf("battery: invalid --maxlen_log2: %w", err)
		}
		c.MaxLenLog2 = n
	case arg == "--report-brief":
		c.ReportBrief = true
	default:
		return fmt.Errorf("battery: unknown option %q", arg)
	}
	return nil
}
