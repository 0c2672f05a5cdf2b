// Copyright (c) 2024-2026 SmokeRand Authors
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.

// Package custombattery loads a battery description from a text file
// (blank-line-delimited key=value records) or from a shared-object plugin
// exporting battery_func
package custombattery

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/smokerand/smokerand/battery/result"
	"github.com/smokerand/smokerand/pluginloader"
)

// Registry maps a test name to its TestDescription constructor result, the
// vocabulary a text-format battery's "test" keys resolve against.
type Registry map[string]result.TestDescription

// record is one blank-line-delimited key=value group from a custom
// battery text file.
type record struct {
	test    string
	options string
	penalty *float64
}

// ErrUnknownKey is returned when a record contains a key other than
// test/options/penalty.
var ErrUnknownKey = fmt.Errorf("custombattery: unknown key")

// ErrUnknownTest is returned when a record's test name has no entry in
// the registry.
var ErrUnknownTest = fmt.Errorf("custombattery: unknown test")

// ParseText reads a custom battery from the text format: a sequence of
// blank-line-separated records, each a sequence of "key = value" lines.
// Recognised keys are test, options, and penalty; any other key is a
// fatal parse error
func ParseText(r io.Reader, name string, reg Registry) (result.Battery, error) {
	records, err := parseRecords(r)
	if err != nil {
		return result.Battery{}, err
	}

	tests := make([]result.TestDescription, 0, len(records))
	for i, rec := range records {
		td, ok := reg[rec.test]
		if !ok {
			return result.Battery{}, fmt.Errorf("%w: record %d: %q", ErrUnknownTest, i+1, rec.test)
		}
		if rec.penalty != nil {
			td.Penalty = *rec.penalty
		}
		tests = append(tests, td)
	}
	return result.Battery{Name: name, Tests: tests}, nil
}

// parseRecords splits r into blank-line-delimited groups of key=value
// lines and validates each group's keys.
func parseRecords(r io.Reader) ([]record, error) {
	scanner := bufio.NewScanner(r)
	var records []record
	var cur record
	haveCur := false
	lineNo := 0

	flush := func() error {
		if !haveCur {
			return nil
		}
		if cur.test == "" {
			return fmt.Errorf("custombattery: record before line %d has no test key", lineNo)
		}
		records = append(records, cur)
		cur = record{}
		haveCur = false
		return nil
	}

	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			if err := flush(); err != nil {
				return nil, err
			}
			continue
		}
		key, value, ok := splitKeyValue(line)
		if !ok {
			return nil, fmt.Errorf("custombattery: line %d: malformed record line %q", lineNo, line)
		}
		haveCur = true
		switch key {
		case "test":
			cur.test = value
		case "options":
			cur.options = value
		case "penalty":
			p, err := strconv.ParseFloat(value, 64)
			if err != nil {
				return nil, fmt.Errorf("custombattery: line %d: invalid penalty %q: %w", lineNo, value, err)
			}
			cur.penalty = &p
		default:
			return nil, fmt.Errorf("%w: line %d: %q", ErrUnknownKey, lineNo, key)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if err := flush(); err != nil {
		return nil, err
	}
	return records, nil
}

func splitKeyValue(line string) (key, value string, ok bool) {
	idx := strings.Index(line, "=")
	if idx < 0 {
		return "", "", false
	}
	key = strings.TrimSpace(line[:idx])
	value = strings.TrimSpace(line[idx+1:])
	return key, value, key != ""
}

// LoadSharedObject implements the "s=file" custom-battery form: the
// shared object exports battery_func, loaded exactly like a PRNG plugin,
//
func LoadSharedObject(path string) (pluginloader.BatteryFunc, error) {
	return pluginloader.LoadBattery(path)
}
