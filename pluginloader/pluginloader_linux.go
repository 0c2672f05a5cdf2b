// Copyright (c) 2024-2026 SmokeRand Authors
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.

//go:build linux

package pluginloader

import (
	"fmt"
	"plugin"

	"github.com/smokerand/smokerand/generator"
	"github.com/smokerand/smokerand/hostapi"
)

func loadPlatform(path string, bootstrapHost *hostapi.CallerAPI) (*Module, error) {
	p, err := plugin.Open(path)
	if err != nil {
		return nil, fmt.Errorf("pluginloader: open %s: %w", path, err)
	}

	sym, err := p.Lookup("GenGetInfo")
	if err != nil {
		return nil, wrapMissingSymbol(path, "GenGetInfo", err)
	}

	// An exported function has an unnamed func type, so it is matched by
	// its signature; a value of the named GenGetInfoFunc type is accepted
	// too. Anything else, including a type from a different package with
	// the same shape, is rejected. The same applies in loadBatteryPlatform.
	var fn GenGetInfoFunc
	switch f := sym.(type) {
	case func(*hostapi.CallerAPI) (*generator.Descriptor, bool):
		fn = f
	case GenGetInfoFunc:
		fn = f
	default:
		return nil, fmt.Errorf("pluginloader: %s: GenGetInfo has unexpected type %T", path, sym)
	}

	descriptor, ok := fn(bootstrapHost)
	if !ok {
		return nil, fmt.Errorf("pluginloader: %s: %w", path, ErrInitFailed)
	}

	return &Module{Descriptor: descriptor, path: path, handle: p}, nil
}

func loadBatteryPlatform(path string) (BatteryFunc, error) {
	p, err := plugin.Open(path)
	if err != nil {
		return nil, fmt.Errorf("pluginloader: open %s: %w", path, err)
	}

	sym, err := p.Lookup("BatteryFunc")
	if err != nil {
		return nil, wrapMissingSymbol(path, "BatteryFunc", err)
	}

	switch f := sym.(type) {
	case func(*generator.Descriptor, *hostapi.CallerAPI, map[string]string) int:
		return f, nil
	case BatteryFunc:
		return f, nil
	default:
		return nil, fmt.Errorf("pluginloader: %s: BatteryFunc has unexpected type %T", path, sym)
	}
}
