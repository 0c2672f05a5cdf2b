// Copyright (c) 2024-2026 SmokeRand Authors
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.

//go:build !linux

package pluginloader

import (
	"fmt"
	"runtime"

	"github.com/smokerand/smokerand/hostapi"
)

// loadPlatform reports a configuration error on platforms Go's plugin
// package does not support (everything but linux, as of this writing),
// matching "native loader error" failure mode rather than
// silently degrading.
func loadPlatform(path string, bootstrapHost *hostapi.CallerAPI) (*Module, error) {
	return nil, fmt.Errorf("pluginloader: dynamic plugin loading is not supported on %s", runtime.GOOS)
}

func loadBatteryPlatform(path string) (BatteryFunc, error) {
	return nil, fmt.Errorf("pluginloader: dynamic plugin loading is not supported on %s", runtime.GOOS)
}
