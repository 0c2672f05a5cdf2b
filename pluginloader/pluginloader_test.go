// Copyright (c) 2024-2026 SmokeRand Authors
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.

package pluginloader

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadMissingFileIsConfigurationError(t *testing.T) {
	_, err := Load("/nonexistent/does-not-exist.so", nil)
	assert.Error(t, err)
}

func TestLoadBatteryMissingFileIsConfigurationError(t *testing.T) {
	_, err := LoadBattery("/nonexistent/does-not-exist.so")
	assert.Error(t, err)
}

func TestModuleUnloadIsIdempotentNoOp(t *testing.T) {
	m := &Module{path: "fake"}
	assert.NoError(t, m.Unload())
	assert.NoError(t, m.Unload())
	assert.Equal(t, "fake", m.Path())
}
