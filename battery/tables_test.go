// Copyright (c) 2024-2026 SmokeRand Authors
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.

package battery

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNamedResolvesAllFixedBatteries(t *testing.T) {
	for _, name := range []string{"express", "brief", "default", "full", "freq", "birthday", "ising", "unitsphere"} {
		b, ok := Named(name)
		require.True(t, ok, name)
		assert.Equal(t, name, b.Name)
		assert.NotEmpty(t, b.Tests)
	}
}

func TestNamedRejectsUnknownBattery(t *testing.T) {
	_, ok := Named("not-a-battery")
	assert.False(t, ok)
}

func TestFullIsSupersetOfDefaultTestCount(t *testing.T) {
	assert.Greater(t, len(Full().Tests), len(Default().Tests))
}

func TestDefaultIsSupersetOfBriefTestCount(t *testing.T) {
	assert.Greater(t, len(Default().Tests), len(Brief().Tests))
}
