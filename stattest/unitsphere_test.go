// Copyright (c) 2024-2026 SmokeRand Authors
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.

package stattest

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUnitSphereTestProducesValidPValue(t *testing.T) {
	in := acquireReference(t)
	r := UnitSphereTest(3, 20000).Run(in)
	assert.Equal(t, "unitsphere", r.Name)
	assert.False(t, math.IsNaN(r.P))
	assert.GreaterOrEqual(t, r.P, 0.0)
	assert.LessOrEqual(t, r.P, 1.0)
}

func TestUnitBallVolumeKnownValues(t *testing.T) {
	assert.InDelta(t, 2.0, unitBallVolume(1), 1e-9)
	assert.InDelta(t, math.Pi, unitBallVolume(2), 1e-9)
	assert.InDelta(t, 4.0/3*math.Pi, unitBallVolume(3), 1e-9)
}
