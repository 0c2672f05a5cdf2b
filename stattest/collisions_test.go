// Copyright (c) 2024-2026 SmokeRand Authors
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.

package stattest

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBspaceNDTestProducesValidPValue(t *testing.T) {
	in := acquireReference(t)
	r := BspaceNDTest(2, 10, 500).Run(in)
	assert.Equal(t, "bspace_nd", r.Name)
	assert.GreaterOrEqual(t, r.P, 0.0)
	assert.LessOrEqual(t, r.P, 1.0)
}

func TestBspace8_8dDecimatedTestProducesValidPValue(t *testing.T) {
	in := acquireReference(t)
	r := Bspace8_8dDecimatedTest(200, 4).Run(in)
	assert.Equal(t, "bspace8_8d_decimated", r.Name)
	assert.GreaterOrEqual(t, r.P, 0.0)
	assert.LessOrEqual(t, r.P, 1.0)
}

func TestCollisionOverTestProducesValidPValue(t *testing.T) {
	in := acquireReference(t)
	r := CollisionOverTest(8, 2000).Run(in)
	assert.Equal(t, "collisionover", r.Name)
	assert.GreaterOrEqual(t, r.P, 0.0)
	assert.LessOrEqual(t, r.P, 1.0)
}

func TestBirthdayTestProducesValidPValue(t *testing.T) {
	in := acquireReference(t)
	r := BirthdayTest(8, 300).Run(in)
	assert.Equal(t, "birthday", r.Name)
	assert.GreaterOrEqual(t, r.P, 0.0)
	assert.LessOrEqual(t, r.P, 1.0)
}

func TestBspaceCollisionsFindsExactDuplicates(t *testing.T) {
	samples := []uint64{1, 1, 2, 3, 3, 3}
	collisions, lambda := bspaceCollisions(samples, 1024)
	assert.GreaterOrEqual(t, collisions, 0)
	assert.Greater(t, lambda, 0.0)
}
