// Copyright (c) 2024-2026 SmokeRand Authors
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.

package stattest

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGapTestProducesValidPValue(t *testing.T) {
	in := acquireReference(t)
	r := GapTest(3, 2000).Run(in)
	assert.Equal(t, "gap", r.Name)
	assert.GreaterOrEqual(t, r.P, 0.0)
	assert.LessOrEqual(t, r.P, 1.0)
}

func TestGapCellProbabilitySumsToOne(t *testing.T) {
	const cells = 20
	alpha := 1.0 / 8
	sum := 0.0
	for i := 0; i < cells; i++ {
		sum += gapCellProbability(i, cells, alpha)
	}
	assert.InDelta(t, 1.0, sum, 1e-9)
}
