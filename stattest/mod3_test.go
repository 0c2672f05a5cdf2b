// Copyright (c) 2024-2026 SmokeRand Authors
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.

package stattest

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestModThreeTestProducesValidPValue(t *testing.T) {
	in := acquireReference(t)
	r := ModThreeTest(30000).Run(in)
	assert.Equal(t, "mod3", r.Name)
	assert.GreaterOrEqual(t, r.P, 0.0)
	assert.LessOrEqual(t, r.P, 1.0)
}

func TestMod3CellProbabilitiesSumToOne(t *testing.T) {
	for _, width := range []int{8, 32, 64} {
		probs := mod3CellProbabilities(width)
		sum := probs[0] + probs[1] + probs[2]
		assert.InDelta(t, 1.0, sum, 1e-9)
	}
}
