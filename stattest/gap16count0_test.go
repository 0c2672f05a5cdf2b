// Copyright (c) 2024-2026 SmokeRand Authors
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.

package stattest

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGap16Count0TestProducesValidPValue(t *testing.T) {
	in := acquireReference(t)
	r := Gap16Count0Test(5).Run(in)
	assert.Equal(t, "gap16_count0", r.Name)
	assert.GreaterOrEqual(t, r.P, 0.0)
	assert.LessOrEqual(t, r.P, 1.0)
}
