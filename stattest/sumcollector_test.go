// Copyright (c) 2024-2026 SmokeRand Authors
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.

package stattest

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSumCollectorTestProducesValidPValue(t *testing.T) {
	in := acquireReference(t)
	r := SumCollectorTest(8, 3000).Run(in)
	assert.Equal(t, "sumcollector", r.Name)
	assert.GreaterOrEqual(t, r.P, 0.0)
	assert.LessOrEqual(t, r.P, 1.0)
}
