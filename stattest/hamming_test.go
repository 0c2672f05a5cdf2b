// Copyright (c) 2024-2026 SmokeRand Authors
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.

package stattest

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHammingDC6TestModes(t *testing.T) {
	cases := []HammingDC6Mode{
		HammingDC6Bytes, HammingDC6Words, HammingDC6Distance, HammingDC6Correlated,
	}
	for _, mode := range cases {
		in := acquireReference(t)
		r := HammingDC6Test(mode, 5000).Run(in)
		assert.Equal(t, "hamming_dc6", r.Name)
		assert.GreaterOrEqual(t, r.P, 0.0)
		assert.LessOrEqual(t, r.P, 1.0)
	}
}

func TestHammingDiffProbabilitySymmetric(t *testing.T) {
	assert.InDelta(t, hammingDiffProbability(3, 64), hammingDiffProbability(-3, 64), 1e-12)
}
