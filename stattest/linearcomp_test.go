// Copyright (c) 2024-2026 SmokeRand Authors
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.

package stattest

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLinearComplexityTestProducesValidPValue(t *testing.T) {
	in := acquireReference(t)
	r := LinearComplexityTest(64, 50).Run(in)
	assert.Equal(t, "linearcomp", r.Name)
	assert.GreaterOrEqual(t, r.P, 0.0)
	assert.LessOrEqual(t, r.P, 1.0)
}

func TestBerlekampMasseyOnAllZeroSequenceIsZero(t *testing.T) {
	bits := make([]byte, 32)
	assert.Equal(t, 0, berlekampMasseyComplexity(bits))
}

func TestBerlekampMasseyOnAlternatingSequence(t *testing.T) {
	bits := make([]byte, 16)
	for i := range bits {
		bits[i] = byte(i % 2)
	}
	// An alternating 0/1 sequence is generated by a 2-tap LFSR.
	assert.LessOrEqual(t, berlekampMasseyComplexity(bits), 2)
}

func TestLinearComplexityBinBoundaries(t *testing.T) {
	assert.Equal(t, 0, linearComplexityBin(-3))
	assert.Equal(t, 3, linearComplexityBin(0))
	assert.Equal(t, 6, linearComplexityBin(3))
}
