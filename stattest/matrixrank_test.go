// Copyright (c) 2024-2026 SmokeRand Authors
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.

package stattest

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatrixRankTestLowAndHigh(t *testing.T) {
	for _, high := range []bool{false, true} {
		in := acquireReference(t)
		r := MatrixRankTest(32, 200, high).Run(in)
		assert.GreaterOrEqual(t, r.P, 0.0)
		assert.LessOrEqual(t, r.P, 1.0)
	}
}

func TestGf2RankOfIdentityIsFull(t *testing.T) {
	rows := []uint64{0b100, 0b010, 0b001}
	assert.Equal(t, 3, gf2Rank(rows, 3))
}

func TestGf2RankOfDependentRowsIsDeficient(t *testing.T) {
	rows := []uint64{0b101, 0b101, 0b010}
	assert.Equal(t, 2, gf2Rank(rows, 3))
}

func TestMatrixRankProbabilitiesSumToOne(t *testing.T) {
	pFull, pMinus1, pRest := matrixRankProbabilities(32)
	assert.InDelta(t, 1.0, pFull+pMinus1+pRest, 1e-9)
}
