// Copyright (c) 2024-2026 SmokeRand Authors
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.

package generator

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smokerand/smokerand/hostapi"
)

// counterDescriptor builds a trivial deterministic 64-bit generator that
// counts up from 0, used to exercise filters without depending on a real
// cipher.
func counterDescriptor() *Descriptor {
	return &Descriptor{
		Name:  "counter",
		NBits: 64,
		NewState: func(host *hostapi.CallerAPI) (State, error) {
			return &counterState{}, nil
		},
	}
}

type counterState struct{ n uint64 }

func (c *counterState) Next() uint64 { c.n++; return c.n }
func (c *counterState) Free()        {}

func TestReverseBitsInvolution(t *testing.T) {
	d := ReverseBitsFilter(ReverseBitsFilter(counterDescriptor()))
	in, err := Acquire(d, nil)
	require.NoError(t, err)
	defer in.Release()

	assert.Equal(t, uint64(1), in.Next())
	assert.Equal(t, uint64(2), in.Next())
}

func TestInterleaved32EmitsTwoPerParentCall(t *testing.T) {
	d, err := Interleaved32Filter(counterDescriptor())
	require.NoError(t, err)
	in, err := Acquire(d, nil)
	require.NoError(t, err)
	defer in.Release()

	// Parent's first word is 1 = 0x0000000000000001: low=1, high=0.
	assert.Equal(t, uint64(1), in.Next())
	assert.Equal(t, uint64(0), in.Next())
	// Parent's second word is 2: low=2, high=0.
	assert.Equal(t, uint64(2), in.Next())
	assert.Equal(t, uint64(0), in.Next())
}

func TestInterleaved32RejectsNonDevice32BitParent(t *testing.T) {
	parent32 := &Descriptor{Name: "p32", NBits: 32, NewState: func(host *hostapi.CallerAPI) (State, error) {
		return &counterState{}, nil
	}}
	_, err := Interleaved32Filter(parent32)
	assert.ErrorIs(t, err, ErrInvalidWidth)

	_, err = High32Filter(parent32)
	assert.ErrorIs(t, err, ErrInvalidWidth)

	_, err = Low32Filter(parent32)
	assert.ErrorIs(t, err, ErrInvalidWidth)
}

func TestHighLow32Filters(t *testing.T) {
	hi, err := High32Filter(counterDescriptor())
	require.NoError(t, err)
	inHi, err := Acquire(hi, nil)
	require.NoError(t, err)
	defer inHi.Release()
	assert.Equal(t, uint64(0), inHi.Next()) // word 1 >> 32 == 0

	lo, err := Low32Filter(counterDescriptor())
	require.NoError(t, err)
	inLo, err := Acquire(lo, nil)
	require.NoError(t, err)
	defer inLo.Release()
	assert.Equal(t, uint64(1), inLo.Next())
}

func TestStdinCollectorReadsAndRecordsShortRead(t *testing.T) {
	var buf bytes.Buffer
	var w1, w2 uint64 = 0x1122334455667788, 0xAABBCCDDEEFF0011
	_ = binary.Write(&buf, binary.LittleEndian, w1)
	_ = binary.Write(&buf, binary.LittleEndian, w2)

	d := NewStdinDescriptor(&buf, StdinWidth64)
	in, err := Acquire(d, nil)
	require.NoError(t, err)
	defer in.Release()

	assert.Equal(t, w1, in.Next())
	assert.Equal(t, w2, in.Next())
	assert.Equal(t, uint64(0), in.Next()) // short read, returns zero

	count, short, ok := StdinState(in)
	require.True(t, ok)
	assert.Equal(t, uint64(2), count)
	assert.True(t, short)
}

func TestReferenceGeneratorProducesVaryingOutput(t *testing.T) {
	d := Reference()
	in, err := Acquire(d, nil)
	require.NoError(t, err)
	defer in.Release()

	a := in.Next()
	b := in.Next()
	assert.NotEqual(t, a, b)
}
