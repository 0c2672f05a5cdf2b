// Copyright (c) 2024-2026 SmokeRand Authors
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.

package bitutil

import (
	"math/rand"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPopcountRoundTrip(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	for i := 0; i < 1000; i++ {
		x := r.Uint64()
		assert.Equal(t, 64, Popcount64(x)+Popcount64(^x))
	}
}

func TestReverseBitsInvolution(t *testing.T) {
	r := rand.New(rand.NewSource(2))
	for i := 0; i < 1000; i++ {
		x8 := uint8(r.Uint32())
		assert.Equal(t, x8, ReverseBits8(ReverseBits8(x8)))

		x32 := r.Uint32()
		assert.Equal(t, x32, ReverseBits32(ReverseBits32(x32)))

		x64 := r.Uint64()
		assert.Equal(t, x64, ReverseBits64(ReverseBits64(x64)))
	}
}

func TestRadixSortUint64SortsAndPreservesMultiset(t *testing.T) {
	r := rand.New(rand.NewSource(3))
	data := make([]uint64, 5000)
	for i := range data {
		data[i] = r.Uint64()
	}
	want := append([]uint64(nil), data...)
	sort.Slice(want, func(i, j int) bool { return want[i] < want[j] })

	RadixSortUint64(data)
	assert.Equal(t, want, data)
}

func TestRadixSortUint32(t *testing.T) {
	r := rand.New(rand.NewSource(4))
	data := make([]uint32, 5000)
	for i := range data {
		data[i] = r.Uint32()
	}
	want := append([]uint32(nil), data...)
	sort.Slice(want, func(i, j int) bool { return want[i] < want[j] })

	RadixSortUint32(data)
	assert.Equal(t, want, data)
}

func TestQuicksortUint64(t *testing.T) {
	r := rand.New(rand.NewSource(5))
	data := make([]uint64, 2000)
	for i := range data {
		data[i] = r.Uint64()
	}
	want := append([]uint64(nil), data...)
	sort.Slice(want, func(i, j int) bool { return want[i] < want[j] })

	QuicksortUint64(data)
	assert.Equal(t, want, data)
}

func TestFastSort64ChoosesByMemoryPressure(t *testing.T) {
	data := make([]uint64, 100)
	for i := range data {
		data[i] = uint64(100 - i)
	}
	// Plenty of RAM: radix path.
	FastSort64(RAMInfo{AvailableBytes: 1 << 30}, data)
	assert.True(t, sort.SliceIsSorted(data, func(i, j int) bool { return data[i] < data[j] }))

	for i := range data {
		data[i] = uint64(100 - i)
	}
	// Starved of RAM: quicksort path, same observable result.
	FastSort64(RAMInfo{AvailableBytes: 0}, data)
	assert.True(t, sort.SliceIsSorted(data, func(i, j int) bool { return data[i] < data[j] }))
}
