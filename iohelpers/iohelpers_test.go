// Copyright (c) 2024-2026 SmokeRand Authors
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.

package iohelpers

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smokerand/smokerand/generator"
	"github.com/smokerand/smokerand/hostapi"
)

type counterState struct{ n uint32 }

func (c *counterState) Next() uint64 { c.n++; return uint64(c.n) }
func (c *counterState) Free()        {}

func counterDescriptor() *generator.Descriptor {
	return &generator.Descriptor{
		Name:  "counter32",
		NBits: 32,
		NewState: func(*hostapi.CallerAPI) (generator.State, error) {
			return &counterState{}, nil
		},
	}
}

func TestEnsureBinaryStdioIsCallable(t *testing.T) {
	assert.NotPanics(t, func() { EnsureBinaryStdio() })
}

func TestStdoutDumpWritesExactByteCount(t *testing.T) {
	in, err := generator.Acquire(counterDescriptor(), nil)
	require.NoError(t, err)

	var buf bytes.Buffer
	// maxLenLog2=10 -> 1024 bytes, 256 words of 4 bytes each.
	n, err := StdoutDump(&buf, in, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 1024, n)
	assert.Equal(t, 1024, buf.Len())
}

func TestStdoutDumpChunksAcrossMultipleWrites(t *testing.T) {
	in, err := generator.Acquire(counterDescriptor(), nil)
	require.NoError(t, err)

	var buf bytes.Buffer
	// 2048 bytes = 512 words = two 256-word chunks.
	n, err := StdoutDump(&buf, in, 11)
	require.NoError(t, err)
	assert.EqualValues(t, 2048, n)

	first := appendWord(nil, 1, 4)
	assert.Equal(t, first, buf.Bytes()[:4])
}

func TestAppendWordLittleEndianTruncation(t *testing.T) {
	buf := appendWord(nil, 0x0102030405060708, 4)
	assert.Equal(t, []byte{0x08, 0x07, 0x06, 0x05}, buf)

	buf8 := appendWord(nil, 0x0102030405060708, 8)
	assert.Equal(t, []byte{0x08, 0x07, 0x06, 0x05, 0x04, 0x03, 0x02, 0x01}, buf8)
}

func TestStdoutDumpRedirectsPrintfSinkToStderr(t *testing.T) {
	in, err := generator.Acquire(counterDescriptor(), nil)
	require.NoError(t, err)

	var buf bytes.Buffer
	_, err = StdoutDump(&buf, in, 6)
	require.NoError(t, err)
	assert.Equal(t, os.Stderr, hostapi.DefaultSink)
}
