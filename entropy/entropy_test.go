// Copyright (c) 2024-2026 SmokeRand Authors
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.

package entropy

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAESCoreSelfTest(t *testing.T) {
	c := newAESCTRCore()
	require.NoError(t, c.SelfTest())
}

func TestChaCha20CoreSelfTest(t *testing.T) {
	c := newChaCha20Core()
	require.NoError(t, c.SelfTest())
}

func TestServiceSelfTest(t *testing.T) {
	for _, kind := range []CoreKind{CoreAESCTR, CoreChaCha20} {
		s := NewService(kind)
		assert.NoError(t, s.SelfTest())
	}
}

func TestBase64SeedRoundTrip(t *testing.T) {
	var seed [32]byte
	for i := range seed {
		seed[i] = byte(i * 7)
	}
	encoded := EncodeBase64Seed(16, seed)
	assert.Len(t, encoded, 1+2+1+43)

	threads, decoded, err := DecodeBase64Seed(encoded)
	require.NoError(t, err)
	assert.Equal(t, 16, threads)
	assert.Equal(t, seed, decoded)
}

func TestDecodeBase64SeedRejectsBadLength(t *testing.T) {
	_, _, err := DecodeBase64Seed("_04_tooshort")
	assert.Error(t, err)
}

func TestFixedTextSeedIsReproducible(t *testing.T) {
	run := func() []uint64 {
		s := NewService(CoreAESCTR)
		require.NoError(t, s.SetTextSeed("correct horse battery staple"))
		out := make([]uint64, 8)
		for i := range out {
			out[i] = s.Seed64(0)
		}
		return out
	}
	a := run()
	b := run()
	assert.Equal(t, a, b)
}

func TestSeedLogOrderingUnderConcurrency(t *testing.T) {
	s := NewService(CoreAESCTR)
	require.NoError(t, s.SetTextSeed("ordering-test"))

	const workers = 8
	const perWorker = 50
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(ord int) {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				s.Seed64(ord)
			}
		}(w)
	}
	wg.Wait()

	log := s.SeedLog()
	assert.Len(t, log, workers*perWorker)

	seen := make(map[int]int)
	for _, e := range log {
		seen[e.ThreadOrd]++
		assert.Equal(t, seen[e.ThreadOrd], e.CallCount)
	}
	assert.Len(t, seen, workers)
}

func TestDefaultSingletonIsStable(t *testing.T) {
	ResetDefault()
	a := Default()
	b := Default()
	assert.Same(t, a, b)
	ResetDefault()
}
