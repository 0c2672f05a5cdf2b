// Copyright (c) 2024-2026 SmokeRand Authors
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.

package generator

import (
	"encoding/binary"
	"io"
	"sync"

	"github.com/smokerand/smokerand/hostapi"
)

// StdinWidth selects whether NewStdinDescriptor reads 32- or 64-bit
// little-endian words from its source.
type StdinWidth int

const (
	StdinWidth32 StdinWidth = 32
	StdinWidth64 StdinWidth = 64
)

// NewStdinDescriptor builds a descriptor around the pseudo-generator
// describes: it reads fixed-width little-endian words from r
// and returns them verbatim. On EOF, further calls return zero and the
// collector records a short read, surfaced via StdinState for the
// reporter to display.
func NewStdinDescriptor(r io.Reader, width StdinWidth) *Descriptor {
	nbits := int(width)
	return &Descriptor{
		Name:        "stdin",
		Description: "collector reading words verbatim from standard input",
		NBits:       nbits,
		NewState: func(host *hostapi.CallerAPI) (State, error) {
			return &stdinState{r: r, width: width}, nil
		},
	}
}

// stdinState is the stateful collector. Next, Count and ShortRead all
// lock mu, so the diagnostics can be read while another goroutine draws.
type stdinState struct {
	mu        sync.Mutex
	r         io.Reader
	width     StdinWidth
	count     uint64
	shortRead bool
}

func (s *stdinState) Next() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.shortRead {
		return 0
	}

	var buf [8]byte
	n := 4
	if s.width == StdinWidth64 {
		n = 8
	}
	if _, err := io.ReadFull(s.r, buf[:n]); err != nil {
		s.shortRead = true
		return 0
	}
	s.count++
	if s.width == StdinWidth64 {
		return binary.LittleEndian.Uint64(buf[:8])
	}
	return uint64(binary.LittleEndian.Uint32(buf[:4]))
}

func (s *stdinState) Free() {}

// Count returns the number of words successfully read so far.
func (s *stdinState) Count() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.count
}

// ShortRead reports whether the underlying reader hit EOF before
// satisfying a word-sized read.
func (s *stdinState) ShortRead() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.shortRead
}

// StdinState exposes the collector's diagnostics (word count, short-read
// flag) to a caller holding the Instance produced by Acquire, for the
// reporter to surface, "the reporter surfaces this count".
func StdinState(in *Instance) (count uint64, shortRead bool, ok bool) {
	ss, ok := in.State().(*stdinState)
	if !ok {
		return 0, false, false
	}
	return ss.Count(), ss.ShortRead(), true
}
