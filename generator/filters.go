// Copyright (c) 2024-2026 SmokeRand Authors
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.

package generator

import (
	"fmt"

	"github.com/smokerand/smokerand/bitutil"
	"github.com/smokerand/smokerand/hostapi"
)

// ReverseBitsFilter builds a new descriptor that yields
// reverse_bits_w(parent.next()) for w equal to the parent's native width.
// Bit-reversal is an involution, so filtering twice returns the original
// stream.
func ReverseBitsFilter(parent *Descriptor) *Descriptor {
	return &Descriptor{
		Name:        parent.Name + "+reverse-bits",
		Description: "bit-reversed: " + parent.Description,
		NBits:       parent.NBits,
		Parent:      parent,
		NewState: func(host *hostapi.CallerAPI) (State, error) {
			ps, err := Acquire(parent, host)
			if err != nil {
				return nil, err
			}
			return &reverseBitsState{parent: ps}, nil
		},
	}
}

type reverseBitsState struct {
	parent *Instance
}

func (s *reverseBitsState) Next() uint64 {
	v := s.parent.Next()
	if s.parent.Descriptor.NBits == 32 {
		return uint64(bitutil.ReverseBits32(uint32(v)))
	}
	return bitutil.ReverseBits64(v)
}

func (s *reverseBitsState) Free() { s.parent.Release() }

// Interleaved32Filter builds a new descriptor that, for a 64-bit parent,
// yields the low 32 bits then the high 32 bits of each parent word, in
// that order: two 32-bit outputs per parent call. Applying it to a
// 32-bit parent is a fatal configuration error.
func Interleaved32Filter(parent *Descriptor) (*Descriptor, error) {
	if parent.NBits != 64 {
		return nil, fmt.Errorf("interleaved32: %w", ErrInvalidWidth)
	}
	return &Descriptor{
		Name:        parent.Name + "+interleaved32",
		Description: "low/high 32-bit halves interleaved: " + parent.Description,
		NBits:       32,
		Parent:      parent,
		NewState: func(host *hostapi.CallerAPI) (State, error) {
			ps, err := Acquire(parent, host)
			if err != nil {
				return nil, err
			}
			return &interleavedState{parent: ps, havePending: false}, nil
		},
	}, nil
}

// interleavedState holds a 2-slot buffer and a position cursor: each
// parent draw fills both slots, and Next drains them low half first.
type interleavedState struct {
	parent      *Instance
	pendingHigh uint32
	havePending bool
}

func (s *interleavedState) Next() uint64 {
	if s.havePending {
		s.havePending = false
		return uint64(s.pendingHigh)
	}
	word := s.parent.Next()
	s.pendingHigh = uint32(word >> 32)
	s.havePending = true
	return uint64(uint32(word))
}

func (s *interleavedState) Free() { s.parent.Release() }

// High32Filter builds a new descriptor that yields only the upper 32 bits
// of each 64-bit parent word. Applying it to a 32-bit parent is a fatal
// configuration error.
func High32Filter(parent *Descriptor) (*Descriptor, error) {
	if parent.NBits != 64 {
		return nil, fmt.Errorf("high32: %w", ErrInvalidWidth)
	}
	return &Descriptor{
		Name:        parent.Name + "+high32",
		Description: "high 32 bits: " + parent.Description,
		NBits:       32,
		Parent:      parent,
		NewState: func(host *hostapi.CallerAPI) (State, error) {
			ps, err := Acquire(parent, host)
			if err != nil {
				return nil, err
			}
			return &halfState{parent: ps, high: true}, nil
		},
	}, nil
}

// Low32Filter builds a new descriptor that yields only the lower 32 bits
// of each 64-bit parent word. Applying it to a 32-bit parent is a fatal
// configuration error.
func Low32Filter(parent *Descriptor) (*Descriptor, error) {
	if parent.NBits != 64 {
		return nil, fmt.Errorf("low32: %w", ErrInvalidWidth)
	}
	return &Descriptor{
		Name:        parent.Name + "+low32",
		Description: "low 32 bits: " + parent.Description,
		NBits:       32,
		Parent:      parent,
		NewState: func(host *hostapi.CallerAPI) (State, error) {
			ps, err := Acquire(parent, host)
			if err != nil {
				return nil, err
			}
			return &halfState{parent: ps, high: false}, nil
		},
	}, nil
}

type halfState struct {
	parent *Instance
	high   bool
}

func (s *halfState) Next() uint64 {
	word := s.parent.Next()
	if s.high {
		return word >> 32
	}
	return word & 0xFFFFFFFF
}

func (s *halfState) Free() { s.parent.Release() }
