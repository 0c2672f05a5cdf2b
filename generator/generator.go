// Copyright (c) 2024-2026 SmokeRand Authors
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.

// Package generator is the uniform abstraction the statistical test
// library invokes a PRNG through: a Descriptor describes a generator's
// operations, a State is the opaque per-worker instance created from one,
// and filter wrappers (bit-reverse, interleaved-32, high/low half) build
// new descriptors that transform an existing generator's output stream.
//
// Every Descriptor treats its State as a capability value carrying only
// Next/Free/SelfTest/BulkSum, never a common field layout,
// design note that a plugin's concrete state type must stay private to it.
package generator

import (
	"errors"
	"fmt"

	"github.com/smokerand/smokerand/hostapi"
)

// State is the opaque per-worker instance of a generator. Implementations
// are created by a Descriptor's NewState and are never shared across
// goroutines; the engine guarantees Next is called by at most one
// goroutine per State at any time.
type State interface {
	// Next returns the generator's next output word. For a 32-bit
	// descriptor only the low 32 bits are meaningful; for a 64-bit
	// descriptor the full 64 bits are.
	Next() uint64

	// Free releases any resources the state holds. It is called exactly
	// once, on every control-flow exit, by Release.
	Free()
}

// SelfTester is implemented by states that can verify themselves against a
// fixed vector before use.
type SelfTester interface {
	SelfTest() error
}

// BulkSummer is implemented by states that expose a fast bulk-draw
// operation, used by tests (e.g. collision counting) that only need a
// running sum or checksum of many draws rather than each individual word.
type BulkSummer interface {
	BulkSum(n uint64) uint64
}

// Descriptor is the externally-visible record of a generator's identity
// and operations, generator descriptor data model.
type Descriptor struct {
	// Name is the generator's display name.
	Name string
	// Description is a free-form human-readable description.
	Description string
	// NBits is the native output width: 32 or 64.
	NBits int
	// NewState constructs a fresh per-worker State. host gives the
	// generator the vocabulary plugin ABI defines: seed draws,
	// the battery parameter string, RAM info, and the diagnostic sink.
	NewState func(host *hostapi.CallerAPI) (State, error)
	// Parent is non-nil for a filter descriptor: the wrapped, unfiltered
	// source descriptor.
	Parent *Descriptor
}

// ErrInvalidWidth is returned when a filter that requires a 64-bit parent
// (interleaved32, high32, low32) is applied to a 32-bit generator. Per
// this is a fatal configuration error, not a recoverable one.
var ErrInvalidWidth = errors.New("generator: filter requires a 64-bit parent")

// ErrUnsupportedWidth is returned by Acquire/Descriptor validation when
// NBits is neither 32 nor 64.
var ErrUnsupportedWidth = errors.New("generator: nbits must be 32 or 64")

// validateWidth enforces the invariant nbits in {32,64}.
func validateWidth(nbits int) error {
	if nbits != 32 && nbits != 64 {
		return fmt.Errorf("%w: got %d", ErrUnsupportedWidth, nbits)
	}
	return nil
}

// Instance is a bracketed acquisition of a Descriptor's State: construct
// with Acquire, always release with Release on every control-flow exit,
// including an error return or a panic recovered upstream.
type Instance struct {
	Descriptor *Descriptor
	state      State
}

// Acquire constructs a new Instance from d, validating d's width and
// propagating any construction error from d.NewState.
func Acquire(d *Descriptor, host *hostapi.CallerAPI) (*Instance, error) {
	if err := validateWidth(d.NBits); err != nil {
		return nil, err
	}
	st, err := d.NewState(host)
	if err != nil {
		return nil, fmt.Errorf("generator: %s: construct state: %w", d.Name, err)
	}
	return &Instance{Descriptor: d, state: st}, nil
}

// Next returns the generator's next output word, masked to the
// descriptor's native width.
func (in *Instance) Next() uint64 {
	v := in.state.Next()
	if in.Descriptor.NBits == 32 {
		return v & 0xFFFFFFFF
	}
	return v
}

// Next32 is a convenience accessor for 32-bit descriptors.
func (in *Instance) Next32() uint32 { return uint32(in.Next()) }

// SelfTest runs the underlying state's self-test, if it implements one. A
// state with no self-test reports success trivially.
func (in *Instance) SelfTest() error {
	if st, ok := in.state.(SelfTester); ok {
		return st.SelfTest()
	}
	return nil
}

// BulkSum reports n successive draws summed, using the state's fast path
// if available and falling back to calling Next n times otherwise.
func (in *Instance) BulkSum(n uint64) uint64 {
	if bs, ok := in.state.(BulkSummer); ok {
		return bs.BulkSum(n)
	}
	var sum uint64
	for i := uint64(0); i < n; i++ {
		sum += in.Next()
	}
	return sum
}

// Release frees the underlying state. Callers must not use the Instance
// afterward.
func (in *Instance) Release() {
	in.state.Free()
}

// State returns the underlying State value. It exists for filters and
// diagnostics (e.g. StdinState) that need a type assertion down to a
// concrete generator's state; ordinary test code should prefer
// Next/BulkSum/SelfTest/Release.
func (in *Instance) State() State {
	return in.state
}
