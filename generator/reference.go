// Copyright (c) 2024-2026 SmokeRand Authors
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.

package generator

import (
	"encoding/binary"

	prngchacha "github.com/sixafter/prng-chacha"

	"github.com/smokerand/smokerand/hostapi"
)

// Reference returns the one generator the core ships without needing an
// external plugin: a 64-bit descriptor backed by
// github.com/sixafter/prng-chacha's pooled ChaCha20 io.Reader. It gives
// the engine a reference selection it can always run a battery or
// self-test against, even with no plugin available.
//
// Reference is not seeded from entropy.Service: it draws directly from
// prng-chacha's own cryptographically secure pool, by design, since its
// purpose is to exercise the engine end-to-end rather than to participate
// in the reproducible-seed-log contract plugin-backed generators follow.
func Reference() *Descriptor {
	return &Descriptor{
		Name:        "reference/prng-chacha",
		Description: "ChaCha20-backed reference generator (github.com/sixafter/prng-chacha)",
		NBits:       64,
		NewState: func(host *hostapi.CallerAPI) (State, error) {
			r, err := prngchacha.NewReader()
			if err != nil {
				return nil, err
			}
			return &referenceState{reader: r}, nil
		},
	}
}

type referenceState struct {
	reader prngchacha.Interface
}

func (s *referenceState) Next() uint64 {
	var buf [8]byte
	// prng-chacha's Reader.Read never returns a short read for a fixed
	// small buffer (it fills synchronously from a ChaCha20 keystream), so
	// the error return is not actionable here; a failure would indicate a
	// corrupt pool entry, which the generator abstraction has no recourse
	// for mid-stream.
	_, _ = s.reader.Read(buf[:])
	return binary.LittleEndian.Uint64(buf[:])
}

func (s *referenceState) Free() {}
