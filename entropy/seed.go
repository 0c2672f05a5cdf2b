// Copyright (c) 2024-2026 SmokeRand Authors
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.

package entropy

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// base64SeedEncoding is the URL-safe, unpadded alphabet the textual seed
// encoding uses: 43 characters encode exactly 256 bits (32 bytes), since
// base64.RawURLEncoding.EncodedLen(32) == 43.
var base64SeedEncoding = base64.RawURLEncoding

// EncodeBase64Seed formats a 256-bit seed and a thread count into the
// "_NN_<43 chars>" form: an underscore, two hex digits giving the thread
// count, an underscore, then the URL-safe base64 encoding of the 32-byte
// seed.
func EncodeBase64Seed(threads int, seed [32]byte) string {
	return fmt.Sprintf("_%02x_%s", threads, base64SeedEncoding.EncodeToString(seed[:]))
}

// DecodeBase64Seed parses the "_NN_<43 chars>" form, returning the thread
// count and seed. Any other length or malformed hex/base64 content is
// rejected, "Parsing rejects any other length."
func DecodeBase64Seed(s string) (threads int, seed [32]byte, err error) {
	const wantLen = 1 + 2 + 1 + 43 // '_' NN '_' 43-char body
	if len(s) != wantLen {
		return 0, seed, fmt.Errorf("entropy: base64 seed must be %d characters, got %d", wantLen, len(s))
	}
	if s[0] != '_' || s[3] != '_' {
		return 0, seed, fmt.Errorf("entropy: base64 seed missing underscore delimiters")
	}
	threads64, err := strconv.ParseUint(s[1:3], 16, 8)
	if err != nil {
		return 0, seed, fmt.Errorf("entropy: invalid thread-count hex %q: %w", s[1:3], err)
	}
	body := s[4:]
	decoded, err := base64SeedEncoding.DecodeString(body)
	if err != nil {
		return 0, seed, fmt.Errorf("entropy: invalid base64 body: %w", err)
	}
	if len(decoded) != 32 {
		return 0, seed, fmt.Errorf("entropy: decoded seed must be 32 bytes, got %d", len(decoded))
	}
	copy(seed[:], decoded)
	return int(threads64), seed, nil
}

// SetBase64Seed re-initializes the service's stream core from the "_NN_..."
// encoding, rejecting malformed input without mutating any state.
func (s *Service) SetBase64Seed(encoded string) error {
	if !strings.HasPrefix(encoded, "_") {
		return fmt.Errorf("entropy: base64 seed must start with '_'")
	}
	_, seed, err := DecodeBase64Seed(encoded)
	if err != nil {
		return err
	}
	s.SetSeed(seed)
	return nil
}

// GenerateBase64Seed draws 256 bits from the operating system's entropy
// pool and returns its base64-encoded form for the given thread count,
// suitable for a user who wants to record the seed used by an unseeded
// run before the fact is lost.
func GenerateBase64Seed(threads int) (string, error) {
	var seed [32]byte
	if _, err := io.ReadFull(rand.Reader, seed[:]); err != nil {
		return "", fmt.Errorf("entropy: reading OS entropy: %w", err)
	}
	return EncodeBase64Seed(threads, seed), nil
}

// selfTestBase64Codec verifies that EncodeBase64Seed/DecodeBase64Seed
// round-trip a fixed seed, as required by Service.SelfTest.
func selfTestBase64Codec() error {
	var seed [32]byte
	for i := range seed {
		seed[i] = byte(i)
	}
	encoded := EncodeBase64Seed(4, seed)
	threads, decoded, err := DecodeBase64Seed(encoded)
	if err != nil {
		return err
	}
	if threads != 4 {
		return fmt.Errorf("entropy: base64 codec self-test: thread count mismatch: got %d want 4", threads)
	}
	if decoded != seed {
		return fmt.Errorf("entropy: base64 codec self-test: seed mismatch")
	}
	return nil
}
