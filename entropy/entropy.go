// Copyright (c) 2024-2026 SmokeRand Authors
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.

// Package entropy is the reproducible seed source backing every generator
// instance in the battery. A process-wide, mutex-guarded Service wraps a
// cipher-based stream core (an AES-CTR-DRBG or a ChaCha20 counter-mode
// stream) and hands out 64-bit seeds to worker threads in strict request
// order, recording every seed issued in an append-only log so a run can be
// reproduced exactly from its seed log.
//
// A Service is built by NewService from a CoreKind; there is no Config or
// Option surface. The package-level singleton (Default) is constructed
// lazily under a package-level mutex, which is separate from the
// per-Service mutex that guards Seed64.
package entropy

import (
	"crypto/sha256"
	"fmt"
	"sync"
)

// StreamCore is the cipher-based seed mixer abstraction. Implementations
// are not required to be safe for concurrent use; Service serializes all
// access under its own mutex.
type StreamCore interface {
	// NextUint64 returns the next 64-bit word of the keystream.
	NextUint64() uint64

	// Reseed re-initializes the core's key/counter from a 32-byte seed.
	Reseed(seed [32]byte)

	// SelfTest verifies the core against a fixed test vector, returning an
	// error describing the mismatch if verification fails.
	SelfTest() error
}

// CoreKind selects which StreamCore implementation a Service uses.
type CoreKind int

const (
	// CoreAESCTR selects the AES-CTR-DRBG core, grounded on
	// github.com/sixafter/aes-ctr-drbg. This is the default.
	CoreAESCTR CoreKind = iota
	// CoreChaCha20 selects the ChaCha20 counter-mode core, grounded on
	// github.com/sixafter/prng-chacha.
	CoreChaCha20
)

// SeedLogEntry records one seed issued to one worker thread.
type SeedLogEntry struct {
	// ThreadOrd is the requesting worker's thread ordinal.
	ThreadOrd int
	// CallCount is the 1-based index of this request within ThreadOrd's
	// sequence of seed requests.
	CallCount int
	// Seed is the 64-bit value delivered.
	Seed uint64
}

// Service is the process-wide entropy service. Its zero value is not
// usable; construct one with NewService or use Default.
type Service struct {
	mu        sync.Mutex
	core      StreamCore
	kind      CoreKind
	log       []SeedLogEntry
	callCount map[int]int
}

// NewService constructs a Service using the requested stream core, freshly
// seeded from the operating system's entropy pool. Construction never
// fails under normal operation; SetTextSeed and SetBase64Seed return the
// errors that can occur (malformed input), consistent with the
// teacher's "validate at the edge, never after" discipline.
func NewService(kind CoreKind) *Service {
	s := &Service{
		kind:      kind,
		callCount: make(map[int]int),
	}
	s.core = newCore(kind)
	return s
}

func newCore(kind CoreKind) StreamCore {
	switch kind {
	case CoreChaCha20:
		return newChaCha20Core()
	default:
		return newAESCTRCore()
	}
}

// defaultMu and defaultService back the package-level Default singleton,
// lazily constructed under defaultMu rather than by static construction
// with unspecified initialization ordering. defaultMu is not the mutex
// that guards Seed64; each Service has its own.
var (
	defaultMu      sync.Mutex
	defaultService *Service
)

// Default returns the process-wide entropy Service, constructing it on
// first call. Every subsequent call returns the same instance.
func Default() *Service {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	if defaultService == nil {
		defaultService = NewService(CoreAESCTR)
	}
	return defaultService
}

// ResetDefault discards the package-level singleton; the next Default call
// constructs a fresh one. It
// exists for tests and for a front end that wants to start a fresh battery
// run with a clean seed log; ordinary callers never need it.
func ResetDefault() {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	defaultService = nil
}

// Seed64 returns the next seed for the given worker thread ordinal,
// recording the issuance in the seed log. Access is mutex-guarded, so
// concurrent callers from different workers are totally ordered; the order
// observed is the order in which Seed64 calls reach the lock, which is the
// only cross-thread ordering guarantee the engine makes.
func (s *Service) Seed64(threadOrd int) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	v := s.core.NextUint64()
	s.callCount[threadOrd]++
	s.log = append(s.log, SeedLogEntry{
		ThreadOrd: threadOrd,
		CallCount: s.callCount[threadOrd],
		Seed:      v,
	})
	return v
}

// SeedLog returns a copy of the append-only log of seeds issued so far.
// The reporter dumps this at battery completion so the run can be
// reproduced exactly.
func (s *Service) SeedLog() []SeedLogEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]SeedLogEntry, len(s.log))
	copy(out, s.log)
	return out
}

// SetTextSeed re-initializes the stream core from a UTF-8 passphrase via
// key derivation (SHA-256 over the passphrase bytes, used directly as the
// 256-bit seed). Re-seeding resets the call-count bookkeeping so that a
// fixed textual seed reproduces the same sequence of per-thread seeds on
// every run.
func (s *Service) SetTextSeed(passphrase string) error {
	if passphrase == "" {
		return fmt.Errorf("entropy: empty textual seed")
	}
	digest := sha256.Sum256([]byte(passphrase))
	s.mu.Lock()
	defer s.mu.Unlock()
	s.core.Reseed(digest)
	s.log = nil
	s.callCount = make(map[int]int)
	return nil
}

// SetSeed re-initializes the stream core directly from a 256-bit seed,
// resetting the log exactly as SetTextSeed does. It is the common path
// shared by SetBase64Seed once the encoding has been decoded.
func (s *Service) SetSeed(seed [32]byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.core.Reseed(seed)
	s.log = nil
	s.callCount = make(map[int]int)
}

// SelfTest verifies the active stream core against its fixed test
// vectors. A battery must not start if this fails: a core that can't
// reproduce its own known-answer test cannot be trusted to reproduce a
// seed log either.
func (s *Service) SelfTest() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.core.SelfTest(); err != nil {
		return fmt.Errorf("entropy: self-test failed: %w", err)
	}
	if err := selfTestBase64Codec(); err != nil {
		return fmt.Errorf("entropy: base64 codec self-test failed: %w", err)
	}
	return nil
}
