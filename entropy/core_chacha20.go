// Copyright (c) 2024-2026 SmokeRand Authors
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.

package entropy

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"
	"io"

	"golang.org/x/crypto/chacha20"
)

// chacha20Core is a ChaCha20 counter-mode stream core, grounded on
// github.com/sixafter/prng-chacha's newCipher/newPRNG construction: a
// fresh key from crypto/rand and an all-zero nonce, XOR'd against a zero
// buffer via XORKeyStream rather than driven block-by-block by hand.
type chacha20Core struct {
	stream *chacha20.Cipher
	buf    [64]byte
	zero   [64]byte
	bufPos int // 64 (empty) or a multiple of 8 in [0,64)
}

func newChaCha20Core() *chacha20Core {
	c := &chacha20Core{bufPos: 64}
	var seed [32]byte
	if _, err := io.ReadFull(rand.Reader, seed[:]); err == nil {
		c.Reseed(seed)
	} else {
		c.Reseed([32]byte{})
	}
	return c
}

// Reseed installs a new ChaCha20 key derived from seed and resets the
// nonce/counter to zero, exactly as prng-chacha's newCipher does for each
// pool entry.
func (c *chacha20Core) Reseed(seed [32]byte) {
	var nonce [chacha20.NonceSize]byte
	stream, err := chacha20.NewUnauthenticatedCipher(seed[:], nonce[:])
	if err != nil {
		panic(fmt.Sprintf("entropy: chacha20.NewUnauthenticatedCipher: %v", err))
	}
	c.stream = stream
	c.bufPos = 64
}

// NextUint64 returns the next 64-bit word of the keystream, generating a
// fresh 64-byte block whenever the current one is exhausted.
func (c *chacha20Core) NextUint64() uint64 {
	if c.bufPos >= 64 {
		c.stream.XORKeyStream(c.buf[:], c.zero[:])
		c.bufPos = 0
	}
	v := binary.LittleEndian.Uint64(c.buf[c.bufPos:])
	c.bufPos += 8
	return v
}

// chachaSelfTestKey, chachaSelfTestNonce and chachaSelfTestBlock1 are the
// RFC 7539 section 2.3.2 block-function test vector (key 0x00..1f, nonce
// (0x09000000,0x4a000000), block counter 1), the literal fixed vector
// names for a ChaCha20-seeded generator.
var (
	chachaSelfTestKey     [32]byte
	chachaSelfTestNonce   [chacha20.NonceSize]byte
	chachaSelfTestBlock1  = [64]byte{
		0x10, 0xf1, 0xe7, 0xe4, 0xd1, 0x3b, 0x59, 0x15, 0x50, 0x0f, 0xdd, 0x1f, 0xa3, 0x20, 0x71, 0xc4,
		0xc7, 0xd1, 0xf4, 0xc7, 0x33, 0xc0, 0x68, 0x03, 0x04, 0x22, 0xaa, 0x9a, 0xc3, 0xd4, 0x6c, 0x4e,
		0xd2, 0x82, 0x64, 0x46, 0x07, 0x9f, 0xaa, 0x09, 0x14, 0xc2, 0xd7, 0x05, 0xd9, 0x8b, 0x02, 0xa2,
		0xb5, 0x12, 0x9c, 0xd1, 0xde, 0x16, 0x4e, 0xb9, 0xcb, 0xd0, 0x83, 0xe8, 0xa2, 0x50, 0x3c, 0x4e,
	}
)

func init() {
	for i := range chachaSelfTestKey {
		chachaSelfTestKey[i] = byte(i)
	}
	// Nonce words are (0x09000000, 0x4a000000, 0), serialized little-endian
	// as ChaCha20 reads them: bytes 00:00:00:09:00:00:00:4a:00:00:00:00.
	binary.LittleEndian.PutUint32(chachaSelfTestNonce[0:4], 0x09000000)
	binary.LittleEndian.PutUint32(chachaSelfTestNonce[4:8], 0x4a000000)
}

// SelfTest verifies the ChaCha20 stream cipher against the fixed RFC 7539
// test vector, independent of this core's own key and counter state.
func (c *chacha20Core) SelfTest() error {
	stream, err := chacha20.NewUnauthenticatedCipher(chachaSelfTestKey[:], chachaSelfTestNonce[:])
	if err != nil {
		return fmt.Errorf("chacha20: construct cipher: %w", err)
	}
	stream.SetCounter(1)
	var zero, out [64]byte
	stream.XORKeyStream(out[:], zero[:])
	if out != chachaSelfTestBlock1 {
		return fmt.Errorf("chacha20: self-test vector mismatch: got %x want %x", out, chachaSelfTestBlock1)
	}
	return nil
}
