// Copyright (c) 2024-2026 SmokeRand Authors
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.

// Package iohelpers covers the two ambient I/O concerns
// names: putting stdin/stdout into binary mode on platforms that
// otherwise translate newlines, and the stdout-dump mode that writes a
// generator's raw output to standard output in fixed-size chunks.
package iohelpers

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/smokerand/smokerand/generator"
	"github.com/smokerand/smokerand/hostapi"
)

// EnsureBinaryStdio is the Go counterpart of the original C runtime's
// _setmode(..., O_BINARY) call: on POSIX platforms (and on Windows, as of
// Go's current os package) standard input and output are never opened in
// a text-translating mode in the first place, so there is nothing to
// switch. It exists as a documented no-op, called at the same place the
// original startup sequence would have called _setmode, so the call site
// describes still exists even though Go gives it nothing to
// do.
func EnsureBinaryStdio() {}

// dumpChunkWords is the chunk size, in native-width words, StdoutDump
// writes per syscall, "256-word chunks".
const dumpChunkWords = 256

// StdoutDump writes 2^maxLenLog2 bytes of in's output to w, 256 words at
// a time. Before the first write it switches hostapi's diagnostic sink to
// stderr, so that a plugin's Printf diagnostics never land in the binary
// stream this function is producing, "set_use_stderr_for_
// printf" requirement.
func StdoutDump(w io.Writer, in *generator.Instance, maxLenLog2 int) (int64, error) {
	hostapi.UseStderrForPrintf()

	bytesPerWord := in.Descriptor.NBits / 8
	totalBytes := int64(1) << uint(maxLenLog2)
	wordsTotal := totalBytes / int64(bytesPerWord)

	buf := make([]byte, 0, dumpChunkWords*bytesPerWord)
	var written int64
	for remaining := wordsTotal; remaining > 0; {
		chunk := int64(dumpChunkWords)
		if chunk > remaining {
			chunk = remaining
		}
		buf = buf[:0]
		for i := int64(0); i < chunk; i++ {
			v := in.Next()
			buf = appendWord(buf, v, bytesPerWord)
		}
		n, err := w.Write(buf)
		written += int64(n)
		if err != nil {
			return written, fmt.Errorf("iohelpers: stdout dump: %w", err)
		}
		remaining -= chunk
	}
	return written, nil
}

// appendWord appends the low bytesPerWord bytes of v to buf in
// little-endian order, the wire order every generator in this module
// already uses for stdin/stdout word exchange.
func appendWord(buf []byte, v uint64, bytesPerWord int) []byte {
	var tmp [8]byte
	binary.LittleEndian.PutUint64(tmp[:], v)
	return append(buf, tmp[:bytesPerWord]...)
}
