// Copyright (c) 2024-2026 SmokeRand Authors
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.

// Package hostapi defines CallerAPI, the vocabulary a generator plugin
// receives from the engine: a serialized printf sink, C-string
// comparison, seed draws scoped to the calling thread, access to the
// battery parameter string, and RAM information. It has no allocation
// (malloc/free) functions.
//
// CallerAPI is deliberately a plain record of function fields rather than
// an interface: design notes require this ABI boundary to
// remain a plain, externally-callable function bundle because the
// original host-API record is consumed by independently compiled,
// dynamically loaded modules (here, Go plugins loaded via pluginloader),
// and a Go interface value is not a stable cross-plugin-boundary shape in
// the way a struct of func fields is.
package hostapi

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/dustin/go-humanize"

	"github.com/smokerand/smokerand/entropy"
)

// RAMInfo reports the host's physical memory, or the "unknown" sentinel
// (both fields zero) when the platform cannot report it.
type RAMInfo struct {
	TotalBytes     uint64
	AvailableBytes uint64
	Known          bool
}

// String renders RAMInfo using human-readable byte counts, via
// github.com/dustin/go-humanize, for diagnostic output.
func (r RAMInfo) String() string {
	if !r.Known {
		return "ram: unknown"
	}
	return fmt.Sprintf("ram: %s total, %s available",
		humanize.Bytes(r.TotalBytes), humanize.Bytes(r.AvailableBytes))
}

// CallerAPI is the record of externally-callable functions a plugin
// receives from gen_getinfo. It is constructed by New and is safe for
// concurrent use by multiple worker goroutines: Printf serializes through
// an internal mutex, and the seed functions delegate to the
// mutex-guarded entropy.Service.
type CallerAPI struct {
	// Printf writes a formatted line to the diagnostic sink. Multiple
	// concurrent callers are serialized so lines are never interleaved.
	Printf func(format string, args ...any)

	// Strcmp compares two strings byte-for-byte, equivalent to the C
	// library's strcmp: negative, zero, or positive.
	Strcmp func(a, b string) int

	// GetSeed32 draws the next 32-bit seed for the calling worker's
	// thread ordinal.
	GetSeed32 func() uint32

	// GetSeed64 draws the next 64-bit seed for the calling worker's
	// thread ordinal.
	GetSeed64 func() uint64

	// GetParam returns the value of --param=, the plugin's variant
	// selector (e.g. "aesni", "c99", "vector").
	GetParam func() string

	// GetRAMInfo reports physical RAM, or the unknown sentinel.
	GetRAMInfo func() RAMInfo
}

// host is the concrete, stateful backing for a CallerAPI: per-thread
// seed access bound to one worker ordinal, a shared printf sink mutex, and
// the battery parameter string. New wires its methods into the returned
// CallerAPI's function fields.
type host struct {
	threadOrd  int
	svc        *entropy.Service
	param      string
	printfMu   *sync.Mutex
	printfSink io.Writer
	ramFn      func() RAMInfo
}

// New constructs a CallerAPI bound to one worker's thread ordinal. sink
// receives every Printf call; printfMu must be shared across every
// CallerAPI constructed for the same battery run so concurrent workers'
// diagnostics are serialized: the only synchronisation points in the
// engine are mutex acquisitions inside shared services (entropy,
// multiplexed printf).
func New(threadOrd int, svc *entropy.Service, param string, sink io.Writer, printfMu *sync.Mutex) *CallerAPI {
	h := &host{
		threadOrd:  threadOrd,
		svc:        svc,
		param:      param,
		printfMu:   printfMu,
		printfSink: sink,
		ramFn:      GetRAMInfo,
	}
	return &CallerAPI{
		Printf:     h.doPrintf,
		Strcmp:     strcmp,
		GetSeed32:  h.getSeed32,
		GetSeed64:  h.getSeed64,
		GetParam:   func() string { return h.param },
		GetRAMInfo: h.ramFn,
	}
}

func (h *host) doPrintf(format string, args ...any) {
	h.printfMu.Lock()
	defer h.printfMu.Unlock()
	fmt.Fprintf(h.printfSink, format, args...)
}

func (h *host) getSeed32() uint32 {
	return uint32(h.svc.Seed64(h.threadOrd))
}

func (h *host) getSeed64() uint64 {
	return h.svc.Seed64(h.threadOrd)
}

// strcmp is the C-string-compare equivalent ABI exposes.
func strcmp(a, b string) int {
	return strings.Compare(a, b)
}

// DefaultSink is the diagnostic sink used when a battery isn't in
// stdout-dump mode. UseStderrForPrintf swaps it so diagnostics move off
// stdout whenever the binary-dump mode is active.
var DefaultSink io.Writer = os.Stdout

// UseStderrForPrintf redirects DefaultSink to standard error, so that a
// stdout-dump run's diagnostics do not contaminate the binary output
// stream.
func UseStderrForPrintf() {
	DefaultSink = os.Stderr
}
