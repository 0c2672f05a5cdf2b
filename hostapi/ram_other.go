// Copyright (c) 2024-2026 SmokeRand Authors
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.

//go:build !linux

package hostapi

// GetRAMInfo reports the "unknown" sentinel on platforms this module does
// not have a RAM-reporting syscall path for,
// get_ram_info contract.
func GetRAMInfo() RAMInfo {
	return RAMInfo{}
}
