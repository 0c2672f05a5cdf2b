// Copyright (c) 2024-2026 SmokeRand Authors
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.

//go:build linux

package hostapi

import "golang.org/x/sys/unix"

// GetRAMInfo reports physical RAM via unix.Sysinfo, as
// get_ram_info requires ("report total and available physical RAM in
// bytes, or an unknown sentinel").
func GetRAMInfo() RAMInfo {
	var info unix.Sysinfo_t
	if err := unix.Sysinfo(&info); err != nil {
		return RAMInfo{}
	}
	unit := uint64(info.Unit)
	if unit == 0 {
		unit = 1
	}
	return RAMInfo{
		TotalBytes:     uint64(info.Totalram) * unit,
		AvailableBytes: uint64(info.Freeram) * unit,
		Known:          true,
	}
}
