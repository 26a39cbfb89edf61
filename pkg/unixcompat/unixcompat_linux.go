//go:build linux
// +build linux

// Copyright © 2019 NVIDIA Corporation
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package unixcompat

import (
	"syscall"
	"unsafe"

	"golang.org/x/sys/unix"
)

// O_DIRECT bypasses the page cache. Buffers, offsets and lengths must be
// aligned to the logical block size of the device.
var O_DIRECT = unix.O_DIRECT

var BLKGETSIZE64 = uintptr(unix.BLKGETSIZE64)
var BLKSSZGET = uint(unix.BLKSSZGET)

// BlockDeviceSize returns the capacity of the block device in bytes.
func BlockDeviceSize(fd uintptr) (uint64, error) {
	var size uint64
	_, _, e := syscall.Syscall(syscall.SYS_IOCTL, fd, BLKGETSIZE64, uintptr(unsafe.Pointer(&size)))
	if e != 0 {
		return 0, e
	}
	return size, nil
}

// LogicalBlockSize returns the smallest unit the device can address.
func LogicalBlockSize(fd uintptr) (int, error) {
	return unix.IoctlGetInt(int(fd), BLKSSZGET)
}

func Major(dev uint64) uint32 {
	return unix.Major(dev)
}

func Minor(dev uint64) uint32 {
	return unix.Minor(dev)
}
