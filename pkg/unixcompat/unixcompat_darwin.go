//go:build darwin
// +build darwin

package unixcompat

import (
	"errors"

	"golang.org/x/sys/unix"
)

var O_DIRECT int

var errNotImpl = errors.New("not implemented on this OS")

func BlockDeviceSize(fd uintptr) (uint64, error) {
	return 0, errNotImpl
}

func LogicalBlockSize(fd uintptr) (int, error) {
	return 0, errNotImpl
}

func Major(dev uint64) uint32 {
	return unix.Major(dev)
}

func Minor(dev uint64) uint32 {
	return unix.Minor(dev)
}
