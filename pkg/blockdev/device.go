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

// Package blockdev reads and writes raw block devices with direct I/O.
package blockdev

import (
	"github.com/pkg/errors"
)

// MaxDeviceNameSize is the size of the native name buffer, terminating NUL
// included.
const MaxDeviceNameSize = 64

var (
	ErrEmptyDeviceName   = errors.New("empty device name")
	ErrDeviceNameTooLong = errors.New("device name too long")
	ErrNegativeOffset    = errors.New("negative offset")
	ErrNegativeSize      = errors.New("negative size")
)

// Device describes a raw device and, once discovered, its geometry.
type Device struct {
	Name           string
	NumLargeBlocks uint64
	NumReadOffsets uint64
	MinOpBytes     uint32
	ReadBytes      uint32
}

func ParseDeviceName(name string) (*Device, error) {
	if name == "" {
		return nil, ErrEmptyDeviceName
	}
	if len(name) >= MaxDeviceNameSize {
		return nil, errors.Wrapf(ErrDeviceNameTooLong, "%d bytes, max %d", len(name), MaxDeviceNameSize-1)
	}
	return &Device{Name: name}, nil
}
