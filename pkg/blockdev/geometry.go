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

package blockdev

import (
	"fmt"
	"os"

	"github.com/pkg/errors"

	"github.com/NVIDIA/rawdev/pkg/unixcompat"
)

const (
	DefaultRecordBytes     = 1536
	DefaultLargeBlockBytes = 128 * 1024

	// Sector size assumed for regular files.
	fileMinOpBytes = 512
)

var ErrNoCapacity = errors.New("device has no usable capacity")

// Geometry is the layout of a device in terms of large blocks (the unit
// of bulk writes) and min-op blocks (the unit of record reads).
type Geometry struct {
	DeviceBytes    uint64
	NumLargeBlocks uint64
	MinOpBytes     uint32
	NumMinOpBlocks uint64
	NumReadOffsets uint64
	ReadBytes      uint32
}

func (g Geometry) String() string {
	return fmt.Sprintf("%d bytes, %d large blocks, %d %d-byte blocks, reads are %d bytes",
		g.DeviceBytes, g.NumLargeBlocks, g.NumMinOpBlocks, g.MinOpBytes, g.ReadBytes)
}

// ComputeGeometry lays out deviceBytes for reads of recordBytes.
func ComputeGeometry(deviceBytes uint64, minOpBytes uint32, recordBytes uint32, largeBlockBytes uint64) (Geometry, error) {
	if largeBlockBytes == 0 {
		return Geometry{}, errors.New("large block size must be positive")
	}

	g := Geometry{
		DeviceBytes:    deviceBytes,
		NumLargeBlocks: deviceBytes / largeBlockBytes,
		MinOpBytes:     minOpBytes,
	}
	if g.NumLargeBlocks == 0 || g.MinOpBytes == 0 {
		return g, errors.Wrapf(ErrNoCapacity, "%d bytes, %d-byte min op", deviceBytes, minOpBytes)
	}

	g.NumMinOpBlocks = g.NumLargeBlocks * largeBlockBytes / uint64(minOpBytes)
	readReqMinOpBlocks := (uint64(recordBytes) + uint64(minOpBytes) - 1) / uint64(minOpBytes)
	if readReqMinOpBlocks > g.NumMinOpBlocks {
		return g, errors.Wrapf(ErrNoCapacity, "%d-byte records do not fit", recordBytes)
	}

	g.NumReadOffsets = g.NumMinOpBlocks - readReqMinOpBlocks + 1
	g.ReadBytes = uint32(readReqMinOpBlocks) * minOpBytes
	return g, nil
}

// Discover sizes the open device and records its geometry on the Device.
func (h *Handle) Discover(recordBytes uint32, largeBlockBytes uint64) (Geometry, error) {
	finfo, err := h.f.Stat()
	if err != nil {
		return Geometry{}, err
	}

	var deviceBytes uint64
	var minOpBytes uint32
	if finfo.Mode()&os.ModeDevice != 0 {
		deviceBytes, err = unixcompat.BlockDeviceSize(h.f.Fd())
		if err != nil {
			return Geometry{}, errors.Wrapf(err, "BLKGETSIZE64 %s", h.dev.Name)
		}
		lbs, err := unixcompat.LogicalBlockSize(h.f.Fd())
		if err != nil {
			return Geometry{}, errors.Wrapf(err, "BLKSSZGET %s", h.dev.Name)
		}
		minOpBytes = uint32(lbs)
	} else {
		deviceBytes = uint64(finfo.Size())
		minOpBytes = fileMinOpBytes
	}

	g, err := ComputeGeometry(deviceBytes, minOpBytes, recordBytes, largeBlockBytes)
	if err != nil {
		return g, errors.Wrap(err, h.dev.Name)
	}

	h.dev.NumLargeBlocks = g.NumLargeBlocks
	h.dev.NumReadOffsets = g.NumReadOffsets
	h.dev.MinOpBytes = g.MinOpBytes
	h.dev.ReadBytes = g.ReadBytes
	return g, nil
}
