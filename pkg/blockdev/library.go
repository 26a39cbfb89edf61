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
	"bytes"
	"io"
	"os"

	"github.com/OneOfOne/xxhash"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Library is the raw device library implemented in Go. It satisfies
// binding.Library.
type Library struct {
	Stdout          io.Writer
	Options         OpenOptions
	Scheduler       SchedulerMode
	RecordBytes     uint32
	LargeBlockBytes uint64
}

func NewLibrary() *Library {
	return &Library{
		Stdout:          os.Stdout,
		Scheduler:       SchedulerNoop,
		RecordBytes:     DefaultRecordBytes,
		LargeBlockBytes: DefaultLargeBlockBytes,
	}
}

// Read returns the bytes read up to the first NUL, or "" on failure.
func (l *Library) Read(deviceName string, size int32, offset int64) string {
	b, err := ReadDevice(deviceName, int(size), offset, l.Options)
	if err != nil {
		zap.L().Error("read", zap.String("device", deviceName), zap.Error(err))
		return ""
	}
	zap.L().Debug("read",
		zap.String("device", deviceName),
		zap.Int64("offset", offset),
		zap.Int("bytes", len(b)),
		zap.Uint64("xxhash", xxhash.Checksum64(b)))

	if i := bytes.IndexByte(b, 0); i >= 0 {
		b = b[:i]
	}
	return string(b)
}

func (l *Library) Write(deviceName string, message string, offset int64) bool {
	if err := WriteDevice(deviceName, []byte(message), offset, l.Options); err != nil {
		zap.L().Error("write", zap.String("device", deviceName), zap.Error(err))
		return false
	}
	zap.L().Debug("write",
		zap.String("device", deviceName),
		zap.Int64("offset", offset),
		zap.Int("bytes", len(message)),
		zap.Uint64("xxhash", xxhash.ChecksumString64(message)))
	return true
}

func (l *Library) Close() error {
	return nil
}

// ReadDevice opens the named device, reads size bytes at offset and
// closes it again.
func ReadDevice(deviceName string, size int, offset int64, opts OpenOptions) ([]byte, error) {
	if size < 0 {
		return nil, ErrNegativeSize
	}
	dev, err := ParseDeviceName(deviceName)
	if err != nil {
		return nil, err
	}

	opts.ReadOnly = true
	h, err := Open(dev, opts)
	if err != nil {
		return nil, err
	}
	defer h.Close()

	buf := make([]byte, size)
	if _, err := h.ReadAt(buf, offset); err != nil {
		return nil, err
	}
	return buf, nil
}

// WriteDevice opens the named device, writes data at offset and closes it
// again.
func WriteDevice(deviceName string, data []byte, offset int64, opts OpenOptions) (err error) {
	dev, err := ParseDeviceName(deviceName)
	if err != nil {
		return err
	}

	opts.ReadOnly = false
	h, err := Open(dev, opts)
	if err != nil {
		return err
	}
	defer func() {
		if e := h.Close(); err == nil && e != nil {
			err = errors.Wrapf(e, "closing %s", deviceName)
		}
	}()

	_, err = h.WriteAt(data, offset)
	return err
}
