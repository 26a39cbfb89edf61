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
	"io"
	"os"
	"sync"
	"syscall"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/NVIDIA/rawdev/pkg/clock"
	"github.com/NVIDIA/rawdev/pkg/unixcompat"
)

type OpenOptions struct {
	ReadOnly bool

	// Buffered opens the device without O_DIRECT.
	Buffered bool

	// AllowBuffered retries without O_DIRECT when the filesystem refuses
	// it, as tmpfs and some overlay filesystems do.
	AllowBuffered bool

	// BlockSize is the direct I/O alignment. Defaults to Alignment.
	BlockSize int64
}

// Handle is an open device. ReadAt and WriteAt use positional I/O and are
// safe for concurrent use; writes to the same bytes are unordered.
// Unaligned direct writes patch whole blocks, so they are serialized to
// keep neighbouring writes within a block.
type Handle struct {
	dev       *Device
	f         *os.File
	direct    bool
	blockSize int64

	rmw sync.Mutex
}

func Open(dev *Device, opts OpenOptions) (*Handle, error) {
	flags := os.O_RDWR
	if opts.ReadOnly {
		flags = os.O_RDONLY
	}
	bs := opts.BlockSize
	if bs <= 0 {
		bs = Alignment
	}

	direct := !opts.Buffered && unixcompat.O_DIRECT != 0
	var f *os.File
	var err error
	if direct {
		f, err = os.OpenFile(dev.Name, flags|unixcompat.O_DIRECT, 0600)
		if err != nil && opts.AllowBuffered && errors.Is(err, syscall.EINVAL) {
			zap.L().Warn("direct I/O refused, falling back to buffered I/O", zap.String("device", dev.Name))
			direct = false
		}
	}
	if !direct {
		f, err = os.OpenFile(dev.Name, flags, 0600)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "couldn't open device %s", dev.Name)
	}

	return &Handle{
		dev:       dev,
		f:         f,
		direct:    direct,
		blockSize: bs,
	}, nil
}

func (h *Handle) Device() *Device {
	return h.dev
}

// Direct reports whether the page cache is bypassed.
func (h *Handle) Direct() bool {
	return h.direct
}

func (h *Handle) Close() error {
	return h.f.Close()
}

// ReadAt reads exactly len(p) bytes at off. A short read is an error.
func (h *Handle) ReadAt(p []byte, off int64) (int, error) {
	start := clock.Ns()
	n, err := h.readAt(p, off)
	observe(opRead, n, err, start)
	if err != nil {
		err = errors.Wrapf(err, "seek & read %s at %d", h.dev.Name, off)
	}
	return n, err
}

// WriteAt writes all of p at off. Unaligned direct writes read, patch and
// rewrite the enclosing blocks.
func (h *Handle) WriteAt(p []byte, off int64) (int, error) {
	start := clock.Ns()
	n, err := h.writeAt(p, off)
	observe(opWrite, n, err, start)
	if err != nil {
		err = errors.Wrapf(err, "seek & write %s at %d", h.dev.Name, off)
	}
	return n, err
}

func (h *Handle) readAt(p []byte, off int64) (int, error) {
	if off < 0 {
		return 0, ErrNegativeOffset
	}
	if len(p) == 0 {
		return 0, nil
	}
	if !h.direct || isAligned(p, off, h.blockSize) {
		return readFull(h.f, p, off)
	}

	lo, buf, err := h.readBlocks(off, len(p))
	if err != nil {
		return 0, err
	}
	skip := off - lo
	if int64(len(buf)) <= skip {
		return 0, io.ErrUnexpectedEOF
	}
	n := copy(p, buf[skip:])
	if n < len(p) {
		return n, io.ErrUnexpectedEOF
	}
	return n, nil
}

func (h *Handle) writeAt(p []byte, off int64) (int, error) {
	if off < 0 {
		return 0, ErrNegativeOffset
	}
	if len(p) == 0 {
		return 0, nil
	}
	if !h.direct || isAligned(p, off, h.blockSize) {
		return h.f.WriteAt(p, off)
	}

	lo := AlignDown(off, h.blockSize)
	hi := AlignUp(off+int64(len(p)), h.blockSize)
	buf := AlignedBuffer(int(hi-lo), int(h.blockSize))

	h.rmw.Lock()
	defer h.rmw.Unlock()

	// Blocks past the end of the device read back short and stay zeroed.
	if _, err := h.f.ReadAt(buf, lo); err != nil && err != io.EOF {
		return 0, err
	}
	copy(buf[off-lo:], p)

	if _, err := h.f.WriteAt(buf, lo); err != nil {
		return 0, err
	}
	return len(p), nil
}

// readBlocks reads the aligned blocks covering [off, off+size). The
// returned slice is truncated at the end of the device.
func (h *Handle) readBlocks(off int64, size int) (int64, []byte, error) {
	lo := AlignDown(off, h.blockSize)
	hi := AlignUp(off+int64(size), h.blockSize)
	buf := AlignedBuffer(int(hi-lo), int(h.blockSize))

	n, err := h.f.ReadAt(buf, lo)
	if err != nil && err != io.EOF {
		return lo, nil, err
	}
	return lo, buf[:n], nil
}

func readFull(f *os.File, p []byte, off int64) (int, error) {
	n, err := f.ReadAt(p, off)
	if err == io.EOF {
		err = io.ErrUnexpectedEOF
	}
	return n, err
}
