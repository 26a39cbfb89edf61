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
	"path/filepath"
	"sync"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// openBounce opens a buffered handle but forces the aligned bounce path
// that direct I/O takes.
func openBounce(t *testing.T, size int, blockSize int64) (*Handle, []byte) {
	path := filepath.Join(t.TempDir(), "disk.img")
	data := make([]byte, size)
	for i := range data {
		data[i] = byte(i % 253)
	}
	require.NoError(t, os.WriteFile(path, data, 0600))

	h, err := Open(&Device{Name: path}, OpenOptions{Buffered: true, BlockSize: blockSize})
	require.NoError(t, err)
	h.direct = true
	return h, data
}

func TestBounceRead(t *testing.T) {
	h, data := openBounce(t, 3*4096, 4096)
	defer h.Close()

	for _, c := range []struct {
		off  int64
		size int
	}{
		{0, 1},
		{1, 4095},
		{4000, 200},
		{4096, 4096},
		{100, 3*4096 - 100},
	} {
		p := make([]byte, c.size)
		n, err := h.ReadAt(p, c.off)
		require.NoError(t, err)
		assert.Equal(t, c.size, n)
		assert.Equal(t, data[c.off:c.off+int64(c.size)], p)
	}
}

func TestBounceReadPastEnd(t *testing.T) {
	h, data := openBounce(t, 4096+100, 512)
	defer h.Close()

	p := make([]byte, 50)
	_, err := h.ReadAt(p, 4120)
	require.NoError(t, err)
	assert.Equal(t, data[4120:4170], p)

	p = make([]byte, 200)
	n, err := h.ReadAt(p, 4120)
	assert.Equal(t, 76, n)
	assert.Equal(t, io.ErrUnexpectedEOF, errors.Cause(err))

	_, err = h.ReadAt(p, 10000)
	assert.Equal(t, io.ErrUnexpectedEOF, errors.Cause(err))
}

func TestBounceWritePreservesNeighbors(t *testing.T) {
	h, data := openBounce(t, 3*4096, 4096)
	defer h.Close()

	msg := []byte("spans a block boundary")
	n, err := h.WriteAt(msg, 4096-5)
	require.NoError(t, err)
	assert.Equal(t, len(msg), n)

	copy(data[4096-5:], msg)
	got, err := os.ReadFile(h.dev.Name)
	require.NoError(t, err)
	assert.Equal(t, data, got)
}

func TestBounceWriteAligned(t *testing.T) {
	h, data := openBounce(t, 2*4096, 4096)
	defer h.Close()

	block := AlignedBuffer(4096, 4096)
	for i := range block {
		block[i] = 0xAB
	}
	_, err := h.WriteAt(block, 4096)
	require.NoError(t, err)

	copy(data[4096:], block)
	got, err := os.ReadFile(h.dev.Name)
	require.NoError(t, err)
	assert.Equal(t, data, got)
}

func TestBounceWritePastEndZeroFills(t *testing.T) {
	h, data := openBounce(t, 4096, 512)
	defer h.Close()

	_, err := h.WriteAt([]byte("tail"), 4100)
	require.NoError(t, err)

	got, err := os.ReadFile(h.dev.Name)
	require.NoError(t, err)
	require.Len(t, got, 4096+512)
	assert.Equal(t, data, got[:4096])
	assert.Equal(t, []byte{0, 0, 0, 0}, got[4096:4100])
	assert.Equal(t, "tail", string(got[4100:4104]))
}

func TestEmptyIO(t *testing.T) {
	h, _ := openBounce(t, 4096, 4096)
	defer h.Close()

	n, err := h.ReadAt(nil, 17)
	assert.NoError(t, err)
	assert.Zero(t, n)
	n, err = h.WriteAt(nil, 17)
	assert.NoError(t, err)
	assert.Zero(t, n)
}

func TestBounceWritesSameBlockConcurrently(t *testing.T) {
	h, data := openBounce(t, 2*4096, 4096)
	defer h.Close()

	wg := &sync.WaitGroup{}
	for i := 0; i < 256; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := h.WriteAt([]byte{0xFF}, int64(4096+i*8))
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	for i := 0; i < 256; i++ {
		data[4096+i*8] = 0xFF
	}
	got, err := os.ReadFile(h.dev.Name)
	require.NoError(t, err)
	assert.Equal(t, data, got)
}
