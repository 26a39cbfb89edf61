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
	"unsafe"
)

// Alignment is the default buffer, offset and length alignment for
// direct I/O.
const Alignment = 4096

func AlignDown(v, align int64) int64 {
	return v &^ (align - 1)
}

func AlignUp(v, align int64) int64 {
	return (v + align - 1) &^ (align - 1)
}

// AlignedBuffer returns a zeroed slice of size bytes whose first byte is
// aligned to align, which must be a power of two.
func AlignedBuffer(size int, align int) []byte {
	buf := make([]byte, size+align)
	o := int(uintptr(unsafe.Pointer(&buf[0])) & uintptr(align-1))
	if o != 0 {
		o = align - o
	}
	return buf[o : o+size : o+size]
}

func isAligned(p []byte, off int64, align int64) bool {
	if off%align != 0 || int64(len(p))%align != 0 {
		return false
	}
	return int64(uintptr(unsafe.Pointer(&p[0])))%align == 0
}
