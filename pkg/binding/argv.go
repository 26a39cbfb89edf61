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

package binding

import (
	"unsafe"
)

// argv holds a C style, NULL terminated array of NUL terminated strings.
// Both levels live in Go memory, so the value must be kept alive for the
// duration of the foreign call.
type argv struct {
	strs [][]byte
	ptrs []*byte
}

func newArgv(args []string) *argv {
	a := &argv{
		strs: make([][]byte, len(args)),
		ptrs: make([]*byte, len(args)+1),
	}
	for i, s := range args {
		b := make([]byte, len(s)+1)
		copy(b, s)
		a.strs[i] = b
		a.ptrs[i] = &b[0]
	}
	return a
}

func (a *argv) pointer() unsafe.Pointer {
	return unsafe.Pointer(&a.ptrs[0])
}
