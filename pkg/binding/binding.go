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

// Package binding declares the entry points of the raw device library and
// loads native implementations of it at runtime.
package binding

import (
	"github.com/pkg/errors"
)

// Symbol names exported by the native library.
const (
	SymbolMain  = "main"
	SymbolRead  = "readJNA"
	SymbolWrite = "writeJNA"
)

var (
	ErrLibraryNotFound = errors.New("native library not found")
	ErrSymbolNotFound  = errors.New("native symbol not found")
)

// Library is the interface that must be implemented by a raw device
// library, native or otherwise.
type Library interface {
	// Main is the argc/argv style entry point. argc is len(args).
	Main(args []string) int32

	// Read returns size bytes of deviceName starting at offset.
	// Failures may be reported as an empty string.
	Read(deviceName string, size int32, offset int64) string

	// Write writes message to deviceName at offset and reports success.
	Write(deviceName string, message string, offset int64) bool

	Close() error
}
