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
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// LibraryPathEnv lists extra directories searched for native libraries.
const LibraryPathEnv = "RAW_LIBRARY_PATH"

// LibraryFileName maps a library name to the platform file name, e.g.
// "raw" becomes "libraw.so" on linux.
func LibraryFileName(name, goos string) string {
	switch goos {
	case "darwin":
		return fmt.Sprintf("lib%s.dylib", name)
	case "windows":
		return name + ".dll"
	default:
		return fmt.Sprintf("lib%s.so", name)
	}
}

// Candidates returns the paths to try, in order, when loading name.
func Candidates(name, goos string, searchPath []string) []string {
	if isExplicit(name) {
		return []string{name}
	}

	fname := LibraryFileName(name, goos)
	var paths []string
	for _, dir := range searchPath {
		if dir == "" {
			continue
		}
		paths = append(paths, filepath.Join(dir, fname))
	}
	// Leave the rest to the dynamic loader (LD_LIBRARY_PATH, ld.so.cache).
	return append(paths, fname)
}

func isExplicit(name string) bool {
	if strings.ContainsRune(name, os.PathSeparator) || strings.Contains(name, ".so.") {
		return true
	}
	for _, ext := range []string{".so", ".dylib", ".dll"} {
		if strings.HasSuffix(name, ext) {
			return true
		}
	}
	return false
}

func envSearchPath() []string {
	v := os.Getenv(LibraryPathEnv)
	if v == "" {
		return nil
	}
	return filepath.SplitList(v)
}
