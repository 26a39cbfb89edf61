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

// Package harness drives a raw device Library the way a command line
// program would.
package harness

import (
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/NVIDIA/rawdev/pkg/binding"
)

// Run forwards args verbatim to the library's main entry point and prints
// the result code.
func Run(lib binding.Library, args []string, w io.Writer) (int32, error) {
	zap.L().Debug("calling main", zap.Int("argc", len(args)), zap.Strings("argv", args))
	rc := lib.Main(args)
	_, err := fmt.Fprintf(w, "result: %d\n", rc)
	return rc, err
}

type ReadWriteArgs struct {
	Device  string
	Size    int32
	Offset  int64
	Message string
	// Passes >= 2 writes Message at Offset and reads it back.
	Passes int
}

// RunReadWrite reads Size bytes at Offset, optionally overwrites them with
// Message and reads again, printing every string returned.
func RunReadWrite(lib binding.Library, args ReadWriteArgs, w io.Writer) (bool, error) {
	s := lib.Read(args.Device, args.Size, args.Offset)
	if _, err := fmt.Fprintf(w, "read: %q\n", s); err != nil {
		return false, err
	}

	if args.Passes < 2 {
		return true, nil
	}

	ok := lib.Write(args.Device, args.Message, args.Offset)
	if _, err := fmt.Fprintf(w, "write: %t\n", ok); err != nil {
		return ok, err
	}

	s = lib.Read(args.Device, args.Size, args.Offset)
	_, err := fmt.Fprintf(w, "read: %q\n", s)
	return ok, err
}
