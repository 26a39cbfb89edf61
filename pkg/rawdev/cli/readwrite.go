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

package rawdev_cli

import (
	"fmt"
	"math"

	"github.com/alecthomas/units"
	"github.com/pkg/errors"

	"github.com/NVIDIA/rawdev/pkg/harness"
)

type ReadCmd struct {
	BackendConfig

	Device  string   `short:"d" help:"The raw device" required:""`
	Size    units.SI `short:"s" help:"Number of bytes to read" default:"4KiB"`
	Offset  int64    `short:"o" help:"Byte offset" default:"0"`
	Passes  int      `help:"With 2 or more passes, write --message at --offset and read again" default:"1"`
	Message string   `short:"m" help:"Message written on the second pass"`
}

func (cmd *ReadCmd) Run(globals *Globals) error {
	if cmd.Size < 0 || cmd.Size > math.MaxInt32 {
		return errors.Errorf("size out of range: %d", cmd.Size)
	}

	lib, err := cmd.Open(globals)
	if err != nil {
		return errors.Wrapf(err, "loading library %s", cmd.Library)
	}
	defer lib.Close()

	ok, err := harness.RunReadWrite(lib, harness.ReadWriteArgs{
		Device:  cmd.Device,
		Size:    int32(cmd.Size),
		Offset:  cmd.Offset,
		Message: cmd.Message,
		Passes:  cmd.Passes,
	}, globals.stdout())
	if err != nil {
		return err
	}
	if !ok {
		return errors.Errorf("writing %s at %d failed", cmd.Device, cmd.Offset)
	}
	return nil
}

type WriteCmd struct {
	BackendConfig

	Device  string `short:"d" help:"The raw device" required:""`
	Message string `short:"m" help:"Message to write" required:""`
	Offset  int64  `short:"o" help:"Byte offset" default:"0"`
}

func (cmd *WriteCmd) Run(globals *Globals) error {
	lib, err := cmd.Open(globals)
	if err != nil {
		return errors.Wrapf(err, "loading library %s", cmd.Library)
	}
	defer lib.Close()

	ok := lib.Write(cmd.Device, cmd.Message, cmd.Offset)
	fmt.Fprintf(globals.stdout(), "write: %t\n", ok)
	if !ok {
		return errors.Errorf("writing %s at %d failed", cmd.Device, cmd.Offset)
	}
	return nil
}
