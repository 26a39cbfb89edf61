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
	"github.com/pkg/errors"

	"github.com/NVIDIA/rawdev/pkg/harness"
)

type RunCmd struct {
	Device     string `arg:"" help:"The raw device"`
	ResultFile string `arg:"" help:"Where to write the result report" type:"path"`
	Scheduler  string `help:"Scheduler to select (noop|cfq)" enum:"noop,cfq" default:"noop"`
	LayoutConfig
}

func (cmd *RunCmd) Run(globals *Globals) error {
	backend := BackendConfig{
		Backend:      "go",
		Scheduler:    cmd.Scheduler,
		LayoutConfig: cmd.LayoutConfig,
	}
	lib, err := backend.Open(globals)
	if err != nil {
		return err
	}
	defer lib.Close()

	rc, err := harness.Run(lib, []string{"rawdev", cmd.Device, cmd.ResultFile}, globals.stdout())
	if err != nil {
		return err
	}
	if rc != 0 {
		return errors.Errorf("run failed with result %d", rc)
	}
	return nil
}
