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

type HarnessCmd struct {
	BackendConfig

	Args []string `arg:"" optional:"" passthrough:"" help:"Arguments forwarded verbatim to main"`
}

func (cmd *HarnessCmd) Run(globals *Globals) error {
	lib, err := cmd.Open(globals)
	if err != nil {
		return errors.Wrapf(err, "loading library %s", cmd.Library)
	}
	defer lib.Close()

	_, err = harness.Run(lib, cmd.Args, globals.stdout())
	return err
}
