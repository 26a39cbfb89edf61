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

	"go.uber.org/zap"

	"github.com/NVIDIA/rawdev/pkg/blockdev"
)

type SchedulerCmd struct {
	Device string `arg:"" help:"The raw device"`
	Mode   string `arg:"" optional:"" help:"Scheduler to select (noop|cfq); omit to show the current one"`
}

func (cmd *SchedulerCmd) Run(globals *Globals) error {
	if cmd.Mode == "" {
		s, err := blockdev.CurrentScheduler(cmd.Device)
		if err != nil {
			return err
		}
		fmt.Fprintln(globals.stdout(), s)
		return nil
	}

	mode, err := blockdev.ParseSchedulerMode(cmd.Mode)
	if err != nil {
		return err
	}
	if err := blockdev.SetScheduler(cmd.Device, mode); err != nil {
		return err
	}
	zap.L().Info("set scheduler", zap.String("device", cmd.Device), zap.Stringer("mode", mode))
	return nil
}
