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
	"encoding/json"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/NVIDIA/rawdev/pkg/blockdev"
)

type InfoCmd struct {
	Device string `arg:"" help:"The raw device"`
	LayoutConfig
}

type deviceInfo struct {
	Device    string
	Direct    bool
	Scheduler string `json:",omitempty"`
	Geometry  blockdev.Geometry
}

func (cmd *InfoCmd) Run(globals *Globals) error {
	dev, err := blockdev.ParseDeviceName(cmd.Device)
	if err != nil {
		return err
	}

	opts := globals.Device.OpenOptions()
	opts.ReadOnly = true
	h, err := blockdev.Open(dev, opts)
	if err != nil {
		return err
	}
	defer h.Close()

	g, err := h.Discover(uint32(cmd.RecordBytes), uint64(cmd.LargeBlockBytes))
	if err != nil {
		return errors.Wrap(err, "discovering device geometry")
	}

	info := deviceInfo{
		Device:   dev.Name,
		Direct:   h.Direct(),
		Geometry: g,
	}
	if s, err := blockdev.CurrentScheduler(dev.Name); err == nil {
		info.Scheduler = s
	} else {
		zap.L().Debug("reading scheduler", zap.Error(err))
	}

	jenc := json.NewEncoder(globals.stdout())
	jenc.SetIndent("", "  ")
	return jenc.Encode(&info)
}
