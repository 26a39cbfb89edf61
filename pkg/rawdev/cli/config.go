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
	"github.com/alecthomas/units"
	"github.com/pkg/errors"

	"github.com/NVIDIA/rawdev/pkg/binding"
	"github.com/NVIDIA/rawdev/pkg/blockdev"
)

type DeviceConfig struct {
	Buffered      bool     `help:"Open devices without O_DIRECT"`
	AllowBuffered bool     `help:"Fall back to buffered I/O where O_DIRECT is refused" default:"true" negatable:""`
	BlockSize     units.SI `help:"Direct I/O alignment" default:"4KiB"`
}

func (cfg *DeviceConfig) OpenOptions() blockdev.OpenOptions {
	return blockdev.OpenOptions{
		Buffered:      cfg.Buffered,
		AllowBuffered: cfg.AllowBuffered,
		BlockSize:     int64(cfg.BlockSize),
	}
}

type LayoutConfig struct {
	RecordBytes     units.SI `help:"Size of a record read" default:"1536B"`
	LargeBlockBytes units.SI `help:"Size of a large block write" default:"128KiB"`
}

type BackendConfig struct {
	Backend     string   `help:"Library implementation (native|go)" enum:"native,go" default:"native"`
	Library     string   `help:"Name or path of the native library" default:"raw" env:"RAW_LIBRARY"`
	LibraryPath []string `help:"Directories searched for the native library" sep:":"`
	Scheduler   string   `help:"Scheduler set by the go backend (noop|cfq)" enum:"noop,cfq" default:"noop"`
	LayoutConfig
}

func (cfg *BackendConfig) Open(globals *Globals) (binding.Library, error) {
	switch cfg.Backend {
	case "go":
		return cfg.goLibrary(globals)
	case "native":
		lib, err := binding.Load(cfg.Library, binding.WithSearchPath(cfg.LibraryPath...))
		if err != nil {
			return nil, err
		}
		return lib, nil
	default:
		panic("never")
	}
}

func (cfg *BackendConfig) goLibrary(globals *Globals) (*blockdev.Library, error) {
	mode, err := blockdev.ParseSchedulerMode(cfg.Scheduler)
	if err != nil {
		return nil, err
	}
	if cfg.RecordBytes <= 0 || cfg.RecordBytes > 1<<31 {
		return nil, errors.Errorf("record size out of range: %d", cfg.RecordBytes)
	}

	lib := blockdev.NewLibrary()
	lib.Stdout = globals.stdout()
	lib.Options = globals.Device.OpenOptions()
	lib.Scheduler = mode
	lib.RecordBytes = uint32(cfg.RecordBytes)
	lib.LargeBlockBytes = uint64(cfg.LargeBlockBytes)
	return lib, nil
}
