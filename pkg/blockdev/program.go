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

package blockdev

import (
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const banner = "\n=> Raw Device Access - direct IO test\n"

type config struct {
	device *Device
	out    *os.File
}

// Main is the argc/argv entry point: Main([]string{prog, device,
// resultfile}). It returns 0 on success and -1 when the arguments are
// unusable. Progress is reported to the result file.
func (l *Library) Main(args []string) int32 {
	stdout := l.stdout()
	fmt.Fprint(stdout, banner)

	cfg, ok := l.configure(args, stdout)
	if !ok {
		return -1
	}
	defer func() {
		if err := cfg.out.Close(); err != nil {
			zap.L().Warn("closing result file", zap.String("path", cfg.out.Name()), zap.Error(err))
		}
	}()

	if err := SetScheduler(cfg.device.Name, l.Scheduler); err != nil {
		fmt.Fprintf(stdout, "ERROR: %s\n", err)
		zap.L().Warn("setting scheduler", zap.String("device", cfg.device.Name), zap.Error(err))
	}

	l.reportGeometry(cfg)
	return 0
}

func (l *Library) configure(args []string, stdout io.Writer) (*config, bool) {
	if len(args) != 3 {
		fmt.Fprint(stdout, "=> ERROR: Wrong number of arguments!\nUsage: ./raw device resultfile.\n")
		return nil, false
	}

	dev, err := ParseDeviceName(args[1])
	if err != nil {
		fmt.Fprint(stdout, "=> ERROR: parsing device name.\n")
		zap.L().Debug("parsing device name", zap.String("device", args[1]), zap.Error(err))
		return nil, false
	}

	out, err := os.Create(args[2])
	if err != nil {
		fmt.Fprintf(stdout, "=> ERROR: Couldn't create output file: %s\n", args[2])
		zap.L().Debug("creating result file", zap.String("path", args[2]), zap.Error(err))
		return nil, false
	}
	fmt.Fprint(stdout, "-> Output file created. Access it when done.\n")

	fmt.Fprint(out, "\n=> Raw Device Access - output file \n\n")
	fmt.Fprintf(out, "-> Run: %s\n", uuid.New())
	fmt.Fprint(out, "-> Configuration was a success!\n")
	fmt.Fprintf(out, "-> Device name: %s\n", dev.Name)
	return &config{device: dev, out: out}, true
}

func (l *Library) reportGeometry(cfg *config) {
	opts := l.Options
	opts.ReadOnly = true
	h, err := Open(cfg.device, opts)
	if err != nil {
		fmt.Fprintf(cfg.out, "=> ERROR: Couldn't open device %s\n", cfg.device.Name)
		zap.L().Debug("opening device", zap.Error(err))
		return
	}
	defer h.Close()

	g, err := h.Discover(l.recordBytes(), l.largeBlockBytes())
	if err != nil {
		fmt.Fprintf(cfg.out, "=> ERROR: %s\n", err)
		return
	}
	fmt.Fprintf(cfg.out, "-> %s size = %s\n", cfg.device.Name, g)
}

func (l *Library) stdout() io.Writer {
	if l.Stdout == nil {
		return os.Stdout
	}
	return l.Stdout
}

func (l *Library) recordBytes() uint32 {
	if l.RecordBytes == 0 {
		return DefaultRecordBytes
	}
	return l.RecordBytes
}

func (l *Library) largeBlockBytes() uint64 {
	if l.LargeBlockBytes == 0 {
		return DefaultLargeBlockBytes
	}
	return l.LargeBlockBytes
}
