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
	"io"
	"os"
	"reflect"

	"github.com/alecthomas/kong"
	"github.com/alecthomas/units"
	"go.uber.org/zap"

	"github.com/NVIDIA/rawdev/pkg/blockdev"
)

type Globals struct {
	LogLevel        string       `help:"Set the logging level (debug|info|warn|error)" default:"info"`
	MetricsTextfile string       `help:"Write prometheus metrics to this file on exit" type:"path" env:"RAWDEV_METRICS_TEXTFILE"`
	Device          DeviceConfig `embed:"" prefix:"device-"`

	// Stdout receives command output; nil means os.Stdout.
	Stdout io.Writer `kong:"-"`
}

type CLI struct {
	Globals

	Harness   HarnessCmd   `cmd:"" help:"Load a raw device library and call its main entry point"`
	Run       RunCmd       `cmd:"" help:"Configure a device and write a result file"`
	Read      ReadCmd      `cmd:"" help:"Read from a device, optionally writing and reading again"`
	Write     WriteCmd     `cmd:"" help:"Write a message to a device"`
	Info      InfoCmd      `cmd:"" help:"Print device geometry"`
	Scheduler SchedulerCmd `cmd:"" help:"Show or set the block layer scheduler of a device"`
	Version   VersionCmd   `cmd:"" help:"Print the client version information"`
}

func (g *Globals) stdout() io.Writer {
	if g.Stdout == nil {
		return os.Stdout
	}
	return g.Stdout
}

// Flush writes out anything buffered during the run.
func (g *Globals) Flush() error {
	if g.MetricsTextfile == "" {
		return nil
	}
	zap.L().Debug("writing metrics", zap.String("path", g.MetricsTextfile))
	return blockdev.WriteMetrics(g.MetricsTextfile)
}

func SIDecoder(ctx *kong.DecodeContext, target reflect.Value) error {
	var value string
	if err := ctx.Scan.PopValueInto("si", &value); err != nil {
		return err
	}

	si, err := units.ParseStrictBytes(value)
	if err != nil {
		return err
	}
	target.Set(reflect.ValueOf(units.SI(si)))
	return nil
}

func SITypeMapper() kong.Option {
	var si units.SI
	return kong.TypeMapper(reflect.TypeOf(si), kong.MapperFunc(SIDecoder))
}
