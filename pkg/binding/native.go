//go:build darwin || linux
// +build darwin linux

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
	"runtime"
	"unsafe"

	"github.com/ebitengine/purego"
	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

type loadConfig struct {
	searchPath []string
	mode       int
}

type Option func(*loadConfig)

// WithSearchPath adds directories searched before the dynamic loader's
// default locations.
func WithSearchPath(dirs ...string) Option {
	return func(cfg *loadConfig) {
		cfg.searchPath = append(cfg.searchPath, dirs...)
	}
}

// WithMode overrides the dlopen flags (default RTLD_NOW|RTLD_LOCAL).
func WithMode(mode int) Option {
	return func(cfg *loadConfig) {
		cfg.mode = mode
	}
}

// Native is a Library backed by a dynamically loaded shared object.
type Native struct {
	path   string
	handle uintptr

	main  func(argc int32, argv unsafe.Pointer) int32
	read  func(deviceName string, size int32, offset int64) string
	// A C boolean is an int; any nonzero value is true.
	write func(deviceName string, message string, offset int64) int32
}

var _ Library = (*Native)(nil)

// Load opens the native library called name and binds its entry points.
func Load(name string, opts ...Option) (*Native, error) {
	cfg := &loadConfig{
		mode: purego.RTLD_NOW | purego.RTLD_LOCAL,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	searchPath := append(cfg.searchPath, envSearchPath()...)

	var merr *multierror.Error
	for _, path := range Candidates(name, runtime.GOOS, searchPath) {
		handle, err := purego.Dlopen(path, cfg.mode)
		if err != nil {
			zap.L().Debug("dlopen", zap.String("path", path), zap.Error(err))
			merr = multierror.Append(merr, err)
			continue
		}

		n := &Native{path: path, handle: handle}
		if err := n.bind(); err != nil {
			purego.Dlclose(handle)
			return nil, err
		}
		zap.L().Debug("loaded native library", zap.String("name", name), zap.String("path", path))
		return n, nil
	}

	merr.ErrorFormat = func(errs []error) string {
		return fmt.Sprintf("%d candidates failed, last: %s", len(errs), errs[len(errs)-1])
	}
	return nil, errors.Wrapf(ErrLibraryNotFound, "loading %q (%s)", name, merr.Error())
}

func (n *Native) bind() error {
	syms := []struct {
		name string
		fptr interface{}
	}{
		{SymbolMain, &n.main},
		{SymbolRead, &n.read},
		{SymbolWrite, &n.write},
	}
	for _, sym := range syms {
		addr, err := purego.Dlsym(n.handle, sym.name)
		if err != nil {
			return errors.Wrapf(ErrSymbolNotFound, "%s in %s: %s", sym.name, n.path, err)
		}
		purego.RegisterFunc(sym.fptr, addr)
	}
	return nil
}

// Path is the file the library was loaded from.
func (n *Native) Path() string {
	return n.path
}

func (n *Native) Main(args []string) int32 {
	argv := newArgv(args)
	rc := n.main(int32(len(args)), argv.pointer())
	runtime.KeepAlive(argv)
	return rc
}

func (n *Native) Read(deviceName string, size int32, offset int64) string {
	return n.read(deviceName, size, offset)
}

func (n *Native) Write(deviceName string, message string, offset int64) bool {
	return n.write(deviceName, message, offset) != 0
}

func (n *Native) Close() error {
	if n.handle == 0 {
		return nil
	}
	err := purego.Dlclose(n.handle)
	n.handle = 0
	return err
}
