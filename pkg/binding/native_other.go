//go:build !darwin && !linux
// +build !darwin,!linux

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
	"github.com/pkg/errors"
)

type Option func()

func WithSearchPath(dirs ...string) Option {
	return func() {}
}

func WithMode(mode int) Option {
	return func() {}
}

// Native is unavailable on this platform.
type Native struct {
	Library
}

func Load(name string, opts ...Option) (*Native, error) {
	return nil, errors.Wrapf(ErrLibraryNotFound, "loading %q: dynamic loading not supported on this OS", name)
}
