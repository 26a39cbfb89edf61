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

package blockdev_test

import (
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NVIDIA/rawdev/pkg/blockdev"
)

func TestParseDeviceName(t *testing.T) {
	dev, err := blockdev.ParseDeviceName("/dev/sdb")
	require.NoError(t, err)
	assert.Equal(t, "/dev/sdb", dev.Name)
	assert.Zero(t, dev.NumLargeBlocks)
}

func TestParseDeviceNameLimits(t *testing.T) {
	_, err := blockdev.ParseDeviceName("")
	assert.Equal(t, blockdev.ErrEmptyDeviceName, err)

	longest := "/dev/" + strings.Repeat("x", blockdev.MaxDeviceNameSize-1-len("/dev/"))
	_, err = blockdev.ParseDeviceName(longest)
	assert.NoError(t, err)

	_, err = blockdev.ParseDeviceName(longest + "x")
	assert.Equal(t, blockdev.ErrDeviceNameTooLong, errors.Cause(err))
}
