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

package harness_test

import (
	"bytes"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NVIDIA/rawdev/pkg/harness"
)

type readCall struct {
	device string
	size   int32
	offset int64
}

type writeCall struct {
	device  string
	message string
	offset  int64
}

// recordingLibrary remembers every call it receives.
type recordingLibrary struct {
	mainResult  int32
	echoArgc    bool
	readResult  string
	writeResult bool

	mainArgs [][]string
	reads    []readCall
	writes   []writeCall
}

func (l *recordingLibrary) Main(args []string) int32 {
	l.mainArgs = append(l.mainArgs, args)
	if l.echoArgc {
		return int32(len(args))
	}
	return l.mainResult
}

func (l *recordingLibrary) Read(device string, size int32, offset int64) string {
	l.reads = append(l.reads, readCall{device, size, offset})
	return l.readResult
}

func (l *recordingLibrary) Write(device string, message string, offset int64) bool {
	l.writes = append(l.writes, writeCall{device, message, offset})
	return l.writeResult
}

func (l *recordingLibrary) Close() error {
	return nil
}

func TestRunFixedResult(t *testing.T) {
	lib := &recordingLibrary{mainResult: 17}
	var out bytes.Buffer

	rc, err := harness.Run(lib, []string{"a", "--flag", "-x"}, &out)
	require.NoError(t, err)
	assert.EqualValues(t, 17, rc)
	assert.Contains(t, out.String(), "17")
	assert.Equal(t, "result: 17\n", out.String())
}

func TestRunEchoArgc(t *testing.T) {
	for k := 0; k < 5; k++ {
		lib := &recordingLibrary{echoArgc: true}
		var out bytes.Buffer

		args := make([]string, k)
		for i := range args {
			args[i] = "arg" + strconv.Itoa(i)
		}

		rc, err := harness.Run(lib, args, &out)
		require.NoError(t, err)
		assert.EqualValues(t, k, rc)
		assert.Equal(t, "result: "+strconv.Itoa(k)+"\n", out.String())
	}
}

func TestRunForwardsArgsVerbatim(t *testing.T) {
	lib := &recordingLibrary{}
	args := []string{"raw", "/dev/sdb", "--help", "", "result file.txt"}

	_, err := harness.Run(lib, args, &bytes.Buffer{})
	require.NoError(t, err)
	require.Len(t, lib.mainArgs, 1)
	assert.Equal(t, args, lib.mainArgs[0])
	assert.Empty(t, lib.reads)
	assert.Empty(t, lib.writes)
}

func TestReadForwardsArguments(t *testing.T) {
	lib := &recordingLibrary{readResult: "payload"}
	var out bytes.Buffer

	ok, err := harness.RunReadWrite(lib, harness.ReadWriteArgs{
		Device: "/dev/nvme0n1",
		Size:   512,
		Offset: 1 << 40,
		Passes: 1,
	}, &out)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []readCall{{"/dev/nvme0n1", 512, 1 << 40}}, lib.reads)
	assert.Empty(t, lib.writes)
	assert.Equal(t, "read: \"payload\"\n", out.String())
}

func TestWriteFalseSurfaces(t *testing.T) {
	lib := &recordingLibrary{readResult: "old", writeResult: false}
	var out bytes.Buffer

	ok, err := harness.RunReadWrite(lib, harness.ReadWriteArgs{
		Device:  "/dev/sdb",
		Size:    3,
		Offset:  4096,
		Message: "new",
		Passes:  2,
	}, &out)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, []writeCall{{"/dev/sdb", "new", 4096}}, lib.writes)
	assert.Len(t, lib.reads, 2)
	assert.Equal(t, "read: \"old\"\nwrite: false\nread: \"old\"\n", out.String())
}
