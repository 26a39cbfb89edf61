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
	"os"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics(t *testing.T) {
	h, _ := openBounce(t, 4096, 512)
	defer h.Close()

	okReads := testutil.ToFloat64(promOps.WithLabelValues(opRead, "ok"))
	badReads := testutil.ToFloat64(promOps.WithLabelValues(opRead, "error"))
	readBytes := testutil.ToFloat64(promBytes.WithLabelValues(opRead))

	_, err := h.ReadAt(make([]byte, 100), 10)
	require.NoError(t, err)
	_, err = h.ReadAt(make([]byte, 100), 4090)
	require.Error(t, err)

	assert.Equal(t, okReads+1, testutil.ToFloat64(promOps.WithLabelValues(opRead, "ok")))
	assert.Equal(t, badReads+1, testutil.ToFloat64(promOps.WithLabelValues(opRead, "error")))
	assert.Equal(t, readBytes+106, testutil.ToFloat64(promBytes.WithLabelValues(opRead)))
}

func TestWriteMetrics(t *testing.T) {
	observe(opWrite, 4096, nil, 0)

	fname := filepath.Join(t.TempDir(), "rawdev.prom")
	require.NoError(t, WriteMetrics(fname))
	data, err := os.ReadFile(fname)
	require.NoError(t, err)
	assert.Contains(t, string(data), "rawdev_ops_total{op=\"write\",result=\"ok\"}")
	assert.Contains(t, string(data), "rawdev_op_duration_seconds_bucket")
}
