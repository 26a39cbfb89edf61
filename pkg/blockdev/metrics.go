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
	"github.com/prometheus/client_golang/prometheus"

	"github.com/NVIDIA/rawdev/pkg/clock"
)

const (
	opRead  = "read"
	opWrite = "write"
)

var (
	promOps = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rawdev_ops_total",
			Help: "A counter of device operations by result.",
		},
		[]string{"op", "result"},
	)
	promBytes = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rawdev_bytes_total",
			Help: "A counter of bytes transferred to and from devices.",
		},
		[]string{"op"},
	)
	promLatencyVec = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "rawdev_op_duration_seconds",
			Help:    "A histogram of device operation latencies.",
			Buckets: prometheus.ExponentialBuckets(50e-6, 4, 10),
		},
		[]string{"op"},
	)
)

func init() {
	prometheus.MustRegister(
		promOps,
		promBytes,
		promLatencyVec,
	)
}

func observe(op string, n int, err error, startNs uint64) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	promOps.WithLabelValues(op, result).Inc()
	promBytes.WithLabelValues(op).Add(float64(n))
	promLatencyVec.WithLabelValues(op).Observe(clock.Since(startNs).Seconds())
}

// WriteMetrics dumps every registered metric in the text exposition
// format, for node_exporter's textfile collector.
func WriteMetrics(filename string) error {
	return prometheus.WriteToTextfile(filename, prometheus.DefaultGatherer)
}
