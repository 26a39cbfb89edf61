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

// Package clock reads CLOCK_MONOTONIC directly so that timestamps can be
// compared with ones taken by native code on the same host.
package clock

import (
	"time"

	"golang.org/x/sys/unix"
)

// now reads CLOCK_MONOTONIC. The kernel only fails it for an unknown clock
// id or a bad pointer, neither of which can happen here, so a failure is
// reported as the zero time rather than crashing a host that is timing I/O.
func now() unix.Timespec {
	var ts unix.Timespec
	_ = unix.ClockGettime(unix.CLOCK_MONOTONIC, &ts)
	return ts
}

// Ms returns monotonic milliseconds.
func Ms() uint64 {
	ts := now()
	return uint64(ts.Nsec)/1000000 + uint64(ts.Sec)*1000
}

// Us returns monotonic microseconds.
func Us() uint64 {
	ts := now()
	return uint64(ts.Nsec)/1000 + uint64(ts.Sec)*1000000
}

// Ns returns monotonic nanoseconds.
func Ns() uint64 {
	ts := now()
	return uint64(ts.Nsec) + uint64(ts.Sec)*1000000000
}

// SafeDeltaNs is stop - start, or 0 if the readings are out of order.
func SafeDeltaNs(startNs, stopNs uint64) uint64 {
	if startNs > stopNs {
		return 0
	}
	return stopNs - startNs
}

func Since(startNs uint64) time.Duration {
	return time.Duration(SafeDeltaNs(startNs, Ns()))
}
