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
	"io/ioutil"
	"os"
	"path"
	"strings"
	"syscall"

	"github.com/pkg/errors"

	"github.com/NVIDIA/rawdev/pkg/unixcompat"
)

var (
	devfs string
	sysfs string
)

func init() {
	if dpath := os.Getenv("DEVFS"); dpath != "" {
		devfs = dpath
	} else {
		devfs = "/dev"
	}

	if spath := os.Getenv("SYSFS"); spath != "" {
		sysfs = spath
	} else {
		sysfs = "/sys"
	}
}

// SetSysfsRoot points scheduler tuning at an alternate sysfs mount and
// returns the previous root.
func SetSysfsRoot(root string) string {
	prev := sysfs
	sysfs = root
	return prev
}

type SchedulerMode int

const (
	SchedulerNoop SchedulerMode = iota
	SchedulerCFQ
)

var schedulerModes = []string{
	"noop",
	"cfq",
}

func (m SchedulerMode) String() string {
	if int(m) < 0 || int(m) >= len(schedulerModes) {
		return fmt.Sprintf("SchedulerMode(%d)", int(m))
	}
	return schedulerModes[m]
}

func ParseSchedulerMode(s string) (SchedulerMode, error) {
	for i, name := range schedulerModes {
		if s == name {
			return SchedulerMode(i), nil
		}
	}
	return 0, fmt.Errorf("unknown scheduler mode %q (want %s)", s, strings.Join(schedulerModes, "|"))
}

// SchedulerPath is the sysfs file controlling the I/O scheduler of the
// device. Symlinks such as /dev/disk/by-id/* are resolved through
// /sys/dev/block when possible.
func SchedulerPath(deviceName string) string {
	base := path.Base(deviceName)
	if devpath, err := canonicalizeBlockDevice(deviceName); err == nil {
		base = path.Base(devpath)
	}
	return path.Join(sysfs, "block", base, "queue", "scheduler")
}

// SetScheduler selects the block layer scheduler for the device.
func SetScheduler(deviceName string, mode SchedulerMode) error {
	fname := SchedulerPath(deviceName)
	if err := sysfsWriteFull(fname, []byte(mode.String())); err != nil {
		return errors.Wrapf(err, "writing %s to %s", mode, fname)
	}
	return nil
}

// CurrentScheduler returns the active scheduler, the bracketed entry in
// the sysfs listing (e.g. "noop [cfq] deadline").
func CurrentScheduler(deviceName string) (string, error) {
	fname := SchedulerPath(deviceName)
	data, err := ioutil.ReadFile(fname)
	if err != nil {
		return "", err
	}
	fields := strings.Fields(string(data))
	for _, f := range fields {
		if strings.HasPrefix(f, "[") && strings.HasSuffix(f, "]") {
			return strings.Trim(f, "[]"), nil
		}
	}
	if len(fields) == 1 {
		return fields[0], nil
	}
	return "", fmt.Errorf("no active scheduler in %s", fname)
}

func canonicalizeBlockDevice(devpath string) (string, error) {
	stat, err := os.Stat(devpath)
	if err != nil {
		return "", err
	}
	if stat.Mode()&os.ModeDevice == 0 {
		return "", fmt.Errorf("%s is not a device", devpath)
	}

	sys, ok := stat.Sys().(*syscall.Stat_t)
	if !ok {
		panic("never")
	}

	major := unixcompat.Major(uint64(sys.Rdev))
	minor := unixcompat.Minor(uint64(sys.Rdev))

	symlink := path.Join(sysfs, "dev", "block", fmt.Sprintf("%d:%d", major, minor))
	dst, err := os.Readlink(symlink)
	if err != nil {
		return "", err
	}
	sysfsDevPath := path.Clean(path.Join(path.Dir(symlink), dst))
	base := path.Base(sysfsDevPath)
	return path.Join(devfs, base), nil
}

func sysfsWriteFull(path string, data []byte) error {
	f, err := os.OpenFile(path, os.O_WRONLY, 0200)
	if err != nil {
		return err
	}
	n, err := f.Write(data)
	if err == nil && n < len(data) {
		err = io.ErrShortWrite
	}
	if err1 := f.Close(); err == nil {
		err = err1
	}
	return err
}
