// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
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

package system

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/mem"

	"github.com/NVIDIA/gpu-metrics-agent/pkg/defaults"
	agenterrors "github.com/NVIDIA/gpu-metrics-agent/pkg/errors"
	"github.com/NVIDIA/gpu-metrics-agent/pkg/measurement"
)

// DefaultRootPath is the filesystem whose usage is reported.
const DefaultRootPath = "/"

// Collector samples CPU, memory and root filesystem usage.
// Unlike the GPU and container collectors it does not degrade: any OS
// query failure is returned and fails the whole snapshot.
type Collector struct {
	// Interval is the blocking CPU measurement window. Zero means defaults.CPUSampleInterval.
	Interval time.Duration
	// RootPath is the filesystem to report. Empty means DefaultRootPath.
	RootPath string

	cpuPercent    func(ctx context.Context, interval time.Duration, percpu bool) ([]float64, error)
	virtualMemory func(ctx context.Context) (*mem.VirtualMemoryStat, error)
	diskUsage     func(ctx context.Context, path string) (*disk.UsageStat, error)
}

// NewCollector returns a Collector with default interval and root path.
func NewCollector() *Collector {
	return &Collector{
		Interval: defaults.CPUSampleInterval,
		RootPath: DefaultRootPath,
	}
}

// Collect blocks for the CPU interval and returns current usage figures.
func (c *Collector) Collect(ctx context.Context) (measurement.SystemMetrics, error) {
	if err := ctx.Err(); err != nil {
		return measurement.SystemMetrics{}, err
	}

	interval := c.Interval
	if interval <= 0 {
		interval = defaults.CPUSampleInterval
	}
	root := c.RootPath
	if root == "" {
		root = DefaultRootPath
	}

	cpuFn, memFn, diskFn := c.cpuPercent, c.virtualMemory, c.diskUsage
	if cpuFn == nil {
		cpuFn = cpu.PercentWithContext
	}
	if memFn == nil {
		memFn = mem.VirtualMemoryWithContext
	}
	if diskFn == nil {
		diskFn = disk.UsageWithContext
	}

	percents, err := cpuFn(ctx, interval, false)
	if err != nil {
		return measurement.SystemMetrics{}, agenterrors.Wrap(agenterrors.ErrCodeInternal, "failed to sample CPU utilization", err)
	}
	if len(percents) == 0 {
		return measurement.SystemMetrics{}, agenterrors.New(agenterrors.ErrCodeInternal, "CPU utilization sample is empty")
	}

	vm, err := memFn(ctx)
	if err != nil {
		return measurement.SystemMetrics{}, agenterrors.Wrap(agenterrors.ErrCodeInternal, "failed to read virtual memory", err)
	}

	du, err := diskFn(ctx, root)
	if err != nil {
		return measurement.SystemMetrics{}, agenterrors.WrapWithContext(agenterrors.ErrCodeInternal,
			fmt.Sprintf("failed to read disk usage for %s", root), err,
			map[string]any{"path": root})
	}

	return measurement.SystemMetrics{
		CPUPercent:  roundPercent(percents[0]),
		RAMUsedGB:   measurement.BytesToGB(vm.Used),
		RAMTotalGB:  measurement.BytesToGB(vm.Total),
		DiskUsedGB:  measurement.BytesToGB(du.Used),
		DiskTotalGB: measurement.BytesToGB(du.Total),
	}, nil
}

// roundPercent rounds to the nearest integer, ties to even, within 0..100.
func roundPercent(p float64) int {
	if math.IsNaN(p) || p <= 0 {
		return 0
	}
	if p >= 100 {
		return 100
	}
	return int(math.RoundToEven(p))
}
