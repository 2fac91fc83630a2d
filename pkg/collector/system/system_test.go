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
	"errors"
	"math"
	"testing"
	"time"

	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/mem"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	agenterrors "github.com/NVIDIA/gpu-metrics-agent/pkg/errors"
	"github.com/NVIDIA/gpu-metrics-agent/pkg/measurement"
)

func fakeCollector() *Collector {
	return &Collector{
		cpuPercent: func(context.Context, time.Duration, bool) ([]float64, error) {
			return []float64{37.6}, nil
		},
		virtualMemory: func(context.Context) (*mem.VirtualMemoryStat, error) {
			return &mem.VirtualMemoryStat{Used: 8 << 30, Total: 64 << 30}, nil
		},
		diskUsage: func(context.Context, string) (*disk.UsageStat, error) {
			return &disk.UsageStat{Used: 3 << 29, Total: 100 << 30}, nil
		},
	}
}

func TestCollector_Collect(t *testing.T) {
	m, err := fakeCollector().Collect(context.Background())
	require.NoError(t, err)

	assert.Equal(t, measurement.SystemMetrics{
		CPUPercent:  38,
		RAMUsedGB:   8.0,
		RAMTotalGB:  64.0,
		DiskUsedGB:  1.5,
		DiskTotalGB: 100.0,
	}, m)
}

func TestCollector_Defaults(t *testing.T) {
	var gotInterval time.Duration
	var gotPath string
	c := fakeCollector()
	c.cpuPercent = func(_ context.Context, interval time.Duration, percpu bool) ([]float64, error) {
		gotInterval = interval
		assert.False(t, percpu)
		return []float64{1}, nil
	}
	c.diskUsage = func(_ context.Context, path string) (*disk.UsageStat, error) {
		gotPath = path
		return &disk.UsageStat{}, nil
	}

	_, err := c.Collect(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 500*time.Millisecond, gotInterval)
	assert.Equal(t, "/", gotPath)
}

func TestCollector_ErrorsPropagate(t *testing.T) {
	boom := errors.New("boom")

	tests := []struct {
		name   string
		mutate func(c *Collector)
	}{
		{"cpu", func(c *Collector) {
			c.cpuPercent = func(context.Context, time.Duration, bool) ([]float64, error) { return nil, boom }
		}},
		{"cpu empty", func(c *Collector) {
			c.cpuPercent = func(context.Context, time.Duration, bool) ([]float64, error) { return nil, nil }
		}},
		{"memory", func(c *Collector) {
			c.virtualMemory = func(context.Context) (*mem.VirtualMemoryStat, error) { return nil, boom }
		}},
		{"disk", func(c *Collector) {
			c.diskUsage = func(context.Context, string) (*disk.UsageStat, error) { return nil, boom }
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := fakeCollector()
			tt.mutate(c)

			_, err := c.Collect(context.Background())
			require.Error(t, err)
			assert.Equal(t, agenterrors.ErrCodeInternal, agenterrors.CodeOf(err))
		})
	}
}

func TestCollector_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := fakeCollector().Collect(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRoundPercent(t *testing.T) {
	tests := []struct {
		in   float64
		want int
	}{
		{0, 0},
		{-3, 0},
		{math.NaN(), 0},
		{49.4, 49},
		{49.5, 50},
		{44.5, 44},
		{44.6, 45},
		{99.9, 100},
		{130, 100},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, roundPercent(tt.in), "input %v", tt.in)
	}
}

func TestCollector_RealHost(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping host sampling in short mode")
	}

	c := NewCollector()
	c.Interval = 50 * time.Millisecond

	m, err := c.Collect(context.Background())
	require.NoError(t, err)

	assert.GreaterOrEqual(t, m.CPUPercent, 0)
	assert.LessOrEqual(t, m.CPUPercent, 100)
	assert.Greater(t, float64(m.RAMTotalGB), 0.0)
	assert.LessOrEqual(t, float64(m.RAMUsedGB), float64(m.RAMTotalGB))
	assert.LessOrEqual(t, float64(m.DiskUsedGB), float64(m.DiskTotalGB))
}
