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

package collector

import (
	"context"
	"time"

	"github.com/NVIDIA/gpu-metrics-agent/pkg/collector/container"
	"github.com/NVIDIA/gpu-metrics-agent/pkg/collector/gpu"
	"github.com/NVIDIA/gpu-metrics-agent/pkg/collector/system"
	"github.com/NVIDIA/gpu-metrics-agent/pkg/defaults"
	"github.com/NVIDIA/gpu-metrics-agent/pkg/measurement"
	"github.com/NVIDIA/gpu-metrics-agent/pkg/tool"
)

// GPUCollector produces the GPU fragment. It tolerates every failure.
type GPUCollector interface {
	Collect(ctx context.Context) []measurement.GPUMetric
}

// SystemCollector produces the CPU/RAM/disk fragment. Errors are fatal to the snapshot.
type SystemCollector interface {
	Collect(ctx context.Context) (measurement.SystemMetrics, error)
}

// ContainerCollector produces the container fragment. It tolerates every failure.
type ContainerCollector interface {
	Collect(ctx context.Context) measurement.ContainerMetrics
}

// Factory creates collectors with their dependencies.
// This interface enables dependency injection for testing.
type Factory interface {
	CreateGPUCollector() GPUCollector
	CreateSystemCollector() SystemCollector
	CreateContainerCollector() ContainerCollector
}

// Option configures a DefaultFactory.
type Option func(*DefaultFactory)

// WithToolTimeout sets the per-invocation timeout for nvidia-smi and docker.
func WithToolTimeout(timeout time.Duration) Option {
	return func(f *DefaultFactory) {
		f.ToolTimeout = timeout
	}
}

// WithCPUSampleInterval sets the blocking CPU measurement window.
func WithCPUSampleInterval(interval time.Duration) Option {
	return func(f *DefaultFactory) {
		f.CPUSampleInterval = interval
	}
}

// DefaultFactory creates collectors with production dependencies.
type DefaultFactory struct {
	ToolTimeout       time.Duration
	CPUSampleInterval time.Duration
}

// NewDefaultFactory creates a factory with default settings.
func NewDefaultFactory(opts ...Option) *DefaultFactory {
	f := &DefaultFactory{
		ToolTimeout:       defaults.CollectorTimeout,
		CPUSampleInterval: defaults.CPUSampleInterval,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

func (f *DefaultFactory) runner() *tool.Runner {
	r := tool.NewRunner()
	r.Timeout = f.ToolTimeout
	return r
}

// CreateGPUCollector creates an nvidia-smi collector.
func (f *DefaultFactory) CreateGPUCollector() GPUCollector {
	c := gpu.NewCollector()
	c.Runner = f.runner()
	return c
}

// CreateSystemCollector creates a host resource collector.
func (f *DefaultFactory) CreateSystemCollector() SystemCollector {
	c := system.NewCollector()
	c.Interval = f.CPUSampleInterval
	return c
}

// CreateContainerCollector creates a docker container counter.
func (f *DefaultFactory) CreateContainerCollector() ContainerCollector {
	return &container.Collector{Runner: f.runner()}
}
