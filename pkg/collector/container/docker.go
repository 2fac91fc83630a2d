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

package container

import (
	"context"

	"github.com/NVIDIA/gpu-metrics-agent/pkg/measurement"
	"github.com/NVIDIA/gpu-metrics-agent/pkg/tool"
)

const dockerCommand = "docker"

// Collector counts running containers with `docker ps -q`.
// Every failure silently yields zero; the outcome is still counted by
// the tool runner's metrics.
type Collector struct {
	Runner *tool.Runner
}

// NewCollector returns a Collector with the default runner.
func NewCollector() *Collector {
	return &Collector{Runner: tool.NewRunner()}
}

// Collect returns the number of running containers.
func (c *Collector) Collect(ctx context.Context) measurement.ContainerMetrics {
	runner := c.Runner
	if runner == nil {
		runner = tool.NewRunner()
	}

	res := runner.Run(ctx, dockerCommand, "ps", "-q")
	if !res.OK() {
		return measurement.ContainerMetrics{}
	}
	return measurement.ContainerMetrics{Running: len(res.Lines())}
}
