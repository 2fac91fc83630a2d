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

package gpu

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strconv"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"golang.org/x/time/rate"

	"github.com/NVIDIA/gpu-metrics-agent/pkg/defaults"
	agenterrors "github.com/NVIDIA/gpu-metrics-agent/pkg/errors"
	"github.com/NVIDIA/gpu-metrics-agent/pkg/measurement"
	"github.com/NVIDIA/gpu-metrics-agent/pkg/tool"
)

const (
	nvidiaSMICommand = "nvidia-smi"

	// notAvailable is what nvidia-smi prints for a value the device does not report.
	notAvailable = "[N/A]"

	// queryFieldCount is the number of fields requested per device line.
	queryFieldCount = 6
)

var queryArgs = []string{
	"--query-gpu=index,name,utilization.gpu,memory.used,memory.total,temperature.gpu",
	"--format=csv,noheader,nounits",
}

var linesDropped = promauto.NewCounter(
	prometheus.CounterOpts{
		Name: "metrics_agent_gpu_lines_dropped_total",
		Help: "nvidia-smi device lines dropped because they could not be parsed",
	},
)

// Collector samples per-device GPU telemetry from nvidia-smi.
// It never fails: any invocation problem yields an empty list and a warning.
type Collector struct {
	Runner *tool.Runner

	// warn throttles repeated failure warnings, one limiter per outcome.
	// Nil means every failure is logged.
	warn map[tool.Outcome]*rate.Sometimes
}

// NewCollector returns a Collector with the default runner and a
// once-per-minute warning throttle per failure class.
func NewCollector() *Collector {
	warn := make(map[tool.Outcome]*rate.Sometimes)
	for _, o := range []tool.Outcome{
		tool.OutcomeNotFound,
		tool.OutcomeTimeout,
		tool.OutcomeNonZeroExit,
		tool.OutcomeFailed,
	} {
		warn[o] = &rate.Sometimes{First: 1, Interval: defaults.FailureLogInterval}
	}
	return &Collector{
		Runner: tool.NewRunner(),
		warn:   warn,
	}
}

// Collect runs the device query and returns one GPUMetric per parseable
// line, ordered by device index.
func (c *Collector) Collect(ctx context.Context) []measurement.GPUMetric {
	runner := c.Runner
	if runner == nil {
		runner = tool.NewRunner()
	}

	res := runner.Run(ctx, nvidiaSMICommand, queryArgs...)
	if !res.OK() {
		c.logFailure(res)
		return []measurement.GPUMetric{}
	}

	gpus, dropped := ParseQueryOutput(res.Lines())
	if len(dropped) > 0 {
		linesDropped.Add(float64(len(dropped)))
		for _, err := range dropped {
			slog.Debug("dropped nvidia-smi line", "code", agenterrors.CodeOf(err), "error", err)
		}
	}
	return gpus
}

func (c *Collector) logFailure(res tool.Result) {
	log := func() {
		slog.Warn("gpu sampler failed",
			"command", nvidiaSMICommand,
			"outcome", string(res.Outcome),
			"code", string(agenterrors.CodeOf(res.Err)),
			"error", res.Err,
		)
	}
	if s, ok := c.warn[res.Outcome]; ok {
		s.Do(log)
		return
	}
	log()
}

// ParseQueryOutput converts nvidia-smi CSV lines into GPU metrics.
// Unparseable lines are skipped and reported in dropped; they never
// produce zero-filled entries.
func ParseQueryOutput(lines []string) (gpus []measurement.GPUMetric, dropped []error) {
	gpus = make([]measurement.GPUMetric, 0, len(lines))
	for _, line := range lines {
		g, err := parseLine(line)
		if err != nil {
			dropped = append(dropped, err)
			continue
		}
		gpus = append(gpus, g)
	}
	sort.SliceStable(gpus, func(i, j int) bool {
		return gpus[i].Index < gpus[j].Index
	})
	return gpus, dropped
}

// parseLine parses "index, name, util, mem.used, mem.total, temp".
// Fields beyond the sixth are ignored.
func parseLine(line string) (measurement.GPUMetric, error) {
	parts := strings.Split(line, ",")
	if len(parts) < queryFieldCount {
		return measurement.GPUMetric{}, agenterrors.NewWithContext(agenterrors.ErrCodeMalformedOutput,
			fmt.Sprintf("expected %d fields, got %d", queryFieldCount, len(parts)),
			map[string]any{"line": line})
	}
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}

	var nums [queryFieldCount]int
	for _, i := range []int{0, 2, 3, 4, 5} {
		v, err := parseValue(parts[i])
		if err != nil {
			return measurement.GPUMetric{}, agenterrors.WrapWithContext(agenterrors.ErrCodeMalformedOutput,
				fmt.Sprintf("invalid numeric field %d", i), err,
				map[string]any{"line": line, "value": parts[i]})
		}
		nums[i] = v
	}

	return measurement.GPUMetric{
		Index:              nums[0],
		Name:               parts[1],
		UtilizationPercent: nums[2],
		MemoryUsedGB:       measurement.MiBToGB(nums[3]),
		MemoryTotalGB:      measurement.MiBToGB(nums[4]),
		TemperatureC:       nums[5],
	}, nil
}

// parseValue parses an integer field. The [N/A] sentinel and negative
// readings resolve to 0.
func parseValue(s string) (int, error) {
	if s == notAvailable {
		return 0, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	if v < 0 {
		return 0, nil
	}
	return v, nil
}
