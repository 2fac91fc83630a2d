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

package measurement

import (
	"encoding/json"
	"math"
	"strconv"
	"time"
)

// TimestampLayout is the wire layout of Snapshot.Timestamp.
const TimestampLayout = "2006-01-02T15:04:05.000000Z"

const (
	bytesPerGB = 1024 * 1024 * 1024
	mibPerGB   = 1024
)

// Snapshot is the complete metrics document for a single request.
// It is built fresh per request and never cached.
type Snapshot struct {
	Timestamp  Timestamp        `json:"timestamp" yaml:"timestamp"`
	System     SystemMetrics    `json:"system" yaml:"system"`
	GPUs       []GPUMetric      `json:"gpus" yaml:"gpus"`
	Containers ContainerMetrics `json:"containers" yaml:"containers"`
}

// SystemMetrics holds host CPU, memory and root filesystem usage.
type SystemMetrics struct {
	CPUPercent  int `json:"cpu_percent" yaml:"cpu_percent"`
	RAMUsedGB   GB  `json:"ram_used_gb" yaml:"ram_used_gb"`
	RAMTotalGB  GB  `json:"ram_total_gb" yaml:"ram_total_gb"`
	DiskUsedGB  GB  `json:"disk_used_gb" yaml:"disk_used_gb"`
	DiskTotalGB GB  `json:"disk_total_gb" yaml:"disk_total_gb"`
}

// GPUMetric is one device line reported by nvidia-smi.
type GPUMetric struct {
	Index              int    `json:"index" yaml:"index"`
	Name               string `json:"name" yaml:"name"`
	UtilizationPercent int    `json:"utilization_percent" yaml:"utilization_percent"`
	MemoryUsedGB       GB     `json:"memory_used_gb" yaml:"memory_used_gb"`
	MemoryTotalGB      GB     `json:"memory_total_gb" yaml:"memory_total_gb"`
	TemperatureC       int    `json:"temperature_c" yaml:"temperature_c"`
}

// ContainerMetrics holds the container runtime summary.
type ContainerMetrics struct {
	Running int `json:"running" yaml:"running"`
}

// MarshalJSON encodes a nil GPU list as [] so the schema shape is stable.
func (s Snapshot) MarshalJSON() ([]byte, error) {
	type alias Snapshot
	a := alias(s)
	if a.GPUs == nil {
		a.GPUs = []GPUMetric{}
	}
	return json.Marshal(a)
}

// GB is a non-negative gigabyte quantity carried with one decimal place.
type GB float64

// BytesToGB converts a byte count to GB (1024^3) rounded to one decimal.
func BytesToGB(b uint64) GB {
	return NewGB(float64(b) / bytesPerGB)
}

// MiBToGB converts a MiB count to GB (1024) rounded to one decimal.
func MiBToGB(mib int) GB {
	return NewGB(float64(mib) / mibPerGB)
}

// NewGB rounds v to one decimal place, ties to even. Negative and
// non-finite values become 0.
func NewGB(v float64) GB {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return GB(math.RoundToEven(v*10) / 10)
}

// MarshalJSON always emits exactly one fractional digit, e.g. 2.0.
func (g GB) MarshalJSON() ([]byte, error) {
	return []byte(strconv.FormatFloat(float64(g), 'f', 1, 64)), nil
}

// Timestamp is a capture instant always rendered in UTC with a Z suffix.
type Timestamp struct {
	time.Time
}

// NewTimestamp returns t converted to UTC.
func NewTimestamp(t time.Time) Timestamp {
	return Timestamp{Time: t.UTC()}
}

// String formats the timestamp using TimestampLayout.
func (t Timestamp) String() string {
	return t.UTC().Format(TimestampLayout)
}

// MarshalJSON implements json.Marshaler.
func (t Timestamp) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

// MarshalYAML implements yaml.Marshaler.
func (t Timestamp) MarshalYAML() (any, error) {
	return t.String(), nil
}
