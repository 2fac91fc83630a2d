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

package serializer

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/NVIDIA/gpu-metrics-agent/pkg/measurement"
)

func testSnapshot() *measurement.Snapshot {
	return &measurement.Snapshot{
		Timestamp: measurement.NewTimestamp(time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)),
		System: measurement.SystemMetrics{
			CPUPercent:  12,
			RAMUsedGB:   measurement.NewGB(3.4),
			RAMTotalGB:  measurement.NewGB(16),
			DiskUsedGB:  measurement.NewGB(40.2),
			DiskTotalGB: measurement.NewGB(100),
		},
		GPUs: []measurement.GPUMetric{
			{Index: 0, Name: "Tesla T4", UtilizationPercent: 45, MemoryUsedGB: measurement.NewGB(2), MemoryTotalGB: measurement.NewGB(15), TemperatureC: 60},
		},
		Containers: measurement.ContainerMetrics{Running: 3},
	}
}

func TestWriter_SerializeJSON(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(FormatJSON, &buf)

	require.NoError(t, w.Serialize(context.Background(), testSnapshot()))

	var result map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &result))
	assert.Equal(t, "2024-05-01T12:00:00.000000Z", result["timestamp"])
	assert.Contains(t, buf.String(), "\n  \"system\": {")
	assert.Contains(t, buf.String(), "\"memory_used_gb\": 2.0")
}

func TestWriter_SerializeYAML(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(FormatYAML, &buf)

	require.NoError(t, w.Serialize(context.Background(), testSnapshot()))

	var result map[string]any
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &result))
	assert.Contains(t, buf.String(), "2024-05-01T12:00:00.000000Z")
	assert.Contains(t, result, "gpus")
	assert.Contains(t, buf.String(), "name: Tesla T4")
}

func TestWriter_CanceledContext(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(FormatJSON, &buf)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, w.Serialize(ctx, testSnapshot()), context.Canceled)
	assert.Zero(t, buf.Len())
}

func TestWriter_UnsupportedFormat(t *testing.T) {
	var buf bytes.Buffer
	w := &Writer{format: "xml", output: &buf}

	assert.Error(t, w.Serialize(context.Background(), testSnapshot()))
}

func TestNewWriter_DefaultsToStdout(t *testing.T) {
	w := NewWriter(FormatJSON, nil)
	assert.Equal(t, os.Stdout, w.output)
	assert.Nil(t, w.closer)
	assert.NoError(t, w.Close())
}

func TestNewWriter_UnknownFormat(t *testing.T) {
	w := NewWriter("table", &bytes.Buffer{})
	assert.Equal(t, FormatJSON, w.format)
}

func TestWriter_CloseFile(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "snapshot-*.json")
	require.NoError(t, err)

	w := NewWriter(FormatJSON, f)
	require.NoError(t, w.Serialize(context.Background(), testSnapshot()))
	require.NoError(t, w.Close())

	data, err := os.ReadFile(f.Name())
	require.NoError(t, err)
	assert.True(t, json.Valid(data))
}

func TestFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		unknown bool
	}{
		{"json", FormatJSON, false},
		{" YAML ", FormatYAML, false},
		{"table", Format("table"), true},
		{"", Format(""), true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			f := ParseFormat(tt.in)
			assert.Equal(t, tt.want, f)
			assert.Equal(t, tt.unknown, f.IsUnknown())
		})
	}

	assert.Equal(t, []string{"json", "yaml"}, SupportedFormats())
}

func TestNewStdoutWriter(t *testing.T) {
	w := NewStdoutWriter(FormatYAML)
	assert.Equal(t, FormatYAML, w.format)
	assert.Equal(t, os.Stdout, w.output)
	assert.NoError(t, w.Close())
}
