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

package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/gpu-metrics-agent/pkg/measurement"
	"github.com/NVIDIA/gpu-metrics-agent/pkg/serializer"
	"github.com/NVIDIA/gpu-metrics-agent/pkg/server"
)

type fakeSnapshotter struct {
	snap *measurement.Snapshot
	err  error
}

func (f *fakeSnapshotter) Measure(context.Context) (*measurement.Snapshot, error) {
	return f.snap, f.err
}

// stubSnapshotter swaps the snapshot source for the duration of the test
// and records the requested concurrency.
func stubSnapshotter(t *testing.T, f *fakeSnapshotter) *bool {
	t.Helper()
	orig := newSnapshotter
	concurrent := new(bool)
	newSnapshotter = func(c bool) server.Snapshotter {
		*concurrent = c
		return f
	}
	t.Cleanup(func() { newSnapshotter = orig })
	return concurrent
}

func testSnapshot() *measurement.Snapshot {
	return &measurement.Snapshot{
		Timestamp: measurement.NewTimestamp(time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)),
		System: measurement.SystemMetrics{
			CPUPercent: 3,
			RAMUsedGB:  measurement.NewGB(1.5),
			RAMTotalGB: measurement.NewGB(8),
		},
		Containers: measurement.ContainerMetrics{Running: 1},
	}
}

func runRoot(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.Writer = &out
	err := cmd.Run(context.Background(), append([]string{name}, args...))
	return out.String(), err
}

func TestParseOutputFormat(t *testing.T) {
	tests := []struct {
		name       string
		format     string
		wantFormat serializer.Format
		wantErr    bool
	}{
		{name: "valid yaml format", format: "yaml", wantFormat: serializer.FormatYAML},
		{name: "valid json format", format: "json", wantFormat: serializer.FormatJSON},
		{name: "uppercase", format: "JSON", wantFormat: serializer.FormatJSON},
		{name: "table is not supported", format: "table", wantErr: true},
		{name: "invalid format xml", format: "xml", wantErr: true},
		{name: "empty format", format: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := &cli.Command{
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "format", Value: tt.format},
				},
				Action: func(_ context.Context, c *cli.Command) error {
					got, err := parseOutputFormat(c)
					if tt.wantErr {
						assert.Error(t, err)
						return nil
					}
					assert.NoError(t, err)
					assert.Equal(t, tt.wantFormat, got)
					return nil
				},
			}
			require.NoError(t, cmd.Run(context.Background(), []string{"test"}))
		})
	}
}

func TestSnapshotCommand_JSON(t *testing.T) {
	concurrent := stubSnapshotter(t, &fakeSnapshotter{snap: testSnapshot()})

	out, err := runRoot(t, "snapshot")
	require.NoError(t, err)
	assert.False(t, *concurrent)

	var doc map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	assert.Equal(t, "2024-05-01T12:00:00.000000Z", doc["timestamp"])
	assert.Equal(t, []any{}, doc["gpus"])
	assert.Contains(t, out, "\"ram_used_gb\": 1.5")
}

func TestSnapshotCommand_YAML(t *testing.T) {
	stubSnapshotter(t, &fakeSnapshotter{snap: testSnapshot()})

	out, err := runRoot(t, "snapshot", "--format", "yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "running: 1")
	assert.Contains(t, out, "2024-05-01T12:00:00.000000Z")
}

func TestSnapshotCommand_Concurrent(t *testing.T) {
	concurrent := stubSnapshotter(t, &fakeSnapshotter{snap: testSnapshot()})

	_, err := runRoot(t, "snapshot", "--concurrent")
	require.NoError(t, err)
	assert.True(t, *concurrent)
}

func TestSnapshotCommand_ConcurrentFromEnv(t *testing.T) {
	t.Setenv("METRICS_CONCURRENT", "true")
	concurrent := stubSnapshotter(t, &fakeSnapshotter{snap: testSnapshot()})

	_, err := runRoot(t, "snapshot")
	require.NoError(t, err)
	assert.True(t, *concurrent)
}

func TestSnapshotCommand_Errors(t *testing.T) {
	t.Run("collection failure", func(t *testing.T) {
		stubSnapshotter(t, &fakeSnapshotter{err: errors.New("statfs failed")})
		out, err := runRoot(t, "snapshot")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "statfs failed")
		assert.Empty(t, out)
	})

	t.Run("bad format", func(t *testing.T) {
		stubSnapshotter(t, &fakeSnapshotter{snap: testSnapshot()})
		_, err := runRoot(t, "snapshot", "--format", "xml")
		require.Error(t, err)
	})
}

type closeErrWriter struct {
	bytes.Buffer
	closed bool
}

func (w *closeErrWriter) Close() error {
	w.closed = true
	return errors.New("disk full")
}

func TestSnapshotCommand_CloseError(t *testing.T) {
	stubSnapshotter(t, &fakeSnapshotter{snap: testSnapshot()})

	out := &closeErrWriter{}
	cmd := newRootCmd()
	cmd.Writer = out

	err := cmd.Run(context.Background(), []string{name, "snapshot"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
	assert.True(t, out.closed)
	assert.True(t, json.Valid(out.Bytes()))
}

func TestWriteSnapshot_SerializeErrorWins(t *testing.T) {
	out := &closeErrWriter{}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := writeSnapshot(ctx, serializer.NewWriter(serializer.FormatJSON, out), testSnapshot())
	assert.ErrorIs(t, err, context.Canceled)
	assert.True(t, out.closed)
}

func TestServerConfig(t *testing.T) {
	run := func(t *testing.T, args ...string) (server.Config, error) {
		t.Helper()
		var (
			cfg    server.Config
			cfgErr error
		)
		cmd := &cli.Command{
			Flags: []cli.Flag{portFlag()},
			Action: func(_ context.Context, c *cli.Command) error {
				cfg, cfgErr = serverConfig(c)
				return nil
			},
		}
		require.NoError(t, cmd.Run(context.Background(), append([]string{"test"}, args...)))
		return cfg, cfgErr
	}

	t.Run("default", func(t *testing.T) {
		cfg, err := run(t)
		require.NoError(t, err)
		assert.Equal(t, 9100, cfg.Port)
		assert.Equal(t, name, cfg.Name)
	})

	t.Run("env", func(t *testing.T) {
		t.Setenv(server.EnvVarPort, "9200")
		cfg, err := run(t)
		require.NoError(t, err)
		assert.Equal(t, 9200, cfg.Port)
	})

	t.Run("flag wins over env", func(t *testing.T) {
		t.Setenv(server.EnvVarPort, "9200")
		cfg, err := run(t, "--port", "9300")
		require.NoError(t, err)
		assert.Equal(t, 9300, cfg.Port)
	})

	for _, port := range []string{"0", "65536"} {
		t.Run("out of range "+port, func(t *testing.T) {
			_, err := run(t, "--port", port)
			assert.Error(t, err)
		})
	}
}
