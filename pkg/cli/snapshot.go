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
	"context"
	"fmt"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/gpu-metrics-agent/pkg/serializer"
)

func snapshotCmd() *cli.Command {
	return &cli.Command{
		Name:  "snapshot",
		Usage: "Collect one snapshot and print it",
		Description: `Assemble a single snapshot, exactly as GET /metrics would, and write
it to stdout. Useful for checking a node without starting the server.

Examples:
  metrics-agent snapshot
  metrics-agent snapshot --format yaml --concurrent`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"t"},
				Usage:   fmt.Sprintf("output format (%s)", strings.Join(serializer.SupportedFormats(), ", ")),
				Value:   string(serializer.FormatJSON),
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			format, err := parseOutputFormat(cmd)
			if err != nil {
				return err
			}

			snap, err := newSnapshotter(cmd.Bool("concurrent")).Measure(ctx)
			if err != nil {
				return fmt.Errorf("failed to collect snapshot: %w", err)
			}

			return writeSnapshot(ctx, serializer.NewWriter(format, cmd.Root().Writer), snap)
		},
	}
}

// writeSnapshot serializes v and closes w. A serialization error wins over
// a close error.
func writeSnapshot(ctx context.Context, w *serializer.Writer, v any) (err error) {
	defer func() {
		if cerr := w.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close output: %w", cerr)
		}
	}()
	return w.Serialize(ctx, v)
}

func parseOutputFormat(cmd *cli.Command) (serializer.Format, error) {
	format := serializer.ParseFormat(cmd.String("format"))
	if format.IsUnknown() {
		return "", fmt.Errorf("unknown output format: %q", cmd.String("format"))
	}
	return format, nil
}
