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
	"os"

	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/gpu-metrics-agent/pkg/logging"
	"github.com/NVIDIA/gpu-metrics-agent/pkg/server"
	"github.com/NVIDIA/gpu-metrics-agent/pkg/snapshotter"
)

const (
	name           = "metrics-agent"
	versionDefault = "dev"
)

var (
	// overridden during build with ldflags
	version = versionDefault
	commit  = "unknown"
	date    = "unknown"
)

// newSnapshotter builds the snapshot source for both commands.
var newSnapshotter = func(concurrent bool) server.Snapshotter {
	return &snapshotter.NodeSnapshotter{Concurrent: concurrent}
}

// Execute runs the command tree against os.Args and exits non-zero on error.
func Execute() {
	if err := newRootCmd().Run(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cli.Command {
	return &cli.Command{
		Name:                  name,
		Usage:                 "Serve per-node GPU, system and container metrics over HTTP",
		Version:               fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
		EnableShellCompletion: true,
		Flags: []cli.Flag{
			logLevelFlag(),
			portFlag(),
			concurrentFlag(),
		},
		Before: initLogger,
		Action: runServe,
		Commands: []*cli.Command{
			serveCmd(),
			snapshotCmd(),
		},
	}
}

func logLevelFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "log-level",
		Usage:   "log level (debug, info, warn, error)",
		Sources: cli.EnvVars(logging.EnvVarLogLevel),
		Value:   "info",
	}
}

func portFlag() cli.Flag {
	return &cli.IntFlag{
		Name:    "port",
		Aliases: []string{"p"},
		Usage:   "TCP port to listen on",
		Sources: cli.EnvVars(server.EnvVarPort),
		Value:   server.DefaultPort,
	}
}

func concurrentFlag() cli.Flag {
	return &cli.BoolFlag{
		Name:    "concurrent",
		Usage:   "run the GPU, system and container samplers in parallel",
		Sources: cli.EnvVars("METRICS_CONCURRENT"),
	}
}

// initLogger configures slog after flags are parsed so --log-level takes
// effect before any command executes.
func initLogger(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	logging.SetDefaultStructuredLoggerWithLevel(name, version, cmd.String("log-level"))
	return ctx, nil
}
