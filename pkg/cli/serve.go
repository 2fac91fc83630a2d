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

	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/gpu-metrics-agent/pkg/server"
)

func serveCmd() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Run the HTTP metrics server (default)",
		Description: `Serve node metrics until SIGINT or SIGTERM.

Endpoints:
  GET /metrics, GET /   current snapshot as JSON
  GET /health           liveness, always "OK"

GET /metrics answers with JSON for every client except a Prometheus
scraper, i.e. a request whose Accept header names application/openmetrics-text
or text/plain;version=. Those receive the agent's own Prometheus metrics.

Examples:
  metrics-agent serve --port 9100
  METRICS_PORT=9200 metrics-agent`,
		Action: runServe,
	}
}

func runServe(ctx context.Context, cmd *cli.Command) error {
	cfg, err := serverConfig(cmd)
	if err != nil {
		return err
	}
	return server.Run(ctx, cfg, server.WithSnapshotter(newSnapshotter(cmd.Bool("concurrent"))))
}

// serverConfig builds the server configuration from parsed flags.
func serverConfig(cmd *cli.Command) (server.Config, error) {
	cfg := server.NewConfig()
	cfg.Name = name
	cfg.Version = version
	cfg.Port = int(cmd.Int("port"))
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}
