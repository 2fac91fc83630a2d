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

// Package server exposes node snapshots over HTTP.
//
// # Endpoints
//
//   - GET /metrics, GET /: a freshly assembled snapshot as indented JSON,
//     with Access-Control-Allow-Origin: *. A GET /metrics whose Accept
//     header asks for the Prometheus text or OpenMetrics format receives
//     the agent's own instrumentation instead.
//   - GET /health: 200 text/plain "OK".
//   - Anything else, including other methods on the paths above: 404 with
//     an empty body.
//
// Targets are matched exactly, so /health?x=1 and /metrics? are 404.
//
// Every routed request gets an X-Request-Id header, Prometheus RED
// metrics and panic recovery. Requests are not access-logged.
//
// # Usage
//
//	cfg := server.NewConfig()
//	cfg.Port = 9100
//
//	if err := server.Run(ctx, cfg,
//	    server.WithSnapshotter(&snapshotter.NodeSnapshotter{Concurrent: true}),
//	); err != nil {
//	    return err
//	}
//
// Run returns after SIGINT or SIGTERM once in-flight requests finish or
// the shutdown timeout elapses. Under systemd the server reports
// READY=1 after binding and STOPPING=1 on shutdown.
package server
