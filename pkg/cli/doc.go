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

// Package cli implements the metrics-agent command line.
//
// # Commands
//
// serve (default) - Run the HTTP metrics server:
//
//	metrics-agent [--port 9100] [--concurrent]
//	metrics-agent serve --port 9200
//
// snapshot - Collect one snapshot and print it to stdout:
//
//	metrics-agent snapshot [--format json|yaml] [--concurrent]
//
// # Flags and Environment Variables
//
//	--port, -p      METRICS_PORT        listening port (default 9100)
//	--log-level     LOG_LEVEL           debug, info, warn, error (default info)
//	--concurrent    METRICS_CONCURRENT  run samplers in parallel (default false)
//
// Flags win over environment variables. A port outside 1-65535 is rejected
// at startup.
//
// # Exit Codes
//
//	0  Success or graceful shutdown
//	1  Invalid configuration, bind failure, or snapshot failure
//
// Version information is embedded at build time using ldflags:
//
//	go build -ldflags="-X 'github.com/NVIDIA/gpu-metrics-agent/pkg/cli.version=1.0.0'"
package cli
