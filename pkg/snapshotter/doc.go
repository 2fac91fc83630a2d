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

// Package snapshotter assembles node metrics snapshots.
//
// NodeSnapshotter stamps the current UTC time and runs the system, GPU and
// container collectors, by default one after another (system first). With
// Concurrent set they run in parallel under an errgroup, which cuts the
// worst-case latency to the slowest single collector.
//
// # Usage
//
//	ns := &snapshotter.NodeSnapshotter{}
//	snap, err := ns.Measure(ctx)
//	if err != nil {
//	    // only a host resource query failure ends up here
//	}
//
// # Observability
//
// Exported Prometheus series:
//   - metrics_agent_snapshot_duration_seconds
//   - metrics_agent_snapshot_total{status}
//   - metrics_agent_snapshot_collector_duration_seconds{collector}
//   - metrics_agent_snapshot_gpus
package snapshotter
