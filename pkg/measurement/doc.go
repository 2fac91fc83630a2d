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

// Package measurement defines the node metrics document served by the agent.
//
// # Core Types
//
//   - Snapshot: timestamp plus system, GPU and container fragments
//   - SystemMetrics: CPU percent, RAM and root disk usage
//   - GPUMetric: one nvidia-smi device line
//   - ContainerMetrics: running container count
//
// # Wire Format
//
// The wire schema is enforced by the types rather than by convention:
//
//   - GB values are rounded to one decimal and always encoded with a
//     fractional digit (2.0, never 2)
//   - Timestamp is UTC with a literal Z suffix
//   - an empty GPU list encodes as [] rather than null
//
// Example:
//
//	{
//	  "timestamp": "2025-01-15T10:30:00.123456Z",
//	  "system": {"cpu_percent": 12, "ram_used_gb": 41.3, "ram_total_gb": 251.5,
//	             "disk_used_gb": 120.0, "disk_total_gb": 937.4},
//	  "gpus": [{"index": 0, "name": "Tesla T4", "utilization_percent": 45,
//	            "memory_used_gb": 2.0, "memory_total_gb": 16.0, "temperature_c": 60}],
//	  "containers": {"running": 3}
//	}
package measurement
