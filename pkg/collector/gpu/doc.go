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

// Package gpu samples per-device GPU telemetry using nvidia-smi.
//
// # Collected Data
//
// One GPUMetric per device, ordered by index:
//   - index: device index as reported by nvidia-smi
//   - name: product name (Tesla T4, H100 80GB HBM3, etc.)
//   - utilization_percent: GPU utilization, 0-100
//   - memory_used_gb, memory_total_gb: framebuffer memory, MiB / 1024, one decimal
//   - temperature_c: core temperature
//
// # Query Format
//
// The collector uses nvidia-smi's query mode for machine-readable output:
//
//	nvidia-smi --query-gpu=index,name,utilization.gpu,memory.used,memory.total,temperature.gpu \
//	    --format=csv,noheader,nounits
//
// Example line:
//
//	0, Tesla T4, 45, 2048, 16384, 60
//
// Values the device does not report appear as [N/A] and are read as 0.
//
// # Error Handling
//
// GPU data is best effort. When nvidia-smi is missing, times out (10s),
// or exits non-zero, Collect returns an empty list and logs a warning
// naming the failure class; repeated warnings of the same class are
// limited to one per minute. Lines that cannot be parsed are dropped
// individually and counted in metrics_agent_gpu_lines_dropped_total.
//
// # Containerized Collection
//
// When running in containers, ensure the NVIDIA Container Toolkit is
// installed and nvidia-smi is available in the container.
package gpu
