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

// Package collector defines the samplers that produce each fragment of a
// node snapshot and a factory wiring them to production dependencies.
//
// # Collectors
//
// Each collector owns one fragment and its own failure policy:
//
//	GPUCollector        nvidia-smi         failure -> empty list, warning logged
//	SystemCollector     gopsutil           failure -> error, snapshot aborted
//	ContainerCollector  docker ps -q       failure -> 0, silent
//
// # Factory Pattern
//
// The Factory interface abstracts collector creation so the snapshotter
// can be tested with fakes:
//
//	factory := collector.NewDefaultFactory(
//	    collector.WithToolTimeout(10*time.Second),
//	    collector.WithCPUSampleInterval(500*time.Millisecond),
//	)
//	gpus := factory.CreateGPUCollector().Collect(ctx)
//
// Collectors hold no per-request state and are safe for concurrent use.
package collector
