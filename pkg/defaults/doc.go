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

// Package defaults centralizes the timeouts and intervals used by the agent.
//
// Collector values:
//   - CollectorTimeout: upper bound on a single nvidia-smi or docker call
//   - CPUSampleInterval: blocking CPU measurement window per snapshot
//
// Server values bound the HTTP listener and graceful shutdown. The write
// timeout is sized so a worst-case sequential snapshot still completes.
package defaults
