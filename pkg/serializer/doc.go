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

// Package serializer writes snapshots as JSON or YAML.
//
// HTTP handlers use RespondJSON and RespondIndentedJSON, which buffer the
// encoding so a failure never leaves a half-written response:
//
//	serializer.RespondIndentedJSON(w, http.StatusOK, snap)
//
// The CLI uses a Writer:
//
//	w := serializer.NewStdoutWriter(serializer.FormatYAML)
//	defer w.Close()
//	if err := w.Serialize(ctx, snap); err != nil {
//		return err
//	}
package serializer
