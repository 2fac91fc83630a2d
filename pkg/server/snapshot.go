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

package server

import (
	"log/slog"
	"net/http"
	"strings"

	agenterrors "github.com/NVIDIA/gpu-metrics-agent/pkg/errors"
	"github.com/NVIDIA/gpu-metrics-agent/pkg/serializer"
)

// handleSnapshot handles GET / and GET /metrics. Every call assembles a
// fresh snapshot; nothing is cached between requests.
func (s *Server) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path == routeMetrics && wantsExposition(r) {
		s.exposition.ServeHTTP(w, r)
		return
	}

	w.Header().Set("Access-Control-Allow-Origin", "*")

	snap, err := s.snapshotter.Measure(r.Context())
	if err != nil {
		slog.Error("snapshot request failed",
			"requestID", r.Context().Value(contextKeyRequestID),
			"path", r.URL.Path,
			"error", err,
		)
		WriteError(w, r, http.StatusInternalServerError, agenterrors.CodeOf(err),
			"failed to collect node metrics", true, nil)
		return
	}

	serializer.RespondIndentedJSON(w, http.StatusOK, snap)
}

// wantsExposition reports whether the client asked for the Prometheus
// text or OpenMetrics format, as Prometheus scrapers do.
func wantsExposition(r *http.Request) bool {
	accept := strings.ReplaceAll(strings.ToLower(r.Header.Get("Accept")), " ", "")
	return strings.Contains(accept, "application/openmetrics-text") ||
		strings.Contains(accept, "text/plain;version=")
}
