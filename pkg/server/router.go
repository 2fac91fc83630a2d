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

import "net/http"

const (
	routeRoot      = "/"
	routeMetrics   = "/metrics"
	routeHealth    = "/health"
	routeUnmatched = "unmatched"
)

// router dispatches on the exact request target and GET only. A query
// string, even an empty one, makes the target unknown. http.ServeMux is not used
// because it answers HEAD on GET patterns and 405 on method mismatch,
// where this API answers 404 for both.
type router struct {
	routes   map[string]http.HandlerFunc
	notFound http.HandlerFunc
}

// setupRoutes configures all HTTP routes and middleware
func (s *Server) setupRoutes() http.Handler {
	return &router{
		routes: map[string]http.HandlerFunc{
			routeRoot:    s.withMiddleware(routeRoot, s.handleSnapshot),
			routeMetrics: s.withMiddleware(routeMetrics, s.handleSnapshot),
			routeHealth:  s.withMiddleware(routeHealth, s.handleHealth),
		},
		notFound: s.withMiddleware(routeUnmatched, writeNotFound),
	}
}

func (rt *router) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodGet && r.URL.RawQuery == "" && !r.URL.ForceQuery {
		if h, ok := rt.routes[r.URL.Path]; ok {
			h(w, r)
			return
		}
	}
	rt.notFound(w, r)
}
