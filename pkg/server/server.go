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
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/coreos/go-systemd/v22/daemon"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"github.com/NVIDIA/gpu-metrics-agent/pkg/measurement"
	"github.com/NVIDIA/gpu-metrics-agent/pkg/snapshotter"
)

// Snapshotter assembles one node snapshot per call.
type Snapshotter interface {
	Measure(ctx context.Context) (*measurement.Snapshot, error)
}

// Notifier reports service state to the init system.
type Notifier func(state string) error

// Server represents the HTTP server
type Server struct {
	config      Config
	httpServer  *http.Server
	snapshotter Snapshotter
	exposition  http.Handler
	notify      Notifier
}

// Option is a functional option for configuring Server instances.
type Option func(*Server)

// WithSnapshotter sets the snapshot source. Defaults to a sequential
// snapshotter.NodeSnapshotter.
func WithSnapshotter(sn Snapshotter) Option {
	return func(s *Server) {
		s.snapshotter = sn
	}
}

// WithNotifier replaces the systemd readiness notifier.
func WithNotifier(n Notifier) Option {
	return func(s *Server) {
		s.notify = n
	}
}

// sdNotify sends state to systemd. It is a no-op outside systemd.
func sdNotify(state string) error {
	_, err := daemon.SdNotify(false, state)
	return err
}

// New creates a new server instance.
func New(cfg Config, opts ...Option) (*Server, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	s := &Server{
		config:     cfg,
		exposition: promhttp.Handler(),
		notify:     sdNotify,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.snapshotter == nil {
		s.snapshotter = &snapshotter.NodeSnapshotter{}
	}

	s.httpServer = &http.Server{
		Addr:              cfg.Addr(),
		Handler:           s.setupRoutes(),
		ReadTimeout:       cfg.ReadTimeout,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
	}

	return s, nil
}

// Handler returns the routed handler with middleware applied.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Start binds the configured address and serves until ctx is done.
func (s *Server) Start(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.httpServer.Addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is done, then shuts down
// gracefully. Readiness is reported once ln is bound.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	slog.Info("server listening", "address", ln.Addr().String())
	s.notifyState(daemon.SdNotifyReady)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		defer cancel()
		if err := s.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve failed: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		return s.Shutdown(context.Background())
	})

	return g.Wait()
}

// Shutdown gracefully shuts down the server, waiting up to the configured
// shutdown timeout for in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	s.notifyState(daemon.SdNotifyStopping)

	shutdownCtx, cancel := context.WithTimeout(ctx, s.config.ShutdownTimeout)
	defer cancel()

	slog.Info("shutting down server")
	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown failed: %w", err)
	}
	return nil
}

func (s *Server) notifyState(state string) {
	if s.notify == nil {
		return
	}
	if err := s.notify(state); err != nil {
		slog.Warn("sd_notify failed", "state", state, "error", err)
	}
}

// Run starts the server with graceful shutdown on SIGINT or SIGTERM.
func Run(ctx context.Context, cfg Config, opts ...Option) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	s, err := New(cfg, opts...)
	if err != nil {
		return err
	}

	slog.Info("starting server",
		slog.String("name", cfg.Name),
		slog.String("version", cfg.Version),
		slog.String("address", s.httpServer.Addr),
		slog.Duration("readTimeout", cfg.ReadTimeout),
		slog.Duration("writeTimeout", cfg.WriteTimeout),
		slog.Duration("idleTimeout", cfg.IdleTimeout),
		slog.Duration("shutdownTimeout", cfg.ShutdownTimeout),
	)

	if err := s.Start(ctx); err != nil {
		slog.Error("error running server", slog.String("error", err.Error()))
		return fmt.Errorf("server error: %w", err)
	}

	slog.Info("server stopped gracefully")
	return nil
}
