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
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/NVIDIA/gpu-metrics-agent/pkg/defaults"
	agenterrors "github.com/NVIDIA/gpu-metrics-agent/pkg/errors"
)

const (
	// DefaultPort is the listening port when none is configured.
	DefaultPort = 9100

	// EnvVarPort overrides the listening port.
	EnvVarPort = "METRICS_PORT"
)

// Config holds server configuration
type Config struct {
	// Server identity
	Name    string
	Version string

	// Server configuration
	Address string
	Port    int

	// Timeouts
	ReadTimeout       time.Duration
	ReadHeaderTimeout time.Duration
	WriteTimeout      time.Duration
	IdleTimeout       time.Duration
	ShutdownTimeout   time.Duration
}

// NewConfig returns a Config with defaults. The agent listens on all
// interfaces.
func NewConfig() Config {
	return Config{
		Name:              "metrics-agent",
		Version:           "dev",
		Address:           "",
		Port:              DefaultPort,
		ReadTimeout:       defaults.ServerReadTimeout,
		ReadHeaderTimeout: defaults.ServerReadHeaderTimeout,
		WriteTimeout:      defaults.ServerWriteTimeout,
		IdleTimeout:       defaults.ServerIdleTimeout,
		ShutdownTimeout:   defaults.ServerShutdownTimeout,
	}
}

// Validate checks the port range.
func (c Config) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return agenterrors.NewWithContext(agenterrors.ErrCodeInvalidRequest,
			fmt.Sprintf("port %d out of range 1-65535", c.Port),
			map[string]any{"port": c.Port})
	}
	return nil
}

// Addr returns the host:port the server listens on.
func (c Config) Addr() string {
	return net.JoinHostPort(c.Address, strconv.Itoa(c.Port))
}
