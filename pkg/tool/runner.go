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

package tool

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"k8s.io/utils/exec"

	"github.com/NVIDIA/gpu-metrics-agent/pkg/defaults"
	agenterrors "github.com/NVIDIA/gpu-metrics-agent/pkg/errors"
)

// Outcome classifies a single tool invocation.
type Outcome string

const (
	OutcomeOK          Outcome = "ok"
	OutcomeNotFound    Outcome = "not_found"
	OutcomeTimeout     Outcome = "timeout"
	OutcomeNonZeroExit Outcome = "non_zero_exit"
	OutcomeFailed      Outcome = "failed"
)

// Result is the outcome of running an external tool once.
// Err is nil only when Outcome is OutcomeOK.
type Result struct {
	Outcome Outcome
	Output  []byte
	Err     error
}

// OK reports whether the tool ran and exited zero.
func (r Result) OK() bool {
	return r.Outcome == OutcomeOK
}

// Lines returns the non-empty, whitespace-trimmed lines of Output.
func (r Result) Lines() []string {
	raw := strings.Split(string(r.Output), "\n")
	lines := make([]string, 0, len(raw))
	for _, l := range raw {
		if l = strings.TrimSpace(l); l != "" {
			lines = append(lines, l)
		}
	}
	return lines
}

// Runner executes external CLIs with a bounded timeout. No retries.
type Runner struct {
	Exec    exec.Interface
	Timeout time.Duration
}

// NewRunner returns a Runner backed by os/exec with the default collector timeout.
func NewRunner() *Runner {
	return &Runner{
		Exec:    exec.New(),
		Timeout: defaults.CollectorTimeout,
	}
}

// Run invokes name with args and captures stdout. Failures are classified
// into the Result rather than returned, so callers choose their tolerance.
func (r *Runner) Run(ctx context.Context, name string, args ...string) Result {
	start := time.Now()
	res := r.run(ctx, name, args...)
	toolInvocations.WithLabelValues(name, string(res.Outcome)).Inc()
	toolDuration.WithLabelValues(name).Observe(time.Since(start).Seconds())
	return res
}

func (r *Runner) run(ctx context.Context, name string, args ...string) Result {
	e := r.Exec
	if e == nil {
		e = exec.New()
	}
	timeout := r.Timeout
	if timeout <= 0 {
		timeout = defaults.CollectorTimeout
	}

	runCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	out, err := e.CommandContext(runCtx, name, args...).Output()
	if err == nil {
		return Result{Outcome: OutcomeOK, Output: out}
	}

	details := map[string]any{
		"command": name,
		"args":    strings.Join(args, " "),
	}

	var exitErr exec.ExitError
	switch {
	case errors.Is(err, exec.ErrExecutableNotFound):
		return Result{
			Outcome: OutcomeNotFound,
			Output:  out,
			Err: agenterrors.WrapWithContext(agenterrors.ErrCodeNotFound,
				fmt.Sprintf("%s not found in PATH", name), err, details),
		}
	case errors.Is(err, context.DeadlineExceeded) || errors.Is(runCtx.Err(), context.DeadlineExceeded):
		details["timeout"] = timeout.String()
		return Result{
			Outcome: OutcomeTimeout,
			Output:  out,
			Err: agenterrors.WrapWithContext(agenterrors.ErrCodeTimeout,
				fmt.Sprintf("%s did not finish within %s", name, timeout), err, details),
		}
	case errors.Is(runCtx.Err(), context.Canceled):
		return Result{
			Outcome: OutcomeFailed,
			Output:  out,
			Err: agenterrors.WrapWithContext(agenterrors.ErrCodeInternal,
				fmt.Sprintf("%s canceled", name), err, details),
		}
	case errors.As(err, &exitErr):
		details["exitStatus"] = exitErr.ExitStatus()
		return Result{
			Outcome: OutcomeNonZeroExit,
			Output:  out,
			Err: agenterrors.WrapWithContext(agenterrors.ErrCodeNonZeroExit,
				fmt.Sprintf("%s exited with status %d", name, exitErr.ExitStatus()), err, details),
		}
	default:
		return Result{
			Outcome: OutcomeFailed,
			Output:  out,
			Err: agenterrors.WrapWithContext(agenterrors.ErrCodeInternal,
				fmt.Sprintf("failed to run %s", name), err, details),
		}
	}
}
