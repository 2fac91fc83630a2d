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

// Package tooltest provides scripted tool.Runner instances for tests.
package tooltest

import (
	"errors"
	"time"

	"k8s.io/utils/exec"
	testingexec "k8s.io/utils/exec/testing"

	"github.com/NVIDIA/gpu-metrics-agent/pkg/tool"
)

// NewRunner returns a Runner whose successive invocations play the given
// actions in order, plus the FakeExec for inspecting recorded calls.
// Running more commands than actions panics.
func NewRunner(actions ...testingexec.FakeAction) (*tool.Runner, *testingexec.FakeExec) {
	fe := &testingexec.FakeExec{}
	for _, a := range actions {
		fc := &testingexec.FakeCmd{OutputScript: []testingexec.FakeAction{a}}
		fe.CommandScript = append(fe.CommandScript, func(cmd string, args ...string) exec.Cmd {
			return testingexec.InitFakeCmd(fc, cmd, args...)
		})
	}
	return &tool.Runner{Exec: fe, Timeout: time.Second}, fe
}

// Stdout is an action that succeeds with the given output.
func Stdout(out string) testingexec.FakeAction {
	return func() ([]byte, []byte, error) {
		return []byte(out), nil, nil
	}
}

// NotFound is an action that fails as if the executable were missing.
func NotFound() testingexec.FakeAction {
	return Fail(exec.ErrExecutableNotFound)
}

// ExitStatus is an action that fails with the given exit code.
func ExitStatus(code int) testingexec.FakeAction {
	return Fail(exec.CodeExitError{Err: errors.New("exit status"), Code: code})
}

// Fail is an action that fails with err.
func Fail(err error) testingexec.FakeAction {
	return func() ([]byte, []byte, error) {
		return nil, nil, err
	}
}
