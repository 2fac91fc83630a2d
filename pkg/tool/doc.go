// Package tool runs the external CLIs the agent depends on (nvidia-smi,
// docker) and classifies every invocation into an Outcome.
//
// A Runner never returns an error. Instead each Result carries one of:
//
//   - OutcomeOK: exit status 0, Output holds stdout
//   - OutcomeNotFound: the executable is not on PATH
//   - OutcomeTimeout: the call exceeded Runner.Timeout (10s by default)
//   - OutcomeNonZeroExit: the tool ran and reported failure
//   - OutcomeFailed: anything else
//
// Non-OK results also carry a *errors.StructuredError so the failure class
// is visible in logs and metrics even when the caller degrades to an
// empty value.
//
// Tests substitute k8s.io/utils/exec/testing.FakeExec for Runner.Exec.
package tool
