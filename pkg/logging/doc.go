// Package logging provides structured logging utilities for the GPU metrics agent.
//
// # Overview
//
// This package wraps the standard library slog package with agent-specific
// defaults: JSON records on stderr, a level taken from a flag or the
// LOG_LEVEL environment variable, and module/version attributes on every
// record. Debug level adds source locations.
//
// # Log Levels
//
// Supported log levels (case-insensitive):
//   - DEBUG: diagnostic detail, including dropped nvidia-smi lines
//   - INFO: startup and shutdown (default)
//   - WARN/WARNING: tolerated sampler failures
//   - ERROR: failed snapshots and server errors
//
// # Usage
//
//	func main() {
//	    logging.SetDefaultStructuredLoggerWithLevel("metrics-agent", version, "info")
//	    slog.Info("listening", "port", 9100)
//	}
//
// # Output Format
//
//	{
//	    "time": "2025-01-15T10:30:00.123Z",
//	    "level": "WARN",
//	    "msg": "gpu sampler failed",
//	    "module": "metrics-agent",
//	    "version": "v1.0.0",
//	    "code": "NOT_FOUND"
//	}
//
// HTTP requests are intentionally not logged.
package logging
