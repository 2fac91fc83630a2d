// Package errors provides structured error types for better observability
// and programmatic error handling across the agent.
//
// Example usage:
//
//	err := errors.WrapWithContext(
//	    errors.ErrCodeTimeout,
//	    "nvidia-smi did not finish in time",
//	    ctx.Err(),
//	    map[string]any{
//	        "command": "nvidia-smi",
//	        "timeout": "10s",
//	    },
//	)
//
// CodeOf recovers the classification from any wrapped error:
//
//	switch errors.CodeOf(err) {
//	case errors.ErrCodeNotFound:
//	    // tool is not installed on this node
//	}
package errors
