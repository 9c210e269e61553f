// Package errors provides structured error types for better observability
// and programmatic error handling across the application.
//
// Fatal run conditions carry one of ErrCodeInvalidConfig, ErrCodeConcurrentRun
// or ErrCodeListFailed; per-snapshot failures carry ErrCodeCommandFailed and
// never abort a run. ExitCode maps any error to the process exit status.
//
// Example usage:
//
//	err := errors.WrapWithContext(
//	    errors.ErrCodeListFailed,
//	    "failed to list snapshots",
//	    cause,
//	    map[string]any{
//	        "command": "zfs",
//	        "stderr":  stderr,
//	    },
//	)
package errors
