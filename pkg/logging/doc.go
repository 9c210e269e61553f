// Package logging provides the run logger for zfs-killsnaps.
//
// # Overview
//
// Every run appends to a single log file. The same file is mailed to the
// operator after the run, so each line must stand on its own:
//
//	time=2025-01-14T03:00:00.000+01:00 level=INFO msg="Destroyed: tank/home@weekly-2024-12-01" run_id=6f1c...
//	time=2025-01-14T03:00:00.120+01:00 level=WARNING msg="Could not get creation time for tank@weekly-x" run_id=6f1c...
//
// The logger is a plain *slog.Logger built on slog.TextHandler. It is
// constructed once in the CLI and handed to each component; this package
// never touches slog.Default.
//
// # Log Levels
//
// Supported log levels (case-insensitive):
//   - DEBUG: command lines and notifier diagnostics
//   - INFO: normal progress (default)
//   - WARN/WARNING: per-snapshot problems that skip an item
//   - ERROR: failed destroys and fatal run conditions
//
// The warn level is rendered as WARNING.
//
// # Journald
//
// With Config.Journal set and journald reachable, records are also sent to
// the systemd journal with the matching syslog priority. Attributes become
// upper-cased journal fields (run_id becomes RUN_ID).
//
// # Usage
//
//	logger, closer, err := logging.NewFileLogger(logging.Config{
//	    Path:  cfg.LogFile,
//	    Level: cfg.LogLevel,
//	    RunID: uuid.NewString(),
//	})
//	if err != nil {
//	    return err
//	}
//	defer closer.Close()
//
//	logger.Info("Destroyed: " + id)
package logging
