// Package cli implements the command-line interface for zfs-killsnaps.
//
// # Overview
//
// zfs-killsnaps destroys ZFS snapshots that have outlived their retention
// age. It is intended to run unattended from cron or a systemd timer:
//
//	0 3 * * 0  root  /usr/local/sbin/zfs-killsnaps --pattern weekly
//
// # Flags
//
//	--pattern, -p    Match snapshot names containing this pattern (default: weekly)
//	--age, -a        Age in days, overrides the retention policy for the pattern
//	--recursive, -r  Destroy snapshots recursively
//	--dry-run, -n    Log what would be destroyed without destroying anything
//	--pool, -z       Limit to a specific pool or dataset
//	--config, -c     Path to YAML config file (default: /etc/zfs-killsnaps.yaml)
//	--log-level      Override log_level from the config file
//	--version, -v    Show version information
//	--help, -h       Show help
//
// # Run Sequence
//
//  1. Load the configuration (defaults when the file is absent)
//  2. Open the log file for append
//  3. Acquire the lock file, refusing to run if another run holds it
//  4. List, filter, age-check and destroy snapshots
//  5. Write the metrics textfile when metrics_file is configured
//  6. Release the lock file
//  7. Mail the log file to email_recipient when mail is available
//
// Steps 6 and 7 run on every exit path once the log file is open, including
// configuration errors, listing failures and interrupts. A run that finds the
// lock held does not remove it.
//
// # Environment Variables
//
//	ZFS_KILLSNAPS_CONFIG  Default for --config
//	LOG_LEVEL             Default for --log-level
//
// # Exit Codes
//
//	0  Success, including runs that found or destroyed nothing
//	1  Fatal error (invalid configuration, listing failure, lock held)
//	2  Invalid options (e.g., empty pattern)
//
// Per-snapshot failures are logged but do not change the exit code.
//
// Version information is embedded at build time using ldflags:
//
//	go build -ldflags="-X 'github.com/NVIDIA/zfs-killsnaps/pkg/cli.version=1.0.0'"
package cli
