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

package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/urfave/cli/v3"
	utilexec "k8s.io/utils/exec"

	"github.com/NVIDIA/zfs-killsnaps/pkg/config"
	"github.com/NVIDIA/zfs-killsnaps/pkg/defaults"
	"github.com/NVIDIA/zfs-killsnaps/pkg/errors"
	"github.com/NVIDIA/zfs-killsnaps/pkg/notify"
)

const (
	name           = "zfs-killsnaps"
	versionDefault = "dev"
)

var (
	// overridden during build with ldflags
	version = versionDefault
	commit  = "unknown"
	date    = "unknown"
)

// environment carries the process-level collaborators of a run.
type environment struct {
	exec          utilexec.Interface
	stderr        io.Writer
	now           func() time.Time
	newRunID      func() string
	defaultConfig func() *config.Config
	newNotifier   func(cfg *config.Config, log *slog.Logger) notify.Notifier
}

func defaultEnvironment() environment {
	e := utilexec.New()
	return environment{
		exec:          e,
		stderr:        os.Stderr,
		now:           time.Now,
		newRunID:      uuid.NewString,
		defaultConfig: config.Default,
		newNotifier:   mailerFor(e),
	}
}

// Execute runs the command line and exits the process with the run's status.
// This is called by main.main().
func Execute() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle SIGINT/SIGTERM so the current command is killed and the lock released
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigCh
		fmt.Fprintln(os.Stderr, "\nReceived interrupt signal, aborting run...")
		cancel()
	}()

	if err := newRootCmd(defaultEnvironment()).Run(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		cancel()
		os.Exit(errors.ExitCode(err))
	}
}

func newRootCmd(env environment) *cli.Command {
	return &cli.Command{
		Name:                  name,
		Version:               fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
		EnableShellCompletion: true,
		Usage:                 "Destroy ZFS snapshots past their retention age",
		UsageText:             name + " [options]",
		Description: `Lists ZFS snapshots whose name contains the given pattern, optionally
limited to one pool, and destroys those at least as old as the retention age.

The retention age comes from --age when given, otherwise from the
retention_policies entry named by --pattern in the configuration file.

Every run appends to the configured log file and mails it to the configured
recipient afterwards. A lock file prevents overlapping runs.

# Examples

Preview what the weekly policy would remove:
  zfs-killsnaps --pattern weekly --dry-run

Destroy daily snapshots older than 10 days in pool tank, with descendents:
  zfs-killsnaps -p daily -a 10 -z tank -r

Run with an alternate configuration file:
  zfs-killsnaps -c /usr/local/etc/zfs-killsnaps.yaml`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "pattern",
				Aliases: []string{"p"},
				Value:   defaults.Pattern,
				Usage:   "Match snapshot names containing this pattern",
			},
			&cli.IntFlag{
				Name:    "age",
				Aliases: []string{"a"},
				Usage:   "Age in days, overrides the retention policy for the pattern",
			},
			&cli.BoolFlag{
				Name:    "recursive",
				Aliases: []string{"r"},
				Usage:   "Destroy snapshots recursively (zfs destroy -r)",
			},
			&cli.BoolFlag{
				Name:    "dry-run",
				Aliases: []string{"n"},
				Usage:   "Log what would be destroyed without destroying anything",
			},
			&cli.StringFlag{
				Name:    "pool",
				Aliases: []string{"z"},
				Usage:   "Limit to a specific pool or dataset (e.g., tank)",
			},
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Value:   defaults.ConfigPath,
				Sources: cli.EnvVars("ZFS_KILLSNAPS_CONFIG"),
				Usage:   "Path to YAML config file",
			},
			&cli.StringFlag{
				Name:    "log-level",
				Sources: cli.EnvVars("LOG_LEVEL"),
				Usage:   "Log level, overrides log_level from the config file (debug, info, warn, error)",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			opts, err := parseRunCmdOptions(cmd)
			if err != nil {
				return err
			}
			return run(ctx, env, opts)
		},
	}
}

func parseRunCmdOptions(cmd *cli.Command) (*runOptions, error) {
	if cmd.Args().Len() > 0 {
		return nil, errors.New(errors.ErrCodeInvalidRequest,
			fmt.Sprintf("unexpected arguments: %v", cmd.Args().Slice()))
	}

	opts := &runOptions{
		configPath: cmd.String("config"),
		logLevel:   cmd.String("log-level"),
		pattern:    cmd.String("pattern"),
		pool:       cmd.String("pool"),
		recursive:  cmd.Bool("recursive"),
		dryRun:     cmd.Bool("dry-run"),
	}

	if opts.logLevel != "" && !config.IsLogLevel(opts.logLevel) {
		return nil, errors.NewWithContext(errors.ErrCodeInvalidRequest,
			fmt.Sprintf("unknown log level %q", opts.logLevel),
			map[string]any{"supported": config.LogLevels})
	}

	if cmd.IsSet("age") {
		age := int(cmd.Int("age"))
		opts.age = &age
	}

	return opts, nil
}
