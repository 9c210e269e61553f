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
	stderrors "errors"
	"fmt"
	"log/slog"

	utilexec "k8s.io/utils/exec"

	"github.com/NVIDIA/zfs-killsnaps/pkg/cleanup"
	"github.com/NVIDIA/zfs-killsnaps/pkg/command"
	"github.com/NVIDIA/zfs-killsnaps/pkg/config"
	"github.com/NVIDIA/zfs-killsnaps/pkg/errors"
	"github.com/NVIDIA/zfs-killsnaps/pkg/lock"
	"github.com/NVIDIA/zfs-killsnaps/pkg/logging"
	"github.com/NVIDIA/zfs-killsnaps/pkg/notify"
	"github.com/NVIDIA/zfs-killsnaps/pkg/zfs"
)

type runOptions struct {
	configPath string
	logLevel   string
	pattern    string
	pool       string
	age        *int
	recursive  bool
	dryRun     bool
}

// run executes one cleanup run. Once the log file is open, every exit path
// releases the lock (if held) and then mails the log.
func run(ctx context.Context, env environment, opts *runOptions) (runErr error) {
	cfg, cfgErr := config.Load(opts.configPath)
	if cfgErr != nil {
		cfg = env.defaultConfig()
	}

	level := cfg.LogLevel
	if opts.logLevel != "" {
		level = opts.logLevel
	}

	logger, closer, err := logging.NewFileLogger(logging.Config{
		Path:    cfg.LogFile,
		Level:   level,
		RunID:   env.newRunID(),
		Journal: cfg.Journal,
	})
	if err != nil {
		if cfgErr != nil {
			fmt.Fprintln(env.stderr, cfgErr)
		}
		return err
	}
	defer closer.Close()

	notifier := env.newNotifier(cfg, logger)
	// Mail even when the run was interrupted.
	defer notifier.Notify(context.WithoutCancel(ctx), cfg.LogFile, cfg.EmailRecipient)

	if cfgErr != nil {
		logger.Error("Failed to load configuration", "path", opts.configPath, "error", cfgErr)
		return cfgErr
	}

	cleanupOpts := cleanup.Options{
		Pattern:   opts.pattern,
		Pool:      opts.pool,
		Recursive: opts.recursive,
		DryRun:    opts.dryRun,
	}
	cleanupOpts.AgeDays = resolveAge(logger, cfg, opts)

	if err := cleanupOpts.Validate(); err != nil {
		logger.Error("Invalid options", "error", err)
		return err
	}

	lk, err := lock.Acquire(cfg.LockFile)
	if err != nil {
		if errors.HasCode(err, errors.ErrCodeConcurrentRun) {
			logger.Error("Lock file exists. Script already running.", "path", cfg.LockFile)
		} else {
			logger.Error("Failed to create lock file", "path", cfg.LockFile, "error", err)
		}
		return err
	}
	defer func() {
		relErr := lk.Release()
		switch {
		case relErr == nil:
		case stderrors.Is(relErr, lock.ErrAlreadyReleased):
			logger.Warn("Lock file was already removed", "path", lk.Path())
		default:
			logger.Error("Failed to remove lock file", "path", lk.Path(), "error", relErr)
		}
	}()

	var res *cleanup.Result
	if cfg.MetricsFile != "" {
		metrics := cleanup.NewMetrics()
		defer func() {
			metrics.Observe(res, runErr, env.now())
			if err := metrics.WriteTextfile(cfg.MetricsFile); err != nil {
				logger.Warn("Failed to write metrics file", "path", cfg.MetricsFile, "error", err)
			}
		}()
	}

	logger.Info("Starting snapshot cleanup",
		"version", version,
		"pattern", cleanupOpts.Pattern,
		"pool", cleanupOpts.Pool,
		"age_days", cleanupOpts.AgeDays,
		"recursive", cleanupOpts.Recursive,
		"dry_run", cleanupOpts.DryRun)

	runner := command.NewExecRunner(env.exec,
		command.WithTimeout(cfg.CommandTimeout),
		command.WithRunnerLogger(logger),
	)
	client := zfs.NewClient(runner,
		zfs.WithCommand(cfg.ZFSCommand),
		zfs.WithLogger(logger),
	)
	cleaner := cleanup.New(client,
		cleanup.WithLogger(logger),
		cleanup.WithClock(env.now),
	)

	res, runErr = cleaner.Run(ctx, cleanupOpts)
	return runErr
}

// mailerFor returns a notifier factory that mails through e.
func mailerFor(e utilexec.Interface) func(*config.Config, *slog.Logger) notify.Notifier {
	return func(cfg *config.Config, log *slog.Logger) notify.Notifier {
		return notify.NewMailer(e,
			notify.WithCommand(cfg.MailCommand),
			notify.WithSubject(cfg.EmailSubject),
			notify.WithTimeout(cfg.CommandTimeout),
			notify.WithLogger(log),
		)
	}
}

// resolveAge picks --age when given, else the policy for the pattern.
func resolveAge(logger *slog.Logger, cfg *config.Config, opts *runOptions) int {
	if opts.age != nil {
		return *opts.age
	}

	days, ok := cfg.PolicyAge(opts.pattern)
	if !ok {
		logger.Warn(fmt.Sprintf("No retention policy for pattern '%s', using 0 days", opts.pattern),
			"policies", cfg.Patterns())
	}
	return days
}
