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

package cleanup

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/NVIDIA/zfs-killsnaps/pkg/command"
	"github.com/NVIDIA/zfs-killsnaps/pkg/errors"
	"github.com/NVIDIA/zfs-killsnaps/pkg/logging"
	"github.com/NVIDIA/zfs-killsnaps/pkg/zfs"
)

// SnapshotClient is the subset of zfs.Client the pipeline needs.
type SnapshotClient interface {
	List(ctx context.Context) ([]string, error)
	Creation(ctx context.Context, id string) (string, error)
	Destroy(ctx context.Context, id string, recursive bool) error
}

// Options selects and disposes of snapshots for one run.
type Options struct {
	// Pattern must be a substring of the snapshot name. Required.
	Pattern string

	// Pool limits the run to one pool or dataset subtree when set.
	Pool string

	// AgeDays is the inclusive retention threshold in days.
	AgeDays int

	// Recursive passes -r to zfs destroy.
	Recursive bool

	// DryRun logs intended destroys without issuing them.
	DryRun bool
}

// Validate checks the options before any command is issued.
func (o Options) Validate() error {
	if strings.TrimSpace(o.Pattern) == "" {
		return errors.New(errors.ErrCodeInvalidRequest, "pattern must not be empty")
	}
	if o.AgeDays < 0 {
		return errors.New(errors.ErrCodeInvalidRequest,
			fmt.Sprintf("age must not be negative, got %d", o.AgeDays))
	}
	return nil
}

// Result summarizes a run.
type Result struct {
	// Matched is the number of snapshots that passed the pattern and pool filters.
	Matched int
	// Skipped counts matches whose creation time could not be determined.
	Skipped int
	// Eligible counts matches at or past the threshold.
	Eligible int
	// WouldDestroy counts eligible snapshots reported in dry-run mode.
	WouldDestroy int
	// Destroyed counts successful destroys.
	Destroyed int
	// Failed counts destroy commands that failed.
	Failed int
}

// Cleaner runs the retention pipeline.
type Cleaner struct {
	client SnapshotClient
	log    *slog.Logger
	now    func() time.Time
}

// Option configures a Cleaner.
type Option func(*Cleaner)

// WithLogger sets the run logger.
func WithLogger(log *slog.Logger) Option {
	return func(c *Cleaner) {
		if log != nil {
			c.log = log
		}
	}
}

// WithClock overrides the time source used for age checks.
func WithClock(now func() time.Time) Option {
	return func(c *Cleaner) {
		if now != nil {
			c.now = now
		}
	}
}

// New returns a Cleaner backed by client.
func New(client SnapshotClient, opts ...Option) *Cleaner {
	c := &Cleaner{
		client: client,
		log:    logging.Discard(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Run executes one pass of the pipeline. The returned Result is non-nil
// whenever validation passed, including on a listing failure.
func (c *Cleaner) Run(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	res := &Result{}

	all, err := c.client.List(ctx)
	if err != nil {
		c.log.Error(fmt.Sprintf("Failed to list snapshots: %s", command.Stderr(err)), "error", err)
		return res, err
	}

	snapshots := zfs.Filter(all, opts.Pattern, opts.Pool)
	res.Matched = len(snapshots)
	if len(snapshots) == 0 {
		c.log.Info(fmt.Sprintf("No snapshots matching '%s' found.", opts.Pattern),
			"pool", opts.Pool, "listed", len(all))
		return res, nil
	}

	c.log.Debug("evaluating snapshots",
		"matched", len(snapshots), "listed", len(all),
		"age_days", opts.AgeDays, "dry_run", opts.DryRun, "recursive", opts.Recursive)

	now := c.now()
	for _, snap := range snapshots {
		if err := ctx.Err(); err != nil {
			c.log.Error("Run interrupted", "error", err)
			return res, errors.Wrap(errors.ErrCodeInternal, "cleanup interrupted", err)
		}

		creation, ok := c.evaluate(ctx, snap, now, opts.AgeDays, res)
		if !ok {
			continue
		}

		res.Eligible++
		c.log.Info(fmt.Sprintf("Found snapshot: %s (created %s)", snap, creation))
		c.destroy(ctx, snap, opts, res)
	}

	c.log.Info(fmt.Sprintf("Total snapshots destroyed: %d", res.Destroyed),
		"eligible", res.Eligible, "failed", res.Failed, "skipped", res.Skipped)

	return res, nil
}

// evaluate reports whether snap is old enough to destroy, along with its
// raw creation value. Lookup and parse failures are counted as skipped.
func (c *Cleaner) evaluate(ctx context.Context, snap string, now time.Time, ageDays int, res *Result) (string, bool) {
	creation, err := c.client.Creation(ctx, snap)
	if err != nil {
		res.Skipped++
		c.log.Warn(fmt.Sprintf("Could not get creation time for %s: %s", snap, command.Stderr(err)), "error", err)
		return "", false
	}

	created, err := zfs.ParseCreation(creation)
	if err != nil {
		res.Skipped++
		c.log.Warn(fmt.Sprintf("Could not parse creation time for %s", snap), "error", err)
		return "", false
	}

	age := ElapsedDays(created, now)
	c.log.Debug("checked snapshot age", "snapshot", snap, "age_days", age, "threshold", ageDays)
	return creation, IsOlderThan(created, now, ageDays)
}

func (c *Cleaner) destroy(ctx context.Context, snap string, opts Options, res *Result) {
	if opts.DryRun {
		res.WouldDestroy++
		c.log.Info(fmt.Sprintf("[Dry-run] Would destroy %s", snap))
		return
	}

	if err := c.client.Destroy(ctx, snap, opts.Recursive); err != nil {
		res.Failed++
		c.log.Error(fmt.Sprintf("Failed to destroy %s: %s", snap, command.Stderr(err)), "error", err)
		return
	}

	res.Destroyed++
	c.log.Info(fmt.Sprintf("Destroyed: %s", snap))
}
