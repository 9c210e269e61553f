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

package zfs

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/NVIDIA/zfs-killsnaps/pkg/command"
	"github.com/NVIDIA/zfs-killsnaps/pkg/defaults"
	"github.com/NVIDIA/zfs-killsnaps/pkg/errors"
	"github.com/NVIDIA/zfs-killsnaps/pkg/logging"
)

// Client issues zfs commands through a Runner.
type Client struct {
	runner  command.Runner
	command string
	log     *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithCommand overrides the zfs binary name or path.
func WithCommand(command string) Option {
	return func(c *Client) {
		if command != "" {
			c.command = command
		}
	}
}

// WithLogger sets the client logger.
func WithLogger(log *slog.Logger) Option {
	return func(c *Client) {
		if log != nil {
			c.log = log
		}
	}
}

// NewClient returns a Client using runner.
func NewClient(runner command.Runner, opts ...Option) *Client {
	c := &Client{
		runner:  runner,
		command: defaults.ZFSCommand,
		log:     logging.Discard(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// List returns every snapshot identifier in the order zfs reports them.
func (c *Client) List(ctx context.Context) ([]string, error) {
	res, err := c.runner.Run(ctx, c.command, "list", "-H", "-t", "snapshot")
	if err != nil {
		return nil, errors.WrapWithContext(errors.ErrCodeListFailed,
			"failed to list snapshots", err, map[string]any{"stderr": command.Stderr(err)})
	}

	ids := ParseListOutput(string(res.Stdout))
	c.log.Debug("listed snapshots", "count", len(ids))
	return ids, nil
}

// Creation returns the raw creation value of one snapshot.
func (c *Client) Creation(ctx context.Context, id string) (string, error) {
	if err := checkIdentifier(id); err != nil {
		return "", err
	}

	res, err := c.runner.Run(ctx, c.command, "get", "-H", "-o", "value", "creation", id)
	if err != nil {
		return "", err
	}

	value := strings.TrimSpace(string(res.Stdout))
	if value == "" {
		return "", errors.NewWithContext(errors.ErrCodeNotFound,
			"empty creation value", map[string]any{"snapshot": id})
	}
	return value, nil
}

// Destroy removes one snapshot, with -r when recursive is set.
func (c *Client) Destroy(ctx context.Context, id string, recursive bool) error {
	if err := checkIdentifier(id); err != nil {
		return err
	}

	args := []string{"destroy"}
	if recursive {
		args = append(args, "-r")
	}
	args = append(args, id)

	_, err := c.runner.Run(ctx, c.command, args...)
	return err
}

// checkIdentifier refuses anything that is not a snapshot so that a
// malformed identifier can never reach `zfs destroy` as a dataset or a flag.
func checkIdentifier(id string) error {
	if strings.HasPrefix(id, "-") || !IsSnapshot(id) {
		return errors.New(errors.ErrCodeInvalidRequest,
			fmt.Sprintf("not a snapshot identifier: %q", id))
	}
	return nil
}
