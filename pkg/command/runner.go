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

package command

import (
	"bytes"
	"context"
	stderrors "errors"
	"io"
	"log/slog"
	"strings"
	"time"

	utilexec "k8s.io/utils/exec"

	"github.com/NVIDIA/zfs-killsnaps/pkg/errors"
	"github.com/NVIDIA/zfs-killsnaps/pkg/logging"
)

// Result captures the output of one command.
type Result struct {
	Stdout     []byte
	Stderr     []byte
	ExitStatus int
}

// Runner executes an external program with an argument vector.
// A non-zero exit yields a non-nil Result together with an
// ErrCodeCommandFailed error.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) (*Result, error)
}

// ExecRunner runs commands through k8s.io/utils/exec.
type ExecRunner struct {
	exec    utilexec.Interface
	timeout time.Duration
	log     *slog.Logger
}

// RunnerOption configures an ExecRunner.
type RunnerOption func(*ExecRunner)

// WithTimeout bounds every command. Zero leaves commands unbounded.
func WithTimeout(d time.Duration) RunnerOption {
	return func(r *ExecRunner) {
		r.timeout = d
	}
}

// WithRunnerLogger sets the logger used for command tracing at debug level.
func WithRunnerLogger(log *slog.Logger) RunnerOption {
	return func(r *ExecRunner) {
		if log != nil {
			r.log = log
		}
	}
}

// NewExecRunner returns a Runner backed by e.
func NewExecRunner(e utilexec.Interface, opts ...RunnerOption) *ExecRunner {
	r := &ExecRunner{
		exec: e,
		log:  logging.Discard(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run implements Runner.
func (r *ExecRunner) Run(ctx context.Context, name string, args ...string) (*Result, error) {
	return r.RunWithInput(ctx, nil, name, args...)
}

// RunWithInput runs the command with stdin connected to in, if non-nil.
func (r *ExecRunner) RunWithInput(ctx context.Context, in io.Reader, name string, args ...string) (*Result, error) {
	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	var stdout, stderr bytes.Buffer
	cmd := r.exec.CommandContext(ctx, name, args...)
	cmd.SetStdout(&stdout)
	cmd.SetStderr(&stderr)
	if in != nil {
		cmd.SetStdin(in)
	}

	r.log.Debug("running command", "command", name, "args", args)
	err := cmd.Run()

	res := &Result{
		Stdout: stdout.Bytes(),
		Stderr: stderr.Bytes(),
	}
	if err == nil {
		return res, nil
	}

	errCtx := map[string]any{
		"command": name,
		"args":    args,
		"stderr":  strings.TrimSpace(stderr.String()),
	}

	if ctxErr := ctx.Err(); ctxErr != nil {
		res.ExitStatus = -1
		code := errors.ErrCodeInternal
		if stderrors.Is(ctxErr, context.DeadlineExceeded) {
			code = errors.ErrCodeTimeout
		}
		return res, errors.WrapWithContext(code, "command interrupted", ctxErr, errCtx)
	}

	var exitErr utilexec.ExitError
	if stderrors.As(err, &exitErr) {
		res.ExitStatus = exitErr.ExitStatus()
		errCtx["exit_status"] = res.ExitStatus
		return res, errors.WrapWithContext(errors.ErrCodeCommandFailed,
			"command exited with non-zero status", err, errCtx)
	}

	res.ExitStatus = -1
	if stderrors.Is(err, utilexec.ErrExecutableNotFound) {
		return res, errors.WrapWithContext(errors.ErrCodeNotFound, "command not found", err, errCtx)
	}
	return res, errors.WrapWithContext(errors.ErrCodeCommandFailed, "command failed to run", err, errCtx)
}

// Stderr returns the trimmed stderr recorded anywhere in the chain of a
// Runner error, or "" when none was captured.
func Stderr(err error) string {
	for err != nil {
		var se *errors.StructuredError
		if !stderrors.As(err, &se) {
			return ""
		}
		if s, ok := se.Context["stderr"].(string); ok {
			return s
		}
		err = se.Cause
	}
	return ""
}
