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

// Package notify mails the run log to an operator after each run.
//
// Notification is best effort. When the mail binary cannot be found on PATH,
// or the log file does not exist, Notify does nothing; when sending fails the
// failure is logged at debug level and otherwise ignored. Notify never
// affects the exit status of a run.
//
//	mailer := notify.NewMailer(exec.New(),
//	    notify.WithCommand(cfg.MailCommand),
//	    notify.WithSubject(cfg.EmailSubject),
//	)
//	mailer.Notify(ctx, cfg.LogFile, cfg.EmailRecipient)
//
// The log file is streamed to the mail command on stdin as the message body:
//
//	mail -s "ZFS Snapshot Cleanup Report" admin@example.com < /var/log/zfs-killsnaps.log
package notify

import (
	"context"
	"log/slog"
	"os"
	"time"

	utilexec "k8s.io/utils/exec"

	"github.com/NVIDIA/zfs-killsnaps/pkg/command"
	"github.com/NVIDIA/zfs-killsnaps/pkg/defaults"
	"github.com/NVIDIA/zfs-killsnaps/pkg/logging"
)

// Notifier delivers the run log.
type Notifier interface {
	Notify(ctx context.Context, logFile, recipient string)
}

// Mailer sends the log body through a mail(1) compatible command.
type Mailer struct {
	exec    utilexec.Interface
	command string
	subject string
	timeout time.Duration
	log     *slog.Logger
}

// Option configures a Mailer.
type Option func(*Mailer)

// WithCommand overrides the mail binary name or path.
func WithCommand(command string) Option {
	return func(m *Mailer) {
		if command != "" {
			m.command = command
		}
	}
}

// WithSubject overrides the subject line.
func WithSubject(subject string) Option {
	return func(m *Mailer) {
		if subject != "" {
			m.subject = subject
		}
	}
}

// WithTimeout bounds the mail command. Zero leaves it unbounded.
func WithTimeout(d time.Duration) Option {
	return func(m *Mailer) {
		m.timeout = d
	}
}

// WithLogger sets the logger for diagnostics.
func WithLogger(log *slog.Logger) Option {
	return func(m *Mailer) {
		if log != nil {
			m.log = log
		}
	}
}

// NewMailer returns a Mailer running commands through e.
func NewMailer(e utilexec.Interface, opts ...Option) *Mailer {
	m := &Mailer{
		exec:    e,
		command: defaults.MailCommand,
		subject: defaults.EmailSubject,
		log:     logging.Discard(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Notify mails the current contents of logFile to recipient.
func (m *Mailer) Notify(ctx context.Context, logFile, recipient string) {
	path, err := m.exec.LookPath(m.command)
	if err != nil {
		m.log.Debug("mail command not available, skipping notification", "command", m.command)
		return
	}

	f, err := os.Open(logFile)
	if err != nil {
		m.log.Debug("log file not readable, skipping notification", "path", logFile, "error", err)
		return
	}
	defer f.Close()

	runner := command.NewExecRunner(m.exec, command.WithTimeout(m.timeout))
	if _, err := runner.RunWithInput(ctx, f, path, "-s", m.subject, recipient); err != nil {
		m.log.Debug("notification failed", "recipient", recipient, "error", err)
		return
	}

	m.log.Debug("notification sent", "recipient", recipient)
}
