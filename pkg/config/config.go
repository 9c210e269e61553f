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

package config

import (
	"fmt"
	"maps"
	"slices"
	"strings"
	"time"

	"github.com/NVIDIA/zfs-killsnaps/pkg/defaults"
	"github.com/NVIDIA/zfs-killsnaps/pkg/errors"
)

// Config is the merged run configuration.
type Config struct {
	// LogFile is the append-only run log that is mailed after each run.
	LogFile string `yaml:"logfile"`

	// LockFile is the marker path that guards against overlapping runs.
	LockFile string `yaml:"lockfile"`

	// EmailRecipient receives the run log.
	EmailRecipient string `yaml:"email_recipient"`

	// RetentionPolicies maps a pattern name to its retention in days.
	RetentionPolicies map[string]int `yaml:"retention_policies"`

	// EmailSubject is the subject line of the run notification.
	EmailSubject string `yaml:"email_subject"`

	// ZFSCommand is the zfs binary name or path.
	ZFSCommand string `yaml:"zfs_command"`

	// MailCommand is the mail binary name or path.
	MailCommand string `yaml:"mail_command"`

	// CommandTimeout bounds each external command; zero means no bound.
	CommandTimeout time.Duration `yaml:"-"`

	// LogLevel is the minimum level written to the log file.
	LogLevel string `yaml:"log_level"`

	// Journal mirrors log records to journald when available.
	Journal bool `yaml:"journal"`

	// MetricsFile, when set, receives run metrics in Prometheus text format.
	MetricsFile string `yaml:"metrics_file"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		LogFile:           defaults.LogFile,
		LockFile:          defaults.LockFile,
		EmailRecipient:    defaults.EmailRecipient,
		RetentionPolicies: defaults.RetentionPolicies(),
		EmailSubject:      defaults.EmailSubject,
		ZFSCommand:        defaults.ZFSCommand,
		MailCommand:       defaults.MailCommand,
		CommandTimeout:    defaults.CommandTimeout,
		LogLevel:          defaults.LogLevel,
	}
}

// PolicyAge returns the retention in days configured for pattern.
// An unknown pattern yields 0, which makes every matching snapshot eligible;
// ok reports whether a policy was found so callers can warn about it.
func (c *Config) PolicyAge(pattern string) (days int, ok bool) {
	days, ok = c.RetentionPolicies[pattern]
	return days, ok
}

// Patterns returns the configured policy names in sorted order.
func (c *Config) Patterns() []string {
	return slices.Sorted(maps.Keys(c.RetentionPolicies))
}

// LogLevels lists the accepted log level names.
var LogLevels = []string{"debug", "info", "warn", "warning", "error"}

// IsLogLevel reports whether level is one of LogLevels, ignoring case.
func IsLogLevel(level string) bool {
	return slices.Contains(LogLevels, strings.ToLower(strings.TrimSpace(level)))
}

// Validate checks the merged configuration.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.LogFile) == "" {
		return errors.New(errors.ErrCodeInvalidConfig, "logfile must not be empty")
	}
	if strings.TrimSpace(c.LockFile) == "" {
		return errors.New(errors.ErrCodeInvalidConfig, "lockfile must not be empty")
	}
	if strings.TrimSpace(c.ZFSCommand) == "" {
		return errors.New(errors.ErrCodeInvalidConfig, "zfs_command must not be empty")
	}
	if strings.TrimSpace(c.MailCommand) == "" {
		return errors.New(errors.ErrCodeInvalidConfig, "mail_command must not be empty")
	}
	if c.CommandTimeout < 0 {
		return errors.New(errors.ErrCodeInvalidConfig,
			fmt.Sprintf("command_timeout must not be negative, got %s", c.CommandTimeout))
	}
	if !IsLogLevel(c.LogLevel) {
		return errors.NewWithContext(errors.ErrCodeInvalidConfig,
			fmt.Sprintf("unknown log_level %q", c.LogLevel),
			map[string]any{"supported": LogLevels})
	}
	for _, name := range c.Patterns() {
		if days := c.RetentionPolicies[name]; days < 0 {
			return errors.New(errors.ErrCodeInvalidConfig,
				fmt.Sprintf("retention policy %q must not be negative, got %d", name, days))
		}
	}
	return nil
}
