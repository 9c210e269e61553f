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
	stderrors "errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/NVIDIA/zfs-killsnaps/pkg/errors"
)

// overlay mirrors Config with nil-able fields so that keys absent from the
// file can be told apart from keys set to their zero value.
type overlay struct {
	LogFile           *string        `yaml:"logfile"`
	LockFile          *string        `yaml:"lockfile"`
	EmailRecipient    *string        `yaml:"email_recipient"`
	RetentionPolicies map[string]int `yaml:"retention_policies"`
	EmailSubject      *string        `yaml:"email_subject"`
	ZFSCommand        *string        `yaml:"zfs_command"`
	MailCommand       *string        `yaml:"mail_command"`
	CommandTimeout    *string        `yaml:"command_timeout"`
	LogLevel          *string        `yaml:"log_level"`
	Journal           *bool          `yaml:"journal"`
	MetricsFile       *string        `yaml:"metrics_file"`
}

// Load returns the defaults overlaid with the YAML file at path.
// A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return nil, errors.WrapWithContext(errors.ErrCodeInvalidConfig,
			"failed to read config file", err, map[string]any{"path": path})
	}

	if err := Parse(cfg, data); err != nil {
		return nil, errors.WrapWithContext(errors.ErrCodeInvalidConfig,
			"failed to parse config file", err, map[string]any{"path": path})
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Parse decodes a YAML document and shallow-merges it into cfg.
// An empty document leaves cfg unchanged.
func Parse(cfg *Config, data []byte) error {
	var o overlay
	if err := yaml.Unmarshal(data, &o); err != nil {
		return err
	}
	return o.apply(cfg)
}

func (o *overlay) apply(cfg *Config) error {
	setString(&cfg.LogFile, o.LogFile)
	setString(&cfg.LockFile, o.LockFile)
	setString(&cfg.EmailRecipient, o.EmailRecipient)
	setString(&cfg.EmailSubject, o.EmailSubject)
	setString(&cfg.ZFSCommand, o.ZFSCommand)
	setString(&cfg.MailCommand, o.MailCommand)
	setString(&cfg.LogLevel, o.LogLevel)
	setString(&cfg.MetricsFile, o.MetricsFile)

	// The whole map is replaced, never merged entry by entry.
	if o.RetentionPolicies != nil {
		cfg.RetentionPolicies = o.RetentionPolicies
	}

	if o.Journal != nil {
		cfg.Journal = *o.Journal
	}

	if o.CommandTimeout != nil {
		d, err := time.ParseDuration(*o.CommandTimeout)
		if err != nil {
			return fmt.Errorf("invalid command_timeout %q: %w", *o.CommandTimeout, err)
		}
		cfg.CommandTimeout = d
	}

	return nil
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}
