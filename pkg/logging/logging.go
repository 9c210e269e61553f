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

package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/coreos/go-systemd/v22/journal"

	"github.com/NVIDIA/zfs-killsnaps/pkg/errors"
)

const (
	// LevelWarningName is how the warn level is rendered in the log file.
	LevelWarningName = "WARNING"

	// RunIDKey is the attribute carrying the per-run identifier.
	RunIDKey = "run_id"
)

// journalEnabled is swapped in tests.
var journalEnabled = journal.Enabled

// Config controls logger construction.
type Config struct {
	// Path is the log file, opened for append and created if missing.
	Path string

	// Level is the minimum level; see ParseLogLevel.
	Level string

	// RunID, when set, is attached to every record.
	RunID string

	// Journal mirrors records to journald when it is reachable.
	Journal bool
}

// ParseLogLevel converts a string log level to slog.Level.
// Unknown values fall back to info.
func ParseLogLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// NewFileLogger opens cfg.Path for append and returns a logger writing to it.
// The returned closer closes the file.
func NewFileLogger(cfg Config) (*slog.Logger, io.Closer, error) {
	f, err := os.OpenFile(cfg.Path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, errors.WrapWithContext(errors.ErrCodeInternal,
			"failed to open log file", err, map[string]any{"path": cfg.Path})
	}

	return NewLogger(f, cfg), f, nil
}

// NewLogger returns a logger writing text records to w.
// cfg.Path is ignored.
func NewLogger(w io.Writer, cfg Config) *slog.Logger {
	level := ParseLogLevel(cfg.Level)

	var handler slog.Handler = slog.NewTextHandler(w, &slog.HandlerOptions{
		Level:       level,
		ReplaceAttr: replaceLevel,
	})

	if cfg.Journal && journalEnabled() {
		handler = &fanoutHandler{handlers: []slog.Handler{
			handler,
			newJournalHandler(level),
		}}
	}

	logger := slog.New(handler)
	if cfg.RunID != "" {
		logger = logger.With(RunIDKey, cfg.RunID)
	}

	return logger
}

// Discard returns a logger that drops every record.
func Discard() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func replaceLevel(groups []string, a slog.Attr) slog.Attr {
	if len(groups) == 0 && a.Key == slog.LevelKey {
		if lvl, ok := a.Value.Any().(slog.Level); ok && lvl == slog.LevelWarn {
			a.Value = slog.StringValue(LevelWarningName)
		}
	}
	return a
}
