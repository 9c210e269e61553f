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
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/coreos/go-systemd/v22/journal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		input string
		want  slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"DEBUG", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"Warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{" error ", slog.LevelError},
		{"", slog.LevelInfo},
		{"verbose", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseLogLevel(tt.input))
		})
	}
}

func TestNewLoggerLevels(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, Config{Level: "info"})

	logger.Debug("hidden")
	logger.Info("No snapshots matching 'weekly' found.")
	logger.Warn("Could not get creation time for tank@weekly-1")
	logger.Error("Failed to destroy tank@weekly-2")

	out := buf.String()
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)

	assert.NotContains(t, out, "hidden")
	assert.Contains(t, lines[0], "level=INFO")
	assert.Contains(t, lines[1], "level=WARNING")
	assert.Contains(t, lines[2], "level=ERROR")
	for _, line := range lines {
		assert.True(t, strings.HasPrefix(line, "time="), "line should be timestamped: %s", line)
	}
}

func TestNewLoggerRunID(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, Config{RunID: "run-42"})

	logger.Info("Total snapshots destroyed: 0")

	assert.Contains(t, buf.String(), "run_id=run-42")
	assert.Contains(t, buf.String(), `msg="Total snapshots destroyed: 0"`)
}

func TestNewFileLoggerAppends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.log")
	require.NoError(t, os.WriteFile(path, []byte("previous run\n"), 0o644))

	logger, closer, err := NewFileLogger(Config{Path: path})
	require.NoError(t, err)
	logger.Info("second run")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "previous run\n"))
	assert.Contains(t, string(data), "second run")
}

func TestNewFileLoggerBadPath(t *testing.T) {
	logger, closer, err := NewFileLogger(Config{
		Path: filepath.Join(t.TempDir(), "missing", "dir", "run.log"),
	})
	require.Error(t, err)
	assert.Nil(t, logger)
	assert.Nil(t, closer)
}

func TestJournalMirror(t *testing.T) {
	type sent struct {
		msg  string
		pri  journal.Priority
		vars map[string]string
	}
	var got []sent

	origEnabled, origSend := journalEnabled, journalSend
	t.Cleanup(func() { journalEnabled, journalSend = origEnabled, origSend })
	journalEnabled = func() bool { return true }
	journalSend = func(msg string, pri journal.Priority, vars map[string]string) error {
		got = append(got, sent{msg, pri, vars})
		return nil
	}

	var buf bytes.Buffer
	logger := NewLogger(&buf, Config{Journal: true, RunID: "abc"})
	logger.Warn("skipping snapshot", "snapshot", "tank@weekly-1")
	logger.Debug("below level")

	require.Len(t, got, 1)
	assert.Equal(t, "skipping snapshot", got[0].msg)
	assert.Equal(t, journal.PriWarning, got[0].pri)
	assert.Equal(t, "abc", got[0].vars["RUN_ID"])
	assert.Equal(t, "tank@weekly-1", got[0].vars["SNAPSHOT"])
	assert.Contains(t, buf.String(), "skipping snapshot", "file output must still be written")
}

func TestJournalSkippedWhenUnavailable(t *testing.T) {
	origEnabled, origSend := journalEnabled, journalSend
	t.Cleanup(func() { journalEnabled, journalSend = origEnabled, origSend })
	journalEnabled = func() bool { return false }
	journalSend = func(string, journal.Priority, map[string]string) error {
		t.Fatal("journal must not be used when unavailable")
		return nil
	}

	var buf bytes.Buffer
	NewLogger(&buf, Config{Journal: true}).Info("hello")
	assert.Contains(t, buf.String(), "hello")
}

func TestJournalPriority(t *testing.T) {
	assert.Equal(t, journal.PriErr, journalPriority(slog.LevelError))
	assert.Equal(t, journal.PriWarning, journalPriority(slog.LevelWarn))
	assert.Equal(t, journal.PriInfo, journalPriority(slog.LevelInfo))
	assert.Equal(t, journal.PriDebug, journalPriority(slog.LevelDebug))
}

func TestJournalFieldName(t *testing.T) {
	tests := []struct {
		key  string
		want string
	}{
		{"run_id", "RUN_ID"},
		{"snapshot", "SNAPSHOT"},
		{"exit-status", "EXIT_STATUS"},
		{"_private", "PRIVATE"},
		{"___", ""},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			assert.Equal(t, tt.want, journalFieldName(tt.key))
		})
	}
}

func TestDiscard(t *testing.T) {
	logger := Discard()
	assert.False(t, logger.Enabled(t.Context(), slog.LevelError))
}
