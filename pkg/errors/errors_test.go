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

package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeNotFound, "resource not found")
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if err.Code != ErrCodeNotFound {
		t.Errorf("expected code %s, got %s", ErrCodeNotFound, err.Code)
	}
	if err.Message != "resource not found" {
		t.Errorf("expected message 'resource not found', got %s", err.Message)
	}
	if err.Cause != nil {
		t.Errorf("expected nil cause, got %v", err.Cause)
	}
}

func TestWrap(t *testing.T) {
	cause := errors.New("underlying error")
	err := Wrap(ErrCodeListFailed, "listing failed", cause)

	if err.Code != ErrCodeListFailed {
		t.Errorf("expected code %s, got %s", ErrCodeListFailed, err.Code)
	}
	if !errors.Is(err, cause) {
		t.Errorf("expected cause to be wrapped")
	}
}

func TestWrapWithContext(t *testing.T) {
	cause := errors.New("exit status 1")
	ctx := map[string]any{
		"command": "zfs",
		"stderr":  "cannot open 'tank'",
	}

	err := WrapWithContext(ErrCodeCommandFailed, "destroy failed", cause, ctx)

	if err.Code != ErrCodeCommandFailed {
		t.Errorf("expected code %s, got %s", ErrCodeCommandFailed, err.Code)
	}
	if err.Context == nil {
		t.Fatal("expected context to be set")
	}
	if err.Context["command"] != "zfs" {
		t.Errorf("expected command to be zfs")
	}
}

func TestError(t *testing.T) {
	tests := []struct {
		name     string
		err      *StructuredError
		expected string
	}{
		{
			name:     "error without cause",
			err:      New(ErrCodeConcurrentRun, "lock held"),
			expected: "[CONCURRENT_RUN] lock held",
		},
		{
			name:     "error with cause",
			err:      Wrap(ErrCodeInvalidConfig, "failed", errors.New("root cause")),
			expected: "[INVALID_CONFIG] failed: root cause",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.err.Error()
			if got != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestUnwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := Wrap(ErrCodeInternal, "wrapped", cause)

	unwrapped := err.Unwrap()
	if !errors.Is(unwrapped, cause) {
		t.Errorf("expected unwrapped error to be original cause")
	}

	if !errors.Is(err, cause) {
		t.Errorf("errors.Is should work with Unwrap")
	}
}

func TestCodeOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want ErrorCode
	}{
		{"nil", nil, ""},
		{"plain error", errors.New("plain"), ""},
		{"structured", New(ErrCodeListFailed, "x"), ErrCodeListFailed},
		{"wrapped by fmt", fmt.Errorf("outer: %w", New(ErrCodeConcurrentRun, "x")), ErrCodeConcurrentRun},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CodeOf(tt.err); got != tt.want {
				t.Errorf("CodeOf() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestHasCode(t *testing.T) {
	inner := New(ErrCodeTimeout, "deadline")
	outer := Wrap(ErrCodeListFailed, "listing failed", inner)

	if !HasCode(outer, ErrCodeListFailed) {
		t.Error("expected outer code to match")
	}
	if !HasCode(outer, ErrCodeTimeout) {
		t.Error("expected nested code to match")
	}
	if HasCode(outer, ErrCodeInvalidConfig) {
		t.Error("unexpected match for absent code")
	}
	if HasCode(errors.New("plain"), ErrCodeInternal) {
		t.Error("plain error should not carry a code")
	}
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"success", nil, 0},
		{"usage error", New(ErrCodeInvalidRequest, "pattern required"), 2},
		{"lock contention", New(ErrCodeConcurrentRun, "lock held"), 1},
		{"listing failure", New(ErrCodeListFailed, "zfs list"), 1},
		{"plain error", errors.New("boom"), 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExitCode(tt.err); got != tt.want {
				t.Errorf("ExitCode() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestErrorCodes(t *testing.T) {
	codes := []ErrorCode{
		ErrCodeNotFound,
		ErrCodeTimeout,
		ErrCodeInternal,
		ErrCodeInvalidRequest,
		ErrCodeInvalidConfig,
		ErrCodeConcurrentRun,
		ErrCodeListFailed,
		ErrCodeCommandFailed,
	}

	for _, code := range codes {
		if string(code) == "" {
			t.Errorf("error code should not be empty: %v", code)
		}
	}
}
