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

// Package lock implements the run lock that keeps two cleanup runs from
// overlapping.
//
// The lock is an empty marker file; its existence alone means a run is
// active. Acquire creates it with O_EXCL so that two racing processes cannot
// both succeed, and refuses to touch a marker that is already present.
//
//	lk, err := lock.Acquire(cfg.LockFile)
//	if err != nil {
//	    return err // ErrCodeConcurrentRun when another run holds it
//	}
//	defer lk.Release()
//
// A process killed mid-run leaves the marker behind; it must then be removed
// by hand before the next run can start.
package lock

import (
	stderrors "errors"
	"io/fs"
	"os"
	"sync"

	"github.com/NVIDIA/zfs-killsnaps/pkg/errors"
)

// ErrAlreadyReleased is returned by Release when the marker was removed by
// someone other than this lock. It is informational; callers usually log it.
var ErrAlreadyReleased = stderrors.New("lock marker already removed")

// Lock is a held run lock.
type Lock struct {
	path string
	once sync.Once
	err  error
}

// Acquire creates the marker at path.
// It fails with ErrCodeConcurrentRun if a file already exists there.
func Acquire(path string) (*Lock, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		if stderrors.Is(err, fs.ErrExist) {
			return nil, errors.NewWithContext(errors.ErrCodeConcurrentRun,
				"lock file exists, another run is active", map[string]any{"path": path})
		}
		return nil, errors.WrapWithContext(errors.ErrCodeInternal,
			"failed to create lock file", err, map[string]any{"path": path})
	}

	if err := f.Close(); err != nil {
		_ = os.Remove(path)
		return nil, errors.WrapWithContext(errors.ErrCodeInternal,
			"failed to create lock file", err, map[string]any{"path": path})
	}

	return &Lock{path: path}, nil
}

// Path returns the marker location.
func (l *Lock) Path() string {
	return l.path
}

// Release removes the marker. Only the first call does any work; later
// calls return the first result. A marker that is already gone yields
// ErrAlreadyReleased.
func (l *Lock) Release() error {
	l.once.Do(func() {
		err := os.Remove(l.path)
		switch {
		case err == nil:
		case stderrors.Is(err, fs.ErrNotExist):
			l.err = ErrAlreadyReleased
		default:
			l.err = errors.WrapWithContext(errors.ErrCodeInternal,
				"failed to remove lock file", err, map[string]any{"path": l.path})
		}
	})
	return l.err
}
