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

// Package command runs external programs on behalf of the zfs and notify
// packages.
//
// Programs are started from an argument vector through k8s.io/utils/exec, so
// no shell ever parses user or snapshot input. Stdout and stderr are captured
// separately; a non-zero exit is reported as ErrCodeCommandFailed with the
// trimmed stderr and exit status in the error context, retrievable with
// Stderr:
//
//	runner := command.NewExecRunner(exec.New(), command.WithTimeout(30*time.Second))
//	res, err := runner.Run(ctx, "zfs", "destroy", "tank@weekly-1")
//	if err != nil {
//	    log.Error("destroy failed", "stderr", command.Stderr(err))
//	}
//
// A canceled context surfaces as ErrCodeInternal and an expired timeout as
// ErrCodeTimeout. Tests substitute k8s.io/utils/exec/testing.FakeExec.
package command
