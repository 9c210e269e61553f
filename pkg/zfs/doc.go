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

// Package zfs wraps the zfs command-line tool.
//
// # Overview
//
// All invocations go through a command.Runner, which executes a program with an
// argument vector and never involves a shell. Snapshot identifiers are passed
// as discrete arguments and are never interpolated into a command string.
//
// The Client issues three commands:
//
//	zfs list -H -t snapshot              # enumerate, first tab field is the identifier
//	zfs get -H -o value creation <id>    # creation time, e.g. "Tue Jan 14  3:00 2025"
//	zfs destroy [-r] <id>                # remove one snapshot
//
// # Identifiers
//
// A snapshot identifier has the form <dataset>@<name>, where the dataset may
// be nested (tank/home/alice@weekly-2025-01-05). NamePortion returns the part
// after '@'; Filter matches patterns against it and pools against the
// dataset prefix.
//
// # Usage
//
//	runner := command.NewExecRunner(exec.New(), command.WithTimeout(cfg.CommandTimeout))
//	client := zfs.NewClient(runner, zfs.WithCommand(cfg.ZFSCommand))
//
//	ids, err := client.List(ctx)
//	if err != nil {
//	    return err // ErrCodeListFailed
//	}
//	for _, id := range zfs.Filter(ids, "weekly", "tank") {
//	    ...
//	}
package zfs
