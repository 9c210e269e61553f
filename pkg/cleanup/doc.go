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

// Package cleanup runs the retention pipeline over ZFS snapshots.
//
// # Pipeline
//
// A run executes strictly in sequence:
//
//  1. List every snapshot and keep those matching the pattern and pool
//  2. For each match, fetch its creation time and compute its age in days
//  3. Destroy (or, in dry-run mode, report) every match at least AgeDays old
//
// A failure to list is fatal. A failure to read or parse one snapshot's
// creation time skips that snapshot with a warning, and a failed destroy is
// logged as an error before moving on; neither stops the run.
//
// # Age
//
// Age is the number of whole 24-hour periods between creation and now,
// rounded down. The threshold is inclusive: with AgeDays 30 a snapshot
// created exactly 30 days ago is destroyed.
//
// # Metrics
//
// Metrics records the outcome of a run in a private Prometheus registry and
// can write it in text exposition format for the node_exporter textfile
// collector.
package cleanup
