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

// Package config loads the run configuration for zfs-killsnaps.
//
// The configuration is the built-in defaults (see pkg/defaults) overlaid with
// an optional YAML file:
//
//	logfile: /var/log/zfs-killsnaps.log
//	lockfile: /var/run/zfs-killsnaps.lock
//	email_recipient: storage-team@example.com
//	retention_policies:
//	  weekly: 60
//	  hourly: 2
//
// # Merge Semantics
//
// The merge is shallow. A top-level key present in the file replaces the
// default value in full. Supplying a partial retention_policies map therefore
// discards every default policy not listed in the file; the example above
// leaves only weekly and hourly. Keys absent from the file, or set to null,
// keep their defaults.
//
// A missing file yields the defaults. An unreadable or malformed file, or a
// merged result that fails validation, is reported with ErrCodeInvalidConfig.
package config
