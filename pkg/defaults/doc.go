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

// Package defaults provides the built-in values used when no configuration
// file overrides them.
//
// # Categories
//
//   - Paths: configuration file, log file and lock file locations
//   - Commands: names of the external zfs and mail binaries
//   - Retention: the default per-pattern retention policy
//   - Timeouts: optional bounds on external command execution
//
// # Usage
//
//	import "github.com/NVIDIA/zfs-killsnaps/pkg/defaults"
//
//	cfgPath := defaults.ConfigPath
//	policies := defaults.RetentionPolicies()
//
// RetentionPolicies returns a fresh map on every call so callers may keep
// or replace it without affecting other users.
package defaults
