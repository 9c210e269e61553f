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

package defaults

import "time"

// File system locations.
const (
	// ConfigPath is the configuration file read when --config is not given.
	ConfigPath = "/etc/zfs-killsnaps.yaml"

	// LogFile is the append-only run log, also used as the notification body.
	LogFile = "/var/log/zfs-killsnaps.log"

	// LockFile is the marker that guards against overlapping runs.
	LockFile = "/var/run/zfs-killsnaps.lock"
)

// External commands.
const (
	// ZFSCommand is the snapshot management tool.
	ZFSCommand = "zfs"

	// MailCommand is the mail sender used for run notifications.
	MailCommand = "mail"
)

// Notification defaults.
const (
	// EmailRecipient receives the run log.
	EmailRecipient = "admin@example.com"

	// EmailSubject is the subject line of the run notification.
	EmailSubject = "ZFS Snapshot Cleanup Report"
)

// Run defaults.
const (
	// Pattern is the snapshot name pattern used when --pattern is not given.
	Pattern = "weekly"

	// LogLevel is the minimum level written to the run log.
	LogLevel = "info"

	// CommandTimeout bounds each external command. Zero disables the bound.
	CommandTimeout time.Duration = 0
)

// RetentionPolicies returns the default retention in days per pattern.
func RetentionPolicies() map[string]int {
	return map[string]int{
		"daily":    7,
		"weekly":   30,
		"monthly":  90,
		"autosnap": 14,
	}
}
