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

package zfs

import (
	"fmt"
	"strings"
	"time"
)

// CreationLayout is the layout of `zfs get -H -o value creation`.
// The day of month is space padded, e.g. "Sun Jan  5 03:00 2025".
const CreationLayout = "Mon Jan _2 15:04 2006"

// NamePortion returns the snapshot name after the first '@',
// or "" when id has none.
func NamePortion(id string) string {
	_, name, ok := strings.Cut(id, "@")
	if !ok {
		return ""
	}
	return name
}

// Dataset returns the dataset part of id, before the first '@'.
func Dataset(id string) string {
	dataset, _, _ := strings.Cut(id, "@")
	return dataset
}

// IsSnapshot reports whether id names a snapshot rather than a dataset.
func IsSnapshot(id string) bool {
	dataset, name, ok := strings.Cut(id, "@")
	return ok && dataset != "" && name != ""
}

// Matches reports whether id passes the pattern and pool filters.
// The pattern must be a substring of the name portion; an empty pool
// matches everything, otherwise id must start with "<pool>@" or "<pool>/".
func Matches(id, pattern, pool string) bool {
	if !strings.Contains(NamePortion(id), pattern) {
		return false
	}
	if pool == "" {
		return true
	}
	dataset := Dataset(id)
	return dataset == pool || strings.HasPrefix(dataset, pool+"/")
}

// Filter returns the identifiers that match, in input order.
func Filter(ids []string, pattern, pool string) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if Matches(id, pattern, pool) {
			out = append(out, id)
		}
	}
	return out
}

// ParseListOutput extracts identifiers from `zfs list -H` output:
// the first tab-delimited field of each non-blank line.
func ParseListOutput(out string) []string {
	var ids []string
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		id, _, _ := strings.Cut(line, "\t")
		if id = strings.TrimSpace(id); id != "" {
			ids = append(ids, id)
		}
	}
	return ids
}

// ParseCreation parses a creation value in local time.
func ParseCreation(value string) (time.Time, error) {
	v := strings.TrimSpace(value)
	t, err := time.ParseInLocation(CreationLayout, v, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("unrecognized creation time %q: %w", v, err)
	}
	return t, nil
}
