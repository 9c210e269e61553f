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

package cleanup

import (
	"math"
	"time"
)

const day = 24 * time.Hour

// ElapsedDays returns floor((now - created) / 24h), measured between the
// wall-clock readings of both times so a DST shift in between does not move
// the result. Creation times in the future yield negative values.
func ElapsedDays(created, now time.Time) int {
	return int(math.Floor(float64(wallClock(now).Sub(wallClock(created))) / float64(day)))
}

// wallClock restamps t's clock reading in its own location as UTC.
func wallClock(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC)
}

// IsOlderThan reports whether created is at least days whole days before now.
func IsOlderThan(created, now time.Time, days int) bool {
	return ElapsedDays(created, now) >= days
}
