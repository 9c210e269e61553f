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
	stderrors "errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricsObserve(t *testing.T) {
	m := NewMetrics()
	at := time.Unix(1736823600, 0)

	m.Observe(&Result{Matched: 3, Eligible: 2, Destroyed: 1, Failed: 1, Skipped: 1}, nil, at)

	assert.Equal(t, 3.0, testutil.ToFloat64(m.matched))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.destroyed))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.failed))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.skipped))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.wouldDestroy))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.success))
	assert.Equal(t, float64(at.Unix()), testutil.ToFloat64(m.timestamp))
}

func TestMetricsObserveFailure(t *testing.T) {
	m := NewMetrics()
	m.Observe(nil, stderrors.New("listing failed"), time.Now())

	assert.Equal(t, 0.0, testutil.ToFloat64(m.success))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.destroyed))
}

func TestMetricsRegistry(t *testing.T) {
	n, err := testutil.GatherAndCount(NewMetrics().registry)
	require.NoError(t, err)
	assert.Equal(t, 7, n)
}

func TestMetricsWriteTextfile(t *testing.T) {
	m := NewMetrics()
	m.Observe(&Result{Matched: 3, Eligible: 2, Destroyed: 2}, nil, time.Now())

	path := filepath.Join(t.TempDir(), "zfs_killsnaps.prom")
	require.NoError(t, m.WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "zfs_killsnaps_snapshots_destroyed 2")
	assert.Contains(t, string(data), "zfs_killsnaps_last_run_success 1")
}
