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
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the gauges describing the most recent run.
type Metrics struct {
	registry *prometheus.Registry

	matched      prometheus.Gauge
	skipped      prometheus.Gauge
	wouldDestroy prometheus.Gauge
	destroyed    prometheus.Gauge
	failed       prometheus.Gauge
	success      prometheus.Gauge
	timestamp    prometheus.Gauge
}

// NewMetrics registers the run gauges in a fresh registry.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		matched: factory.NewGauge(prometheus.GaugeOpts{
			Name: "zfs_killsnaps_snapshots_matched",
			Help: "Snapshots that matched the pattern and pool filters in the last run",
		}),
		skipped: factory.NewGauge(prometheus.GaugeOpts{
			Name: "zfs_killsnaps_snapshots_skipped",
			Help: "Matched snapshots skipped because their creation time was unavailable",
		}),
		wouldDestroy: factory.NewGauge(prometheus.GaugeOpts{
			Name: "zfs_killsnaps_snapshots_would_destroy",
			Help: "Snapshots reported in dry-run mode in the last run",
		}),
		destroyed: factory.NewGauge(prometheus.GaugeOpts{
			Name: "zfs_killsnaps_snapshots_destroyed",
			Help: "Snapshots destroyed in the last run",
		}),
		failed: factory.NewGauge(prometheus.GaugeOpts{
			Name: "zfs_killsnaps_snapshots_failed",
			Help: "Destroy commands that failed in the last run",
		}),
		success: factory.NewGauge(prometheus.GaugeOpts{
			Name: "zfs_killsnaps_last_run_success",
			Help: "1 if the last run completed without a fatal error, 0 otherwise",
		}),
		timestamp: factory.NewGauge(prometheus.GaugeOpts{
			Name: "zfs_killsnaps_last_run_timestamp_seconds",
			Help: "Unix time the last run finished",
		}),
	}
}

// Observe records res and the run outcome. A nil res records zero counts.
func (m *Metrics) Observe(res *Result, runErr error, at time.Time) {
	if res == nil {
		res = &Result{}
	}

	m.matched.Set(float64(res.Matched))
	m.skipped.Set(float64(res.Skipped))
	m.wouldDestroy.Set(float64(res.WouldDestroy))
	m.destroyed.Set(float64(res.Destroyed))
	m.failed.Set(float64(res.Failed))
	m.timestamp.Set(float64(at.Unix()))

	if runErr != nil {
		m.success.Set(0)
	} else {
		m.success.Set(1)
	}
}

// WriteTextfile atomically writes the metrics to path in text exposition format.
func (m *Metrics) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, m.registry)
}
