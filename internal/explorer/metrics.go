// Copyright (c) 2025 Catalognav
// Licensed under the MIT License. See LICENSE file in the project root for details.

package explorer

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Outcome labels for the actions counter.
const (
	OutcomeOK      = "ok"
	OutcomeWarning = "warning"
	OutcomeError   = "error"
)

// UnknownEnvironment labels actions whose environment is not configured.
const UnknownEnvironment = "unknown"

// Metrics wraps the prometheus collectors updated by each explore action.
type Metrics struct {
	actions  *prometheus.CounterVec
	flagged  prometheus.Counter
	duration *prometheus.HistogramVec
}

// NewMetrics creates the explorer collectors and registers them with reg.
// A nil reg leaves them unregistered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		actions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "catalognav_explore_actions_total",
				Help: "Explore actions by environment and outcome",
			},
			[]string{"environment", "outcome"},
		),
		flagged: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "catalognav_pii_columns_flagged_total",
			Help: "Columns flagged as personally identifiable across all explore actions",
		}),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "catalognav_explore_duration_seconds",
				Help:    "Duration of explore actions in seconds",
				Buckets: []float64{0.005, 0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10},
			},
			[]string{"environment"},
		),
	}
	if reg != nil {
		reg.MustRegister(m.actions, m.flagged, m.duration)
	}
	return m
}

func (m *Metrics) observe(environment, outcome string, flagged int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.actions.WithLabelValues(environment, outcome).Inc()
	m.flagged.Add(float64(flagged))
	m.duration.WithLabelValues(environment).Observe(elapsed.Seconds())
}
