// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package observability provides Prometheus metrics for the dashboard.
//
// Metrics are exposed via the /metrics endpoint. All operations are
// thread-safe via Prometheus's internal locking.
package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const metricsNamespace = "deltaintel"

// CycleMetrics holds all Prometheus metrics for polling cycle operations.
type CycleMetrics struct {
	// CyclesTotal counts polling cycles by outcome (complete, cancelled).
	CyclesTotal *prometheus.CounterVec

	// CycleDurationSeconds measures wall time per polling cycle.
	CycleDurationSeconds prometheus.Histogram

	// FetchesTotal counts adapter fetches by source and outcome
	// (success or an error class).
	FetchesTotal *prometheus.CounterVec

	// FetchDurationSeconds measures per-source fetch latency.
	FetchDurationSeconds *prometheus.HistogramVec

	// GlobalScore is the latest composite risk score.
	GlobalScore prometheus.Gauge

	// SignalCount is the number of signals contributing to the latest cycle.
	SignalCount prometheus.Gauge

	// ErrorLogSize is the current number of retained fetch errors.
	ErrorLogSize prometheus.Gauge
}

// NewCycleMetrics creates and registers all dashboard metrics on the default
// registry. Call once at startup.
func NewCycleMetrics() *CycleMetrics {
	return newCycleMetricsWith(prometheus.DefaultRegisterer)
}

// NewCycleMetricsForTesting registers on a private registry so tests can
// construct metrics repeatedly without duplicate-registration panics.
func NewCycleMetricsForTesting() *CycleMetrics {
	return newCycleMetricsWith(prometheus.NewRegistry())
}

func newCycleMetricsWith(reg prometheus.Registerer) *CycleMetrics {
	factory := promauto.With(reg)

	return &CycleMetrics{
		CyclesTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "engine",
			Name:      "cycles_total",
			Help:      "Polling cycles by outcome.",
		}, []string{"outcome"}),

		CycleDurationSeconds: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Subsystem: "engine",
			Name:      "cycle_duration_seconds",
			Help:      "Wall time per polling cycle.",
			Buckets:   prometheus.ExponentialBuckets(0.1, 2, 10),
		}),

		FetchesTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "sources",
			Name:      "fetches_total",
			Help:      "Adapter fetches by source and outcome.",
		}, []string{"source", "outcome"}),

		FetchDurationSeconds: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Subsystem: "sources",
			Name:      "fetch_duration_seconds",
			Help:      "Per-source fetch latency.",
			Buckets:   prometheus.ExponentialBuckets(0.05, 2, 10),
		}, []string{"source"}),

		GlobalScore: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Subsystem: "risk",
			Name:      "global_score",
			Help:      "Latest composite risk score (0-100).",
		}),

		SignalCount: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Subsystem: "risk",
			Name:      "signal_count",
			Help:      "Signals contributing to the latest cycle.",
		}),

		ErrorLogSize: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Subsystem: "sources",
			Name:      "error_log_size",
			Help:      "Fetch errors currently retained.",
		}),
	}
}

// ObserveFetch records one adapter fetch.
func (m *CycleMetrics) ObserveFetch(source, outcome string, d time.Duration) {
	if m == nil {
		return
	}
	m.FetchesTotal.WithLabelValues(source, outcome).Inc()
	m.FetchDurationSeconds.WithLabelValues(source).Observe(d.Seconds())
}

// ObserveCycle records a completed cycle and its published composite.
func (m *CycleMetrics) ObserveCycle(d time.Duration, score, signals int) {
	if m == nil {
		return
	}
	m.CyclesTotal.WithLabelValues("complete").Inc()
	m.CycleDurationSeconds.Observe(d.Seconds())
	m.GlobalScore.Set(float64(score))
	m.SignalCount.Set(float64(signals))
}

// ObserveErrorLogSize records the retained error count after a cycle.
func (m *CycleMetrics) ObserveErrorLogSize(n int) {
	if m == nil {
		return
	}
	m.ErrorLogSize.Set(float64(n))
}

// ObserveCancelled records a cycle abandoned before publishing.
func (m *CycleMetrics) ObserveCancelled() {
	if m == nil {
		return
	}
	m.CyclesTotal.WithLabelValues("cancelled").Inc()
}
