// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package engine

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/delta-intel/delta-intelligence-dashboard/services/dashboard/adapters"
	"github.com/delta-intel/delta-intelligence-dashboard/services/dashboard/config"
	"github.com/delta-intel/delta-intelligence-dashboard/services/dashboard/datatypes"
	"github.com/delta-intel/delta-intelligence-dashboard/services/dashboard/errorlog"
	"github.com/delta-intel/delta-intelligence-dashboard/services/dashboard/observability"
)

// Orchestrator runs polling cycles over a fixed adapter set.
//
// One cycle fans out to every adapter concurrently, collects whatever subset
// produced a signal, aggregates, and publishes a snapshot. A single
// adapter's failure never aborts its siblings or the batch. The only state
// carried across cycles is the previous composite score (for trend) and the
// last published snapshot (for consumers).
//
// # Thread Safety
//
// Orchestrator is safe for concurrent use. RunCycle may be invoked from a
// scheduler while handlers read Latest.
type Orchestrator struct {
	adapters []adapters.Adapter
	weights  config.Weights
	log      *errorlog.Log
	metrics  *observability.CycleMetrics

	mu        sync.RWMutex
	prevScore int
	latest    *datatypes.Snapshot
}

// New creates an Orchestrator. metrics may be nil (CLI one-shot use).
func New(adapterSet []adapters.Adapter, weights config.Weights, log *errorlog.Log, metrics *observability.CycleMetrics) *Orchestrator {
	if log == nil {
		log = errorlog.New(errorlog.DefaultCapacity)
	}
	return &Orchestrator{
		adapters: adapterSet,
		weights:  weights,
		log:      log,
		metrics:  metrics,
	}
}

// ErrorLog exposes the operational failure log for the HTTP surface.
func (o *Orchestrator) ErrorLog() *errorlog.Log {
	return o.log
}

// Adapters returns the registered adapter set.
func (o *Orchestrator) Adapters() []adapters.Adapter {
	return o.adapters
}

// Latest returns the last published snapshot, false when no cycle has
// completed yet.
func (o *Orchestrator) Latest() (datatypes.Snapshot, bool) {
	o.mu.RLock()
	defer o.mu.RUnlock()
	if o.latest == nil {
		return datatypes.Snapshot{}, false
	}
	return *o.latest, true
}

// RunCycle fans out to every adapter, aggregates the survivors, and
// publishes the resulting snapshot.
//
// A cancelled context abandons the cycle without publishing: consumers keep
// seeing the last good snapshot, never a half-finished one. Otherwise the
// cycle always publishes, even when every source failed — the empty batch
// aggregates to the defined degenerate composite.
func (o *Orchestrator) RunCycle(ctx context.Context) (datatypes.Snapshot, error) {
	start := time.Now()
	cycleID := uuid.NewString()

	slog.Info("cycle started", "cycle_id", cycleID, "sources", len(o.adapters))

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		signals []datatypes.Signal
		failed  int
	)

	for _, a := range o.adapters {
		wg.Add(1)
		go func(a adapters.Adapter) {
			defer wg.Done()
			// An adapter must not take down the cycle, not even by panic.
			defer func() {
				if r := recover(); r != nil {
					o.recordFailure(a, fmt.Errorf("panic: %v", r), adapters.ErrUnknown)
					mu.Lock()
					failed++
					mu.Unlock()
				}
			}()

			fetchStart := time.Now()
			sig, err := a.Fetch(ctx)
			elapsed := time.Since(fetchStart)

			if err != nil {
				class := adapters.ClassOf(err)
				o.metrics.ObserveFetch(a.ID(), string(class), elapsed)
				o.recordFailure(a, err, class)
				mu.Lock()
				failed++
				mu.Unlock()
				// Fallback sources hand back a degraded reading with the
				// error; it still contributes to the composite.
				if !sig.Fallback {
					return
				}
			} else {
				o.metrics.ObserveFetch(a.ID(), "success", elapsed)
			}

			mu.Lock()
			signals = append(signals, sig)
			mu.Unlock()
		}(a)
	}

	wg.Wait()

	// Shutdown mid-cycle: deliver nothing rather than a partial batch.
	if ctx.Err() != nil {
		o.metrics.ObserveCancelled()
		slog.Warn("cycle abandoned", "cycle_id", cycleID, "error", ctx.Err())
		return datatypes.Snapshot{}, fmt.Errorf("cycle abandoned: %w", ctx.Err())
	}

	o.mu.Lock()
	global := Aggregate(signals, o.prevScore, o.weights, time.Now().UTC())
	snapshot := datatypes.Snapshot{
		CycleID:   cycleID,
		Signals:   signals,
		Global:    global,
		StartedAt: start.UTC(),
	}
	o.prevScore = global.Score
	o.latest = &snapshot
	o.mu.Unlock()

	o.metrics.ObserveCycle(time.Since(start), global.Score, global.SignalCount)
	o.metrics.ObserveErrorLogSize(o.log.Len())
	slog.Info("cycle complete",
		"cycle_id", cycleID,
		"score", global.Score,
		"trend", global.Trend,
		"signals", global.SignalCount,
		"failed", failed,
		"duration_ms", time.Since(start).Milliseconds())

	return snapshot, nil
}

func (o *Orchestrator) recordFailure(a adapters.Adapter, err error, class adapters.ErrorClass) {
	slog.Error("source fetch failed", "source", a.ID(), "class", class, "error", err)
	o.log.Record(errorlog.Entry{
		SignalID:   a.ID(),
		SourceName: a.Name(),
		Error:      err.Error(),
		Type:       string(class),
		Timestamp:  time.Now().UTC(),
	})
}
