// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package datatypes

import "time"

// Trend is the direction of the composite score relative to the previous
// polling cycle.
type Trend string

const (
	TrendUp     Trend = "up"
	TrendDown   Trend = "down"
	TrendStable Trend = "stable"
)

// GlobalRisk is the confidence-weighted composite over one cycle's signals.
type GlobalRisk struct {
	// Score is the weighted mean of all contributing signals, 0-100.
	Score int `json:"score"`

	Trend Trend `json:"trend"`

	// SignalCount is the number of signals that contributed this cycle.
	SignalCount int `json:"signal_count"`

	LastUpdated time.Time `json:"last_updated"`
}

// Status returns the band the composite score falls in.
func (g GlobalRisk) Status() Status {
	return StatusFor(g.Score)
}

// Snapshot is one polling cycle's published result: the signal set and the
// composite derived from it. Snapshots are immutable once published; a
// half-finished cycle is never published at all.
type Snapshot struct {
	CycleID   string     `json:"cycle_id"`
	Signals   []Signal   `json:"signals"`
	Global    GlobalRisk `json:"global_risk"`
	StartedAt time.Time  `json:"started_at"`
}
