// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package engine runs polling cycles: concurrent source fan-out with
// per-source failure isolation, confidence-weighted aggregation, trend
// tracking, and regional partitioning.
//
// Aggregation is pure: GlobalRisk is a function of the current signal set,
// the previous cycle's score, and the configured confidence weights. The
// orchestrator is the only stateful piece, and the only state it carries
// across cycles is that single previous score plus the last published
// snapshot.
package engine

import (
	"math"
	"time"

	"github.com/delta-intel/delta-intelligence-dashboard/services/dashboard/config"
	"github.com/delta-intel/delta-intelligence-dashboard/services/dashboard/datatypes"
)

// weightFor maps a signal's confidence to its aggregation weight. Weight
// depends on confidence only, never on source identity.
func weightFor(c datatypes.Confidence, w config.Weights) float64 {
	switch c {
	case datatypes.ConfidenceHigh:
		return w.High
	case datatypes.ConfidenceMedium:
		return w.Medium
	default:
		return w.Low
	}
}

// Aggregate computes the confidence-weighted composite over one cycle's
// signals. The empty set is a defined degenerate case: score 0, stable,
// zero contributors. Weighted means are associative and commutative, so the
// result is independent of signal ordering.
func Aggregate(signals []datatypes.Signal, previousScore int, w config.Weights, now time.Time) datatypes.GlobalRisk {
	if len(signals) == 0 {
		return datatypes.GlobalRisk{
			Score:       0,
			Trend:       datatypes.TrendStable,
			SignalCount: 0,
			LastUpdated: now,
		}
	}

	var weightedSum, totalWeight float64
	for _, s := range signals {
		weight := weightFor(s.Confidence, w)
		weightedSum += float64(s.Score) * weight
		totalWeight += weight
	}

	score := int(math.Round(weightedSum / totalWeight))

	return datatypes.GlobalRisk{
		Score:       score,
		Trend:       TrendFor(score, previousScore),
		SignalCount: len(signals),
		LastUpdated: now,
	}
}

// RegionalScore is the unweighted mean score over a region's signals.
// Callers scope the slice with FilterByRegion first; an empty slice means 0.
func RegionalScore(scoped []datatypes.Signal) int {
	if len(scoped) == 0 {
		return 0
	}

	sum := 0
	for _, s := range scoped {
		sum += s.Score
	}
	return int(math.Round(float64(sum) / float64(len(scoped))))
}
