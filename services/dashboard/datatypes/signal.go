// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package datatypes defines the data model shared by the dashboard engine,
// its source adapters, and the HTTP surface.
//
// A Signal is one source's risk reading for one polling cycle. Signals are
// created by adapters, collected by the engine, and treated as immutable by
// every downstream consumer. GlobalRisk is the derived composite; it is a
// pure function of the current signal set plus the previous cycle's score.
package datatypes

import (
	"fmt"
	"strings"
	"time"
)

// Canonical risk scale bounds.
const (
	MinScore = 0
	MaxScore = 100
)

// Status band cutoffs on the canonical 0-100 scale. System constants, not
// source-configurable.
const (
	ElevatedCutoff = 35
	HighCutoff     = 65
)

// Region identifies the geographic scope a signal applies to.
type Region string

const (
	RegionGlobal       Region = "global"
	RegionNorthAmerica Region = "north-america"
	RegionEurope       Region = "europe"
	RegionAsiaPacific  Region = "asia-pacific"
	RegionMiddleEast   Region = "middle-east"
	RegionAfrica       Region = "africa"
	RegionSouthAmerica Region = "south-america"
)

// Regions lists every valid region, global first.
var Regions = []Region{
	RegionGlobal,
	RegionNorthAmerica,
	RegionEurope,
	RegionAsiaPacific,
	RegionMiddleEast,
	RegionAfrica,
	RegionSouthAmerica,
}

// ParseRegion parses a string to a Region.
//
// Returns an error for anything outside the fixed enumeration; callers must
// not invent regions at runtime.
func ParseRegion(s string) (Region, error) {
	r := Region(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Regions {
		if r == known {
			return known, nil
		}
	}
	return "", fmt.Errorf("unknown region %q", s)
}

// Confidence is a source's own assessment of reliability for one reading.
type Confidence string

const (
	ConfidenceLow    Confidence = "low"
	ConfidenceMedium Confidence = "medium"
	ConfidenceHigh   Confidence = "high"
)

// Status is the display band derived from a score. It is never stored; use
// StatusFor (or Signal.Status) so the band can't drift from the score.
type Status string

const (
	StatusNormal   Status = "normal"
	StatusElevated Status = "elevated"
	StatusHigh     Status = "high"
)

// StatusFor returns the status band for a score on the canonical scale.
func StatusFor(score int) Status {
	switch {
	case score >= HighCutoff:
		return StatusHigh
	case score >= ElevatedCutoff:
		return StatusElevated
	default:
		return StatusNormal
	}
}

// ClampScore clamps a raw mapped value onto the canonical scale.
func ClampScore(v float64) int {
	if v < MinScore {
		return MinScore
	}
	if v > MaxScore {
		return MaxScore
	}
	return int(v + 0.5)
}

// Signal is a single source's normalized risk reading for one polling cycle.
//
// Signals are value types: created fresh each cycle by a source adapter,
// never mutated afterwards, discarded when the next cycle starts.
type Signal struct {
	// ID is the stable per-source identifier, used for de-duplication and
	// error attribution.
	ID string `json:"id"`

	Region Region `json:"region"`

	// Score is the normalized reading on the canonical 0-100 scale.
	Score int `json:"score"`

	Confidence Confidence `json:"confidence"`

	// Explanation and BaselineComparison are display strings; they carry no
	// computational meaning.
	Explanation        string `json:"explanation"`
	BaselineComparison string `json:"baseline_comparison"`

	// Fallback marks adapter-synthesized degraded readings emitted when the
	// upstream failed. Fallback signals always carry ConfidenceLow.
	Fallback bool `json:"fallback"`

	SourceName  string    `json:"source_name"`
	SourceURL   string    `json:"source_url"`
	LastUpdated time.Time `json:"last_updated"`
}

// Status returns the band the signal's score falls in.
func (s Signal) Status() Status {
	return StatusFor(s.Score)
}
