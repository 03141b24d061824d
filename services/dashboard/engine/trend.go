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

import "github.com/delta-intel/delta-intelligence-dashboard/services/dashboard/datatypes"

// TrendThreshold is the hysteresis band, in score points, a cycle-over-cycle
// move must exceed before the trend leaves stable. Applied identically in
// both directions so noise can't flicker the arrow.
const TrendThreshold = 3

// TrendFor compares the new composite score against the previous cycle's.
func TrendFor(newScore, previousScore int) datatypes.Trend {
	switch {
	case newScore > previousScore+TrendThreshold:
		return datatypes.TrendUp
	case newScore < previousScore-TrendThreshold:
		return datatypes.TrendDown
	default:
		return datatypes.TrendStable
	}
}
