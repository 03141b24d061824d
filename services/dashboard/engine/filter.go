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

// FilterByRegion returns the signals visible to a region: its own plus
// global ones. Filtering for the global region is the identity. Pure — safe
// to call repeatedly over the same cycle's signals for different regions
// without re-fetching.
func FilterByRegion(signals []datatypes.Signal, region datatypes.Region) []datatypes.Signal {
	if region == datatypes.RegionGlobal {
		return signals
	}

	out := make([]datatypes.Signal, 0, len(signals))
	for _, s := range signals {
		if s.Region == region || s.Region == datatypes.RegionGlobal {
			out = append(out, s)
		}
	}
	return out
}
