// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package adapters

import (
	"net/http"
	"time"

	"github.com/delta-intel/delta-intelligence-dashboard/services/dashboard/config"
)

// DefaultHTTPClient is the shared client for real deployments. Adapters
// apply their own per-call deadlines; this is just the transport ceiling.
func DefaultHTTPClient() HTTPClient {
	return &http.Client{Timeout: 30 * time.Second}
}

// KnownSourceIDs lists every source the dashboard can poll, enabled or not.
var KnownSourceIDs = []string{
	newsID, predictionID, marketsID, yieldID, fxID,
	seismicID, commodityID, healthID, metalsID,
}

// FromConfig constructs every enabled source adapter with its configured
// settings. Sources absent from the config run with adapter defaults;
// sources marked disabled are skipped.
func FromConfig(cfg config.Config, client HTTPClient) []Adapter {
	if client == nil {
		client = DefaultHTTPClient()
	}

	builders := []struct {
		id   string
		make func(config.Source, HTTPClient) Adapter
	}{
		{newsID, func(s config.Source, c HTTPClient) Adapter { return NewNewsAdapter(s, c) }},
		{predictionID, func(s config.Source, c HTTPClient) Adapter { return NewPredictionAdapter(s, c) }},
		{marketsID, func(s config.Source, c HTTPClient) Adapter { return NewMarketsAdapter(s, c) }},
		{yieldID, func(s config.Source, c HTTPClient) Adapter { return NewYieldAdapter(s, c) }},
		{fxID, func(s config.Source, c HTTPClient) Adapter { return NewFXAdapter(s, c) }},
		{seismicID, func(s config.Source, c HTTPClient) Adapter { return NewSeismicAdapter(s, c) }},
		{commodityID, func(s config.Source, c HTTPClient) Adapter { return NewCommodityAdapter(s, c) }},
		{healthID, func(s config.Source, c HTTPClient) Adapter { return NewHealthAdapter(s, c) }},
		{metalsID, func(s config.Source, c HTTPClient) Adapter { return NewMetalsAdapter(s, c) }},
	}

	out := make([]Adapter, 0, len(builders))
	for _, b := range builders {
		src := cfg.SourceOr(b.id, config.Source{})
		if src.Disabled {
			continue
		}
		out = append(out, b.make(src, client))
	}
	return out
}
