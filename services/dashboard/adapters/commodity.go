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
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/delta-intel/delta-intelligence-dashboard/services/dashboard/config"
	"github.com/delta-intel/delta-intelligence-dashboard/services/dashboard/datatypes"
)

// Commodity adapter defaults. Only upside deviation matters for supply
// stress: score = bias + max(0, price-baseline)/baseline * 100 * sensitivity.
const (
	commodityID            = "commodity"
	commodityName          = "Brent Crude Supply Stress"
	commodityDefaultURL    = "https://commodities.pricefeed.example.com/v1/spot/BRENT"
	commodityBaseline      = 75.0
	commoditySensitivity   = 1.8
	commodityBias          = 18.0
	commodityTimeout       = 8 * time.Second
	commodityFallbackScore = 40
)

type commodityResponse struct {
	Symbol string  `json:"symbol"`
	USD    float64 `json:"usd"`
	AsOf   string  `json:"as_of"` // RFC3339
}

// CommodityAdapter scores Middle East supply-disruption risk from the Brent
// spot price's rise above its configured baseline.
//
// Failure policy: fallback. Oil pricing is the middle-east region's only
// deviation source; on failure the adapter reports a conservative
// below-elevated reading at ConfidenceLow with Fallback=true rather than
// leaving the region dark.
type CommodityAdapter struct {
	cfg    config.Source
	client HTTPClient
}

func NewCommodityAdapter(cfg config.Source, client HTTPClient) *CommodityAdapter {
	if cfg.Baseline == 0 {
		cfg.Baseline = commodityBaseline
	}
	if cfg.Sensitivity == 0 {
		cfg.Sensitivity = commoditySensitivity
	}
	if cfg.Bias == 0 {
		cfg.Bias = commodityBias
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = commodityDefaultURL
	}
	return &CommodityAdapter{cfg: cfg, client: client}
}

func (a *CommodityAdapter) ID() string               { return commodityID }
func (a *CommodityAdapter) Name() string             { return commodityName }
func (a *CommodityAdapter) Region() datatypes.Region { return datatypes.RegionMiddleEast }

func (a *CommodityAdapter) Fetch(ctx context.Context) (datatypes.Signal, error) {
	signal, err := a.fetch(ctx)
	if err != nil {
		slog.Warn("commodity fetch failed, using fallback signal",
			"source", commodityID, "error", err)
		return a.fallback(err), err
	}
	return signal, nil
}

func (a *CommodityAdapter) fetch(ctx context.Context) (datatypes.Signal, error) {
	var resp commodityResponse
	if err := getJSON(ctx, a.client, a.cfg.BaseURL, a.cfg.Timeout(commodityTimeout), nil, &resp); err != nil {
		return datatypes.Signal{}, err
	}
	if resp.USD <= 0 {
		return datatypes.Signal{}, validationErr("missing or non-positive price (usd=%v)", resp.USD)
	}

	upsidePct := 0.0
	if resp.USD > a.cfg.Baseline {
		upsidePct = (resp.USD - a.cfg.Baseline) / a.cfg.Baseline * 100
	}
	score := datatypes.ClampScore(a.cfg.Bias + upsidePct*a.cfg.Sensitivity)

	now := time.Now().UTC()
	asOf, err := time.Parse(time.RFC3339, resp.AsOf)
	if err != nil {
		asOf = time.Time{}
	}

	return datatypes.Signal{
		ID:                 commodityID,
		Region:             datatypes.RegionMiddleEast,
		Score:              score,
		Confidence:         confidenceByAge(asOf, now, time.Hour, 12*time.Hour),
		Explanation:        fmt.Sprintf("Brent at $%.2f, %.1f%% above baseline", resp.USD, upsidePct),
		BaselineComparison: comparedToBaseline(resp.USD, a.cfg.Baseline, "$"),
		SourceName:         commodityName,
		SourceURL:          a.cfg.BaseURL,
		LastUpdated:        now,
	}, nil
}

func (a *CommodityAdapter) fallback(cause error) datatypes.Signal {
	return datatypes.Signal{
		ID:                 commodityID,
		Region:             datatypes.RegionMiddleEast,
		Score:              commodityFallbackScore,
		Confidence:         datatypes.ConfidenceLow,
		Fallback:           true,
		Explanation:        fmt.Sprintf("Commodity pricing unavailable (%s); holding conservative reading", ClassOf(cause)),
		BaselineComparison: "no live price data this cycle",
		SourceName:         commodityName,
		SourceURL:          a.cfg.BaseURL,
		LastUpdated:        time.Now().UTC(),
	}
}
