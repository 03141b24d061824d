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
	"time"

	"github.com/delta-intel/delta-intelligence-dashboard/services/dashboard/config"
	"github.com/delta-intel/delta-intelligence-dashboard/services/dashboard/datatypes"
)

// Markets adapter defaults. Score = bias + pct-deviation-above-baseline *
// sensitivity, where the baseline is the long-run calm volatility level.
const (
	marketsID          = "markets"
	marketsName        = "Equity Volatility Index"
	marketsDefaultURL  = "https://quotes.marketfeed.example.com/v1/quote/VIX"
	marketsBaseline    = 16.0
	marketsSensitivity = 1.1
	marketsBias        = 15.0
	marketsTimeout     = 8 * time.Second
)

type marketsResponse struct {
	Symbol string  `json:"symbol"`
	Last   float64 `json:"last"`
	AsOf   string  `json:"as_of"` // RFC3339
}

// MarketsAdapter scores North American financial stress from the equity
// volatility index's percentage deviation above its calm baseline.
//
// Failure policy: hard.
type MarketsAdapter struct {
	cfg    config.Source
	client HTTPClient
}

func NewMarketsAdapter(cfg config.Source, client HTTPClient) *MarketsAdapter {
	if cfg.Baseline == 0 {
		cfg.Baseline = marketsBaseline
	}
	if cfg.Sensitivity == 0 {
		cfg.Sensitivity = marketsSensitivity
	}
	if cfg.Bias == 0 {
		cfg.Bias = marketsBias
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = marketsDefaultURL
	}
	return &MarketsAdapter{cfg: cfg, client: client}
}

func (a *MarketsAdapter) ID() string               { return marketsID }
func (a *MarketsAdapter) Name() string             { return marketsName }
func (a *MarketsAdapter) Region() datatypes.Region { return datatypes.RegionNorthAmerica }

func (a *MarketsAdapter) Fetch(ctx context.Context) (datatypes.Signal, error) {
	var resp marketsResponse
	if err := getJSON(ctx, a.client, a.cfg.BaseURL, a.cfg.Timeout(marketsTimeout), nil, &resp); err != nil {
		return datatypes.Signal{}, err
	}
	if resp.Last <= 0 {
		return datatypes.Signal{}, validationErr("missing or non-positive index level (last=%v)", resp.Last)
	}

	deviationPct := (resp.Last - a.cfg.Baseline) / a.cfg.Baseline * 100
	score := datatypes.ClampScore(a.cfg.Bias + deviationPct*a.cfg.Sensitivity)

	now := time.Now().UTC()
	asOf, err := time.Parse(time.RFC3339, resp.AsOf)
	if err != nil {
		asOf = time.Time{}
	}

	return datatypes.Signal{
		ID:                 marketsID,
		Region:             datatypes.RegionNorthAmerica,
		Score:              score,
		Confidence:         confidenceByAge(asOf, now, 30*time.Minute, 6*time.Hour),
		Explanation:        fmt.Sprintf("Volatility index at %.1f", resp.Last),
		BaselineComparison: comparedToBaseline(resp.Last, a.cfg.Baseline, ""),
		SourceName:         marketsName,
		SourceURL:          a.cfg.BaseURL,
		LastUpdated:        now,
	}, nil
}
