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

// Yield curve adapter defaults. The 10y-2y spread is scored inverted: a
// deep inversion (negative spread) has historically preceded recessions, so
// score = bias - spread*sensitivity. Spread +1.0pp reads calm, -1.0pp reads
// elevated, -2.0pp reads high.
const (
	yieldID          = "yield"
	yieldName        = "Treasury Yield Curve"
	yieldDefaultURL  = "https://rates.treasuryfeed.example.com/v1/spread/10y2y"
	yieldBias        = 30.0
	yieldSensitivity = 25.0
	yieldTimeout     = 8 * time.Second
)

type yieldResponse struct {
	SpreadPct *float64 `json:"spread_pct"` // percentage points, may be negative
	Date      string   `json:"date"`       // YYYY-MM-DD
}

// YieldAdapter scores recession risk from the inverted treasury yield-curve
// spread. Monotonic: the lower the spread, the higher the score.
//
// Failure policy: hard.
type YieldAdapter struct {
	cfg    config.Source
	client HTTPClient
}

func NewYieldAdapter(cfg config.Source, client HTTPClient) *YieldAdapter {
	if cfg.Bias == 0 {
		cfg.Bias = yieldBias
	}
	if cfg.Sensitivity == 0 {
		cfg.Sensitivity = yieldSensitivity
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = yieldDefaultURL
	}
	return &YieldAdapter{cfg: cfg, client: client}
}

func (a *YieldAdapter) ID() string               { return yieldID }
func (a *YieldAdapter) Name() string             { return yieldName }
func (a *YieldAdapter) Region() datatypes.Region { return datatypes.RegionNorthAmerica }

func (a *YieldAdapter) Fetch(ctx context.Context) (datatypes.Signal, error) {
	var resp yieldResponse
	if err := getJSON(ctx, a.client, a.cfg.BaseURL, a.cfg.Timeout(yieldTimeout), nil, &resp); err != nil {
		return datatypes.Signal{}, err
	}
	// Zero is a legal spread, so absence must be a nil pointer, not a zero.
	if resp.SpreadPct == nil {
		return datatypes.Signal{}, validationErr("response missing spread_pct")
	}

	spread := *resp.SpreadPct
	score := datatypes.ClampScore(a.cfg.Bias - spread*a.cfg.Sensitivity)

	now := time.Now().UTC()
	asOf, err := time.Parse("2006-01-02", resp.Date)
	if err != nil {
		asOf = time.Time{}
	}

	state := "normal"
	if spread < 0 {
		state = "inverted"
	}

	return datatypes.Signal{
		ID:                 yieldID,
		Region:             datatypes.RegionNorthAmerica,
		Score:              score,
		Confidence:         confidenceByAge(asOf, now, 36*time.Hour, 96*time.Hour),
		Explanation:        fmt.Sprintf("10y-2y spread %.2fpp (%s)", spread, state),
		BaselineComparison: fmt.Sprintf("%.2fpp vs neutral 0.00pp", spread),
		SourceName:         yieldName,
		SourceURL:          a.cfg.BaseURL,
		LastUpdated:        now,
	}, nil
}
