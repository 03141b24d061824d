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

// Metals adapter defaults. Copper is the export-revenue proxy for the
// region, so the risk direction is inverted relative to the oil adapter:
// score = bias + max(0, baseline-price)/baseline * 100 * sensitivity.
const (
	metalsID          = "metals"
	metalsName        = "Copper Export Revenue Stress"
	metalsDefaultURL  = "https://commodities.pricefeed.example.com/v1/spot/COPPER"
	metalsBaseline    = 4.10 // USD/lb
	metalsSensitivity = 2.5
	metalsBias        = 12.0
	metalsTimeout     = 8 * time.Second
)

type metalsResponse struct {
	Symbol string  `json:"symbol"`
	USD    float64 `json:"usd"`
	AsOf   string  `json:"as_of"` // RFC3339
}

// MetalsAdapter scores South American export stress from the copper spot
// price's fall below its configured baseline. A collapsing price means
// shrinking export revenue, so lower price maps to higher score.
//
// Failure policy: hard.
type MetalsAdapter struct {
	cfg    config.Source
	client HTTPClient
}

func NewMetalsAdapter(cfg config.Source, client HTTPClient) *MetalsAdapter {
	if cfg.Baseline == 0 {
		cfg.Baseline = metalsBaseline
	}
	if cfg.Sensitivity == 0 {
		cfg.Sensitivity = metalsSensitivity
	}
	if cfg.Bias == 0 {
		cfg.Bias = metalsBias
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = metalsDefaultURL
	}
	return &MetalsAdapter{cfg: cfg, client: client}
}

func (a *MetalsAdapter) ID() string               { return metalsID }
func (a *MetalsAdapter) Name() string             { return metalsName }
func (a *MetalsAdapter) Region() datatypes.Region { return datatypes.RegionSouthAmerica }

func (a *MetalsAdapter) Fetch(ctx context.Context) (datatypes.Signal, error) {
	var resp metalsResponse
	if err := getJSON(ctx, a.client, a.cfg.BaseURL, a.cfg.Timeout(metalsTimeout), nil, &resp); err != nil {
		return datatypes.Signal{}, err
	}
	if resp.USD <= 0 {
		return datatypes.Signal{}, validationErr("missing or non-positive price (usd=%v)", resp.USD)
	}

	downsidePct := 0.0
	if resp.USD < a.cfg.Baseline {
		downsidePct = (a.cfg.Baseline - resp.USD) / a.cfg.Baseline * 100
	}
	score := datatypes.ClampScore(a.cfg.Bias + downsidePct*a.cfg.Sensitivity)

	now := time.Now().UTC()
	asOf, err := time.Parse(time.RFC3339, resp.AsOf)
	if err != nil {
		asOf = time.Time{}
	}

	return datatypes.Signal{
		ID:                 metalsID,
		Region:             datatypes.RegionSouthAmerica,
		Score:              score,
		Confidence:         confidenceByAge(asOf, now, time.Hour, 12*time.Hour),
		Explanation:        fmt.Sprintf("Copper at $%.2f/lb, %.1f%% below baseline", resp.USD, downsidePct),
		BaselineComparison: comparedToBaseline(resp.USD, a.cfg.Baseline, "$"),
		SourceName:         metalsName,
		SourceURL:          a.cfg.BaseURL,
		LastUpdated:        now,
	}, nil
}
