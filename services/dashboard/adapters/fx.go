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
	"math"
	"time"

	"github.com/delta-intel/delta-intelligence-dashboard/services/dashboard/config"
	"github.com/delta-intel/delta-intelligence-dashboard/services/dashboard/datatypes"
)

// FX adapter defaults. Deviation in either direction is abnormal: a rate
// collapse and a rate spike both signal stress, so the formula uses the
// absolute percentage deviation from the configured baseline.
const (
	fxID          = "fx"
	fxName        = "EUR/USD Currency Stress"
	fxDefaultURL  = "https://open.exchangefeed.example.com/v1/latest/EUR"
	fxBaseline    = 1.08
	fxSensitivity = 8.0
	fxBias        = 10.0
	fxTimeout     = 8 * time.Second
)

type fxResponse struct {
	Base  string             `json:"base"`
	Date  string             `json:"date"` // YYYY-MM-DD
	Rates map[string]float64 `json:"rates"`
}

// FXAdapter scores European macro stress from EUR/USD deviation against a
// configured baseline rate.
//
// Failure policy: hard.
type FXAdapter struct {
	cfg    config.Source
	client HTTPClient
}

func NewFXAdapter(cfg config.Source, client HTTPClient) *FXAdapter {
	if cfg.Baseline == 0 {
		cfg.Baseline = fxBaseline
	}
	if cfg.Sensitivity == 0 {
		cfg.Sensitivity = fxSensitivity
	}
	if cfg.Bias == 0 {
		cfg.Bias = fxBias
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = fxDefaultURL
	}
	return &FXAdapter{cfg: cfg, client: client}
}

func (a *FXAdapter) ID() string               { return fxID }
func (a *FXAdapter) Name() string             { return fxName }
func (a *FXAdapter) Region() datatypes.Region { return datatypes.RegionEurope }

func (a *FXAdapter) Fetch(ctx context.Context) (datatypes.Signal, error) {
	var resp fxResponse
	if err := getJSON(ctx, a.client, a.cfg.BaseURL, a.cfg.Timeout(fxTimeout), nil, &resp); err != nil {
		return datatypes.Signal{}, err
	}

	rate, ok := resp.Rates["USD"]
	if !ok {
		return datatypes.Signal{}, validationErr("response missing USD rate")
	}
	if rate <= 0 {
		return datatypes.Signal{}, validationErr("non-positive USD rate %v", rate)
	}

	deviationPct := math.Abs(rate-a.cfg.Baseline) / a.cfg.Baseline * 100
	score := datatypes.ClampScore(a.cfg.Bias + deviationPct*a.cfg.Sensitivity)

	now := time.Now().UTC()
	asOf, err := time.Parse("2006-01-02", resp.Date)
	if err != nil {
		asOf = time.Time{}
	}

	return datatypes.Signal{
		ID:                 fxID,
		Region:             datatypes.RegionEurope,
		Score:              score,
		Confidence:         confidenceByAge(asOf, now, 36*time.Hour, 96*time.Hour),
		Explanation:        fmt.Sprintf("EUR/USD at %.4f, %.1f%% from baseline", rate, deviationPct),
		BaselineComparison: comparedToBaseline(rate, a.cfg.Baseline, ""),
		SourceName:         fxName,
		SourceURL:          a.cfg.BaseURL,
		LastUpdated:        now,
	}, nil
}
