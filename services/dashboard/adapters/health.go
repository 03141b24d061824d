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
	"net/url"
	"time"

	"github.com/delta-intel/delta-intelligence-dashboard/services/dashboard/config"
	"github.com/delta-intel/delta-intelligence-dashboard/services/dashboard/datatypes"
)

// Health adapter defaults. Score = bias + active outbreak event count *
// weight, with graded events weighted by severity.
const (
	healthID         = "health"
	healthName       = "Disease Outbreak Monitor"
	healthDefaultURL = "https://outbreaks.healthwatch.example.org/v1/events"
	healthWeight     = 4.0
	healthBias       = 8.0
	healthTimeout    = 10 * time.Second
)

type healthResponse struct {
	Events []struct {
		Disease  string `json:"disease"`
		Country  string `json:"country"`
		Grade    int    `json:"grade"` // 1-3, WHO grading
		Reported string `json:"reported"`
	} `json:"events"`
}

// HealthAdapter scores African public-health risk from the count of active
// graded outbreak events.
//
// Failure policy: hard.
type HealthAdapter struct {
	cfg    config.Source
	client HTTPClient
}

func NewHealthAdapter(cfg config.Source, client HTTPClient) *HealthAdapter {
	if cfg.Weight == 0 {
		cfg.Weight = healthWeight
	}
	if cfg.Bias == 0 {
		cfg.Bias = healthBias
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = healthDefaultURL
	}
	return &HealthAdapter{cfg: cfg, client: client}
}

func (a *HealthAdapter) ID() string               { return healthID }
func (a *HealthAdapter) Name() string             { return healthName }
func (a *HealthAdapter) Region() datatypes.Region { return datatypes.RegionAfrica }

func (a *HealthAdapter) Fetch(ctx context.Context) (datatypes.Signal, error) {
	q := url.Values{}
	q.Set("region", "afro")
	q.Set("status", "active")

	var resp healthResponse
	endpoint := a.cfg.BaseURL + "?" + q.Encode()
	if err := getJSON(ctx, a.client, endpoint, a.cfg.Timeout(healthTimeout), nil, &resp); err != nil {
		return datatypes.Signal{}, err
	}

	now := time.Now().UTC()
	count := len(resp.Events)

	// No active events is the calm baseline, not zero risk.
	if count == 0 {
		return datatypes.Signal{
			ID:                 healthID,
			Region:             datatypes.RegionAfrica,
			Score:              int(a.cfg.Bias),
			Confidence:         datatypes.ConfidenceMedium,
			Explanation:        "No active graded outbreak events",
			BaselineComparison: "0 events vs typical 3-8",
			SourceName:         healthName,
			SourceURL:          a.cfg.BaseURL,
			LastUpdated:        now,
		}, nil
	}

	severe := 0
	weighted := 0.0
	for _, e := range resp.Events {
		grade := e.Grade
		if grade < 1 || grade > 3 {
			grade = 1
		}
		weighted += float64(grade)
		if grade == 3 {
			severe++
		}
	}

	confidence := datatypes.ConfidenceMedium
	if count >= 5 {
		confidence = datatypes.ConfidenceHigh
	}

	return datatypes.Signal{
		ID:                 healthID,
		Region:             datatypes.RegionAfrica,
		Score:              datatypes.ClampScore(a.cfg.Bias + weighted*a.cfg.Weight),
		Confidence:         confidence,
		Explanation:        fmt.Sprintf("%d active outbreak events (%d grade-3)", count, severe),
		BaselineComparison: fmt.Sprintf("%d events vs typical 3-8", count),
		SourceName:         healthName,
		SourceURL:          a.cfg.BaseURL,
		LastUpdated:        now,
	}, nil
}
