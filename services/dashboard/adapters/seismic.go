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

// Seismic adapter defaults. Score = quiet baseline + M4.5+ event count in
// the feed window * weight, with extra weight per major (M6+) event.
const (
	seismicID          = "seismic"
	seismicName        = "Pacific Rim Seismic Activity"
	seismicDefaultURL  = "https://earthquake.usgs.gov/earthquakes/feed/v1.0/summary/4.5_day.geojson"
	seismicWeight      = 3.0
	seismicMajorWeight = 12.0
	seismicQuietScore  = 8
	seismicTimeout     = 10 * time.Second
)

type seismicResponse struct {
	Metadata struct {
		Generated int64 `json:"generated"` // epoch millis
		Count     int   `json:"count"`
	} `json:"metadata"`
	Features []struct {
		Properties struct {
			Mag   float64 `json:"mag"`
			Place string  `json:"place"`
		} `json:"properties"`
	} `json:"features"`
}

// SeismicAdapter scores Asia-Pacific natural-hazard risk from the count and
// magnitude of recent significant earthquakes.
//
// Failure policy: hard.
type SeismicAdapter struct {
	cfg    config.Source
	client HTTPClient
}

func NewSeismicAdapter(cfg config.Source, client HTTPClient) *SeismicAdapter {
	if cfg.Weight == 0 {
		cfg.Weight = seismicWeight
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = seismicDefaultURL
	}
	return &SeismicAdapter{cfg: cfg, client: client}
}

func (a *SeismicAdapter) ID() string               { return seismicID }
func (a *SeismicAdapter) Name() string             { return seismicName }
func (a *SeismicAdapter) Region() datatypes.Region { return datatypes.RegionAsiaPacific }

func (a *SeismicAdapter) Fetch(ctx context.Context) (datatypes.Signal, error) {
	var resp seismicResponse
	if err := getJSON(ctx, a.client, a.cfg.BaseURL, a.cfg.Timeout(seismicTimeout), nil, &resp); err != nil {
		return datatypes.Signal{}, err
	}

	now := time.Now().UTC()
	generated := time.UnixMilli(resp.Metadata.Generated).UTC()
	confidence := confidenceByAge(generated, now, 30*time.Minute, 3*time.Hour)

	count := len(resp.Features)
	major := 0
	for _, f := range resp.Features {
		if f.Properties.Mag >= 6.0 {
			major++
		}
	}

	// A quiet day means no events in the window. That is low risk, not zero
	// information: report the explicit quiet baseline.
	if count == 0 {
		return datatypes.Signal{
			ID:                 seismicID,
			Region:             datatypes.RegionAsiaPacific,
			Score:              seismicQuietScore,
			Confidence:         confidence,
			Explanation:        "No M4.5+ earthquakes in the last 24h",
			BaselineComparison: "0 events vs typical 6-12",
			SourceName:         seismicName,
			SourceURL:          a.cfg.BaseURL,
			LastUpdated:        now,
		}, nil
	}

	raw := seismicQuietScore + float64(count)*a.cfg.Weight + float64(major)*seismicMajorWeight

	return datatypes.Signal{
		ID:                 seismicID,
		Region:             datatypes.RegionAsiaPacific,
		Score:              datatypes.ClampScore(raw),
		Confidence:         confidence,
		Explanation:        fmt.Sprintf("%d M4.5+ earthquakes in the last 24h (%d major)", count, major),
		BaselineComparison: fmt.Sprintf("%d events vs typical 6-12", count),
		SourceName:         seismicName,
		SourceURL:          a.cfg.BaseURL,
		LastUpdated:        now,
	}, nil
}
