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

// News adapter defaults. Weight and bias map a 24h conflict-article count
// onto the risk scale: score = count*weight + bias.
const (
	newsID           = "news"
	newsName         = "Global Conflict News Monitor"
	newsDefaultURL   = "https://api.gdeltproject.org/api/v2/doc/doc"
	newsQuery        = `(conflict OR "armed clash" OR mobilization OR airstrike)`
	newsWeight       = 0.8
	newsBias         = 10.0
	newsQuietScore   = 12
	newsTimeout      = 10 * time.Second
	newsHighSample   = 25
	newsMediumSample = 5
)

type newsResponse struct {
	Articles []struct {
		Title    string `json:"title"`
		SeenDate string `json:"seendate"`
	} `json:"articles"`
}

// NewsAdapter counts conflict-related articles published in the last 24
// hours across global wire coverage. More coverage, higher score.
//
// Failure policy: hard. A failed fetch yields a classified error and no
// signal for the cycle.
type NewsAdapter struct {
	cfg    config.Source
	client HTTPClient
}

func NewNewsAdapter(cfg config.Source, client HTTPClient) *NewsAdapter {
	if cfg.Weight == 0 {
		cfg.Weight = newsWeight
	}
	if cfg.Bias == 0 {
		cfg.Bias = newsBias
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = newsDefaultURL
	}
	return &NewsAdapter{cfg: cfg, client: client}
}

func (a *NewsAdapter) ID() string               { return newsID }
func (a *NewsAdapter) Name() string             { return newsName }
func (a *NewsAdapter) Region() datatypes.Region { return datatypes.RegionGlobal }

func (a *NewsAdapter) Fetch(ctx context.Context) (datatypes.Signal, error) {
	q := url.Values{}
	q.Set("query", newsQuery)
	q.Set("mode", "artlist")
	q.Set("format", "json")
	q.Set("timespan", "24h")
	q.Set("maxrecords", "250")

	var resp newsResponse
	endpoint := a.cfg.BaseURL + "?" + q.Encode()
	if err := getJSON(ctx, a.client, endpoint, a.cfg.Timeout(newsTimeout), nil, &resp); err != nil {
		return datatypes.Signal{}, err
	}

	count := len(resp.Articles)
	now := time.Now().UTC()

	// Zero matching articles is a quiet news day, not zero risk and not a
	// divide-by-zero: report the explicit quiet baseline.
	if count == 0 {
		return datatypes.Signal{
			ID:                 newsID,
			Region:             datatypes.RegionGlobal,
			Score:              newsQuietScore,
			Confidence:         datatypes.ConfidenceLow,
			Explanation:        "No conflict-related coverage matched in the last 24h",
			BaselineComparison: "0 articles vs typical 20-40",
			SourceName:         newsName,
			SourceURL:          a.cfg.BaseURL,
			LastUpdated:        now,
		}, nil
	}

	confidence := datatypes.ConfidenceLow
	switch {
	case count >= newsHighSample:
		confidence = datatypes.ConfidenceHigh
	case count >= newsMediumSample:
		confidence = datatypes.ConfidenceMedium
	}

	return datatypes.Signal{
		ID:                 newsID,
		Region:             datatypes.RegionGlobal,
		Score:              datatypes.ClampScore(float64(count)*a.cfg.Weight + a.cfg.Bias),
		Confidence:         confidence,
		Explanation:        fmt.Sprintf("%d conflict-related articles in the last 24h", count),
		BaselineComparison: fmt.Sprintf("%d articles vs typical 20-40", count),
		SourceName:         newsName,
		SourceURL:          a.cfg.BaseURL,
		LastUpdated:        now,
	}, nil
}
