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
	"net/url"
	"time"

	"golang.org/x/time/rate"

	"github.com/delta-intel/delta-intelligence-dashboard/services/dashboard/config"
	"github.com/delta-intel/delta-intelligence-dashboard/services/dashboard/datatypes"
)

const (
	predictionID         = "prediction"
	predictionName       = "Geopolitical Prediction Markets"
	predictionDefaultURL = "https://api.predmarket.example.com/v1/markets"
	predictionTag        = "geopolitics"

	// Known-rate-limited upstream: longer wait bound than the other sources,
	// plus a client-side limiter so bursty restarts don't trip a 429.
	predictionTimeout = 20 * time.Second

	// predictionFallbackScore is the conservative composite contribution
	// reported when the upstream is unreachable. Mid-scale on purpose: "we
	// don't know" must not read as "all clear".
	predictionFallbackScore = 50
)

type predictionResponse struct {
	Markets []struct {
		Ticker       string  `json:"ticker"`
		Title        string  `json:"title"`
		YesPrice     float64 `json:"yes_price"` // implied probability, 0-1
		OpenInterest float64 `json:"open_interest"`
	} `json:"markets"`
}

// PredictionAdapter reads geopolitical event markets and scores the
// open-interest-weighted mean of their implied probabilities.
//
// Failure policy: fallback. Any failure yields a degraded signal at
// predictionFallbackScore with ConfidenceLow and Fallback=true, never a
// missing source. The market composite moves the dial enough that dropping
// it silently on an outage would shift the global score's meaning.
type PredictionAdapter struct {
	cfg     config.Source
	client  HTTPClient
	limiter *rate.Limiter
}

func NewPredictionAdapter(cfg config.Source, client HTTPClient) *PredictionAdapter {
	if cfg.BaseURL == "" {
		cfg.BaseURL = predictionDefaultURL
	}
	return &PredictionAdapter{
		cfg:    cfg,
		client: client,
		// One request per 2s, burst 1. A cycle makes exactly one call; the
		// limiter only matters across rapid manual re-runs.
		limiter: rate.NewLimiter(rate.Every(2*time.Second), 1),
	}
}

func (a *PredictionAdapter) ID() string               { return predictionID }
func (a *PredictionAdapter) Name() string             { return predictionName }
func (a *PredictionAdapter) Region() datatypes.Region { return datatypes.RegionGlobal }

func (a *PredictionAdapter) Fetch(ctx context.Context) (datatypes.Signal, error) {
	signal, err := a.fetch(ctx)
	if err != nil {
		slog.Warn("prediction market fetch failed, using fallback signal",
			"source", predictionID, "error", err)
		// The degraded reading and the classified error travel together:
		// the caller publishes the former and records the latter.
		return a.fallback(err), err
	}
	return signal, nil
}

func (a *PredictionAdapter) fetch(ctx context.Context) (datatypes.Signal, error) {
	if err := a.limiter.Wait(ctx); err != nil {
		return datatypes.Signal{}, timeoutErr("rate limiter wait: %w", err)
	}

	q := url.Values{}
	q.Set("tag", predictionTag)
	q.Set("status", "open")

	header := make(map[string][]string)
	if a.cfg.APIKey != "" {
		header["Authorization"] = []string{"Bearer " + a.cfg.APIKey}
	}

	var resp predictionResponse
	endpoint := a.cfg.BaseURL + "?" + q.Encode()
	if err := getJSON(ctx, a.client, endpoint, a.cfg.Timeout(predictionTimeout), header, &resp); err != nil {
		return datatypes.Signal{}, err
	}

	var weighted, totalOI float64
	contributing := 0
	for _, m := range resp.Markets {
		if m.YesPrice < 0 || m.YesPrice > 1 || m.OpenInterest <= 0 {
			continue
		}
		weighted += m.YesPrice * m.OpenInterest
		totalOI += m.OpenInterest
		contributing++
	}
	if contributing == 0 {
		return datatypes.Signal{}, validationErr("no usable markets in response (%d listed)", len(resp.Markets))
	}

	meanProb := weighted / totalOI

	confidence := datatypes.ConfidenceMedium
	if contributing >= 10 {
		confidence = datatypes.ConfidenceHigh
	}

	return datatypes.Signal{
		ID:                 predictionID,
		Region:             datatypes.RegionGlobal,
		Score:              datatypes.ClampScore(meanProb * 100),
		Confidence:         confidence,
		Explanation:        fmt.Sprintf("%d open geopolitical markets, weighted probability %.0f%%", contributing, meanProb*100),
		BaselineComparison: fmt.Sprintf("weighted mean %.2f across %d markets", meanProb, contributing),
		SourceName:         predictionName,
		SourceURL:          a.cfg.BaseURL,
		LastUpdated:        time.Now().UTC(),
	}, nil
}

func (a *PredictionAdapter) fallback(cause error) datatypes.Signal {
	return datatypes.Signal{
		ID:                 predictionID,
		Region:             datatypes.RegionGlobal,
		Score:              predictionFallbackScore,
		Confidence:         datatypes.ConfidenceLow,
		Fallback:           true,
		Explanation:        fmt.Sprintf("Prediction markets unavailable (%s); holding conservative mid-scale reading", ClassOf(cause)),
		BaselineComparison: "no live market data this cycle",
		SourceName:         predictionName,
		SourceURL:          a.cfg.BaseURL,
		LastUpdated:        time.Now().UTC(),
	}
}
