// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package handlers exposes the dashboard's read-only HTTP API.
//
// All endpoints serve the latest published snapshot. Computation happens in
// the engine package on its own schedule; handlers never trigger a fetch
// cycle and never block on one.
package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/delta-intel/delta-intelligence-dashboard/pkg/validation"
	"github.com/delta-intel/delta-intelligence-dashboard/services/dashboard/datatypes"
	"github.com/delta-intel/delta-intelligence-dashboard/services/dashboard/engine"
	"github.com/delta-intel/delta-intelligence-dashboard/services/dashboard/errorlog"
)

// Server holds the handler dependencies.
type Server struct {
	Orchestrator *engine.Orchestrator
}

// NewRouter builds the gin router with all API routes registered.
func NewRouter(s *Server) *gin.Engine {
	router := gin.Default()

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "service": "delta-intelligence-dashboard"})
	})

	router.GET("/v1/risk", s.handleGlobalRisk)
	router.GET("/v1/risk/regions/:region", s.handleRegionalRisk)
	router.GET("/v1/signals", s.handleSignals)
	router.GET("/v1/errors", s.handleErrors)

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return router
}

// GlobalRiskResponse is the payload for GET /v1/risk.
type GlobalRiskResponse struct {
	CycleID     string    `json:"cycle_id"`
	Score       int       `json:"score"`
	Status      string    `json:"status"`
	Trend       string    `json:"trend"`
	SignalCount int       `json:"signal_count"`
	LastUpdated time.Time `json:"last_updated"`
}

// RegionalRiskResponse is the payload for GET /v1/risk/regions/:region.
type RegionalRiskResponse struct {
	CycleID     string    `json:"cycle_id"`
	Region      string    `json:"region"`
	Score       int       `json:"score"`
	Status      string    `json:"status"`
	SignalCount int       `json:"signal_count"`
	LastUpdated time.Time `json:"last_updated"`
}

// SignalView is one signal in GET /v1/signals.
type SignalView struct {
	ID                 string    `json:"id"`
	Region             string    `json:"region"`
	Score              int       `json:"score"`
	Status             string    `json:"status"`
	Confidence         string    `json:"confidence"`
	Explanation        string    `json:"explanation,omitempty"`
	BaselineComparison string    `json:"baseline_comparison,omitempty"`
	Fallback           bool      `json:"fallback,omitempty"`
	SourceName         string    `json:"source_name"`
	SourceURL          string    `json:"source_url,omitempty"`
	LastUpdated        time.Time `json:"last_updated"`
}

// SignalsResponse is the payload for GET /v1/signals.
type SignalsResponse struct {
	CycleID string       `json:"cycle_id"`
	Region  string       `json:"region,omitempty"`
	Signals []SignalView `json:"signals"`
	Count   int          `json:"count"`
}

// ErrorView is one entry in GET /v1/errors.
type ErrorView struct {
	SignalID   string    `json:"signal_id"`
	SourceName string    `json:"source_name"`
	Error      string    `json:"error"`
	Type       string    `json:"type"`
	Timestamp  time.Time `json:"timestamp"`
}

// ErrorsResponse is the payload for GET /v1/errors.
type ErrorsResponse struct {
	Errors []ErrorView `json:"errors"`
	Count  int         `json:"count"`
}

// handleGlobalRisk serves the latest global composite.
func (s *Server) handleGlobalRisk(c *gin.Context) {
	snap, ok := s.Orchestrator.Latest()
	if !ok {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "no cycle completed yet"})
		return
	}

	c.JSON(http.StatusOK, GlobalRiskResponse{
		CycleID:     snap.CycleID,
		Score:       snap.Global.Score,
		Status:      string(snap.Global.Status()),
		Trend:       string(snap.Global.Trend),
		SignalCount: snap.Global.SignalCount,
		LastUpdated: snap.Global.LastUpdated,
	})
}

// handleRegionalRisk serves the score for one region.
//
// The regional score averages the region's own signals together with
// global signals, so every region reflects worldwide context.
func (s *Server) handleRegionalRisk(c *gin.Context) {
	raw := c.Param("region")
	if err := validation.ValidateRegionName(raw); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid region", "details": err.Error()})
		return
	}
	region, err := datatypes.ParseRegion(raw)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown region", "details": err.Error()})
		return
	}

	snap, ok := s.Orchestrator.Latest()
	if !ok {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "no cycle completed yet"})
		return
	}

	scoped := engine.FilterByRegion(snap.Signals, region)
	score := engine.RegionalScore(scoped)

	c.JSON(http.StatusOK, RegionalRiskResponse{
		CycleID:     snap.CycleID,
		Region:      string(region),
		Score:       score,
		Status:      string(datatypes.StatusFor(score)),
		SignalCount: len(scoped),
		LastUpdated: snap.Global.LastUpdated,
	})
}

// handleSignals serves the latest signal list, optionally region-filtered.
func (s *Server) handleSignals(c *gin.Context) {
	snap, ok := s.Orchestrator.Latest()
	if !ok {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "no cycle completed yet"})
		return
	}

	signals := snap.Signals
	regionParam := c.Query("region")
	if regionParam != "" {
		if err := validation.ValidateRegionName(regionParam); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid region", "details": err.Error()})
			return
		}
		region, err := datatypes.ParseRegion(regionParam)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "unknown region", "details": err.Error()})
			return
		}
		signals = engine.FilterByRegion(signals, region)
	}

	views := make([]SignalView, 0, len(signals))
	for _, sig := range signals {
		views = append(views, SignalView{
			ID:                 sig.ID,
			Region:             string(sig.Region),
			Score:              sig.Score,
			Status:             string(sig.Status()),
			Confidence:         string(sig.Confidence),
			Explanation:        sig.Explanation,
			BaselineComparison: sig.BaselineComparison,
			Fallback:           sig.Fallback,
			SourceName:         sig.SourceName,
			SourceURL:          sig.SourceURL,
			LastUpdated:        sig.LastUpdated,
		})
	}

	c.JSON(http.StatusOK, SignalsResponse{
		CycleID: snap.CycleID,
		Region:  regionParam,
		Signals: views,
		Count:   len(views),
	})
}

// handleErrors serves the recent fetch-error log, optionally filtered by
// source name or signal id.
func (s *Server) handleErrors(c *gin.Context) {
	log := s.Orchestrator.ErrorLog()

	var entries []ErrorView
	source := c.Query("source")
	signal := c.Query("signal")
	if source != "" && signal != "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "filter by source or signal, not both"})
		return
	}

	switch {
	case signal != "":
		id, err := validation.SanitizeSourceID(signal)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid signal id", "details": err.Error()})
			return
		}
		entries = toErrorViews(log.BySignal(id))
	case source != "":
		entries = toErrorViews(log.BySource(source))
	default:
		entries = toErrorViews(log.Recent(log.Len()))
	}

	slog.Debug("error log query", "source", source, "signal", signal, "returned", len(entries))

	c.JSON(http.StatusOK, ErrorsResponse{Errors: entries, Count: len(entries)})
}

func toErrorViews(entries []errorlog.Entry) []ErrorView {
	views := make([]ErrorView, 0, len(entries))
	for _, e := range entries {
		views = append(views, ErrorView{
			SignalID:   e.SignalID,
			SourceName: e.SourceName,
			Error:      e.Error,
			Type:       e.Type,
			Timestamp:  e.Timestamp,
		})
	}
	return views
}
