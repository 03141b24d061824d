// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"
	"golang.org/x/sync/errgroup"

	"github.com/delta-intel/delta-intelligence-dashboard/services/dashboard/adapters"
	"github.com/delta-intel/delta-intelligence-dashboard/services/dashboard/config"
	"github.com/delta-intel/delta-intelligence-dashboard/services/dashboard/engine"
	"github.com/delta-intel/delta-intelligence-dashboard/services/dashboard/errorlog"
	"github.com/delta-intel/delta-intelligence-dashboard/services/dashboard/handlers"
	"github.com/delta-intel/delta-intelligence-dashboard/services/dashboard/observability"
)

// cycleTimeout bounds a full fetch cycle. Individual adapters carry their
// own shorter timeouts; this is the ceiling for the whole fan-out.
const cycleTimeout = 90 * time.Second

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfgPath := os.Getenv("DELTA_CONFIG")
	cfg, err := config.Load(cfgPath)
	if err != nil {
		slog.Error("Failed to load configuration", "path", cfgPath, "error", err)
		os.Exit(1)
	}

	slog.Info("Starting Delta intelligence dashboard",
		"port", cfg.Port,
		"schedule", cfg.Schedule,
		"sources", len(cfg.Sources),
	)

	metrics := observability.NewCycleMetrics()
	log := errorlog.New(cfg.ErrorLogCapacity)
	adapterSet := adapters.FromConfig(cfg, adapters.DefaultHTTPClient())
	orchestrator := engine.New(adapterSet, cfg.Weights, log, metrics)

	runCycle := func(ctx context.Context) {
		cycleCtx, cancel := context.WithTimeout(ctx, cycleTimeout)
		defer cancel()
		if _, err := orchestrator.RunCycle(cycleCtx); err != nil {
			slog.Error("Fetch cycle failed", "error", err)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// First cycle runs immediately so the API has data before the
	// schedule's first tick.
	runCycle(ctx)

	scheduler := cron.New()
	if _, err := scheduler.AddFunc(cfg.Schedule, func() { runCycle(ctx) }); err != nil {
		slog.Error("Invalid schedule", "schedule", cfg.Schedule, "error", err)
		os.Exit(1)
	}
	scheduler.Start()

	router := handlers.NewRouter(&handlers.Server{Orchestrator: orchestrator})
	server := &http.Server{
		Addr:    ":" + strconv.Itoa(cfg.Port),
		Handler: router,
	}

	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(func() error {
		slog.Info("Starting dashboard API server", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	group.Go(func() error {
		<-groupCtx.Done()
		slog.Info("Shutting down")

		stopCtx := scheduler.Stop()
		select {
		case <-stopCtx.Done():
		case <-time.After(cycleTimeout):
			slog.Warn("Timed out waiting for a running cycle to finish")
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := group.Wait(); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
	slog.Info("Shutdown complete")
}
