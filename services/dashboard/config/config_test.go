// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultIsValid(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") error: %v", err)
	}
	if cfg.Port != DefaultPort {
		t.Errorf("Port = %d, want %d", cfg.Port, DefaultPort)
	}
	if cfg.Schedule != DefaultSchedule {
		t.Errorf("Schedule = %q, want %q", cfg.Schedule, DefaultSchedule)
	}
	if cfg.Weights.High <= cfg.Weights.Medium || cfg.Weights.Medium <= cfg.Weights.Low {
		t.Errorf("default weights not ordered: %+v", cfg.Weights)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dashboard.yaml")
	data := `
port: 9000
schedule: "@every 1m"
error_log_capacity: 25
weights:
  high: 3
  medium: 2
  low: 1
sources:
  fx:
    baseline: 1.10
    sensitivity: 400
    timeout_seconds: 5
  commodity:
    disabled: true
`
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}

	if cfg.Port != 9000 || cfg.Schedule != "@every 1m" || cfg.ErrorLogCapacity != 25 {
		t.Errorf("top-level fields wrong: %+v", cfg)
	}
	fx := cfg.Sources["fx"]
	if fx.Baseline != 1.10 || fx.Sensitivity != 400 {
		t.Errorf("fx source wrong: %+v", fx)
	}
	if got := fx.Timeout(10 * time.Second); got != 5*time.Second {
		t.Errorf("fx Timeout = %v, want 5s", got)
	}
	if !cfg.Sources["commodity"].Disabled {
		t.Error("commodity should be disabled")
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("port: -1\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("Load accepted negative port")
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("DELTA_PORT", "8123")
	t.Setenv("DELTA_SCHEDULE", "@every 30s")
	t.Setenv("DELTA_NEWS_API_KEY", "secret-key")

	path := filepath.Join(t.TempDir(), "dashboard.yaml")
	if err := os.WriteFile(path, []byte("sources:\n  news: {}\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.Port != 8123 {
		t.Errorf("Port = %d, want 8123", cfg.Port)
	}
	if cfg.Schedule != "@every 30s" {
		t.Errorf("Schedule = %q", cfg.Schedule)
	}
	if cfg.Sources["news"].APIKey != "secret-key" {
		t.Errorf("news APIKey = %q, want secret-key", cfg.Sources["news"].APIKey)
	}
}

func TestEnvAPIKeyWithoutFile(t *testing.T) {
	t.Setenv("DELTA_NEWS_API_KEY", "env-only-key")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") error: %v", err)
	}
	if cfg.Sources["news"].APIKey != "env-only-key" {
		t.Errorf("news APIKey = %q, want env-only-key", cfg.Sources["news"].APIKey)
	}
}

func TestEnvKeyFor(t *testing.T) {
	tests := []struct {
		id   string
		want string
	}{
		{"news", "DELTA_NEWS_API_KEY"},
		{"fx", "DELTA_FX_API_KEY"},
		{"some-source", "DELTA_SOME_SOURCE_API_KEY"},
	}
	for _, tt := range tests {
		if got := envKeyFor(tt.id); got != tt.want {
			t.Errorf("envKeyFor(%q) = %q, want %q", tt.id, got, tt.want)
		}
	}
}

func TestSourceOr(t *testing.T) {
	cfg := Default()
	cfg.Sources["fx"] = Source{Baseline: 1.2}

	if got := cfg.SourceOr("fx", Source{Baseline: 9}); got.Baseline != 1.2 {
		t.Errorf("SourceOr(fx) baseline = %v, want 1.2", got.Baseline)
	}
	if got := cfg.SourceOr("missing", Source{Baseline: 9}); got.Baseline != 9 {
		t.Errorf("SourceOr(missing) baseline = %v, want fallback 9", got.Baseline)
	}
}
