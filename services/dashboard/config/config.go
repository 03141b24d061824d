// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package config loads the dashboard configuration.
//
// Configuration is a static input: a YAML file (optional, defaults apply
// without one), then environment overrides for the values that differ per
// deployment. Source baselines and sensitivities live here so adapters can
// be constructed with explicit, testable numbers instead of module-level
// constants.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Default values applied before the file and environment are consulted.
const (
	DefaultPort             = 12310
	DefaultSchedule         = "@every 5m"
	DefaultTimeoutSeconds   = 10
	DefaultErrorLogCapacity = 50
)

// Default confidence weights for the composite. Tunable policy, shared by
// every code path that weighs signals.
const (
	DefaultWeightHigh   = 2.0
	DefaultWeightMedium = 1.5
	DefaultWeightLow    = 1.0
)

// Weights maps signal confidence to aggregation weight.
type Weights struct {
	High   float64 `yaml:"high" validate:"gt=0"`
	Medium float64 `yaml:"medium" validate:"gt=0"`
	Low    float64 `yaml:"low" validate:"gt=0"`
}

// Source holds one adapter's static settings. Baseline/Sensitivity/Weight/
// Bias feed the adapter's normalization formula; which fields matter depends
// on the adapter.
type Source struct {
	// Disabled removes the source from the cycle entirely. Zero value keeps
	// it enabled so a partial config file doesn't silently drop sources.
	Disabled bool `yaml:"disabled"`

	// BaseURL overrides the adapter's default endpoint (tests, proxies).
	BaseURL string `yaml:"base_url"`

	APIKey string `yaml:"api_key"`

	Baseline    float64 `yaml:"baseline"`
	Sensitivity float64 `yaml:"sensitivity"`
	Weight      float64 `yaml:"weight"`
	Bias        float64 `yaml:"bias"`

	// TimeoutSeconds bounds the adapter's network wait. Rate-limited
	// upstreams get a longer default from their adapter constructor.
	TimeoutSeconds int `yaml:"timeout_seconds" validate:"omitempty,min=1,max=120"`
}

// Timeout returns the configured per-call bound, or fallback when unset.
func (s Source) Timeout(fallback time.Duration) time.Duration {
	if s.TimeoutSeconds <= 0 {
		return fallback
	}
	return time.Duration(s.TimeoutSeconds) * time.Second
}

// Config is the full dashboard configuration.
type Config struct {
	// Port the HTTP API listens on.
	Port int `yaml:"port" validate:"min=1,max=65535"`

	// Schedule is a robfig/cron spec for the polling cadence,
	// e.g. "@every 5m" or "*/10 * * * *".
	Schedule string `yaml:"schedule" validate:"required"`

	ErrorLogCapacity int `yaml:"error_log_capacity" validate:"min=1"`

	Weights Weights `yaml:"weights"`

	// Sources is keyed by adapter ID (news, markets, fx, ...). Unknown keys
	// are ignored; missing keys get adapter defaults and stay enabled.
	Sources map[string]Source `yaml:"sources"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		Port:             DefaultPort,
		Schedule:         DefaultSchedule,
		ErrorLogCapacity: DefaultErrorLogCapacity,
		Weights: Weights{
			High:   DefaultWeightHigh,
			Medium: DefaultWeightMedium,
			Low:    DefaultWeightLow,
		},
		Sources: map[string]Source{},
	}
}

// Load builds the configuration from defaults, an optional YAML file, and
// environment overrides, then validates it.
//
// Environment overrides:
//
//	DELTA_PORT              listen port
//	DELTA_SCHEDULE          polling cadence (cron spec)
//	DELTA_<ID>_API_KEY      API key for source <ID> (uppercased)
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	applyEnv(&cfg)

	if err := validator.New().Struct(cfg); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// knownSourceIDs mirrors the adapter registry so API-key env vars apply
// even when the config file omits the source (or there is no file at all).
// Kept here as plain strings because adapters imports config.
var knownSourceIDs = []string{
	"news", "prediction", "markets", "yield", "fx",
	"seismic", "commodity", "health", "metals",
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("DELTA_PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			cfg.Port = p
		}
	}
	if v := os.Getenv("DELTA_SCHEDULE"); v != "" {
		cfg.Schedule = v
	}
	if cfg.Sources == nil {
		cfg.Sources = map[string]Source{}
	}
	for _, id := range knownSourceIDs {
		if v := os.Getenv(envKeyFor(id)); v != "" {
			src := cfg.Sources[id]
			src.APIKey = v
			cfg.Sources[id] = src
		}
	}
	// File-declared sources outside the known set get the override too.
	for id, src := range cfg.Sources {
		if v := os.Getenv(envKeyFor(id)); v != "" && src.APIKey != v {
			src.APIKey = v
			cfg.Sources[id] = src
		}
	}
}

// envKeyFor maps a source ID to its API key environment variable,
// e.g. "news" -> "DELTA_NEWS_API_KEY".
func envKeyFor(id string) string {
	key := make([]byte, 0, len(id))
	for i := 0; i < len(id); i++ {
		c := id[i]
		switch {
		case c >= 'a' && c <= 'z':
			key = append(key, c-('a'-'A'))
		case c == '-':
			key = append(key, '_')
		default:
			key = append(key, c)
		}
	}
	return "DELTA_" + string(key) + "_API_KEY"
}

// SourceOr returns the settings for id, or fallback when the file omitted
// the source entirely.
func (c Config) SourceOr(id string, fallback Source) Source {
	if s, ok := c.Sources[id]; ok {
		return s
	}
	return fallback
}
