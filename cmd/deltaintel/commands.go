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
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/delta-intel/delta-intelligence-dashboard/pkg/logging"
	"github.com/delta-intel/delta-intelligence-dashboard/services/dashboard/config"
)

// Exit codes follow the composite status bands so the CLI can gate
// automation: the more worrying the reading, the higher the code.
const (
	ExitNormal   = 0
	ExitElevated = 1
	ExitHigh     = 2
	ExitError    = 3
)

var (
	configPath string
	verbose    bool
	logDir     string

	logger *logging.Logger

	rootCmd = &cobra.Command{
		Use:   "deltaintel",
		Short: "A CLI for the Delta geopolitical intelligence dashboard",
		Long: `Deltaintel polls public data sources, normalizes each into a
risk signal, and aggregates them into a composite global risk score.`,
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "",
		"Path to a YAML config file (default: DELTA_CONFIG env var, else built-in defaults)")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false,
		"Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&logDir, "log-dir", "",
		"Directory for JSON log files (default: stderr only)")

	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		level := logging.LevelWarn
		if verbose {
			level = logging.LevelDebug
		}
		logger = logging.New(logging.Config{
			Level:   level,
			LogDir:  logDir,
			Service: "cli",
		})
		// Engine code logs through the default slog logger.
		slog.SetDefault(logger.Slog())
	}
	rootCmd.PersistentPostRun = func(cmd *cobra.Command, args []string) {
		if logger != nil {
			logger.Close()
		}
	}
}

// loadConfig resolves the configuration for a command invocation.
func loadConfig() (config.Config, error) {
	path := configPath
	if path == "" {
		path = os.Getenv("DELTA_CONFIG")
	}
	return config.Load(path)
}
