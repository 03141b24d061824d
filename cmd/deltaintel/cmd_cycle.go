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
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/delta-intel/delta-intelligence-dashboard/services/dashboard/adapters"
	"github.com/delta-intel/delta-intelligence-dashboard/services/dashboard/datatypes"
	"github.com/delta-intel/delta-intelligence-dashboard/services/dashboard/engine"
	"github.com/delta-intel/delta-intelligence-dashboard/services/dashboard/errorlog"
)

var (
	cycleJSON    bool
	cycleQuiet   bool
	cycleTimeout int
)

var cycleCmd = &cobra.Command{
	Use:   "cycle",
	Short: "Run one fetch cycle and print the composite risk snapshot",
	Long: `Fetches every enabled source once, aggregates the surviving signals
into the composite score, and prints the result.

Examples:
  deltaintel cycle                 # Human-readable snapshot
  deltaintel cycle --json          # JSON output for automation
  deltaintel cycle --quiet         # Exit code only

Exit Codes:
  0 = normal   (score below 35)
  1 = elevated (score 35-64)
  2 = high     (score 65 and above)
  3 = error (config failure, cycle abandoned)`,
	Run: runCycleCommand,
}

func init() {
	cycleCmd.Flags().BoolVar(&cycleJSON, "json", false,
		"Output the snapshot as JSON")
	cycleCmd.Flags().BoolVar(&cycleQuiet, "quiet", false,
		"Only exit code, no output")
	cycleCmd.Flags().IntVar(&cycleTimeout, "timeout", 90,
		"Total cycle timeout in seconds")

	rootCmd.AddCommand(cycleCmd)
}

func runCycleCommand(cmd *cobra.Command, args []string) {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to load configuration: %v\n", err)
		os.Exit(ExitError)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cycleTimeout)*time.Second)
	defer cancel()

	adapterSet := adapters.FromConfig(cfg, adapters.DefaultHTTPClient())
	orchestrator := engine.New(adapterSet, cfg.Weights, errorlog.New(cfg.ErrorLogCapacity), nil)

	snap, err := orchestrator.RunCycle(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: cycle failed: %v\n", err)
		os.Exit(ExitError)
	}

	if !cycleQuiet {
		if cycleJSON {
			outputCycleJSON(snap)
		} else {
			outputCycleText(snap, orchestrator.ErrorLog())
		}
	}

	os.Exit(exitCodeFor(snap.Global.Status()))
}

func exitCodeFor(status datatypes.Status) int {
	switch status {
	case datatypes.StatusHigh:
		return ExitHigh
	case datatypes.StatusElevated:
		return ExitElevated
	default:
		return ExitNormal
	}
}

func outputCycleJSON(snap datatypes.Snapshot) {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(snap); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to encode JSON: %v\n", err)
		os.Exit(ExitError)
	}
}

func outputCycleText(snap datatypes.Snapshot, log *errorlog.Log) {
	fmt.Printf("Global risk: %d (%s, trend %s)\n",
		snap.Global.Score, snap.Global.Status(), snap.Global.Trend)
	fmt.Printf("Signals: %d\n", snap.Global.SignalCount)

	for _, sig := range snap.Signals {
		marker := ""
		if sig.Fallback {
			marker = " [fallback]"
		}
		fmt.Printf("  %-12s %-14s score %3d (%s, confidence %s)%s\n",
			sig.ID, sig.Region, sig.Score, sig.Status(), sig.Confidence, marker)
	}

	if n := log.Len(); n > 0 {
		fmt.Printf("Fetch errors: %d\n", n)
		for _, e := range log.Recent(n) {
			fmt.Printf("  %-12s %-10s %s\n", e.SignalID, e.Type, e.Error)
		}
	}
}
