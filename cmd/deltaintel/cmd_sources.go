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
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/delta-intel/delta-intelligence-dashboard/services/dashboard/adapters"
)

var sourcesCmd = &cobra.Command{
	Use:   "sources",
	Short: "List the configured data sources",
	Long: `Prints every source the dashboard knows about, its region, and
whether it is enabled under the current configuration.`,
	Run: runSourcesCommand,
}

func init() {
	rootCmd.AddCommand(sourcesCmd)
}

func runSourcesCommand(cmd *cobra.Command, args []string) {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to load configuration: %v\n", err)
		os.Exit(ExitError)
	}

	enabled := make(map[string]adapters.Adapter)
	for _, a := range adapters.FromConfig(cfg, adapters.DefaultHTTPClient()) {
		enabled[a.ID()] = a
	}

	ids := make([]string, 0, len(adapters.KnownSourceIDs))
	ids = append(ids, adapters.KnownSourceIDs...)
	sort.Strings(ids)

	fmt.Printf("%-12s %-14s %-28s %s\n", "ID", "REGION", "NAME", "STATE")
	for _, id := range ids {
		if a, ok := enabled[id]; ok {
			fmt.Printf("%-12s %-14s %-28s enabled\n", a.ID(), a.Region(), a.Name())
			continue
		}
		fmt.Printf("%-12s %-14s %-28s disabled\n", id, "-", "-")
	}
}
