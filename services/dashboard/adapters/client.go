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
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/delta-intel/delta-intelligence-dashboard/services/dashboard/datatypes"
)

// maxResponseBytes bounds how much of an upstream body is read. Upstreams
// are public APIs; a misbehaving one must not exhaust memory.
const maxResponseBytes = 4 << 20

// getJSON issues a GET with a bounded wait and decodes the JSON body into v.
// Errors come back pre-classified: deadline -> timeout, transport or non-2xx
// -> network, undecodable body -> parsing.
func getJSON(ctx context.Context, client HTTPClient, url string, timeout time.Duration, header http.Header, v any) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return networkErr("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	for k, vals := range header {
		for _, val := range vals {
			req.Header.Add(k, val)
		}
	}

	resp, err := client.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return timeoutErr("request timed out after %s: %w", timeout, err)
		}
		return networkErr("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return networkErr("rate limited (status %d)", resp.StatusCode)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return networkErr("unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return timeoutErr("reading body timed out after %s: %w", timeout, err)
		}
		return networkErr("read body: %w", err)
	}

	if err := json.Unmarshal(body, v); err != nil {
		return parsingErr("decode body: %w", err)
	}
	return nil
}

// confidenceByAge grades a reading by how recently the upstream says it was
// produced. Stale data still aggregates, just with less weight.
func confidenceByAge(observed, now time.Time, fresh, recent time.Duration) datatypes.Confidence {
	if observed.IsZero() {
		return datatypes.ConfidenceLow
	}
	switch age := now.Sub(observed); {
	case age < fresh:
		return datatypes.ConfidenceHigh
	case age < recent:
		return datatypes.ConfidenceMedium
	default:
		return datatypes.ConfidenceLow
	}
}

// comparedToBaseline renders the display string for deviation sources.
func comparedToBaseline(value, baseline float64, unit string) string {
	pct := 0.0
	if baseline != 0 {
		pct = (value - baseline) / baseline * 100
	}
	return fmt.Sprintf("%.2f%s vs baseline %.2f%s (%+.1f%%)", value, unit, baseline, unit, pct)
}
