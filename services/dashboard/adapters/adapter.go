// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package adapters implements one source adapter per upstream data source.
//
// Each adapter turns a raw upstream response into a normalized
// datatypes.Signal on the 0-100 risk scale, or reports a classified fetch
// failure. Adapters are independent: none depends on another's result, and
// no failure escapes an adapter as a panic.
//
// # Normalization
//
// Every adapter's mapping is deterministic, monotonic in the direction of
// "more abnormal means higher score", and clamped to [0,100]. Baselines,
// sensitivities, and weights are injected through config.Source at
// construction time so they are testable and swappable per deployment.
//
// # Failure policy
//
// Two policies exist, fixed per source and documented on each constructor:
//
//   - hard sources return a classified *FetchError and no signal; the source
//     is simply absent from the cycle.
//   - fallback sources (prediction, commodity) return a degraded signal at a
//     conservative score with ConfidenceLow and Fallback=true, together with
//     the classified upstream error, so partial outages stay visible in the
//     composite without masquerading as real readings and the failure still
//     reaches the error log.
package adapters

import (
	"context"
	"net/http"

	"github.com/delta-intel/delta-intelligence-dashboard/services/dashboard/datatypes"
)

// HTTPClient allows injecting mock HTTP clients for testing.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Adapter fetches and normalizes one source's reading for a polling cycle.
type Adapter interface {
	// ID is the stable source identifier (also the signal ID).
	ID() string

	// Name is the human-readable source name for display and error entries.
	Name() string

	// Region is the geographic scope of this source's readings.
	Region() datatypes.Region

	// Fetch produces this cycle's signal. Hard sources fail with a
	// *FetchError and no signal. Fallback sources return a degraded
	// Fallback=true signal AND the classified error, so the caller can
	// publish the reading while still recording the failure. It never
	// panics past its own boundary.
	Fetch(ctx context.Context) (datatypes.Signal, error)
}
