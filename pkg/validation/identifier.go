// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package validation provides input validation utilities for user-facing
// identifiers.
//
// This package contains validators for inputs that arrive from HTTP query
// parameters, URL path segments, or CLI flags before they are used to look
// up sources or filter results. Validating here keeps arbitrary strings out
// of log lines and error messages.
package validation

import (
	"fmt"
	"regexp"
	"strings"
)

// sourceIDPattern matches valid source identifiers.
// Allows: lowercase letters, digits, hyphens and underscores between them.
// Max length: 32 characters.
var sourceIDPattern = regexp.MustCompile(`^[a-z0-9][a-z0-9_\-]{0,31}$`)

// regionPattern matches valid region slugs such as "north-america".
var regionPattern = regexp.MustCompile(`^[a-z][a-z\-]{0,31}$`)

// ValidateSourceID validates a source identifier.
//
// Valid identifiers:
//   - 1-32 characters
//   - Lowercase letters a-z and digits 0-9
//   - Hyphens (-) and underscores (_) after the first character
//
// Returns an error if the identifier is invalid.
//
// Example:
//
//	if err := validation.ValidateSourceID(id); err != nil {
//	    return fmt.Errorf("invalid source: %w", err)
//	}
func ValidateSourceID(id string) error {
	if id == "" {
		return fmt.Errorf("source id cannot be empty")
	}

	if !sourceIDPattern.MatchString(id) {
		return fmt.Errorf("invalid source id: %q (must be 1-32 lowercase alphanumeric chars, hyphens, or underscores)", id)
	}

	return nil
}

// ValidateRegionName validates the shape of a region slug.
//
// This checks syntax only (lowercase letters and hyphens); whether the
// region is actually known is decided by the caller against its region set.
func ValidateRegionName(region string) error {
	if region == "" {
		return fmt.Errorf("region cannot be empty")
	}

	if !regionPattern.MatchString(region) {
		return fmt.Errorf("invalid region: %q (must be lowercase letters and hyphens)", region)
	}

	return nil
}

// SanitizeSourceID normalizes and validates a source identifier.
// Returns the lowercase identifier if valid, or an error if invalid.
func SanitizeSourceID(id string) (string, error) {
	normalized := strings.ToLower(strings.TrimSpace(id))
	if err := ValidateSourceID(normalized); err != nil {
		return "", err
	}
	return normalized, nil
}
