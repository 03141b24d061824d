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
	"errors"
	"fmt"
)

// ErrorClass classifies a fetch failure for the operational error log.
type ErrorClass string

const (
	ErrNetwork    ErrorClass = "network"
	ErrParsing    ErrorClass = "parsing"
	ErrValidation ErrorClass = "validation"
	ErrTimeout    ErrorClass = "timeout"
	ErrUnknown    ErrorClass = "unknown"
)

// FetchError is a classified source fetch failure. It is the only error type
// adapters return; classification happens once, at the adapter boundary.
type FetchError struct {
	Class ErrorClass
	Err   error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("%s: %v", e.Class, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

func networkErr(format string, args ...any) *FetchError {
	return &FetchError{Class: ErrNetwork, Err: fmt.Errorf(format, args...)}
}

func parsingErr(format string, args ...any) *FetchError {
	return &FetchError{Class: ErrParsing, Err: fmt.Errorf(format, args...)}
}

func validationErr(format string, args ...any) *FetchError {
	return &FetchError{Class: ErrValidation, Err: fmt.Errorf(format, args...)}
}

func timeoutErr(format string, args ...any) *FetchError {
	return &FetchError{Class: ErrTimeout, Err: fmt.Errorf(format, args...)}
}

// ClassOf extracts the class from an adapter error, ErrUnknown for anything
// that isn't a FetchError.
func ClassOf(err error) ErrorClass {
	var fe *FetchError
	if errors.As(err, &fe) {
		return fe.Class
	}
	return ErrUnknown
}
