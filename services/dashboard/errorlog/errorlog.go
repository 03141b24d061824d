// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package errorlog provides a bounded, in-memory, most-recent-first log of
// source fetch failures.
//
// The log is an operational surface only: handlers read it for visibility,
// but nothing consults it to alter aggregation behavior. Capacity is fixed
// at construction; when full, the oldest entry is evicted.
//
// # Thread Safety
//
// All methods are safe for concurrent use.
package errorlog

import (
	"sync"
	"time"
)

// DefaultCapacity is the number of entries retained when no capacity is
// configured.
const DefaultCapacity = 50

// Entry records one source fetch failure.
type Entry struct {
	SignalID   string    `json:"signal_id"`
	SourceName string    `json:"source_name"`
	Error      string    `json:"error"`
	Type       string    `json:"error_type"`
	Timestamp  time.Time `json:"timestamp"`
}

// Log is a fixed-capacity ring of failure entries.
type Log struct {
	mu    sync.RWMutex
	buf   []Entry
	next  int // index the next entry is written at
	count int // number of valid entries, <= len(buf)
}

// New creates a Log retaining the most recent capacity entries. A
// non-positive capacity falls back to DefaultCapacity.
func New(capacity int) *Log {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Log{buf: make([]Entry, capacity)}
}

// Record appends an entry, evicting the oldest when the ring is full.
func (l *Log) Record(e Entry) {
	if e.Timestamp.IsZero() {
		e.Timestamp = time.Now().UTC()
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	l.buf[l.next] = e
	l.next = (l.next + 1) % len(l.buf)
	if l.count < len(l.buf) {
		l.count++
	}
}

// Recent returns up to n entries, newest first. n <= 0 returns all retained
// entries.
func (l *Log) Recent(n int) []Entry {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if n <= 0 || n > l.count {
		n = l.count
	}

	out := make([]Entry, 0, n)
	for i := 1; i <= n; i++ {
		idx := (l.next - i + len(l.buf)) % len(l.buf)
		out = append(out, l.buf[idx])
	}
	return out
}

// BySignal returns all retained entries for a signal ID, newest first.
func (l *Log) BySignal(signalID string) []Entry {
	return l.filter(func(e Entry) bool { return e.SignalID == signalID })
}

// BySource returns all retained entries for a source name, newest first.
func (l *Log) BySource(sourceName string) []Entry {
	return l.filter(func(e Entry) bool { return e.SourceName == sourceName })
}

// Len returns the number of retained entries.
func (l *Log) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.count
}

func (l *Log) filter(keep func(Entry) bool) []Entry {
	l.mu.RLock()
	defer l.mu.RUnlock()

	var out []Entry
	for i := 1; i <= l.count; i++ {
		idx := (l.next - i + len(l.buf)) % len(l.buf)
		if keep(l.buf[idx]) {
			out = append(out, l.buf[idx])
		}
	}
	return out
}
