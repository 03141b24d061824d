// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package errorlog

import (
	"fmt"
	"sync"
	"testing"
	"time"
)

func TestRecordAndRecent(t *testing.T) {
	l := New(10)

	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		l.Record(Entry{
			SignalID:   fmt.Sprintf("src-%d", i),
			SourceName: "Source",
			Error:      "connection refused",
			Type:       "network",
			Timestamp:  base.Add(time.Duration(i) * time.Minute),
		})
	}

	got := l.Recent(0)
	if len(got) != 3 {
		t.Fatalf("Recent(0) returned %d entries, want 3", len(got))
	}
	// Newest first.
	if got[0].SignalID != "src-2" || got[2].SignalID != "src-0" {
		t.Errorf("Recent order wrong: first=%s last=%s", got[0].SignalID, got[2].SignalID)
	}

	if got := l.Recent(2); len(got) != 2 || got[0].SignalID != "src-2" {
		t.Errorf("Recent(2) = %v", got)
	}
}

func TestEvictionAtCapacity(t *testing.T) {
	l := New(5)

	for i := 0; i < 12; i++ {
		l.Record(Entry{SignalID: fmt.Sprintf("src-%d", i), Type: "timeout"})
	}

	if l.Len() != 5 {
		t.Fatalf("Len() = %d, want 5", l.Len())
	}

	got := l.Recent(0)
	if got[0].SignalID != "src-11" {
		t.Errorf("newest entry = %s, want src-11", got[0].SignalID)
	}
	if got[4].SignalID != "src-7" {
		t.Errorf("oldest retained entry = %s, want src-7", got[4].SignalID)
	}
}

func TestQueryBySignalAndSource(t *testing.T) {
	l := New(50)

	l.Record(Entry{SignalID: "markets", SourceName: "Volatility Index", Type: "network"})
	l.Record(Entry{SignalID: "news", SourceName: "Conflict Monitor", Type: "parsing"})
	l.Record(Entry{SignalID: "markets", SourceName: "Volatility Index", Type: "timeout"})

	byID := l.BySignal("markets")
	if len(byID) != 2 {
		t.Fatalf("BySignal(markets) returned %d entries, want 2", len(byID))
	}
	if byID[0].Type != "timeout" {
		t.Errorf("BySignal newest entry type = %s, want timeout", byID[0].Type)
	}

	if got := l.BySource("Conflict Monitor"); len(got) != 1 {
		t.Errorf("BySource(Conflict Monitor) returned %d entries, want 1", len(got))
	}
	if got := l.BySignal("unknown"); len(got) != 0 {
		t.Errorf("BySignal(unknown) returned %d entries, want 0", len(got))
	}
}

func TestDefaultCapacity(t *testing.T) {
	l := New(0)
	for i := 0; i < DefaultCapacity+10; i++ {
		l.Record(Entry{SignalID: "s"})
	}
	if l.Len() != DefaultCapacity {
		t.Errorf("Len() = %d, want %d", l.Len(), DefaultCapacity)
	}
}

func TestConcurrentRecord(t *testing.T) {
	l := New(50)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				l.Record(Entry{SignalID: fmt.Sprintf("src-%d", id)})
				l.Recent(10)
			}
		}(i)
	}
	wg.Wait()

	if l.Len() != 50 {
		t.Errorf("Len() = %d, want 50", l.Len())
	}
}
