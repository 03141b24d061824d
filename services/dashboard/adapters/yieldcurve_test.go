// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// Tests for the yield-curve adapter's inverted-spread mapping.

package adapters

import (
	"context"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/delta-intel/delta-intelligence-dashboard/services/dashboard/config"
	"github.com/delta-intel/delta-intelligence-dashboard/services/dashboard/datatypes"
)

func yieldBody(spread float64) string {
	return fmt.Sprintf(`{"spread_pct":%v,"date":%q}`, spread, time.Now().Format("2006-01-02"))
}

func TestYieldInvertedSpreadScore(t *testing.T) {
	tests := []struct {
		name   string
		spread float64
		want   int
	}{
		// score = 30 - spread*25
		{"steep curve", 1.0, 5},
		{"flat curve", 0.0, 30},
		{"shallow inversion", -1.0, 55},
		{"deep inversion", -2.0, 80},
		{"extreme inversion clamps", -4.0, 100},
		{"very steep clamps", 2.0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := NewYieldAdapter(config.Source{}, jsonClient(http.StatusOK, yieldBody(tt.spread)))
			sig, err := a.Fetch(context.Background())
			if err != nil {
				t.Fatalf("Fetch error: %v", err)
			}
			if sig.Score != tt.want {
				t.Errorf("Score = %d, want %d", sig.Score, tt.want)
			}
		})
	}
}

func TestYieldMonotonicInInversion(t *testing.T) {
	prev := -1
	for _, spread := range []float64{2.0, 1.0, 0.5, 0.0, -0.5, -1.5, -3.0} {
		a := NewYieldAdapter(config.Source{}, jsonClient(http.StatusOK, yieldBody(spread)))
		sig, err := a.Fetch(context.Background())
		if err != nil {
			t.Fatalf("spread=%v: %v", spread, err)
		}
		if sig.Score < prev {
			t.Fatalf("score decreased as inversion deepened: spread=%v score=%d prev=%d", spread, sig.Score, prev)
		}
		prev = sig.Score
	}
}

func TestYieldZeroSpreadIsNotMissing(t *testing.T) {
	a := NewYieldAdapter(config.Source{}, jsonClient(http.StatusOK, yieldBody(0)))
	sig, err := a.Fetch(context.Background())
	if err != nil {
		t.Fatalf("zero spread must be accepted: %v", err)
	}
	if sig.Score != 30 {
		t.Errorf("Score = %d, want 30", sig.Score)
	}
}

func TestYieldMissingSpreadIsValidationError(t *testing.T) {
	a := NewYieldAdapter(config.Source{}, jsonClient(http.StatusOK, `{"date":"2025-06-01"}`))
	_, err := a.Fetch(context.Background())
	if err == nil {
		t.Fatal("expected error")
	}
	if ClassOf(err) != ErrValidation {
		t.Errorf("ClassOf = %s, want validation", ClassOf(err))
	}
}

func TestYieldRegionIsNorthAmerica(t *testing.T) {
	a := NewYieldAdapter(config.Source{}, jsonClient(http.StatusOK, yieldBody(0)))
	if a.Region() != datatypes.RegionNorthAmerica {
		t.Errorf("Region = %s", a.Region())
	}
}
