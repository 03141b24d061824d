// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// Tests for the copper export-stress adapter.

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

func metalsBody(usd float64) string {
	return fmt.Sprintf(`{"symbol":"COPPER","usd":%v,"as_of":%q}`, usd, time.Now().Format(time.RFC3339))
}

func TestMetalsDownsideOnly(t *testing.T) {
	tests := []struct {
		name string
		usd  float64
		want int
	}{
		// score = 12 + max(0,(4.10-usd)/4.10*100)*2.5
		{"at baseline", 4.10, 12},
		{"above baseline stays at bias", 5.00, 12},
		{"20% below", 3.28, 62},
		{"collapse clamps", 0.50, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := NewMetalsAdapter(config.Source{}, jsonClient(http.StatusOK, metalsBody(tt.usd)))
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

func TestMetalsMonotonicAsPriceFalls(t *testing.T) {
	prev := -1
	for _, usd := range []float64{5.0, 4.1, 3.8, 3.2, 2.0, 1.0} {
		a := NewMetalsAdapter(config.Source{}, jsonClient(http.StatusOK, metalsBody(usd)))
		sig, err := a.Fetch(context.Background())
		if err != nil {
			t.Fatalf("usd=%v: %v", usd, err)
		}
		if sig.Score < prev {
			t.Fatalf("score decreased as price fell: usd=%v score=%d prev=%d", usd, sig.Score, prev)
		}
		prev = sig.Score
	}
}

func TestMetalsRegionAndFailure(t *testing.T) {
	a := NewMetalsAdapter(config.Source{}, jsonClient(http.StatusOK, `{"symbol":"COPPER"}`))
	if a.Region() != datatypes.RegionSouthAmerica {
		t.Errorf("Region = %s", a.Region())
	}
	_, err := a.Fetch(context.Background())
	if err == nil {
		t.Fatal("expected error")
	}
	if ClassOf(err) != ErrValidation {
		t.Errorf("ClassOf = %s, want validation", ClassOf(err))
	}
}
