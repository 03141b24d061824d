// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// Tests for the commodity adapter and its fallback policy.

package adapters

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/delta-intel/delta-intelligence-dashboard/services/dashboard/config"
	"github.com/delta-intel/delta-intelligence-dashboard/services/dashboard/datatypes"
)

func commodityBody(usd float64) string {
	return fmt.Sprintf(`{"symbol":"BRENT","usd":%v,"as_of":%q}`, usd, time.Now().Format(time.RFC3339))
}

func TestCommodityUpsideOnly(t *testing.T) {
	tests := []struct {
		name string
		usd  float64
		want int
	}{
		// score = 18 + max(0,(usd-75)/75*100)*1.8
		{"at baseline", 75, 18},
		{"below baseline stays at bias", 60, 18},
		{"20% above", 90, 54},
		{"spike clamps", 300, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := NewCommodityAdapter(config.Source{}, jsonClient(http.StatusOK, commodityBody(tt.usd)))
			sig, err := a.Fetch(context.Background())
			if err != nil {
				t.Fatalf("Fetch error: %v", err)
			}
			if sig.Score != tt.want {
				t.Errorf("Score = %d, want %d", sig.Score, tt.want)
			}
			if sig.Fallback {
				t.Error("live reading must not be marked fallback")
			}
		})
	}
}

func TestCommodityFallbackOnFailure(t *testing.T) {
	a := NewCommodityAdapter(config.Source{}, failingClient(errors.New("refused")))
	sig, err := a.Fetch(context.Background())
	if err == nil {
		t.Fatal("fallback adapter must surface the classified error alongside the signal")
	}
	if ClassOf(err) != ErrNetwork {
		t.Errorf("error class = %s, want network", ClassOf(err))
	}
	if !sig.Fallback || sig.Score != commodityFallbackScore || sig.Confidence != datatypes.ConfidenceLow {
		t.Errorf("fallback signal wrong: %+v", sig)
	}
	if sig.Region != datatypes.RegionMiddleEast {
		t.Errorf("Region = %s", sig.Region)
	}
}

func TestCommodityInvalidPriceFallsBack(t *testing.T) {
	a := NewCommodityAdapter(config.Source{}, jsonClient(http.StatusOK, `{"symbol":"BRENT","usd":0}`))
	sig, err := a.Fetch(context.Background())
	if err == nil {
		t.Fatal("validation failure must surface the classified error")
	}
	if ClassOf(err) != ErrValidation {
		t.Errorf("error class = %s, want validation", ClassOf(err))
	}
	if !sig.Fallback {
		t.Error("validation failure should produce fallback signal")
	}
}
