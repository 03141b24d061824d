// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// Tests for the outbreak-monitor adapter.

package adapters

import (
	"context"
	"net/http"
	"testing"

	"github.com/delta-intel/delta-intelligence-dashboard/services/dashboard/config"
	"github.com/delta-intel/delta-intelligence-dashboard/services/dashboard/datatypes"
)

func TestHealthGradeWeightedScore(t *testing.T) {
	// score = 8 + sum(grade)*4
	body := `{"events":[
		{"disease":"cholera","country":"X","grade":1,"reported":"2025-06-01"},
		{"disease":"measles","country":"Y","grade":2,"reported":"2025-06-01"}
	]}`
	a := NewHealthAdapter(config.Source{}, jsonClient(http.StatusOK, body))
	sig, err := a.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch error: %v", err)
	}
	if sig.Score != 20 {
		t.Errorf("Score = %d, want 20", sig.Score)
	}
	if sig.Region != datatypes.RegionAfrica {
		t.Errorf("Region = %s", sig.Region)
	}
}

func TestHealthZeroEventsUsesBaseline(t *testing.T) {
	a := NewHealthAdapter(config.Source{}, jsonClient(http.StatusOK, `{"events":[]}`))
	sig, err := a.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch error: %v", err)
	}
	if sig.Score != int(healthBias) {
		t.Errorf("Score = %d, want baseline %d", sig.Score, int(healthBias))
	}
}

func TestHealthBogusGradeTreatedAsGradeOne(t *testing.T) {
	body := `{"events":[{"disease":"unknown","country":"Z","grade":9}]}`
	a := NewHealthAdapter(config.Source{}, jsonClient(http.StatusOK, body))
	sig, err := a.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch error: %v", err)
	}
	// 8 + 1*4
	if sig.Score != 12 {
		t.Errorf("Score = %d, want 12", sig.Score)
	}
}

func TestHealthFailureIsTyped(t *testing.T) {
	a := NewHealthAdapter(config.Source{}, jsonClient(http.StatusOK, `not json`))
	_, err := a.Fetch(context.Background())
	if err == nil {
		t.Fatal("expected error")
	}
	if ClassOf(err) != ErrParsing {
		t.Errorf("ClassOf = %s, want parsing", ClassOf(err))
	}
}
