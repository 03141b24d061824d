// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// Shared test fixtures and transport classification tests for adapters.

package adapters

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"
)

// MockHTTPClient injects canned responses into adapters under test.
type MockHTTPClient struct {
	DoFunc func(req *http.Request) (*http.Response, error)
}

func (m *MockHTTPClient) Do(req *http.Request) (*http.Response, error) {
	return m.DoFunc(req)
}

func jsonClient(status int, body string) *MockHTTPClient {
	return &MockHTTPClient{
		DoFunc: func(req *http.Request) (*http.Response, error) {
			return &http.Response{
				StatusCode: status,
				Body:       io.NopCloser(strings.NewReader(body)),
				Header:     http.Header{"Content-Type": []string{"application/json"}},
			}, nil
		},
	}
}

func failingClient(err error) *MockHTTPClient {
	return &MockHTTPClient{
		DoFunc: func(req *http.Request) (*http.Response, error) {
			return nil, err
		},
	}
}

func TestGetJSONClassification(t *testing.T) {
	tests := []struct {
		name   string
		client HTTPClient
		want   ErrorClass
	}{
		{"transport error", failingClient(errors.New("connection refused")), ErrNetwork},
		{"deadline", failingClient(context.DeadlineExceeded), ErrTimeout},
		{"server error", jsonClient(http.StatusInternalServerError, `{}`), ErrNetwork},
		{"rate limited", jsonClient(http.StatusTooManyRequests, `{}`), ErrNetwork},
		{"malformed body", jsonClient(http.StatusOK, `{"broken`), ErrParsing},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var v map[string]any
			err := getJSON(context.Background(), tt.client, "http://example.com", 5*time.Second, nil, &v)
			if err == nil {
				t.Fatal("expected error")
			}
			if got := ClassOf(err); got != tt.want {
				t.Errorf("ClassOf = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestGetJSONSuccess(t *testing.T) {
	var v struct {
		OK bool `json:"ok"`
	}
	err := getJSON(context.Background(), jsonClient(http.StatusOK, `{"ok":true}`), "http://example.com", 5*time.Second, nil, &v)
	if err != nil {
		t.Fatalf("getJSON error: %v", err)
	}
	if !v.OK {
		t.Error("decoded value wrong")
	}
}

func TestClassOfUnknown(t *testing.T) {
	if got := ClassOf(errors.New("plain")); got != ErrUnknown {
		t.Errorf("ClassOf(plain error) = %s, want %s", got, ErrUnknown)
	}
}
