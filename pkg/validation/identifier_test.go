package validation

import (
	"testing"
)

func TestValidateSourceID(t *testing.T) {
	tests := []struct {
		name    string
		id      string
		wantErr bool
	}{
		// Valid identifiers
		{"simple", "news", false},
		{"single char", "a", false},
		{"with digit", "fx2", false},
		{"with hyphen", "yield-curve", false},
		{"with underscore", "yield_curve", false},
		{"max length", "abcdefghijklmnopqrstuvwxyz012345", false},

		// Invalid identifiers
		{"empty", "", true},
		{"uppercase", "News", true},
		{"too long", "abcdefghijklmnopqrstuvwxyz0123456", true},
		{"injection attempt", `news"; drop()`, true},
		{"path traversal", "../etc/passwd", true},
		{"spaces", "news feed", true},
		{"starts with hyphen", "-news", true},
		{"starts with underscore", "_news", true},
		{"special chars", "news@#$", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSourceID(tt.id)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateSourceID(%q) error = %v, wantErr %v", tt.id, err, tt.wantErr)
			}
		})
	}
}

func TestValidateRegionName(t *testing.T) {
	tests := []struct {
		name    string
		region  string
		wantErr bool
	}{
		{"global", "global", false},
		{"hyphenated", "north-america", false},
		{"single letter", "x", false},

		{"empty", "", true},
		{"uppercase", "Europe", true},
		{"digits", "region1", true},
		{"spaces", "north america", true},
		{"starts with hyphen", "-europe", true},
		{"query injection", "europe?x=1", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRegionName(tt.region)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateRegionName(%q) error = %v, wantErr %v", tt.region, err, tt.wantErr)
			}
		})
	}
}

func TestSanitizeSourceID(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    string
		wantErr bool
	}{
		{"already clean", "news", "news", false},
		{"uppercase input", "NEWS", "news", false},
		{"surrounding whitespace", "  markets  ", "markets", false},
		{"invalid after normalize", "bad id", "", true},
		{"empty", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SanitizeSourceID(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("SanitizeSourceID(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("SanitizeSourceID(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
