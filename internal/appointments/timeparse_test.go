package appointments

import (
	"testing"
	"time"
)

func TestParseScheduledTime(t *testing.T) {
	want := time.Date(2026, 9, 15, 14, 30, 0, 0, time.UTC)
	cases := []struct {
		name  string
		input string
	}{
		{"human form", "2026-09-15 14:30"},
		{"human form with seconds", "2026-09-15 14:30:00"},
		{"iso no zone", "2026-09-15T14:30"},
		{"iso with seconds", "2026-09-15T14:30:00"},
		{"rfc3339", "2026-09-15T14:30:00Z"},
		{"rfc3339 millis", "2026-09-15T14:30:00.000Z"},
		{"surrounding whitespace", "  2026-09-15 14:30  "},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseScheduledTime(tc.input)
			if err != nil {
				t.Fatalf("parse %q: %v", tc.input, err)
			}
			if !got.Equal(want) {
				t.Errorf("parse %q = %v, want %v", tc.input, got, want)
			}
			if got.Location() != time.UTC {
				t.Errorf("parse %q not normalized to UTC: %v", tc.input, got.Location())
			}
		})
	}
}

func TestParseScheduledTimeOffsetNormalized(t *testing.T) {
	got, err := ParseScheduledTime("2026-09-15T16:30:00+02:00")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	want := time.Date(2026, 9, 15, 14, 30, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("offset input not normalized: got %v, want %v", got, want)
	}
}

func TestParseScheduledTimeRejects(t *testing.T) {
	for _, input := range []string{"", "   ", "next tuesday", "15/09/2026 14:30", "2026-09-15"} {
		if _, err := ParseScheduledTime(input); !IsValidation(err) {
			t.Errorf("expected validation error for %q, got %v", input, err)
		}
	}
}
