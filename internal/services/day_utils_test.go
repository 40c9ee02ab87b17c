package services

import (
	"testing"
	"time"
)

func TestDayKeyUsesLocation(t *testing.T) {
	location, err := time.LoadLocation("America/Los_Angeles")
	if err != nil {
		t.Fatalf("load location: %v", err)
	}

	raw := time.Date(2026, time.March, 2, 6, 30, 0, 0, time.UTC)
	if got := DayKey(raw, location); got != "2026-03-01" {
		t.Fatalf("DayKey() = %q, want 2026-03-01", got)
	}
	if got := DayKey(raw, nil); got != "2026-03-02" {
		t.Fatalf("DayKey() with nil location = %q, want 2026-03-02", got)
	}
}

func TestPreviousDayKeyAcrossDSTAndMonths(t *testing.T) {
	location, err := time.LoadLocation("America/Los_Angeles")
	if err != nil {
		t.Fatalf("load location: %v", err)
	}

	tests := []struct {
		name  string
		value time.Time
		want  string
	}{
		{name: "spring forward", value: time.Date(2026, time.March, 9, 12, 0, 0, 0, location), want: "2026-03-08"},
		{name: "month boundary", value: time.Date(2026, time.March, 1, 0, 30, 0, 0, location), want: "2026-02-28"},
		{name: "year boundary", value: time.Date(2026, time.January, 1, 9, 0, 0, 0, location), want: "2025-12-31"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PreviousDayKey(tt.value, location); got != tt.want {
				t.Fatalf("PreviousDayKey() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseDayKey(t *testing.T) {
	if got, err := ParseDayKey("2026-03-02", time.UTC); err != nil || got != "2026-03-02" {
		t.Fatalf("ParseDayKey() = %q, %v", got, err)
	}
	for _, raw := range []string{"2026-3-2", "2026-02-30", "03/02/2026", ""} {
		if _, err := ParseDayKey(raw, time.UTC); err == nil {
			t.Fatalf("expected ParseDayKey(%q) to fail", raw)
		}
	}
}
