package orchestrator

import (
	"strings"
	"testing"
	"time"
)

func TestBuildTimeContext(t *testing.T) {
	loc, err := time.LoadLocation("Asia/Kolkata")
	if err != nil {
		t.Skipf("tzdata unavailable: %v", err)
	}
	now := time.Date(2026, 10, 16, 18, 0, 0, 0, time.UTC) // 23:30 in Kolkata

	got := buildTimeContext(now, loc)

	for _, want := range []string{
		"[CURRENT TIME]",
		"Now: 11:30 PM (Asia/Kolkata)",
		"Today: 2026-10-16 (Friday)",
		"Tomorrow: 2026-10-17",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("expected %q in %q", want, got)
		}
	}
}

func TestBuildTimeContext_CrossesMidnight(t *testing.T) {
	loc, err := time.LoadLocation("Asia/Tokyo")
	if err != nil {
		t.Skipf("tzdata unavailable: %v", err)
	}
	now := time.Date(2026, 10, 16, 20, 0, 0, 0, time.UTC) // 05:00 next day in Tokyo

	got := buildTimeContext(now, loc)
	if !strings.Contains(got, "Today: 2026-10-17 (Saturday)") {
		t.Errorf("expected local date, got %q", got)
	}
}

func TestLoadLocation(t *testing.T) {
	if LoadLocation("") != time.Local {
		t.Error("empty name should be the local zone")
	}
	if LoadLocation("Not/AZone") != time.Local {
		t.Error("unknown zone should fall back to local")
	}
}
