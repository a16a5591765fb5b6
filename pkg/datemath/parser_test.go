package datemath_test

import (
	"errors"
	"testing"
	"time"

	"voice-assistant/pkg/datemath"
)

func TestDay(t *testing.T) {
	parser := datemath.NewParser(time.UTC)
	base := time.Date(2026, 10, 14, 15, 30, 0, 0, time.UTC) // Wednesday
	startOfBase := time.Date(2026, 10, 14, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		phrase string
		want   time.Time
	}{
		{phrase: "today", want: startOfBase},
		{phrase: "Tonight", want: startOfBase},
		{phrase: "tomorrow?", want: startOfBase.AddDate(0, 0, 1)},
		{phrase: "the day after tomorrow", want: startOfBase.AddDate(0, 0, 2)},
		{phrase: "yesterday", want: startOfBase.AddDate(0, 0, -1)},
		{phrase: "in 3 days", want: startOfBase.AddDate(0, 0, 3)},
		{phrase: "in two weeks", want: startOfBase.AddDate(0, 0, 14)},
		{phrase: "in a week", want: startOfBase.AddDate(0, 0, 7)},
		{phrase: "friday", want: startOfBase.AddDate(0, 0, 2)},
		{phrase: "on Friday", want: startOfBase.AddDate(0, 0, 2)},
		{phrase: "this wednesday", want: startOfBase},
		{phrase: "next wednesday", want: startOfBase.AddDate(0, 0, 7)},
		{phrase: "next monday", want: startOfBase.AddDate(0, 0, 5)},
		{phrase: "2026-12-25", want: time.Date(2026, 12, 25, 0, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.phrase, func(t *testing.T) {
			start, end, err := parser.Day(tt.phrase, base)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !start.Equal(tt.want) {
				t.Errorf("start = %v, want %v", start, tt.want)
			}
			if !end.Equal(tt.want.AddDate(0, 0, 1)) {
				t.Errorf("end = %v, want %v", end, tt.want.AddDate(0, 0, 1))
			}
		})
	}
}

func TestDay_Unknown(t *testing.T) {
	parser := datemath.NewParser(time.UTC)
	for _, phrase := range []string{"someday", "next fortnight", "in many days", ""} {
		if _, _, err := parser.Day(phrase, time.Now()); !errors.Is(err, datemath.ErrUnknownDay) {
			t.Errorf("%q: expected ErrUnknownDay, got %v", phrase, err)
		}
	}
}

func TestDay_Timezone(t *testing.T) {
	tokyo, err := time.LoadLocation("Asia/Tokyo")
	if err != nil {
		t.Skip("tzdata not available")
	}
	parser := datemath.NewParser(tokyo)

	// 20:00 UTC on the 14th is already the 15th in Tokyo.
	base := time.Date(2026, 10, 14, 20, 0, 0, 0, time.UTC)
	start, _, err := parser.Day("today", base)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if start.Day() != 15 || start.Location() != tokyo {
		t.Errorf("expected Tokyo midnight of the 15th, got %v", start)
	}
}
