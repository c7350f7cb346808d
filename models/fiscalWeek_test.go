package models

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestWeekOfThursdayMapsToItself(t *testing.T) {
	// 2026-01-01 is a Thursday.
	label, ws := WeekOf(date(2026, time.January, 1))
	if !ws.Equal(date(2026, time.January, 1)) {
		t.Fatalf("week start = %v, want 2026-01-01", ws)
	}
	if label != "Jan 01 – Jan 07" {
		t.Fatalf("label = %q", label)
	}
}

func TestWeekOfDayBeforeCycleStart(t *testing.T) {
	// Wednesday 2025-12-31 belongs to the week that started the previous Thursday.
	_, ws := WeekOf(date(2025, time.December, 31))
	if !ws.Equal(date(2025, time.December, 25)) {
		t.Fatalf("week start = %v, want 2025-12-25", ws)
	}
}

func TestWeekOfMidWeek(t *testing.T) {
	_, ws := WeekOf(date(2026, time.January, 6)) // Tuesday
	if !ws.Equal(date(2026, time.January, 1)) {
		t.Fatalf("week start = %v, want 2026-01-01", ws)
	}
}

func TestWeekOfIgnoresTimeOfDay(t *testing.T) {
	_, a := WeekOf(time.Date(2026, time.January, 1, 23, 59, 59, 0, time.UTC))
	_, b := WeekOf(date(2026, time.January, 1))
	if !a.Equal(b) {
		t.Fatalf("time of day changed the week start: %v vs %v", a, b)
	}
}
