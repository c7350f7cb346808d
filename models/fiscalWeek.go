package models

import (
	"fmt"
	"time"
)

// The business week runs Thursday through Wednesday, independent of
// calendar-month boundaries. Both ingested series are bucketed on it.
const WeekStartDay = time.Thursday

// WeekOf maps a calendar date to its business week: weekStart is the most
// recent Thursday on or before date (a Thursday maps to itself), label spans
// weekStart through weekStart+6. Pure; total over all dates.
func WeekOf(date time.Time) (label string, weekStart time.Time) {
	d := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	offset := (int(d.Weekday()) - int(WeekStartDay) + 7) % 7
	weekStart = d.AddDate(0, 0, -offset)
	weekEnd := weekStart.AddDate(0, 0, 6)
	label = fmt.Sprintf("%s – %s", weekStart.Format("Jan 02"), weekEnd.Format("Jan 02"))
	return label, weekStart
}
