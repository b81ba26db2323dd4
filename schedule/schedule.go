// Package schedule computes when the daily pipeline run should fire:
// weekdays at a fixed local hour. The sites do not update listings over
// the weekend, so Saturday and Sunday are skipped.
package schedule

import "time"

// NextRun returns the next weekday occurrence of hour o'clock strictly
// after now.
func NextRun(now time.Time, hour int) time.Time {
	next := time.Date(now.Year(), now.Month(), now.Day(), hour, 0, 0, 0, now.Location())
	for !next.After(now) || isWeekend(next) {
		next = next.AddDate(0, 0, 1)
	}
	return next
}

func isWeekend(t time.Time) bool {
	return t.Weekday() == time.Saturday || t.Weekday() == time.Sunday
}
