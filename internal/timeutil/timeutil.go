// ABOUTME: Local-time boundary helpers for date-windowed item views
// ABOUTME: Backs the today/yesterday/week filters and bulk mark-read cutoffs

package timeutil

import "time"

// StartOfToday returns local midnight of the current day.
func StartOfToday() time.Time {
	now := time.Now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
}

// StartOfYesterday returns local midnight of the previous day.
func StartOfYesterday() time.Time {
	return StartOfToday().AddDate(0, 0, -1)
}

// EndOfYesterday returns the instant yesterday ends, which is the start of
// today. Callers use it as an exclusive upper bound.
func EndOfYesterday() time.Time {
	return StartOfToday()
}

// StartOfWeek returns local midnight of the most recent Sunday.
func StartOfWeek() time.Time {
	today := StartOfToday()
	weekday := int(today.Weekday())
	return today.AddDate(0, 0, -weekday)
}

// StartOfMonth returns local midnight of the first day of the current month.
func StartOfMonth() time.Time {
	now := time.Now()
	return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
}

// ParsePeriod maps a named period to its start instant. Recognized values
// are "today", "yesterday", "week", and "month".
func ParsePeriod(period string) (time.Time, bool) {
	switch period {
	case "today":
		return StartOfToday(), true
	case "yesterday":
		return StartOfYesterday(), true
	case "week":
		return StartOfWeek(), true
	case "month":
		return StartOfMonth(), true
	default:
		return time.Time{}, false
	}
}
