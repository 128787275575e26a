// Package datetime provides date and time utility functions.
package datetime

import (
	"strings"
	"time"

	"github.com/iwvelando/unit-analytics/pkg/constants"
)

const (
	// DateLayout is the ISO date format expected for contract and handover
	// dates.
	DateLayout = constants.DateLayout
)

// ParseDate parses an ISO YYYY-MM-DD date. The boolean is false for empty or
// malformed input, which callers treat as an absent date.
func ParseDate(value string) (time.Time, bool) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(DateLayout, trimmed)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// YearsBetween returns the exact day-count distance from start to end
// expressed in years of 365.25 days.
func YearsBetween(start, end time.Time) float64 {
	days := end.Sub(start).Hours() / 24
	return days / constants.DaysPerYear
}

// MonthsBetween returns the whole calendar-month difference between start and
// end, ignoring the day of month (2024-01-31 to 2024-02-01 is one month).
func MonthsBetween(start, end time.Time) int {
	years := end.Year() - start.Year()
	months := int(end.Month()) - int(start.Month())
	return years*constants.MonthsPerYear + months
}

