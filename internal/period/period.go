// Package period selects records falling inside named calendar windows.
package period

import (
	"strings"
	"time"

	"spendwise/internal/models"
)

// Period names an aggregation window.
type Period string

const (
	Daily   Period = "daily"
	Weekly  Period = "weekly"
	Monthly Period = "monthly"
	All     Period = "all"
)

// Parse maps s to a Period. Unrecognised input means All.
func Parse(s string) Period {
	switch p := Period(strings.ToLower(strings.TrimSpace(s))); p {
	case Daily, Weekly, Monthly:
		return p
	}
	return All
}

// Title is the capitalised period name used in headings.
func (p Period) Title() string {
	if p == "" {
		return "All"
	}
	return strings.ToUpper(string(p[:1])) + string(p[1:])
}

// Start returns the inclusive lower bound of p's window containing now, in
// now's location. ok is false for All, which has no bound.
// Weeks start on Sunday.
func Start(p Period, now time.Time) (start time.Time, ok bool) {
	y, m, d := now.Date()
	switch p {
	case Daily:
		return time.Date(y, m, d, 0, 0, 0, 0, now.Location()), true
	case Weekly:
		return time.Date(y, m, d-int(now.Weekday()), 0, 0, 0, 0, now.Location()), true
	case Monthly:
		return time.Date(y, m, 1, 0, 0, 0, 0, now.Location()), true
	}
	return time.Time{}, false
}

// Select returns the records dated at or after the start of p's window.
// There is no upper bound: records dated after now are kept.
func Select(records []models.Record, p Period, now time.Time) []models.Record {
	start, ok := Start(p, now)
	if !ok {
		return records
	}
	out := make([]models.Record, 0, len(records))
	for _, r := range records {
		if !r.Date.Before(start) {
			out = append(out, r)
		}
	}
	return out
}

// Between returns the records dated on any calendar day from from to to,
// both inclusive, using from's location for day boundaries.
func Between(records []models.Record, from, to time.Time) []models.Record {
	loc := from.Location()
	fy, fm, fd := from.Date()
	ty, tm, td := to.In(loc).Date()
	start := time.Date(fy, fm, fd, 0, 0, 0, 0, loc)
	end := time.Date(ty, tm, td+1, 0, 0, 0, 0, loc)

	out := make([]models.Record, 0)
	if !end.After(start) {
		return out
	}
	for _, r := range records {
		if !r.Date.Before(start) && r.Date.Before(end) {
			out = append(out, r)
		}
	}
	return out
}
