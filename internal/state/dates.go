package state

import (
	"time"
)

// DateLayout is the stored form of a due date
const DateLayout = "2006-01-02"

// DefaultRenewalDays is how far a renewal pushes the due date
const DefaultRenewalDays = 7

// parseDue reads a due date written as YYYY-MM-DD or RFC 3339
func parseDue(s string) (time.Time, bool) {
	if t, err := time.Parse(DateLayout, s); err == nil {
		return t, true
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC(), true
	}
	return time.Time{}, false
}

// shiftDue moves due forward by days. ok is false when due does not parse.
func shiftDue(due string, days int) (string, bool) {
	t, ok := parseDue(due)
	if !ok {
		return due, false
	}
	return t.AddDate(0, 0, days).Format(DateLayout), true
}

// dueIn returns the date days after now
func dueIn(now time.Time, days int) string {
	return now.UTC().AddDate(0, 0, days).Format(DateLayout)
}
