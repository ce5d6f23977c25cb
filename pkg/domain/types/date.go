package types

import (
	"time"

	"github.com/m-mizutani/goerr/v2"
)

// DateLayout is the wire and storage format of a calendar date
const DateLayout = "2006-01-02"

// Date represents a calendar date (no instant, no timezone) in
// YYYY-MM-DD format. The format sorts lexicographically, so Date values
// can be compared and ordered as plain strings.
type Date string

// ParseDate parses a YYYY-MM-DD string into a Date
func ParseDate(s string) (Date, error) {
	if _, err := time.Parse(DateLayout, s); err != nil {
		return "", goerr.Wrap(err, "invalid date format, expected YYYY-MM-DD", goerr.V("input", s))
	}
	return Date(s), nil
}

// DateOf returns the calendar date of t in t's own location
func DateOf(t time.Time) Date {
	return Date(t.Format(DateLayout))
}

// Today returns the current calendar date in the given location.
// A nil location means UTC.
func Today(loc *time.Location) Date {
	if loc == nil {
		loc = time.UTC
	}
	return DateOf(time.Now().In(loc))
}

// Validate checks if the Date is a well-formed calendar date
func (d Date) Validate() error {
	_, err := ParseDate(string(d))
	return err
}

// Time returns the date as midnight UTC
func (d Date) Time() time.Time {
	t, _ := time.Parse(DateLayout, string(d))
	return t
}

// AddDays returns the date shifted by n calendar days
func (d Date) AddDays(n int) Date {
	return DateOf(d.Time().AddDate(0, 0, n))
}

// Before reports whether d is strictly earlier than other
func (d Date) Before(other Date) bool {
	return string(d) < string(other)
}

// After reports whether d is strictly later than other
func (d Date) After(other Date) bool {
	return string(d) > string(other)
}

// String returns the string representation of the date
func (d Date) String() string {
	return string(d)
}

// DatesBetween returns every calendar date in [start, end] inclusive.
// Returns nil when start is after end.
func DatesBetween(start, end Date) []Date {
	if start.After(end) {
		return nil
	}
	var dates []Date
	for d := start; !d.After(end); d = d.AddDays(1) {
		dates = append(dates, d)
	}
	return dates
}
