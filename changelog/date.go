// Package changelog turns changelog releases into feed content: it parses the
// human date format used in changelog.json, renders release bodies as HTML and
// lints release metadata.
package changelog

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// TimestampLayout is the RFC 3339 layout, with milliseconds, used for every
// timestamp written to the feed.
const TimestampLayout = "2006-01-02T15:04:05.000Z07:00"

const (
	minYear = 1970
	maxYear = 9999
)

var months = map[string]time.Month{
	"January":   time.January,
	"February":  time.February,
	"March":     time.March,
	"April":     time.April,
	"May":       time.May,
	"June":      time.June,
	"July":      time.July,
	"August":    time.August,
	"September": time.September,
	"October":   time.October,
	"November":  time.November,
	"December":  time.December,
}

// UnknownMonthError is returned when the month name is not an English month.
type UnknownMonthError struct {
	Month string
	Input string
}

func (e *UnknownMonthError) Error() string {
	return fmt.Sprintf("unknown month %q in date: %q", e.Month, e.Input)
}

// InvalidDateError is returned for malformed dates and out of range components.
type InvalidDateError struct {
	Input  string
	Reason string
}

func (e *InvalidDateError) Error() string {
	return fmt.Sprintf("invalid date %q: %s", e.Input, e.Reason)
}

// ParseDate parses a changelog date like "29. December 2025" or
// "11.November 2021". The result is noon UTC on that calendar day so that
// readers converting to a local zone still show the same date.
func ParseDate(s string) (time.Time, error) {
	raw := strings.TrimSpace(s)

	dot := strings.Index(raw, ".")
	if dot == -1 {
		return time.Time{}, &InvalidDateError{Input: raw, Reason: "missing dot after day"}
	}

	day, err := strconv.Atoi(strings.TrimSpace(raw[:dot]))
	if err != nil || day < 1 || day > 31 {
		return time.Time{}, &InvalidDateError{Input: raw, Reason: "day must be a number between 1 and 31"}
	}

	// Anything after month and year is ignored.
	parts := strings.Fields(raw[dot+1:])
	if len(parts) < 2 {
		return time.Time{}, &InvalidDateError{Input: raw, Reason: "month or year missing"}
	}

	month, ok := months[parts[0]]
	if !ok {
		return time.Time{}, &UnknownMonthError{Month: parts[0], Input: raw}
	}

	year, err := strconv.Atoi(parts[1])
	if err != nil || year < minYear || year > maxYear {
		return time.Time{}, &InvalidDateError{Input: raw, Reason: fmt.Sprintf("year must be a number between %d and %d", minYear, maxYear)}
	}

	t := time.Date(year, month, day, 12, 0, 0, 0, time.UTC)
	if t.Day() != day {
		return time.Time{}, &InvalidDateError{Input: raw, Reason: fmt.Sprintf("%s %d has no day %d", month, year, day)}
	}

	return t, nil
}

// FormatDate renders the calendar day of t, in t's own zone, in the
// changelog format, e.g. "03. June 2024". ParseDate reads it back.
func FormatDate(t time.Time) string {
	return fmt.Sprintf("%02d. %s %d", t.Day(), t.Month(), t.Year())
}

// FormatTimestamp renders t in UTC using TimestampLayout.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}
