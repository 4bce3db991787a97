package changelog

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate_Valid(t *testing.T) {
	tests := []struct {
		input  string
		expect string
	}{
		{"29. December 2025", "2025-12-29T12:00:00.000Z"},
		{"11.November 2021", "2021-11-11T12:00:00.000Z"},
		{"3.June 2024", "2024-06-03T12:00:00.000Z"},
		{"  1. January 1970  ", "1970-01-01T12:00:00.000Z"},
		{"29. February 2024", "2024-02-29T12:00:00.000Z"},
		{"31. May 9999 extra tokens", "9999-05-31T12:00:00.000Z"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseDate(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expect, FormatTimestamp(got))
			assert.Equal(t, time.UTC, got.Location())
			assert.Equal(t, 12, got.Hour())
		})
	}
}

func TestParseDate_UnknownMonth(t *testing.T) {
	for _, input := range []string{"29. Decemberr 2025", "29. december 2025", "1. Dec 2020"} {
		t.Run(input, func(t *testing.T) {
			_, err := ParseDate(input)
			var monthErr *UnknownMonthError
			require.ErrorAs(t, err, &monthErr)
		})
	}
}

func TestParseDate_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"missing dot", "29 December 2025"},
		{"day too large", "35. December 2025"},
		{"day zero", "0. December 2025"},
		{"day not a number", "x. December 2025"},
		{"year zero", "29. December 0"},
		{"year before 1970", "29. December 1969"},
		{"year not a number", "29. December twenty"},
		{"missing year", "29. December"},
		{"empty", ""},
		{"no such day in month", "31. February 2024"},
		{"no leap day", "29. February 2023"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseDate(tt.input)
			var dateErr *InvalidDateError
			require.ErrorAs(t, err, &dateErr)
		})
	}
}

func TestFormatTimestamp_ConvertsToUTC(t *testing.T) {
	cet := time.FixedZone("CET", 3600)
	ts := time.Date(2024, time.January, 14, 21, 40, 0, 0, cet)

	assert.Equal(t, "2024-01-14T20:40:00.000Z", FormatTimestamp(ts))
}

func TestFormatDate(t *testing.T) {
	tests := []struct {
		input  time.Time
		expect string
	}{
		{time.Date(2024, time.June, 3, 8, 0, 0, 0, time.UTC), "03. June 2024"},
		{time.Date(2025, time.December, 29, 23, 0, 0, 0, time.UTC), "29. December 2025"},
		// The day is taken in the timestamp's own zone.
		{time.Date(2025, time.December, 30, 0, 30, 0, 0, time.FixedZone("CET", 3600)), "30. December 2025"},
	}

	for _, tt := range tests {
		t.Run(tt.expect, func(t *testing.T) {
			got := FormatDate(tt.input)
			assert.Equal(t, tt.expect, got)

			parsed, err := ParseDate(got)
			require.NoError(t, err)
			assert.Equal(t, tt.input.Day(), parsed.Day())
		})
	}
}
