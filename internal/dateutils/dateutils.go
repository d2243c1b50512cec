// Package dateutils provides the date parsing and formatting used for statement data.
package dateutils

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// Date layouts
const (
	DateLayoutISO      = "2006-01-02"
	DateLayoutEuropean = "02.01.2006"
	DateLayoutIndian   = "02/01/2006"
	DateLayoutUS       = "01/02/2006"
	DateLayoutFull     = "2006-01-02 15:04:05"
	DateLayoutDisplay  = "Jan 2, 2006"
	DateLayoutShort    = "Jan 2"
)

// ImportFormats are tried in order when reading dates from user-supplied files.
// Day-first layouts come before the US layout.
var ImportFormats = []string{
	DateLayoutISO,
	DateLayoutFull,
	DateLayoutISO + "T15:04:05Z07:00",
	DateLayoutEuropean,
	DateLayoutIndian,
	"02-01-2006",
	"2006/01/02",
	"02 Jan 2006",
	"2 Jan 2006",
	"Jan 2, 2006",
	"January 2, 2006",
	DateLayoutUS,
}

var whitespace = regexp.MustCompile(`\s+`)

// CleanDateString trims and collapses whitespace.
func CleanDateString(dateStr string) string {
	return whitespace.ReplaceAllString(strings.TrimSpace(dateStr), " ")
}

// ParseISODate parses a strict YYYY-MM-DD calendar date.
func ParseISODate(dateStr string) (time.Time, error) {
	t, err := time.Parse(DateLayoutISO, strings.TrimSpace(dateStr))
	if err != nil {
		return time.Time{}, fmt.Errorf("unable to parse date %q: expected YYYY-MM-DD", dateStr)
	}
	return t, nil
}

// ParseDate parses dateStr with the first matching ImportFormats layout and
// truncates it to a calendar date.
func ParseDate(dateStr string) (time.Time, error) {
	cleaned := CleanDateString(dateStr)
	if cleaned == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}
	for _, format := range ImportFormats {
		if t, err := time.Parse(format, cleaned); err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
		}
	}
	return time.Time{}, fmt.Errorf("unable to parse date: %s", dateStr)
}

// ToISODate formats a date as YYYY-MM-DD.
func ToISODate(date time.Time) string {
	return date.Format(DateLayoutISO)
}

// FormatISO reformats a YYYY-MM-DD key with layout, returning the key
// unchanged when it is not a valid date (e.g. "N/A").
func FormatISO(key, layout string) string {
	t, err := time.Parse(DateLayoutISO, key)
	if err != nil {
		return key
	}
	return t.Format(layout)
}

// CompareDates compares the calendar days of two times:
//
//	-1 if date1 is before date2
//	 0 if they fall on the same day
//	 1 if date1 is after date2
func CompareDates(date1, date2 time.Time) int {
	date1 = time.Date(date1.Year(), date1.Month(), date1.Day(), 0, 0, 0, 0, time.UTC)
	date2 = time.Date(date2.Year(), date2.Month(), date2.Day(), 0, 0, 0, 0, time.UTC)

	switch {
	case date1.Before(date2):
		return -1
	case date1.After(date2):
		return 1
	default:
		return 0
	}
}

// Span returns the earliest and latest of dates. ok is false for an empty slice.
func Span(dates []time.Time) (first, last time.Time, ok bool) {
	if len(dates) == 0 {
		return time.Time{}, time.Time{}, false
	}
	first, last = dates[0], dates[0]
	for _, d := range dates[1:] {
		if CompareDates(d, first) < 0 {
			first = d
		}
		if CompareDates(d, last) > 0 {
			last = d
		}
	}
	return first, last, true
}
