// Package dateparse normalizes the heterogeneous date strings that arrive on
// uncontrolled upstream feeds. Parsing is intentionally permissive: strategies
// are tried in a fixed precedence order and total failure means "unknown
// date", never an error.
package dateparse

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// layouts are tried first, most specific and least ambiguous first.
var layouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.000Z",
	"2006-01-02T15:04:05Z",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"2006/01/02",
	time.RFC1123Z,
	time.RFC1123,
	time.RFC822Z,
	time.RFC822,
	"01/02/2006 15:04:05",
	"01/02/2006",
	"January 2, 2006",
	"Jan 2, 2006",
	"2 January 2006",
	"2 Jan 2006",
}

var (
	ymdPattern = regexp.MustCompile(`(\d{4})[-/.](\d{1,2})[-/.](\d{1,2})`)
	dmyPattern = regexp.MustCompile(`(\d{1,2})[-/.](\d{1,2})[-/.](\d{4})`)
	epochOnly  = regexp.MustCompile(`^\d{10}(\d{3})?$`)
)

// Normalize parses an arbitrary date/time string. The second return value is
// false when no strategy could extract a calendar date; callers treat that as
// an absent value, not an error.
//
// Precedence: explicit layouts, Unix epoch, then regex extraction of a
// year-month-day triple. Ambiguous numeric dates (two small fields and a
// four-digit year) are read US-style (month/day/year) before day/month/year.
func Normalize(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}

	if t, ok := parseLayouts(s); ok {
		return t, true
	}
	if t, ok := parseEpoch(s); ok {
		return t, true
	}
	return parseTriple(s)
}

func parseLayouts(s string) (time.Time, bool) {
	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}

// parseEpoch accepts 10-digit second and 13-digit millisecond timestamps.
func parseEpoch(s string) (time.Time, bool) {
	if !epochOnly.MatchString(s) {
		return time.Time{}, false
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return time.Time{}, false
	}
	if len(s) == 13 {
		return time.UnixMilli(n).UTC(), true
	}
	return time.Unix(n, 0).UTC(), true
}

// parseTriple is the last-resort regex extraction of a year-month-day triple.
func parseTriple(s string) (time.Time, bool) {
	if m := ymdPattern.FindStringSubmatch(s); m != nil {
		if t, ok := buildDate(atoi(m[1]), atoi(m[2]), atoi(m[3])); ok {
			return t, true
		}
	}
	if m := dmyPattern.FindStringSubmatch(s); m != nil {
		a, b, year := atoi(m[1]), atoi(m[2]), atoi(m[3])
		// US ordering first: a=month, b=day.
		if t, ok := buildDate(year, a, b); ok {
			return t, true
		}
		if t, ok := buildDate(year, b, a); ok {
			return t, true
		}
	}
	return time.Time{}, false
}

// buildDate rejects out-of-range components instead of letting time.Date
// normalize them (Feb 30 must not become Mar 2).
func buildDate(year, month, day int) (time.Time, bool) {
	if year < 1000 || month < 1 || month > 12 || day < 1 || day > 31 {
		return time.Time{}, false
	}
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if t.Year() != year || t.Month() != time.Month(month) || t.Day() != day {
		return time.Time{}, false
	}
	return t, true
}

func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}
