package domain

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// timeSuffix matches an optional time of day and zone after an ISO date.
const timeSuffix = `(?:[T ]\d{1,2}:\d{2}(?::\d{2}(?:\.\d+)?)?(?:Z|[+-]\d{2}:?\d{2})?)?`

var (
	isoDatePattern  = regexp.MustCompile(`^(\d{4})(?:-(\d{1,2})-(\d{1,2})|/(\d{1,2})/(\d{1,2})|\.(\d{1,2})\.(\d{1,2}))` + timeSuffix + `$`)
	usDatePattern   = regexp.MustCompile(`^(\d{1,2})/(\d{1,2})/(\d{4})$`)
	wordDateLayouts = []string{
		"January 2, 2006",
		"Jan 2, 2006",
		"January 2 2006",
		"Jan 2 2006",
		"2 January 2006",
		"2 Jan 2006",
	}
)

// NormalizeDate returns input as a zero-padded YYYY-MM-DD calendar date, or
// "" when it cannot be parsed. Only calendar components are read; a time of
// day or zone suffix is ignored, so the date never shifts across zones.
func NormalizeDate(input string) string {
	input = strings.TrimSpace(input)
	if input == "" {
		return ""
	}

	if m := isoDatePattern.FindStringSubmatch(input); m != nil {
		// one month/day pair matches, per separator
		for i := 2; i < len(m); i += 2 {
			if m[i] != "" {
				return formatCalendarDate(m[1], m[i], m[i+1])
			}
		}
	}
	if m := usDatePattern.FindStringSubmatch(input); m != nil {
		return formatCalendarDate(m[3], m[1], m[2])
	}
	for _, layout := range wordDateLayouts {
		// time.Parse without a zone yields UTC; only Y/M/D are kept.
		if t, err := time.Parse(layout, input); err == nil {
			return dateOf(t)
		}
	}
	return ""
}

func formatCalendarDate(year, month, day string) string {
	y, err := strconv.Atoi(year)
	if err != nil || y < 1 || y > 9999 {
		return ""
	}
	m, err := strconv.Atoi(month)
	if err != nil || m < 1 || m > 12 {
		return ""
	}
	d, err := strconv.Atoi(day)
	if err != nil || d < 1 || d > daysIn(time.Month(m), y) {
		return ""
	}
	return fmt.Sprintf("%04d-%02d-%02d", y, m, d)
}

func daysIn(month time.Month, year int) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// dateOf formats the calendar date of t in t's own location.
func dateOf(t time.Time) string {
	return fmt.Sprintf("%04d-%02d-%02d", t.Year(), int(t.Month()), t.Day())
}
