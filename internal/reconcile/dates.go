package reconcile

import (
	"regexp"
	"strings"
	"time"
)

var (
	isoDatePrefixRe = regexp.MustCompile(`^(\d{4})-(\d{2})-(\d{2})`)
	dateRangeRe     = regexp.MustCompile(`([A-Z][a-z]+\s+\d{1,2})\s*[-–]\s*(\d{1,2}),\s*(\d{4})`)
	singleDateRe    = regexp.MustCompile(`([A-Z][a-z]+\s+\d{1,2},\s*\d{4})`)
)

// Display-date layouts commonly seen on event pages.
var dateLayouts = []string{
	"January 2, 2006",
	"Jan 2, 2006",
	"January 2 2006",
	"Jan 2 2006",
	"2 January 2006",
	"2 Jan 2006",
	"01/02/2006",
	time.RFC1123,
}

// ParseISODate normalizes a date string to YYYY-MM-DD, or returns "" when
// the value cannot be read as a date.
func ParseISODate(value string) string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return ""
	}

	if m := isoDatePrefixRe.FindStringSubmatch(trimmed); m != nil {
		return m[1] + "-" + m[2] + "-" + m[3]
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, trimmed); err == nil {
			return t.Format("2006-01-02")
		}
	}
	return ""
}

// extractDatesFromText hunts for event dates in free page text: first a
// month-day–day range ("March 15-17, 2026"), then a single month-day-year.
func extractDatesFromText(text string) (startDate, endDate string) {
	if text == "" {
		return "", ""
	}

	if m := dateRangeRe.FindStringSubmatch(text); m != nil {
		month := strings.Fields(m[1])[0]
		start := ParseISODate(m[1] + ", " + m[3])
		end := ParseISODate(month + " " + m[2] + ", " + m[3])
		return start, end
	}

	if m := singleDateRe.FindStringSubmatch(text); m != nil {
		d := ParseISODate(m[1])
		return d, d
	}

	return "", ""
}
