package show

import (
	"regexp"
	"strings"
	"time"
)

// dateLayouts are tried in order. UK sources write dates day-first, so the
// numeric layouts here are day/month, not month/day.
var dateLayouts = []string{
	"2 January 2006",
	"2 Jan 2006",
	"02/01/2006",
	"02/01/06",
	"2.1.2006",
	"2.1.06",
	"2006-01-02",
	"Monday 2 January 2006",
}

var ordinalPattern = regexp.MustCompile(`(?i)(\d)(st|nd|rd|th)\b`)

// ParseDate attempts to parse free date text into a time.Time.
// Returns the zero time if parsing fails; callers treat a zero date as
// "unknown" rather than an error at this layer.
func ParseDate(dateText string) time.Time {
	dateText = strings.TrimSpace(dateText)
	if dateText == "" {
		return time.Time{}
	}

	// Strip ordinal suffixes: "15th January 2025" -> "15 January 2025"
	cleaned := ordinalPattern.ReplaceAllString(dateText, "$1")

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, cleaned); err == nil {
			return t
		}
	}

	return time.Time{}
}
