package render

import (
	"fmt"
	"html/template"
	"strings"
	"time"

	"editionapi/internal/platform/eventbrite"
)

// Pluralize renders a count with its noun: "1 event", "3 events".
func Pluralize(n int, word string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, word)
	}
	return fmt.Sprintf("%d %ss", n, word)
}

// FormatTimePeriod renders an event's start and end compactly, repeating
// only the date parts that differ. Both timestamps are naive provider-local
// strings interpreted in the event's timezone.
func FormatTimePeriod(startDate, endDate, timezone string) (string, error) {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return "", fmt.Errorf("loading timezone %q: %v", timezone, err)
	}

	st, err := time.ParseInLocation("2006-01-02 15:04:05", startDate, loc)
	if err != nil {
		return "", fmt.Errorf("parsing start %q: %v", startDate, err)
	}
	et, err := time.ParseInLocation("2006-01-02 15:04:05", endDate, loc)
	if err != nil {
		return "", fmt.Errorf("parsing end %q: %v", endDate, err)
	}

	switch {
	case st.Year() != et.Year():
		return st.Format("15:04 Mon, 2 Jan 2006") + " to " + et.Format("15:04 Mon, 2 Jan 2006 (MST)"), nil
	case st.Month() != et.Month() || st.Day() != et.Day():
		return st.Format("15:04 Mon, 2 Jan") + " to " + et.Format("15:04 Mon, 2 Jan 2006 (MST)"), nil
	default:
		return st.Format("15:04") + " to " + et.Format("15:04, Mon, 2 Jan 2006 (MST)"), nil
	}
}

// FormatAddress renders a venue as <br />-separated lines in a fixed order,
// skipping blanks. Each line is escaped before the markup is assembled.
func FormatAddress(v *eventbrite.Venue) template.HTML {
	if v == nil {
		return ""
	}

	var lines []string
	for _, part := range []string{v.Name, v.Address, v.Address2, v.City, v.PostalCode} {
		if part != "" {
			lines = append(lines, template.HTMLEscapeString(part))
		}
	}
	return template.HTML(strings.Join(lines, "<br />"))
}

// FormatURL shortens an event URL for print: the provider's tracking
// parameter and the scheme just waste space on paper.
func FormatURL(u string) string {
	u = strings.Replace(u, "?ref=ebapi", "", 1)
	return strings.TrimPrefix(u, "http://")
}
