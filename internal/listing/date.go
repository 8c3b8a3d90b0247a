package listing

import (
	"strings"
	"time"
)

// dateFormats covers the date spellings seen across dataset releases and
// source pages: ISO dates from the backend scraper, dd-mm-yyyy from the
// Boletín table, dd/mm/yyyy from the publication PDFs.
var dateFormats = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	"02-01-2006 15:04",
	"02-01-2006",
	"02/01/2006 15:04",
	"02/01/2006",
}

// ParseDate attempts to parse date text into a time.Time in UTC.
// Returns time.Time{} (zero value) if parsing fails.
func ParseDate(text string) time.Time {
	text = strings.TrimSpace(text)
	if text == "" {
		return time.Time{}
	}

	for _, format := range dateFormats {
		t, err := time.Parse(format, text)
		if err == nil {
			return t.UTC()
		}
	}

	return time.Time{}
}

// FormatDate renders t the way dataset files store dates: YYYY-MM-DD,
// with an " HH:MM" suffix when the time of day is known.
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	if t.Hour() == 0 && t.Minute() == 0 {
		return t.Format("2006-01-02")
	}
	return t.Format("2006-01-02 15:04")
}

// RemateTime returns the auction date of the listing, falling back to the
// publication date when the auction date is missing or unparseable.
func (l *Listing) RemateTime() time.Time {
	if t := ParseDate(l.FechaRemate); !t.IsZero() {
		return t
	}
	return l.PublishedTime()
}

// PublishedTime returns the publication date, or the zero time.
func (l *Listing) PublishedTime() time.Time {
	return ParseDate(l.FechaPublicacion)
}
