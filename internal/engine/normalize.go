package engine

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// Field normalization: total functions turning raw heterogeneous cell text
// into typed values. None of them ever fail loudly; an unparseable value is
// simply absent, which the compliance checks treat as a gap, not an error.

// dateLayouts are the accepted calendar formats, tried in order.
var dateLayouts = []string{"02-01-2006", "02/01/2006", "2006-01-02"}

// serialEpoch is the classic spreadsheet date origin (day 0 = 1899-12-30),
// so exported sheets that render dates as day serials still parse.
var serialEpoch = time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)

// CleanText normalizes a raw cell to display text: numeric-missing
// sentinels and the literal strings "nan"/"none" collapse to empty.
func CleanText(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "nan", "none":
		return ""
	}
	return raw
}

// ParseDate parses a cell as a calendar date. It accepts the supported
// text layouts or a spreadsheet day serial, and reports ok=false when
// neither matches. Returned dates are UTC midnights.
func ParseDate(raw string) (time.Time, bool) {
	s := strings.TrimSpace(CleanText(raw))
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if d, err := time.Parse(layout, s); err == nil {
			return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC), true
		}
	}
	if serial, err := strconv.ParseFloat(s, 64); err == nil {
		return serialEpoch.AddDate(0, 0, int(math.Floor(serial))), true
	}
	return time.Time{}, false
}

// ParseFloat parses a cell as a decimal number, reporting ok=false on
// anything non-numeric.
func ParseFloat(raw string) (float64, bool) {
	f, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(f) {
		return 0, false
	}
	return f, true
}

// isYes reports whether a cell is ticked compliant: exactly "Y" after
// trimming and upper-casing, nothing else.
func isYes(raw string) bool {
	return strings.ToUpper(strings.TrimSpace(raw)) == "Y"
}

// isBlank reports whether a cell is empty after normalization.
func isBlank(raw string) bool {
	return strings.TrimSpace(CleanText(raw)) == ""
}

// civil truncates a reference time to its UTC calendar date so all interval
// arithmetic within a batch runs on whole days.
func civil(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// daysBetween returns the whole days from a to b. Both arguments must be
// UTC midnights, which every date in the engine is.
func daysBetween(a, b time.Time) int {
	return int(b.Sub(a) / (24 * time.Hour))
}

// formatTonnes renders an SWL value for messages without trailing zeros.
func formatTonnes(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
