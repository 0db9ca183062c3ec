package dates

import (
	"regexp"
	"strings"
	"time"
)

var (
	exactYear = regexp.MustCompile(`^\d{4}$`)
	yearRun   = regexp.MustCompile(`\d{4}`)
)

// ExtractYear returns s when it is exactly a 4-digit token, otherwise the
// first run of four digits inside s, otherwise "".
func ExtractYear(s string) string {
	s = strings.TrimSpace(s)
	if exactYear.MatchString(s) {
		return s
	}
	return yearRun.FindString(s)
}

// monthsPT are the ABNT month abbreviations, indexed by month number - 1.
var monthsPT = [12]string{"jan.", "fev.", "mar.", "abr.", "mai.", "jun.", "jul.", "ago.", "set.", "out.", "nov.", "dez."}

// MonthPT returns the Portuguese abbreviation for a month, or "" when out of range.
func MonthPT(m time.Month) string {
	if m < time.January || m > time.December {
		return ""
	}
	return monthsPT[m-1]
}

var layouts = []string{"2006-01-02", time.RFC3339, "2006-01-02T15:04:05", "02/01/2006", "2006/01/02"}

// Parse reads a date in one of the accepted layouts.
func Parse(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, l := range layouts {
		if t, err := time.Parse(l, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// FormatABNT renders a date as "DD mon. YYYY" (e.g. "05 mai. 2024").
// Unparseable input is returned trimmed and unchanged.
func FormatABNT(s string) string {
	t, ok := Parse(s)
	if !ok {
		return strings.TrimSpace(s)
	}
	return FormatTimeABNT(t)
}

// FormatTimeABNT renders t as "DD mon. YYYY".
func FormatTimeABNT(t time.Time) string {
	return t.Format("02") + " " + MonthPT(t.Month()) + " " + t.Format("2006")
}

// ISO returns t as YYYY-MM-DD in UTC.
func ISO(t time.Time) string { return t.UTC().Format("2006-01-02") }
