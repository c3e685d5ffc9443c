package record

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Date is a publication date with optional month and day.
type Date struct {
	Year  int `json:"year"`
	Month int `json:"month,omitempty"` // 1-12, 0 if unknown
	Day   int `json:"day,omitempty"`   // 1-31, 0 if unknown
}

// monthNames maps BibTeX month names and abbreviations to month numbers.
var monthNames = map[string]int{
	"january": 1, "jan": 1,
	"february": 2, "feb": 2,
	"march": 3, "mar": 3,
	"april": 4, "apr": 4,
	"may": 5,
	"june": 6, "jun": 6,
	"july": 7, "jul": 7,
	"august": 8, "aug": 8,
	"september": 9, "sep": 9, "sept": 9,
	"october": 10, "oct": 10,
	"november": 11, "nov": 11,
	"december": 12, "dec": 12,
}

// ResolveDate resolves the publication date of a record from its year,
// month and day fields. A zero Date means no resolvable year.
func ResolveDate(r Record) Date {
	d := Date{Year: r.Year()}
	if d.Year == 0 {
		return Date{}
	}

	d.Month = parseMonth(r.Field("month"))
	if d.Month == 0 {
		return d
	}

	if day, err := strconv.Atoi(strings.TrimSpace(r.Field("day"))); err == nil && day >= 1 && day <= 31 {
		d.Day = day
	}
	return d
}

func parseMonth(field string) int {
	field = strings.ToLower(strings.TrimSpace(field))
	if field == "" {
		return 0
	}
	if m, ok := monthNames[field]; ok {
		return m
	}
	if m, err := strconv.Atoi(field); err == nil && m >= 1 && m <= 12 {
		return m
	}
	return 0
}

// IsZero reports whether no year could be resolved.
func (d Date) IsZero() bool {
	return d.Year == 0
}

// SortKey returns the comparison time for chronological ordering.
// Unknown month and day are padded to January 1; the padding never
// appears in output, only in comparisons.
func (d Date) SortKey() time.Time {
	month, day := d.Month, d.Day
	if month == 0 {
		month = 1
	}
	if day == 0 {
		day = 1
	}
	return time.Date(d.Year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
}

// String renders the date at its known precision: "2020", "2020-03",
// or "2020-03-15". The zero date renders as "".
func (d Date) String() string {
	switch {
	case d.Year == 0:
		return ""
	case d.Month == 0:
		return strconv.Itoa(d.Year)
	case d.Day == 0:
		return fmt.Sprintf("%04d-%02d", d.Year, d.Month)
	default:
		return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
	}
}
