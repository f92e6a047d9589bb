package model

import (
	"fmt"
	"time"
)

// MonthKey identifies one Month Queue: the durable ordered collection of
// topic items for a single calendar month. It doubles as the name key for
// the backing sheet ("YYYY-MM").
type MonthKey struct {
	Year  int
	Month time.Month
}

// MonthKeyFor returns the MonthKey for the month containing t.
func MonthKeyFor(t time.Time) MonthKey {
	return MonthKey{Year: t.Year(), Month: t.Month()}
}

// SheetName returns the backing sheet name for this month, e.g. "2025-02".
func (k MonthKey) SheetName() string {
	return fmt.Sprintf("%04d-%02d", k.Year, int(k.Month))
}

// Days returns the number of calendar days in the month.
func (k MonthKey) Days() int {
	// Day 0 of the following month is the last day of this one.
	return time.Date(k.Year, k.Month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// Prev returns the key of the preceding calendar month.
func (k MonthKey) Prev() MonthKey {
	if k.Month == time.January {
		return MonthKey{Year: k.Year - 1, Month: time.December}
	}
	return MonthKey{Year: k.Year, Month: k.Month - 1}
}

// Next returns the key of the following calendar month.
func (k MonthKey) Next() MonthKey {
	if k.Month == time.December {
		return MonthKey{Year: k.Year + 1, Month: time.January}
	}
	return MonthKey{Year: k.Year, Month: k.Month + 1}
}

// IsLastDay reports whether day is the last calendar day of the month.
func (k MonthKey) IsLastDay(day int) bool {
	return day == k.Days()
}

// String implements fmt.Stringer.
func (k MonthKey) String() string {
	return k.SheetName()
}
