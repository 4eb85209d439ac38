// Package types implements special types for the budgeting backend.
package types

import (
	"fmt"
	"time"
)

// Month is a month in a specific year.
type Month time.Time

// shortNames are the abbreviated month names shown in the dashboard trend.
var shortNames = [12]string{"Ene", "Feb", "Mar", "Abr", "May", "Jun", "Jul", "Ago", "Sep", "Oct", "Nov", "Dic"}

// NewMonth returns a new Month.
func NewMonth(year int, month time.Month) Month {
	return Month(time.Date(year, month, 1, 0, 0, 0, 0, time.UTC))
}

// NormalizeMonth returns the Month for a month number that may be outside
// of 1 to 12. Months are carried into adjacent years, month 0 is December
// of the previous year and month 13 is January of the next year.
func NormalizeMonth(year, month int) Month {
	for month <= 0 {
		month += 12
		year--
	}

	for month > 12 {
		month -= 12
		year++
	}

	return NewMonth(year, time.Month(month))
}

// MonthOf returns the Month in which a time occurs in that time's location.
func MonthOf(t time.Time) Month {
	year, month, _ := t.Date()
	return Month(time.Date(year, month, 1, 0, 0, 0, 0, t.Location()))
}

// String returns the time formatted as YYYY-MM.
func (m Month) String() string {
	return fmt.Sprintf("%04d-%02d", time.Time(m).Year(), time.Time(m).Month())
}

// Year returns the year of the month.
func (m Month) Year() int {
	return time.Time(m).Year()
}

// Month returns the number of the month in its year.
func (m Month) Month() time.Month {
	return time.Time(m).Month()
}

// ShortName returns the abbreviated Spanish name of the month, e.g. "Ene".
func (m Month) ShortName() string {
	return shortNames[m.Month()-1]
}

// AddDate adds a specified amount of years and months.
func (m Month) AddDate(years, months int) Month {
	return Month(time.Time(m).AddDate(years, months, 0))
}

// Window returns the first and the last instant of the month.
//
// The last instant is one second before the next month starts, which
// is the resolution dates are compared with.
func (m Month) Window() (time.Time, time.Time) {
	start := time.Time(m)
	return start, start.AddDate(0, 1, 0).Add(-time.Second)
}

// Equal reports whether m and n represent the same month.
func (m Month) Equal(n Month) bool {
	return time.Time(m).Equal(time.Time(n))
}

// Contains reports whether the time instant is in the month.
func (m Month) Contains(t time.Time) bool {
	return t.Year() == time.Time(m).Year() && t.Month() == time.Time(m).Month()
}
