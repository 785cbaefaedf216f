package calendar

import (
	"time"
)

// ReferenceYear is the calendar year probed when a model needs to know how many
// times a predicate fires per year. The trading-day holiday table is keyed to
// the same year.
const ReferenceYear = 2023

// DateFormat is the layout used for dates in configuration files and reports.
const DateFormat = "2006-01-02"

// Predicate reports whether a payment, return or transfer fires on a date.
// Predicates are pure and may be shared across accounts and runs.
type Predicate func(date time.Time) bool

// Fires reports whether p fires on date. A nil predicate never fires.
func (p Predicate) Fires(date time.Time) bool {
	return p != nil && p(date)
}

// Starting narrows p to dates strictly after start.
func (p Predicate) Starting(start time.Time) Predicate {
	start = Truncate(start)
	return func(date time.Time) bool {
		return p.Fires(date) && date.After(start)
	}
}

// Until narrows p to dates strictly before end.
func (p Predicate) Until(end time.Time) Predicate {
	end = Truncate(end)
	return func(date time.Time) bool {
		return p.Fires(date) && date.Before(end)
	}
}

// Between narrows p to the open interval (start, end).
func (p Predicate) Between(start, end time.Time) Predicate {
	return p.Starting(start).Until(end)
}

// Date returns midnight UTC of the given day.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// Truncate drops the clock and zone of t, keeping its calendar day.
func Truncate(t time.Time) time.Time {
	return Date(t.Year(), t.Month(), t.Day())
}

// NextDay advances a date by exactly one calendar day.
func NextDay(date time.Time) time.Time {
	return date.AddDate(0, 0, 1)
}

// AnnualOccurrences counts how often p fires in the 365 days starting on
// 1 January of ReferenceYear.
func AnnualOccurrences(p Predicate) int {
	count := 0
	day := Date(ReferenceYear, time.January, 1)
	for i := 0; i < 365; i++ {
		if p(day) {
			count++
		}
		day = NextDay(day)
	}
	return count
}

// AddYears returns the same calendar day n years later. 29 February rolls to
// 1 March in non-leap years.
func AddYears(date time.Time, n int) time.Time {
	return date.AddDate(n, 0, 0)
}

// Age returns the number of whole years between birth and date.
func Age(birth, date time.Time) int {
	age := date.Year() - birth.Year()
	if date.Month() < birth.Month() || (date.Month() == birth.Month() && date.Day() < birth.Day()) {
		age--
	}
	return age
}
