package calendar

import (
	"time"
)

// isoDay identifies a day by ISO week number and ISO weekday (Monday = 1).
type isoDay struct {
	week    int
	weekday int
}

// nyseHolidays2023 lists the NYSE market holidays published for 2023. Keyed by
// ISO week so the table approximately carries over to other years.
var nyseHolidays2023 = map[isoDay]string{
	{1, 1}:  "New Year's Day (observed)",
	{3, 1}:  "Martin Luther King Jr. Day",
	{8, 1}:  "Washington's Birthday",
	{14, 5}: "Good Friday",
	{22, 1}: "Memorial Day",
	{25, 1}: "Juneteenth",
	{27, 2}: "Independence Day",
	{36, 1}: "Labor Day",
	{47, 4}: "Thanksgiving Day",
	{52, 1}: "Christmas Day (observed)",
}

func isoWeekday(date time.Time) int {
	wd := int(date.Weekday())
	if wd == 0 {
		return 7
	}
	return wd
}

func isoWeek(date time.Time) int {
	_, week := date.ISOWeek()
	return week
}

// EveryDay fires on every date.
func EveryDay(time.Time) bool { return true }

// Never fires on no date.
func Never(time.Time) bool { return false }

// FridayBiweekly models a biweekly payday: Fridays in even ISO weeks.
func FridayBiweekly(date time.Time) bool {
	return isoWeek(date)%2 == 0 && date.Weekday() == time.Friday
}

// MondayBiweekly fires on Mondays in even ISO weeks.
func MondayBiweekly(date time.Time) bool {
	return isoWeek(date)%2 == 0 && date.Weekday() == time.Monday
}

// FirstOfMonth fires on the first day of every month.
func FirstOfMonth(date time.Time) bool {
	return date.Day() == 1
}

// FirstOfYear fires on 1 January.
func FirstOfYear(date time.Time) bool {
	return date.YearDay() == 1
}

// MonthlyOn returns a predicate firing on the given day of every month. Months
// shorter than day are skipped.
func MonthlyOn(day int) Predicate {
	return func(date time.Time) bool {
		return date.Day() == day
	}
}

// Semiannual fires on the Thursday of ISO weeks 1 and 27.
func Semiannual(date time.Time) bool {
	week := isoWeek(date)
	return (week == 1 || week == 27) && isoWeekday(date) == 4
}

// Quarterly fires on the Friday of every ISO week divisible by 16.
func Quarterly(date time.Time) bool {
	return isoWeek(date)%16 == 0 && isoWeekday(date) == 5
}

// Annual fires once a year on the Monday of ISO week 52.
func Annual(date time.Time) bool {
	return isoWeek(date) == 52 && isoWeekday(date) == 1
}

// AnnualInMay fires once a year on the Thursday of ISO week 20.
func AnnualInMay(date time.Time) bool {
	return isoWeek(date) == 20 && isoWeekday(date) == 4
}

// TradingDay fires on weekdays that are not NYSE holidays. The holiday table is
// exact for 2023 and an approximation for every other year.
func TradingDay(date time.Time) bool {
	if isoWeekday(date) > 5 {
		return false
	}
	_, holiday := Holiday(date)
	return !holiday
}

// Holiday returns the name of the market holiday falling on date, if any.
func Holiday(date time.Time) (string, bool) {
	name, ok := nyseHolidays2023[isoDay{isoWeek(date), isoWeekday(date)}]
	return name, ok
}
