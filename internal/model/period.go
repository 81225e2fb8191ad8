package model

import "time"

// Period scopes report and statistics queries.
type Period string

// Reporting periods.
const (
	PeriodDay   Period = "day"
	PeriodWeek  Period = "week"
	PeriodMonth Period = "month"
	PeriodYear  Period = "year"
	PeriodAll   Period = "all"
)

// Valid reports whether p is a known reporting period.
func (p Period) Valid() bool {
	switch p {
	case PeriodDay, PeriodWeek, PeriodMonth, PeriodYear, PeriodAll:
		return true
	}
	return false
}

// Range returns the [start, end] window for the period, ending at now.
// Weeks start on Monday; "all" starts at 2000-01-01.
func (p Period) Range(now time.Time) (time.Time, time.Time) {
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	var start time.Time
	switch p {
	case PeriodDay:
		start = midnight
	case PeriodWeek:
		weekday := int(now.Weekday())
		if weekday == 0 { // Sunday
			weekday = 7
		}
		start = midnight.AddDate(0, 0, -(weekday - 1))
	case PeriodMonth:
		start = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	case PeriodYear:
		start = time.Date(now.Year(), 1, 1, 0, 0, 0, 0, now.Location())
	default:
		start = time.Date(2000, 1, 1, 0, 0, 0, 0, now.Location())
	}

	return start, now
}

// BudgetPeriod is the recurrence window of a spending limit.
type BudgetPeriod string

// Budget periods.
const (
	BudgetWeekly  BudgetPeriod = "weekly"
	BudgetMonthly BudgetPeriod = "monthly"
)

// Valid reports whether p is a known budget period.
func (p BudgetPeriod) Valid() bool {
	return p == BudgetWeekly || p == BudgetMonthly
}
