// Package recurring holds the calendar math behind recurring transactions
// and the budget monitor: advancing a due date by an interval, deciding
// whether a template is due, and UTC month boundaries.
package recurring

import (
	"fmt"
	"time"

	"github.com/finexa/finexa-server/internal/domain"
)

// Advance returns the next occurrence after date for the given interval.
// Month and year steps use calendar arithmetic with Go's normalization, so
// Jan 31 + 1 month lands on Mar 3 (Mar 2 in leap years) rather than clamping.
// An unknown interval is a configuration error, never a silent pass-through.
func Advance(date time.Time, interval domain.RecurringInterval) (time.Time, error) {
	switch interval {
	case domain.IntervalDaily:
		return date.AddDate(0, 0, 1), nil
	case domain.IntervalWeekly:
		return date.AddDate(0, 0, 7), nil
	case domain.IntervalMonthly:
		return date.AddDate(0, 1, 0), nil
	case domain.IntervalYearly:
		return date.AddDate(1, 0, 0), nil
	default:
		return time.Time{}, fmt.Errorf("unknown recurring interval: %q", interval)
	}
}

// IsDue reports whether a recurring template should be processed now.
// A template that has never been processed is due immediately; afterwards
// its NextRecurringDate governs.
func IsDue(tx *domain.Transaction, now time.Time) bool {
	if !tx.IsRecurring {
		return false
	}
	if tx.LastProcessed == nil {
		return true
	}
	if tx.NextRecurringDate == nil {
		return false
	}
	return !tx.NextRecurringDate.After(now)
}

// MonthStart returns midnight UTC on the first of t's month. All calendar
// windows in the sweeps use UTC so the month gate and the month-to-date sum
// agree on where a month begins.
func MonthStart(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// PreviousMonth returns the start and end (inclusive) of the UTC month
// before t's month.
func PreviousMonth(t time.Time) (time.Time, time.Time) {
	start := MonthStart(t).AddDate(0, -1, 0)
	end := MonthStart(t).Add(-time.Nanosecond)
	return start, end
}

// SameMonth reports whether a and b fall in the same UTC calendar month.
func SameMonth(a, b time.Time) bool {
	a, b = a.UTC(), b.UTC()
	return a.Year() == b.Year() && a.Month() == b.Month()
}
