// Package recurrence computes the dates on which a recurring template falls due.
//
// All dates are calendar dates: Next and DateOnly work on UTC midnight values
// and ignore the time of day of their input.
package recurrence

import (
	"time"

	apperrors "cashplan/internal/errors"
	"cashplan/internal/models"
)

// DefaultCustomIntervalDays is used for custom frequencies without an interval.
const DefaultCustomIntervalDays = 1

// DateOnly truncates t to midnight UTC of its calendar date.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Next returns the occurrence that follows anchor for the given frequency.
// customIntervalDays is only read for models.FrequencyCustom.
func Next(anchor time.Time, frequency models.Frequency, customIntervalDays *int) (time.Time, error) {
	anchor = DateOnly(anchor)

	switch frequency {
	case models.FrequencyDaily:
		return anchor.AddDate(0, 0, 1), nil
	case models.FrequencyWeekly:
		return anchor.AddDate(0, 0, 7), nil
	case models.FrequencyBiweekly:
		return anchor.AddDate(0, 0, 14), nil
	case models.FrequencyMonthly:
		return AddMonths(anchor, 1), nil
	case models.FrequencyQuarterly:
		return AddMonths(anchor, 3), nil
	case models.FrequencySemiAnnually:
		return AddMonths(anchor, 6), nil
	case models.FrequencyAnnually:
		return AddMonths(anchor, 12), nil
	case models.FrequencyCustom:
		return anchor.AddDate(0, 0, customInterval(customIntervalDays)), nil
	}
	return time.Time{}, apperrors.WithResource(apperrors.ErrInvalidFrequency, string(frequency))
}

// AddMonths adds n calendar months to t, clamping the day to the last day of
// the target month: Jan 31 + 1 month is Feb 28 (Feb 29 in leap years).
func AddMonths(t time.Time, n int) time.Time {
	y, m, d := t.Date()
	first := time.Date(y, m+time.Month(n), 1, 0, 0, 0, 0, time.UTC)
	if last := daysIn(first.Year(), first.Month()); d > last {
		d = last
	}
	return time.Date(first.Year(), first.Month(), d, 0, 0, 0, 0, time.UTC)
}

func customInterval(days *int) int {
	if days == nil || *days < 1 {
		return DefaultCustomIntervalDays
	}
	return *days
}

func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
