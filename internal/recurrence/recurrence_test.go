package recurrence

import (
	"testing"
	"time"

	"cashplan/internal/models"
	"cashplan/internal/testutil"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func intPtr(v int) *int { return &v }

func TestNext(t *testing.T) {
	tests := []struct {
		name      string
		anchor    time.Time
		frequency models.Frequency
		custom    *int
		want      time.Time
	}{
		{"daily", date(2024, 1, 31), models.FrequencyDaily, nil, date(2024, 2, 1)},
		{"weekly", date(2024, 12, 28), models.FrequencyWeekly, nil, date(2025, 1, 4)},
		{"biweekly", date(2024, 2, 20), models.FrequencyBiweekly, nil, date(2024, 3, 5)},
		{"monthly", date(2024, 1, 15), models.FrequencyMonthly, nil, date(2024, 2, 15)},
		{"monthly_clamps_leap_year", date(2024, 1, 31), models.FrequencyMonthly, nil, date(2024, 2, 29)},
		{"monthly_clamps_common_year", date(2023, 1, 31), models.FrequencyMonthly, nil, date(2023, 2, 28)},
		{"monthly_clamps_thirty_day_month", date(2024, 3, 31), models.FrequencyMonthly, nil, date(2024, 4, 30)},
		{"monthly_year_rollover", date(2024, 12, 31), models.FrequencyMonthly, nil, date(2025, 1, 31)},
		{"quarterly", date(2024, 1, 1), models.FrequencyQuarterly, nil, date(2024, 4, 1)},
		{"quarterly_clamps", date(2024, 11, 30), models.FrequencyQuarterly, nil, date(2025, 2, 28)},
		{"semi_annually", date(2024, 8, 31), models.FrequencySemiAnnually, nil, date(2025, 2, 28)},
		{"annually", date(2024, 6, 1), models.FrequencyAnnually, nil, date(2025, 6, 1)},
		{"annually_leap_day_clamps", date(2024, 2, 29), models.FrequencyAnnually, nil, date(2025, 2, 28)},
		{"custom_interval", date(2024, 1, 1), models.FrequencyCustom, intPtr(10), date(2024, 1, 11)},
		{"custom_defaults_to_one_day", date(2024, 1, 1), models.FrequencyCustom, nil, date(2024, 1, 2)},
		{"custom_non_positive_defaults_to_one_day", date(2024, 1, 1), models.FrequencyCustom, intPtr(0), date(2024, 1, 2)},
		{"custom_interval_ignored_for_monthly", date(2024, 1, 1), models.FrequencyMonthly, intPtr(10), date(2024, 2, 1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Next(tt.anchor, tt.frequency, tt.custom)
			testutil.AssertNoError(t, err)
			if !got.Equal(tt.want) {
				t.Errorf("expected %s, got %s", tt.want.Format(time.DateOnly), got.Format(time.DateOnly))
			}
		})
	}
}

func TestNextIgnoresTimeOfDay(t *testing.T) {
	anchor := time.Date(2024, 5, 10, 18, 45, 0, 0, time.UTC)

	got, err := Next(anchor, models.FrequencyDaily, nil)
	testutil.AssertNoError(t, err)

	if !got.Equal(date(2024, 5, 11)) {
		t.Errorf("expected 2024-05-11 00:00 UTC, got %s", got)
	}
}

func TestNextInvalidFrequency(t *testing.T) {
	_, err := Next(date(2024, 1, 1), models.Frequency("fortnightly"), nil)
	testutil.AssertAppError(t, err, "INVALID_FREQUENCY")
}

func TestNextAlwaysAdvances(t *testing.T) {
	anchor := date(2024, 1, 31)
	for _, f := range models.Frequencies {
		got, err := Next(anchor, f, nil)
		testutil.AssertNoError(t, err)
		if !got.After(anchor) {
			t.Errorf("%s: expected a date after %s, got %s", f, anchor.Format(time.DateOnly), got.Format(time.DateOnly))
		}
	}
}

func TestAddMonths(t *testing.T) {
	t.Run("negative_months", func(t *testing.T) {
		got := AddMonths(date(2024, 3, 31), -1)
		if !got.Equal(date(2024, 2, 29)) {
			t.Errorf("expected 2024-02-29, got %s", got.Format(time.DateOnly))
		}
	})

	t.Run("clamp_does_not_carry_over", func(t *testing.T) {
		// Jan 31 -> Feb 29 -> Mar 29: each step anchors on the previous date.
		feb := AddMonths(date(2024, 1, 31), 1)
		mar := AddMonths(feb, 1)
		if !mar.Equal(date(2024, 3, 29)) {
			t.Errorf("expected 2024-03-29, got %s", mar.Format(time.DateOnly))
		}
	})
}

func TestDateOnly(t *testing.T) {
	loc := time.FixedZone("UTC+8", 8*60*60)
	got := DateOnly(time.Date(2024, 7, 4, 23, 30, 0, 0, loc))
	if !got.Equal(date(2024, 7, 4)) {
		t.Errorf("expected 2024-07-04 UTC, got %s", got)
	}
}
