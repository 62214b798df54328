package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Frequency is how often a recurring template repeats.
type Frequency string

const (
	FrequencyDaily        Frequency = "daily"
	FrequencyWeekly       Frequency = "weekly"
	FrequencyBiweekly     Frequency = "biweekly"
	FrequencyMonthly      Frequency = "monthly"
	FrequencyQuarterly    Frequency = "quarterly"
	FrequencySemiAnnually Frequency = "semi_annually"
	FrequencyAnnually     Frequency = "annually"
	FrequencyCustom       Frequency = "custom"
)

// Frequencies lists every supported frequency.
var Frequencies = []Frequency{
	FrequencyDaily,
	FrequencyWeekly,
	FrequencyBiweekly,
	FrequencyMonthly,
	FrequencyQuarterly,
	FrequencySemiAnnually,
	FrequencyAnnually,
	FrequencyCustom,
}

// Valid reports whether f is a supported frequency.
func (f Frequency) Valid() bool {
	for _, known := range Frequencies {
		if f == known {
			return true
		}
	}
	return false
}

// RecurringTemplate is a stored recurrence rule from which expected
// transactions are generated.
//
// NextExecutionDate is the cursor: the first date for which no expected
// transaction has been generated yet. It only moves forward. Version is
// incremented on every update and checked to detect concurrent writers.
type RecurringTemplate struct {
	Base
	UserID    string `gorm:"type:uuid;not null;index" json:"user_id"`
	AccountID string `gorm:"type:uuid;not null" json:"account_id"`

	Frequency          Frequency  `gorm:"not null" json:"frequency"`
	CustomIntervalDays *int       `json:"custom_interval_days,omitempty"`
	StartDate          time.Time  `gorm:"not null" json:"start_date"`
	EndDate            *time.Time `json:"end_date,omitempty"`

	Amount      decimal.Decimal `gorm:"type:numeric(20,4);not null" json:"amount"`
	Type        TransactionType `gorm:"not null" json:"type"`
	Category    string          `json:"category"`
	Description string          `json:"description"`

	IsActive      bool `gorm:"not null;index:idx_template_generatable" json:"is_active"`
	AutoGenerate  bool `gorm:"not null;index:idx_template_generatable" json:"auto_generate"`
	DaysInAdvance int  `gorm:"not null" json:"days_in_advance"`

	NextExecutionDate time.Time `gorm:"not null" json:"next_execution_date"`
	Version           int64     `gorm:"not null;default:0" json:"version"`
}

// Generatable reports whether the template takes part in automatic generation.
func (t *RecurringTemplate) Generatable() bool {
	return t.IsActive && t.AutoGenerate
}
