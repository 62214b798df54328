package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"cashplan/internal/models"
	"cashplan/internal/uuid"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// NewUserID returns a fresh user ID. Users live outside this service, so
// there is nothing to insert.
func NewUserID() string {
	return uuid.New()
}

// Date returns midnight UTC of the given calendar date.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// FixedClock returns a clock that always reports now.
func FixedClock(now time.Time) func() time.Time {
	return func() time.Time { return now }
}

// TemplateOption customizes a template created by CreateTestTemplate.
type TemplateOption func(*models.RecurringTemplate)

// WithFrequency sets the template frequency.
func WithFrequency(f models.Frequency) TemplateOption {
	return func(t *models.RecurringTemplate) { t.Frequency = f }
}

// WithStart sets both the start date and the cursor.
func WithStart(start time.Time) TemplateOption {
	return func(t *models.RecurringTemplate) {
		t.StartDate = start
		t.NextExecutionDate = start
	}
}

// WithEnd sets the template end date.
func WithEnd(end time.Time) TemplateOption {
	return func(t *models.RecurringTemplate) { t.EndDate = &end }
}

// WithFlags sets the active and auto-generate flags.
func WithFlags(active, autoGenerate bool) TemplateOption {
	return func(t *models.RecurringTemplate) {
		t.IsActive = active
		t.AutoGenerate = autoGenerate
	}
}

// WithAmount sets the template amount and direction.
func WithAmount(txType models.TransactionType, amount string) TemplateOption {
	return func(t *models.RecurringTemplate) {
		t.Type = txType
		t.Amount = decimal.RequireFromString(amount)
	}
}

// WithDaysInAdvance sets the generation horizon.
func WithDaysInAdvance(days int) TemplateOption {
	return func(t *models.RecurringTemplate) { t.DaysInAdvance = days }
}

// WithCustomInterval sets a custom frequency with the given interval.
func WithCustomInterval(days *int) TemplateOption {
	return func(t *models.RecurringTemplate) {
		t.Frequency = models.FrequencyCustom
		t.CustomIntervalDays = days
	}
}

// CreateTestTemplate creates an active, auto-generating monthly expense
// template of 1500 starting 2024-01-01, adjusted by opts.
func CreateTestTemplate(t *testing.T, db *gorm.DB, userID string, opts ...TemplateOption) *models.RecurringTemplate {
	t.Helper()

	start := Date(2024, time.January, 1)
	template := &models.RecurringTemplate{
		UserID:            userID,
		AccountID:         uuid.New(),
		Frequency:         models.FrequencyMonthly,
		StartDate:         start,
		Amount:            decimal.NewFromInt(1500),
		Type:              models.TransactionTypeExpense,
		Category:          "Housing",
		Description:       fmt.Sprintf("Test Template %d", nextID()),
		IsActive:          true,
		AutoGenerate:      true,
		DaysInAdvance:     30,
		NextExecutionDate: start,
	}
	for _, opt := range opts {
		opt(template)
	}

	if err := db.Create(template).Error; err != nil {
		t.Fatalf("failed to create test template: %v", err)
	}
	return template
}

// CreateTestExpected creates a pending expected transaction without a template.
func CreateTestExpected(t *testing.T, db *gorm.DB, userID string, txType models.TransactionType, amount, category string, date time.Time) *models.ExpectedTransaction {
	t.Helper()

	expected := &models.ExpectedTransaction{
		UserID:         userID,
		AccountID:      uuid.New(),
		ExpectedDate:   date,
		ExpectedAmount: decimal.RequireFromString(amount),
		Type:           txType,
		Category:       category,
		Description:    fmt.Sprintf("Test Expected %d", nextID()),
		Status:         models.ExpectedStatusPending,
	}
	if err := db.Create(expected).Error; err != nil {
		t.Fatalf("failed to create test expected transaction: %v", err)
	}
	return expected
}

// SetExpectedStatus forces the status of an expected transaction.
func SetExpectedStatus(t *testing.T, db *gorm.DB, expected *models.ExpectedTransaction, status models.ExpectedStatus) {
	t.Helper()

	if err := db.Model(expected).Update("status", status).Error; err != nil {
		t.Fatalf("failed to set expected transaction status: %v", err)
	}
	expected.Status = status
}

// ReloadExpected reads an expected transaction back from the database.
func ReloadExpected(t *testing.T, db *gorm.DB, id string) *models.ExpectedTransaction {
	t.Helper()

	var expected models.ExpectedTransaction
	if err := db.Where("id = ?", id).First(&expected).Error; err != nil {
		t.Fatalf("failed to reload expected transaction %s: %v", id, err)
	}
	return &expected
}

// ReloadTemplate reads a recurring template back from the database.
func ReloadTemplate(t *testing.T, db *gorm.DB, id string) *models.RecurringTemplate {
	t.Helper()

	var template models.RecurringTemplate
	if err := db.Where("id = ?", id).First(&template).Error; err != nil {
		t.Fatalf("failed to reload template %s: %v", id, err)
	}
	return &template
}

// ExpectedForTemplate returns the template's expected transactions ordered by date.
func ExpectedForTemplate(t *testing.T, db *gorm.DB, templateID string) []models.ExpectedTransaction {
	t.Helper()

	var expected []models.ExpectedTransaction
	if err := db.Where("template_id = ?", templateID).Order("expected_date ASC").Find(&expected).Error; err != nil {
		t.Fatalf("failed to list expected transactions: %v", err)
	}
	return expected
}

// CountExpected returns the number of expected transactions in the database.
func CountExpected(t *testing.T, db *gorm.DB) int64 {
	t.Helper()

	var n int64
	if err := db.Model(&models.ExpectedTransaction{}).Count(&n).Error; err != nil {
		t.Fatalf("failed to count expected transactions: %v", err)
	}
	return n
}
