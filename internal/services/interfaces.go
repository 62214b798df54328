package services

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"cashplan/internal/models"
	"cashplan/internal/pagination"
	"cashplan/internal/store"
)

// GenerationResult describes one template's generation run.
type GenerationResult struct {
	TemplateID string `json:"template_id"`
	// Created counts the expected transactions inserted by this run.
	Created int `json:"created"`
	// Skipped is set when the template is inactive or not auto-generating.
	Skipped           bool      `json:"skipped"`
	NextExecutionDate time.Time `json:"next_execution_date"`
}

// BatchMode selects the transaction boundary of a batch generation run.
type BatchMode string

const (
	// BatchModeAtomic generates every template in one transaction: a single
	// failure rolls the whole batch back.
	BatchModeAtomic BatchMode = "atomic"
	// BatchModeIsolated gives each template its own transaction.
	BatchModeIsolated BatchMode = "isolated"
)

// Valid reports whether m is a known batch mode.
func (m BatchMode) Valid() bool {
	return m == BatchModeAtomic || m == BatchModeIsolated
}

// BatchFailure records a template whose generation failed in isolated mode.
type BatchFailure struct {
	TemplateID string
	Err        error
}

// BatchResult summarizes a batch generation run.
type BatchResult struct {
	Mode               BatchMode          `json:"mode"`
	TemplatesProcessed int                `json:"templates_processed"`
	Created            int                `json:"created"`
	Results            []GenerationResult `json:"results"`
	Failures           []BatchFailure     `json:"-"`
}

func (b *BatchResult) add(res *GenerationResult) {
	b.TemplatesProcessed++
	b.Created += res.Created
	b.Results = append(b.Results, *res)
}

// GenerationServicer materializes expected transactions from recurring templates.
type GenerationServicer interface {
	Generate(ctx context.Context, templateID string, daysInAdvance int) (*GenerationResult, error)
	GenerateAllActive(ctx context.Context) (*BatchResult, error)
}

// LifecycleServicer moves expected transactions out of the pending state.
// The boolean methods report whether the change was applied; the Result
// variants also say why it was not.
type LifecycleServicer interface {
	Confirm(ctx context.Context, id, actualTransactionID string) bool
	Cancel(ctx context.Context, id, reason string) bool
	Adjust(ctx context.Context, id string, newAmount decimal.Decimal, reason string) bool
	ConfirmResult(ctx context.Context, id, actualTransactionID string) Result
	CancelResult(ctx context.Context, id, reason string) Result
	AdjustResult(ctx context.Context, id string, newAmount decimal.Decimal, reason string) Result
}

// ForecastServicer aggregates pending expected transactions.
type ForecastServicer interface {
	CashFlow(ctx context.Context, userID string, start, end time.Time) (decimal.Decimal, error)
	CategoryForecast(ctx context.Context, userID string, start, end time.Time) (map[string]decimal.Decimal, error)
}

// CreateTemplateInput holds the fields of a new recurring template.
type CreateTemplateInput struct {
	AccountID          string                 `json:"account_id" validate:"required"`
	Frequency          models.Frequency       `json:"frequency" validate:"required,frequency"`
	CustomIntervalDays *int                   `json:"custom_interval_days" validate:"omitempty,min=1,max=3660"`
	StartDate          time.Time              `json:"start_date" validate:"required"`
	EndDate            *time.Time             `json:"end_date" validate:"omitempty,gtefield=StartDate"`
	Amount             decimal.Decimal        `json:"amount" validate:"gte=0"`
	Type               models.TransactionType `json:"type" validate:"required,transaction_type"`
	Category           string                 `json:"category" validate:"max=100"`
	Description        string                 `json:"description" validate:"max=255"`
	// AutoGenerate defaults to true.
	AutoGenerate *bool `json:"auto_generate"`
	// DaysInAdvance defaults to the configured generation horizon.
	DaysInAdvance *int `json:"days_in_advance" validate:"omitempty,min=0,max=366"`
}

// UpdateTemplateInput holds the template fields to change; nil fields are
// left untouched. The recurrence rule itself cannot change.
type UpdateTemplateInput struct {
	AccountID     *string          `json:"account_id" validate:"omitempty,min=1"`
	Amount        *decimal.Decimal `json:"amount" validate:"omitempty,gte=0"`
	Category      *string          `json:"category" validate:"omitempty,max=100"`
	Description   *string          `json:"description" validate:"omitempty,max=255"`
	EndDate       *time.Time       `json:"end_date"`
	AutoGenerate  *bool            `json:"auto_generate"`
	DaysInAdvance *int             `json:"days_in_advance" validate:"omitempty,min=0,max=366"`
}

// TemplateServicer manages recurring templates.
type TemplateServicer interface {
	CreateTemplate(ctx context.Context, userID string, input CreateTemplateInput) (*models.RecurringTemplate, error)
	GetTemplate(ctx context.Context, userID, templateID string) (*models.RecurringTemplate, error)
	ListTemplates(ctx context.Context, userID string, page pagination.PageRequest, isActive *bool) (*pagination.PageResponse[models.RecurringTemplate], error)
	UpdateTemplate(ctx context.Context, userID, templateID string, input UpdateTemplateInput) (*models.RecurringTemplate, error)
	ToggleActive(ctx context.Context, userID, templateID string) bool
	ToggleActiveResult(ctx context.Context, userID, templateID string) Result
	DeleteTemplate(ctx context.Context, userID, templateID string) error
}

// CreateExpectedInput holds the fields of a manually entered expected transaction.
type CreateExpectedInput struct {
	AccountID    string                 `json:"account_id" validate:"required"`
	ExpectedDate time.Time              `json:"expected_date" validate:"required"`
	Amount       decimal.Decimal        `json:"amount" validate:"gte=0"`
	Type         models.TransactionType `json:"type" validate:"required,transaction_type"`
	Category     string                 `json:"category" validate:"max=100"`
	Description  string                 `json:"description" validate:"max=255"`
}

// ExpectedTransactionFilter holds optional filters for listing expected transactions.
type ExpectedTransactionFilter = store.ExpectedFilter

// ExpectedTransactionServicer manages expected transactions outside their lifecycle.
type ExpectedTransactionServicer interface {
	CreateExpected(ctx context.Context, userID string, input CreateExpectedInput) (*models.ExpectedTransaction, error)
	GetExpected(ctx context.Context, userID, id string) (*models.ExpectedTransaction, error)
	ListExpected(ctx context.Context, userID string, page pagination.PageRequest, filter ExpectedTransactionFilter) (*pagination.PageResponse[models.ExpectedTransaction], error)
}

// AuditServicer defines the contract for audit logging.
type AuditServicer interface {
	Log(ctx context.Context, userID, action, resourceType, resourceID string, changes map[string]any)
}
