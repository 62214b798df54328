package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExpectedStatus is the lifecycle state of an expected transaction.
type ExpectedStatus string

const (
	ExpectedStatusPending   ExpectedStatus = "pending"
	ExpectedStatusConfirmed ExpectedStatus = "confirmed"
	ExpectedStatusCancelled ExpectedStatus = "cancelled"
)

// Valid reports whether s is a known status.
func (s ExpectedStatus) Valid() bool {
	switch s {
	case ExpectedStatusPending, ExpectedStatusConfirmed, ExpectedStatusCancelled:
		return true
	}
	return false
}

// ExpectedTransaction is a dated obligation materialized from a recurring
// template, or created by hand when TemplateID is nil.
//
// Only a pending expected transaction can change. OriginalAmount is captured
// the first time the amount is adjusted and never overwritten afterwards.
type ExpectedTransaction struct {
	Base
	TemplateID *string `gorm:"type:uuid;index:idx_expected_template_date" json:"template_id,omitempty"`
	UserID     string  `gorm:"type:uuid;not null;index:idx_expected_user_status_date" json:"user_id"`
	AccountID  string  `gorm:"type:uuid;not null" json:"account_id"`

	ExpectedDate   time.Time       `gorm:"not null;index:idx_expected_template_date;index:idx_expected_user_status_date" json:"expected_date"`
	ExpectedAmount decimal.Decimal `gorm:"type:numeric(20,4);not null" json:"expected_amount"`
	Type           TransactionType `gorm:"not null" json:"type"`
	Category       string          `json:"category"`
	Description    string          `json:"description"`

	OriginalAmount   *decimal.Decimal `gorm:"type:numeric(20,4)" json:"original_amount,omitempty"`
	IsAdjusted       bool             `gorm:"not null" json:"is_adjusted"`
	AdjustmentReason *string          `json:"adjustment_reason,omitempty"`

	Status              ExpectedStatus `gorm:"not null;default:'pending';index:idx_expected_user_status_date" json:"status"`
	ProcessedAt         *time.Time     `json:"processed_at,omitempty"`
	ActualTransactionID *string        `json:"actual_transaction_id,omitempty"`

	GeneratedAt *time.Time `json:"generated_at,omitempty"`
}

// IsPending reports whether the expected transaction can still change state.
func (e *ExpectedTransaction) IsPending() bool {
	return e.Status == ExpectedStatusPending
}
