package services

import (
	"context"
	"strings"

	apperrors "cashplan/internal/errors"
	"cashplan/internal/models"
	"cashplan/internal/pagination"
	"cashplan/internal/recurrence"
	"cashplan/internal/store"
	"cashplan/internal/validator"
)

type expectedTransactionService struct {
	store store.Store
	audit AuditServicer
}

// NewExpectedTransactionService creates a new ExpectedTransactionServicer.
func NewExpectedTransactionService(st store.Store, audit AuditServicer) ExpectedTransactionServicer {
	return &expectedTransactionService{store: st, audit: audit}
}

// CreateExpected records a one-off pending expected transaction with no template.
func (s *expectedTransactionService) CreateExpected(ctx context.Context, userID string, input CreateExpectedInput) (*models.ExpectedTransaction, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "user_id is required")
	}
	if err := validator.Struct(input); err != nil {
		return nil, err
	}

	expected := &models.ExpectedTransaction{
		UserID:         userID,
		AccountID:      input.AccountID,
		ExpectedDate:   recurrence.DateOnly(input.ExpectedDate),
		ExpectedAmount: input.Amount,
		Type:           input.Type,
		Category:       strings.TrimSpace(input.Category),
		Description:    input.Description,
		Status:         models.ExpectedStatusPending,
	}
	if err := s.store.ExpectedTransactions().Create(ctx, expected); err != nil {
		return nil, err
	}

	s.audit.Log(ctx, userID, actionExpectedCreate, resourceExpected, expected.ID, map[string]any{
		"expected_date": expected.ExpectedDate.Format("2006-01-02"),
		"amount":        expected.ExpectedAmount.String(),
		"type":          expected.Type,
	})
	return expected, nil
}

// GetExpected returns an expected transaction if it belongs to the user.
func (s *expectedTransactionService) GetExpected(ctx context.Context, userID, id string) (*models.ExpectedTransaction, error) {
	return s.store.ExpectedTransactions().GetForUser(ctx, userID, id)
}

// ListExpected returns a paginated list of the user's expected transactions
// ordered by date. Date bounds are inclusive.
func (s *expectedTransactionService) ListExpected(ctx context.Context, userID string, page pagination.PageRequest, filter ExpectedTransactionFilter) (*pagination.PageResponse[models.ExpectedTransaction], error) {
	page.Defaults()

	if filter.Status != nil && !filter.Status.Valid() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "unknown status: "+string(*filter.Status))
	}
	if filter.FromDate != nil {
		from := recurrence.DateOnly(*filter.FromDate)
		filter.FromDate = &from
	}
	if filter.ToDate != nil {
		to := recurrence.DateOnly(*filter.ToDate)
		filter.ToDate = &to
	}
	if filter.FromDate != nil && filter.ToDate != nil && filter.ToDate.Before(*filter.FromDate) {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "to_date must not be before from_date")
	}

	expected, total, err := s.store.ExpectedTransactions().ListForUser(ctx, userID, filter, page)
	if err != nil {
		return nil, err
	}

	result := pagination.NewPageResponse(expected, page, total)
	return &result, nil
}
