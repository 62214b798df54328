package services

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	apperrors "cashplan/internal/errors"
	"cashplan/internal/logger"
	"cashplan/internal/models"
	"cashplan/internal/store"
)

// lifecycleService moves expected transactions from pending to confirmed or
// cancelled, and adjusts their amounts while pending. Failures never
// propagate as errors: callers get false, or a Result saying why.
type lifecycleService struct {
	store store.Provider
	audit AuditServicer
	now   func() time.Time
}

// NewLifecycleService creates a new LifecycleServicer.
func NewLifecycleService(st store.Provider, audit AuditServicer, opts ...Option) LifecycleServicer {
	o := newOptions(opts)
	return &lifecycleService{store: st, audit: audit, now: o.now}
}

// changeFunc computes the column changes for a pending expected transaction.
type changeFunc func(e *models.ExpectedTransaction) map[string]any

func (s *lifecycleService) Confirm(ctx context.Context, id, actualTransactionID string) bool {
	return s.ConfirmResult(ctx, id, actualTransactionID).Applied()
}

func (s *lifecycleService) Cancel(ctx context.Context, id, reason string) bool {
	return s.CancelResult(ctx, id, reason).Applied()
}

func (s *lifecycleService) Adjust(ctx context.Context, id string, newAmount decimal.Decimal, reason string) bool {
	return s.AdjustResult(ctx, id, newAmount, reason).Applied()
}

// ConfirmResult links a pending expected transaction to the ledger entry
// that realized it.
func (s *lifecycleService) ConfirmResult(ctx context.Context, id, actualTransactionID string) Result {
	if actualTransactionID == "" {
		return Result{Outcome: OutcomeInvalidInput}
	}
	return s.transition(ctx, actionConfirm, id, func(*models.ExpectedTransaction) map[string]any {
		return map[string]any{
			"status":                models.ExpectedStatusConfirmed,
			"actual_transaction_id": actualTransactionID,
			"processed_at":          s.now().UTC(),
		}
	})
}

// CancelResult cancels a pending expected transaction. An empty reason is
// stored as NULL.
func (s *lifecycleService) CancelResult(ctx context.Context, id, reason string) Result {
	return s.transition(ctx, actionCancel, id, func(*models.ExpectedTransaction) map[string]any {
		return map[string]any{
			"status":            models.ExpectedStatusCancelled,
			"adjustment_reason": optionalString(reason),
			"processed_at":      s.now().UTC(),
		}
	})
}

// AdjustResult changes the expected amount of a pending expected transaction.
// The amount in force before the first adjustment is kept in OriginalAmount
// and never overwritten.
func (s *lifecycleService) AdjustResult(ctx context.Context, id string, newAmount decimal.Decimal, reason string) Result {
	if newAmount.IsNegative() {
		return Result{Outcome: OutcomeInvalidInput}
	}
	return s.transition(ctx, actionAdjust, id, func(e *models.ExpectedTransaction) map[string]any {
		changes := map[string]any{
			"expected_amount":   newAmount,
			"is_adjusted":       true,
			"adjustment_reason": optionalString(reason),
		}
		if !e.IsAdjusted {
			changes["original_amount"] = e.ExpectedAmount
		}
		return changes
	})
}

// transition applies a state change to a pending expected transaction inside
// its own unit of work. Not found and not pending are no-ops that commit;
// store failures roll back and are logged.
func (s *lifecycleService) transition(ctx context.Context, action, id string, change changeFunc) Result {
	var (
		outcome = OutcomeApplied
		userID  string
		changes map[string]any
	)

	err := s.store.Do(ctx, func(tx store.Store) error {
		expected, err := tx.ExpectedTransactions().GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, apperrors.ErrExpectedTransactionNotFound) {
				outcome = OutcomeNotFound
				return nil
			}
			return err
		}
		if !expected.IsPending() {
			outcome = OutcomeInvalidState
			return nil
		}

		userID = expected.UserID
		changes = change(expected)
		updated, err := tx.ExpectedTransactions().UpdatePending(ctx, id, changes)
		if err != nil {
			return err
		}
		if !updated {
			// Processed by someone else between the read and the write.
			outcome = OutcomeInvalidState
		}
		return nil
	})
	if err != nil {
		logger.Get().Errorw("expected transaction update failed",
			"action", action,
			"expected_transaction_id", id,
			"error", err,
		)
		return Result{Outcome: OutcomeFailed, Err: err}
	}

	if outcome != OutcomeApplied {
		logger.Get().Infow("expected transaction not updated",
			"action", action,
			"expected_transaction_id", id,
			"outcome", outcome.String(),
		)
		return Result{Outcome: outcome}
	}

	s.audit.Log(ctx, userID, action, resourceExpected, id, auditChanges(changes))
	return Result{Outcome: OutcomeApplied}
}

// auditChanges renders decimal and pointer values so the audit JSON stays
// readable.
func auditChanges(changes map[string]any) map[string]any {
	out := make(map[string]any, len(changes))
	for k, v := range changes {
		switch val := v.(type) {
		case decimal.Decimal:
			out[k] = val.String()
		case *string:
			if val == nil {
				out[k] = nil
			} else {
				out[k] = *val
			}
		default:
			out[k] = val
		}
	}
	return out
}

func optionalString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
