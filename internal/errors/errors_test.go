package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestAppError(t *testing.T) {
	t.Run("wrap_keeps_code_and_cause", func(t *testing.T) {
		cause := errors.New("connection reset")
		err := Wrap(ErrInternalServer, cause)

		if err.Code != "INTERNAL_ERROR" {
			t.Errorf("expected INTERNAL_ERROR, got %s", err.Code)
		}
		if !errors.Is(err, cause) {
			t.Error("expected cause in chain")
		}
		if !errors.Is(err, ErrInternalServer) {
			t.Error("expected wrapped error to match its sentinel")
		}
		if err.Error() != "An internal error occurred: connection reset" {
			t.Errorf("unexpected message %q", err.Error())
		}
	})

	t.Run("with_resource", func(t *testing.T) {
		err := WithResource(ErrTemplateNotFound, "abc")

		if err.ResourceID != "abc" {
			t.Errorf("expected resource abc, got %s", err.ResourceID)
		}
		if err.Error() != "Recurring template not found: abc" {
			t.Errorf("unexpected message %q", err.Error())
		}
		if !errors.Is(err, ErrTemplateNotFound) {
			t.Error("expected match on code")
		}
		if errors.Is(err, ErrExpectedTransactionNotFound) {
			t.Error("expected no match across codes")
		}
	})

	t.Run("with_message", func(t *testing.T) {
		err := WithMessage(ErrInvalidInput, "amount must be at least 0")

		if err.Error() != "amount must be at least 0" {
			t.Errorf("unexpected message %q", err.Error())
		}
		if ErrInvalidInput.Message != "Invalid input" {
			t.Error("expected sentinel message untouched")
		}
	})

	t.Run("as_through_fmt_wrapping", func(t *testing.T) {
		err := fmt.Errorf("template t1: %w", WithResource(ErrConcurrentModification, "t1"))

		var appErr *AppError
		if !errors.As(err, &appErr) {
			t.Fatal("expected AppError in chain")
		}
		if appErr.Code != "CONCURRENT_MODIFICATION" {
			t.Errorf("expected CONCURRENT_MODIFICATION, got %s", appErr.Code)
		}
	})

	t.Run("joined_batch_errors", func(t *testing.T) {
		err := Wrap(ErrBatchIncomplete, errors.Join(
			fmt.Errorf("template a: %w", Wrap(ErrInternalServer, errors.New("disk full"))),
			fmt.Errorf("template b: %w", WithResource(ErrInvalidFrequency, "hourly")),
		))

		for _, target := range []*AppError{ErrBatchIncomplete, ErrInternalServer, ErrInvalidFrequency} {
			if !errors.Is(err, target) {
				t.Errorf("expected %s in chain", target.Code)
			}
		}
	})
}
