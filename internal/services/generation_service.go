package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	apperrors "cashplan/internal/errors"
	"cashplan/internal/logger"
	"cashplan/internal/models"
	"cashplan/internal/recurrence"
	"cashplan/internal/store"
)

// generationService materializes expected transactions from recurring templates.
type generationService struct {
	store     store.Provider
	now       func() time.Time
	batchMode BatchMode
}

// NewGenerationService creates a new GenerationServicer.
func NewGenerationService(st store.Provider, opts ...Option) GenerationServicer {
	o := newOptions(opts)
	return &generationService{
		store:     st,
		now:       o.now,
		batchMode: o.batchMode,
	}
}

// Generate materializes the template's occurrences up to today plus
// daysInAdvance and advances its cursor, all in one transaction. Inactive
// and manual templates are skipped without error.
func (s *generationService) Generate(ctx context.Context, templateID string, daysInAdvance int) (*GenerationResult, error) {
	if daysInAdvance < 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "days in advance must not be negative")
	}

	var result *GenerationResult
	err := s.store.Do(ctx, func(tx store.Store) error {
		template, err := tx.Templates().GetByID(ctx, templateID)
		if err != nil {
			return err
		}
		result, err = s.materialize(ctx, tx, template, daysInAdvance)
		return err
	})
	if err != nil {
		logger.Get().Errorw("recurring template generation failed",
			"template_id", templateID,
			"error", err,
		)
		return nil, err
	}

	if !result.Skipped {
		logger.Get().Infow("recurring template generated",
			"template_id", templateID,
			"created", result.Created,
			"next_execution_date", result.NextExecutionDate.Format(time.DateOnly),
		)
	}
	return result, nil
}

// GenerateAllActive runs generation for every active, auto-generating
// template, each with its own days-in-advance horizon.
func (s *generationService) GenerateAllActive(ctx context.Context) (*BatchResult, error) {
	if s.batchMode == BatchModeIsolated {
		return s.generateIsolated(ctx)
	}
	return s.generateAtomic(ctx)
}

// generateAtomic shares one transaction across the whole batch. Nothing is
// persisted unless every template succeeds.
func (s *generationService) generateAtomic(ctx context.Context) (*BatchResult, error) {
	batch := &BatchResult{Mode: BatchModeAtomic}
	var current string

	err := s.store.Do(ctx, func(tx store.Store) error {
		templates, err := tx.Templates().ListGeneratable(ctx)
		if err != nil {
			return err
		}
		for i := range templates {
			current = templates[i].ID
			res, err := s.materialize(ctx, tx, &templates[i], templates[i].DaysInAdvance)
			if err != nil {
				return err
			}
			batch.add(res)
		}
		return nil
	})
	if err != nil {
		logger.Get().Errorw("batch generation failed, all templates rolled back",
			"template_id", current,
			"error", err,
		)
		return nil, err
	}

	logger.Get().Infow("batch generation completed",
		"mode", batch.Mode,
		"templates", batch.TemplatesProcessed,
		"created", batch.Created,
	)
	return batch, nil
}

// generateIsolated commits each template on its own so one failure only
// loses that template's work.
func (s *generationService) generateIsolated(ctx context.Context) (*BatchResult, error) {
	templates, err := s.store.Templates().ListGeneratable(ctx)
	if err != nil {
		logger.Get().Errorw("failed to list generatable templates", "error", err)
		return nil, err
	}

	batch := &BatchResult{Mode: BatchModeIsolated}
	var errs []error
	for i := range templates {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}

		id := templates[i].ID
		var res *GenerationResult
		err := s.store.Do(ctx, func(tx store.Store) error {
			// Reload inside the transaction so the version check sees the
			// row as it is now, not as it was when the batch was listed.
			template, err := tx.Templates().GetByID(ctx, id)
			if err != nil {
				return err
			}
			res, err = s.materialize(ctx, tx, template, template.DaysInAdvance)
			return err
		})
		if err != nil {
			logger.Get().Errorw("recurring template generation failed",
				"template_id", id,
				"error", err,
			)
			batch.Failures = append(batch.Failures, BatchFailure{TemplateID: id, Err: err})
			errs = append(errs, fmt.Errorf("template %s: %w", id, err))
			continue
		}
		batch.add(res)
	}

	logger.Get().Infow("batch generation completed",
		"mode", batch.Mode,
		"templates", batch.TemplatesProcessed,
		"created", batch.Created,
		"failures", len(batch.Failures),
	)

	if len(errs) > 0 {
		return batch, apperrors.Wrap(apperrors.ErrBatchIncomplete, errors.Join(errs...))
	}
	return batch, nil
}

// materialize is the per-template generation body. It must run inside a
// unit of work: the inserts and the cursor update commit together.
func (s *generationService) materialize(ctx context.Context, tx store.Store, template *models.RecurringTemplate, daysInAdvance int) (*GenerationResult, error) {
	result := &GenerationResult{
		TemplateID:        template.ID,
		NextExecutionDate: template.NextExecutionDate,
	}
	if !template.Generatable() {
		result.Skipped = true
		return result, nil
	}

	now := s.now()
	horizon := recurrence.DateOnly(now).AddDate(0, 0, daysInAdvance)
	cursor := recurrence.DateOnly(template.NextExecutionDate.UTC())

	dates, err := tx.ExpectedTransactions().ExpectedDates(ctx, template.ID, cursor)
	if err != nil {
		return nil, err
	}
	existing := make(map[string]struct{}, len(dates))
	for _, d := range dates {
		existing[dateKey(d)] = struct{}{}
	}

	var endDate *time.Time
	if template.EndDate != nil {
		end := recurrence.DateOnly(template.EndDate.UTC())
		endDate = &end
	}

	generatedAt := now.UTC()
	for !cursor.After(horizon) {
		if endDate != nil && cursor.After(*endDate) {
			break
		}

		key := dateKey(cursor)
		if _, dup := existing[key]; !dup {
			expected := expectedFromTemplate(template, cursor, generatedAt)
			if err := tx.ExpectedTransactions().Create(ctx, expected); err != nil {
				return nil, err
			}
			existing[key] = struct{}{}
			result.Created++
		}

		next, err := recurrence.Next(cursor, template.Frequency, template.CustomIntervalDays)
		if err != nil {
			return nil, err
		}
		cursor = next
	}

	if !cursor.Equal(template.NextExecutionDate) {
		template.NextExecutionDate = cursor
		if err := tx.Templates().Update(ctx, template); err != nil {
			return nil, err
		}
	}

	result.NextExecutionDate = cursor
	return result, nil
}

// expectedFromTemplate builds a pending expected transaction carrying the
// template's payload.
func expectedFromTemplate(template *models.RecurringTemplate, date, generatedAt time.Time) *models.ExpectedTransaction {
	templateID := template.ID
	return &models.ExpectedTransaction{
		TemplateID:     &templateID,
		UserID:         template.UserID,
		AccountID:      template.AccountID,
		ExpectedDate:   date,
		ExpectedAmount: template.Amount,
		Type:           template.Type,
		Category:       template.Category,
		Description:    template.Description,
		Status:         models.ExpectedStatusPending,
		GeneratedAt:    &generatedAt,
	}
}

func dateKey(t time.Time) string {
	return t.UTC().Format(time.DateOnly)
}
