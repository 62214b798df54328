package services

import (
	"context"
	"errors"
	"strings"

	apperrors "cashplan/internal/errors"
	"cashplan/internal/logger"
	"cashplan/internal/models"
	"cashplan/internal/pagination"
	"cashplan/internal/recurrence"
	"cashplan/internal/store"
	"cashplan/internal/validator"
)

// templateService handles recurring template business logic.
type templateService struct {
	store         store.Provider
	audit         AuditServicer
	daysInAdvance int
}

// NewTemplateService creates a new TemplateServicer.
func NewTemplateService(st store.Provider, audit AuditServicer, opts ...Option) TemplateServicer {
	o := newOptions(opts)
	return &templateService{store: st, audit: audit, daysInAdvance: o.daysInAdvance}
}

// CreateTemplate stores a new active template whose cursor starts at its
// start date. No expected transactions are generated here.
func (s *templateService) CreateTemplate(ctx context.Context, userID string, input CreateTemplateInput) (*models.RecurringTemplate, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "user_id is required")
	}
	if err := validator.Struct(input); err != nil {
		return nil, err
	}

	start := recurrence.DateOnly(input.StartDate)
	template := &models.RecurringTemplate{
		UserID:            userID,
		AccountID:         input.AccountID,
		Frequency:         input.Frequency,
		StartDate:         start,
		Amount:            input.Amount,
		Type:              input.Type,
		Category:          strings.TrimSpace(input.Category),
		Description:       input.Description,
		IsActive:          true,
		AutoGenerate:      true,
		DaysInAdvance:     s.daysInAdvance,
		NextExecutionDate: start,
	}
	if input.Frequency == models.FrequencyCustom {
		template.CustomIntervalDays = input.CustomIntervalDays
	}
	if input.EndDate != nil {
		end := recurrence.DateOnly(*input.EndDate)
		template.EndDate = &end
	}
	if input.AutoGenerate != nil {
		template.AutoGenerate = *input.AutoGenerate
	}
	if input.DaysInAdvance != nil {
		template.DaysInAdvance = *input.DaysInAdvance
	}

	if err := s.store.Templates().Create(ctx, template); err != nil {
		return nil, err
	}

	s.audit.Log(ctx, userID, actionTemplateCreate, resourceTemplate, template.ID, map[string]any{
		"frequency":  template.Frequency,
		"amount":     template.Amount.String(),
		"type":       template.Type,
		"start_date": template.StartDate.Format("2006-01-02"),
	})
	return template, nil
}

// GetTemplate returns a template if it belongs to the user.
func (s *templateService) GetTemplate(ctx context.Context, userID, templateID string) (*models.RecurringTemplate, error) {
	return s.store.Templates().GetForUser(ctx, userID, templateID)
}

// ListTemplates returns a paginated list of the user's templates, optionally
// filtered by active flag.
func (s *templateService) ListTemplates(ctx context.Context, userID string, page pagination.PageRequest, isActive *bool) (*pagination.PageResponse[models.RecurringTemplate], error) {
	page.Defaults()

	templates, total, err := s.store.Templates().ListForUser(ctx, userID, isActive, page)
	if err != nil {
		return nil, err
	}

	result := pagination.NewPageResponse(templates, page, total)
	return &result, nil
}

// UpdateTemplate changes a template's payload and generation settings.
// Expected transactions already generated are left as they are.
func (s *templateService) UpdateTemplate(ctx context.Context, userID, templateID string, input UpdateTemplateInput) (*models.RecurringTemplate, error) {
	if err := validator.Struct(input); err != nil {
		return nil, err
	}

	template, err := s.store.Templates().GetForUser(ctx, userID, templateID)
	if err != nil {
		return nil, err
	}

	changes := make(map[string]any)
	if input.AccountID != nil {
		template.AccountID = *input.AccountID
		changes["account_id"] = *input.AccountID
	}
	if input.Amount != nil {
		template.Amount = *input.Amount
		changes["amount"] = input.Amount.String()
	}
	if input.Category != nil {
		template.Category = strings.TrimSpace(*input.Category)
		changes["category"] = template.Category
	}
	if input.Description != nil {
		template.Description = *input.Description
		changes["description"] = *input.Description
	}
	if input.EndDate != nil {
		end := recurrence.DateOnly(*input.EndDate)
		if end.Before(recurrence.DateOnly(template.StartDate.UTC())) {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "end_date must not be before start_date")
		}
		template.EndDate = &end
		changes["end_date"] = end.Format("2006-01-02")
	}
	if input.AutoGenerate != nil {
		template.AutoGenerate = *input.AutoGenerate
		changes["auto_generate"] = *input.AutoGenerate
	}
	if input.DaysInAdvance != nil {
		template.DaysInAdvance = *input.DaysInAdvance
		changes["days_in_advance"] = *input.DaysInAdvance
	}

	if len(changes) == 0 {
		return template, nil
	}
	if err := s.store.Templates().Update(ctx, template); err != nil {
		return nil, err
	}

	s.audit.Log(ctx, userID, actionTemplateUpdate, resourceTemplate, template.ID, changes)
	return template, nil
}

// ToggleActive flips the template's active flag and reports whether it was
// changed.
func (s *templateService) ToggleActive(ctx context.Context, userID, templateID string) bool {
	return s.ToggleActiveResult(ctx, userID, templateID).Applied()
}

func (s *templateService) ToggleActiveResult(ctx context.Context, userID, templateID string) Result {
	template, err := s.store.Templates().GetForUser(ctx, userID, templateID)
	if err != nil {
		if errors.Is(err, apperrors.ErrTemplateNotFound) {
			return Result{Outcome: OutcomeNotFound}
		}
		logger.Get().Errorw("failed to load recurring template", "template_id", templateID, "error", err)
		return Result{Outcome: OutcomeFailed, Err: err}
	}

	template.IsActive = !template.IsActive
	if err := s.store.Templates().Update(ctx, template); err != nil {
		if errors.Is(err, apperrors.ErrConcurrentModification) {
			return Result{Outcome: OutcomeInvalidState}
		}
		logger.Get().Errorw("failed to toggle recurring template", "template_id", templateID, "error", err)
		return Result{Outcome: OutcomeFailed, Err: err}
	}

	s.audit.Log(ctx, userID, actionTemplateToggle, resourceTemplate, template.ID, map[string]any{
		"is_active": template.IsActive,
	})
	return Result{Outcome: OutcomeApplied}
}

// DeleteTemplate soft-deletes a template. Its expected transactions remain.
func (s *templateService) DeleteTemplate(ctx context.Context, userID, templateID string) error {
	template, err := s.store.Templates().GetForUser(ctx, userID, templateID)
	if err != nil {
		return err
	}
	if err := s.store.Templates().Delete(ctx, template); err != nil {
		return err
	}

	s.audit.Log(ctx, userID, actionTemplateDelete, resourceTemplate, template.ID, nil)
	return nil
}
