package store

import (
	"context"
	"errors"

	"gorm.io/gorm"

	apperrors "cashplan/internal/errors"
	"cashplan/internal/models"
	"cashplan/internal/pagination"
	"cashplan/internal/uuid"
)

type templateRepository struct {
	db *gorm.DB
}

func (r *templateRepository) GetByID(ctx context.Context, id string) (*models.RecurringTemplate, error) {
	if !uuid.IsValid(id) {
		return nil, templateLookupError(id, gorm.ErrRecordNotFound)
	}
	var template models.RecurringTemplate
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&template).Error; err != nil {
		return nil, templateLookupError(id, err)
	}
	return &template, nil
}

func (r *templateRepository) GetForUser(ctx context.Context, userID, id string) (*models.RecurringTemplate, error) {
	if !uuid.IsValid(id) {
		return nil, templateLookupError(id, gorm.ErrRecordNotFound)
	}
	var template models.RecurringTemplate
	if err := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).First(&template).Error; err != nil {
		return nil, templateLookupError(id, err)
	}
	return &template, nil
}

func (r *templateRepository) Create(ctx context.Context, template *models.RecurringTemplate) error {
	if err := r.db.WithContext(ctx).Create(template).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

func (r *templateRepository) Update(ctx context.Context, template *models.RecurringTemplate) error {
	res := r.db.WithContext(ctx).Model(&models.RecurringTemplate{}).
		Where("id = ? AND version = ?", template.ID, template.Version).
		Updates(map[string]any{
			"account_id":          template.AccountID,
			"end_date":            template.EndDate,
			"amount":              template.Amount,
			"type":                template.Type,
			"category":            template.Category,
			"description":         template.Description,
			"is_active":           template.IsActive,
			"auto_generate":       template.AutoGenerate,
			"days_in_advance":     template.DaysInAdvance,
			"next_execution_date": template.NextExecutionDate,
			"version":             gorm.Expr("version + 1"),
		})
	if res.Error != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.WithResource(apperrors.ErrConcurrentModification, template.ID)
	}
	template.Version++
	return nil
}

func (r *templateRepository) Delete(ctx context.Context, template *models.RecurringTemplate) error {
	if err := r.db.WithContext(ctx).Delete(template).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

func (r *templateRepository) ListGeneratable(ctx context.Context) ([]models.RecurringTemplate, error) {
	var templates []models.RecurringTemplate
	if err := r.db.WithContext(ctx).
		Where("is_active = ? AND auto_generate = ?", true, true).
		Order("next_execution_date ASC").
		Order("id ASC").
		Find(&templates).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return templates, nil
}

func (r *templateRepository) ListForUser(ctx context.Context, userID string, isActive *bool, page pagination.PageRequest) ([]models.RecurringTemplate, int64, error) {
	base := r.db.WithContext(ctx).Model(&models.RecurringTemplate{}).Where("user_id = ?", userID)
	if isActive != nil {
		base = base.Where("is_active = ?", *isActive)
	}

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, 0, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var templates []models.RecurringTemplate
	if err := base.Scopes(pagination.Paginate(page)).
		Order("next_execution_date ASC").
		Find(&templates).Error; err != nil {
		return nil, 0, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return templates, totalItems, nil
}

func templateLookupError(id string, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperrors.WithResource(apperrors.ErrTemplateNotFound, id)
	}
	return apperrors.Wrap(apperrors.ErrInternalServer, err)
}
