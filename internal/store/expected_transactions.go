package store

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	apperrors "cashplan/internal/errors"
	"cashplan/internal/models"
	"cashplan/internal/pagination"
	"cashplan/internal/uuid"
)

type expectedTransactionRepository struct {
	db *gorm.DB
}

func (r *expectedTransactionRepository) GetByID(ctx context.Context, id string) (*models.ExpectedTransaction, error) {
	if !uuid.IsValid(id) {
		return nil, expectedLookupError(id, gorm.ErrRecordNotFound)
	}
	var expected models.ExpectedTransaction
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&expected).Error; err != nil {
		return nil, expectedLookupError(id, err)
	}
	return &expected, nil
}

func (r *expectedTransactionRepository) GetForUser(ctx context.Context, userID, id string) (*models.ExpectedTransaction, error) {
	if !uuid.IsValid(id) {
		return nil, expectedLookupError(id, gorm.ErrRecordNotFound)
	}
	var expected models.ExpectedTransaction
	if err := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).First(&expected).Error; err != nil {
		return nil, expectedLookupError(id, err)
	}
	return &expected, nil
}

func (r *expectedTransactionRepository) Create(ctx context.Context, expected *models.ExpectedTransaction) error {
	if err := r.db.WithContext(ctx).Create(expected).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

func (r *expectedTransactionRepository) UpdatePending(ctx context.Context, id string, changes map[string]any) (bool, error) {
	res := r.db.WithContext(ctx).Model(&models.ExpectedTransaction{}).
		Where("id = ? AND status = ?", id, models.ExpectedStatusPending).
		Updates(changes)
	if res.Error != nil {
		return false, apperrors.Wrap(apperrors.ErrInternalServer, res.Error)
	}
	return res.RowsAffected > 0, nil
}

func (r *expectedTransactionRepository) ExpectedDates(ctx context.Context, templateID string, from time.Time) ([]time.Time, error) {
	var dates []time.Time
	if err := r.db.WithContext(ctx).Model(&models.ExpectedTransaction{}).
		Where("template_id = ? AND expected_date >= ?", templateID, from).
		Pluck("expected_date", &dates).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return dates, nil
}

func (r *expectedTransactionRepository) PendingForecastRows(ctx context.Context, userID string, from, until time.Time) ([]ForecastRow, error) {
	var rows []ForecastRow
	if err := r.db.WithContext(ctx).Model(&models.ExpectedTransaction{}).
		Select("expected_amount", "type", "category").
		Where("user_id = ? AND status = ? AND expected_date >= ? AND expected_date < ?",
			userID, models.ExpectedStatusPending, from, until).
		Scan(&rows).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return rows, nil
}

func (r *expectedTransactionRepository) ListForUser(ctx context.Context, userID string, filter ExpectedFilter, page pagination.PageRequest) ([]models.ExpectedTransaction, int64, error) {
	base := r.db.WithContext(ctx).Model(&models.ExpectedTransaction{}).Where("user_id = ?", userID)
	base = applyExpectedFilters(base, filter)

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, 0, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var expected []models.ExpectedTransaction
	if err := base.Scopes(pagination.Paginate(page)).
		Order("expected_date ASC").
		Find(&expected).Error; err != nil {
		return nil, 0, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return expected, totalItems, nil
}

func applyExpectedFilters(q *gorm.DB, f ExpectedFilter) *gorm.DB {
	if f.Status != nil {
		q = q.Where("status = ?", *f.Status)
	}
	if f.TemplateID != nil {
		q = q.Where("template_id = ?", *f.TemplateID)
	}
	if f.FromDate != nil {
		q = q.Where("expected_date >= ?", *f.FromDate)
	}
	if f.ToDate != nil {
		q = q.Where("expected_date <= ?", *f.ToDate)
	}
	return q
}

func expectedLookupError(id string, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperrors.WithResource(apperrors.ErrExpectedTransactionNotFound, id)
	}
	return apperrors.Wrap(apperrors.ErrInternalServer, err)
}
