// Package store holds the persistence collaborators used by the services:
// repositories for recurring templates and expected transactions, and a
// unit of work that runs a function inside one database transaction.
package store

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"cashplan/internal/models"
	"cashplan/internal/pagination"
)

// TemplateRepository persists recurring templates.
type TemplateRepository interface {
	GetByID(ctx context.Context, id string) (*models.RecurringTemplate, error)
	GetForUser(ctx context.Context, userID, id string) (*models.RecurringTemplate, error)
	Create(ctx context.Context, template *models.RecurringTemplate) error
	// Update writes the mutable columns of template if its Version still
	// matches the stored row, then increments template.Version.
	Update(ctx context.Context, template *models.RecurringTemplate) error
	Delete(ctx context.Context, template *models.RecurringTemplate) error
	ListGeneratable(ctx context.Context) ([]models.RecurringTemplate, error)
	ListForUser(ctx context.Context, userID string, isActive *bool, page pagination.PageRequest) ([]models.RecurringTemplate, int64, error)
}

// ExpectedFilter holds optional filters for listing expected transactions.
type ExpectedFilter struct {
	Status     *models.ExpectedStatus
	TemplateID *string
	FromDate   *time.Time
	ToDate     *time.Time
}

// ForecastRow is the read-only projection of an expected transaction used
// for aggregation.
type ForecastRow struct {
	ExpectedAmount decimal.Decimal
	Type           models.TransactionType
	Category       string
}

// ExpectedTransactionRepository persists expected transactions.
type ExpectedTransactionRepository interface {
	GetByID(ctx context.Context, id string) (*models.ExpectedTransaction, error)
	GetForUser(ctx context.Context, userID, id string) (*models.ExpectedTransaction, error)
	Create(ctx context.Context, expected *models.ExpectedTransaction) error
	// UpdatePending applies changes only while the row is still pending and
	// reports whether a row was updated.
	UpdatePending(ctx context.Context, id string, changes map[string]any) (bool, error)
	// ExpectedDates returns the expected dates already generated for a
	// template on or after from, whatever their status.
	ExpectedDates(ctx context.Context, templateID string, from time.Time) ([]time.Time, error)
	// PendingForecastRows returns the user's pending rows with
	// from <= expected_date < until.
	PendingForecastRows(ctx context.Context, userID string, from, until time.Time) ([]ForecastRow, error)
	ListForUser(ctx context.Context, userID string, filter ExpectedFilter, page pagination.PageRequest) ([]models.ExpectedTransaction, int64, error)
}

// Store gives access to the repositories bound to one database handle.
type Store interface {
	Templates() TemplateRepository
	ExpectedTransactions() ExpectedTransactionRepository
}

// UnitOfWork runs fn inside a single transaction. The transaction commits
// when fn returns nil and rolls back when fn returns an error or panics.
type UnitOfWork interface {
	Do(ctx context.Context, fn func(Store) error) error
}

// Provider is a Store that can also open units of work. Reads made directly
// on it run outside any transaction.
type Provider interface {
	Store
	UnitOfWork
}

// GormStore implements Provider on top of GORM.
type GormStore struct {
	db *gorm.DB
}

// New creates a GormStore. Repositories obtained from it outside Do run
// each statement on its own.
func New(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

// Templates returns the recurring template repository.
func (s *GormStore) Templates() TemplateRepository {
	return &templateRepository{db: s.db}
}

// ExpectedTransactions returns the expected transaction repository.
func (s *GormStore) ExpectedTransactions() ExpectedTransactionRepository {
	return &expectedTransactionRepository{db: s.db}
}

// Do runs fn in a database transaction bound to ctx.
func (s *GormStore) Do(ctx context.Context, fn func(Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&GormStore{db: tx})
	})
}
