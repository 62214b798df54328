package services

import (
	"context"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"cashplan/internal/recurrence"
	"cashplan/internal/store"
)

// forecastService aggregates pending expected transactions. It never writes.
type forecastService struct {
	store store.Store
}

// NewForecastService creates a new ForecastServicer.
func NewForecastService(st store.Store) ForecastServicer {
	return &forecastService{store: st}
}

// CashFlow returns income minus expenses over the user's pending expected
// transactions dated within [start, end], both ends inclusive.
func (s *forecastService) CashFlow(ctx context.Context, userID string, start, end time.Time) (decimal.Decimal, error) {
	rows, err := s.pendingRows(ctx, userID, start, end)
	if err != nil {
		return decimal.Zero, err
	}

	total := decimal.Zero
	for _, row := range rows {
		total = total.Add(row.Type.Signed(row.ExpectedAmount))
	}
	return total, nil
}

// CategoryForecast returns the signed total per category over the same rows
// as CashFlow. Rows without a category are left out.
func (s *forecastService) CategoryForecast(ctx context.Context, userID string, start, end time.Time) (map[string]decimal.Decimal, error) {
	rows, err := s.pendingRows(ctx, userID, start, end)
	if err != nil {
		return nil, err
	}

	totals := make(map[string]decimal.Decimal)
	for _, row := range rows {
		if strings.TrimSpace(row.Category) == "" {
			continue
		}
		totals[row.Category] = totals[row.Category].Add(row.Type.Signed(row.ExpectedAmount))
	}
	return totals, nil
}

func (s *forecastService) pendingRows(ctx context.Context, userID string, start, end time.Time) ([]store.ForecastRow, error) {
	from := recurrence.DateOnly(start)
	until := recurrence.DateOnly(end).AddDate(0, 0, 1)
	return s.store.ExpectedTransactions().PendingForecastRows(ctx, userID, from, until)
}
