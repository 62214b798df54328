package services

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"cashplan/internal/models"
	"cashplan/internal/pagination"
	"cashplan/internal/store"
	"cashplan/internal/testutil"
	"cashplan/internal/uuid"
)

func newTestExpectedService(db *gorm.DB) ExpectedTransactionServicer {
	return NewExpectedTransactionService(store.New(db), NewAuditService(db))
}

func TestCreateExpected(t *testing.T) {
	ctx := context.Background()

	t.Run("manual_one_off", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := newTestExpectedService(db)
		user := testutil.NewUserID()

		e, err := svc.CreateExpected(ctx, user, CreateExpectedInput{
			AccountID:    uuid.New(),
			ExpectedDate: time.Date(2024, time.May, 3, 22, 10, 0, 0, time.UTC),
			Amount:       decimal.RequireFromString("249.99"),
			Type:         models.TransactionTypeExpense,
			Category:     " Insurance ",
		})
		testutil.AssertNoError(t, err)

		got := testutil.ReloadExpected(t, db, e.ID)
		if got.TemplateID != nil {
			t.Error("expected no template")
		}
		if !got.IsPending() {
			t.Errorf("expected pending, got %s", got.Status)
		}
		testutil.AssertDate(t, "2024-05-03", got.ExpectedDate)
		testutil.AssertDecimal(t, "249.99", got.ExpectedAmount)
		if got.Category != "Insurance" {
			t.Errorf("expected trimmed category, got %q", got.Category)
		}
		if got.GeneratedAt != nil {
			t.Error("expected generated_at unset for manual entry")
		}
		if n := countAudit(t, db, actionExpectedCreate); n != 1 {
			t.Errorf("expected 1 audit entry, got %d", n)
		}
	})

	t.Run("counts_in_forecast", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := newTestExpectedService(db)
		user := testutil.NewUserID()

		_, err := svc.CreateExpected(ctx, user, CreateExpectedInput{
			AccountID:    uuid.New(),
			ExpectedDate: testutil.Date(2024, time.May, 3),
			Amount:       decimal.NewFromInt(700),
			Type:         models.TransactionTypeIncome,
			Category:     "Bonus",
		})
		testutil.AssertNoError(t, err)

		got, err := NewForecastService(store.New(db)).CashFlow(ctx, user,
			testutil.Date(2024, time.May, 1), testutil.Date(2024, time.May, 31))
		testutil.AssertNoError(t, err)
		testutil.AssertDecimal(t, "700", got)
	})

	t.Run("invalid_input", func(t *testing.T) {
		tests := []struct {
			name  string
			input CreateExpectedInput
		}{
			{"missing_account", CreateExpectedInput{ExpectedDate: time.Now(), Amount: decimal.NewFromInt(1), Type: models.TransactionTypeIncome}},
			{"missing_date", CreateExpectedInput{AccountID: uuid.New(), Amount: decimal.NewFromInt(1), Type: models.TransactionTypeIncome}},
			{"negative_amount", CreateExpectedInput{AccountID: uuid.New(), ExpectedDate: time.Now(), Amount: decimal.NewFromInt(-1), Type: models.TransactionTypeIncome}},
			{"unknown_type", CreateExpectedInput{AccountID: uuid.New(), ExpectedDate: time.Now(), Amount: decimal.NewFromInt(1), Type: "transfer"}},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				db := testutil.SetupTestDB(t)
				defer testutil.TeardownTestDB(t, db)
				svc := newTestExpectedService(db)

				_, err := svc.CreateExpected(ctx, testutil.NewUserID(), tt.input)
				testutil.AssertAppError(t, err, "INVALID_INPUT")
			})
		}
	})
}

func TestGetExpected(t *testing.T) {
	ctx := context.Background()

	t.Run("other_user", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := newTestExpectedService(db)
		e := testutil.CreateTestExpected(t, db, testutil.NewUserID(),
			models.TransactionTypeExpense, "10", "Food", testutil.Date(2024, time.May, 1))

		_, err := svc.GetExpected(ctx, testutil.NewUserID(), e.ID)
		testutil.AssertAppError(t, err, "EXPECTED_TRANSACTION_NOT_FOUND")
	})

	t.Run("own", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := newTestExpectedService(db)
		user := testutil.NewUserID()
		e := testutil.CreateTestExpected(t, db, user,
			models.TransactionTypeExpense, "10", "Food", testutil.Date(2024, time.May, 1))

		got, err := svc.GetExpected(ctx, user, e.ID)
		testutil.AssertNoError(t, err)
		testutil.AssertDecimal(t, "10", got.ExpectedAmount)
	})
}

func TestListExpected(t *testing.T) {
	ctx := context.Background()

	seed := func(t *testing.T, db *gorm.DB, user string) []*models.ExpectedTransaction {
		t.Helper()
		var rows []*models.ExpectedTransaction
		for day := 1; day <= 5; day++ {
			rows = append(rows, testutil.CreateTestExpected(t, db, user,
				models.TransactionTypeExpense, "10", "Food", testutil.Date(2024, time.June, day)))
		}
		return rows
	}

	t.Run("ordered_by_date", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := newTestExpectedService(db)
		user := testutil.NewUserID()
		seed(t, db, user)
		testutil.CreateTestExpected(t, db, testutil.NewUserID(),
			models.TransactionTypeExpense, "10", "Food", testutil.Date(2024, time.June, 1))

		page, err := svc.ListExpected(ctx, user, pagination.PageRequest{}, ExpectedTransactionFilter{})
		testutil.AssertNoError(t, err)

		if page.TotalItems != 5 {
			t.Fatalf("expected 5, got %d", page.TotalItems)
		}
		for i := 1; i < len(page.Data); i++ {
			if page.Data[i].ExpectedDate.Before(page.Data[i-1].ExpectedDate) {
				t.Fatal("expected ascending dates")
			}
		}
	})

	t.Run("status_filter", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := newTestExpectedService(db)
		user := testutil.NewUserID()
		rows := seed(t, db, user)
		testutil.SetExpectedStatus(t, db, rows[0], models.ExpectedStatusConfirmed)

		status := models.ExpectedStatusPending
		page, err := svc.ListExpected(ctx, user, pagination.PageRequest{}, ExpectedTransactionFilter{Status: &status})
		testutil.AssertNoError(t, err)
		if page.TotalItems != 4 {
			t.Errorf("expected 4 pending, got %d", page.TotalItems)
		}
	})

	t.Run("date_range_inclusive", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := newTestExpectedService(db)
		user := testutil.NewUserID()
		seed(t, db, user)

		from := time.Date(2024, time.June, 2, 9, 0, 0, 0, time.UTC)
		to := time.Date(2024, time.June, 4, 9, 0, 0, 0, time.UTC)
		page, err := svc.ListExpected(ctx, user, pagination.PageRequest{},
			ExpectedTransactionFilter{FromDate: &from, ToDate: &to})
		testutil.AssertNoError(t, err)
		if page.TotalItems != 3 {
			t.Errorf("expected June 2 through 4, got %d", page.TotalItems)
		}
	})

	t.Run("template_filter", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := newTestExpectedService(db)
		user := testutil.NewUserID()
		seed(t, db, user)
		tmpl := testutil.CreateTestTemplate(t, db, user)
		gen := NewGenerationService(store.New(db),
			WithClock(testutil.FixedClock(testutil.Date(2024, time.February, 1))))
		_, err := gen.Generate(ctx, tmpl.ID, 0)
		testutil.AssertNoError(t, err)

		page, err := svc.ListExpected(ctx, user, pagination.PageRequest{},
			ExpectedTransactionFilter{TemplateID: &tmpl.ID})
		testutil.AssertNoError(t, err)
		if page.TotalItems != 2 {
			t.Errorf("expected 2 generated rows, got %d", page.TotalItems)
		}
	})

	t.Run("invalid_filters", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := newTestExpectedService(db)

		bad := models.ExpectedStatus("archived")
		_, err := svc.ListExpected(ctx, testutil.NewUserID(), pagination.PageRequest{},
			ExpectedTransactionFilter{Status: &bad})
		testutil.AssertAppError(t, err, "INVALID_INPUT")

		from := testutil.Date(2024, time.June, 5)
		to := testutil.Date(2024, time.June, 1)
		_, err = svc.ListExpected(ctx, testutil.NewUserID(), pagination.PageRequest{},
			ExpectedTransactionFilter{FromDate: &from, ToDate: &to})
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})
}
