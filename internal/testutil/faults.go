package testutil

import (
	"errors"
	"testing"

	"gorm.io/gorm"

	"cashplan/internal/models"
)

// ErrInjected is returned by statements failed through the helpers below.
var ErrInjected = errors.New("injected failure")

// FailExpectedCreatesFor makes every insert of an expected transaction that
// belongs to templateID fail with ErrInjected.
func FailExpectedCreatesFor(t *testing.T, db *gorm.DB, templateID string) {
	t.Helper()

	name := "testutil:fail_expected_create:" + templateID
	err := db.Callback().Create().Before("gorm:create").Register(name, func(tx *gorm.DB) {
		expected, ok := tx.Statement.Dest.(*models.ExpectedTransaction)
		if !ok || expected.TemplateID == nil || *expected.TemplateID != templateID {
			return
		}
		_ = tx.AddError(ErrInjected)
	})
	if err != nil {
		t.Fatalf("failed to register failing create callback: %v", err)
	}
}

// FailUpdates makes every UPDATE statement fail with ErrInjected.
func FailUpdates(t *testing.T, db *gorm.DB) {
	t.Helper()

	err := db.Callback().Update().Before("gorm:update").Register("testutil:fail_update", func(tx *gorm.DB) {
		_ = tx.AddError(ErrInjected)
	})
	if err != nil {
		t.Fatalf("failed to register failing update callback: %v", err)
	}
}
