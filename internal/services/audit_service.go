package services

import (
	"context"
	"encoding/json"

	"gorm.io/gorm"

	"cashplan/internal/logger"
	"cashplan/internal/models"
)

// Audit actions and resource types.
const (
	resourceTemplate = "recurring_template"
	resourceExpected = "expected_transaction"

	actionTemplateCreate = "recurring_template.create"
	actionTemplateUpdate = "recurring_template.update"
	actionTemplateToggle = "recurring_template.toggle_active"
	actionTemplateDelete = "recurring_template.delete"
	actionExpectedCreate = "expected_transaction.create"
	actionConfirm        = "expected_transaction.confirm"
	actionCancel         = "expected_transaction.cancel"
	actionAdjust         = "expected_transaction.adjust"
)

// auditService handles audit log recording.
type auditService struct {
	db *gorm.DB
}

// NewAuditService creates a new AuditServicer.
func NewAuditService(db *gorm.DB) AuditServicer {
	return &auditService{db: db}
}

// Log records an audit event. Errors are logged but never propagate
// to avoid disrupting the main operation.
func (s *auditService) Log(ctx context.Context, userID, action, resourceType, resourceID string, changes map[string]any) {
	var changesJSON string
	if changes != nil {
		data, err := json.Marshal(changes)
		if err != nil {
			logger.Get().Errorw("failed to marshal audit log changes", "error", err, "action", action)
			changesJSON = "{}"
		} else {
			changesJSON = string(data)
		}
	}

	entry := &models.AuditLog{
		UserID:       userID,
		Action:       action,
		ResourceType: resourceType,
		ResourceID:   resourceID,
		Changes:      changesJSON,
	}

	if err := s.db.WithContext(ctx).Create(entry).Error; err != nil {
		logger.Get().Errorw("failed to create audit log entry",
			"error", err,
			"user_id", userID,
			"action", action,
			"resource_type", resourceType,
			"resource_id", resourceID,
		)
	}
}
