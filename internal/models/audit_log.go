package models

// AuditLog records state changes to templates and expected transactions.
type AuditLog struct {
	Base
	UserID       string `gorm:"type:uuid;not null;index" json:"user_id"`
	Action       string `gorm:"not null" json:"action"`
	ResourceType string `gorm:"not null" json:"resource_type"`
	ResourceID   string `gorm:"type:uuid;index" json:"resource_id"`
	Changes      string `json:"changes,omitempty"`
}
