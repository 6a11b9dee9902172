package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// AuditLogEntry is append-only and best-effort: writers log and drop
// failures, they never surface them.
type AuditLogEntry struct {
	ID         uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Actor      string         `gorm:"column:actor;not null" json:"actor"`
	Action     string         `gorm:"column:action;not null;index" json:"action"`
	TargetType string         `gorm:"column:target_type;not null" json:"target_type"`
	TargetID   string         `gorm:"column:target_id" json:"target_id"`
	Details    datatypes.JSON `gorm:"column:details;type:jsonb" json:"details"`
	CreatedAt  time.Time      `gorm:"not null;default:now();index" json:"created_at"`
}

func (AuditLogEntry) TableName() string { return "audit_log" }
