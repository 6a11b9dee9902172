package types

import (
	"time"

	"github.com/google/uuid"
)

// IntakeBatch records one upload action. It is immutable after creation and
// only consulted for reporting.
type IntakeBatch struct {
	ID        uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Month     string    `gorm:"column:month;not null" json:"month"`
	Source    string    `gorm:"column:source" json:"source,omitempty"`
	CreatedBy string    `gorm:"column:created_by;not null" json:"created_by"`
	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
}

func (IntakeBatch) TableName() string { return "intake_batches" }
