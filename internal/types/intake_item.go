package types

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

const (
	IntakeStatusUnsorted = "unsorted"
	IntakeStatusPromoted = "promoted"
	IntakeStatusArchived = "archived"
)

type IntakeItem struct {
	ID          uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	BatchID     uuid.UUID      `gorm:"type:uuid;not null;index" json:"batch_id"`
	Batch       *IntakeBatch   `gorm:"constraint:OnDelete:CASCADE;foreignKey:BatchID;references:ID" json:"batch,omitempty"`
	Uploader    string         `gorm:"column:uploader;not null" json:"uploader"`
	Status      string         `gorm:"column:status;not null;default:'unsorted';index" json:"status"`
	RawName     string         `gorm:"column:raw_name" json:"raw_name,omitempty"`
	Category    string         `gorm:"column:category" json:"category,omitempty"`
	Property    string         `gorm:"column:property" json:"property,omitempty"`
	SubProperty string         `gorm:"column:sub_property" json:"sub_property,omitempty"`
	Notes       string         `gorm:"column:notes" json:"notes,omitempty"`
	Tags        datatypes.JSON `gorm:"column:tags;type:jsonb" json:"tags"`
	CreatedAt   time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"not null;default:now()" json:"updated_at"`
}

func (IntakeItem) TableName() string { return "intake_items" }

func (it *IntakeItem) TagList() []string {
	return decodeTags(it.Tags)
}

func (it *IntakeItem) SetTags(tags []string) {
	it.Tags = encodeTags(tags)
}

// Tags persist as a jsonb array. Order is preserved on disk but consumers
// treat the list as a duplicate-tolerant set.
func decodeTags(raw datatypes.JSON) []string {
	if len(raw) == 0 {
		return nil
	}
	var tags []string
	if err := json.Unmarshal(raw, &tags); err != nil {
		return nil
	}
	return tags
}

func encodeTags(tags []string) datatypes.JSON {
	if tags == nil {
		tags = []string{}
	}
	raw, err := json.Marshal(tags)
	if err != nil {
		return datatypes.JSON([]byte("[]"))
	}
	return datatypes.JSON(raw)
}
