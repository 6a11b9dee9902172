package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Asset struct {
	ID          uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Title       string         `gorm:"column:title" json:"title,omitempty"`
	Name        string         `gorm:"column:name;not null" json:"name"`
	Category    string         `gorm:"column:category;not null;index" json:"category"`
	Property    string         `gorm:"column:property;not null;index" json:"property"`
	SubProperty string         `gorm:"column:sub_property;index" json:"sub_property,omitempty"`
	Tags        datatypes.JSON `gorm:"column:tags;type:jsonb" json:"tags"`
	Notes       string         `gorm:"column:notes" json:"notes,omitempty"`
	CreatedBy   string         `gorm:"column:created_by;not null" json:"created_by"`
	CreatedAt   time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"not null;default:now()" json:"updated_at"`
}

func (Asset) TableName() string { return "assets" }

func (a *Asset) TagList() []string {
	return decodeTags(a.Tags)
}

func (a *Asset) SetTags(tags []string) {
	a.Tags = encodeTags(tags)
}
