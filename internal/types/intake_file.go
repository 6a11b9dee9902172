package types

import (
	"github.com/google/uuid"
)

type IntakeFile struct {
	ID           uuid.UUID   `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	IntakeItemID uuid.UUID   `gorm:"type:uuid;not null;index" json:"intake_item_id"`
	IntakeItem   *IntakeItem `gorm:"constraint:OnDelete:CASCADE;foreignKey:IntakeItemID;references:ID" json:"intake_item,omitempty"`
	Bucket       string      `gorm:"column:bucket;not null" json:"bucket"`
	ObjectPath   string      `gorm:"column:object_path;not null" json:"object_path"`
	FileName     string      `gorm:"column:file_name;not null" json:"file_name"`
	MimeType     string      `gorm:"column:mime_type" json:"mime_type,omitempty"`
	SizeBytes    int64       `gorm:"column:size_bytes" json:"size_bytes,omitempty"`
}

func (IntakeFile) TableName() string { return "intake_files" }
