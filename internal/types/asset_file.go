package types

import (
	"github.com/google/uuid"
)

// AssetFileBucket is the single permanent bucket asset objects live in.
// Object paths inside it embed the owning asset id plus a random token, which
// keeps them unique without coordination.
const AssetFileBucket = "assets"

type AssetFile struct {
	ID         uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	AssetID    uuid.UUID `gorm:"type:uuid;not null;index" json:"asset_id"`
	Asset      *Asset    `gorm:"constraint:OnDelete:CASCADE;foreignKey:AssetID;references:ID" json:"asset,omitempty"`
	Bucket     string    `gorm:"column:bucket;not null;default:'assets'" json:"bucket"`
	ObjectPath string    `gorm:"column:object_path;not null" json:"object_path"`
	FileName   string    `gorm:"column:file_name;not null" json:"file_name"`
	MimeType   string    `gorm:"column:mime_type" json:"mime_type,omitempty"`
	SizeBytes  int64     `gorm:"column:size_bytes" json:"size_bytes,omitempty"`
}

func (AssetFile) TableName() string { return "asset_files" }
