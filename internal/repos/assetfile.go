package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/assetvault-backend/internal/platform/logger"
	"github.com/yungbote/assetvault-backend/internal/types"
)

type AssetFileRepo interface {
	Create(ctx context.Context, tx *gorm.DB, files []*types.AssetFile) ([]*types.AssetFile, error)
	GetByAssetID(ctx context.Context, tx *gorm.DB, assetID uuid.UUID) ([]*types.AssetFile, error)
	CountByAssetID(ctx context.Context, tx *gorm.DB, assetID uuid.UUID) (int64, error)
}

type assetFileRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewAssetFileRepo(db *gorm.DB, baseLog *logger.Logger) AssetFileRepo {
	return &assetFileRepo{db: db, log: baseLog.With("repo", "AssetFileRepo")}
}

func (r *assetFileRepo) Create(ctx context.Context, tx *gorm.DB, files []*types.AssetFile) ([]*types.AssetFile, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if len(files) == 0 {
		return []*types.AssetFile{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&files).Error; err != nil {
		return nil, err
	}
	return files, nil
}

func (r *assetFileRepo) GetByAssetID(ctx context.Context, tx *gorm.DB, assetID uuid.UUID) ([]*types.AssetFile, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*types.AssetFile
	if err := transaction.WithContext(ctx).
		Where("asset_id = ?", assetID).
		Order("file_name ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *assetFileRepo) CountByAssetID(ctx context.Context, tx *gorm.DB, assetID uuid.UUID) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.AssetFile{}).
		Where("asset_id = ?", assetID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
