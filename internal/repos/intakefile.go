package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/assetvault-backend/internal/platform/logger"
	"github.com/yungbote/assetvault-backend/internal/types"
)

type IntakeFileRepo interface {
	Create(ctx context.Context, tx *gorm.DB, files []*types.IntakeFile) ([]*types.IntakeFile, error)
	// GetByItemID returns the staged files ordered by file name, which fixes
	// the copy order during promotion.
	GetByItemID(ctx context.Context, tx *gorm.DB, itemID uuid.UUID) ([]*types.IntakeFile, error)
	CountByItemID(ctx context.Context, tx *gorm.DB, itemID uuid.UUID) (int64, error)
	DeleteByItemID(ctx context.Context, tx *gorm.DB, itemID uuid.UUID) (int64, error)
}

type intakeFileRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewIntakeFileRepo(db *gorm.DB, baseLog *logger.Logger) IntakeFileRepo {
	return &intakeFileRepo{db: db, log: baseLog.With("repo", "IntakeFileRepo")}
}

func (r *intakeFileRepo) Create(ctx context.Context, tx *gorm.DB, files []*types.IntakeFile) ([]*types.IntakeFile, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if len(files) == 0 {
		return []*types.IntakeFile{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&files).Error; err != nil {
		return nil, err
	}
	return files, nil
}

func (r *intakeFileRepo) GetByItemID(ctx context.Context, tx *gorm.DB, itemID uuid.UUID) ([]*types.IntakeFile, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*types.IntakeFile
	if err := transaction.WithContext(ctx).
		Where("intake_item_id = ?", itemID).
		Order("file_name ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *intakeFileRepo) CountByItemID(ctx context.Context, tx *gorm.DB, itemID uuid.UUID) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.IntakeFile{}).
		Where("intake_item_id = ?", itemID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *intakeFileRepo) DeleteByItemID(ctx context.Context, tx *gorm.DB, itemID uuid.UUID) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	result := transaction.WithContext(ctx).
		Where("intake_item_id = ?", itemID).
		Delete(&types.IntakeFile{})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}
