package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/assetvault-backend/internal/platform/logger"
	"github.com/yungbote/assetvault-backend/internal/types"
)

type IntakeBatchRepo interface {
	Create(ctx context.Context, tx *gorm.DB, batches []*types.IntakeBatch) ([]*types.IntakeBatch, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, batchIDs []uuid.UUID) ([]*types.IntakeBatch, error)
}

type intakeBatchRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewIntakeBatchRepo(db *gorm.DB, baseLog *logger.Logger) IntakeBatchRepo {
	return &intakeBatchRepo{db: db, log: baseLog.With("repo", "IntakeBatchRepo")}
}

func (r *intakeBatchRepo) Create(ctx context.Context, tx *gorm.DB, batches []*types.IntakeBatch) ([]*types.IntakeBatch, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if len(batches) == 0 {
		return []*types.IntakeBatch{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&batches).Error; err != nil {
		return nil, err
	}
	return batches, nil
}

func (r *intakeBatchRepo) GetByIDs(ctx context.Context, tx *gorm.DB, batchIDs []uuid.UUID) ([]*types.IntakeBatch, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*types.IntakeBatch
	if len(batchIDs) == 0 {
		return results, nil
	}
	if err := transaction.WithContext(ctx).
		Where("id IN ?", batchIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
