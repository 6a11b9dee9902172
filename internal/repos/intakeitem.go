package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/assetvault-backend/internal/platform/logger"
	"github.com/yungbote/assetvault-backend/internal/types"
)

type IntakeItemRepo interface {
	Create(ctx context.Context, tx *gorm.DB, items []*types.IntakeItem) ([]*types.IntakeItem, error)
	GetByID(ctx context.Context, tx *gorm.DB, itemID uuid.UUID) (*types.IntakeItem, error)
	ListByStatus(ctx context.Context, tx *gorm.DB, status string, limit int) ([]*types.IntakeItem, error)
	UpdateFields(ctx context.Context, tx *gorm.DB, itemID uuid.UUID, updates map[string]interface{}) error
	// UpdateStatusIf flips status only when the row still holds fromStatus.
	// The returned count is zero when another operator got there first.
	UpdateStatusIf(ctx context.Context, tx *gorm.DB, itemID uuid.UUID, fromStatus, toStatus string) (int64, error)
	CountByFieldValue(ctx context.Context, tx *gorm.DB, field types.TaxonomyField, value, status string) (int64, error)
	UpdateFieldValue(ctx context.Context, tx *gorm.DB, field types.TaxonomyField, fromValue, toValue, status string) (int64, error)
}

type intakeItemRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewIntakeItemRepo(db *gorm.DB, baseLog *logger.Logger) IntakeItemRepo {
	return &intakeItemRepo{db: db, log: baseLog.With("repo", "IntakeItemRepo")}
}

func (r *intakeItemRepo) Create(ctx context.Context, tx *gorm.DB, items []*types.IntakeItem) ([]*types.IntakeItem, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if len(items) == 0 {
		return []*types.IntakeItem{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *intakeItemRepo) GetByID(ctx context.Context, tx *gorm.DB, itemID uuid.UUID) (*types.IntakeItem, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var item types.IntakeItem
	err := transaction.WithContext(ctx).
		Where("id = ?", itemID).
		First(&item).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

func (r *intakeItemRepo) ListByStatus(ctx context.Context, tx *gorm.DB, status string, limit int) ([]*types.IntakeItem, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*types.IntakeItem
	q := transaction.WithContext(ctx).
		Where("status = ?", status).
		Order("created_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *intakeItemRepo) UpdateFields(ctx context.Context, tx *gorm.DB, itemID uuid.UUID, updates map[string]interface{}) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if len(updates) == 0 {
		return nil
	}
	return transaction.WithContext(ctx).
		Model(&types.IntakeItem{}).
		Where("id = ?", itemID).
		Updates(updates).Error
}

func (r *intakeItemRepo) UpdateStatusIf(ctx context.Context, tx *gorm.DB, itemID uuid.UUID, fromStatus, toStatus string) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	result := transaction.WithContext(ctx).
		Model(&types.IntakeItem{}).
		Where("id = ? AND status = ?", itemID, fromStatus).
		Update("status", toStatus)
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

func (r *intakeItemRepo) CountByFieldValue(ctx context.Context, tx *gorm.DB, field types.TaxonomyField, value, status string) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var count int64
	q := transaction.WithContext(ctx).
		Model(&types.IntakeItem{}).
		Where(field.Column()+" = ?", value)
	if status != "" {
		q = q.Where("status = ?", status)
	}
	if err := q.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *intakeItemRepo) UpdateFieldValue(ctx context.Context, tx *gorm.DB, field types.TaxonomyField, fromValue, toValue, status string) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	q := transaction.WithContext(ctx).
		Model(&types.IntakeItem{}).
		Where(field.Column()+" = ?", fromValue)
	if status != "" {
		q = q.Where("status = ?", status)
	}
	result := q.Update(field.Column(), toValue)
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}
