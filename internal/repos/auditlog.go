package repos

import (
	"context"

	"gorm.io/gorm"

	"github.com/yungbote/assetvault-backend/internal/platform/logger"
	"github.com/yungbote/assetvault-backend/internal/types"
)

type AuditLogRepo interface {
	Create(ctx context.Context, tx *gorm.DB, entries []*types.AuditLogEntry) ([]*types.AuditLogEntry, error)
	ListRecent(ctx context.Context, tx *gorm.DB, limit int) ([]*types.AuditLogEntry, error)
}

type auditLogRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewAuditLogRepo(db *gorm.DB, baseLog *logger.Logger) AuditLogRepo {
	return &auditLogRepo{db: db, log: baseLog.With("repo", "AuditLogRepo")}
}

func (r *auditLogRepo) Create(ctx context.Context, tx *gorm.DB, entries []*types.AuditLogEntry) ([]*types.AuditLogEntry, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if len(entries) == 0 {
		return []*types.AuditLogEntry{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *auditLogRepo) ListRecent(ctx context.Context, tx *gorm.DB, limit int) ([]*types.AuditLogEntry, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if limit <= 0 {
		limit = 100
	}
	var results []*types.AuditLogEntry
	if err := transaction.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
