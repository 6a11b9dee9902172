package services

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/yungbote/assetvault-backend/internal/platform/logger"
	"github.com/yungbote/assetvault-backend/internal/repos"
	"github.com/yungbote/assetvault-backend/internal/types"
)

// AuditService appends to the audit trail. Append is best-effort by
// contract: failures are logged and dropped, they never propagate to the
// operation being audited.
type AuditService interface {
	Append(ctx context.Context, actor, action, targetType, targetID string, details map[string]interface{})
	ListRecent(ctx context.Context, limit int) ([]*types.AuditLogEntry, error)
}

type auditService struct {
	db           *gorm.DB
	log          *logger.Logger
	auditLogRepo repos.AuditLogRepo
}

func NewAuditService(db *gorm.DB, baseLog *logger.Logger, auditLogRepo repos.AuditLogRepo) AuditService {
	return &auditService{
		db:           db,
		log:          baseLog.With("service", "AuditService"),
		auditLogRepo: auditLogRepo,
	}
}

func (as *auditService) Append(ctx context.Context, actor, action, targetType, targetID string, details map[string]interface{}) {
	var raw datatypes.JSON
	if details != nil {
		encoded, err := json.Marshal(details)
		if err != nil {
			as.log.Warn("Failed to encode audit details, appending entry without them",
				"action", action, "error", err)
		} else {
			raw = datatypes.JSON(encoded)
		}
	}
	entry := &types.AuditLogEntry{
		ID:         uuid.New(),
		Actor:      actor,
		Action:     action,
		TargetType: targetType,
		TargetID:   targetID,
		Details:    raw,
	}
	if _, err := as.auditLogRepo.Create(ctx, nil, []*types.AuditLogEntry{entry}); err != nil {
		as.log.Warn("Failed to append audit entry",
			"action", action,
			"target_type", targetType,
			"target_id", targetID,
			"error", err,
		)
	}
}

func (as *auditService) ListRecent(ctx context.Context, limit int) ([]*types.AuditLogEntry, error) {
	return as.auditLogRepo.ListRecent(ctx, nil, limit)
}
