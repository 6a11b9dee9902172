package services

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/assetvault-backend/internal/types"
)

type fakeAuditLogRepo struct {
	entries   []*types.AuditLogEntry
	createErr error
}

func (r *fakeAuditLogRepo) Create(ctx context.Context, tx *gorm.DB, entries []*types.AuditLogEntry) ([]*types.AuditLogEntry, error) {
	if r.createErr != nil {
		return nil, r.createErr
	}
	r.entries = append(r.entries, entries...)
	return entries, nil
}

func (r *fakeAuditLogRepo) ListRecent(ctx context.Context, tx *gorm.DB, limit int) ([]*types.AuditLogEntry, error) {
	return r.entries, nil
}

func TestAuditAppendRecordsEntry(t *testing.T) {
	repo := &fakeAuditLogRepo{}
	svc := NewAuditService(nil, testLogger(t), repo)

	svc.Append(context.Background(), "op@example.com", "asset_updated", "asset", "abc", map[string]interface{}{"field": "name"})

	if len(repo.entries) != 1 {
		t.Fatalf("entries: want=1 got=%d", len(repo.entries))
	}
	entry := repo.entries[0]
	if entry.ID == uuid.Nil {
		t.Fatalf("entry id must be assigned before insert")
	}
	if entry.Actor != "op@example.com" || entry.Action != "asset_updated" {
		t.Fatalf("entry fields: %+v", entry)
	}

	var details map[string]string
	if err := json.Unmarshal(entry.Details, &details); err != nil {
		t.Fatalf("details unmarshal: %v", err)
	}
	if details["field"] != "name" {
		t.Fatalf("details: got %v", details)
	}
}

func TestAuditAppendSwallowsFailures(t *testing.T) {
	repo := &fakeAuditLogRepo{createErr: fmt.Errorf("db down")}
	svc := NewAuditService(nil, testLogger(t), repo)

	// Append is best-effort; a repo failure must not panic or propagate.
	svc.Append(context.Background(), "op@example.com", "asset_updated", "asset", "abc", nil)
	if len(repo.entries) != 0 {
		t.Fatalf("entries: want=0 got=%d", len(repo.entries))
	}
}
