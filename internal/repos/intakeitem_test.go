package repos

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/yungbote/assetvault-backend/internal/repos/testutil"
	"github.com/yungbote/assetvault-backend/internal/types"
)

func TestIntakeItemRepoStatusTransitions(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	repo := NewIntakeItemRepo(db, testutil.Logger(t))

	batch := testutil.SeedBatch(t, ctx, tx, "2026-03")
	item := testutil.SeedItem(t, ctx, tx, batch.ID, types.IntakeStatusUnsorted)

	affected, err := repo.UpdateStatusIf(ctx, tx, item.ID, types.IntakeStatusUnsorted, types.IntakeStatusPromoted)
	if err != nil {
		t.Fatalf("UpdateStatusIf: %v", err)
	}
	if affected != 1 {
		t.Fatalf("affected: want=1 got=%d", affected)
	}

	// The guard no longer matches once the status moved on.
	affected, err = repo.UpdateStatusIf(ctx, tx, item.ID, types.IntakeStatusUnsorted, types.IntakeStatusArchived)
	if err != nil {
		t.Fatalf("second UpdateStatusIf: %v", err)
	}
	if affected != 0 {
		t.Fatalf("affected after flip: want=0 got=%d", affected)
	}

	got, err := repo.GetByID(ctx, tx, item.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Status != types.IntakeStatusPromoted {
		t.Fatalf("status: want %q, got %q", types.IntakeStatusPromoted, got.Status)
	}
}

func TestIntakeItemRepoGetByIDMissing(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	repo := NewIntakeItemRepo(db, testutil.Logger(t))

	got, err := repo.GetByID(context.Background(), tx, uuid.New())
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got != nil {
		t.Fatalf("want nil for a missing item, got %+v", got)
	}
}

func TestIntakeItemRepoFieldValueOps(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	repo := NewIntakeItemRepo(db, testutil.Logger(t))

	batch := testutil.SeedBatch(t, ctx, tx, "2026-03")
	unsorted := testutil.SeedItem(t, ctx, tx, batch.ID, types.IntakeStatusUnsorted)
	promoted := testutil.SeedItem(t, ctx, tx, batch.ID, types.IntakeStatusPromoted)
	for _, id := range []uuid.UUID{unsorted.ID, promoted.ID} {
		if err := repo.UpdateFields(ctx, tx, id, map[string]interface{}{"property": "Helmte"}); err != nil {
			t.Fatalf("UpdateFields: %v", err)
		}
	}

	count, err := repo.CountByFieldValue(ctx, tx, types.TaxonomyFieldProperty, "Helmte", types.IntakeStatusUnsorted)
	if err != nil {
		t.Fatalf("CountByFieldValue: %v", err)
	}
	if count != 1 {
		t.Fatalf("count scoped to unsorted: want=1 got=%d", count)
	}

	renamed, err := repo.UpdateFieldValue(ctx, tx, types.TaxonomyFieldProperty, "Helmte", "Helmet", types.IntakeStatusUnsorted)
	if err != nil {
		t.Fatalf("UpdateFieldValue: %v", err)
	}
	if renamed != 1 {
		t.Fatalf("renamed: want=1 got=%d", renamed)
	}

	// The promoted row keeps the old value; the rename was status-scoped.
	got, err := repo.GetByID(ctx, tx, promoted.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Property != "Helmte" {
		t.Fatalf("promoted row property: want %q, got %q", "Helmte", got.Property)
	}
}
