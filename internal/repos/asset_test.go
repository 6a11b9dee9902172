package repos

import (
	"context"
	"testing"

	"github.com/yungbote/assetvault-backend/internal/repos/testutil"
	"github.com/yungbote/assetvault-backend/internal/types"
)

func TestAssetRepoSampleTaxonomy(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	repo := NewAssetRepo(db, testutil.Logger(t))

	testutil.SeedAsset(t, ctx, tx, "Hardware", "Hinges", "Brass")
	testutil.SeedAsset(t, ctx, tx, "Hardware", "Handles", "")
	testutil.SeedAsset(t, ctx, tx, "Textiles", "Rugs", "Wool")

	sample, err := repo.SampleTaxonomy(ctx, tx, 2)
	if err != nil {
		t.Fatalf("SampleTaxonomy: %v", err)
	}
	if len(sample) != 2 {
		t.Fatalf("sample size capped at limit: want=2 got=%d", len(sample))
	}
	for _, row := range sample {
		if row.Name != "" {
			t.Fatalf("sample must carry only taxonomy columns, got name %q", row.Name)
		}
	}
}

func TestAssetRepoFieldValueOps(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	repo := NewAssetRepo(db, testutil.Logger(t))

	first := testutil.SeedAsset(t, ctx, tx, "Hardware", "Helmte", "")
	testutil.SeedAsset(t, ctx, tx, "Hardware", "Helmte", "")
	testutil.SeedAsset(t, ctx, tx, "Hardware", "Helmet", "")

	count, err := repo.CountByFieldValue(ctx, tx, types.TaxonomyFieldProperty, "Helmte")
	if err != nil {
		t.Fatalf("CountByFieldValue: %v", err)
	}
	if count != 2 {
		t.Fatalf("count: want=2 got=%d", count)
	}

	ids, err := repo.SampleIDsByFieldValue(ctx, tx, types.TaxonomyFieldProperty, "Helmte", 1)
	if err != nil {
		t.Fatalf("SampleIDsByFieldValue: %v", err)
	}
	if len(ids) != 1 {
		t.Fatalf("sample ids capped at limit: want=1 got=%d", len(ids))
	}

	renamed, err := repo.UpdateFieldValue(ctx, tx, types.TaxonomyFieldProperty, "Helmte", "Helmet")
	if err != nil {
		t.Fatalf("UpdateFieldValue: %v", err)
	}
	if renamed != 2 {
		t.Fatalf("renamed: want=2 got=%d", renamed)
	}

	got, err := repo.GetByID(ctx, tx, first.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Property != "Helmet" {
		t.Fatalf("property after rename: want %q, got %q", "Helmet", got.Property)
	}
}
