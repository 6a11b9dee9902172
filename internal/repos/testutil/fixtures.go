package testutil

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/yungbote/assetvault-backend/internal/types"
)

func SeedBatch(tb testing.TB, ctx context.Context, tx *gorm.DB, month string) *types.IntakeBatch {
	tb.Helper()
	b := &types.IntakeBatch{
		ID:        uuid.New(),
		Month:     month,
		Source:    "vendor drop",
		CreatedBy: "seed@example.com",
	}
	if err := tx.WithContext(ctx).Create(b).Error; err != nil {
		tb.Fatalf("seed batch: %v", err)
	}
	return b
}

func SeedItem(tb testing.TB, ctx context.Context, tx *gorm.DB, batchID uuid.UUID, status string) *types.IntakeItem {
	tb.Helper()
	it := &types.IntakeItem{
		ID:       uuid.New(),
		BatchID:  batchID,
		Uploader: "seed@example.com",
		Status:   status,
		RawName:  "item",
		Tags:     datatypes.JSON([]byte("[]")),
	}
	if err := tx.WithContext(ctx).Create(it).Error; err != nil {
		tb.Fatalf("seed item: %v", err)
	}
	return it
}

func SeedFile(tb testing.TB, ctx context.Context, tx *gorm.DB, itemID uuid.UUID, fileName string) *types.IntakeFile {
	tb.Helper()
	f := &types.IntakeFile{
		ID:           uuid.New(),
		IntakeItemID: itemID,
		Bucket:       "intake-staging",
		ObjectPath:   "intake/" + itemID.String() + "/" + fileName,
		FileName:     fileName,
		MimeType:     "image/png",
		SizeBytes:    64,
	}
	if err := tx.WithContext(ctx).Create(f).Error; err != nil {
		tb.Fatalf("seed file: %v", err)
	}
	return f
}

func SeedAsset(tb testing.TB, ctx context.Context, tx *gorm.DB, category, property, subProperty string) *types.Asset {
	tb.Helper()
	a := &types.Asset{
		ID:          uuid.New(),
		Name:        "asset",
		Title:       "asset",
		Category:    category,
		Property:    property,
		SubProperty: subProperty,
		Tags:        datatypes.JSON([]byte("[]")),
		CreatedBy:   "seed@example.com",
	}
	if err := tx.WithContext(ctx).Create(a).Error; err != nil {
		tb.Fatalf("seed asset: %v", err)
	}
	return a
}
