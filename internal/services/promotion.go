package services

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/assetvault-backend/internal/platform/gcs"
	"github.com/yungbote/assetvault-backend/internal/platform/logger"
	"github.com/yungbote/assetvault-backend/internal/repos"
	"github.com/yungbote/assetvault-backend/internal/types"
)

// PromoteInput carries the resolved metadata for a promotion. Name may be
// empty; the workflow falls back to the item's stored name and then to the
// first file's name with its extension stripped.
type PromoteInput struct {
	Name        string
	Category    string
	Property    string
	SubProperty string
	Tags        []string
	Notes       string
}

type PromoteResult struct {
	AssetID             uuid.UUID `json:"asset_id,omitempty"`
	AlreadyPromoted     bool      `json:"already_promoted"`
	PromotedFileCount   int       `json:"promoted_file_count"`
	DeletedStagingCount int64     `json:"deleted_staging_count"`
}

// PromotionService turns one unsorted intake item into a catalog asset and
// removes the staging originals. The sequence is strictly ordered and
// fail-fast; there is no compensation, so a failure mid-way can leave the
// asset created with some files copied. Operators reconcile manually.
type PromotionService interface {
	Promote(ctx context.Context, itemID uuid.UUID, input PromoteInput, actor string) (*PromoteResult, error)
}

type promotionService struct {
	db            *gorm.DB
	log           *logger.Logger
	bucketService gcs.BucketService
	itemRepo      repos.IntakeItemRepo
	fileRepo      repos.IntakeFileRepo
	assetRepo     repos.AssetRepo
	assetFileRepo repos.AssetFileRepo
	auditService  AuditService
	taxonomy      TaxonomyService
	httpClient    *http.Client
}

func NewPromotionService(
	db *gorm.DB,
	baseLog *logger.Logger,
	bucketService gcs.BucketService,
	itemRepo repos.IntakeItemRepo,
	fileRepo repos.IntakeFileRepo,
	assetRepo repos.AssetRepo,
	assetFileRepo repos.AssetFileRepo,
	auditService AuditService,
	taxonomy TaxonomyService,
) PromotionService {
	return &promotionService{
		db:            db,
		log:           baseLog.With("service", "PromotionService"),
		bucketService: bucketService,
		itemRepo:      itemRepo,
		fileRepo:      fileRepo,
		assetRepo:     assetRepo,
		assetFileRepo: assetFileRepo,
		auditService:  auditService,
		taxonomy:      taxonomy,
		httpClient:    &http.Client{Timeout: 2 * time.Minute},
	}
}

func (ps *promotionService) Promote(ctx context.Context, itemID uuid.UUID, input PromoteInput, actor string) (*PromoteResult, error) {
	item, err := ps.itemRepo.GetByID(ctx, nil, itemID)
	if err != nil {
		return nil, fmt.Errorf("failed to load intake item: %w", err)
	}
	if item == nil {
		return nil, fmt.Errorf("intake item not found")
	}
	if item.Status != types.IntakeStatusUnsorted {
		return &PromoteResult{AlreadyPromoted: true}, nil
	}

	// Re-fetch the file list so the copy loop never acts on stale state.
	files, err := ps.fileRepo.GetByItemID(ctx, nil, itemID)
	if err != nil {
		return nil, fmt.Errorf("failed to load intake files: %w", err)
	}
	// Metadata validation runs before the file check: an item with a blank
	// name and no files reports the missing name, not the missing files.
	name := resolveAssetName(input.Name, item.RawName, files)
	if name == "" {
		return nil, fmt.Errorf("Name is required")
	}
	category := strings.TrimSpace(input.Category)
	if category == "" {
		return nil, fmt.Errorf("Category is required")
	}
	property := strings.TrimSpace(input.Property)
	if property == "" {
		return nil, fmt.Errorf("Property is required")
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("cannot promote an item with no files")
	}

	asset := &types.Asset{
		ID:          uuid.New(),
		Name:        name,
		Title:       name,
		Category:    category,
		Property:    property,
		SubProperty: strings.TrimSpace(input.SubProperty),
		Notes:       input.Notes,
		CreatedBy:   actor,
	}
	asset.SetTags(input.Tags)
	if _, err := ps.assetRepo.Create(ctx, nil, []*types.Asset{asset}); err != nil {
		return nil, fmt.Errorf("failed to create asset: %w", err)
	}

	pending := make([]*types.AssetFile, 0, len(files))
	for _, f := range files {
		copied, err := ps.copyFileToAssets(ctx, asset.ID, f)
		if err != nil {
			return nil, err
		}
		pending = append(pending, copied)
	}

	if _, err := ps.assetFileRepo.Create(ctx, nil, pending); err != nil {
		return nil, fmt.Errorf("failed to record asset files: %w", err)
	}

	affected, err := ps.itemRepo.UpdateStatusIf(ctx, nil, itemID, types.IntakeStatusUnsorted, types.IntakeStatusPromoted)
	if err != nil {
		return nil, fmt.Errorf("failed to mark item promoted: %w", err)
	}
	if affected == 0 {
		// Another operator promoted the item between our status check and
		// here. The asset we created needs manual reconciliation.
		return nil, fmt.Errorf("already promoted by another operator; asset %s needs review", asset.ID)
	}

	deleted, err := ps.deleteStagingFiles(ctx, itemID)
	if err != nil {
		return nil, err
	}

	ps.auditService.Append(ctx, actor, "intake_item_promoted", "intake_item", itemID.String(), map[string]interface{}{
		"asset_id":              asset.ID.String(),
		"promoted_file_count":   len(pending),
		"deleted_staging_count": deleted,
	})
	ps.taxonomy.InvalidateFacets(ctx)

	return &PromoteResult{
		AssetID:             asset.ID,
		PromotedFileCount:   len(pending),
		DeletedStagingCount: deleted,
	}, nil
}

// copyFileToAssets moves one staged file's bytes into the permanent bucket:
// signed download URL against the source, fetch, upload under a fresh
// token-namespaced path.
func (ps *promotionService) copyFileToAssets(ctx context.Context, assetID uuid.UUID, f *types.IntakeFile) (*types.AssetFile, error) {
	srcURL, err := ps.bucketService.SignedDownloadURL(f.Bucket, f.ObjectPath, gcs.SignedURLTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to sign source URL for %q: %w", f.FileName, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srcURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build download request for %q: %w", f.FileName, err)
	}
	resp, err := ps.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to download %q: %w", f.FileName, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to download %q: status %d", f.FileName, resp.StatusCode)
	}

	mimeType := f.MimeType
	if mimeType == "" {
		mimeType = resp.Header.Get("Content-Type")
	}

	dstKey := assetObjectKey(assetID, f.FileName)
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read %q: %w", f.FileName, err)
	}
	if err := ps.bucketService.Upload(ctx, types.AssetFileBucket, dstKey, bytes.NewReader(body), mimeType); err != nil {
		return nil, fmt.Errorf("failed to copy %q to assets: %w", f.FileName, err)
	}

	sizeBytes := f.SizeBytes
	if sizeBytes == 0 {
		sizeBytes = int64(len(body))
	}

	return &types.AssetFile{
		ID:         uuid.New(),
		AssetID:    assetID,
		Bucket:     types.AssetFileBucket,
		ObjectPath: dstKey,
		FileName:   f.FileName,
		MimeType:   mimeType,
		SizeBytes:  sizeBytes,
	}, nil
}

// deleteStagingFiles removes the staging originals: object paths grouped by
// bucket, one remove call per bucket, then the rows. Zero remaining files is
// not an error.
func (ps *promotionService) deleteStagingFiles(ctx context.Context, itemID uuid.UUID) (int64, error) {
	files, err := ps.fileRepo.GetByItemID(ctx, nil, itemID)
	if err != nil {
		return 0, fmt.Errorf("failed to re-read intake files: %w", err)
	}
	if len(files) == 0 {
		return 0, nil
	}

	byBucket := map[string][]string{}
	for _, f := range files {
		byBucket[f.Bucket] = append(byBucket[f.Bucket], f.ObjectPath)
	}
	for bucket, keys := range byBucket {
		if err := ps.bucketService.Remove(ctx, bucket, keys); err != nil {
			return 0, fmt.Errorf("failed to remove staging objects from %q: %w", bucket, err)
		}
	}

	deleted, err := ps.fileRepo.DeleteByItemID(ctx, nil, itemID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete intake file rows: %w", err)
	}
	return deleted, nil
}

func resolveAssetName(edited, stored string, files []*types.IntakeFile) string {
	if name := strings.TrimSpace(edited); name != "" {
		return name
	}
	if name := strings.TrimSpace(stored); name != "" {
		return name
	}
	if len(files) > 0 {
		return strings.TrimSpace(stripExtension(files[0].FileName))
	}
	return ""
}
