package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/assetvault-backend/internal/platform/gcs"
	"github.com/yungbote/assetvault-backend/internal/platform/logger"
	"github.com/yungbote/assetvault-backend/internal/repos"
	"github.com/yungbote/assetvault-backend/internal/types"
)

// AssetUpdate carries the editable catalog fields. All of them are mutable
// after promotion, but category and property may not be blanked.
type AssetUpdate struct {
	Title       string
	Name        string
	Category    string
	Property    string
	SubProperty string
	Notes       string
	Tags        []string
}

type AssetFileView struct {
	File    *types.AssetFile `json:"file"`
	ViewURL string           `json:"view_url,omitempty"`
}

type AssetDetail struct {
	Asset *types.Asset    `json:"asset"`
	Files []AssetFileView `json:"files"`
}

type AssetService interface {
	List(ctx context.Context, filter repos.AssetListFilter, limit int) ([]*types.Asset, error)
	Get(ctx context.Context, assetID uuid.UUID) (*AssetDetail, error)
	Update(ctx context.Context, assetID uuid.UUID, update AssetUpdate, actor string) error
}

type assetService struct {
	db            *gorm.DB
	log           *logger.Logger
	bucketService gcs.BucketService
	assetRepo     repos.AssetRepo
	assetFileRepo repos.AssetFileRepo
	auditService  AuditService
	taxonomy      TaxonomyService
}

func NewAssetService(
	db *gorm.DB,
	baseLog *logger.Logger,
	bucketService gcs.BucketService,
	assetRepo repos.AssetRepo,
	assetFileRepo repos.AssetFileRepo,
	auditService AuditService,
	taxonomy TaxonomyService,
) AssetService {
	return &assetService{
		db:            db,
		log:           baseLog.With("service", "AssetService"),
		bucketService: bucketService,
		assetRepo:     assetRepo,
		assetFileRepo: assetFileRepo,
		auditService:  auditService,
		taxonomy:      taxonomy,
	}
}

func (as *assetService) List(ctx context.Context, filter repos.AssetListFilter, limit int) ([]*types.Asset, error) {
	return as.assetRepo.List(ctx, nil, filter, limit)
}

func (as *assetService) Get(ctx context.Context, assetID uuid.UUID) (*AssetDetail, error) {
	asset, err := as.assetRepo.GetByID(ctx, nil, assetID)
	if err != nil {
		return nil, fmt.Errorf("failed to load asset: %w", err)
	}
	if asset == nil {
		return nil, fmt.Errorf("asset not found")
	}
	files, err := as.assetFileRepo.GetByAssetID(ctx, nil, assetID)
	if err != nil {
		return nil, fmt.Errorf("failed to load asset files: %w", err)
	}
	views := make([]AssetFileView, 0, len(files))
	for _, f := range files {
		view := AssetFileView{File: f}
		url, err := as.bucketService.SignedDownloadURL(f.Bucket, f.ObjectPath, gcs.SignedURLTTL)
		if err != nil {
			as.log.Warn("Failed to sign view URL for asset file", "asset_file_id", f.ID, "error", err)
		} else {
			view.ViewURL = url
		}
		views = append(views, view)
	}
	return &AssetDetail{Asset: asset, Files: views}, nil
}

func (as *assetService) Update(ctx context.Context, assetID uuid.UUID, update AssetUpdate, actor string) error {
	asset, err := as.assetRepo.GetByID(ctx, nil, assetID)
	if err != nil {
		return fmt.Errorf("failed to load asset: %w", err)
	}
	if asset == nil {
		return fmt.Errorf("asset not found")
	}
	name := strings.TrimSpace(update.Name)
	if name == "" {
		return fmt.Errorf("Name is required")
	}
	category := strings.TrimSpace(update.Category)
	if category == "" {
		return fmt.Errorf("Category is required")
	}
	property := strings.TrimSpace(update.Property)
	if property == "" {
		return fmt.Errorf("Property is required")
	}
	holder := &types.Asset{}
	holder.SetTags(update.Tags)
	updates := map[string]interface{}{
		"title":        strings.TrimSpace(update.Title),
		"name":         name,
		"category":     category,
		"property":     property,
		"sub_property": strings.TrimSpace(update.SubProperty),
		"notes":        update.Notes,
		"tags":         holder.Tags,
	}
	if err := as.assetRepo.UpdateFields(ctx, nil, assetID, updates); err != nil {
		return fmt.Errorf("failed to update asset: %w", err)
	}
	as.auditService.Append(ctx, actor, "asset_updated", "asset", assetID.String(), map[string]interface{}{
		"category": category,
		"property": property,
	})
	as.taxonomy.InvalidateFacets(ctx)
	return nil
}
