package services

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/assetvault-backend/internal/platform/logger"
	"github.com/yungbote/assetvault-backend/internal/repos"
	"github.com/yungbote/assetvault-backend/internal/types"
)

const bulkFixSampleLimit = 12

// ConfirmationToken is the literal an operator must type before Apply runs.
// Matching is case-insensitive after trimming.
const ConfirmationToken = "APPLY"

type BulkFixParams struct {
	Field          types.TaxonomyField `json:"field"`
	FromValue      string              `json:"from_value"`
	ToValue        string              `json:"to_value"`
	IncludeStaging bool                `json:"include_staging"`
}

type BulkFixPreview struct {
	AssetCount     int64       `json:"asset_count"`
	SampleAssetIDs []uuid.UUID `json:"sample_asset_ids"`
	StagingCount   int64       `json:"staging_count"`
}

type BulkFixApplyResult struct {
	AssetsUpdated  int64 `json:"assets_updated"`
	StagingUpdated int64 `json:"staging_updated"`
}

type BulkFixService interface {
	// Preview counts matching catalog rows exactly and samples recent ids
	// for operator inspection. Staging rows are counted only when requested,
	// and only in the unsorted status.
	Preview(ctx context.Context, params BulkFixParams) (*BulkFixPreview, error)
	// Apply renames the field value across the catalog, then optionally
	// across unsorted staging rows. A catalog failure aborts before the
	// staging update runs; a staging failure after catalog success is not
	// rolled back.
	Apply(ctx context.Context, params BulkFixParams, preview *BulkFixPreview, actor string) (*BulkFixApplyResult, error)
}

type bulkFixService struct {
	db           *gorm.DB
	log          *logger.Logger
	assetRepo    repos.AssetRepo
	itemRepo     repos.IntakeItemRepo
	auditService AuditService
	taxonomy     TaxonomyService
}

func NewBulkFixService(
	db *gorm.DB,
	baseLog *logger.Logger,
	assetRepo repos.AssetRepo,
	itemRepo repos.IntakeItemRepo,
	auditService AuditService,
	taxonomy TaxonomyService,
) BulkFixService {
	return &bulkFixService{
		db:           db,
		log:          baseLog.With("service", "BulkFixService"),
		assetRepo:    assetRepo,
		itemRepo:     itemRepo,
		auditService: auditService,
		taxonomy:     taxonomy,
	}
}

func (bs *bulkFixService) Preview(ctx context.Context, params BulkFixParams) (*BulkFixPreview, error) {
	if _, err := types.ParseTaxonomyField(string(params.Field)); err != nil {
		return nil, err
	}
	from := strings.TrimSpace(params.FromValue)
	if from == "" {
		return nil, fmt.Errorf("from-value is required")
	}

	assetCount, err := bs.assetRepo.CountByFieldValue(ctx, nil, params.Field, from)
	if err != nil {
		return nil, fmt.Errorf("failed to count matching assets: %w", err)
	}
	sampleIDs, err := bs.assetRepo.SampleIDsByFieldValue(ctx, nil, params.Field, from, bulkFixSampleLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to sample matching assets: %w", err)
	}

	preview := &BulkFixPreview{
		AssetCount:     assetCount,
		SampleAssetIDs: sampleIDs,
	}
	if params.IncludeStaging {
		stagingCount, err := bs.itemRepo.CountByFieldValue(ctx, nil, params.Field, from, types.IntakeStatusUnsorted)
		if err != nil {
			return nil, fmt.Errorf("failed to count matching staging items: %w", err)
		}
		preview.StagingCount = stagingCount
	}
	return preview, nil
}

func (bs *bulkFixService) Apply(ctx context.Context, params BulkFixParams, preview *BulkFixPreview, actor string) (*BulkFixApplyResult, error) {
	if _, err := types.ParseTaxonomyField(string(params.Field)); err != nil {
		return nil, err
	}
	from := strings.TrimSpace(params.FromValue)
	to := strings.TrimSpace(params.ToValue)
	if from == "" || to == "" {
		return nil, fmt.Errorf("from-value and to-value are required")
	}
	if from == to {
		return nil, fmt.Errorf("from-value and to-value must differ")
	}

	assetsUpdated, err := bs.assetRepo.UpdateFieldValue(ctx, nil, params.Field, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to update catalog rows: %w", err)
	}

	var stagingUpdated int64
	if params.IncludeStaging {
		stagingUpdated, err = bs.itemRepo.UpdateFieldValue(ctx, nil, params.Field, from, to, types.IntakeStatusUnsorted)
		if err != nil {
			// Catalog rows are already renamed; there is no rollback.
			return nil, fmt.Errorf("failed to update staging rows (catalog already updated): %w", err)
		}
	}

	details := map[string]interface{}{
		"field": string(params.Field),
		"from":  from,
		"to":    to,
	}
	if preview != nil {
		details["previewed_asset_count"] = preview.AssetCount
		details["previewed_staging_count"] = preview.StagingCount
	}
	bs.auditService.Append(ctx, actor, "bulk_fix_applied", "taxonomy_field", string(params.Field), details)
	bs.taxonomy.InvalidateFacets(ctx)

	return &BulkFixApplyResult{
		AssetsUpdated:  assetsUpdated,
		StagingUpdated: stagingUpdated,
	}, nil
}

type BulkFixState int

const (
	BulkFixIdle BulkFixState = iota
	BulkFixPreviewed
	BulkFixApplying
)

// BulkFixSession is one operator's preview/apply state machine:
// Idle -> Previewed -> Applying -> Idle. Any parameter edit drops a held
// preview and returns to Idle, so Apply can never run against stale counts.
type BulkFixSession struct {
	mu      sync.Mutex
	svc     BulkFixService
	params  BulkFixParams
	state   BulkFixState
	preview *BulkFixPreview
}

func NewBulkFixSession(svc BulkFixService) *BulkFixSession {
	return &BulkFixSession{svc: svc, state: BulkFixIdle}
}

func (s *BulkFixSession) State() BulkFixState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *BulkFixSession) Params() BulkFixParams {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.params
}

func (s *BulkFixSession) Preview() *BulkFixPreview {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.preview
}

// SetParams replaces the working parameters. Any change invalidates a prior
// preview.
func (s *BulkFixSession) SetParams(params BulkFixParams) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if params != s.params {
		s.preview = nil
		s.state = BulkFixIdle
	}
	s.params = params
}

func (s *BulkFixSession) RunPreview(ctx context.Context) (*BulkFixPreview, error) {
	s.mu.Lock()
	params := s.params
	s.mu.Unlock()

	preview, err := s.svc.Preview(ctx, params)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if params != s.params {
		// Parameters changed while the preview ran; the result is stale.
		return preview, nil
	}
	s.preview = preview
	s.state = BulkFixPreviewed
	return preview, nil
}

// CanApply reports whether every Apply guard holds: a fresh preview, both
// values present and different, a nonzero previewed match count, and the
// typed confirmation token.
func (s *BulkFixSession) CanApply(confirmation string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.canApplyLocked(confirmation)
}

func (s *BulkFixSession) canApplyLocked(confirmation string) bool {
	if s.state != BulkFixPreviewed || s.preview == nil {
		return false
	}
	from := strings.TrimSpace(s.params.FromValue)
	to := strings.TrimSpace(s.params.ToValue)
	if from == "" || to == "" || from == to {
		return false
	}
	if s.preview.AssetCount <= 0 {
		return false
	}
	return strings.EqualFold(strings.TrimSpace(confirmation), ConfirmationToken)
}

func (s *BulkFixSession) RunApply(ctx context.Context, confirmation, actor string) (*BulkFixApplyResult, error) {
	s.mu.Lock()
	if !s.canApplyLocked(confirmation) {
		s.mu.Unlock()
		return nil, fmt.Errorf("apply is not permitted: preview first and type %s to confirm", ConfirmationToken)
	}
	params := s.params
	preview := s.preview
	s.state = BulkFixApplying
	s.mu.Unlock()

	result, err := s.svc.Apply(ctx, params, preview, actor)

	s.mu.Lock()
	s.state = BulkFixIdle
	s.preview = nil
	s.mu.Unlock()

	if err != nil {
		return nil, err
	}
	return result, nil
}
