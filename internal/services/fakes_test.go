package services

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/assetvault-backend/internal/platform/logger"
	"github.com/yungbote/assetvault-backend/internal/repos"
	"github.com/yungbote/assetvault-backend/internal/types"
)

func testLogger(tb testing.TB) *logger.Logger {
	tb.Helper()
	log, err := logger.New("test")
	if err != nil {
		tb.Fatalf("logger.New: %v", err)
	}
	return log
}

type fakeIntakeItemRepo struct {
	items map[uuid.UUID]*types.IntakeItem

	lastUpdates map[string]interface{}

	// forceNoRowsOnStatusUpdate simulates a concurrent status flip between
	// the initial read and the conditional update.
	forceNoRowsOnStatusUpdate bool
}

func newFakeIntakeItemRepo() *fakeIntakeItemRepo {
	return &fakeIntakeItemRepo{items: map[uuid.UUID]*types.IntakeItem{}}
}

func (r *fakeIntakeItemRepo) Create(ctx context.Context, tx *gorm.DB, items []*types.IntakeItem) ([]*types.IntakeItem, error) {
	for _, it := range items {
		r.items[it.ID] = it
	}
	return items, nil
}

func (r *fakeIntakeItemRepo) GetByID(ctx context.Context, tx *gorm.DB, itemID uuid.UUID) (*types.IntakeItem, error) {
	return r.items[itemID], nil
}

func (r *fakeIntakeItemRepo) ListByStatus(ctx context.Context, tx *gorm.DB, status string, limit int) ([]*types.IntakeItem, error) {
	var out []*types.IntakeItem
	for _, it := range r.items {
		if it.Status == status {
			out = append(out, it)
		}
	}
	return out, nil
}

func (r *fakeIntakeItemRepo) UpdateFields(ctx context.Context, tx *gorm.DB, itemID uuid.UUID, updates map[string]interface{}) error {
	r.lastUpdates = updates
	return nil
}

func (r *fakeIntakeItemRepo) UpdateStatusIf(ctx context.Context, tx *gorm.DB, itemID uuid.UUID, fromStatus, toStatus string) (int64, error) {
	if r.forceNoRowsOnStatusUpdate {
		return 0, nil
	}
	it, ok := r.items[itemID]
	if !ok || it.Status != fromStatus {
		return 0, nil
	}
	it.Status = toStatus
	return 1, nil
}

func (r *fakeIntakeItemRepo) CountByFieldValue(ctx context.Context, tx *gorm.DB, field types.TaxonomyField, value, status string) (int64, error) {
	var n int64
	for _, it := range r.items {
		if status != "" && it.Status != status {
			continue
		}
		if intakeFieldValue(it, field) == value {
			n++
		}
	}
	return n, nil
}

func (r *fakeIntakeItemRepo) UpdateFieldValue(ctx context.Context, tx *gorm.DB, field types.TaxonomyField, fromValue, toValue, status string) (int64, error) {
	var n int64
	for _, it := range r.items {
		if status != "" && it.Status != status {
			continue
		}
		if intakeFieldValue(it, field) != fromValue {
			continue
		}
		setIntakeFieldValue(it, field, toValue)
		n++
	}
	return n, nil
}

func intakeFieldValue(it *types.IntakeItem, field types.TaxonomyField) string {
	switch field {
	case types.TaxonomyFieldCategory:
		return it.Category
	case types.TaxonomyFieldProperty:
		return it.Property
	default:
		return it.SubProperty
	}
}

func setIntakeFieldValue(it *types.IntakeItem, field types.TaxonomyField, value string) {
	switch field {
	case types.TaxonomyFieldCategory:
		it.Category = value
	case types.TaxonomyFieldProperty:
		it.Property = value
	default:
		it.SubProperty = value
	}
}

type fakeIntakeFileRepo struct {
	files []*types.IntakeFile
}

func (r *fakeIntakeFileRepo) Create(ctx context.Context, tx *gorm.DB, files []*types.IntakeFile) ([]*types.IntakeFile, error) {
	r.files = append(r.files, files...)
	return files, nil
}

func (r *fakeIntakeFileRepo) GetByItemID(ctx context.Context, tx *gorm.DB, itemID uuid.UUID) ([]*types.IntakeFile, error) {
	var out []*types.IntakeFile
	for _, f := range r.files {
		if f.IntakeItemID == itemID {
			out = append(out, f)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].FileName < out[j].FileName })
	return out, nil
}

func (r *fakeIntakeFileRepo) CountByItemID(ctx context.Context, tx *gorm.DB, itemID uuid.UUID) (int64, error) {
	files, _ := r.GetByItemID(ctx, tx, itemID)
	return int64(len(files)), nil
}

func (r *fakeIntakeFileRepo) DeleteByItemID(ctx context.Context, tx *gorm.DB, itemID uuid.UUID) (int64, error) {
	var kept []*types.IntakeFile
	var deleted int64
	for _, f := range r.files {
		if f.IntakeItemID == itemID {
			deleted++
			continue
		}
		kept = append(kept, f)
	}
	r.files = kept
	return deleted, nil
}

type fakeAssetRepo struct {
	assets []*types.Asset

	sampleErr error
}

func (r *fakeAssetRepo) Create(ctx context.Context, tx *gorm.DB, assets []*types.Asset) ([]*types.Asset, error) {
	r.assets = append(r.assets, assets...)
	return assets, nil
}

func (r *fakeAssetRepo) GetByID(ctx context.Context, tx *gorm.DB, assetID uuid.UUID) (*types.Asset, error) {
	for _, a := range r.assets {
		if a.ID == assetID {
			return a, nil
		}
	}
	return nil, nil
}

func (r *fakeAssetRepo) List(ctx context.Context, tx *gorm.DB, filter repos.AssetListFilter, limit int) ([]*types.Asset, error) {
	return r.assets, nil
}

func (r *fakeAssetRepo) UpdateFields(ctx context.Context, tx *gorm.DB, assetID uuid.UUID, updates map[string]interface{}) error {
	return nil
}

func (r *fakeAssetRepo) SampleTaxonomy(ctx context.Context, tx *gorm.DB, limit int) ([]types.Asset, error) {
	if r.sampleErr != nil {
		return nil, r.sampleErr
	}
	out := make([]types.Asset, 0, len(r.assets))
	for _, a := range r.assets {
		if len(out) >= limit {
			break
		}
		out = append(out, types.Asset{Category: a.Category, Property: a.Property, SubProperty: a.SubProperty})
	}
	return out, nil
}

func (r *fakeAssetRepo) CountByFieldValue(ctx context.Context, tx *gorm.DB, field types.TaxonomyField, value string) (int64, error) {
	var n int64
	for _, a := range r.assets {
		if assetFieldValue(a, field) == value {
			n++
		}
	}
	return n, nil
}

func (r *fakeAssetRepo) SampleIDsByFieldValue(ctx context.Context, tx *gorm.DB, field types.TaxonomyField, value string, limit int) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	for _, a := range r.assets {
		if len(ids) >= limit {
			break
		}
		if assetFieldValue(a, field) == value {
			ids = append(ids, a.ID)
		}
	}
	return ids, nil
}

func (r *fakeAssetRepo) UpdateFieldValue(ctx context.Context, tx *gorm.DB, field types.TaxonomyField, fromValue, toValue string) (int64, error) {
	var n int64
	for _, a := range r.assets {
		if assetFieldValue(a, field) != fromValue {
			continue
		}
		setAssetFieldValue(a, field, toValue)
		n++
	}
	return n, nil
}

func assetFieldValue(a *types.Asset, field types.TaxonomyField) string {
	switch field {
	case types.TaxonomyFieldCategory:
		return a.Category
	case types.TaxonomyFieldProperty:
		return a.Property
	default:
		return a.SubProperty
	}
}

func setAssetFieldValue(a *types.Asset, field types.TaxonomyField, value string) {
	switch field {
	case types.TaxonomyFieldCategory:
		a.Category = value
	case types.TaxonomyFieldProperty:
		a.Property = value
	default:
		a.SubProperty = value
	}
}

type fakeAssetFileRepo struct {
	files []*types.AssetFile
}

func (r *fakeAssetFileRepo) Create(ctx context.Context, tx *gorm.DB, files []*types.AssetFile) ([]*types.AssetFile, error) {
	r.files = append(r.files, files...)
	return files, nil
}

func (r *fakeAssetFileRepo) GetByAssetID(ctx context.Context, tx *gorm.DB, assetID uuid.UUID) ([]*types.AssetFile, error) {
	var out []*types.AssetFile
	for _, f := range r.files {
		if f.AssetID == assetID {
			out = append(out, f)
		}
	}
	return out, nil
}

func (r *fakeAssetFileRepo) CountByAssetID(ctx context.Context, tx *gorm.DB, assetID uuid.UUID) (int64, error) {
	files, _ := r.GetByAssetID(ctx, tx, assetID)
	return int64(len(files)), nil
}

type fakeIntakeBatchRepo struct {
	batches []*types.IntakeBatch
}

func (r *fakeIntakeBatchRepo) Create(ctx context.Context, tx *gorm.DB, batches []*types.IntakeBatch) ([]*types.IntakeBatch, error) {
	r.batches = append(r.batches, batches...)
	return batches, nil
}

func (r *fakeIntakeBatchRepo) GetByIDs(ctx context.Context, tx *gorm.DB, batchIDs []uuid.UUID) ([]*types.IntakeBatch, error) {
	return r.batches, nil
}

// fakeBucket stores object bytes in memory keyed by "bucket/key". Signed URLs
// are rendered against baseURL so tests can point them at an httptest server.
type fakeBucket struct {
	baseURL string
	objects map[string][]byte

	uploadCalls int
	removeCalls int
	uploadErr   error
}

func newFakeBucket() *fakeBucket {
	return &fakeBucket{objects: map[string][]byte{}}
}

func (b *fakeBucket) objectKey(bucket, key string) string { return bucket + "/" + key }

func (b *fakeBucket) Upload(ctx context.Context, bucket, key string, file io.Reader, contentType string) error {
	b.uploadCalls++
	if b.uploadErr != nil {
		return b.uploadErr
	}
	body, err := io.ReadAll(file)
	if err != nil {
		return err
	}
	full := b.objectKey(bucket, key)
	if _, exists := b.objects[full]; exists {
		return fmt.Errorf("object %q already exists", full)
	}
	b.objects[full] = body
	return nil
}

func (b *fakeBucket) SignedDownloadURL(bucket, key string, expiry time.Duration) (string, error) {
	return b.baseURL + "/" + b.objectKey(bucket, key), nil
}

func (b *fakeBucket) Remove(ctx context.Context, bucket string, keys []string) error {
	b.removeCalls++
	for _, key := range keys {
		delete(b.objects, b.objectKey(bucket, key))
	}
	return nil
}

func (b *fakeBucket) GetPublicURL(bucket, key string) string {
	return "https://storage.googleapis.com/" + b.objectKey(bucket, key)
}

func (b *fakeBucket) objectsWithPrefix(prefix string) int {
	var n int
	for full := range b.objects {
		if strings.HasPrefix(full, prefix) {
			n++
		}
	}
	return n
}

type auditCall struct {
	Actor      string
	Action     string
	TargetType string
	TargetID   string
	Details    map[string]interface{}
}

type fakeAudit struct {
	calls []auditCall
}

func (a *fakeAudit) Append(ctx context.Context, actor, action, targetType, targetID string, details map[string]interface{}) {
	a.calls = append(a.calls, auditCall{Actor: actor, Action: action, TargetType: targetType, TargetID: targetID, Details: details})
}

func (a *fakeAudit) ListRecent(ctx context.Context, limit int) ([]*types.AuditLogEntry, error) {
	return nil, nil
}

func (a *fakeAudit) lastCall(tb testing.TB) auditCall {
	tb.Helper()
	if len(a.calls) == 0 {
		tb.Fatalf("expected at least one audit call")
	}
	return a.calls[len(a.calls)-1]
}

type fakeTaxonomy struct {
	invalidateCalls int
}

func (t *fakeTaxonomy) Facets(ctx context.Context, effectiveCategory, effectiveProperty string) (FacetLists, error) {
	return FacetLists{}, nil
}

func (t *fakeTaxonomy) InvalidateFacets(ctx context.Context) {
	t.invalidateCalls++
}

type fakeFacetCache struct {
	entries map[string]FacetLists

	getCalls        int
	setCalls        int
	invalidateCalls int
}

func newFakeFacetCache() *fakeFacetCache {
	return &fakeFacetCache{entries: map[string]FacetLists{}}
}

func (c *fakeFacetCache) Get(ctx context.Context, key string) (*FacetLists, bool) {
	c.getCalls++
	lists, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	return &lists, true
}

func (c *fakeFacetCache) Set(ctx context.Context, key string, lists FacetLists) {
	c.setCalls++
	c.entries[key] = lists
}

func (c *fakeFacetCache) Invalidate(ctx context.Context) {
	c.invalidateCalls++
	c.entries = map[string]FacetLists{}
}
