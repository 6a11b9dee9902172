package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/assetvault-backend/internal/platform/logger"
	"github.com/yungbote/assetvault-backend/internal/types"
)

// AssetListFilter narrows List by taxonomy values. Empty fields match
// everything.
type AssetListFilter struct {
	Category    string
	Property    string
	SubProperty string
}

type AssetRepo interface {
	Create(ctx context.Context, tx *gorm.DB, assets []*types.Asset) ([]*types.Asset, error)
	GetByID(ctx context.Context, tx *gorm.DB, assetID uuid.UUID) (*types.Asset, error)
	List(ctx context.Context, tx *gorm.DB, filter AssetListFilter, limit int) ([]*types.Asset, error)
	UpdateFields(ctx context.Context, tx *gorm.DB, assetID uuid.UUID, updates map[string]interface{}) error
	// SampleTaxonomy reads only the taxonomy columns of the most recent rows.
	// Facet derivation works over this bounded sample, not a full scan.
	SampleTaxonomy(ctx context.Context, tx *gorm.DB, limit int) ([]types.Asset, error)
	CountByFieldValue(ctx context.Context, tx *gorm.DB, field types.TaxonomyField, value string) (int64, error)
	SampleIDsByFieldValue(ctx context.Context, tx *gorm.DB, field types.TaxonomyField, value string, limit int) ([]uuid.UUID, error)
	UpdateFieldValue(ctx context.Context, tx *gorm.DB, field types.TaxonomyField, fromValue, toValue string) (int64, error)
}

type assetRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewAssetRepo(db *gorm.DB, baseLog *logger.Logger) AssetRepo {
	return &assetRepo{db: db, log: baseLog.With("repo", "AssetRepo")}
}

func (r *assetRepo) Create(ctx context.Context, tx *gorm.DB, assets []*types.Asset) ([]*types.Asset, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if len(assets) == 0 {
		return []*types.Asset{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&assets).Error; err != nil {
		return nil, err
	}
	return assets, nil
}

func (r *assetRepo) GetByID(ctx context.Context, tx *gorm.DB, assetID uuid.UUID) (*types.Asset, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var asset types.Asset
	err := transaction.WithContext(ctx).
		Where("id = ?", assetID).
		First(&asset).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &asset, nil
}

func (r *assetRepo) List(ctx context.Context, tx *gorm.DB, filter AssetListFilter, limit int) ([]*types.Asset, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	q := transaction.WithContext(ctx).Model(&types.Asset{}).Order("created_at DESC")
	if filter.Category != "" {
		q = q.Where("category = ?", filter.Category)
	}
	if filter.Property != "" {
		q = q.Where("property = ?", filter.Property)
	}
	if filter.SubProperty != "" {
		q = q.Where("sub_property = ?", filter.SubProperty)
	}
	if limit > 0 {
		q = q.Limit(limit)
	}
	var results []*types.Asset
	if err := q.Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *assetRepo) UpdateFields(ctx context.Context, tx *gorm.DB, assetID uuid.UUID, updates map[string]interface{}) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if len(updates) == 0 {
		return nil
	}
	return transaction.WithContext(ctx).
		Model(&types.Asset{}).
		Where("id = ?", assetID).
		Updates(updates).Error
}

func (r *assetRepo) SampleTaxonomy(ctx context.Context, tx *gorm.DB, limit int) ([]types.Asset, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if limit <= 0 {
		limit = 5000
	}
	var results []types.Asset
	if err := transaction.WithContext(ctx).
		Model(&types.Asset{}).
		Select("category", "property", "sub_property").
		Order("created_at DESC").
		Limit(limit).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *assetRepo) CountByFieldValue(ctx context.Context, tx *gorm.DB, field types.TaxonomyField, value string) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.Asset{}).
		Where(field.Column()+" = ?", value).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *assetRepo) SampleIDsByFieldValue(ctx context.Context, tx *gorm.DB, field types.TaxonomyField, value string, limit int) ([]uuid.UUID, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if limit <= 0 {
		limit = 12
	}
	var ids []uuid.UUID
	if err := transaction.WithContext(ctx).
		Model(&types.Asset{}).
		Where(field.Column()+" = ?", value).
		Order("created_at DESC").
		Limit(limit).
		Pluck("id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *assetRepo) UpdateFieldValue(ctx context.Context, tx *gorm.DB, field types.TaxonomyField, fromValue, toValue string) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	result := transaction.WithContext(ctx).
		Model(&types.Asset{}).
		Where(field.Column()+" = ?", fromValue).
		Update(field.Column(), toValue)
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}
