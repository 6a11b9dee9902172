package app

import (
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/yungbote/assetvault-backend/internal/platform/gcs"
	"github.com/yungbote/assetvault-backend/internal/platform/logger"
	"github.com/yungbote/assetvault-backend/internal/services"
)

type Services struct {
	Auth      services.AuthService
	Audit     services.AuditService
	Intake    services.IntakeService
	Promotion services.PromotionService
	Asset     services.AssetService
	Taxonomy  services.TaxonomyService
	BulkFix   services.BulkFixService
}

func wireServices(db *gorm.DB, log *logger.Logger, cfg Config, reposet Repos) (Services, error) {
	log.Info("Wiring services...")

	bucketService, err := gcs.NewBucketService(log)
	if err != nil {
		return Services{}, err
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	})
	facetCache := services.NewRedisFacetCache(log, redisClient)

	auditService := services.NewAuditService(db, log, reposet.AuditLog)
	authService := services.NewAuthService(db, log, reposet.User, cfg.JWTSecretKey, cfg.AccessTokenTTL)
	taxonomyService := services.NewTaxonomyService(db, log, reposet.Asset, facetCache)
	intakeService := services.NewIntakeService(db, log, bucketService, cfg.IntakeBucket, reposet.IntakeBatch, reposet.IntakeItem, reposet.IntakeFile, auditService)
	promotionService := services.NewPromotionService(db, log, bucketService, reposet.IntakeItem, reposet.IntakeFile, reposet.Asset, reposet.AssetFile, auditService, taxonomyService)
	assetService := services.NewAssetService(db, log, bucketService, reposet.Asset, reposet.AssetFile, auditService, taxonomyService)
	bulkFixService := services.NewBulkFixService(db, log, reposet.Asset, reposet.IntakeItem, auditService, taxonomyService)

	return Services{
		Auth:      authService,
		Audit:     auditService,
		Intake:    intakeService,
		Promotion: promotionService,
		Asset:     assetService,
		Taxonomy:  taxonomyService,
		BulkFix:   bulkFixService,
	}, nil
}
