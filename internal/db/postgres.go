package db

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/yungbote/assetvault-backend/internal/platform/logger"
	"github.com/yungbote/assetvault-backend/internal/types"
	"github.com/yungbote/assetvault-backend/internal/utils"
)

type PostgresService struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewPostgresService(log *logger.Logger) (*PostgresService, error) {
	serviceLog := log.With("service", "PostgresService")

	postgresHost := utils.GetEnv("POSTGRES_HOST", "localhost", log)
	postgresPort := utils.GetEnv("POSTGRES_PORT", "5432", log)
	postgresUser := utils.GetEnv("POSTGRES_USER", "postgres", log)
	postgresPassword := utils.GetEnv("POSTGRES_PASSWORD", "", log)
	postgresName := utils.GetEnv("POSTGRES_NAME", "assetvault", log)

	dsn := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", postgresUser, postgresPassword, postgresHost, postgresPort, postgresName)

	serviceLog.Info("Connecting to Postgres...")
	gormDB, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Postgres: %w", err)
	}

	if err := gormDB.Exec(`CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`).Error; err != nil {
		return nil, fmt.Errorf("failed to enable uuid-ossp extension: %w", err)
	}

	return &PostgresService{db: gormDB, log: serviceLog}, nil
}

func (s *PostgresService) AutoMigrateAll() error {
	s.log.Info("Auto migrating postgres tables...")
	err := s.db.AutoMigrate(
		&types.User{},
		&types.IntakeBatch{},
		&types.IntakeItem{},
		&types.IntakeFile{},
		&types.Asset{},
		&types.AssetFile{},
		&types.AuditLogEntry{},
	)
	if err != nil {
		s.log.Error("Auto migration failed for postgres tables", "error", err)
		return err
	}
	s.log.Info("Configuring foreign key relationships for postgres tables...")
	if err := s.db.Exec(`
		ALTER TABLE "intake_items"
		ADD CONSTRAINT "fk_intake_items_batch_id"
		FOREIGN KEY ("batch_id")
		REFERENCES "intake_batches"("id")
		ON DELETE CASCADE
	`).Error; err != nil {
		return fmt.Errorf("failed to add fk_intake_items_batch_id: %w", err)
	}
	if err := s.db.Exec(`
		ALTER TABLE "intake_files"
		ADD CONSTRAINT "fk_intake_files_intake_item_id"
		FOREIGN KEY ("intake_item_id")
		REFERENCES "intake_items"("id")
		ON DELETE CASCADE
	`).Error; err != nil {
		return fmt.Errorf("failed to add fk_intake_files_intake_item_id: %w", err)
	}
	if err := s.db.Exec(`
		ALTER TABLE "asset_files"
		ADD CONSTRAINT "fk_asset_files_asset_id"
		FOREIGN KEY ("asset_id")
		REFERENCES "assets"("id")
		ON DELETE CASCADE
	`).Error; err != nil {
		return fmt.Errorf("failed to add fk_asset_files_asset_id: %w", err)
	}
	return nil
}

func (s *PostgresService) DB() *gorm.DB {
	return s.db
}
