package app

import (
	"gorm.io/gorm"

	"github.com/yungbote/assetvault-backend/internal/platform/logger"
	"github.com/yungbote/assetvault-backend/internal/repos"
)

type Repos struct {
	User        repos.UserRepo
	IntakeBatch repos.IntakeBatchRepo
	IntakeItem  repos.IntakeItemRepo
	IntakeFile  repos.IntakeFileRepo
	Asset       repos.AssetRepo
	AssetFile   repos.AssetFileRepo
	AuditLog    repos.AuditLogRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		User:        repos.NewUserRepo(db, log),
		IntakeBatch: repos.NewIntakeBatchRepo(db, log),
		IntakeItem:  repos.NewIntakeItemRepo(db, log),
		IntakeFile:  repos.NewIntakeFileRepo(db, log),
		Asset:       repos.NewAssetRepo(db, log),
		AssetFile:   repos.NewAssetFileRepo(db, log),
		AuditLog:    repos.NewAuditLogRepo(db, log),
	}
}
