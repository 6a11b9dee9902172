package app

import (
	"github.com/yungbote/assetvault-backend/internal/handlers"
	"github.com/yungbote/assetvault-backend/internal/platform/logger"
)

type Handlers struct {
	Auth     *handlers.AuthHandler
	Intake   *handlers.IntakeHandler
	Asset    *handlers.AssetHandler
	Taxonomy *handlers.TaxonomyHandler
	BulkFix  *handlers.BulkFixHandler
	Audit    *handlers.AuditHandler
}

func wireHandlers(log *logger.Logger, serviceset Services) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Auth:     handlers.NewAuthHandler(log, serviceset.Auth),
		Intake:   handlers.NewIntakeHandler(log, serviceset.Intake, serviceset.Promotion),
		Asset:    handlers.NewAssetHandler(log, serviceset.Asset),
		Taxonomy: handlers.NewTaxonomyHandler(log, serviceset.Taxonomy),
		BulkFix:  handlers.NewBulkFixHandler(log, serviceset.BulkFix),
		Audit:    handlers.NewAuditHandler(log, serviceset.Audit),
	}
}
