package app

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/yungbote/assetvault-backend/internal/handlers"
	"github.com/yungbote/assetvault-backend/internal/middleware"
	"github.com/yungbote/assetvault-backend/internal/platform/logger"
	"github.com/yungbote/assetvault-backend/internal/services"
)

func wireMiddleware(log *logger.Logger, authService services.AuthService) *middleware.AuthMiddleware {
	return middleware.NewAuthMiddleware(log, authService)
}

func wireRouter(handlerset Handlers, authMiddleware *middleware.AuthMiddleware) *gin.Engine {
	router := gin.Default()

	router.Use(cors.New(cors.Config{
		AllowOrigins: []string{
			"http://localhost:3000",
			"http://localhost:5173",
		},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
	}))

	router.GET("/healthcheck", handlers.HealthCheck)

	api := router.Group("/api")
	api.POST("/register", handlerset.Auth.Register)
	api.POST("/login", handlerset.Auth.Login)

	protected := api.Group("/")
	protected.Use(authMiddleware.RequireAuth())

	// Intake staging
	protected.POST("/intake/batches", handlerset.Intake.CreateBatch)
	protected.POST("/intake/batches/:id/items", handlerset.Intake.UploadItem)
	protected.GET("/intake/items", handlerset.Intake.ListUnsorted)
	protected.GET("/intake/items/:id", handlerset.Intake.GetItem)
	protected.PUT("/intake/items/:id", handlerset.Intake.SaveMetadata)
	protected.POST("/intake/items/:id/promote", handlerset.Intake.Promote)
	protected.POST("/intake/items/:id/archive", handlerset.Intake.Archive)

	// Asset catalog
	protected.GET("/assets", handlerset.Asset.List)
	protected.GET("/assets/:id", handlerset.Asset.Get)
	protected.PUT("/assets/:id", handlerset.Asset.Update)

	// Taxonomy facets
	protected.GET("/taxonomy/facets", handlerset.Taxonomy.Facets)

	// Bulk metadata fix
	protected.POST("/bulk-fix/preview", handlerset.BulkFix.Preview)
	protected.POST("/bulk-fix/apply", handlerset.BulkFix.Apply)

	// Audit trail
	protected.GET("/audit", handlerset.Audit.ListRecent)

	return router
}
