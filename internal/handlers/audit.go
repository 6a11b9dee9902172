package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/assetvault-backend/internal/http/response"
	"github.com/yungbote/assetvault-backend/internal/platform/logger"
	"github.com/yungbote/assetvault-backend/internal/services"
)

type AuditHandler struct {
	log          *logger.Logger
	auditService services.AuditService
}

func NewAuditHandler(log *logger.Logger, auditService services.AuditService) *AuditHandler {
	return &AuditHandler{
		log:          log.With("handler", "AuditHandler"),
		auditService: auditService,
	}
}

// GET /api/audit?limit=
func (h *AuditHandler) ListRecent(c *gin.Context) {
	limit := 100
	if raw := c.Query("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			limit = parsed
		}
	}
	entries, err := h.auditService.ListRecent(c.Request.Context(), limit)
	if err != nil {
		response.RespondError(c, http.StatusInternalServerError, "audit_list_failed", err)
		return
	}
	response.RespondOK(c, gin.H{"entries": entries})
}
