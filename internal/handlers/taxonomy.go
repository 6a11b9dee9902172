package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/assetvault-backend/internal/http/response"
	"github.com/yungbote/assetvault-backend/internal/platform/logger"
	"github.com/yungbote/assetvault-backend/internal/services"
)

type TaxonomyHandler struct {
	log             *logger.Logger
	taxonomyService services.TaxonomyService
}

func NewTaxonomyHandler(log *logger.Logger, taxonomyService services.TaxonomyService) *TaxonomyHandler {
	return &TaxonomyHandler{
		log:             log.With("handler", "TaxonomyHandler"),
		taxonomyService: taxonomyService,
	}
}

// GET /api/taxonomy/facets?category=&property=
// Facet lists scoped by the caller's current effective parent values.
func (h *TaxonomyHandler) Facets(c *gin.Context) {
	lists, err := h.taxonomyService.Facets(c.Request.Context(), c.Query("category"), c.Query("property"))
	if err != nil {
		response.RespondError(c, http.StatusInternalServerError, "facets_failed", err)
		return
	}
	response.RespondOK(c, lists)
}
