package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/assetvault-backend/internal/http/response"
	"github.com/yungbote/assetvault-backend/internal/platform/logger"
	"github.com/yungbote/assetvault-backend/internal/repos"
	"github.com/yungbote/assetvault-backend/internal/requestdata"
	"github.com/yungbote/assetvault-backend/internal/services"
)

type AssetHandler struct {
	log          *logger.Logger
	assetService services.AssetService
}

func NewAssetHandler(log *logger.Logger, assetService services.AssetService) *AssetHandler {
	return &AssetHandler{
		log:          log.With("handler", "AssetHandler"),
		assetService: assetService,
	}
}

// GET /api/assets?category=&property=&sub_property=&limit=
func (h *AssetHandler) List(c *gin.Context) {
	filter := repos.AssetListFilter{
		Category:    c.Query("category"),
		Property:    c.Query("property"),
		SubProperty: c.Query("sub_property"),
	}
	limit := 100
	if raw := c.Query("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			limit = parsed
		}
	}
	assets, err := h.assetService.List(c.Request.Context(), filter, limit)
	if err != nil {
		response.RespondError(c, http.StatusInternalServerError, "list_failed", err)
		return
	}
	response.RespondOK(c, gin.H{"assets": assets})
}

// GET /api/assets/:id
func (h *AssetHandler) Get(c *gin.Context) {
	assetID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_asset_id", err)
		return
	}
	detail, err := h.assetService.Get(c.Request.Context(), assetID)
	if err != nil {
		response.RespondError(c, http.StatusNotFound, "asset_not_found", err)
		return
	}
	response.RespondOK(c, detail)
}

// PUT /api/assets/:id
func (h *AssetHandler) Update(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil {
		response.RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	assetID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_asset_id", err)
		return
	}
	var req struct {
		Title    string                   `json:"title"`
		Name     string                   `json:"name"`
		Taxonomy taxonomySelectionRequest `json:"taxonomy"`
		Notes    string                   `json:"notes"`
		Tags     []string                 `json:"tags"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	category, property, subProperty := req.Taxonomy.resolve()
	update := services.AssetUpdate{
		Title:       req.Title,
		Name:        req.Name,
		Category:    category,
		Property:    property,
		SubProperty: subProperty,
		Notes:       req.Notes,
		Tags:        req.Tags,
	}
	if err := h.assetService.Update(c.Request.Context(), assetID, update, rd.DisplayName); err != nil {
		response.RespondError(c, http.StatusBadRequest, "update_failed", err)
		return
	}
	response.RespondOK(c, gin.H{"updated": true})
}
