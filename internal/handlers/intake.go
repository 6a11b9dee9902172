package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/assetvault-backend/internal/http/response"
	"github.com/yungbote/assetvault-backend/internal/platform/logger"
	"github.com/yungbote/assetvault-backend/internal/requestdata"
	"github.com/yungbote/assetvault-backend/internal/services"
	"github.com/yungbote/assetvault-backend/internal/utils"
)

type IntakeHandler struct {
	log              *logger.Logger
	intakeService    services.IntakeService
	promotionService services.PromotionService
}

func NewIntakeHandler(
	log *logger.Logger,
	intakeService services.IntakeService,
	promotionService services.PromotionService,
) *IntakeHandler {
	return &IntakeHandler{
		log:              log.With("handler", "IntakeHandler"),
		intakeService:    intakeService,
		promotionService: promotionService,
	}
}

// POST /api/intake/batches
func (h *IntakeHandler) CreateBatch(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil {
		response.RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	var req struct {
		Month  string `json:"month"`
		Source string `json:"source"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	batch, err := h.intakeService.CreateBatch(c.Request.Context(), req.Month, req.Source, rd.DisplayName)
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "batch_create_failed", err)
		return
	}
	response.RespondCreated(c, batch)
}

// POST /api/intake/batches/:id/items accepts a multipart form: raw_name + files
func (h *IntakeHandler) UploadItem(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil {
		response.RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	batchID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_batch_id", err)
		return
	}
	if err := c.Request.ParseMultipartForm(32 << 20); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_multipart_form", err)
		return
	}
	form := c.Request.MultipartForm
	rawName := ""
	if form != nil {
		if v := form.Value["raw_name"]; len(v) > 0 {
			rawName = v[0]
		}
	}
	var uploads []services.FileUpload
	if form != nil {
		for _, fh := range form.File["files"] {
			f, err := fh.Open()
			if err != nil {
				response.RespondError(c, http.StatusBadRequest, "invalid_file", err)
				return
			}
			defer f.Close()
			uploads = append(uploads, services.FileUpload{
				FileName:  fh.Filename,
				MimeType:  fh.Header.Get("Content-Type"),
				SizeBytes: fh.Size,
				Reader:    f,
			})
		}
	}
	item, err := h.intakeService.AddItem(c.Request.Context(), batchID, rd.DisplayName, rawName, uploads)
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "upload_failed", err)
		return
	}
	response.RespondCreated(c, item)
}

// GET /api/intake/items
func (h *IntakeHandler) ListUnsorted(c *gin.Context) {
	limit := utils.GetEnvAsInt("INTAKE_LIST_LIMIT", 200, nil)
	items, err := h.intakeService.ListUnsorted(c.Request.Context(), limit)
	if err != nil {
		response.RespondError(c, http.StatusInternalServerError, "list_failed", err)
		return
	}
	response.RespondOK(c, gin.H{"items": items})
}

// GET /api/intake/items/:id
func (h *IntakeHandler) GetItem(c *gin.Context) {
	itemID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_item_id", err)
		return
	}
	detail, err := h.intakeService.GetItem(c.Request.Context(), itemID)
	if err != nil {
		response.RespondError(c, http.StatusNotFound, "item_not_found", err)
		return
	}
	response.RespondOK(c, detail)
}

// PUT /api/intake/items/:id saves taxonomy metadata; rejected once the item
// has left the unsorted status.
func (h *IntakeHandler) SaveMetadata(c *gin.Context) {
	itemID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_item_id", err)
		return
	}
	var req struct {
		RawName  string                   `json:"raw_name"`
		Taxonomy taxonomySelectionRequest `json:"taxonomy"`
		Notes    string                   `json:"notes"`
		Tags     []string                 `json:"tags"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	category, property, subProperty := req.Taxonomy.resolve()
	meta := services.IntakeMetadata{
		RawName:     req.RawName,
		Category:    category,
		Property:    property,
		SubProperty: subProperty,
		Notes:       req.Notes,
		Tags:        req.Tags,
	}
	if err := h.intakeService.SaveMetadata(c.Request.Context(), itemID, meta); err != nil {
		response.RespondError(c, http.StatusConflict, "save_rejected", err)
		return
	}
	response.RespondOK(c, gin.H{"saved": true})
}

// POST /api/intake/items/:id/promote
func (h *IntakeHandler) Promote(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil {
		response.RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	itemID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_item_id", err)
		return
	}
	var req struct {
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
	input := services.PromoteInput{
		Name:        req.Name,
		Category:    category,
		Property:    property,
		SubProperty: subProperty,
		Notes:       req.Notes,
		Tags:        req.Tags,
	}
	result, err := h.promotionService.Promote(c.Request.Context(), itemID, input, rd.DisplayName)
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "promote_failed", err)
		return
	}
	if result.AlreadyPromoted {
		response.RespondOK(c, gin.H{"already_promoted": true, "message": "already promoted"})
		return
	}
	response.RespondOK(c, result)
}

// POST /api/intake/items/:id/archive
func (h *IntakeHandler) Archive(c *gin.Context) {
	itemID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_item_id", err)
		return
	}
	if err := h.intakeService.ArchiveItem(c.Request.Context(), itemID); err != nil {
		response.RespondError(c, http.StatusConflict, "archive_failed", err)
		return
	}
	response.RespondOK(c, gin.H{"archived": true})
}
