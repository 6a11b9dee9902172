package handlers

import (
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/assetvault-backend/internal/http/response"
	"github.com/yungbote/assetvault-backend/internal/platform/logger"
	"github.com/yungbote/assetvault-backend/internal/requestdata"
	"github.com/yungbote/assetvault-backend/internal/services"
	"github.com/yungbote/assetvault-backend/internal/types"
)

// BulkFixHandler keeps one preview/apply session per operator so the Apply
// guards are enforced server-side, not just in the UI.
type BulkFixHandler struct {
	log            *logger.Logger
	bulkFixService services.BulkFixService

	mu       sync.Mutex
	sessions map[uuid.UUID]*services.BulkFixSession
}

func NewBulkFixHandler(log *logger.Logger, bulkFixService services.BulkFixService) *BulkFixHandler {
	return &BulkFixHandler{
		log:            log.With("handler", "BulkFixHandler"),
		bulkFixService: bulkFixService,
		sessions:       make(map[uuid.UUID]*services.BulkFixSession),
	}
}

func (h *BulkFixHandler) sessionFor(userID uuid.UUID) *services.BulkFixSession {
	h.mu.Lock()
	defer h.mu.Unlock()
	session, ok := h.sessions[userID]
	if !ok {
		session = services.NewBulkFixSession(h.bulkFixService)
		h.sessions[userID] = session
	}
	return session
}

type bulkFixParamsRequest struct {
	Field          string `json:"field"`
	FromValue      string `json:"from_value"`
	ToValue        string `json:"to_value"`
	IncludeStaging bool   `json:"include_staging"`
}

func (r bulkFixParamsRequest) toParams() (services.BulkFixParams, error) {
	field, err := types.ParseTaxonomyField(r.Field)
	if err != nil {
		return services.BulkFixParams{}, err
	}
	return services.BulkFixParams{
		Field:          field,
		FromValue:      r.FromValue,
		ToValue:        r.ToValue,
		IncludeStaging: r.IncludeStaging,
	}, nil
}

// POST /api/bulk-fix/preview
func (h *BulkFixHandler) Preview(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil {
		response.RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	var req bulkFixParamsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	params, err := req.toParams()
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_field", err)
		return
	}
	session := h.sessionFor(rd.UserID)
	session.SetParams(params)
	preview, err := session.RunPreview(c.Request.Context())
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "preview_failed", err)
		return
	}
	response.RespondOK(c, preview)
}

// POST /api/bulk-fix/apply
func (h *BulkFixHandler) Apply(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil {
		response.RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	var req struct {
		bulkFixParamsRequest
		Confirmation string `json:"confirmation"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	params, err := req.toParams()
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_field", err)
		return
	}
	session := h.sessionFor(rd.UserID)
	// Re-submitting identical parameters keeps the held preview; any change
	// resets the session to Idle and Apply is refused below.
	session.SetParams(params)
	result, err := session.RunApply(c.Request.Context(), req.Confirmation, rd.DisplayName)
	if err != nil {
		response.RespondError(c, http.StatusConflict, "apply_rejected", err)
		return
	}
	response.RespondOK(c, result)
}
