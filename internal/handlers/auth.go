package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/assetvault-backend/internal/http/response"
	"github.com/yungbote/assetvault-backend/internal/platform/logger"
	"github.com/yungbote/assetvault-backend/internal/services"
	"github.com/yungbote/assetvault-backend/internal/types"
)

type AuthHandler struct {
	log         *logger.Logger
	authService services.AuthService
}

func NewAuthHandler(log *logger.Logger, authService services.AuthService) *AuthHandler {
	return &AuthHandler{
		log:         log.With("handler", "AuthHandler"),
		authService: authService,
	}
}

// POST /api/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req struct {
		Email     string `json:"email"`
		Password  string `json:"password"`
		FirstName string `json:"first_name"`
		LastName  string `json:"last_name"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	user := &types.User{
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	}
	if err := h.authService.RegisterUser(c.Request.Context(), user); err != nil {
		response.RespondError(c, http.StatusBadRequest, "registration_failed", err)
		return
	}
	response.RespondCreated(c, gin.H{"id": user.ID})
}

// POST /api/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	token, err := h.authService.LoginUser(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		response.RespondError(c, http.StatusUnauthorized, "login_failed", err)
		return
	}
	response.RespondOK(c, gin.H{"access_token": token})
}
