package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/baymax-09/roobet-casino-sub009/internal/services"
)

type AuthHandler struct {
	jwtService *services.JWTService
}

func NewAuthHandler(jwtService *services.JWTService) *AuthHandler {
	return &AuthHandler{
		jwtService: jwtService,
	}
}

type sessionRequest struct {
	UserID int64 `json:"user_id" binding:"required"`
}

// CreateSession issues a short-lived JWT for the given user. Upstream
// identity verification (Telegram initData, OAuth, whatever the deployment
// uses) happens in front of this service; here we only mint the session.
func (h *AuthHandler) CreateSession(c *gin.Context) {
	var req sessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	sessionID := uuid.New().String()

	token, err := h.jwtService.GenerateToken(req.UserID, sessionID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create session"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token":      token,
		"session_id": sessionID,
		"user_id":    req.UserID,
	})
}
