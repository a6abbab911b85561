package handler

import (
	"net/http"

	"github.com/forumhq/backend/internal/middleware"
	"github.com/forumhq/backend/internal/service"
	"github.com/forumhq/backend/pkg/logger"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AdminHandler serves the moderation endpoints. Routes are gated by
// AdminMiddleware, so handlers only deal with request shape and delegation.
type AdminHandler struct {
	authService *service.AuthService
}

func NewAdminHandler(authService *service.AuthService) *AdminHandler {
	return &AdminHandler{
		authService: authService,
	}
}

// ListUsers handles GET /users.
func (h *AdminHandler) ListUsers(c *gin.Context) {
	claims, _ := middleware.ClaimsFromContext(c)
	logger.Log.Info("Admin listing users",
		zap.String("admin_id", claims.UserID.String()),
	)

	users, err := h.authService.ListUsers()
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, users)
}

// DeleteUser handles DELETE /users/:id.
func (h *AdminHandler) DeleteUser(c *gin.Context) {
	claims, ok := middleware.ClaimsFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	targetID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}

	if err := h.authService.DeleteUser(targetID, claims.UserID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
