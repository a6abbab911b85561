package handler

import (
	"net/http"

	"github.com/forumhq/backend/internal/middleware"
	"github.com/forumhq/backend/internal/models"
	"github.com/forumhq/backend/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ReactionHandler struct {
	reactionService *service.ReactionService
}

func NewReactionHandler(reactionService *service.ReactionService) *ReactionHandler {
	return &ReactionHandler{
		reactionService: reactionService,
	}
}

type ReactionRequest struct {
	PostID uuid.UUID `json:"post_id" binding:"required"`
	Type   string    `json:"type" binding:"required"`
}

// React handles POST /likes. The response aggregates are recomputed from
// current rows; clients reconcile their optimistic state against them.
func (h *ReactionHandler) React(c *gin.Context) {
	claims, ok := middleware.ClaimsFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req ReactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	summary, err := h.reactionService.React(req.PostID, claims.UserID, models.ReactionKind(req.Type))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}
