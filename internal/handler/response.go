package handler

import (
	"github.com/forumhq/backend/internal/apperr"
	"github.com/forumhq/backend/pkg/logger"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// respondError maps a service error through the taxonomy to its status code.
// Storage failures are logged with their cause and answered with a generic
// body; every other kind carries its own caller-safe message.
func respondError(c *gin.Context, err error) {
	kind := apperr.KindOf(err)
	if kind == apperr.KindStorage {
		logger.Log.Error("Request failed",
			zap.String("path", c.FullPath()),
			zap.String("method", c.Request.Method),
			zap.Error(err),
		)
	}
	c.JSON(apperr.HTTPStatus(kind), gin.H{"error": apperr.Message(err)})
}
