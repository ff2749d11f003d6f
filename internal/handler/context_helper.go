package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/Eastyn7/cqt-cloudplatform-backend/internal/middleware"
	"github.com/Eastyn7/cqt-cloudplatform-backend/internal/models"
)

// currentClaims extracts the authenticated caller from the gin context.
func currentClaims(c *gin.Context) (*models.JWTClaims, bool) {
	value, exists := c.Get(middleware.ContextUserKey)
	if !exists {
		return nil, false
	}
	claims, ok := value.(*models.JWTClaims)
	return claims, ok
}
