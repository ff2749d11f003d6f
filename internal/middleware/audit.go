package middleware

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/Eastyn7/cqt-cloudplatform-backend/internal/models"
	"github.com/Eastyn7/cqt-cloudplatform-backend/internal/repository"
)

// Audit records an operation log entry after successful requests.
func Audit(repo *repository.AuditRepository, action, targetTable string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Status() >= 400 {
			return
		}

		var userID *string
		if claims, ok := c.Get(ContextUserKey); ok {
			user := claims.(*models.JWTClaims)
			userID = &user.StudentID
		}

		description := fmt.Sprintf("%s %s -> %d", c.Request.Method, c.FullPath(), c.Writer.Status())
		ip := c.ClientIP()
		agent := c.GetHeader("User-Agent")

		_ = repo.Create(c.Request.Context(), &models.OperationLog{
			UserID:      userID,
			Action:      action,
			TargetTable: &targetTable,
			Description: &description,
			IPAddress:   &ip,
			UserAgent:   &agent,
		})
	}
}
