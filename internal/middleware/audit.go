package middleware

import (
	"context"
	"log"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"surveyhub/internal/domain"
)

type auditWriter interface {
	Create(ctx context.Context, entry *domain.AuditLog) error
}

// AuditTrail records who touched a sensitive endpoint. The write is
// best-effort: a failed insert is logged and the request proceeds.
func AuditTrail(repo auditWriter, entityName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		entry := &domain.AuditLog{
			Timestamp:  time.Now().UTC(),
			EntityName: entityName,
			EntityID:   c.Param("id"),
			Action:     c.Request.Method + " " + c.FullPath(),
			Username:   c.GetString("username"),
			IPAddress:  c.ClientIP(),
			UserAgent:  c.Request.UserAgent(),
		}
		if userID := c.GetInt64("user_id"); userID != 0 {
			entry.UserID = strconv.FormatInt(userID, 10)
		}

		if err := repo.Create(c.Request.Context(), entry); err != nil {
			log.Printf("audit_write_failed path=%s error=%v", c.FullPath(), err)
		}
	}
}
