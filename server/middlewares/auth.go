package middlewares

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/placeatlas/ops-portal/internal/session"
	"github.com/placeatlas/ops-portal/server/common"
)

// Auth resolves the bearer token to an active session. Validation already
// refreshes last_activity_at, so there is no separate refresh middleware.
func Auth(c *gin.Context) {
	token := strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer ")
	s := session.Validate(token)
	if s == nil {
		common.ErrorStrResp(c, "unauthorized", 401)
		return
	}
	c.Set("session", s)
	c.Next()
}
