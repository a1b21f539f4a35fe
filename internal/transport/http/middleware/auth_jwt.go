package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"go-blog-backend/internal/core/auth"
	"go-blog-backend/internal/transport/http/response"
)

// AuthJWT 管理端鉴权；requireRole 非空时还需角色匹配
func AuthJWT(j *auth.JWTer, requireRole string) gin.HandlerFunc {
	return func(c *gin.Context) {
		ah := c.GetHeader("Authorization")
		if !strings.HasPrefix(ah, "Bearer ") {
			response.AbortError(c, http.StatusUnauthorized, "missing token")
			return
		}
		claims, err := j.Parse(strings.TrimPrefix(ah, "Bearer "))
		if err != nil {
			response.AbortError(c, http.StatusUnauthorized, "invalid token")
			return
		}
		if requireRole != "" && claims.Role != requireRole {
			response.AbortError(c, http.StatusForbidden, "forbidden")
			return
		}
		c.Set("claims", claims)
		c.Next()
	}
}
