package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"go-blog-backend/internal/core/session"
	"go-blog-backend/internal/transport/http/response"
)

const (
	KeyPrincipal = "principal"
	KeySessionID = "sessionID"
)

// LoadSession 读取会话 cookie 并把主体快照放进请求上下文；不拦截匿名请求
func LoadSession(store session.Store, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		sid, err := c.Cookie(cookieName)
		if err == nil && sid != "" {
			c.Set(KeySessionID, sid)
			if p, err := store.Get(c.Request.Context(), sid); err == nil {
				c.Set(KeyPrincipal, *p)
			}
		}
		c.Next()
	}
}

// RequireSession 变更型接口要求已登录
func RequireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := Principal(c); !ok {
			response.AbortError(c, http.StatusUnauthorized, "login required")
			return
		}
		c.Next()
	}
}

func Principal(c *gin.Context) (session.Principal, bool) {
	v, ok := c.Get(KeyPrincipal)
	if !ok {
		return session.Principal{}, false
	}
	p, ok := v.(session.Principal)
	return p, ok
}

func SessionID(c *gin.Context) string { return c.GetString(KeySessionID) }
