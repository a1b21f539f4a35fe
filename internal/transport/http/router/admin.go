package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"go-blog-backend/internal/core/auth"
	"go-blog-backend/internal/core/server"
	"go-blog-backend/internal/domain"
	"go-blog-backend/internal/transport/http/handler"
	mdw "go-blog-backend/internal/transport/http/middleware"
)

// NewAdminEngine 管理端：JWT 鉴权的用户运维接口
func NewAdminEngine(l *zap.Logger, jwter *auth.JWTer, adminH *handler.AdminHandler) *gin.Engine {
	r := server.NewRouter(l)
	r.Use(mdw.RequestID(), mdw.Metrics())

	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": 1}) })

	admin := r.Group("/admin/v1")
	adminH.MountPublic(admin)

	authed := admin.Group("")
	authed.Use(mdw.AuthJWT(jwter, domain.RoleAdmin))
	adminH.Mount(authed)

	return r
}
