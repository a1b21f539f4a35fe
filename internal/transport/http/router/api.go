package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"go-blog-backend/internal/core/session"
	"go-blog-backend/internal/transport/http/handler"
	mdw "go-blog-backend/internal/transport/http/middleware"
	"go-blog-backend/internal/transport/http/view"
)

// APIModule REST 模块统一挂载口
type APIModule interface{ Mount(*gin.RouterGroup) }

type APIDeps struct {
	Log        *zap.Logger
	Sessions   session.Store
	CookieName string

	Auth      *handler.AuthHandler
	Posts     *handler.PostHandler
	Comments  *handler.CommentHandler
	Bookmarks *handler.BookmarkHandler
	View      *view.Handler

	TemplateGlob string
}

func NewAPIEngine(d APIDeps) *gin.Engine {
	r := gin.New()

	r.Use(
		mdw.RequestID(),
		mdw.RateLimit(200, 400),
		mdw.ConcurrencyLimit(300),
		mdw.MaxBodyBytes(4<<20),
		mdw.Timeout(10*time.Second),
		mdw.SimpleRecovery(),
		mdw.Metrics(),
		mdw.AccessLog(d.Log),
		cors.Default(),
		mdw.LoadSession(d.Sessions, d.CookieName),
	)

	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": 1}) })
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")
	for _, m := range []APIModule{d.Auth, d.Posts, d.Comments, d.Bookmarks} {
		m.Mount(api)
	}

	// 页面端与 REST 共用一条中间件链
	if d.View != nil {
		if d.TemplateGlob != "" {
			r.LoadHTMLGlob(d.TemplateGlob)
		}
		d.View.Mount(r)
	}

	return r
}
