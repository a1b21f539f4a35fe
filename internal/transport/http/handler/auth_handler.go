package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"go-blog-backend/internal/service"
	mdw "go-blog-backend/internal/transport/http/middleware"
	"go-blog-backend/internal/transport/http/response"
)

type AuthHandler struct {
	auth       *service.AuthService
	cookieName string
	cookieTTL  int // 秒
	secure     bool
}

func NewAuthHandler(auth *service.AuthService, cookieName string, cookieTTLSec int, secure bool) *AuthHandler {
	return &AuthHandler{auth: auth, cookieName: cookieName, cookieTTL: cookieTTLSec, secure: secure}
}

func (h *AuthHandler) Mount(rg *gin.RouterGroup) {
	g := rg.Group("/auth")
	g.POST("/signup", h.signup)
	g.POST("/login", h.login)
	g.POST("/logout", h.logout)
	g.GET("/me", h.me)
	g.GET("/status", h.status)
}

func (h *AuthHandler) signup(c *gin.Context) {
	var req service.SignUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}
	out, err := h.auth.SignUp(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, out)
}

func (h *AuthHandler) login(c *gin.Context) {
	var req service.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}
	sid, out, err := h.auth.Login(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.SetCookie(h.cookieName, sid, h.cookieTTL, "/", "", h.secure, true)
	c.JSON(http.StatusOK, out)
}

func (h *AuthHandler) logout(c *gin.Context) {
	if err := h.auth.Logout(c.Request.Context(), mdw.SessionID(c)); err != nil {
		response.Error(c, err)
		return
	}
	c.SetCookie(h.cookieName, "", -1, "/", "", h.secure, true)
	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}

func (h *AuthHandler) me(c *gin.Context) {
	p, err := h.auth.CurrentUser(c.Request.Context(), mdw.SessionID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// status 与原接口一致，返回裸布尔
func (h *AuthHandler) status(c *gin.Context) {
	c.JSON(http.StatusOK, h.auth.IsLoggedIn(c.Request.Context(), mdw.SessionID(c)))
}
