package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"go-blog-backend/internal/apperr"
	"go-blog-backend/internal/core/auth"
	"go-blog-backend/internal/domain"
	"go-blog-backend/internal/repo"
	"go-blog-backend/internal/transport/http/response"
	"go-blog-backend/pkg/utils"
)

// AdminHandler 管理端用户运维：发令牌、查用户、删账号
type AdminHandler struct {
	users *repo.UserRepo
	jwter *auth.JWTer
}

func NewAdminHandler(users *repo.UserRepo, jwter *auth.JWTer) *AdminHandler {
	return &AdminHandler{users: users, jwter: jwter}
}

// MountPublic 挂载无需令牌的入口（换取令牌）
func (h *AdminHandler) MountPublic(rg *gin.RouterGroup) {
	rg.POST("/auth/token", h.token)
}

// Mount 挂载需 ADMIN 令牌的接口
func (h *AdminHandler) Mount(rg *gin.RouterGroup) {
	rg.GET("/users", h.listUsers)
	rg.DELETE("/users/:email", h.deleteUser)
}

func (h *AdminHandler) token(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}
	u, err := h.users.FindByEmail(c.Request.Context(), req.Email)
	if err != nil {
		response.Error(c, apperr.Internal("find user failed", err))
		return
	}
	if u == nil || !utils.CheckPassword(req.Password, u.PasswordHash) {
		response.Error(c, apperr.Unauthorized("invalid email or password"))
		return
	}
	if u.Role != domain.RoleAdmin {
		response.AbortError(c, http.StatusForbidden, "forbidden")
		return
	}
	tok, err := h.jwter.Issue(u.Email, u.Role)
	if err != nil {
		response.Error(c, apperr.Internal("issue token failed", err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": tok})
}

func (h *AdminHandler) listUsers(c *gin.Context) {
	type listQ struct {
		Offset int    `form:"offset,default=0"`
		Limit  int    `form:"limit,default=20"`
		Q      string `form:"q"` // 按 email/nickname 模糊搜
	}
	var in listQ
	if err := c.ShouldBindQuery(&in); err != nil {
		response.BindError(c, err)
		return
	}
	if in.Limit <= 0 || in.Limit > 100 {
		in.Limit = 20
	}

	users, total, err := h.users.List(c.Request.Context(), in.Offset, in.Limit, in.Q)
	if err != nil {
		response.Error(c, apperr.Internal("list users failed", err))
		return
	}

	type row struct {
		Email     string    `json:"email"`
		Nickname  string    `json:"nickname"`
		Role      string    `json:"role"`
		CreatedAt time.Time `json:"createdAt"`
	}
	items := make([]row, 0, len(users))
	for _, u := range users {
		items = append(items, row{Email: u.Email, Nickname: u.Nickname, Role: u.Role, CreatedAt: u.CreatedAt})
	}
	c.JSON(http.StatusOK, gin.H{"total": total, "items": items})
}

func (h *AdminHandler) deleteUser(c *gin.Context) {
	rows, err := h.users.Delete(c.Request.Context(), c.Param("email"))
	if err != nil {
		response.Error(c, apperr.Internal("delete user failed", err))
		return
	}
	if rows == 0 {
		response.Error(c, apperr.NotFound("user not found"))
		return
	}
	c.Status(http.StatusNoContent)
}
