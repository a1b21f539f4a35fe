package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"go-blog-backend/internal/apperr"
	"go-blog-backend/internal/service"
	mdw "go-blog-backend/internal/transport/http/middleware"
	"go-blog-backend/internal/transport/http/response"
)

type PostHandler struct {
	posts *service.PostService
}

func NewPostHandler(posts *service.PostService) *PostHandler { return &PostHandler{posts: posts} }

// Mount 读接口匿名可用；变更接口要求会话
func (h *PostHandler) Mount(rg *gin.RouterGroup) {
	g := rg.Group("/posts")
	g.GET("", h.list)
	g.GET("/:id", h.get)
	g.GET("/author/:email", h.listByAuthor)

	authed := g.Group("")
	authed.Use(mdw.RequireSession())
	authed.POST("/create", h.create)
	authed.PUT("/:id", h.update)
	authed.DELETE("/:id", h.delete)
}

func (h *PostHandler) create(c *gin.Context) {
	var req service.PostCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}
	out, err := h.posts.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, out)
}

func (h *PostHandler) get(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	out, err := h.posts.GetByID(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *PostHandler) list(c *gin.Context) {
	out, err := h.posts.GetAll(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *PostHandler) listByAuthor(c *gin.Context) {
	out, err := h.posts.GetByAuthor(c.Request.Context(), c.Param("email"))
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *PostHandler) update(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	var req service.PostUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}
	p, _ := mdw.Principal(c)
	out, err := h.posts.Update(c.Request.Context(), id, p, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *PostHandler) delete(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	p, _ := mdw.Principal(c)
	if err := h.posts.Delete(c.Request.Context(), id, p); err != nil {
		response.Error(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func pathID(c *gin.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil {
		return 0, apperr.BadRequest("invalid " + name)
	}
	return id, nil
}
