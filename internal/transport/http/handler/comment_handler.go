package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"go-blog-backend/internal/service"
	mdw "go-blog-backend/internal/transport/http/middleware"
	"go-blog-backend/internal/transport/http/response"
)

type CommentHandler struct {
	comments *service.CommentService
}

func NewCommentHandler(comments *service.CommentService) *CommentHandler {
	return &CommentHandler{comments: comments}
}

func (h *CommentHandler) Mount(rg *gin.RouterGroup) {
	g := rg.Group("/comments")
	g.GET("/post/:postId", h.listByPost)

	authed := g.Group("")
	authed.Use(mdw.RequireSession())
	authed.POST("/create", h.create)
	authed.PUT("/:id", h.update)
	authed.DELETE("/:id", h.delete)
}

func (h *CommentHandler) create(c *gin.Context) {
	var req service.CommentCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}
	out, err := h.comments.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, out)
}

func (h *CommentHandler) listByPost(c *gin.Context) {
	postID, err := pathID(c, "postId")
	if err != nil {
		response.Error(c, err)
		return
	}
	out, err := h.comments.GetByPost(c.Request.Context(), postID)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *CommentHandler) update(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	var req service.CommentUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}
	p, _ := mdw.Principal(c)
	out, err := h.comments.Update(c.Request.Context(), id, p, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *CommentHandler) delete(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	p, _ := mdw.Principal(c)
	if err := h.comments.Delete(c.Request.Context(), id, p); err != nil {
		response.Error(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
