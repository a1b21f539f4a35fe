package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"go-blog-backend/internal/service"
	mdw "go-blog-backend/internal/transport/http/middleware"
	"go-blog-backend/internal/transport/http/response"
)

type BookmarkHandler struct {
	bookmarks *service.BookmarkService
}

func NewBookmarkHandler(bookmarks *service.BookmarkService) *BookmarkHandler {
	return &BookmarkHandler{bookmarks: bookmarks}
}

func (h *BookmarkHandler) Mount(rg *gin.RouterGroup) {
	g := rg.Group("/bookmarks")
	g.GET("/user/:email", h.listByUser)

	authed := g.Group("")
	authed.Use(mdw.RequireSession())
	authed.POST("/create", h.create)
	authed.DELETE("/user/:email/post/:postId", h.delete)
}

func (h *BookmarkHandler) create(c *gin.Context) {
	var req service.BookmarkCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}
	out, err := h.bookmarks.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, out)
}

func (h *BookmarkHandler) listByUser(c *gin.Context) {
	out, err := h.bookmarks.GetByUser(c.Request.Context(), c.Param("email"))
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *BookmarkHandler) delete(c *gin.Context) {
	postID, err := pathID(c, "postId")
	if err != nil {
		response.Error(c, err)
		return
	}
	if err := h.bookmarks.Delete(c.Request.Context(), c.Param("email"), postID); err != nil {
		response.Error(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
