package view

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"go-blog-backend/internal/apperr"
	"go-blog-backend/internal/core/session"
	"go-blog-backend/internal/service"
	mdw "go-blog-backend/internal/transport/http/middleware"
)

// Handler 浏览器端页面流：redirect + flash，不返回错误体
type Handler struct {
	auth       *service.AuthService
	posts      *service.PostService
	comments   *service.CommentService
	cats       *service.CategoryService
	cookieName string
	cookieTTL  int
	secure     bool
}

func NewHandler(auth *service.AuthService, posts *service.PostService,
	comments *service.CommentService, cats *service.CategoryService,
	cookieName string, cookieTTLSec int, secure bool) *Handler {
	return &Handler{
		auth: auth, posts: posts, comments: comments, cats: cats,
		cookieName: cookieName, cookieTTL: cookieTTLSec, secure: secure,
	}
}

func (h *Handler) Mount(r *gin.Engine) {
	r.GET("/", h.home)
	r.GET("/signup", h.signupPage)
	r.POST("/signup", h.signup)
	r.GET("/login", h.loginPage)
	r.POST("/login", h.login)
	r.POST("/logout", h.logout)

	r.GET("/posts/new", h.postForm)
	r.POST("/posts", h.createPost)
	r.GET("/posts/:id", h.postDetail)
	r.GET("/posts/:id/edit", h.editPostForm)
	r.POST("/posts/:id/edit", h.updatePost)
	r.POST("/posts/:id/delete", h.deletePost)
	r.POST("/posts/:id/comments", h.createComment)

	r.POST("/comments/:id/edit", h.updateComment)
	r.POST("/comments/:id/delete", h.deleteComment)

	r.GET("/categories", h.categoriesPage)
	r.POST("/categories", h.createCategory)
	r.POST("/categories/:id/edit", h.updateCategory)
	r.POST("/categories/:id/delete", h.deleteCategory)
}

// render 注入登录态与 flash 后渲染
func (h *Handler) render(c *gin.Context, name string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	p, ok := mdw.Principal(c)
	data["IsLoggedIn"] = ok
	if ok {
		data["CurrentUser"] = p
		data["IsAdmin"] = p.IsAdmin()
	}
	if f := takeFlash(c); f != nil {
		data["Flash"] = f
	}
	c.HTML(http.StatusOK, name, data)
}

func (h *Handler) home(c *gin.Context) {
	ctx := c.Request.Context()
	posts, err := h.posts.GetAll(ctx)
	if err != nil {
		posts = nil
	}
	var selected int64
	if raw := c.Query("categoryId"); raw != "" {
		if id, err := strconv.ParseInt(raw, 10, 64); err == nil {
			selected = id
			filtered := posts[:0]
			for _, p := range posts {
				for _, cat := range p.Categories {
					if cat.ID == id {
						filtered = append(filtered, p)
						break
					}
				}
			}
			posts = filtered
		}
	}
	cats, err := h.cats.GetAll(ctx)
	if err != nil {
		cats = nil
	}
	h.render(c, "index.html", gin.H{
		"Posts":              posts,
		"Categories":         cats,
		"SelectedCategoryID": selected,
	})
}

func (h *Handler) signupPage(c *gin.Context) {
	if _, ok := mdw.Principal(c); ok {
		c.Redirect(http.StatusFound, "/")
		return
	}
	h.render(c, "signup.html", nil)
}

func (h *Handler) signup(c *gin.Context) {
	var req service.SignUpRequest
	if err := c.ShouldBind(&req); err != nil {
		setFlash(c, "error", "all fields are required")
		c.Redirect(http.StatusFound, "/signup")
		return
	}
	if _, err := h.auth.SignUp(c.Request.Context(), req); err != nil {
		setFlash(c, "error", apperr.As(err).Message)
		c.Redirect(http.StatusFound, "/signup")
		return
	}
	setFlash(c, "success", "signup completed, please log in")
	c.Redirect(http.StatusFound, "/login")
}

func (h *Handler) loginPage(c *gin.Context) {
	if _, ok := mdw.Principal(c); ok {
		c.Redirect(http.StatusFound, "/")
		return
	}
	h.render(c, "login.html", nil)
}

func (h *Handler) login(c *gin.Context) {
	var req service.LoginRequest
	if err := c.ShouldBind(&req); err != nil {
		setFlash(c, "error", "email and password are required")
		c.Redirect(http.StatusFound, "/login")
		return
	}
	sid, _, err := h.auth.Login(c.Request.Context(), req)
	if err != nil {
		setFlash(c, "error", apperr.As(err).Message)
		c.Redirect(http.StatusFound, "/login")
		return
	}
	c.SetCookie(h.cookieName, sid, h.cookieTTL, "/", "", h.secure, true)
	c.Redirect(http.StatusFound, "/")
}

func (h *Handler) logout(c *gin.Context) {
	_ = h.auth.Logout(c.Request.Context(), mdw.SessionID(c))
	c.SetCookie(h.cookieName, "", -1, "/", "", h.secure, true)
	c.Redirect(http.StatusFound, "/")
}

func (h *Handler) postDetail(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.Redirect(http.StatusFound, "/")
		return
	}
	ctx := c.Request.Context()
	post, err := h.posts.GetByID(ctx, id)
	if err != nil {
		c.Redirect(http.StatusFound, "/")
		return
	}
	comments, _ := h.comments.GetByPost(ctx, id)
	cats, _ := h.cats.GetAll(ctx)
	h.render(c, "post-detail.html", gin.H{
		"Post":       post,
		"Comments":   threadComments(comments),
		"Categories": cats,
	})
}

type commentThread struct {
	service.CommentResponse
	Replies []service.CommentResponse
}

// threadComments 平铺列表转单层树，供模板渲染
func threadComments(comments []service.CommentResponse) []commentThread {
	byParent := make(map[int64][]service.CommentResponse)
	var roots []commentThread
	for _, c := range comments {
		if c.ParentID != nil {
			byParent[*c.ParentID] = append(byParent[*c.ParentID], c)
		}
	}
	for _, c := range comments {
		if c.ParentID == nil {
			roots = append(roots, commentThread{CommentResponse: c, Replies: byParent[c.ID]})
		}
	}
	return roots
}

func (h *Handler) postForm(c *gin.Context) {
	if _, ok := mdw.Principal(c); !ok {
		c.Redirect(http.StatusFound, "/login")
		return
	}
	cats, _ := h.cats.GetAll(c.Request.Context())
	h.render(c, "post-form.html", gin.H{"Categories": cats})
}

func (h *Handler) createPost(c *gin.Context) {
	p, ok := mdw.Principal(c)
	if !ok {
		c.Redirect(http.StatusFound, "/login")
		return
	}
	req := service.PostCreateRequest{
		Title:       c.PostForm("title"),
		Content:     c.PostForm("content"),
		AuthorEmail: p.Email,
		CategoryIDs: formIDs(c, "categoryIds"),
	}
	if req.Title == "" || req.Content == "" {
		setFlash(c, "error", "title and content are required")
		c.Redirect(http.StatusFound, "/posts/new")
		return
	}
	post, err := h.posts.Create(c.Request.Context(), req)
	if err != nil {
		setFlash(c, "error", "failed to create post")
		c.Redirect(http.StatusFound, "/posts/new")
		return
	}
	setFlash(c, "success", "post created")
	c.Redirect(http.StatusFound, "/posts/"+strconv.FormatInt(post.ID, 10))
}

func (h *Handler) editPostForm(c *gin.Context) {
	id, p, ok := h.pathIDAndPrincipal(c)
	if !ok {
		return
	}
	post, err := h.posts.GetByID(c.Request.Context(), id)
	if err != nil {
		c.Redirect(http.StatusFound, "/")
		return
	}
	if !service.CanMutate(p, post.AuthorEmail) {
		c.Redirect(http.StatusFound, "/posts/"+c.Param("id"))
		return
	}
	cats, _ := h.cats.GetAll(c.Request.Context())
	selected := make(map[int64]bool, len(post.Categories))
	for _, cat := range post.Categories {
		selected[cat.ID] = true
	}
	h.render(c, "post-edit.html", gin.H{"Post": post, "Categories": cats, "Selected": selected})
}

func (h *Handler) updatePost(c *gin.Context) {
	id, p, ok := h.pathIDAndPrincipal(c)
	if !ok {
		return
	}
	req := service.PostUpdateRequest{
		Title:       c.PostForm("title"),
		Content:     c.PostForm("content"),
		CategoryIDs: formIDs(c, "categoryIds"),
	}
	_, err := h.posts.Update(c.Request.Context(), id, p, req)
	switch {
	case err == nil:
		setFlash(c, "success", "post updated")
		c.Redirect(http.StatusFound, "/posts/"+c.Param("id"))
	case apperr.IsUnauthorized(err):
		// 非作者的变更静默跳过，跳回资源页
		c.Redirect(http.StatusFound, "/posts/"+c.Param("id"))
	default:
		setFlash(c, "error", "failed to update post")
		c.Redirect(http.StatusFound, "/posts/"+c.Param("id")+"/edit")
	}
}

func (h *Handler) deletePost(c *gin.Context) {
	id, p, ok := h.pathIDAndPrincipal(c)
	if !ok {
		return
	}
	err := h.posts.Delete(c.Request.Context(), id, p)
	switch {
	case err == nil:
		setFlash(c, "success", "post deleted")
		c.Redirect(http.StatusFound, "/")
	case apperr.IsUnauthorized(err):
		c.Redirect(http.StatusFound, "/posts/"+c.Param("id"))
	default:
		setFlash(c, "error", "failed to delete post")
		c.Redirect(http.StatusFound, "/posts/"+c.Param("id"))
	}
}

func (h *Handler) createComment(c *gin.Context) {
	id, p, ok := h.pathIDAndPrincipal(c)
	if !ok {
		return
	}
	req := service.CommentCreateRequest{
		Content:     c.PostForm("content"),
		AuthorEmail: p.Email,
		PostID:      id,
	}
	if raw := c.PostForm("parentId"); raw != "" {
		if pid, err := strconv.ParseInt(raw, 10, 64); err == nil {
			req.ParentID = &pid
		}
	}
	back := "/posts/" + c.Param("id")
	if req.Content == "" {
		setFlash(c, "error", "comment content is required")
		c.Redirect(http.StatusFound, back)
		return
	}
	if _, err := h.comments.Create(c.Request.Context(), req); err != nil {
		setFlash(c, "error", "failed to create comment")
		c.Redirect(http.StatusFound, back)
		return
	}
	setFlash(c, "success", "comment created")
	c.Redirect(http.StatusFound, back)
}

func (h *Handler) updateComment(c *gin.Context) {
	id, p, ok := h.pathIDAndPrincipal(c)
	if !ok {
		return
	}
	comment, err := h.comments.GetByID(c.Request.Context(), id)
	if err != nil {
		c.Redirect(http.StatusFound, "/")
		return
	}
	back := "/posts/" + strconv.FormatInt(comment.PostID, 10)
	_, err = h.comments.Update(c.Request.Context(), id, p, service.CommentUpdateRequest{
		Content: c.PostForm("content"),
	})
	switch {
	case err == nil:
		setFlash(c, "success", "comment updated")
		c.Redirect(http.StatusFound, back)
	case apperr.IsUnauthorized(err):
		c.Redirect(http.StatusFound, back)
	default:
		setFlash(c, "error", "failed to update comment")
		c.Redirect(http.StatusFound, "/")
	}
}

func (h *Handler) deleteComment(c *gin.Context) {
	id, p, ok := h.pathIDAndPrincipal(c)
	if !ok {
		return
	}
	comment, err := h.comments.GetByID(c.Request.Context(), id)
	if err != nil {
		c.Redirect(http.StatusFound, "/")
		return
	}
	back := "/posts/" + strconv.FormatInt(comment.PostID, 10)
	err = h.comments.Delete(c.Request.Context(), id, p)
	switch {
	case err == nil:
		setFlash(c, "success", "comment deleted")
		c.Redirect(http.StatusFound, back)
	case apperr.IsUnauthorized(err):
		c.Redirect(http.StatusFound, back)
	default:
		setFlash(c, "error", "failed to delete comment")
		c.Redirect(http.StatusFound, "/")
	}
}

func (h *Handler) categoriesPage(c *gin.Context) {
	if _, ok := mdw.Principal(c); !ok {
		c.Redirect(http.StatusFound, "/login")
		return
	}
	cats, _ := h.cats.GetAll(c.Request.Context())
	h.render(c, "category-list.html", gin.H{"Categories": cats})
}

// 分类的变更只要求已登录，不做归属校验
func (h *Handler) createCategory(c *gin.Context) {
	if _, ok := mdw.Principal(c); !ok {
		c.Redirect(http.StatusFound, "/login")
		return
	}
	name := c.PostForm("name")
	if name == "" {
		setFlash(c, "error", "category name is required")
		c.Redirect(http.StatusFound, "/categories")
		return
	}
	if _, err := h.cats.Create(c.Request.Context(), service.CategoryCreateRequest{Name: name}); err != nil {
		setFlash(c, "error", "failed to create category")
	} else {
		setFlash(c, "success", "category created")
	}
	c.Redirect(http.StatusFound, "/categories")
}

func (h *Handler) updateCategory(c *gin.Context) {
	id, _, ok := h.pathIDAndPrincipal(c)
	if !ok {
		return
	}
	_, err := h.cats.Update(c.Request.Context(), id, service.CategoryUpdateRequest{Name: c.PostForm("name")})
	if err != nil {
		setFlash(c, "error", "failed to update category")
	} else {
		setFlash(c, "success", "category updated")
	}
	c.Redirect(http.StatusFound, "/categories")
}

func (h *Handler) deleteCategory(c *gin.Context) {
	id, _, ok := h.pathIDAndPrincipal(c)
	if !ok {
		return
	}
	if err := h.cats.Delete(c.Request.Context(), id); err != nil {
		setFlash(c, "error", "failed to delete category")
	} else {
		setFlash(c, "success", "category deleted")
	}
	c.Redirect(http.StatusFound, "/categories")
}

// pathIDAndPrincipal 解析 :id 并要求登录，失败时自己完成跳转
func (h *Handler) pathIDAndPrincipal(c *gin.Context) (int64, session.Principal, bool) {
	p, ok := mdw.Principal(c)
	if !ok {
		c.Redirect(http.StatusFound, "/login")
		return 0, session.Principal{}, false
	}
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.Redirect(http.StatusFound, "/")
		return 0, session.Principal{}, false
	}
	return id, p, true
}

func formIDs(c *gin.Context, key string) []int64 {
	raws := c.PostFormArray(key)
	ids := make([]int64, 0, len(raws))
	for _, raw := range raws {
		if id, err := strconv.ParseInt(raw, 10, 64); err == nil {
			ids = append(ids, id)
		}
	}
	return ids
}
