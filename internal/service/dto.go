package service

import "time"

// 请求体 binding 规则交给 gin/validator 处理

type SignUpRequest struct {
	Email    string `json:"email" form:"email" binding:"required,email"`
	Password string `json:"password" form:"password" binding:"required,min=4"`
	Nickname string `json:"nickname" form:"nickname" binding:"required,max=64"`
}

type SignUpResponse struct {
	Email    string `json:"email"`
	Nickname string `json:"nickname"`
	Message  string `json:"message"`
}

type LoginRequest struct {
	Email    string `json:"email" form:"email" binding:"required,email"`
	Password string `json:"password" form:"password" binding:"required"`
}

type LoginResponse struct {
	Email    string `json:"email"`
	Nickname string `json:"nickname"`
	Message  string `json:"message"`
}

type PostCreateRequest struct {
	Title       string  `json:"title" form:"title" binding:"required"`
	Content     string  `json:"content" form:"content" binding:"required"`
	AuthorEmail string  `json:"authorEmail" form:"authorEmail" binding:"required,email"`
	CategoryIDs []int64 `json:"categoryIds" form:"categoryIds"`
}

type PostUpdateRequest struct {
	Title       string  `json:"title" form:"title" binding:"required"`
	Content     string  `json:"content" form:"content" binding:"required"`
	CategoryIDs []int64 `json:"categoryIds" form:"categoryIds"`
}

type CategoryInfo struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type PostResponse struct {
	ID             int64          `json:"id"`
	Title          string         `json:"title"`
	Content        string         `json:"content"`
	AuthorEmail    string         `json:"authorEmail"`
	AuthorNickname string         `json:"authorNickname,omitempty"`
	Categories     []CategoryInfo `json:"categories"`
	CreatedAt      time.Time      `json:"createdAt"`
	UpdatedAt      time.Time      `json:"updatedAt"`
}

type CommentCreateRequest struct {
	Content     string `json:"content" form:"content" binding:"required"`
	AuthorEmail string `json:"authorEmail" form:"authorEmail" binding:"required,email"`
	PostID      int64  `json:"postId" form:"postId" binding:"required"`
	ParentID    *int64 `json:"parentId" form:"parentId"`
}

type CommentUpdateRequest struct {
	Content string `json:"content" form:"content" binding:"required"`
}

type CommentResponse struct {
	ID             int64     `json:"id"`
	Content        string    `json:"content"`
	AuthorEmail    string    `json:"authorEmail"`
	AuthorNickname string    `json:"authorNickname,omitempty"`
	PostID         int64     `json:"postId"`
	ParentID       *int64    `json:"parentId"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

type CategoryCreateRequest struct {
	Name string `json:"name" form:"name" binding:"required"`
}

type CategoryUpdateRequest struct {
	Name string `json:"name" form:"name" binding:"required"`
}

type CategoryResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type BookmarkCreateRequest struct {
	UserEmail string `json:"userEmail" form:"userEmail" binding:"required,email"`
	PostID    int64  `json:"postId" form:"postId" binding:"required"`
}

type BookmarkResponse struct {
	UserEmail string        `json:"userEmail"`
	PostID    int64         `json:"postId"`
	Post      *PostResponse `json:"post"`
	CreatedAt time.Time     `json:"createdAt"`
}
