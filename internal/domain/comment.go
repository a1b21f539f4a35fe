package domain

import "time"

// Comment 单层嵌套：ParentID 指向顶层评论，nil 表示顶层
type Comment struct {
	ID          int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Content     string    `gorm:"type:text;not null" json:"content"`
	AuthorEmail string    `gorm:"size:255;not null" json:"authorEmail"`
	PostID      int64     `gorm:"not null;index" json:"postId"`
	ParentID    *int64    `json:"parentId"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func (Comment) TableName() string { return "comments" }

// Bookmark 复合主键保证 (user, post) 唯一，由数据库约束兜底并发
type Bookmark struct {
	UserEmail string    `gorm:"primaryKey;size:255" json:"userEmail"`
	PostID    int64     `gorm:"primaryKey;autoIncrement:false" json:"postId"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Bookmark) TableName() string { return "bookmarks" }
