package domain

import "time"

type Post struct {
	ID          int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Title       string    `gorm:"size:255;not null" json:"title"`
	Content     string    `gorm:"type:text;not null" json:"content"`
	AuthorEmail string    `gorm:"size:255;not null;index" json:"authorEmail"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func (Post) TableName() string { return "posts" }

type Category struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string    `gorm:"size:64;not null" json:"name"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Category) TableName() string { return "categories" }

// PostCategory 帖子与分类的多对多关联，复合主键
type PostCategory struct {
	PostID     int64 `gorm:"primaryKey;autoIncrement:false" json:"postId"`
	CategoryID int64 `gorm:"primaryKey;autoIncrement:false" json:"categoryId"`
}

func (PostCategory) TableName() string { return "post_categories" }
