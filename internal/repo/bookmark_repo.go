package repo

import (
	"context"
	"strings"
	"time"

	"gorm.io/gorm"

	"go-blog-backend/internal/domain"
)

type BookmarkRepo struct{ db *gorm.DB }

func NewBookmarkRepo(db *gorm.DB) *BookmarkRepo { return &BookmarkRepo{db: db} }

// Create 依赖复合主键约束保证 (user, post) 唯一；冲突用 IsDupKey 识别
func (r *BookmarkRepo) Create(ctx context.Context, b *domain.Bookmark) error {
	return r.db.WithContext(ctx).Create(b).Error
}

func (r *BookmarkRepo) Exists(ctx context.Context, userEmail string, postID int64) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&domain.Bookmark{}).
		Where("user_email = ? AND post_id = ?", userEmail, postID).Count(&n).Error
	return n > 0, err
}

// BookmarkWithPost 书签行连同帖子行（帖子被删时 Post 为 nil）
type BookmarkWithPost struct {
	Bookmark domain.Bookmark
	Post     *domain.Post
}

type bookmarkJoinRow struct {
	UserEmail   string     `gorm:"column:user_email"`
	PostID      int64      `gorm:"column:post_id"`
	CreatedAt   time.Time  `gorm:"column:created_at"`
	UpdatedAt   time.Time  `gorm:"column:updated_at"`
	PID         *int64     `gorm:"column:pid"`
	PTitle      *string    `gorm:"column:p_title"`
	PContent    *string    `gorm:"column:p_content"`
	PAuthor     *string    `gorm:"column:p_author"`
	PCreatedAt  *time.Time `gorm:"column:p_created_at"`
	PUpdatedAt  *time.Time `gorm:"column:p_updated_at"`
}

// FindByUserWithPost 单次 JOIN 查询拉取用户全部书签及其帖子
func (r *BookmarkRepo) FindByUserWithPost(ctx context.Context, userEmail string) ([]BookmarkWithPost, error) {
	var rows []bookmarkJoinRow
	err := r.db.WithContext(ctx).Table("bookmarks").
		Select("bookmarks.user_email, bookmarks.post_id, bookmarks.created_at, bookmarks.updated_at, " +
			"posts.id AS pid, posts.title AS p_title, posts.content AS p_content, " +
			"posts.author_email AS p_author, posts.created_at AS p_created_at, posts.updated_at AS p_updated_at").
		Joins("LEFT JOIN posts ON posts.id = bookmarks.post_id").
		Where("bookmarks.user_email = ?", userEmail).
		Order("bookmarks.created_at DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make([]BookmarkWithPost, 0, len(rows))
	for _, row := range rows {
		bp := BookmarkWithPost{Bookmark: domain.Bookmark{
			UserEmail: row.UserEmail,
			PostID:    row.PostID,
			CreatedAt: row.CreatedAt,
			UpdatedAt: row.UpdatedAt,
		}}
		if row.PID != nil {
			bp.Post = &domain.Post{
				ID:          *row.PID,
				Title:       deref(row.PTitle),
				Content:     deref(row.PContent),
				AuthorEmail: deref(row.PAuthor),
			}
			if row.PCreatedAt != nil {
				bp.Post.CreatedAt = *row.PCreatedAt
			}
			if row.PUpdatedAt != nil {
				bp.Post.UpdatedAt = *row.PUpdatedAt
			}
		}
		out = append(out, bp)
	}
	return out, nil
}

func (r *BookmarkRepo) Delete(ctx context.Context, userEmail string, postID int64) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("user_email = ? AND post_id = ?", userEmail, postID).
		Delete(&domain.Bookmark{})
	return res.RowsAffected, res.Error
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// IsDupKey 不依赖 gorm.ErrDuplicatedKey，避免驱动差异
func IsDupKey(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate") ||
		strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "unique violation") ||
		strings.Contains(msg, "unique")
}
