package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"go-blog-backend/internal/domain"
)

type PostRepo struct{ db *gorm.DB }

func NewPostRepo(db *gorm.DB) *PostRepo { return &PostRepo{db: db} }

// WithTx 绑定到事务，供 service 层的事务单元使用
func (r *PostRepo) WithTx(tx *gorm.DB) *PostRepo { return &PostRepo{db: tx} }

func (r *PostRepo) Create(ctx context.Context, p *domain.Post) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *PostRepo) FindByID(ctx context.Context, id int64) (*domain.Post, error) {
	var p domain.Post
	err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &p, err
}

func (r *PostRepo) FindAll(ctx context.Context) ([]domain.Post, error) {
	var posts []domain.Post
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&posts).Error
	return posts, err
}

func (r *PostRepo) FindByAuthorEmail(ctx context.Context, email string) ([]domain.Post, error) {
	var posts []domain.Post
	err := r.db.WithContext(ctx).Where("author_email = ?", email).Order("created_at DESC").Find(&posts).Error
	return posts, err
}

func (r *PostRepo) Save(ctx context.Context, p *domain.Post) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *PostRepo) Delete(ctx context.Context, id int64) (int64, error) {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&domain.Post{})
	return res.RowsAffected, res.Error
}
