package repo

import (
	"context"

	"gorm.io/gorm"

	"go-blog-backend/internal/domain"
)

type PostCategoryRepo struct{ db *gorm.DB }

func NewPostCategoryRepo(db *gorm.DB) *PostCategoryRepo { return &PostCategoryRepo{db: db} }

func (r *PostCategoryRepo) WithTx(tx *gorm.DB) *PostCategoryRepo { return &PostCategoryRepo{db: tx} }

func (r *PostCategoryRepo) CreateAll(ctx context.Context, pcs []domain.PostCategory) error {
	if len(pcs) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&pcs).Error
}

func (r *PostCategoryRepo) FindByPostID(ctx context.Context, postID int64) ([]domain.PostCategory, error) {
	var pcs []domain.PostCategory
	err := r.db.WithContext(ctx).Where("post_id = ?", postID).Find(&pcs).Error
	return pcs, err
}

// FindByPostIDs 书签列表批量装配用的一次性查询
func (r *PostCategoryRepo) FindByPostIDs(ctx context.Context, postIDs []int64) ([]domain.PostCategory, error) {
	if len(postIDs) == 0 {
		return nil, nil
	}
	var pcs []domain.PostCategory
	err := r.db.WithContext(ctx).Where("post_id IN ?", postIDs).Find(&pcs).Error
	return pcs, err
}

func (r *PostCategoryRepo) DeleteByPostID(ctx context.Context, postID int64) error {
	return r.db.WithContext(ctx).Where("post_id = ?", postID).Delete(&domain.PostCategory{}).Error
}
