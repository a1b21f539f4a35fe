package service

import (
	"context"

	"gorm.io/gorm"

	"go-blog-backend/internal/apperr"
	"go-blog-backend/internal/core/session"
	"go-blog-backend/internal/domain"
	"go-blog-backend/internal/repo"
)

type PostService struct {
	db       *gorm.DB
	posts    *repo.PostRepo
	cats     *repo.CategoryRepo
	postCats *repo.PostCategoryRepo
	users    *repo.UserRepo
}

func NewPostService(db *gorm.DB, posts *repo.PostRepo, cats *repo.CategoryRepo,
	postCats *repo.PostCategoryRepo, users *repo.UserRepo) *PostService {
	return &PostService{db: db, posts: posts, cats: cats, postCats: postCats, users: users}
}

func (s *PostService) Create(ctx context.Context, req PostCreateRequest) (*PostResponse, error) {
	p := &domain.Post{
		Title:       req.Title,
		Content:     req.Content,
		AuthorEmail: req.AuthorEmail,
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.posts.WithTx(tx).Create(ctx, p); err != nil {
			return err
		}
		return s.postCats.WithTx(tx).CreateAll(ctx, buildAssociations(p.ID, req.CategoryIDs))
	})
	if err != nil {
		return nil, apperr.Internal("create post failed", err)
	}
	return s.toResponse(ctx, p)
}

func (s *PostService) GetByID(ctx context.Context, id int64) (*PostResponse, error) {
	p, err := s.posts.FindByID(ctx, id)
	if err != nil {
		return nil, apperr.Internal("find post failed", err)
	}
	if p == nil {
		return nil, apperr.NotFound("post not found")
	}
	return s.toResponse(ctx, p)
}

func (s *PostService) GetAll(ctx context.Context) ([]PostResponse, error) {
	posts, err := s.posts.FindAll(ctx)
	if err != nil {
		return nil, apperr.Internal("list posts failed", err)
	}
	return s.toResponses(ctx, posts)
}

func (s *PostService) GetByAuthor(ctx context.Context, email string) ([]PostResponse, error) {
	posts, err := s.posts.FindByAuthorEmail(ctx, email)
	if err != nil {
		return nil, apperr.Internal("list posts failed", err)
	}
	return s.toResponses(ctx, posts)
}

// Update 作者或 ADMIN 才可修改；分类关联整体替换，与帖子更新同一事务
func (s *PostService) Update(ctx context.Context, id int64, principal session.Principal, req PostUpdateRequest) (*PostResponse, error) {
	p, err := s.posts.FindByID(ctx, id)
	if err != nil {
		return nil, apperr.Internal("find post failed", err)
	}
	if p == nil {
		return nil, apperr.NotFound("post not found")
	}
	if !CanMutate(principal, p.AuthorEmail) {
		return nil, apperr.Unauthorized("not allowed to modify this post")
	}

	p.Title = req.Title
	p.Content = req.Content
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.posts.WithTx(tx).Save(ctx, p); err != nil {
			return err
		}
		// 全量替换：先删后插，不做 diff
		if err := s.postCats.WithTx(tx).DeleteByPostID(ctx, id); err != nil {
			return err
		}
		return s.postCats.WithTx(tx).CreateAll(ctx, buildAssociations(id, req.CategoryIDs))
	})
	if err != nil {
		return nil, apperr.Internal("update post failed", err)
	}
	return s.toResponse(ctx, p)
}

func (s *PostService) Delete(ctx context.Context, id int64, principal session.Principal) error {
	p, err := s.posts.FindByID(ctx, id)
	if err != nil {
		return apperr.Internal("find post failed", err)
	}
	if p == nil {
		return apperr.NotFound("post not found")
	}
	if !CanMutate(principal, p.AuthorEmail) {
		return apperr.Unauthorized("not allowed to delete this post")
	}

	// 关联随帖子级联删除；评论/书签不级联
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		rows, err := s.posts.WithTx(tx).Delete(ctx, id)
		if err != nil {
			return err
		}
		if rows == 0 {
			return apperr.NotFound("post not found")
		}
		return s.postCats.WithTx(tx).DeleteByPostID(ctx, id)
	})
	if err != nil {
		if apperr.IsNotFound(err) {
			return err
		}
		return apperr.Internal("delete post failed", err)
	}
	return nil
}

// toResponse 单帖装配（逐帖取关联，与书签列表的批量路径不同）
func (s *PostService) toResponse(ctx context.Context, p *domain.Post) (*PostResponse, error) {
	pcs, err := s.postCats.FindByPostID(ctx, p.ID)
	if err != nil {
		return nil, apperr.Internal("find associations failed", err)
	}
	catIDs := make([]int64, 0, len(pcs))
	for _, pc := range pcs {
		catIDs = append(catIDs, pc.CategoryID)
	}
	cats, err := s.cats.FindByIDs(ctx, dedupInt64(catIDs))
	if err != nil {
		return nil, apperr.Internal("find categories failed", err)
	}
	catByID := make(map[int64]domain.Category, len(cats))
	for _, c := range cats {
		catByID[c.ID] = c
	}

	// 关联里悬空的分类 id（写入时未校验外键）在读出时丢弃
	infos := make([]CategoryInfo, 0, len(pcs))
	for _, pc := range pcs {
		if c, ok := catByID[pc.CategoryID]; ok {
			infos = append(infos, CategoryInfo{ID: c.ID, Name: c.Name})
		}
	}

	var nickname string
	if p.AuthorEmail != "" {
		u, err := s.users.FindByEmail(ctx, p.AuthorEmail)
		if err != nil {
			return nil, apperr.Internal("find author failed", err)
		}
		if u != nil {
			nickname = u.Nickname
		}
	}

	return &PostResponse{
		ID:             p.ID,
		Title:          p.Title,
		Content:        p.Content,
		AuthorEmail:    p.AuthorEmail,
		AuthorNickname: nickname,
		Categories:     infos,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}, nil
}

func (s *PostService) toResponses(ctx context.Context, posts []domain.Post) ([]PostResponse, error) {
	out := make([]PostResponse, 0, len(posts))
	for i := range posts {
		r, err := s.toResponse(ctx, &posts[i])
		if err != nil {
			return nil, err
		}
		out = append(out, *r)
	}
	return out, nil
}

func buildAssociations(postID int64, categoryIDs []int64) []domain.PostCategory {
	ids := dedupInt64(categoryIDs)
	pcs := make([]domain.PostCategory, 0, len(ids))
	for _, cid := range ids {
		pcs = append(pcs, domain.PostCategory{PostID: postID, CategoryID: cid})
	}
	return pcs
}

func dedupInt64(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
