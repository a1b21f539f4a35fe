package service

import (
	"context"

	"go-blog-backend/internal/apperr"
	"go-blog-backend/internal/domain"
	"go-blog-backend/internal/repo"
)

type BookmarkService struct {
	bookmarks *repo.BookmarkRepo
	posts     *repo.PostRepo
	postCats  *repo.PostCategoryRepo
	cats      *repo.CategoryRepo
}

func NewBookmarkService(bookmarks *repo.BookmarkRepo, posts *repo.PostRepo,
	postCats *repo.PostCategoryRepo, cats *repo.CategoryRepo) *BookmarkService {
	return &BookmarkService{bookmarks: bookmarks, posts: posts, postCats: postCats, cats: cats}
}

// Create 唯一性交给复合主键约束，冲突翻译成 BadRequest
func (s *BookmarkService) Create(ctx context.Context, req BookmarkCreateRequest) (*BookmarkResponse, error) {
	post, err := s.posts.FindByID(ctx, req.PostID)
	if err != nil {
		return nil, apperr.Internal("find post failed", err)
	}
	if post == nil {
		return nil, apperr.NotFound("post not found")
	}

	b := &domain.Bookmark{UserEmail: req.UserEmail, PostID: req.PostID}
	if err := s.bookmarks.Create(ctx, b); err != nil {
		if repo.IsDupKey(err) {
			return nil, apperr.BadRequest("post already bookmarked")
		}
		return nil, apperr.Internal("create bookmark failed", err)
	}

	pr, err := s.assemblePost(ctx, post)
	if err != nil {
		return nil, err
	}
	return &BookmarkResponse{
		UserEmail: b.UserEmail,
		PostID:    b.PostID,
		Post:      pr,
		CreatedAt: b.CreatedAt,
	}, nil
}

// GetByUser 有界往返数：无论书签多少，固定一趟书签+帖子 JOIN、
// 一趟关联 IN、一趟分类 IN。空列表在第一趟后短路。
func (s *BookmarkService) GetByUser(ctx context.Context, userEmail string) ([]BookmarkResponse, error) {
	rows, err := s.bookmarks.FindByUserWithPost(ctx, userEmail)
	if err != nil {
		return nil, apperr.Internal("list bookmarks failed", err)
	}
	if len(rows) == 0 {
		return []BookmarkResponse{}, nil
	}

	postIDs := make([]int64, 0, len(rows))
	for _, row := range rows {
		if row.Post != nil {
			postIDs = append(postIDs, row.Post.ID)
		}
	}
	pcs, err := s.postCats.FindByPostIDs(ctx, dedupInt64(postIDs))
	if err != nil {
		return nil, apperr.Internal("list associations failed", err)
	}

	catIDs := make([]int64, 0, len(pcs))
	for _, pc := range pcs {
		catIDs = append(catIDs, pc.CategoryID)
	}
	cats, err := s.cats.FindByIDs(ctx, dedupInt64(catIDs))
	if err != nil {
		return nil, apperr.Internal("list categories failed", err)
	}

	pcsByPost := make(map[int64][]domain.PostCategory, len(rows))
	for _, pc := range pcs {
		pcsByPost[pc.PostID] = append(pcsByPost[pc.PostID], pc)
	}
	catByID := make(map[int64]domain.Category, len(cats))
	for _, c := range cats {
		catByID[c.ID] = c
	}

	out := make([]BookmarkResponse, 0, len(rows))
	for _, row := range rows {
		resp := BookmarkResponse{
			UserEmail: row.Bookmark.UserEmail,
			PostID:    row.Bookmark.PostID,
			CreatedAt: row.Bookmark.CreatedAt,
		}
		// 帖子被删的书签返回 null post，不让整个列表失败
		if row.Post != nil {
			infos := make([]CategoryInfo, 0, len(pcsByPost[row.Post.ID]))
			for _, pc := range pcsByPost[row.Post.ID] {
				if c, ok := catByID[pc.CategoryID]; ok {
					infos = append(infos, CategoryInfo{ID: c.ID, Name: c.Name})
				}
			}
			resp.Post = &PostResponse{
				ID:          row.Post.ID,
				Title:       row.Post.Title,
				Content:     row.Post.Content,
				AuthorEmail: row.Post.AuthorEmail,
				Categories:  infos,
				CreatedAt:   row.Post.CreatedAt,
				UpdatedAt:   row.Post.UpdatedAt,
			}
		}
		out = append(out, resp)
	}
	return out, nil
}

func (s *BookmarkService) Delete(ctx context.Context, userEmail string, postID int64) error {
	rows, err := s.bookmarks.Delete(ctx, userEmail, postID)
	if err != nil {
		return apperr.Internal("delete bookmark failed", err)
	}
	if rows == 0 {
		return apperr.NotFound("bookmark not found")
	}
	return nil
}

// assemblePost 单帖装配（创建响应用），与 GetByUser 的批量路径相对
func (s *BookmarkService) assemblePost(ctx context.Context, post *domain.Post) (*PostResponse, error) {
	pcs, err := s.postCats.FindByPostID(ctx, post.ID)
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
	infos := make([]CategoryInfo, 0, len(pcs))
	for _, pc := range pcs {
		if c, ok := catByID[pc.CategoryID]; ok {
			infos = append(infos, CategoryInfo{ID: c.ID, Name: c.Name})
		}
	}
	return &PostResponse{
		ID:          post.ID,
		Title:       post.Title,
		Content:     post.Content,
		AuthorEmail: post.AuthorEmail,
		Categories:  infos,
		CreatedAt:   post.CreatedAt,
		UpdatedAt:   post.UpdatedAt,
	}, nil
}
