package service

import (
	"context"

	"go-blog-backend/internal/apperr"
	"go-blog-backend/internal/core/session"
	"go-blog-backend/internal/domain"
	"go-blog-backend/internal/repo"
)

type CommentService struct {
	comments *repo.CommentRepo
	users    *repo.UserRepo
}

func NewCommentService(comments *repo.CommentRepo, users *repo.UserRepo) *CommentService {
	return &CommentService{comments: comments, users: users}
}

// Create 回复必须指向同一帖子下的顶层评论
func (s *CommentService) Create(ctx context.Context, req CommentCreateRequest) (*CommentResponse, error) {
	if req.ParentID != nil {
		parent, err := s.comments.FindByID(ctx, *req.ParentID)
		if err != nil {
			return nil, apperr.Internal("find parent comment failed", err)
		}
		if parent == nil {
			return nil, apperr.BadRequest("parent comment not found")
		}
		if parent.PostID != req.PostID {
			return nil, apperr.BadRequest("parent comment belongs to a different post")
		}
		if parent.ParentID != nil {
			return nil, apperr.BadRequest("replies can only target top-level comments")
		}
	}

	c := &domain.Comment{
		Content:     req.Content,
		AuthorEmail: req.AuthorEmail,
		PostID:      req.PostID,
		ParentID:    req.ParentID,
	}
	if err := s.comments.Create(ctx, c); err != nil {
		return nil, apperr.Internal("create comment failed", err)
	}
	return s.toResponse(ctx, c)
}

func (s *CommentService) GetByPost(ctx context.Context, postID int64) ([]CommentResponse, error) {
	comments, err := s.comments.FindByPostID(ctx, postID)
	if err != nil {
		return nil, apperr.Internal("list comments failed", err)
	}

	// 昵称批量查一次，避免逐条回表
	emails := make([]string, 0, len(comments))
	seen := make(map[string]struct{}, len(comments))
	for _, c := range comments {
		if _, ok := seen[c.AuthorEmail]; ok {
			continue
		}
		seen[c.AuthorEmail] = struct{}{}
		emails = append(emails, c.AuthorEmail)
	}
	users, err := s.users.FindByEmails(ctx, emails)
	if err != nil {
		return nil, apperr.Internal("find authors failed", err)
	}
	nickByEmail := make(map[string]string, len(users))
	for _, u := range users {
		nickByEmail[u.Email] = u.Nickname
	}

	out := make([]CommentResponse, 0, len(comments))
	for i := range comments {
		c := &comments[i]
		out = append(out, CommentResponse{
			ID:             c.ID,
			Content:        c.Content,
			AuthorEmail:    c.AuthorEmail,
			AuthorNickname: nickByEmail[c.AuthorEmail],
			PostID:         c.PostID,
			ParentID:       c.ParentID,
			CreatedAt:      c.CreatedAt,
			UpdatedAt:      c.UpdatedAt,
		})
	}
	return out, nil
}

func (s *CommentService) GetByID(ctx context.Context, id int64) (*CommentResponse, error) {
	c, err := s.comments.FindByID(ctx, id)
	if err != nil {
		return nil, apperr.Internal("find comment failed", err)
	}
	if c == nil {
		return nil, apperr.NotFound("comment not found")
	}
	return s.toResponse(ctx, c)
}

func (s *CommentService) Update(ctx context.Context, id int64, principal session.Principal, req CommentUpdateRequest) (*CommentResponse, error) {
	c, err := s.comments.FindByID(ctx, id)
	if err != nil {
		return nil, apperr.Internal("find comment failed", err)
	}
	if c == nil {
		return nil, apperr.NotFound("comment not found")
	}
	if !CanMutate(principal, c.AuthorEmail) {
		return nil, apperr.Unauthorized("not allowed to modify this comment")
	}
	c.Content = req.Content
	if err := s.comments.Save(ctx, c); err != nil {
		return nil, apperr.Internal("update comment failed", err)
	}
	return s.toResponse(ctx, c)
}

func (s *CommentService) Delete(ctx context.Context, id int64, principal session.Principal) error {
	c, err := s.comments.FindByID(ctx, id)
	if err != nil {
		return apperr.Internal("find comment failed", err)
	}
	if c == nil {
		return apperr.NotFound("comment not found")
	}
	if !CanMutate(principal, c.AuthorEmail) {
		return apperr.Unauthorized("not allowed to delete this comment")
	}
	rows, err := s.comments.Delete(ctx, id)
	if err != nil {
		return apperr.Internal("delete comment failed", err)
	}
	if rows == 0 {
		return apperr.NotFound("comment not found")
	}
	return nil
}

func (s *CommentService) toResponse(ctx context.Context, c *domain.Comment) (*CommentResponse, error) {
	var nickname string
	if c.AuthorEmail != "" {
		u, err := s.users.FindByEmail(ctx, c.AuthorEmail)
		if err != nil {
			return nil, apperr.Internal("find author failed", err)
		}
		if u != nil {
			nickname = u.Nickname
		}
	}
	return &CommentResponse{
		ID:             c.ID,
		Content:        c.Content,
		AuthorEmail:    c.AuthorEmail,
		AuthorNickname: nickname,
		PostID:         c.PostID,
		ParentID:       c.ParentID,
		CreatedAt:      c.CreatedAt,
		UpdatedAt:      c.UpdatedAt,
	}, nil
}
