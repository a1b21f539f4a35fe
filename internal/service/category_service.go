package service

import (
	"context"

	"go-blog-backend/internal/apperr"
	"go-blog-backend/internal/domain"
	"go-blog-backend/internal/repo"
)

type CategoryService struct {
	cats *repo.CategoryRepo
}

func NewCategoryService(cats *repo.CategoryRepo) *CategoryService {
	return &CategoryService{cats: cats}
}

func (s *CategoryService) Create(ctx context.Context, req CategoryCreateRequest) (*CategoryResponse, error) {
	c := &domain.Category{Name: req.Name}
	if err := s.cats.Create(ctx, c); err != nil {
		return nil, apperr.Internal("create category failed", err)
	}
	return toCategoryResponse(c), nil
}

func (s *CategoryService) GetAll(ctx context.Context) ([]CategoryResponse, error) {
	cats, err := s.cats.FindAll(ctx)
	if err != nil {
		return nil, apperr.Internal("list categories failed", err)
	}
	out := make([]CategoryResponse, 0, len(cats))
	for i := range cats {
		out = append(out, *toCategoryResponse(&cats[i]))
	}
	return out, nil
}

func (s *CategoryService) GetByID(ctx context.Context, id int64) (*CategoryResponse, error) {
	c, err := s.cats.FindByID(ctx, id)
	if err != nil {
		return nil, apperr.Internal("find category failed", err)
	}
	if c == nil {
		return nil, apperr.NotFound("category not found")
	}
	return toCategoryResponse(c), nil
}

func (s *CategoryService) Update(ctx context.Context, id int64, req CategoryUpdateRequest) (*CategoryResponse, error) {
	c, err := s.cats.FindByID(ctx, id)
	if err != nil {
		return nil, apperr.Internal("find category failed", err)
	}
	if c == nil {
		return nil, apperr.NotFound("category not found")
	}
	c.Name = req.Name
	if err := s.cats.Save(ctx, c); err != nil {
		return nil, apperr.Internal("update category failed", err)
	}
	return toCategoryResponse(c), nil
}

func (s *CategoryService) Delete(ctx context.Context, id int64) error {
	rows, err := s.cats.Delete(ctx, id)
	if err != nil {
		return apperr.Internal("delete category failed", err)
	}
	if rows == 0 {
		return apperr.NotFound("category not found")
	}
	return nil
}

func toCategoryResponse(c *domain.Category) *CategoryResponse {
	return &CategoryResponse{ID: c.ID, Name: c.Name, CreatedAt: c.CreatedAt, UpdatedAt: c.UpdatedAt}
}
