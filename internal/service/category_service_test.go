package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"go-blog-backend/internal/apperr"
)

func TestCategoryCRUD(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()

	created, err := e.cats.Create(ctx, CategoryCreateRequest{Name: "golang"})
	require.NoError(t, err)
	require.NotZero(t, created.ID)

	got, err := e.cats.GetByID(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, "golang", got.Name)

	updated, err := e.cats.Update(ctx, created.ID, CategoryUpdateRequest{Name: "go"})
	require.NoError(t, err)
	require.Equal(t, "go", updated.Name)

	all, err := e.cats.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)

	require.NoError(t, e.cats.Delete(ctx, created.ID))
	_, err = e.cats.GetByID(ctx, created.ID)
	require.True(t, apperr.IsNotFound(err))
	err = e.cats.Delete(ctx, created.ID)
	require.True(t, apperr.IsNotFound(err))
}

func TestCategoryUpdateMissing(t *testing.T) {
	e := newTestEnv(t)
	_, err := e.cats.Update(context.Background(), 404, CategoryUpdateRequest{Name: "x"})
	require.True(t, apperr.IsNotFound(err))
}
