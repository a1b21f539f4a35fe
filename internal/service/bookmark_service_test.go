package service

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"go-blog-backend/internal/apperr"
	"go-blog-backend/internal/domain"
)

func TestBookmarkCreate(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()
	e.mustSignUp(t, "a@x.com", "pw1234", "alice")
	c1 := e.mustCategory(t, "golang")
	p := e.mustPost(t, "a@x.com", "T", c1)

	b, err := e.bookmarks.Create(ctx, BookmarkCreateRequest{UserEmail: "a@x.com", PostID: p.ID})
	require.NoError(t, err)
	require.Equal(t, p.ID, b.PostID)
	require.NotNil(t, b.Post)
	require.ElementsMatch(t, []string{"golang"}, categoryNames(b.Post.Categories))
}

func TestBookmarkCreateUnknownPost(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()
	e.mustSignUp(t, "a@x.com", "pw1234", "alice")

	_, err := e.bookmarks.Create(ctx, BookmarkCreateRequest{UserEmail: "a@x.com", PostID: 12345})
	require.Error(t, err)
	ae := apperr.As(err)
	require.Equal(t, http.StatusNotFound, ae.Status)
	require.Equal(t, "post not found", ae.Message)

	var n int64
	require.NoError(t, e.db.Model(&domain.Bookmark{}).Count(&n).Error)
	require.EqualValues(t, 0, n)
}

func TestBookmarkCreateDuplicate(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()
	e.mustSignUp(t, "a@x.com", "pw1234", "alice")
	p := e.mustPost(t, "a@x.com", "T")

	_, err := e.bookmarks.Create(ctx, BookmarkCreateRequest{UserEmail: "a@x.com", PostID: p.ID})
	require.NoError(t, err)

	// 唯一性由复合主键兜底，冲突翻译成 400
	_, err = e.bookmarks.Create(ctx, BookmarkCreateRequest{UserEmail: "a@x.com", PostID: p.ID})
	require.Error(t, err)
	ae := apperr.As(err)
	require.Equal(t, http.StatusBadRequest, ae.Status)
	require.Equal(t, "post already bookmarked", ae.Message)

	var n int64
	require.NoError(t, e.db.Model(&domain.Bookmark{}).Count(&n).Error)
	require.EqualValues(t, 1, n)
}

// 列表装配的往返数与书签数量无关：一趟 JOIN、一趟关联 IN、一趟分类 IN
func TestBookmarkListQueryCount(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()
	e.mustSignUp(t, "a@x.com", "pw1234", "alice")
	c1 := e.mustCategory(t, "golang")
	c2 := e.mustCategory(t, "database")
	c3 := e.mustCategory(t, "web")

	for i := 0; i < 5; i++ {
		p := e.mustPost(t, "a@x.com", "T", c1, c2, c3)
		_, err := e.bookmarks.Create(ctx, BookmarkCreateRequest{UserEmail: "a@x.com", PostID: p.ID})
		require.NoError(t, err)
	}

	queries := trackQueries(t, e.db)
	list, err := e.bookmarks.GetByUser(ctx, "a@x.com")
	require.NoError(t, err)
	require.Len(t, list, 5)
	require.Equal(t, 3, *queries)

	for _, b := range list {
		require.NotNil(t, b.Post)
		require.ElementsMatch(t, []string{"golang", "database", "web"}, categoryNames(b.Post.Categories))
	}
}

func TestBookmarkListEmptyShortCircuits(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()

	queries := trackQueries(t, e.db)
	list, err := e.bookmarks.GetByUser(ctx, "nobody@x.com")
	require.NoError(t, err)
	require.NotNil(t, list)
	require.Len(t, list, 0)
	require.Equal(t, 1, *queries)
}

// 帖子被删后书签仍在列表里，post 字段为 null
func TestBookmarkListDeletedPost(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()
	e.mustSignUp(t, "a@x.com", "pw1234", "alice")
	kept := e.mustPost(t, "a@x.com", "kept")
	gone := e.mustPost(t, "a@x.com", "gone")

	for _, p := range []*PostResponse{kept, gone} {
		_, err := e.bookmarks.Create(ctx, BookmarkCreateRequest{UserEmail: "a@x.com", PostID: p.ID})
		require.NoError(t, err)
	}
	require.NoError(t, e.posts.Delete(ctx, gone.ID, asPrincipal("a@x.com", domain.RoleUser)))

	list, err := e.bookmarks.GetByUser(ctx, "a@x.com")
	require.NoError(t, err)
	require.Len(t, list, 2)

	byPostID := make(map[int64]BookmarkResponse, len(list))
	for _, b := range list {
		byPostID[b.PostID] = b
	}
	require.NotNil(t, byPostID[kept.ID].Post)
	require.Equal(t, "kept", byPostID[kept.ID].Post.Title)
	require.Nil(t, byPostID[gone.ID].Post)
}

func TestBookmarkDelete(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()
	e.mustSignUp(t, "a@x.com", "pw1234", "alice")
	p := e.mustPost(t, "a@x.com", "T")
	_, err := e.bookmarks.Create(ctx, BookmarkCreateRequest{UserEmail: "a@x.com", PostID: p.ID})
	require.NoError(t, err)

	require.NoError(t, e.bookmarks.Delete(ctx, "a@x.com", p.ID))
	err = e.bookmarks.Delete(ctx, "a@x.com", p.ID)
	require.True(t, apperr.IsNotFound(err))
}
