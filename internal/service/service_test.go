package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	glogger "gorm.io/gorm/logger"

	"go-blog-backend/internal/core/session"
	"go-blog-backend/internal/domain"
	"go-blog-backend/internal/repo"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: glogger.Default.LogMode(glogger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(
		&domain.User{},
		&domain.Post{},
		&domain.Category{},
		&domain.PostCategory{},
		&domain.Comment{},
		&domain.Bookmark{},
	))
	return db
}

type testEnv struct {
	db        *gorm.DB
	users     *repo.UserRepo
	sessions  session.Store
	auth      *AuthService
	posts     *PostService
	cats      *CategoryService
	comments  *CommentService
	bookmarks *BookmarkService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db := newTestDB(t)
	users := repo.NewUserRepo(db)
	postRepo := repo.NewPostRepo(db)
	catRepo := repo.NewCategoryRepo(db)
	pcRepo := repo.NewPostCategoryRepo(db)
	commentRepo := repo.NewCommentRepo(db)
	bookmarkRepo := repo.NewBookmarkRepo(db)
	sessions := session.NewMemory(time.Hour)
	return &testEnv{
		db:        db,
		users:     users,
		sessions:  sessions,
		auth:      NewAuthService(users, sessions),
		posts:     NewPostService(db, postRepo, catRepo, pcRepo, users),
		cats:      NewCategoryService(catRepo),
		comments:  NewCommentService(commentRepo, users),
		bookmarks: NewBookmarkService(bookmarkRepo, postRepo, pcRepo, catRepo),
	}
}

func (e *testEnv) mustSignUp(t *testing.T, email, password, nickname string) {
	t.Helper()
	_, err := e.auth.SignUp(context.Background(), SignUpRequest{
		Email: email, Password: password, Nickname: nickname,
	})
	require.NoError(t, err)
}

func (e *testEnv) mustCategory(t *testing.T, name string) int64 {
	t.Helper()
	c, err := e.cats.Create(context.Background(), CategoryCreateRequest{Name: name})
	require.NoError(t, err)
	return c.ID
}

func (e *testEnv) mustPost(t *testing.T, author, title string, catIDs ...int64) *PostResponse {
	t.Helper()
	p, err := e.posts.Create(context.Background(), PostCreateRequest{
		Title: title, Content: title + " body", AuthorEmail: author, CategoryIDs: catIDs,
	})
	require.NoError(t, err)
	return p
}

func asPrincipal(email, role string) session.Principal {
	return session.Principal{Email: email, Nickname: email, Role: role}
}

// trackQueries 在 gorm 查询回调上挂计数器，统计 SELECT 往返数
func trackQueries(t *testing.T, db *gorm.DB) *int {
	t.Helper()
	n := new(int)
	err := db.Callback().Query().After("gorm:query").
		Register("test_query_counter", func(*gorm.DB) { *n++ })
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Callback().Query().Remove("test_query_counter") })
	return n
}

func categoryNames(infos []CategoryInfo) []string {
	out := make([]string, 0, len(infos))
	for _, ci := range infos {
		out = append(out, ci.Name)
	}
	return out
}
