package router

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	glogger "gorm.io/gorm/logger"

	"go-blog-backend/internal/core/session"
	"go-blog-backend/internal/domain"
	"go-blog-backend/internal/repo"
	"go-blog-backend/internal/service"
	"go-blog-backend/internal/transport/http/handler"
)

func init() { gin.SetMode(gin.TestMode) }

const testCookie = "session_id"

func newTestEngine(t *testing.T) *gin.Engine {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: glogger.Default.LogMode(glogger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(
		&domain.User{}, &domain.Post{}, &domain.Category{},
		&domain.PostCategory{}, &domain.Comment{}, &domain.Bookmark{},
	))

	users := repo.NewUserRepo(db)
	posts := repo.NewPostRepo(db)
	cats := repo.NewCategoryRepo(db)
	pcs := repo.NewPostCategoryRepo(db)
	comments := repo.NewCommentRepo(db)
	bookmarks := repo.NewBookmarkRepo(db)
	sessions := session.NewMemory(time.Hour)

	authSvc := service.NewAuthService(users, sessions)
	postSvc := service.NewPostService(db, posts, cats, pcs, users)
	commentSvc := service.NewCommentService(comments, users)
	bookmarkSvc := service.NewBookmarkService(bookmarks, posts, pcs, cats)

	return NewAPIEngine(APIDeps{
		Log:        zap.NewNop(),
		Sessions:   sessions,
		CookieName: testCookie,

		Auth:      handler.NewAuthHandler(authSvc, testCookie, 3600, false),
		Posts:     handler.NewPostHandler(postSvc),
		Comments:  handler.NewCommentHandler(commentSvc),
		Bookmarks: handler.NewBookmarkHandler(bookmarkSvc),
	})
}

func doJSON(r *gin.Engine, method, path, body, sid string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if sid != "" {
		req.AddCookie(&http.Cookie{Name: testCookie, Value: sid})
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func sessionFrom(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	for _, c := range w.Result().Cookies() {
		if c.Name == testCookie {
			return c.Value
		}
	}
	t.Fatalf("no %s cookie in response", testCookie)
	return ""
}

func TestAuthFlow(t *testing.T) {
	r := newTestEngine(t)

	w := doJSON(r, http.MethodPost, "/api/auth/signup",
		`{"email":"a@x.com","password":"pw1234","nickname":"alice"}`, "")
	require.Equal(t, http.StatusCreated, w.Code)

	// 未登录时 status 返回裸 false
	w = doJSON(r, http.MethodGet, "/api/auth/status", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "false", strings.TrimSpace(w.Body.String()))

	w = doJSON(r, http.MethodPost, "/api/auth/login",
		`{"email":"a@x.com","password":"wrong"}`, "")
	require.Equal(t, http.StatusUnauthorized, w.Code)
	var errBody struct {
		Message string `json:"message"`
		Status  int    `json:"status"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &errBody))
	require.Equal(t, "invalid email or password", errBody.Message)
	require.Equal(t, http.StatusUnauthorized, errBody.Status)

	w = doJSON(r, http.MethodPost, "/api/auth/login",
		`{"email":"a@x.com","password":"pw1234"}`, "")
	require.Equal(t, http.StatusOK, w.Code)
	sid := sessionFrom(t, w)

	w = doJSON(r, http.MethodGet, "/api/auth/me", "", sid)
	require.Equal(t, http.StatusOK, w.Code)
	var me struct {
		Email string `json:"email"`
		Role  string `json:"role"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &me))
	require.Equal(t, "a@x.com", me.Email)
	require.Equal(t, domain.RoleUser, me.Role)

	w = doJSON(r, http.MethodGet, "/api/auth/status", "", sid)
	require.Equal(t, "true", strings.TrimSpace(w.Body.String()))

	w = doJSON(r, http.MethodPost, "/api/auth/logout", "", sid)
	require.Equal(t, http.StatusOK, w.Code)
	w = doJSON(r, http.MethodGet, "/api/auth/me", "", sid)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestSignupValidationEnvelope(t *testing.T) {
	r := newTestEngine(t)

	w := doJSON(r, http.MethodPost, "/api/auth/signup",
		`{"email":"not-an-email","password":"x","nickname":""}`, "")
	require.Equal(t, http.StatusBadRequest, w.Code)

	var body struct {
		Message string            `json:"message"`
		Errors  map[string]string `json:"errors"`
		Status  int               `json:"status"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Equal(t, "validation failed", body.Message)
	require.Equal(t, http.StatusBadRequest, body.Status)
	require.Contains(t, body.Errors, "email")
	require.Contains(t, body.Errors, "password")
	require.Contains(t, body.Errors, "nickname")
}

func TestPostEndpoints(t *testing.T) {
	r := newTestEngine(t)

	doJSON(r, http.MethodPost, "/api/auth/signup",
		`{"email":"a@x.com","password":"pw1234","nickname":"alice"}`, "")
	w := doJSON(r, http.MethodPost, "/api/auth/login",
		`{"email":"a@x.com","password":"pw1234"}`, "")
	sid := sessionFrom(t, w)

	// 未登录的变更请求直接 401
	w = doJSON(r, http.MethodPost, "/api/posts/create",
		`{"title":"T","content":"C","authorEmail":"a@x.com"}`, "")
	require.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(r, http.MethodPost, "/api/posts/create",
		`{"title":"T","content":"C","authorEmail":"a@x.com"}`, sid)
	require.Equal(t, http.StatusCreated, w.Code)
	var created struct {
		ID int64 `json:"id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	require.NotZero(t, created.ID)

	w = doJSON(r, http.MethodGet, "/api/posts", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	w = doJSON(r, http.MethodGet, "/api/posts/author/a@x.com", "", "")
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(r, http.MethodGet, "/api/posts/99999", "", "")
	require.Equal(t, http.StatusNotFound, w.Code)
	w = doJSON(r, http.MethodGet, "/api/posts/not-a-number", "", "")
	require.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(r, http.MethodDelete, "/api/posts/"+itoa(created.ID), "", sid)
	require.Equal(t, http.StatusNoContent, w.Code)
	w = doJSON(r, http.MethodGet, "/api/posts/"+itoa(created.ID), "", "")
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestBookmarkEndpoints(t *testing.T) {
	r := newTestEngine(t)

	doJSON(r, http.MethodPost, "/api/auth/signup",
		`{"email":"a@x.com","password":"pw1234","nickname":"alice"}`, "")
	w := doJSON(r, http.MethodPost, "/api/auth/login",
		`{"email":"a@x.com","password":"pw1234"}`, "")
	sid := sessionFrom(t, w)

	w = doJSON(r, http.MethodPost, "/api/posts/create",
		`{"title":"T","content":"C","authorEmail":"a@x.com"}`, sid)
	require.Equal(t, http.StatusCreated, w.Code)
	var post struct {
		ID int64 `json:"id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &post))

	w = doJSON(r, http.MethodPost, "/api/bookmarks/create",
		`{"userEmail":"a@x.com","postId":`+itoa(post.ID)+`}`, sid)
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(r, http.MethodPost, "/api/bookmarks/create",
		`{"userEmail":"a@x.com","postId":`+itoa(post.ID)+`}`, sid)
	require.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(r, http.MethodGet, "/api/bookmarks/user/a@x.com", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	var list []struct {
		PostID int64            `json:"postId"`
		Post   *json.RawMessage `json:"post"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Len(t, list, 1)
	require.NotNil(t, list[0].Post)

	w = doJSON(r, http.MethodDelete, "/api/bookmarks/user/a@x.com/post/"+itoa(post.ID), "", sid)
	require.Equal(t, http.StatusNoContent, w.Code)
	w = doJSON(r, http.MethodDelete, "/api/bookmarks/user/a@x.com/post/"+itoa(post.ID), "", sid)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestHealthEndpoint(t *testing.T) {
	r := newTestEngine(t)
	w := doJSON(r, http.MethodGet, "/health", "", "")
	require.Equal(t, http.StatusOK, w.Code)
}

func itoa(n int64) string { return strconv.FormatInt(n, 10) }
