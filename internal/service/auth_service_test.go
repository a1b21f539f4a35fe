package service

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"go-blog-backend/internal/apperr"
	"go-blog-backend/internal/domain"
)

func TestSignUpDuplicateEmail(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()

	resp, err := e.auth.SignUp(ctx, SignUpRequest{Email: "a@x.com", Password: "pw1234", Nickname: "alice"})
	require.NoError(t, err)
	require.Equal(t, "a@x.com", resp.Email)

	_, err = e.auth.SignUp(ctx, SignUpRequest{Email: "a@x.com", Password: "other1", Nickname: "mallory"})
	require.Error(t, err)
	ae := apperr.As(err)
	require.Equal(t, http.StatusBadRequest, ae.Status)
	require.Equal(t, "email already in use", ae.Message)

	// 二次注册不得留下任何写入痕迹
	var n int64
	require.NoError(t, e.db.Model(&domain.User{}).Count(&n).Error)
	require.EqualValues(t, 1, n)
	u, err := e.users.FindByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	require.Equal(t, "alice", u.Nickname)
}

func TestLoginFailuresIndistinguishable(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()
	e.mustSignUp(t, "a@x.com", "pw1234", "alice")

	_, _, errUnknown := e.auth.Login(ctx, LoginRequest{Email: "nobody@x.com", Password: "pw1234"})
	_, _, errWrongPw := e.auth.Login(ctx, LoginRequest{Email: "a@x.com", Password: "wrongpw"})

	for _, err := range []error{errUnknown, errWrongPw} {
		require.Error(t, err)
		ae := apperr.As(err)
		require.Equal(t, http.StatusUnauthorized, ae.Status)
		require.Equal(t, "invalid email or password", ae.Message)
	}
}

func TestSessionLifecycle(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()
	e.mustSignUp(t, "a@x.com", "pw1234", "alice")

	sid, resp, err := e.auth.Login(ctx, LoginRequest{Email: "a@x.com", Password: "pw1234"})
	require.NoError(t, err)
	require.NotEmpty(t, sid)
	require.Equal(t, "alice", resp.Nickname)

	p, err := e.auth.CurrentUser(ctx, sid)
	require.NoError(t, err)
	require.Equal(t, "a@x.com", p.Email)
	require.Equal(t, domain.RoleUser, p.Role)
	require.True(t, e.auth.IsLoggedIn(ctx, sid))

	require.NoError(t, e.auth.Logout(ctx, sid))
	_, err = e.auth.CurrentUser(ctx, sid)
	require.Error(t, err)
	require.True(t, apperr.IsUnauthorized(err))
	require.False(t, e.auth.IsLoggedIn(ctx, sid))
}

func TestCurrentUserWithoutSession(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()

	for _, sid := range []string{"", "no-such-session"} {
		_, err := e.auth.CurrentUser(ctx, sid)
		require.Error(t, err)
		ae := apperr.As(err)
		require.Equal(t, http.StatusUnauthorized, ae.Status)
		require.Equal(t, "login required", ae.Message)
	}
}

// 会话里存的是登录时刻的快照，用户行的后续变动不回灌
func TestPrincipalIsLoginSnapshot(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()
	e.mustSignUp(t, "a@x.com", "pw1234", "alice")

	sid, _, err := e.auth.Login(ctx, LoginRequest{Email: "a@x.com", Password: "pw1234"})
	require.NoError(t, err)

	require.NoError(t, e.db.Model(&domain.User{}).
		Where("email = ?", "a@x.com").Update("nickname", "renamed").Error)

	p, err := e.auth.CurrentUser(ctx, sid)
	require.NoError(t, err)
	require.Equal(t, "alice", p.Nickname)
}
