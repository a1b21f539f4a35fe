package service

import (
	"context"

	"go-blog-backend/internal/apperr"
	"go-blog-backend/internal/core/session"
	"go-blog-backend/internal/domain"
	"go-blog-backend/internal/repo"
	"go-blog-backend/pkg/utils"
)

type AuthService struct {
	users    *repo.UserRepo
	sessions session.Store
}

func NewAuthService(users *repo.UserRepo, sessions session.Store) *AuthService {
	return &AuthService{users: users, sessions: sessions}
}

func (s *AuthService) SignUp(ctx context.Context, req SignUpRequest) (*SignUpResponse, error) {
	exists, err := s.users.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return nil, apperr.Internal("check email failed", err)
	}
	if exists {
		return nil, apperr.BadRequest("email already in use")
	}

	u := &domain.User{
		Email:        req.Email,
		PasswordHash: utils.HashPassword(req.Password),
		Nickname:     req.Nickname,
		Role:         domain.RoleUser,
	}
	if err := s.users.Create(ctx, u); err != nil {
		return nil, apperr.Internal("create user failed", err)
	}
	return &SignUpResponse{Email: u.Email, Nickname: u.Nickname, Message: "signup completed"}, nil
}

// Login 校验凭证后写入服务端会话，返回会话 id。
// 邮箱不存在与密码不符对调用方不可区分。
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (string, *LoginResponse, error) {
	u, err := s.users.FindByEmail(ctx, req.Email)
	if err != nil {
		return "", nil, apperr.Internal("find user failed", err)
	}
	if u == nil || !utils.CheckPassword(req.Password, u.PasswordHash) {
		return "", nil, apperr.Unauthorized("invalid email or password")
	}

	// 登录时刻的快照，会话期内不再刷新
	sid, err := s.sessions.Create(ctx, session.Principal{
		Email:    u.Email,
		Nickname: u.Nickname,
		Role:     u.Role,
	})
	if err != nil {
		return "", nil, apperr.Internal("create session failed", err)
	}
	return sid, &LoginResponse{Email: u.Email, Nickname: u.Nickname, Message: "login succeeded"}, nil
}

func (s *AuthService) Logout(ctx context.Context, sid string) error {
	if sid == "" {
		return nil
	}
	if err := s.sessions.Delete(ctx, sid); err != nil {
		return apperr.Internal("delete session failed", err)
	}
	return nil
}

func (s *AuthService) CurrentUser(ctx context.Context, sid string) (*session.Principal, error) {
	if sid == "" {
		return nil, apperr.Unauthorized("login required")
	}
	p, err := s.sessions.Get(ctx, sid)
	if err == session.ErrNotFound {
		return nil, apperr.Unauthorized("login required")
	}
	if err != nil {
		return nil, apperr.Internal("load session failed", err)
	}
	return p, nil
}

func (s *AuthService) IsLoggedIn(ctx context.Context, sid string) bool {
	p, err := s.CurrentUser(ctx, sid)
	return err == nil && p != nil
}
