package seed

import (
	"context"

	"go.uber.org/zap"

	"go-blog-backend/internal/core/config"
	"go-blog-backend/internal/domain"
	"go-blog-backend/internal/repo"
	"go-blog-backend/pkg/utils"
)

// EnsureAdmin 启动时保证存在一个 ADMIN 账号（幂等）
func EnsureAdmin(ctx context.Context, users *repo.UserRepo, cfg config.Seed, l *zap.Logger) error {
	if !cfg.AdminEnable {
		return nil
	}
	existing, err := users.FindByEmail(ctx, cfg.AdminEmail)
	if err != nil {
		return err
	}
	if existing != nil {
		l.Debug("admin account already present", zap.String("email", cfg.AdminEmail))
		return nil
	}
	u := &domain.User{
		Email:        cfg.AdminEmail,
		PasswordHash: utils.HashPassword(cfg.AdminPassword),
		Nickname:     cfg.AdminNickname,
		Role:         domain.RoleAdmin,
	}
	if err := users.Create(ctx, u); err != nil {
		return err
	}
	l.Info("seeded admin account", zap.String("email", cfg.AdminEmail))
	return nil
}
