package session

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"go-blog-backend/internal/domain"
)

// Principal 登录时落入会话的用户快照。
// 会话存续期内不随用户表变更而刷新（按能力凭证语义处理）。
type Principal struct {
	Email    string `json:"email"`
	Nickname string `json:"nickname"`
	Role     string `json:"role"`
}

func (p Principal) IsAdmin() bool { return p.Role == domain.RoleAdmin }

var ErrNotFound = errors.New("session not found")

// Store 服务端会话存储；cookie 只携带 id
type Store interface {
	Create(ctx context.Context, p Principal) (string, error)
	Get(ctx context.Context, id string) (*Principal, error)
	Delete(ctx context.Context, id string) error
}

func newID() string { return uuid.NewString() }

// ttlOrDefault 防止 0 TTL 落成永不过期
func ttlOrDefault(ttl time.Duration) time.Duration {
	if ttl <= 0 {
		return 24 * time.Hour
	}
	return ttl
}
