package session

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "session:"

type RedisStore struct {
	RDB *redis.Client
	TTL time.Duration
}

func NewRedis(addr, pass string, db int, ttl time.Duration) *RedisStore {
	return &RedisStore{
		RDB: redis.NewClient(&redis.Options{Addr: addr, Password: pass, DB: db}),
		TTL: ttlOrDefault(ttl),
	}
}

func (s *RedisStore) Create(ctx context.Context, p Principal) (string, error) {
	b, err := json.Marshal(p)
	if err != nil {
		return "", err
	}
	id := newID()
	if err := s.RDB.Set(ctx, keyPrefix+id, b, s.TTL).Err(); err != nil {
		return "", err
	}
	return id, nil
}

func (s *RedisStore) Get(ctx context.Context, id string) (*Principal, error) {
	b, err := s.RDB.Get(ctx, keyPrefix+id).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	var p Principal
	if err := json.Unmarshal(b, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *RedisStore) Delete(ctx context.Context, id string) error {
	return s.RDB.Del(ctx, keyPrefix+id).Err()
}
