package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestMemoryStoreLifecycle(t *testing.T) {
	s := NewMemory(time.Hour)
	ctx := context.Background()

	id, err := s.Create(ctx, Principal{Email: "a@x.com", Nickname: "alice", Role: "USER"})
	require.NoError(t, err)
	require.NotEmpty(t, id)

	p, err := s.Get(ctx, id)
	require.NoError(t, err)
	require.Equal(t, "a@x.com", p.Email)
	require.False(t, p.IsAdmin())

	require.NoError(t, s.Delete(ctx, id))
	_, err = s.Get(ctx, id)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStoreExpiry(t *testing.T) {
	s := NewMemory(time.Nanosecond)
	ctx := context.Background()

	id, err := s.Create(ctx, Principal{Email: "a@x.com"})
	require.NoError(t, err)

	time.Sleep(5 * time.Millisecond)
	_, err = s.Get(ctx, id)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStoreIDsAreUnique(t *testing.T) {
	s := NewMemory(time.Hour)
	ctx := context.Background()

	seen := make(map[string]struct{})
	for i := 0; i < 100; i++ {
		id, err := s.Create(ctx, Principal{Email: "a@x.com"})
		require.NoError(t, err)
		_, dup := seen[id]
		require.False(t, dup)
		seen[id] = struct{}{}
	}
}
