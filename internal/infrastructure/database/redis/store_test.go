package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/coffee-storefront/internal/infrastructure/storage"
)

func newTestStore(t *testing.T, ttl time.Duration) (*Store, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return NewStore(rdb, ttl), mr
}

func TestStore_GetMissingIsNotFound(t *testing.T) {
	s, _ := newTestStore(t, 0)
	_, err := s.Get(context.Background(), "cart")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestStore_RoundTripWithTTL(t *testing.T) {
	ctx := context.Background()
	s, mr := newTestStore(t, time.Hour)

	require.NoError(t, s.Set(ctx, "storefront:session:1:cart", `[{"id":"p1"}]`))

	v, err := s.Get(ctx, "storefront:session:1:cart")
	require.NoError(t, err)
	assert.Equal(t, `[{"id":"p1"}]`, v)
	assert.Equal(t, time.Hour, mr.TTL("storefront:session:1:cart"))

	mr.FastForward(2 * time.Hour)
	_, err = s.Get(ctx, "storefront:session:1:cart")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestStore_Delete(t *testing.T) {
	ctx := context.Background()
	s, mr := newTestStore(t, 0)

	require.NoError(t, s.Set(ctx, "user", "{}"))
	require.NoError(t, s.Set(ctx, "token", "t"))
	require.NoError(t, s.Delete(ctx, "user", "token"))
	require.NoError(t, s.Delete(ctx))

	assert.False(t, mr.Exists("user"))
	assert.False(t, mr.Exists("token"))
}

func TestStore_WriteFailureIsReported(t *testing.T) {
	s, mr := newTestStore(t, 0)
	mr.Close()

	err := s.Set(context.Background(), "cart", "[]")
	assert.Error(t, err)
}
