package tokenstore

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRedisStore(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return NewRedisStore(rdb, "aurum"), mr
}

func TestRedisStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	store, mr := newRedisStore(t)

	sess, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Nil(t, sess)

	in := &Session{
		AccessToken:  "tok",
		RefreshToken: "ref",
		Role:         "SELLER",
		Email:        "a@b.com",
		Username:     "a",
		CreatedAt:    "2024-01-01",
	}
	require.NoError(t, store.Save(ctx, in))

	out, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, in, out)

	require.True(t, mr.Exists("aurum:session"))
	assert.Equal(t, "tok", mr.HGet("aurum:session", "token"))
	assert.Equal(t, "ref", mr.HGet("aurum:session", "refresh"))
	assert.Equal(t, "2024-01-01", mr.HGet("aurum:session", "createdAt"))
}

func TestRedisStoreSurvivesNewInstance(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)

	first := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	require.NoError(t, NewRedisStore(first, "aurum").Save(ctx, &Session{AccessToken: "tok", RefreshToken: "ref"}))
	require.NoError(t, first.Close())

	// A fresh client over the same backend sees the session, as a restarted
	// process would.
	second := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = second.Close() })

	sess, err := NewRedisStore(second, "aurum").Load(ctx)
	require.NoError(t, err)
	require.NotNil(t, sess)
	assert.Equal(t, "tok", sess.AccessToken)
}

func TestRedisStoreSetAccessToken(t *testing.T) {
	ctx := context.Background()
	store, _ := newRedisStore(t)

	err := store.SetAccessToken(ctx, "tok")
	require.ErrorIs(t, err, ErrNoSession)

	require.NoError(t, store.Save(ctx, &Session{AccessToken: "old", RefreshToken: "ref", Username: "a"}))
	require.NoError(t, store.SetAccessToken(ctx, "new"))

	sess, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "new", sess.AccessToken)
	assert.Equal(t, "ref", sess.RefreshToken)
	assert.Equal(t, "a", sess.Username)
}

func TestRedisStoreClear(t *testing.T) {
	ctx := context.Background()
	store, mr := newRedisStore(t)

	require.NoError(t, store.Clear(ctx), "clearing an empty store is not an error")

	require.NoError(t, store.Save(ctx, &Session{AccessToken: "tok"}))
	require.NoError(t, store.Clear(ctx))
	assert.False(t, mr.Exists("aurum:session"))

	sess, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Nil(t, sess)
}

func TestRedisStoreSaveNilClears(t *testing.T) {
	ctx := context.Background()
	store, mr := newRedisStore(t)

	require.NoError(t, store.Save(ctx, &Session{AccessToken: "tok"}))
	require.NoError(t, store.Save(ctx, nil))
	assert.False(t, mr.Exists("aurum:session"))
}

func TestRedisStorePrefixDefault(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	store := NewRedisStore(rdb, "")
	require.NoError(t, store.Save(context.Background(), &Session{AccessToken: "tok"}))
	assert.True(t, mr.Exists("aurum:session"))
}

func TestRedisStoreUnavailable(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	store := NewRedisStore(rdb, "aurum")

	mr.Close()

	ctx := context.Background()
	_, err := store.Load(ctx)
	require.ErrorIs(t, err, ErrUnavailable)
	require.ErrorIs(t, store.Save(ctx, &Session{AccessToken: "tok"}), ErrUnavailable)
	require.ErrorIs(t, store.SetAccessToken(ctx, "tok"), ErrUnavailable)
	require.ErrorIs(t, store.Clear(ctx), ErrUnavailable)
}
