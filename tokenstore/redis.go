package tokenstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// Persisted hash field names. These are part of the on-disk contract and must
// not change without a migration.
const (
	fieldToken     = "token"
	fieldRefresh   = "refresh"
	fieldRole      = "role"
	fieldEmail     = "email"
	fieldUsername  = "username"
	fieldCreatedAt = "createdAt"
)

const setTokenScript = `
if redis.call("EXISTS", KEYS[1]) == 0 then
  return 0
end
redis.call("HSET", KEYS[1], "token", ARGV[1])
return 1
`

var setTokenLua = redis.NewScript(setTokenScript)

// RedisStore is a Redis-backed [Store]. The whole session lives in a single
// hash key, so replacement and removal are single-command atomic and the
// session survives process restarts until explicitly cleared.
type RedisStore struct {
	redis  redis.UniversalClient
	prefix string
}

// NewRedisStore creates a [RedisStore] backed by the given Redis client.
// prefix sets the key namespace; the default "aurum" is used when empty.
func NewRedisStore(client redis.UniversalClient, prefix string) *RedisStore {
	if prefix == "" {
		prefix = "aurum"
	}
	return &RedisStore{
		redis:  client,
		prefix: prefix,
	}
}

func (s *RedisStore) key() string {
	return s.prefix + ":session"
}

// Load retrieves the stored session. Returns (nil, nil) when no session
// exists.
func (s *RedisStore) Load(ctx context.Context) (*Session, error) {
	fields, err := s.redis.HGetAll(ctx, s.key()).Result()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if len(fields) == 0 {
		return nil, nil
	}

	return &Session{
		AccessToken:  fields[fieldToken],
		RefreshToken: fields[fieldRefresh],
		Role:         fields[fieldRole],
		Email:        fields[fieldEmail],
		Username:     fields[fieldUsername],
		CreatedAt:    fields[fieldCreatedAt],
	}, nil
}

// Save replaces the stored session with sess. The delete and rewrite run in
// one MULTI/EXEC block so readers observe either the old or the new session,
// never a mix.
func (s *RedisStore) Save(ctx context.Context, sess *Session) error {
	if sess == nil {
		return s.Clear(ctx)
	}

	key := s.key()
	_, err := s.redis.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, key)
		pipe.HSet(ctx, key,
			fieldToken, sess.AccessToken,
			fieldRefresh, sess.RefreshToken,
			fieldRole, sess.Role,
			fieldEmail, sess.Email,
			fieldUsername, sess.Username,
			fieldCreatedAt, sess.CreatedAt,
		)
		return nil
	})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	return nil
}

// SetAccessToken replaces the access token of the existing session. The
// existence check and the write run in one Lua script so a concurrent Clear
// cannot leave a lone token behind.
func (s *RedisStore) SetAccessToken(ctx context.Context, token string) error {
	res, err := setTokenLua.Run(ctx, s.redis, []string{s.key()}, token).Int64()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if res == 0 {
		return ErrNoSession
	}
	return nil
}

// Clear removes the session. One DEL on one key, so the removal is
// all-or-nothing. Clearing an absent session is not an error.
func (s *RedisStore) Clear(ctx context.Context) error {
	if err := s.redis.Del(ctx, s.key()).Err(); err != nil && !errors.Is(err, redis.Nil) {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return nil
}
