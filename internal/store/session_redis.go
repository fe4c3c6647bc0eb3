package store

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"livelong/internal/util"
)

const sessionKeyPrefix = "livelong:session:"

// RedisSessionStore keeps admin sessions in Redis with TTL, so sessions
// survive server restarts and expire naturally.
type RedisSessionStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisSessionStore builds a Redis-backed session store.
func NewRedisSessionStore(addr, password string, ttl time.Duration) *RedisSessionStore {
	return &RedisSessionStore{
		client: redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: password,
		}),
		ttl: ttl,
	}
}

// NewSession writes a token -> admin ID mapping with TTL.
func (s *RedisSessionStore) NewSession(adminID string) (string, error) {
	token := util.NewID()
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := s.client.Set(ctx, sessionKeyPrefix+token, adminID, s.ttl).Err(); err != nil {
		return "", err
	}
	return token, nil
}

// GetAdminIDByToken resolves a token to the admin ID it was issued for.
func (s *RedisSessionStore) GetAdminIDByToken(token string) (string, bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	val, err := s.client.Get(ctx, sessionKeyPrefix+token).Result()
	if err == redis.Nil {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return val, true, nil
}

// DeleteSession revokes a token.
func (s *RedisSessionStore) DeleteSession(token string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := s.client.Del(ctx, sessionKeyPrefix+token).Err(); err != nil && err != redis.Nil {
		return err
	}
	return nil
}
