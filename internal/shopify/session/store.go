// Package session stores the offline Admin API sessions this app holds per
// store. Keys follow Shopify's "offline_{shop}" convention.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"github.com/redis/go-redis/v9"

	"github.com/aubri61/inventoria-ai/internal/core/errx"
)

// Session is one store's long-lived offline credential.
type Session struct {
	Shop        string `json:"shop"`
	AccessToken string `json:"access_token"`
	Scope       string `json:"scope,omitempty"`
}

// Store loads and saves offline sessions. Load returns (nil, nil) when no
// session exists for the shop, that is an expected outcome, not an error.
type Store interface {
	Load(ctx context.Context, shop string) (*Session, error)
	Save(ctx context.Context, s *Session) error
	Delete(ctx context.Context, shop string) error
}

// Key returns the storage key for a shop's offline session.
func Key(shop string) string {
	return "offline_" + shop
}

// SanitizeShop normalizes a caller-supplied shop domain: scheme stripped,
// lowercased, no trailing slash.
func SanitizeShop(raw string) string {
	s := strings.TrimSpace(raw)
	s = strings.TrimPrefix(s, "https://")
	s = strings.TrimPrefix(s, "http://")
	s = strings.TrimSuffix(s, "/")
	return strings.ToLower(s)
}

// RedisStore persists sessions in Redis.
type RedisStore struct {
	rdb *redis.Client
}

// NewRedisStore wraps a Redis client as a session store.
func NewRedisStore(rdb *redis.Client) *RedisStore {
	return &RedisStore{rdb: rdb}
}

// Load reads the offline session for a shop.
func (s *RedisStore) Load(ctx context.Context, shop string) (*Session, error) {
	raw, err := s.rdb.Get(ctx, Key(shop)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, errx.WrapRedis(err)
	}
	var sess Session
	if err := json.Unmarshal([]byte(raw), &sess); err != nil {
		return nil, errx.WrapRedis(err)
	}
	return &sess, nil
}

// Save writes the offline session. Offline tokens do not expire, so no TTL.
func (s *RedisStore) Save(ctx context.Context, sess *Session) error {
	raw, err := json.Marshal(sess)
	if err != nil {
		return errx.WrapRedis(err)
	}
	if err := s.rdb.Set(ctx, Key(sess.Shop), raw, 0).Err(); err != nil {
		return errx.WrapRedis(err)
	}
	return nil
}

// Delete removes a shop's offline session.
func (s *RedisStore) Delete(ctx context.Context, shop string) error {
	if err := s.rdb.Del(ctx, Key(shop)).Err(); err != nil {
		return errx.WrapRedis(err)
	}
	return nil
}
