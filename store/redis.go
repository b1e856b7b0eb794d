// Package store provides production SessionStore backends for the
// negotiate engine: Redis for low-latency shared state and Postgres for
// durable storage. The in-memory store in the root package remains the
// development default.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	negotiate "github.com/sponsorlane/negotiate-sdk-go"
)

// RedisSessionStore keeps sessions as JSON blobs in Redis, keyed
// "{prefix}:session:{id}".
type RedisSessionStore struct {
	client redis.UniversalClient
	prefix string
	ttl    time.Duration
}

// RedisConfig configures the Redis-backed store.
type RedisConfig struct {
	// Prefix namespaces keys; defaults to "negotiate".
	Prefix string
	// TTL expires idle sessions; 0 keeps them forever.
	TTL time.Duration
}

// NewRedisSessionStore wraps an existing go-redis client (Client,
// ClusterClient, and Ring all satisfy UniversalClient).
func NewRedisSessionStore(client redis.UniversalClient, config ...RedisConfig) *RedisSessionStore {
	cfg := RedisConfig{Prefix: "negotiate"}
	if len(config) > 0 {
		cfg = config[0]
		if cfg.Prefix == "" {
			cfg.Prefix = "negotiate"
		}
	}
	return &RedisSessionStore{client: client, prefix: cfg.Prefix, ttl: cfg.TTL}
}

func (s *RedisSessionStore) key(id string) string {
	return fmt.Sprintf("%s:session:%s", s.prefix, id)
}

// Get implements negotiate.SessionStore.
func (s *RedisSessionStore) Get(ctx context.Context, id string) (*negotiate.Session, error) {
	raw, err := s.client.Get(ctx, s.key(id)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, negotiate.ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("redis get session %s: %w", id, err)
	}
	var session negotiate.Session
	if err := json.Unmarshal([]byte(raw), &session); err != nil {
		return nil, fmt.Errorf("decode session %s: %w", id, err)
	}
	return &session, nil
}

// Put implements negotiate.SessionStore.
func (s *RedisSessionStore) Put(ctx context.Context, session *negotiate.Session) error {
	raw, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("encode session %s: %w", session.ID, err)
	}
	if err := s.client.Set(ctx, s.key(session.ID), raw, s.ttl).Err(); err != nil {
		return fmt.Errorf("redis put session %s: %w", session.ID, err)
	}
	return nil
}

// Delete implements negotiate.SessionStore.
func (s *RedisSessionStore) Delete(ctx context.Context, id string) error {
	if err := s.client.Del(ctx, s.key(id)).Err(); err != nil {
		return fmt.Errorf("redis delete session %s: %w", id, err)
	}
	return nil
}
