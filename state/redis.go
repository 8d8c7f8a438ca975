package state

import (
	"context"
	"fmt"
	"strconv"
	"time"

	goredis "github.com/go-redis/redis/v8"

	"github.com/rustyeddy/vapstudy/vap"
)

// RedisConfig configures the Redis store.
type RedisConfig struct {
	Addr     string // e.g. "localhost:6379"
	Password string
	DB       int
	Prefix   string // key prefix, default "vap:viewport:"
	TTL      time.Duration
}

// RedisStore keeps each viewport in a hash with fields "first" and "last",
// so several chart hosts can share one state server.
type RedisStore struct {
	client *goredis.Client
	prefix string
	ttl    time.Duration
}

// NewRedisStore connects and pings the server.
func NewRedisStore(cfg RedisConfig) (*RedisStore, error) {
	client := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	prefix := cfg.Prefix
	if prefix == "" {
		prefix = "vap:viewport:"
	}
	return &RedisStore{client: client, prefix: prefix, ttl: cfg.TTL}, nil
}

func (s *RedisStore) key(k string) string {
	return s.prefix + k
}

func (s *RedisStore) Load(ctx context.Context, key string) (vap.Viewport, error) {
	m, err := s.client.HGetAll(ctx, s.key(key)).Result()
	if err != nil {
		return vap.Viewport{}, err
	}
	if len(m) == 0 {
		return vap.Viewport{}, ErrNotFound
	}

	var vp vap.Viewport
	if vp.First, err = strconv.Atoi(m["first"]); err != nil {
		return vap.Viewport{}, fmt.Errorf("corrupt viewport %s: %w", key, err)
	}
	if vp.Last, err = strconv.Atoi(m["last"]); err != nil {
		return vap.Viewport{}, fmt.Errorf("corrupt viewport %s: %w", key, err)
	}
	return vp, nil
}

func (s *RedisStore) Save(ctx context.Context, key string, vp vap.Viewport) error {
	k := s.key(key)
	pipe := s.client.TxPipeline()
	pipe.HSet(ctx, k, "first", vp.First, "last", vp.Last)
	if s.ttl > 0 {
		pipe.Expire(ctx, k, s.ttl)
	}
	_, err := pipe.Exec(ctx)
	return err
}

func (s *RedisStore) Reset(ctx context.Context, key string) error {
	return s.client.Del(ctx, s.key(key)).Err()
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}
