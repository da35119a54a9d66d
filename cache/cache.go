package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/poiesic/mergen/core"
	"github.com/poiesic/mergen/location"
	"github.com/poiesic/mergen/observability"
)

// DefaultTTL is how long a cached plan stays valid.
const DefaultTTL = 15 * time.Minute

const keyPrefix = "mergen:plan:"

// ErrClientRequired is returned when a Redis cache is built without a client.
var ErrClientRequired = errors.New("redis client is required")

// PlanCache stores plans by key. A miss is reported as (nil, false, nil).
type PlanCache interface {
	Get(ctx context.Context, key string) (*core.Plan, bool, error)
	Set(ctx context.Context, key string, plan *core.Plan) error
}

// Key returns the cache key for a query and result count. Queries that
// differ only in case, Turkish letters or spacing share a key.
func Key(query string, topK int) string {
	id := core.IDFromContent(location.Normalize(query))
	return fmt.Sprintf("%s%d:%016x", keyPrefix, topK, uint64(id))
}

// Noop never stores anything.
type Noop struct{}

func (Noop) Get(context.Context, string) (*core.Plan, bool, error) { return nil, false, nil }
func (Noop) Set(context.Context, string, *core.Plan) error         { return nil }

// Option configures a Redis cache.
type Option func(*Redis) error

// WithTTL sets the expiry applied to stored plans.
func WithTTL(ttl time.Duration) Option {
	return func(r *Redis) error {
		if ttl <= 0 {
			return errors.New("ttl must be positive")
		}
		r.ttl = ttl
		return nil
	}
}

// WithLogger sets a custom logger for the cache.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Redis) error {
		if logger != nil {
			r.logger = logger
		}
		return nil
	}
}

// Redis is a PlanCache backed by a Redis server. Plans are stored as JSON.
type Redis struct {
	c      *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

// NewRedis wraps an existing client.
func NewRedis(client *redis.Client, opts ...Option) (*Redis, error) {
	if client == nil {
		return nil, ErrClientRequired
	}
	r := &Redis{c: client, ttl: DefaultTTL, logger: slog.Default()}
	for _, opt := range opts {
		if err := opt(r); err != nil {
			return nil, err
		}
	}
	r.logger = r.logger.With("component", "plan-cache")
	return r, nil
}

// Dial connects to the Redis server at addr and verifies it answers.
func Dial(ctx context.Context, addr, password string, db int, opts ...Option) (*Redis, error) {
	client := redis.NewClient(&redis.Options{Addr: addr, Password: password, DB: db})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis ping %s: %w", addr, err)
	}
	return NewRedis(client, opts...)
}

func (r *Redis) Get(ctx context.Context, key string) (*core.Plan, bool, error) {
	v, err := r.c.Get(ctx, key).Bytes()
	if err == redis.Nil {
		observability.ObserveCache("redis", "miss")
		return nil, false, nil
	}
	if err != nil {
		observability.ObserveCache("redis", "error")
		return nil, false, err
	}
	var plan core.Plan
	if err := json.Unmarshal(v, &plan); err != nil {
		// A corrupt entry is treated as a miss and overwritten on the next Set.
		r.logger.Warn("discarding unreadable cached plan", "key", key, "err", err)
		observability.ObserveCache("redis", "miss")
		return nil, false, nil
	}
	observability.ObserveCache("redis", "hit")
	return &plan, true, nil
}

func (r *Redis) Set(ctx context.Context, key string, plan *core.Plan) error {
	b, err := json.Marshal(plan)
	if err != nil {
		return err
	}
	observability.ObserveCache("redis", "set")
	return r.c.Set(ctx, key, b, r.ttl).Err()
}

// Close closes the underlying client.
func (r *Redis) Close() error {
	return r.c.Close()
}
