package cache

import (
	"context"
	"log/slog"

	"golang.org/x/sync/singleflight"

	"github.com/poiesic/mergen/core"
)

// LoadFunc produces a plan on a cache miss.
type LoadFunc func(ctx context.Context) (*core.Plan, error)

// Loader reads through a PlanCache. Concurrent misses on the same key
// share one call to the LoadFunc.
type Loader struct {
	cache  PlanCache
	group  singleflight.Group
	logger *slog.Logger
}

// NewLoader returns a Loader over c. A nil cache behaves like Noop.
func NewLoader(c PlanCache, logger *slog.Logger) *Loader {
	if c == nil {
		c = Noop{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{cache: c, logger: logger.With("component", "plan-loader")}
}

// GetOrLoad returns the cached plan for key, or runs load and stores its
// result. Cache errors are logged and never fail the request. Plans without
// packages are not stored. The second return value reports a cache hit.
func (l *Loader) GetOrLoad(ctx context.Context, key string, load LoadFunc) (*core.Plan, bool, error) {
	plan, ok, err := l.cache.Get(ctx, key)
	if err != nil {
		l.logger.Warn("plan cache read failed", "key", key, "err", err)
	}
	if ok {
		return plan, true, nil
	}

	v, err, _ := l.group.Do(key, func() (any, error) {
		plan, err := load(ctx)
		if err != nil {
			return nil, err
		}
		if len(plan.Packages) > 0 {
			if err := l.cache.Set(ctx, key, plan); err != nil {
				l.logger.Warn("plan cache write failed", "key", key, "err", err)
			}
		}
		return plan, nil
	})
	if err != nil {
		return nil, false, err
	}
	return v.(*core.Plan), false, nil
}
