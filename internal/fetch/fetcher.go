// Package fetch wraps backend calls with a TTL cache, retry with
// exponential backoff and in-flight deduplication. It is the error
// boundary of the data layer: exhausted retries come back as an error
// value for the caller to turn into an empty chart, never as a panic.
package fetch

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/immermex/dashboard-api/internal/backend"
	"github.com/immermex/dashboard-api/internal/cachestore"
	"github.com/immermex/dashboard-api/internal/metrics"
	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"
)

// Fetcher owns one cache store and the retry policy. Construct one per
// application session and pass it by reference; tests get isolated
// instances by constructing their own.
type Fetcher struct {
	store    cachestore.Store
	defaults Options
	logger   zerolog.Logger

	group singleflight.Group

	// retryable decides whether a producer error is transient. Defaults
	// to the backend taxonomy: 4xx permanent, everything else transient.
	retryable func(error) bool

	// sleep is swapped out in tests to avoid real backoff waits.
	sleep func(ctx context.Context, d time.Duration) error

	mu   sync.Mutex
	keys map[string]struct{}
}

func New(store cachestore.Store, defaults Options, logger zerolog.Logger) *Fetcher {
	return &Fetcher{
		store:     store,
		defaults:  defaults.merged(Defaults()),
		logger:    logger,
		retryable: backend.Retryable,
		sleep:     sleepCtx,
		keys:      make(map[string]struct{}),
	}
}

// DoBytes returns the cached value for key when fresh, otherwise runs the
// producer with retries and caches the outcome. A non-empty key also
// deduplicates overlapping calls: concurrent fetches for one key share a
// single producer run.
func (f *Fetcher) DoBytes(ctx context.Context, key string, opts Options, producer func(context.Context) ([]byte, error)) ([]byte, error) {
	opts = opts.merged(f.defaults)

	if key == "" {
		return f.produce(ctx, key, opts, producer)
	}

	if val, err := f.store.Get(ctx, key); err == nil {
		return val, nil
	}

	val, err, _ := f.group.Do(key, func() (any, error) {
		// a concurrent flight may have filled the cache while we waited
		if val, err := f.store.Get(ctx, key); err == nil {
			return val, nil
		}
		return f.produce(ctx, key, opts, producer)
	})
	if err != nil {
		return nil, err
	}
	return val.([]byte), nil
}

func (f *Fetcher) produce(ctx context.Context, key string, opts Options, producer func(context.Context) ([]byte, error)) ([]byte, error) {
	var lastErr error

	for attempt := 0; attempt <= opts.Retries; attempt++ {
		if attempt > 0 {
			metrics.FetchRetriesTotal.Inc()
			backoff := opts.RetryDelay * (1 << (attempt - 1))
			if err := f.sleep(ctx, backoff); err != nil {
				return nil, err
			}
		}

		val, err := producer(ctx)
		if err == nil {
			if key != "" {
				if serr := f.store.Set(ctx, key, val, opts.TTL); serr != nil {
					f.logger.Warn().Err(serr).Str("key", key).Msg("failed to cache result")
				} else {
					f.track(key)
				}
			}
			return val, nil
		}

		lastErr = err
		if !f.retryable(err) {
			break
		}
		f.logger.Debug().Err(err).Str("key", key).Int("attempt", attempt+1).Msg("fetch attempt failed")
	}

	f.logger.Error().Err(lastErr).Str("key", key).Msg("fetch exhausted retries")
	return nil, lastErr
}

// Do is the typed entry point: cached JSON is decoded into T, and a fresh
// producer result is encoded before caching.
func Do[T any](ctx context.Context, f *Fetcher, key string, opts Options, producer func(context.Context) (T, error)) (T, error) {
	var zero T

	raw, err := f.DoBytes(ctx, key, opts, func(ctx context.Context) ([]byte, error) {
		val, err := producer(ctx)
		if err != nil {
			return nil, err
		}
		b, err := json.Marshal(val)
		if err != nil {
			return nil, fmt.Errorf("encode %s result: %w", key, err)
		}
		return b, nil
	})
	if err != nil {
		return zero, err
	}

	var out T
	if err := json.Unmarshal(raw, &out); err != nil {
		return zero, fmt.Errorf("decode cached %s: %w", key, err)
	}
	return out, nil
}

// Invalidate drops one cached key.
func (f *Fetcher) Invalidate(ctx context.Context, key string) error {
	f.mu.Lock()
	delete(f.keys, key)
	f.mu.Unlock()
	return f.store.Delete(ctx, key)
}

// InvalidateScope drops every known key under a prefix, e.g. "graficas:".
func (f *Fetcher) InvalidateScope(ctx context.Context, scope string) error {
	f.mu.Lock()
	var stale []string
	for key := range f.keys {
		if strings.HasPrefix(key, scope) {
			stale = append(stale, key)
			delete(f.keys, key)
		}
	}
	f.mu.Unlock()

	var lastErr error
	for _, key := range stale {
		if err := f.store.Delete(ctx, key); err != nil {
			lastErr = err
		}
	}
	return lastErr
}

// Clear empties the whole cache.
func (f *Fetcher) Clear(ctx context.Context) error {
	f.mu.Lock()
	f.keys = make(map[string]struct{})
	f.mu.Unlock()
	return f.store.Flush(ctx)
}

func (f *Fetcher) track(key string) {
	f.mu.Lock()
	f.keys[key] = struct{}{}
	f.mu.Unlock()
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
