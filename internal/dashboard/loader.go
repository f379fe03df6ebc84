// Package dashboard orchestrates one dashboard load: fetch every chart
// for the current filter set, normalize, and report per-chart status.
package dashboard

import (
	"context"
	"encoding/json"
	"sync"
	"sync/atomic"

	"github.com/immermex/dashboard-api/internal/fetch"
	"github.com/immermex/dashboard-api/internal/state"
	"github.com/immermex/dashboard-api/pkg/types"
	"github.com/rs/zerolog"
)

// KPIFunc loads the headline figures for a filter set.
type KPIFunc func(ctx context.Context, f types.FilterSet) (*types.KPISet, error)

// ChartSpec is one chart's contract: a stable name and a loader that
// returns chart-ready records for a filter set.
type ChartSpec struct {
	Name string
	Load func(ctx context.Context, f types.FilterSet) (any, error)
}

// ChartResult is the settled outcome of one chart fetch. A failed chart
// carries its error message and empty data; it never fails the dashboard.
type ChartResult struct {
	Data any    `json:"data"`
	Err  string `json:"error,omitempty"`
}

// Snapshot is the state of one completed load.
type Snapshot struct {
	Generation uint64                 `json:"generation"`
	Filters    types.FilterSet        `json:"filters"`
	KPIs       *types.KPISet          `json:"kpis,omitempty"`
	Charts     map[string]ChartResult `json:"charts"`
	Err        string                 `json:"error,omitempty"`

	// Stale marks a snapshot that was superseded by a newer load while
	// in flight. Stale snapshots are never published.
	Stale bool `json:"-"`
}

// Loader runs dashboard loads. Chart fetches within one load are issued
// concurrently and settle independently; a load started later always wins
// over a slower earlier one, whatever order their responses arrive in.
type Loader struct {
	session *state.Session
	logger  zerolog.Logger
	kpis    KPIFunc
	charts  []ChartSpec

	gen atomic.Uint64

	mu      sync.RWMutex
	current Snapshot
}

func NewLoader(session *state.Session, kpis KPIFunc, charts []ChartSpec, logger zerolog.Logger) *Loader {
	return &Loader{
		session: session,
		logger:  logger,
		kpis:    kpis,
		charts:  charts,
	}
}

// Load fetches the full dashboard for a filter set. The KPI fetch is
// load-blocking: when it fails the snapshot carries the error and no
// charts are fetched, so the caller can offer a retry. Individual chart
// failures degrade to empty data for that chart only.
func (l *Loader) Load(ctx context.Context, f types.FilterSet) Snapshot {
	gen := l.gen.Add(1)

	if l.session != nil {
		if err := l.session.SetFilters(ctx, f); err != nil {
			l.logger.Warn().Err(err).Msg("failed to persist filters")
		}
	}

	snap := Snapshot{
		Generation: gen,
		Filters:    f,
		Charts:     make(map[string]ChartResult, len(l.charts)),
	}

	kpis, err := l.kpis(ctx, f)
	if err != nil {
		l.logger.Error().Err(err).Msg("kpi load failed")
		snap.Err = err.Error()
		return l.publish(snap)
	}
	snap.KPIs = kpis

	var (
		mu sync.Mutex
		wg sync.WaitGroup
	)
	for _, chart := range l.charts {
		wg.Add(1)
		go func(chart ChartSpec) {
			defer wg.Done()

			res := ChartResult{}
			data, err := chart.Load(ctx, f)
			if err != nil {
				l.logger.Warn().Err(err).Str("chart", chart.Name).Msg("chart load failed")
				res.Err = err.Error()
			} else {
				res.Data = data
			}

			mu.Lock()
			snap.Charts[chart.Name] = res
			mu.Unlock()
		}(chart)
	}
	wg.Wait()

	return l.publish(snap)
}

// publish installs the snapshot unless a newer load has started since.
func (l *Loader) publish(snap Snapshot) Snapshot {
	if snap.Generation != l.gen.Load() {
		snap.Stale = true
		l.logger.Debug().Uint64("generation", snap.Generation).Msg("discarding superseded load")
		return snap
	}

	l.mu.Lock()
	if snap.Generation >= l.current.Generation {
		l.current = snap
	} else {
		snap.Stale = true
	}
	l.mu.Unlock()
	return snap
}

// Current returns the last published snapshot.
func (l *Loader) Current() Snapshot {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.current
}

// LastFilters restores the persisted filter set, if any.
func (l *Loader) LastFilters(ctx context.Context) (types.FilterSet, bool) {
	if l.session == nil {
		return types.FilterSet{}, false
	}
	return l.session.Filters(ctx)
}

// filterKey derives the cache key suffix for a filter set. Struct field
// order makes the JSON deterministic.
func filterKey(f types.FilterSet) string {
	b, err := json.Marshal(f)
	if err != nil {
		return "all"
	}
	return string(b)
}

// ckey builds a cache key under a scope, e.g. "graficas:aging:{...}".
func ckey(scope, name string, f types.FilterSet) string {
	return scope + ":" + name + ":" + filterKey(f)
}

// CacheOptions is the shared fetch policy for dashboard data.
func CacheOptions() fetch.Options {
	return fetch.Defaults()
}
