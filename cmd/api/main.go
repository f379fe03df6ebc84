package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/immermex/dashboard-api/internal/backend"
	"github.com/immermex/dashboard-api/internal/cachestore"
	"github.com/immermex/dashboard-api/internal/config"
	"github.com/immermex/dashboard-api/internal/dashboard"
	"github.com/immermex/dashboard-api/internal/fetch"
	"github.com/immermex/dashboard-api/internal/refresh"
	"github.com/immermex/dashboard-api/internal/routes"
	"github.com/immermex/dashboard-api/internal/state"
	"github.com/immermex/dashboard-api/internal/tracing"
	"github.com/immermex/dashboard-api/internal/worker"
)

func main() {
	godotenv.Load()

	logger := zerolog.New(os.Stderr).With().Timestamp().Logger()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("invalid configuration")
	}

	if level, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		logger = logger.Level(level)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if cfg.TempoEndpoint != "" {
		shutdown := tracing.InitTracer(cfg.TempoEndpoint)
		defer shutdown(context.Background())
	}

	var kv state.Store
	switch cfg.StateDriver {
	case config.StateSQLite:
		kv, err = state.NewSQLite(cfg.StatePath)
		if err != nil {
			logger.Error().Err(err).Str("path", cfg.StatePath).Msg("sqlite state unavailable, using memory")
			kv = state.NewMemory()
		}
	default:
		kv = state.NewMemory()
	}
	session := state.NewSession(kv, logger)
	defer session.Close()

	var store cachestore.Store
	switch cfg.CacheDriver {
	case config.CacheValkey:
		store = cachestore.NewValkey(cfg.ValkeyNodes)
	case config.CacheMemcached:
		store = cachestore.NewMemcached(cfg.MemcachedHosts...)
	default:
		store = cachestore.NewMemory()
	}
	defer store.Close()

	if err := store.Ping(ctx); err != nil {
		logger.Warn().Err(err).Str("driver", string(cfg.CacheDriver)).Msg("cache unreachable at startup")
	}

	fetcher := fetch.New(store, fetch.Options{
		TTL:        cfg.CacheTTL,
		Retries:    cfg.FetchRetries,
		RetryDelay: cfg.FetchRetryDelay,
	}, logger)

	client := backend.New(cfg.BackendURL, session, logger)

	kpis := dashboard.KPILoader(client, fetcher)
	charts := dashboard.DefaultCharts(client, fetcher)
	loader := dashboard.NewLoader(session, kpis, charts, logger)

	sv := worker.NewSupervisor(client, cfg.PollInterval, logger)
	sv.Start(ctx)
	defer sv.Stop()

	if len(cfg.KafkaBrokers) > 0 {
		watcher := refresh.NewWatcher(cfg.KafkaBrokers, cfg.RefreshTopic, fetcher, logger)
		go watcher.Run(ctx)
	}

	app := routes.New(client, fetcher, loader, session, kpis, charts, sv, logger)
	mux := routes.NewMux(app)

	logger.Info().Str("addr", cfg.ListenAddr).Str("backend", cfg.BackendURL).Msg("listening")
	if err := http.ListenAndServe(cfg.ListenAddr, mux); err != nil {
		logger.Fatal().Err(err).Msg("server stopped")
	}
}
