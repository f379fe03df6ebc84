package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// CacheDriver controls the response cache backend.
type CacheDriver string

const (
	CacheValkey    CacheDriver = "valkey"
	CacheMemcached CacheDriver = "memcached"
	CacheMemory    CacheDriver = "memory"
)

// StateDriver controls where session state (filters, API prefix) lives.
type StateDriver string

const (
	StateSQLite StateDriver = "sqlite"
	StateMemory StateDriver = "memory"
)

// Config contains all runtime configuration for the service.
type Config struct {
	// Core
	ListenAddr string
	BackendURL string
	LogLevel   string

	// Response cache
	CacheDriver    CacheDriver
	ValkeyNodes    []string
	MemcachedHosts []string
	CacheTTL       time.Duration

	// Fetch retries
	FetchRetries   int
	FetchRetryDelay time.Duration

	// Session state
	StateDriver StateDriver
	StatePath   string

	// Refresh events
	KafkaBrokers []string
	RefreshTopic string

	// Backend supervision
	PollInterval time.Duration

	// Observability
	TempoEndpoint string

	// HTTP
	CORSAllowOrigin string
}

// Load parses env vars and returns a validated Config.
func Load() (Config, error) {
	cfg := Config{
		ListenAddr: getEnvString("LISTEN_ADDR", ":8080"),
		BackendURL: getEnvString("BACKEND_URL", "http://localhost:8000"),
		LogLevel:   getEnvString("LOG_LEVEL", "info"),

		CacheDriver:    CacheDriver(getEnvString("CACHE_DRIVER", string(CacheMemory))),
		ValkeyNodes:    getEnvList("VALKEY_NODES", nil),
		MemcachedHosts: getEnvList("MEMCACHED_HOSTS", nil),
		CacheTTL:       getEnvDuration("CACHE_TTL", 5*time.Minute),

		FetchRetries:    getEnvInt("FETCH_RETRIES", 3),
		FetchRetryDelay: getEnvDuration("FETCH_RETRY_DELAY", time.Second),

		StateDriver: StateDriver(getEnvString("STATE_DRIVER", string(StateSQLite))),
		StatePath:   getEnvString("STATE_PATH", "/data/immermex.sqlite"),

		KafkaBrokers: getEnvList("KAFKA_BROKERS", nil),
		RefreshTopic: getEnvString("REFRESH_TOPIC", "immermex.refresh"),

		PollInterval: getEnvDuration("POLL_INTERVAL", 30*time.Second),

		TempoEndpoint: getEnvString("TEMPO_ENDPOINT", ""),

		CORSAllowOrigin: getEnvString("CORS_ALLOW_ORIGIN", "*"),
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks configuration constraints.
func (c Config) Validate() error {
	switch c.CacheDriver {
	case CacheValkey, CacheMemcached, CacheMemory:
		// ok
	default:
		return fmt.Errorf("invalid CACHE_DRIVER: %q (must be valkey|memcached|memory)", c.CacheDriver)
	}

	if c.CacheDriver == CacheValkey && len(c.ValkeyNodes) == 0 {
		return fmt.Errorf("CACHE_DRIVER=valkey requires VALKEY_NODES")
	}
	if c.CacheDriver == CacheMemcached && len(c.MemcachedHosts) == 0 {
		return fmt.Errorf("CACHE_DRIVER=memcached requires MEMCACHED_HOSTS")
	}

	switch c.StateDriver {
	case StateSQLite, StateMemory:
		// ok
	default:
		return fmt.Errorf("invalid STATE_DRIVER: %q (must be sqlite|memory)", c.StateDriver)
	}

	if c.BackendURL == "" {
		return fmt.Errorf("BACKEND_URL must not be empty")
	}
	if c.CacheTTL <= 0 {
		return fmt.Errorf("CACHE_TTL must be > 0")
	}
	if c.FetchRetries < 0 {
		return fmt.Errorf("FETCH_RETRIES must be >= 0")
	}
	if c.FetchRetryDelay < 0 {
		return fmt.Errorf("FETCH_RETRY_DELAY must be >= 0")
	}
	if c.PollInterval <= 0 {
		return fmt.Errorf("POLL_INTERVAL must be > 0")
	}

	return nil
}

// Helper functions for parsing environment variables

func getEnvString(key, def string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v, ok := os.LookupEnv(key); ok {
		if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			return n
		}
	}
	return def
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	if v, ok := os.LookupEnv(key); ok {
		if d, err := time.ParseDuration(strings.TrimSpace(v)); err == nil {
			return d
		}
	}
	return def
}

func getEnvList(key string, def []string) []string {
	v, ok := os.LookupEnv(key)
	if !ok {
		return def
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		out = append(out, p)
	}
	if len(out) == 0 {
		return def
	}
	return out
}
