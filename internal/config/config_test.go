package config

import (
	"os"
	"testing"
	"time"
)

func TestDefaults(t *testing.T) {
	os.Unsetenv("CACHE_DRIVER")
	os.Unsetenv("CACHE_TTL")
	os.Unsetenv("FETCH_RETRIES")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.CacheDriver != CacheMemory {
		t.Errorf("CacheDriver = %v, want %v", cfg.CacheDriver, CacheMemory)
	}
	if cfg.CacheTTL != 5*time.Minute {
		t.Errorf("CacheTTL = %v, want 5m", cfg.CacheTTL)
	}
	if cfg.FetchRetries != 3 {
		t.Errorf("FetchRetries = %d, want 3", cfg.FetchRetries)
	}
	if cfg.FetchRetryDelay != time.Second {
		t.Errorf("FetchRetryDelay = %v, want 1s", cfg.FetchRetryDelay)
	}
}

func TestValkeyRequiresNodes(t *testing.T) {
	os.Setenv("CACHE_DRIVER", "valkey")
	os.Unsetenv("VALKEY_NODES")
	defer os.Unsetenv("CACHE_DRIVER")

	if _, err := Load(); err == nil {
		t.Fatal("Load() accepted valkey driver without nodes")
	}

	os.Setenv("VALKEY_NODES", "valkey-0:6379, valkey-1:6379")
	defer os.Unsetenv("VALKEY_NODES")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(cfg.ValkeyNodes) != 2 || cfg.ValkeyNodes[1] != "valkey-1:6379" {
		t.Errorf("ValkeyNodes = %v", cfg.ValkeyNodes)
	}
}

func TestInvalidDriverRejected(t *testing.T) {
	os.Setenv("CACHE_DRIVER", "redis")
	defer os.Unsetenv("CACHE_DRIVER")

	if _, err := Load(); err == nil {
		t.Fatal("Load() accepted unknown cache driver")
	}
}

func TestNegativeRetriesRejected(t *testing.T) {
	os.Setenv("FETCH_RETRIES", "-1")
	defer os.Unsetenv("FETCH_RETRIES")

	if _, err := Load(); err == nil {
		t.Fatal("Load() accepted negative FETCH_RETRIES")
	}
}
