package config_test

import (
	"os"
	"testing"
	"time"

	"github.com/iho/minledger/internal/infrastructure/config"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("STORE_DRIVER", "")
	t.Setenv("HTTP_ADDR", "")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("unexpected error loading config: %v", err)
	}

	if cfg.StoreDriver != config.StoreMemory {
		t.Fatalf("expected memory store by default, got %q", cfg.StoreDriver)
	}

	if cfg.StoreFile != "account_data.json" {
		t.Fatalf("expected default store file, got %q", cfg.StoreFile)
	}

	if cfg.HTTPAddr != "" {
		t.Fatalf("expected HTTP server disabled by default, got %q", cfg.HTTPAddr)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("STORE_DRIVER", "redis")
	t.Setenv("REDIS_URL", "redis://example")
	t.Setenv("REDIS_KEY", "ledger:test")
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("DATABASE_TIMEOUT", "45s")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("unexpected error loading config: %v", err)
	}

	if cfg.StoreDriver != config.StoreRedis {
		t.Fatalf("expected redis driver, got %s", cfg.StoreDriver)
	}

	if cfg.RedisURL != "redis://example" || cfg.RedisKey != "ledger:test" {
		t.Fatalf("expected redis overrides, got url=%s key=%s", cfg.RedisURL, cfg.RedisKey)
	}

	if cfg.HTTPAddr != ":9090" {
		t.Fatalf("expected HTTP addr override, got %s", cfg.HTTPAddr)
	}

	if cfg.DatabaseTimeout != 45*time.Second {
		t.Fatalf("expected database timeout override, got %s", cfg.DatabaseTimeout)
	}
}

func TestLoadUnknownDriver(t *testing.T) {
	t.Setenv("STORE_DRIVER", "cassandra")

	if _, err := config.Load(); err == nil {
		t.Fatalf("expected error for unknown store driver")
	}
}

func TestValidateFileDriverRequiresPath(t *testing.T) {
	cfg := &config.Config{StoreDriver: config.StoreFile}
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected error for empty STORE_FILE")
	}

	cfg.StoreFile = "balance.json"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestLoadInvalidDuration(t *testing.T) {
	original := os.Getenv("HTTP_READ_TIMEOUT")
	t.Setenv("HTTP_READ_TIMEOUT", "not-a-duration")
	t.Cleanup(func() {
		t.Setenv("HTTP_READ_TIMEOUT", original)
	})

	if _, err := config.Load(); err == nil {
		t.Fatalf("expected error for invalid duration")
	}
}
