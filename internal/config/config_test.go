package config

import (
	"errors"
	"testing"
	"time"
)

func TestFromEnv_ParsesAndDefaults(t *testing.T) {
	t.Setenv("API_ADDR", ":9090")
	t.Setenv("LOG_DIR", "./_testlogs")
	t.Setenv("PAGES_TABLE", "pages-test")
	t.Setenv("STORE_BACKEND", "Redis")
	t.Setenv("REDIS_ADDR", "cache:6380")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("HTTP_TIMEOUT_MS", "1234")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example, https://b.example,")
	t.Setenv("RATE_LIMIT_RPM", "120")
	t.Setenv("RATE_LIMIT_BURST", "5")

	cfg, err := FromEnv()
	if err != nil {
		t.Fatalf("FromEnv: %v", err)
	}

	if cfg.Addr != ":9090" || cfg.LogDir != "./_testlogs" {
		t.Fatalf("addr/logdir wrong: %+v", cfg)
	}
	if cfg.PagesTable != "pages-test" || cfg.StoreBackend != BackendRedis {
		t.Fatalf("table/backend wrong: %+v", cfg)
	}
	if cfg.RedisAddr != "cache:6380" || cfg.RedisDB != 3 {
		t.Fatalf("redis wrong: %+v", cfg)
	}
	if cfg.HTTPTimeout != 1234*time.Millisecond {
		t.Fatalf("timeout wrong: %v", cfg.HTTPTimeout)
	}
	if len(cfg.AllowedOrigins) != 2 || cfg.AllowedOrigins[1] != "https://b.example" {
		t.Fatalf("origins wrong: %+v", cfg.AllowedOrigins)
	}
	if cfg.RateLimitRPM != 120 || cfg.RateLimitBurst != 5 {
		t.Fatalf("rate limit wrong: %+v", cfg)
	}
}

func TestFromEnv_Defaults(t *testing.T) {
	t.Setenv("PAGES_TABLE", "pages")
	t.Setenv("API_ADDR", "")
	t.Setenv("STORE_BACKEND", "")
	t.Setenv("HTTP_TIMEOUT_MS", "nope")

	cfg, err := FromEnv()
	if err != nil {
		t.Fatalf("FromEnv: %v", err)
	}
	if cfg.Addr != "127.0.0.1:8080" {
		t.Fatalf("default addr wrong: %q", cfg.Addr)
	}
	if cfg.StoreBackend != BackendDynamo {
		t.Fatalf("default backend wrong: %q", cfg.StoreBackend)
	}
	if cfg.HTTPTimeout != 10*time.Second {
		t.Fatalf("default timeout wrong: %v", cfg.HTTPTimeout)
	}
}

func TestFromEnv_RequiresPagesTable(t *testing.T) {
	t.Setenv("PAGES_TABLE", "  ")
	if _, err := FromEnv(); !errors.Is(err, ErrNoPagesTable) {
		t.Fatalf("want ErrNoPagesTable, got %v", err)
	}
}
