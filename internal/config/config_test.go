package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{"LISTEN_ADDR", "ALLOWED_ORIGINS", "BOARD_SIZE", "MAX_ROOMS", "REDIS_URL", "REDIS_EVENTS_PREFIX", "DATABASE_URL", "RESULT_WEBHOOK_URL", "WEBHOOK_TIMEOUT_SEC", "MESSAGES_DIR", "WS_PING_INTERVAL_SEC", "WS_SEND_BUFFER"} {
		t.Setenv(k, "")
	}
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.ListenAddr != ":3001" || cfg.BoardSize != 14 || cfg.RedisEventsPrefix != "blokus:room:" {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.WSPingInterval != 15*time.Second || cfg.WSSendBuffer != 64 || cfg.WebhookTimeout != 5*time.Second {
		t.Fatalf("unexpected ws defaults: %+v", cfg)
	}
	if len(cfg.AllowedOrigins) != 0 || cfg.MaxRooms != 0 {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("LISTEN_ADDR", "127.0.0.1:9000")
	t.Setenv("ALLOWED_ORIGINS", "http://a.test, ,http://b.test")
	t.Setenv("MAX_ROOMS", "10")
	t.Setenv("WS_SEND_BUFFER", "bogus")
	t.Setenv("WEBHOOK_TIMEOUT_SEC", "2")
	t.Setenv("BOARD_SIZE", "")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.ListenAddr != "127.0.0.1:9000" || cfg.MaxRooms != 10 || cfg.WebhookTimeout != 2*time.Second {
		t.Fatalf("overrides not applied: %+v", cfg)
	}
	if len(cfg.AllowedOrigins) != 2 || cfg.AllowedOrigins[1] != "http://b.test" {
		t.Fatalf("origins = %v", cfg.AllowedOrigins)
	}
	if cfg.WSSendBuffer != 64 {
		t.Fatalf("invalid WS_SEND_BUFFER should keep default, got %d", cfg.WSSendBuffer)
	}
}

func TestLoadRejectsOtherBoardSizes(t *testing.T) {
	t.Setenv("BOARD_SIZE", "20")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for BOARD_SIZE=20")
	}
	t.Setenv("BOARD_SIZE", "x")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for non-numeric BOARD_SIZE")
	}
}
