package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type AppConfig struct {
	ListenAddr     string
	AllowedOrigins []string

	BoardSize int
	MaxRooms  int

	RedisURL          string
	RedisEventsPrefix string
	DatabaseURL       string

	ResultWebhookURL   string
	ResultWebhookToken string
	WebhookTimeout     time.Duration

	MessagesDir string

	WSPingInterval time.Duration
	WSSendBuffer   int
}

func Load() (*AppConfig, error) {
	cfg := &AppConfig{
		ListenAddr:        ":3001",
		BoardSize:         14,
		RedisEventsPrefix: "blokus:room:",
		WebhookTimeout:    5 * time.Second,
		WSPingInterval:    15 * time.Second,
		WSSendBuffer:      64,
	}

	if v := strings.TrimSpace(os.Getenv("LISTEN_ADDR")); v != "" {
		cfg.ListenAddr = v
	}
	cfg.AllowedOrigins = splitList(os.Getenv("ALLOWED_ORIGINS"))

	if v := strings.TrimSpace(os.Getenv("BOARD_SIZE")); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("BOARD_SIZE: %w", err)
		}
		cfg.BoardSize = n
	}
	if v := strings.TrimSpace(os.Getenv("MAX_ROOMS")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			cfg.MaxRooms = n
		}
	}

	cfg.RedisURL = strings.TrimSpace(os.Getenv("REDIS_URL"))
	if v := strings.TrimSpace(os.Getenv("REDIS_EVENTS_PREFIX")); v != "" {
		cfg.RedisEventsPrefix = v
	}
	cfg.DatabaseURL = strings.TrimSpace(os.Getenv("DATABASE_URL"))

	cfg.ResultWebhookURL = strings.TrimSpace(os.Getenv("RESULT_WEBHOOK_URL"))
	cfg.ResultWebhookToken = strings.TrimSpace(os.Getenv("RESULT_WEBHOOK_TOKEN"))
	if v := strings.TrimSpace(os.Getenv("WEBHOOK_TIMEOUT_SEC")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.WebhookTimeout = time.Duration(n) * time.Second
		}
	}

	cfg.MessagesDir = strings.TrimSpace(os.Getenv("MESSAGES_DIR"))

	if v := strings.TrimSpace(os.Getenv("WS_PING_INTERVAL_SEC")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.WSPingInterval = time.Duration(n) * time.Second
		}
	}
	if v := strings.TrimSpace(os.Getenv("WS_SEND_BUFFER")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.WSSendBuffer = n
		}
	}

	// only the 14x14 duo board is supported
	if cfg.BoardSize != 14 {
		return nil, errors.New("BOARD_SIZE must be 14")
	}
	if cfg.ListenAddr == "" {
		return nil, errors.New("LISTEN_ADDR is required")
	}

	return cfg, nil
}

func splitList(v string) []string {
	var out []string
	for _, p := range strings.Split(v, ",") {
		s := strings.TrimSpace(p)
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}
