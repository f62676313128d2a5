package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/park285/Cheese-Blokus/internal/adapter/blokuspresenter"
	appcfg "github.com/park285/Cheese-Blokus/internal/config"
	"github.com/park285/Cheese-Blokus/internal/eventbus"
	"github.com/park285/Cheese-Blokus/internal/msgcat"
	"github.com/park285/Cheese-Blokus/internal/obslog"
	"github.com/park285/Cheese-Blokus/internal/pvpblokus"
	"github.com/park285/Cheese-Blokus/internal/render"
	"github.com/park285/Cheese-Blokus/internal/webhook"
	"github.com/park285/Cheese-Blokus/internal/wsserver"
	"go.uber.org/zap"
)

func main() {
	if err := obslog.InitFromEnv(); err != nil {
		log.Fatalf("logger init error: %v", err)
	}
	defer obslog.Sync()
	lg := obslog.L()

	cfg, err := appcfg.Load()
	if err != nil {
		lg.Fatal("config_error", zap.Error(err))
	}

	cat, err := msgcat.New(cfg.MessagesDir)
	if err != nil {
		lg.Fatal("msgcat_init_error", zap.Error(err))
	}
	presenter := blokuspresenter.NewPresenter(cat)
	hub := wsserver.NewHub(presenter)
	sinks := pvpblokus.MultiSink{hub}

	// Optional Redis mirror of room events
	var publisher *eventbus.Publisher
	if cfg.RedisURL != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		rdb, err := eventbus.NewClient(ctx, cfg.RedisURL)
		cancel()
		if err != nil {
			lg.Fatal("redis_init_error", zap.Error(err))
		}
		defer func() { _ = rdb.Close() }()
		publisher = eventbus.NewPublisher(eventbus.NewStore(rdb, cfg.RedisEventsPrefix), 256)
		sinks = append(sinks, publisher)
	}

	// Result archive
	var stores []pvpblokus.ResultStore
	if cfg.DatabaseURL != "" {
		repo, err := pvpblokus.NewRepository(cfg.DatabaseURL)
		if err != nil {
			lg.Fatal("db_init_error", zap.Error(err))
		}
		defer func() { _ = repo.Close() }()
		stores = append(stores, repo)
	} else {
		lg.Warn("db_not_configured", zap.String("fallback", "memory"))
		stores = append(stores, pvpblokus.NewMemoryRepository())
	}
	if cfg.ResultWebhookURL != "" {
		stores = append(stores, webhook.NewClient(cfg.ResultWebhookURL,
			webhook.WithTimeout(cfg.WebhookTimeout),
			webhook.WithBearerToken(cfg.ResultWebhookToken),
		))
	}
	recorder := pvpblokus.NewRecorder(cfg.WebhookTimeout, stores...)
	sinks = append(sinks, recorder)

	dir := pvpblokus.NewDirectory(
		pvpblokus.WithSink(sinks),
		pvpblokus.WithMaxRooms(cfg.MaxRooms),
		pvpblokus.WithBoardSize(cfg.BoardSize),
	)

	srv := wsserver.New(hub, dir, presenter, render.NewPNGRenderer(36), wsserver.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		PingInterval:   cfg.WSPingInterval,
		SendBuffer:     cfg.WSSendBuffer,
	})
	httpSrv := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		lg.Info("server_listen", zap.String("addr", cfg.ListenAddr))
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			lg.Fatal("server_error", zap.Error(err))
		}
	}()

	// Wait for termination signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh
	lg.Info("server_shutdown")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpSrv.Shutdown(ctx); err != nil {
		lg.Warn("server_shutdown_error", zap.Error(err))
	}
	if publisher != nil {
		if err := publisher.Close(ctx); err != nil {
			lg.Warn("eventbus_close_error", zap.Error(err))
		}
	}
	if err := recorder.Close(ctx); err != nil {
		lg.Warn("recorder_close_error", zap.Error(err))
	}
}
