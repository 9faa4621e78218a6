package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"eathub/admin"
	"eathub/cache"
	"eathub/config"
	"eathub/legacy"
	"eathub/middleware"
	"eathub/notify"
	"eathub/routers"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const usage = `usage: eathub [command]

commands:
  serve              run the HTTP server (default)
  migrate            create or update the database tables
  seed               insert the starter catalog and the admin account
  cleanup-vouchers   normalize voucher codes and deactivate dead vouchers
  smoke <baseURL>    check the public endpoints of a running server`

func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: lvl}))
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "load config:", err)
		os.Exit(1)
	}
	logger := newLogger(cfg.Server.LogLevel)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	command := "serve"
	if len(os.Args) > 1 {
		command = os.Args[1]
	}

	switch command {
	case "serve":
		err = serve(ctx, cfg, logger)
	case "migrate":
		err = withDatabase(cfg, func(db *gorm.DB) error {
			return config.Migrate(db)
		})
	case "seed":
		err = withDatabase(cfg, func(db *gorm.DB) error {
			_, err := admin.Seed(ctx, db, cfg.Auth.AdminEmail, cfg.Auth.AdminPassword)
			return err
		})
	case "cleanup-vouchers":
		err = withDatabase(cfg, func(db *gorm.DB) error {
			_, err := admin.CleanupVouchers(ctx, db, time.Now())
			return err
		})
	case "smoke":
		if len(os.Args) < 3 {
			fmt.Fprintln(os.Stderr, usage)
			os.Exit(2)
		}
		err = smoke(ctx, os.Args[2])
	case "-h", "--help", "help":
		fmt.Println(usage)
		return
	default:
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(2)
	}

	if err != nil {
		logger.Error("command.failed", "command", command, "error", err)
		os.Exit(1)
	}
}

func withDatabase(cfg config.Config, fn func(db *gorm.DB) error) error {
	db, err := config.SetupDatabase(cfg.Database)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer func() {
		dbInstance, _ := db.DB()
		_ = dbInstance.Close()
	}()
	return fn(db)
}

func smoke(ctx context.Context, baseURL string) error {
	checks, err := admin.Smoke(ctx, nil, baseURL)
	for _, c := range checks {
		status := "ok"
		if !c.OK() {
			status = c.Err.Error()
		}
		fmt.Printf("%-28s %3d %8s  %s\n", c.Path, c.Status, c.Latency.Round(time.Millisecond), status)
	}
	return err
}

// buildNotifier wires every configured channel. A channel that fails to start is logged and skipped.
func buildNotifier(cfg config.NotifyConfig, legacyCfg config.LegacyConfig, logger *slog.Logger) (notify.Notifier, func(context.Context)) {
	var notifiers notify.Multi
	var closers []func(context.Context)

	if cfg.AMQPURL != "" {
		publisher, err := notify.DialAMQP(cfg.AMQPURL, cfg.Exchange)
		if err != nil {
			logger.Warn("notify.amqp_disabled", "error", err)
		} else {
			notifiers = append(notifiers, publisher)
			closers = append(closers, func(context.Context) { publisher.Close() })
		}
	}
	if cfg.TelegramToken != "" && cfg.TelegramChatID != 0 {
		bot, err := notify.NewTelegram(cfg.TelegramToken, cfg.TelegramChatID)
		if err != nil {
			logger.Warn("notify.telegram_disabled", "error", err)
		} else {
			notifiers = append(notifiers, bot)
		}
	}
	if legacyCfg.MongoURI != "" {
		mirror := legacy.NewMirror(legacyCfg.MongoURI, legacyCfg.MongoDatabase)
		notifiers = append(notifiers, mirror)
		closers = append(closers, func(ctx context.Context) {
			if err := mirror.Close(ctx); err != nil {
				logger.Warn("legacy.close_failed", "error", err)
			}
		})
	}

	logger.Info("notify.configured", "channels", len(notifiers))
	return notifiers, func(ctx context.Context) {
		for _, c := range closers {
			c(ctx)
		}
	}
}

func serve(ctx context.Context, cfg config.Config, logger *slog.Logger) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	if strings.EqualFold(cfg.Server.LogLevel, "debug") {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := config.SetupDatabase(cfg.Database)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer func() {
		dbInstance, _ := db.DB()
		_ = dbInstance.Close()
	}()

	rdb := config.SetupRedisConnection(cfg.Redis)
	if rdb != nil {
		defer rdb.Close()
		if err := rdb.Ping(ctx).Err(); err != nil {
			logger.Warn("redis.unreachable", "addr", cfg.Redis.Addr, "error", err)
		}
	}
	store := cache.New(rdb, cfg.Redis.TTL)

	notifier, closeNotifier := buildNotifier(cfg.Notify, cfg.Legacy, logger)
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		closeNotifier(closeCtx)
	}()

	metrics := middleware.NewMetrics()
	go middleware.RunMetricsLogger(ctx, logger, metrics, cfg.Server.MetricsInterval)

	router, err := routers.SetupRouters(cfg, db, store, notifier, logger, metrics)
	if err != nil {
		return fmt.Errorf("setup routers: %w", err)
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		logger.Info("server.listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("server.shutting_down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return <-errCh
}
