package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"feedfilter/api"
	"feedfilter/internal/cache"
	"feedfilter/internal/catalog"
	"feedfilter/internal/events"
	"feedfilter/internal/fetcher"
	"feedfilter/internal/infrastructure/config"
	"feedfilter/internal/parser"
	"feedfilter/internal/serializer"
	transport "feedfilter/internal/transport/http"
	"feedfilter/internal/usecase"
	"feedfilter/storage"

	"github.com/joho/godotenv"
)

const shutdownTimeout = 10 * time.Second

// Run запускает приложение feedfilter и блокируется до сигнала остановки.
func Run(configPath string) error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to load .env file: %w", err)
	}
	if configPath == "" {
		configPath = os.Getenv("CONFIG_PATH")
	}
	if configPath == "" {
		configPath = "configs/config.yaml"
	}

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	log := NewLogger(os.Stdout, cfg.Logging)
	log = log.With(slog.String("app", cfg.GetAppName()))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	feeds, err := catalog.New(cfg.FeedConfigs())
	if err != nil {
		return fmt.Errorf("failed to build feed catalog: %w", err)
	}

	var (
		recorders []usecase.BuildRecorder
		history   transport.BuildHistory
	)
	if cfg.DBEnabled() {
		db, err := storage.NewStorage(ctx, cfg.DB.DSN, log)
		if err != nil {
			log.Error("Error DB connection", slog.Any("error", err))
			return err
		}
		defer db.Close()
		recorders = append(recorders, db)
		history = db
	}
	if cfg.KafkaEnabled() {
		publisher, err := events.NewKafkaPublisher(cfg.Kafka.Brokers, cfg.Kafka.Topics.FeedBuilt, log)
		if err != nil {
			log.Error("Kafka creating producer error", slog.Any("error", err))
			return err
		}
		recorders = append(recorders, publisher)
	}

	feedCache := cache.New()
	getter := usecase.NewFeedGetterUseCase(
		feeds,
		feedCache,
		fetcher.New(log, cfg.Fetch.Timeout, cfg.Fetch.UserAgent),
		parser.New(log),
		serializer.NewRSS(),
		log,
		usecase.WithTTL(cfg.App.CacheTTL),
		usecase.WithFetchTimeout(cfg.Fetch.Timeout),
		usecase.WithRecorders(recorders...),
	)

	var limiter *transport.RateLimiter
	if cfg.RateLimit.RPS > 0 {
		limiter = transport.NewRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst, log)
		go limiter.Cleanup(ctx, time.Minute)
	}

	routes := transport.NewApi(getter, feeds, feedCache, history, log)
	server := &http.Server{
		Addr:         cfg.GetHTTPAddr(),
		Handler:      api.New(routes, limiter, log).Handler(),
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("Server feedfilter start working",
			slog.String("addr", server.Addr),
			slog.Any("feeds", feeds.Names()),
		)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shutdown server: %w", err)
	}
	return nil
}

// NewLogger создает slog-логгер по секции logging конфига.
func NewLogger(w io.Writer, cfg config.LoggingConfig) *slog.Logger {
	opts := &slog.HandlerOptions{Level: parseLevel(cfg.Level)}
	if strings.EqualFold(cfg.Format, "json") {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
