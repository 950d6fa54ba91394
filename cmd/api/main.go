package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"buildmart/internal/api"
	"buildmart/internal/auth"
	"buildmart/internal/cart"
	"buildmart/internal/checkout"
	"buildmart/internal/config"
	"buildmart/internal/dashboard"
	"buildmart/internal/events"
	"buildmart/internal/export"
	"buildmart/internal/google"
	"buildmart/internal/kv"
	"buildmart/internal/logging"
	"buildmart/internal/metrics"
	"buildmart/internal/notify"
	"buildmart/internal/seed"
	"buildmart/internal/storage"
	"buildmart/internal/worker"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	cfg, logger, closer, err := loadConfigAndLogger()
	if err != nil {
		return err
	}
	if closer != nil {
		defer (func() { _ = closer.Close() })()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	redisClient := initRedis(cfg, &logger)
	if redisClient != nil {
		defer redisClient.Close()
	}

	kvStore, err := initStore(cfg, redisClient, &logger)
	if err != nil {
		return err
	}
	defer kvStore.Close()

	store := storage.New(kvStore, &logger)

	if cfg.Seed.Enabled {
		if err := seedStore(ctx, cfg, store, &logger); err != nil {
			return err
		}
	}

	bus := events.NewEventBus()
	cartAgg := cart.New(ctx, store)
	accounts := auth.NewService(store, cfg.Auth.Credentials,
		time.Duration(cfg.Auth.LoginDelayMS)*time.Millisecond, &logger)
	processor := &checkout.SimulatedProcessor{
		Delay: time.Duration(cfg.Checkout.PaymentDelayMS) * time.Millisecond,
	}
	checkoutSvc := checkout.NewService(store, processor, bus, cfg.Checkout.TaxRate, &logger)
	dashboards := dashboard.NewService(store)

	notifier := notify.New(store, &logger)
	if bot := initTelegram(cfg, &logger); bot != nil {
		notifier.WithTelegram(bot, cfg.Telegram.AdminChatID)
	}
	notifier.Register(bus)

	startSyncWorker(ctx, cfg, store, redisClient, bus, &logger)

	if !cfg.API.Enabled {
		logger.Warn().Msg("API is disabled in config, but starting API application. Check your config.")
	}

	httpServer := api.NewHTTPServer(cfg.API, store, accounts, checkoutSvc, dashboards, cartAgg, &logger).
		WithExporter(export.New(store, cfg.Exports.Path, &logger))

	startMetrics(ctx, cfg, &logger)

	return startServer(ctx, httpServer, cfg, &logger)
}

func loadConfigAndLogger() (*config.Config, zerolog.Logger, io.Closer, error) {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "configs/config.yaml"
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, zerolog.Logger{}, nil, fmt.Errorf("load config: %w", err)
	}

	baseLogger, closer, err := logging.New(cfg.Logging, cfg.App)
	if err != nil {
		return nil, zerolog.Logger{}, nil, fmt.Errorf("init logger: %w", err)
	}
	logger := baseLogger.With().Str("component", "api-main").Logger()

	return cfg, logger, closer, nil
}

func initRedis(cfg *config.Config, logger *zerolog.Logger) *redis.Client {
	if !cfg.Storage.Redis.Enabled {
		return nil
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Storage.Redis.Address,
		Password: cfg.Storage.Redis.Password,
		DB:       cfg.Storage.Redis.DB,
		PoolSize: cfg.Storage.Redis.PoolSize,
	})

	if _, err := redisClient.Ping(context.Background()).Result(); err != nil {
		logger.Warn().Err(err).Msg("redis connection failed, continuing without redis")
		return nil
	}

	logger.Info().Str("addr", cfg.Storage.Redis.Address).Msg("redis connected")
	return redisClient
}

// initStore opens the durable SQLite store; with redis available the reads
// and writes go through it first and fail over to SQLite.
func initStore(cfg *config.Config, redisClient *redis.Client, logger *zerolog.Logger) (kv.Store, error) {
	sqliteStore, err := kv.NewSQLiteStore(cfg.Storage.Path)
	if err != nil {
		logger.Error().Err(err).Str("path", cfg.Storage.Path).Msg("init sqlite store")
		return nil, err
	}

	if redisClient == nil {
		return sqliteStore, nil
	}

	redisStore := kv.NewRedisStore(redisClient, cfg.Storage.Redis.KeyPrefix)
	return kv.NewFailoverStore(redisStore, sqliteStore, logger), nil
}

func seedStore(ctx context.Context, cfg *config.Config, store *storage.Storage, logger *zerolog.Logger) error {
	fixtures, err := seed.LoadFixtures(cfg.Seed.Path)
	if err != nil {
		logger.Error().Err(err).Str("path", cfg.Seed.Path).Msg("load seed fixtures")
		return err
	}
	return seed.New(store, logger).Initialize(ctx, fixtures)
}

func initTelegram(cfg *config.Config, logger *zerolog.Logger) *tgbotapi.BotAPI {
	if !cfg.Telegram.Enabled {
		return nil
	}

	bot, err := tgbotapi.NewBotAPI(cfg.Telegram.BotToken)
	if err != nil {
		logger.Warn().Err(err).Msg("telegram init failed, continuing without notifications")
		return nil
	}
	bot.Debug = cfg.Telegram.Debug

	logger.Info().Str("username", bot.Self.UserName).Msg("telegram connected")
	return bot
}

func initGoogleSheets(cfg *config.Config, logger *zerolog.Logger) *google.SheetsService {
	if !cfg.Google.Enabled || cfg.Google.GoogleCredentialsFile == "" {
		return nil
	}

	sheetsService, err := google.NewSheetsService(
		cfg.Google.GoogleCredentialsFile,
		cfg.Google.OrdersSpreadSheetID,
		cfg.Google.BookingsSpreadSheetID,
	)
	if err != nil {
		logger.Warn().Err(err).Msg("google sheets init failed, continuing without sheets")
		return nil
	}

	logger.Info().Msg("google sheets connected")
	return sheetsService
}

func startSyncWorker(
	ctx context.Context,
	cfg *config.Config,
	store *storage.Storage,
	redisClient *redis.Client,
	bus *events.EventBus,
	logger *zerolog.Logger,
) {
	if !cfg.Worker.Enabled {
		return
	}

	sheetsService := initGoogleSheets(cfg, logger)
	if sheetsService == nil {
		logger.Warn().Msg("sync worker enabled but sheets unavailable, worker not started")
		return
	}

	syncWorker := worker.NewSyncWorker(store, sheetsService, redisClient, cfg.Worker.QueueName,
		worker.RetryPolicy{MaxRetries: cfg.Worker.MaxRetries}, logger)
	syncWorker.RegisterEvents(bus)
	go syncWorker.Start(ctx)
}

func startMetrics(ctx context.Context, cfg *config.Config, logger *zerolog.Logger) {
	if !cfg.Monitoring.PrometheusEnabled {
		return
	}

	metrics.Register()
	port := cfg.Monitoring.PrometheusPort
	if port == 0 {
		port = 9090
	}
	go startMetricsServer(ctx, port, logger)
}

func startServer(ctx context.Context, httpServer *api.HTTPServer, cfg *config.Config, logger *zerolog.Logger) error {
	go func() {
		if !cfg.API.HTTP.Enabled {
			return
		}
		if err := httpServer.Start(); err != nil {
			logger.Error().Err(err).Msg("http server stopped")
		}
	}()

	logger.Info().Int("http_port", cfg.API.HTTP.Port).Msg("API server started")

	<-ctx.Done()
	logger.Info().Msg("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_ = httpServer.Shutdown(shutdownCtx)

	logger.Info().Msg("API server stopped")
	return nil
}

func startMetricsServer(ctx context.Context, port int, logger *zerolog.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	srv := &http.Server{Addr: fmt.Sprintf(":%d", port), Handler: mux}
	go func() {
		<-ctx.Done()
		ctxShutdown, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctxShutdown)
	}()
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error().Err(err).Msg("metrics server error")
	}
}
