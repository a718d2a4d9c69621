package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	httpAdapter "github.com/iho/gobank/internal/adapter/http"
	"github.com/iho/gobank/internal/adapter/http/handler"
	"github.com/iho/gobank/internal/adapter/http/middleware"
	"github.com/iho/gobank/internal/adapter/repository/memory"
	redisRepo "github.com/iho/gobank/internal/adapter/repository/redis"
	"github.com/iho/gobank/internal/infrastructure/config"
	"github.com/iho/gobank/internal/infrastructure/logger"
	"github.com/iho/gobank/internal/infrastructure/metrics"
	"github.com/iho/gobank/internal/infrastructure/redis"
	"github.com/iho/gobank/internal/usecase"
)

const rateLimitIdle = 10 * time.Minute

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Setup logger
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = logger.New(logger.Config{
		Level:   cfg.LogLevel,
		Format:  cfg.LogFormat,
		Service: "gobank-server",
		Output:  os.Stderr,
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	srv, err := newServer(ctx, cfg, log.Logger, prometheus.DefaultRegisterer)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize server")
	}
	defer srv.close()

	if err := srv.run(ctx); err != nil {
		log.Fatal().Err(err).Msg("server failed")
	}

	log.Info().Msg("server stopped")
}

type server struct {
	cfg         *config.Config
	logger      zerolog.Logger
	http        *http.Server
	redisClient *goredis.Client
	limiter     *middleware.RateLimiter
}

func newServer(ctx context.Context, cfg *config.Config, logger zerolog.Logger, reg prometheus.Registerer) (*server, error) {
	srv := &server{cfg: cfg, logger: logger}

	// In-memory registry
	store := memory.NewStore()
	txManager := memory.NewTxManager(store)
	accountRepo := memory.NewAccountRepository(store)

	var recorder usecase.Recorder
	if cfg.MetricsEnabled {
		recorder = metrics.New(reg)
	}

	// Initialize use cases
	accountUC := usecase.NewAccountUseCase(txManager, accountRepo, recorder, logger).
		WithDefaultInterestRate(cfg.DefaultInterestRate)
	transactionUC := usecase.NewTransactionUseCase(txManager, accountRepo, memory.NewULIDGenerator(), recorder, logger)

	routerCfg := httpAdapter.RouterConfig{
		AccountHandler:     handler.NewAccountHandler(accountUC),
		TransactionHandler: handler.NewTransactionHandler(transactionUC),
		IdempotencyTTL:     cfg.IdempotencyTTL,
		MetricsEnabled:     cfg.MetricsEnabled,
		Logger:             logger,
	}

	// Redis is optional and only backs idempotency
	if cfg.RedisURL != "" {
		client, err := redis.NewClient(ctx, cfg.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("connect to redis: %w", err)
		}
		srv.redisClient = client
		routerCfg.IdempotencyStore = redisRepo.NewIdempotencyStore(client)
		logger.Info().Msg("connected to redis")
	}
	routerCfg.HealthHandler = handler.NewHealthHandler(store, srv.redisClient)

	if cfg.RateLimitRPS > 0 {
		srv.limiter = middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
		routerCfg.RateLimiter = srv.limiter
	}

	srv.http = &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:      httpAdapter.NewRouter(routerCfg),
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	return srv, nil
}

// run serves until ctx is done, then shuts down gracefully.
func (s *server) run(ctx context.Context) error {
	if s.limiter != nil {
		go s.limiter.RunCleanup(ctx, time.Minute, rateLimitIdle)
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info().Str("port", s.cfg.HTTPPort).Msg("starting server")
		if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info().Msg("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.cfg.HTTPShutdownTimeout)
	defer cancel()

	if err := s.http.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	return <-errCh
}

func (s *server) close() {
	if s.redisClient != nil {
		_ = s.redisClient.Close()
	}
}
