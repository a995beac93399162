// Package server wires configuration, storage, providers, services, and the
// HTTP surface into one runnable unit.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"chainlink-service/internal/app/picks"
	"chainlink-service/internal/app/schedule"
	"chainlink-service/internal/app/scoreboard"
	"chainlink-service/internal/app/settlement"
	"chainlink-service/internal/app/streaks"
	"chainlink-service/internal/cache"
	"chainlink-service/internal/config"
	"chainlink-service/internal/cron"
	"chainlink-service/internal/docstore"
	httpserver "chainlink-service/internal/http"
	"chainlink-service/internal/http/handlers"
	"chainlink-service/internal/http/middleware"
	"chainlink-service/internal/logging"
	"chainlink-service/internal/metrics"
	"chainlink-service/internal/providers"
	"chainlink-service/internal/store"
)

var metricsSetup = metrics.Setup

// Server owns every long-lived component and their shutdown order.
type Server struct {
	cfg      config.Config
	logger   *slog.Logger
	metrics  *metrics.Recorder
	provider providers.SportsProvider

	httpServer    httpServer
	metricsServer httpServer
	scheduler     *cron.Scheduler
	metricsStop   func(context.Context) error
	closers       []func(context.Context) error
}

// New assembles a server from configuration. Storage backends left
// unconfigured fall back to in-memory implementations so a bare local run
// needs no external services.
func New(ctx context.Context, cfg config.Config, logger *slog.Logger) (*Server, error) {
	recorder, metricsSrv, metricsShutdown := buildMetrics(cfg, logger)

	var closers []func(context.Context) error

	st, storeCloser, err := buildStore(cfg, logger)
	if err != nil {
		return nil, err
	}
	if storeCloser != nil {
		closers = append(closers, storeCloser)
	}

	matchupCache, cacheCloser, err := buildCache(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}
	if cacheCloser != nil {
		closers = append(closers, cacheCloser)
	}

	publisher, publisherCloser, err := buildPublisher(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}
	if publisherCloser != nil {
		closers = append(closers, publisherCloser)
	}

	provider := buildProvider(cfg, logger, recorder)

	settler := settlement.NewService(st, publisher, recorder, logger, cfg.Campaign)
	scheduleSvc := schedule.NewService(provider, st, matchupCache, recorder, logger)
	scoreboardSvc := scoreboard.NewService(provider, matchupCache, settler, recorder, logger)
	pickSvc := picks.NewService(st, logger, cfg.Campaign)
	streakSvc := streaks.NewService(st, cfg.Campaign)

	var scheduler *cron.Scheduler
	var statusFn func() cron.Status
	if cfg.Scheduler.Enabled {
		scheduler = cron.New(scheduleSvc, scoreboardSvc, cfg.Leagues, cron.Config{
			ScheduleSpec:   cfg.Scheduler.ScheduleSpec,
			ScoreboardSpec: cfg.Scheduler.ScoreboardSpec,
		}, logger)
		statusFn = scheduler.Status
	}

	httpSrv := buildHTTPServer(cfg, st, matchupCache, pickSvc, streakSvc, scheduleSvc, scoreboardSvc, logger, recorder, statusFn)

	return &Server{
		cfg:           cfg,
		logger:        logger,
		metrics:       recorder,
		provider:      provider,
		httpServer:    httpSrv,
		metricsServer: metricsSrv,
		scheduler:     scheduler,
		metricsStop:   metricsShutdown,
		closers:       closers,
	}, nil
}

func buildStore(cfg config.Config, logger *slog.Logger) (store.Store, func(context.Context) error, error) {
	if cfg.Storage.PostgresDSN == "" {
		logging.Info(logger, "no postgres configured, using in-memory store")
		return store.NewMemoryStore(), nil, nil
	}
	gormStore, err := store.OpenGorm(cfg.Storage.PostgresDSN)
	if err != nil {
		return nil, nil, fmt.Errorf("open postgres store: %w", err)
	}
	return gormStore, func(context.Context) error { return gormStore.Close() }, nil
}

func buildCache(ctx context.Context, cfg config.Config, logger *slog.Logger) (cache.MatchupCache, func(context.Context) error, error) {
	if cfg.Storage.RedisAddr == "" {
		logging.Info(logger, "no redis configured, using in-memory cache")
		return cache.NewMemoryCache(), nil, nil
	}
	redisCache, err := cache.NewRedisCache(ctx, cache.Config{
		Addr:     cfg.Storage.RedisAddr,
		Password: cfg.Storage.RedisPassword,
		DB:       cfg.Storage.RedisDB,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("open redis cache: %w", err)
	}
	return redisCache, func(context.Context) error { return redisCache.Close() }, nil
}

func buildPublisher(ctx context.Context, cfg config.Config, logger *slog.Logger) (docstore.Publisher, func(context.Context) error, error) {
	if cfg.Storage.MongoURI == "" {
		logging.Info(logger, "no document store configured, results replica disabled")
		return docstore.NopPublisher{}, nil, nil
	}
	publisher, err := docstore.NewMongoPublisher(ctx, docstore.MongoConfig{
		URI:      cfg.Storage.MongoURI,
		Database: cfg.Storage.MongoDatabase,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("open document store: %w", err)
	}
	return publisher, publisher.Close, nil
}

func buildHTTPServer(cfg config.Config, st store.Store, matchupCache cache.MatchupCache, pickSvc *picks.Service, streakSvc *streaks.Service, scheduleSvc *schedule.Service, scoreboardSvc *scoreboard.Service, logger *slog.Logger, recorder *metrics.Recorder, statusFn func() cron.Status) httpServer {
	handler := handlers.NewHandler(pickSvc, streakSvc, st, matchupCache, cfg.Leagues, logger, statusFn)
	cronHandler := handlers.NewCronHandler(scheduleSvc, scoreboardSvc, cfg.CronSecret, cfg.Leagues, logger)
	adminHandler := handlers.NewAdminHandler(pickSvc, cfg.AdminToken, logger)
	router := httpserver.NewRouter(handler, cronHandler, adminHandler)

	if logger == nil {
		logger = logging.NewLogger(logging.Config{})
	}
	wrapped := middleware.Logging(logger, recorder, router)

	return netHTTPServer{srv: &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      wrapped,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		IdleTimeout:  idleTimeout,
	}}
}

func buildMetrics(cfg config.Config, logger *slog.Logger) (*metrics.Recorder, httpServer, func(context.Context) error) {
	recCfg := metrics.TelemetryConfig{
		Enabled:      cfg.Metrics.Enabled,
		Port:         cfg.Metrics.Port,
		ServiceName:  cfg.Metrics.ServiceName,
		OtlpEndpoint: cfg.Metrics.OtlpEndpoint,
		OtlpInsecure: cfg.Metrics.OtlpInsecure,
	}

	rec, handler, shutdown, err := metricsSetup(context.Background(), recCfg)
	if err != nil {
		logging.Warn(logger, "metrics setup failed, continuing without telemetry", "err", err)
		return metrics.NewRecorder(), nil, nil
	}

	var metricsSrv httpServer
	if handler != nil && recCfg.Enabled {
		metricsSrv = netHTTPServer{srv: &http.Server{
			Addr:    ":" + recCfg.Port,
			Handler: handler,
		}}
	}
	return rec, metricsSrv, shutdown
}

// Run starts the scheduler and HTTP servers, then waits for context
// cancellation to shut down gracefully.
func (s *Server) Run(ctx context.Context, stop context.CancelFunc) {
	s.startMetrics()
	s.startServer(stop)
	if s.scheduler != nil {
		if err := s.scheduler.Start(ctx); err != nil {
			logging.Error(s.logger, "scheduler start failed", err)
		}
	}

	<-ctx.Done()
	logging.Info(s.logger, "shutdown signal received")
	s.gracefulShutdown()
}

func (s *Server) startServer(stop context.CancelFunc) {
	launchServer("http", s.httpServer, s.logger, func(error) {
		if stop != nil {
			stop()
		}
	})
}

func (s *Server) startMetrics() {
	if s.metricsServer == nil {
		return
	}
	launchServer("metrics", s.metricsServer, s.logger, nil)
}

func (s *Server) gracefulShutdown() {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if s.scheduler != nil {
		if err := s.scheduler.Stop(shutdownCtx); err != nil {
			logging.Error(s.logger, "failed to stop scheduler", err)
		}
	}

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		logging.Error(s.logger, "graceful shutdown failed", err)
	}

	if s.metricsStop != nil {
		if err := s.metricsStop(shutdownCtx); err != nil {
			logging.Warn(s.logger, "metrics shutdown failed", "error", err)
		}
	}
	if s.metricsServer != nil {
		if err := s.metricsServer.Shutdown(shutdownCtx); err != nil {
			logging.Warn(s.logger, "metrics server shutdown failed", "error", err)
		}
	}

	// Stop rate-limited providers to avoid ticker leaks when present.
	if rl, ok := s.provider.(interface{ Close() }); ok {
		rl.Close()
	}

	for _, closeFn := range s.closers {
		if err := closeFn(shutdownCtx); err != nil {
			logging.Warn(s.logger, "component close failed", "error", err)
		}
	}

	logging.Info(s.logger, "shutdown complete")
}

func launchServer(name string, srv httpServer, logger *slog.Logger, onError func(error)) {
	go func() {
		logging.Info(logger, "starting "+name+" server", slog.String("addr", srv.Addr()))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logging.Warn(logger, name+" server failed", "error", err)
			if onError != nil {
				onError(err)
			}
		}
	}()
}

// Handler exposes the HTTP handler (useful for tests).
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler()
}
