package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/extra/redisotel/v9"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/noah-isme/backend-cjenovnik/internal/catalog"
	"github.com/noah-isme/backend-cjenovnik/internal/config"
	"github.com/noah-isme/backend-cjenovnik/internal/health"
	"github.com/noah-isme/backend-cjenovnik/internal/obs"
	"github.com/noah-isme/backend-cjenovnik/internal/optimize"
	"github.com/noah-isme/backend-cjenovnik/internal/prices"
	"github.com/noah-isme/backend-cjenovnik/internal/ratelimit"
	"github.com/noah-isme/backend-cjenovnik/internal/shoplist"
)

const serviceName = "cjenovnik-api"

func main() {
	cfg, err := config.Load()
	if err != nil {
		bootLogger := zerolog.New(os.Stderr)
		bootLogger.Fatal().Err(err).Msg("load config")
	}
	logger := obs.NewLogger(cfg.LogFormat, cfg.LogLevel).With().Str("service", serviceName).Logger()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracer, err := obs.InitTracer(ctx, obs.TracingConfig{
		ServiceName:   serviceName,
		Endpoint:      cfg.OTLPEndpoint,
		SamplingRatio: cfg.TraceSampleRatio,
		Environment:   cfg.AppEnv,
	})
	if err != nil {
		logger.Warn().Err(err).Msg("tracing disabled")
	} else {
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := shutdownTracer(shutdownCtx); err != nil {
				logger.Warn().Err(err).Msg("tracer shutdown")
			}
		}()
	}

	if cfg.RunMigrations {
		if err := runMigrations(cfg.DatabaseURL); err != nil {
			logger.Fatal().Err(err).Msg("run migrations")
		}
		logger.Info().Msg("migrations applied")
	}

	pool, err := newPool(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Fatal().Err(err).Msg("connect postgres")
	}
	defer pool.Close()

	redisClient, err := newRedis(cfg.RedisURL)
	if err != nil {
		logger.Fatal().Err(err).Msg("connect redis")
	}
	defer redisClient.Close()

	httpMetrics := obs.NewHTTPMetrics("cjenovnik", nil, nil)
	optimizeMetrics := obs.NewOptimizeMetrics("cjenovnik", nil)

	priceSource := prices.NewSource(&prices.PgSource{Pool: pool}, redisClient, cfg.PriceCacheTTL)

	catalogCache := catalog.NewCache(redisClient, cfg.CatalogCacheTTL)
	catalogSvc := catalog.NewService(&catalog.PgQueries{Pool: pool}, catalogCache, cfg.CatalogSearchLimit, cfg.PopularLimit)
	catalogHandlers := catalog.NewHandlers(catalogSvc)

	listStore := shoplist.NewStore(redisClient, cfg.ListTTL)
	listSvc := shoplist.NewService(listStore, priceSource, optimize.Money(cfg.SavingsThresholdMinor), optimizeMetrics)
	listHandlers := shoplist.NewHandlers(listSvc)

	limiter := ratelimit.NewSlidingWindow(redisClient, "rl:optimize:", cfg.OptimizeRateWindow, cfg.OptimizeRateMax)
	limit := ratelimit.Middleware(limiter, logger)

	healthHandler := health.Handler{
		DB:    health.PoolPinger(pool),
		Redis: health.RedisPinger(redisClient),
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(obs.TracingMiddleware)
	r.Use(obs.HTTPObs{Metrics: httpMetrics}.Middleware)
	r.Use(obs.RequestLogger{Logger: logger}.Middleware)
	if len(cfg.CORSAllowedOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: cfg.CORSAllowedOrigins,
			AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete},
			AllowedHeaders: []string{"Accept", "Content-Type"},
			MaxAge:         300,
		}))
	}

	r.Get("/health/live", healthHandler.Live)
	r.Get("/health/ready", healthHandler.Ready)
	r.Handle("/metrics", promhttp.Handler())
	r.Route("/api/v1", func(api chi.Router) {
		catalogHandlers.Mount(api)
		listHandlers.Mount(api, limit)
	})

	srv := &http.Server{
		Addr:              cfg.HTTPAddr(),
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", srv.Addr).Msg("http server listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		logger.Info().Msg("shutdown signal received")
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("http server")
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("http shutdown")
	}
	logger.Info().Msg("server stopped")
}

func newPool(ctx context.Context, url string) (*pgxpool.Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(url)
	if err != nil {
		return nil, err
	}
	poolCfg.ConnConfig.Tracer = obs.PGXTracer{}
	poolCfg.ConnConfig.RuntimeParams["application_name"] = serviceName
	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, err
	}
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, err
	}
	return pool, nil
}

func newRedis(url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, err
	}
	client := redis.NewClient(opts)
	if err := redisotel.InstrumentTracing(client); err != nil {
		return nil, err
	}
	return client, nil
}

func runMigrations(dbURL string) error {
	m, err := migrate.New("file://migrations", dbURL)
	if err != nil {
		return err
	}
	defer m.Close()
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}
	return nil
}
