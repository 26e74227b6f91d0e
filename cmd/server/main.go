package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/dharmasatrya/fakeflight/internal/booking"
	"github.com/dharmasatrya/fakeflight/internal/config"
	"github.com/dharmasatrya/fakeflight/internal/estimate"
	"github.com/dharmasatrya/fakeflight/internal/handler"
	"github.com/dharmasatrya/fakeflight/internal/itinerary"
	"github.com/dharmasatrya/fakeflight/internal/layover"
	"github.com/dharmasatrya/fakeflight/internal/logger"
	"github.com/dharmasatrya/fakeflight/internal/options"
	"github.com/dharmasatrya/fakeflight/internal/random"
	"github.com/dharmasatrya/fakeflight/internal/ratelimit"
	"github.com/dharmasatrya/fakeflight/internal/refdata"
	"github.com/dharmasatrya/fakeflight/internal/store"
	"github.com/dharmasatrya/fakeflight/internal/timezone"
)

func main() {
	config.LoadDotEnv()
	cfg, err := config.Load()

	logCfg := logger.DefaultConfig()
	if cfg != nil {
		logCfg.Level = logger.ParseLevel(cfg.Logging.Level)
		logCfg.Console = cfg.Logging.Console
		logCfg.FilePath = cfg.Logging.FilePath
	}
	log := logger.NewFromConfig(logCfg)
	if err != nil {
		log.Fatal("Invalid configuration", "error", err)
	}

	data, err := loadReferenceData(cfg.Generator.RefdataFile)
	if err != nil {
		log.Fatal("Failed to load reference data", "error", err)
	}
	log.Info("Loaded reference data", "airports", len(data.Airports()), "airlines", len(data.Airlines()))

	ticketStore, err := openStore(cfg.Store)
	if err != nil {
		log.Fatal("Failed to open ticket store", "backend", cfg.Store.Backend, "error", err)
	}
	defer ticketStore.Close()
	log.Info("Ticket store ready", "backend", cfg.Store.Backend)

	rng := random.New(cfg.Generator.Seed)
	registry := estimate.NewRegistry(cfg.Generator.Strategy,
		estimate.NewCoordinateEstimator(data),
		estimate.NewTableEstimator(data, rng),
	)
	engine := layover.NewEngine(data, rng, cfg.Generator.LayoverSplit)
	itineraries := itinerary.NewService(data, registry, timezone.NewLocalizer(cfg.Generator.MissingTimezone), engine, rng)
	generator := options.NewGenerator(itineraries, options.Config{Timeout: cfg.Generator.OptionsTimeout})
	tickets := booking.NewService(itineraries, ticketStore)

	limiter := ratelimit.NewClientLimiter(ratelimit.RateLimitConfig{
		RequestsPerSecond: cfg.RateLimit.RequestsPerSecond,
		BurstSize:         cfg.RateLimit.Burst,
		IdleTTL:           cfg.RateLimit.IdleTTL,
	})

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.RequestID())
	e.Use(requestLogger(log))
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	e.Use(ratelimit.Middleware(limiter))

	handler.New(data, itineraries, generator, tickets, log).Register(e)

	go func() {
		log.Info("Starting fake flight server", "port", cfg.Port,
			"estimator", cfg.Generator.Strategy, "missing_timezone", cfg.Generator.MissingTimezone, "layover_split", cfg.Generator.LayoverSplit)
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server", "error", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	log.Info("Shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		log.Error("Graceful shutdown failed", "error", err)
	}
}

func loadReferenceData(path string) (refdata.Provider, error) {
	if path == "" {
		return refdata.Load()
	}
	return refdata.LoadFile(path)
}

func openStore(cfg config.StoreConfig) (store.Store, error) {
	if cfg.Backend != config.StoreRedis {
		return store.NewMemoryStore(), nil
	}
	redisCfg := store.DefaultRedisConfig()
	redisCfg.Host = cfg.RedisHost
	redisCfg.Port = cfg.RedisPort
	redisCfg.TTL = cfg.RedisTTL
	return store.NewRedisStore(redisCfg)
}

func requestLogger(log logger.Logger) echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogRemoteIP:  true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			fields := []interface{}{
				"method", v.Method,
				"uri", v.URI,
				"status", v.Status,
				"latency_ms", v.Latency.Milliseconds(),
				"request_id", v.RequestID,
				"remote_ip", v.RemoteIP,
			}
			if v.Status >= http.StatusInternalServerError {
				log.Error("request", fields...)
				return nil
			}
			log.Info("request", fields...)
			return nil
		},
	})
}
