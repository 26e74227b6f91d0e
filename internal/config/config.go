package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"

	"github.com/dharmasatrya/fakeflight/internal/estimate"
	"github.com/dharmasatrya/fakeflight/internal/layover"
	"github.com/dharmasatrya/fakeflight/internal/timezone"
)

const (
	StoreMemory = "memory"
	StoreRedis  = "redis"
)

type Config struct {
	Port      string
	Logging   LoggingConfig
	Store     StoreConfig
	RateLimit RateLimitConfig
	Generator GeneratorConfig
}

type LoggingConfig struct {
	Level    string
	Console  bool
	FilePath string
}

type StoreConfig struct {
	Backend   string
	RedisHost string
	RedisPort string
	RedisTTL  time.Duration
}

type RateLimitConfig struct {
	RequestsPerSecond float64
	Burst             int
	// Clients idle this long are forgotten.
	IdleTTL time.Duration
}

type GeneratorConfig struct {
	MissingTimezone timezone.Policy
	Strategy        estimate.Strategy
	LayoverSplit    layover.SplitMode
	// Zero seeds from the clock.
	Seed           int64
	RefdataFile    string
	OptionsTimeout time.Duration
}

// LoadDotEnv reads .env files into the environment when present. Variables
// already set win.
func LoadDotEnv(files ...string) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		_ = godotenv.Load(f)
	}
}

func Load() (*Config, error) {
	cfg := &Config{
		Port: getEnv("PORT", "8080"),
		Logging: LoggingConfig{
			Level:    getEnv("LOG_LEVEL", "info"),
			Console:  getEnvBool("LOG_CONSOLE", true),
			FilePath: getEnv("LOG_FILE", ""),
		},
		Store: StoreConfig{
			Backend:   strings.ToLower(getEnv("STORE_BACKEND", StoreMemory)),
			RedisHost: getEnv("REDIS_HOST", "localhost"),
			RedisPort: getEnv("REDIS_PORT", "6379"),
			RedisTTL:  getEnvDuration("REDIS_TTL", 24*time.Hour),
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: getEnvFloat("RATE_LIMIT_RPS", 10),
			Burst:             getEnvInt("RATE_LIMIT_BURST", 20),
			IdleTTL:           getEnvDuration("RATE_LIMIT_IDLE_TTL", 10*time.Minute),
		},
		Generator: GeneratorConfig{
			Seed:           int64(getEnvInt("RANDOM_SEED", 0)),
			RefdataFile:    getEnv("REFDATA_FILE", ""),
			OptionsTimeout: getEnvDuration("OPTIONS_TIMEOUT", 2*time.Second),
		},
	}

	var err error
	if cfg.Generator.MissingTimezone, err = timezone.ParsePolicy(getEnv("ON_MISSING_TIMEZONE", string(timezone.PolicyFail))); err != nil {
		return nil, errors.Wrap(err, "ON_MISSING_TIMEZONE")
	}
	if cfg.Generator.Strategy, err = estimate.ParseStrategy(getEnv("ESTIMATOR_STRATEGY", string(estimate.StrategyCoordinate))); err != nil {
		return nil, errors.Wrap(err, "ESTIMATOR_STRATEGY")
	}
	if cfg.Generator.LayoverSplit, err = layover.ParseSplitMode(getEnv("LAYOVER_SPLIT", string(layover.SplitDistance))); err != nil {
		return nil, errors.Wrap(err, "LAYOVER_SPLIT")
	}
	if cfg.Store.Backend != StoreMemory && cfg.Store.Backend != StoreRedis {
		return nil, errors.Errorf("STORE_BACKEND: unknown backend %q", cfg.Store.Backend)
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value == "true" || value == "1" || value == "yes"
}

func getEnvInt(key string, defaultValue int) int {
	value, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvFloat(key string, defaultValue float64) float64 {
	value, err := strconv.ParseFloat(os.Getenv(key), 64)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	duration, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}
	return duration
}
