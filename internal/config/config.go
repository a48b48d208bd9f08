package config

import (
	"os"
	"strconv"
	"time"

	"gamehub/internal/logger"

	"github.com/joho/godotenv"
)

type Config struct {
	AppPort     string
	DatabaseURL string
	RedisURL    string
	JWTSecret   string
	LogLevel    string
	LogJSON     bool

	// Room lifecycle
	RoomIdleTTL     time.Duration
	CleanupInterval time.Duration

	// Per-identity action rate limit (actions per window)
	ActionRateLimit  int
	ActionRateWindow int
}

// Load reads configuration from the environment, with .env as a
// development convenience. DATABASE_URL and REDIS_URL are optional: the
// hub is fully in-memory, persistence and rate limiting degrade away
// when they are absent.
func Load() *Config {
	_ = godotenv.Load()

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		logger.Fatal("JWT_SECRET is not set")
	}

	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "8080"
	}

	idleTTL := 30 * time.Minute
	if v := os.Getenv("ROOM_IDLE_TTL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			idleTTL = d
		}
	}

	cleanupInterval := 5 * time.Minute
	if v := os.Getenv("CLEANUP_INTERVAL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			cleanupInterval = d
		}
	}

	rateLimit := 120
	if v := os.Getenv("ACTION_RATE_LIMIT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			rateLimit = n
		}
	}

	rateWindow := 60
	if v := os.Getenv("ACTION_RATE_WINDOW"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			rateWindow = n
		}
	}

	return &Config{
		AppPort:          port,
		DatabaseURL:      os.Getenv("DATABASE_URL"),
		RedisURL:         os.Getenv("REDIS_URL"),
		JWTSecret:        jwtSecret,
		LogLevel:         envDefault("LOG_LEVEL", "info"),
		LogJSON:          os.Getenv("LOG_JSON") == "true",
		RoomIdleTTL:      idleTTL,
		CleanupInterval:  cleanupInterval,
		ActionRateLimit:  rateLimit,
		ActionRateWindow: rateWindow,
	}
}

func envDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
