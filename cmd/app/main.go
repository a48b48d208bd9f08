package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"gamehub/internal/config"
	"gamehub/internal/db"
	"gamehub/internal/game"
	httpServer "gamehub/internal/http"
	"gamehub/internal/http/middleware"
	"gamehub/internal/logger"
	"gamehub/internal/repository"
	"gamehub/internal/service"
	"gamehub/internal/ws"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

var version = "dev"

func main() {
	cfg := config.Load()
	logger.Init(cfg.LogLevel, cfg.LogJSON)
	service.InitJWT(cfg.JWTSecret)

	// Persistence is optional: without DATABASE_URL the hub runs fully
	// in memory and records no match history.
	var pool *pgxpool.Pool
	if cfg.DatabaseURL != "" {
		var err error
		pool, err = db.Connect(context.Background(), cfg.DatabaseURL)
		if err != nil {
			logger.Fatal("database connect failed", "error", err)
		}
		defer pool.Close()
	} else {
		logger.Warn("DATABASE_URL not set, match history disabled")
	}

	redisDB := 0
	if v := os.Getenv("REDIS_DB"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			redisDB = n
		}
	}
	middleware.InitRedisRateLimiter(cfg.RedisURL, os.Getenv("REDIS_PASSWORD"), redisDB)

	var matches *repository.MatchRepository
	if pool != nil {
		matches = repository.NewMatchRepository(pool)
	}
	hub := ws.NewHub(game.NewFactory(), matches)

	cleanupCtx, stopCleanup := context.WithCancel(context.Background())
	defer stopCleanup()
	hub.Registry.StartCleanup(cleanupCtx, cfg.RoomIdleTTL, cfg.CleanupInterval)

	r := gin.Default()

	// CORS for browser clients on another origin.
	r.Use(func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")
		if origin != "" {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
			c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
			c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
			c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		}
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	})

	httpServer.RegisterRoutes(r, hub, pool, cfg, version)

	srv := &http.Server{
		Addr:    ":" + cfg.AppPort,
		Handler: r,
	}

	go func() {
		logger.Info("server started", "port", cfg.AppPort, "version", version)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("listen failed", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("server forced to shutdown", "error", err)
	}

	logger.Info("server exited")
}
