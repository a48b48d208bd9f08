package http

import (
	"os"
	"strconv"
	"time"

	"gamehub/internal/config"
	"gamehub/internal/http/handlers"
	"gamehub/internal/http/middleware"
	"gamehub/internal/repository"
	"gamehub/internal/ws"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RegisterRoutes wires the HTTP surface: guest auth, lobby listings,
// match history, probes and the websocket endpoint.
func RegisterRoutes(r *gin.Engine, hub *ws.Hub, db *pgxpool.Pool, cfg *config.Config, version string) {
	var matches *repository.MatchRepository
	if db != nil {
		matches = repository.NewMatchRepository(db)
	}
	h := handlers.NewHandler(hub.Registry, matches)
	healthHandler := handlers.NewHealthHandler(db, hub.Registry.Count, version)

	middleware.RegisterRoomsGauge(hub.Registry.Count)

	apiRateLimit := 60
	if v := os.Getenv("API_RATE_LIMIT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			apiRateLimit = n
		}
	}
	apiRateWindow := time.Minute
	if v := os.Getenv("API_RATE_WINDOW_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			apiRateWindow = time.Duration(n) * time.Second
		}
	}

	authRateLimit := 10
	if v := os.Getenv("AUTH_RATE_LIMIT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			authRateLimit = n
		}
	}

	// Probes and metrics sit outside the rate limiters.
	r.GET("/health", healthHandler.Health)
	r.GET("/healthz", healthHandler.Liveness)
	r.GET("/readyz", healthHandler.Readiness)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	playerRL := middleware.PlayerRateLimit(cfg.ActionRateLimit,
		time.Duration(cfg.ActionRateWindow)*time.Second)

	v1 := r.Group("/api/v1")
	v1.Use(middleware.RedisRateLimit(apiRateLimit, apiRateWindow))
	{
		v1.POST("/auth/guest", middleware.RedisRateLimit(authRateLimit, apiRateWindow), h.GuestAuth)
		v1.GET("/me", middleware.JWT(), h.Me)

		v1.GET("/games", h.ListGames)
		v1.GET("/rooms", middleware.JWT(), playerRL, h.ListRooms)
		v1.GET("/rooms/:code", middleware.JWT(), h.GetRoom)

		v1.GET("/matches", h.RecentMatches)
		v1.GET("/leaderboard", h.Leaderboard)
	}

	r.GET("/ws", ws.HandleWS(hub))
}
