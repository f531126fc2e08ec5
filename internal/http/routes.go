package http

import (
	"rps_arena/internal/config"
	"rps_arena/internal/http/handlers"
	"rps_arena/internal/http/middleware"
	"rps_arena/internal/repository"
	"rps_arena/internal/ws"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

func RegisterRoutes(r *gin.Engine, db *pgxpool.Pool, cfg *config.Config, version string) *ws.Hub {
	h := handlers.NewHandler(db)
	healthHandler := handlers.NewHealthHandler(db, version)

	// Health checks (no rate limiting)
	r.GET("/health", healthHandler.Health)
	r.GET("/healthz", healthHandler.Liveness)
	r.GET("/readyz", healthHandler.Readiness)

	// Read-only API over the persisted room mirror
	api := r.Group("/api/v1")
	api.Use(middleware.RedisRateLimit(cfg.APIRateLimit, cfg.APIRateWindow))
	{
		api.GET("/rooms", h.WaitingRooms)
		api.GET("/rooms/:code", h.Room)
		api.GET("/matches", h.RecentMatches)
	}

	// WebSocket game surface
	roomRepo := repository.NewRoomRepository(db)
	matchRepo := repository.NewMatchRepository(db)
	hub := ws.NewHub(roomRepo, matchRepo)
	hub.StartCleanup(cfg.RoomTTL)
	r.GET("/ws", ws.HandleWS(hub, cfg.AllowedOrigin))

	return hub
}
