package http

import (
	"time"

	"todai/internal/config"
	"todai/internal/http/handlers"
	"todai/internal/http/middleware"
	"todai/internal/repository"
	"todai/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

func RegisterRoutes(r *gin.Engine, db *pgxpool.Pool, cfg *config.Config) {
	repo := repository.NewTaskRepository(db)
	svc := service.NewTaskService(repo)
	h := handlers.NewHandler(svc)
	healthHandler := handlers.NewHealthHandler(db)

	// Probes (no rate limiting)
	r.GET("/healthz", healthHandler.Liveness)
	r.GET("/readyz", healthHandler.Readiness)

	api := r.Group("/api")
	api.Use(middleware.RedisRateLimit(cfg.APIRateLimit, time.Duration(cfg.APIRateWindow)*time.Second))

	api.GET("/health", healthHandler.Health)

	api.GET("/tasks", h.ListTasks)
	api.POST("/tasks", h.CreateTask)
	api.GET("/tasks/:id", h.GetTask)
	api.PUT("/tasks/:id", h.UpdateTask)
	api.DELETE("/tasks/:id", h.DeleteTask)
}
