package server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/yungbote/videosage-backend/internal/handlers"
	"github.com/yungbote/videosage-backend/internal/middleware"
)

type RouterConfig struct {
	AuthHandler       *handlers.AuthHandler
	AuthMiddleware    *middleware.AuthMiddleware
	UserHandler       *handlers.UserHandler
	SpaceHandler      *handlers.SpaceHandler
	ContentHandler    *handlers.ContentHandler
	GenerationHandler *handlers.GenerationHandler
	AllowOrigins      []string
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.Default()

	origins := cfg.AllowOrigins
	if len(origins) == 0 {
		origins = []string{"http://localhost:3000", "http://localhost:5173"}
	}
	router.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
	}))

	// Public
	router.GET("/healthcheck", handlers.HealthCheck)
	router.POST("/register", cfg.AuthHandler.Register)
	router.POST("/login", cfg.AuthHandler.Login)
	router.POST("/refresh", cfg.AuthHandler.Refresh)

	// Protected
	protected := router.Group("/")
	protected.Use(cfg.AuthMiddleware.RequireAuth())

	// Auth
	protected.POST("/logout", cfg.AuthHandler.Logout)
	// User
	protected.GET("/user", cfg.UserHandler.GetMe)
	protected.DELETE("/user", cfg.UserHandler.DeleteMe)
	// Spaces
	protected.POST("/spaces", cfg.SpaceHandler.Create)
	protected.GET("/spaces", cfg.SpaceHandler.List)
	protected.GET("/spaces/:space_id", cfg.SpaceHandler.Get)
	protected.PUT("/spaces/:space_id", cfg.SpaceHandler.Update)
	protected.DELETE("/spaces/:space_id", cfg.SpaceHandler.Delete)
	// Contents
	protected.POST("/spaces/:space_id/contents/youtube", cfg.ContentHandler.IngestYouTube)
	protected.POST("/spaces/:space_id/contents/upload", cfg.ContentHandler.IngestUpload)
	protected.GET("/spaces/:space_id/contents", cfg.ContentHandler.List)
	protected.GET("/contents/:content_id", cfg.ContentHandler.Get)
	protected.DELETE("/contents/:content_id", cfg.ContentHandler.Delete)
	// Generations
	protected.GET("/contents/:content_id/generations", cfg.GenerationHandler.List)
	protected.POST("/contents/:content_id/generations/:kind", cfg.GenerationHandler.GetOrGenerate)
	protected.POST("/contents/:content_id/chat", cfg.GenerationHandler.Chat)

	return router
}
