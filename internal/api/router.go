package api

import (
	"net/http"
	"time"

	"github.com/blog-article-api/internal/config"
	"github.com/blog-article-api/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// identityKey is the gin context key holding the verified caller id
const identityKey = "userID"

// NewRouter creates and configures the Gin router
func NewRouter(services *service.Services, cfg *config.Config, log zerolog.Logger) *gin.Engine {
	// Set Gin mode
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Middleware
	router.Use(recoveryMiddleware(log))
	router.Use(loggingMiddleware(log))
	router.Use(corsMiddleware())
	router.Use(identityMiddleware())

	// Handlers
	articleHandler := NewArticleHandler(services, cfg, log)
	commentHandler := NewCommentHandler(services, log)
	profileHandler := NewProfileHandler(services, log)

	// Health check
	router.GET("/health", healthCheck)

	api := router.Group("/api")
	{
		articles := api.Group("/articles")
		{
			articles.GET("", articleHandler.GetArticles)
			articles.GET("/feed", requireIdentity(), articleHandler.GetFeed)
			articles.GET("/:slug", articleHandler.GetArticle)
			articles.POST("", requireIdentity(), articleHandler.Create)
			articles.PUT("/:slug", requireIdentity(), articleHandler.Update)
			articles.DELETE("/:slug", requireIdentity(), articleHandler.Delete)

			articles.POST("/:slug/favorite", requireIdentity(), articleHandler.Favorite)
			articles.DELETE("/:slug/favorite", requireIdentity(), articleHandler.Unfavorite)

			articles.POST("/:slug/comments", requireIdentity(), commentHandler.AddComment)
			articles.GET("/:slug/comments", commentHandler.GetComments)
			articles.DELETE("/:slug/comments/:id", requireIdentity(), commentHandler.DeleteComment)
		}

		profiles := api.Group("/profiles")
		{
			profiles.GET("/:username", profileHandler.GetProfile)
			profiles.POST("/:username/follow", requireIdentity(), profileHandler.Follow)
			profiles.DELETE("/:username/follow", requireIdentity(), profileHandler.Unfollow)
		}
	}

	return router
}

// healthCheck returns the health status
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"timestamp": time.Now().Format(time.RFC3339),
		"service":   "blog-article-api",
	})
}

// identityMiddleware extracts the caller identity already verified by the
// upstream auth collaborator. Credentials are never validated here; the
// gateway strips any client-supplied X-User-ID before setting its own.
func identityMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if id := c.GetHeader("X-User-ID"); id != "" {
			c.Set(identityKey, id)
		}
		c.Next()
	}
}

// requireIdentity rejects anonymous callers on authenticated routes
func requireIdentity() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString(identityKey) == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}
		c.Next()
	}
}

// viewerID returns the caller id, "" for anonymous viewers
func viewerID(c *gin.Context) string {
	return c.GetString(identityKey)
}

// recoveryMiddleware handles panics
func recoveryMiddleware(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				log.Error().Interface("error", err).Msg("Panic recovered")
				c.JSON(http.StatusInternalServerError, gin.H{
					"error": "Internal server error",
				})
				c.Abort()
			}
		}()
		c.Next()
	}
}

// loggingMiddleware logs requests
func loggingMiddleware(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		duration := time.Since(start)
		statusCode := c.Writer.Status()

		event := log.Info()
		if statusCode >= 400 {
			event = log.Warn()
		}
		if statusCode >= 500 {
			event = log.Error()
		}

		event.
			Str("method", c.Request.Method).
			Str("path", path).
			Int("status", statusCode).
			Dur("duration", duration).
			Str("client_ip", c.ClientIP()).
			Msg("Request completed")
	}
}

// corsMiddleware handles CORS
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, X-User-ID")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
