package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/excel-analyzer-api/internal/config"
	"github.com/excel-analyzer-api/internal/models"
	"github.com/excel-analyzer-api/internal/service"
	"github.com/excel-analyzer-api/internal/storage"
)

// ctxAccount is the gin context key holding the authenticated account.
const ctxAccount = "account"

// NewRouter creates and configures the Gin router
func NewRouter(services *service.Services, session *storage.Session, cfg *config.Config, log zerolog.Logger) *gin.Engine {
	// Set Gin mode
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Middleware
	router.Use(recoveryMiddleware(log))
	router.Use(loggingMiddleware(log))
	router.Use(corsMiddleware())

	// Handlers
	authHandler := NewAuthHandler(services, session, log)
	uploadHandler := NewUploadHandler(services, session, cfg, log)
	chartHandler := NewChartHandler(services, log)
	adminHandler := NewAdminHandler(services, log)

	// Health check
	router.GET("/health", healthCheck)

	anyRole := []models.Role{models.RoleUser, models.RoleAdmin, models.RoleSuperAdmin}

	// API v1
	v1 := router.Group("/v1")
	{
		auth := v1.Group("/auth")
		{
			auth.POST("/signup", authHandler.Signup)
			auth.POST("/login", authHandler.Login)
			auth.POST("/logout", requireRole(session, anyRole...), authHandler.Logout)
			auth.GET("/me", requireRole(session, anyRole...), authHandler.Me)
		}

		uploads := v1.Group("/uploads", requireRole(session, anyRole...))
		{
			uploads.POST("", uploadHandler.Create)
			uploads.GET("", uploadHandler.History)
		}

		v1.POST("/charts", requireRole(session, anyRole...), chartHandler.Create)

		v1.POST("/admin-requests", requireRole(session, models.RoleUser), adminHandler.CreateRequest)

		admin := v1.Group("/admin", requireRole(session, models.RoleAdmin, models.RoleSuperAdmin))
		{
			admin.GET("/stats", adminHandler.AdminStats)
			admin.GET("/users", adminHandler.RegularUsers)
			admin.GET("/uploads", uploadHandler.Recent)
		}

		super := v1.Group("/superadmin", requireRole(session, models.RoleSuperAdmin))
		{
			super.GET("/stats", adminHandler.SuperAdminStats)
			super.GET("/users", adminHandler.ManagedUsers)
			super.GET("/activity", adminHandler.Activity)
			super.GET("/requests", adminHandler.PendingRequests)
			super.POST("/requests/:request_id/approve", adminHandler.Approve)
			super.POST("/requests/:request_id/reject", adminHandler.Reject)
			super.POST("/users/:user_id/demote", adminHandler.Demote)
		}
	}

	return router
}

// healthCheck returns the health status
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"timestamp": time.Now().Format(time.RFC3339),
		"service":   "excel-analyzer-api",
	})
}

// requireRole gates a route on the active session holding one of the
// allowed roles. 401 when logged out, 403 on a role mismatch.
func requireRole(session *storage.Session, roles ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		acct := session.Active()
		if acct == nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "not logged in"})
			c.Abort()
			return
		}

		for _, role := range roles {
			if acct.Role == role {
				c.Set(ctxAccount, acct)
				c.Next()
				return
			}
		}

		c.JSON(http.StatusForbidden, gin.H{
			"error":     "insufficient permissions",
			"user_role": acct.Role,
		})
		c.Abort()
	}
}

// activeAccount returns the account set by requireRole.
func activeAccount(c *gin.Context) *models.Account {
	return c.MustGet(ctxAccount).(*models.Account)
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
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
