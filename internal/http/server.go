// Package http assembles the API server: routing, logging, CORS, metrics
// middleware, and graceful shutdown.
package http

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"

	accessHTTP "github.com/scholarvault/scholarvault/internal/access/http"
	accessService "github.com/scholarvault/scholarvault/internal/access/service"
	accountsHTTP "github.com/scholarvault/scholarvault/internal/accounts/http"
	docsHTTP "github.com/scholarvault/scholarvault/internal/documents/http"
	"github.com/scholarvault/scholarvault/internal/httputil"
)

// RouterConfig carries the handlers and cross-cutting options for the API
// router.
type RouterConfig struct {
	TokenHandler    *accountsHTTP.TokenHandler
	DocumentHandler *docsHTTP.DocumentHandler
	FileHandler     *docsHTTP.FileHandler
	BearerService   accessService.BearerService

	// MetricsMiddleware is optional; nil disables HTTP metrics.
	MetricsMiddleware gin.HandlerFunc

	CORSEnabled      bool
	CORSAllowOrigins string

	RateLimitEnabled bool
	RateLimitRPS     float64
	RateLimitBurst   int

	// ReadyCheck reports whether downstream dependencies are reachable. Nil
	// means always ready.
	ReadyCheck func(ctx context.Context) error
}

// Server represents the API HTTP server.
type Server struct {
	server *http.Server
	logger *slog.Logger
}

// NewServer creates the API server and builds its router.
func NewServer(host string, port int, logger *slog.Logger, rc RouterConfig) *Server {
	router := setupRouter(logger, rc)

	return &Server{
		logger: logger,
		server: &http.Server{
			Addr:         fmt.Sprintf("%s:%d", host, port),
			Handler:      router,
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 60 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
	}
}

// setupRouter wires middleware and routes. The file route is deliberately
// outside the authenticated group: the delivery gate resolves its own
// credentials so signed URLs work without a bearer token.
func setupRouter(logger *slog.Logger, rc RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestid.New())
	router.Use(CustomLoggerMiddleware(logger))

	if rc.MetricsMiddleware != nil {
		router.Use(rc.MetricsMiddleware)
	}

	if corsMiddleware := createCORSMiddleware(rc.CORSEnabled, rc.CORSAllowOrigins, logger); corsMiddleware != nil {
		router.Use(corsMiddleware)
	}

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})
	router.GET("/ready", func(c *gin.Context) {
		if rc.ReadyCheck != nil {
			if err := rc.ReadyCheck(c.Request.Context()); err != nil {
				logger.Warn("readiness check failed", slog.String("error", err.Error()))
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not ready"})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})

	if rc.TokenHandler != nil {
		router.POST("/v1/auth/token", rc.TokenHandler.CreateHandler)
	}

	if rc.FileHandler != nil {
		router.GET("/v1/documents/:id/file", rc.FileHandler.DownloadHandler)
	}

	if rc.DocumentHandler != nil && rc.BearerService != nil {
		authenticated := router.Group("/v1/documents")
		authenticated.Use(accessHTTP.AuthenticationMiddleware(rc.BearerService, logger))
		if rc.RateLimitEnabled {
			authenticated.Use(accessHTTP.RateLimitMiddleware(rc.RateLimitRPS, rc.RateLimitBurst, logger))
		}
		authenticated.GET("", rc.DocumentHandler.ListHandler)
		authenticated.GET("/:id", rc.DocumentHandler.GetHandler)
		authenticated.GET("/:id/signed", rc.DocumentHandler.SignHandler)
	}

	router.NoRoute(func(c *gin.Context) {
		httputil.MakeJSONResponse(c.Writer, http.StatusNotFound, map[string]string{"error": "not found"})
	})

	return router
}

// GetHandler returns the http.Handler for testing purposes.
func (s *Server) GetHandler() http.Handler {
	return s.server.Handler
}

// Start starts the API HTTP server.
func (s *Server) Start(ctx context.Context) error {
	s.logger.Info("starting http server", slog.String("addr", s.server.Addr))

	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the API HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down http server")
	return s.server.Shutdown(ctx)
}
