// Package app provides the dependency injection container assembling the
// application components.
package app

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"sync"

	accessDomain "github.com/scholarvault/scholarvault/internal/access/domain"
	accessService "github.com/scholarvault/scholarvault/internal/access/service"
	accountsHTTP "github.com/scholarvault/scholarvault/internal/accounts/http"
	accountsUseCase "github.com/scholarvault/scholarvault/internal/accounts/usecase"
	"github.com/scholarvault/scholarvault/internal/config"
	"github.com/scholarvault/scholarvault/internal/database"
	docsHTTP "github.com/scholarvault/scholarvault/internal/documents/http"
	docsUseCase "github.com/scholarvault/scholarvault/internal/documents/usecase"
	appHTTP "github.com/scholarvault/scholarvault/internal/http"
	"github.com/scholarvault/scholarvault/internal/metrics"
	storageService "github.com/scholarvault/scholarvault/internal/storage/service"
)

// Container holds all application dependencies and provides methods to access
// them. Components are created lazily on first access.
type Container struct {
	config *config.Config

	// Infrastructure
	logger *slog.Logger
	db     *sql.DB

	// Managers
	txManager database.TxManager

	// Metrics
	metricsProvider *metrics.Provider
	businessMetrics metrics.BusinessMetrics

	// Access control
	bearerKey         accessDomain.BearerKey
	capabilityKey     accessDomain.CapabilityKey
	bearerService     accessService.BearerService
	capabilityService accessService.CapabilityService

	// Documents
	fileStore       *storageService.BlobFileStore
	documentRepo    docsUseCase.DocumentRepository
	documentUseCase docsUseCase.DocumentUseCase
	documentHandler *docsHTTP.DocumentHandler
	fileHandler     *docsHTTP.FileHandler

	// Accounts
	userRepo     accountsUseCase.UserRepository
	userUseCase  accountsUseCase.UserUseCase
	tokenHandler *accountsHTTP.TokenHandler

	// Servers
	httpServer    *appHTTP.Server
	metricsServer *appHTTP.MetricsServer

	// Initialization flags and mutex for thread-safety
	mu                    sync.Mutex
	loggerInit            sync.Once
	dbInit                sync.Once
	txManagerInit         sync.Once
	metricsProviderInit   sync.Once
	businessMetricsInit   sync.Once
	keysInit              sync.Once
	bearerServiceInit     sync.Once
	capabilityServiceInit sync.Once
	fileStoreInit         sync.Once
	documentRepoInit      sync.Once
	documentUseCaseInit   sync.Once
	documentHandlerInit   sync.Once
	fileHandlerInit       sync.Once
	userRepoInit          sync.Once
	userUseCaseInit       sync.Once
	tokenHandlerInit      sync.Once
	httpServerInit        sync.Once
	metricsServerInit     sync.Once
	initErrors            map[string]error
}

// NewContainer creates a new dependency injection container with the provided
// configuration.
func NewContainer(cfg *config.Config) *Container {
	return &Container{
		config:     cfg,
		initErrors: make(map[string]error),
	}
}

// Config returns the application configuration.
func (c *Container) Config() *config.Config {
	return c.config
}

// Logger returns the configured logger instance.
func (c *Container) Logger() *slog.Logger {
	c.loggerInit.Do(func() {
		c.logger = c.initLogger()
	})
	return c.logger
}

// DB returns the database connection, creating it on first access.
func (c *Container) DB() (*sql.DB, error) {
	c.dbInit.Do(func() {
		db, err := c.initDB()
		if err != nil {
			c.initErrors["db"] = err
			return
		}
		c.db = db
	})
	if storedErr, exists := c.initErrors["db"]; exists {
		return nil, storedErr
	}
	return c.db, nil
}

// TxManager returns the transaction manager.
func (c *Container) TxManager() (database.TxManager, error) {
	c.txManagerInit.Do(func() {
		db, err := c.DB()
		if err != nil {
			c.initErrors["txManager"] = fmt.Errorf("failed to get database for tx manager: %w", err)
			return
		}
		c.txManager = database.NewTxManager(db)
	})
	if storedErr, exists := c.initErrors["txManager"]; exists {
		return nil, storedErr
	}
	return c.txManager, nil
}

// MetricsProvider returns the metrics provider, or nil when metrics are
// disabled.
func (c *Container) MetricsProvider() (*metrics.Provider, error) {
	if !c.config.MetricsEnabled {
		return nil, nil
	}
	c.metricsProviderInit.Do(func() {
		provider, err := metrics.NewProvider(c.config.MetricsNamespace)
		if err != nil {
			c.initErrors["metricsProvider"] = fmt.Errorf("failed to create metrics provider: %w", err)
			return
		}
		c.metricsProvider = provider
	})
	if storedErr, exists := c.initErrors["metricsProvider"]; exists {
		return nil, storedErr
	}
	return c.metricsProvider, nil
}

// BusinessMetrics returns the business metrics recorder. A no-op recorder is
// returned when metrics are disabled.
func (c *Container) BusinessMetrics() (metrics.BusinessMetrics, error) {
	c.businessMetricsInit.Do(func() {
		provider, err := c.MetricsProvider()
		if err != nil {
			c.initErrors["businessMetrics"] = err
			return
		}
		if provider == nil {
			c.businessMetrics = metrics.NewNoOpBusinessMetrics()
			return
		}
		bm, err := metrics.NewBusinessMetrics(provider.MeterProvider(), c.config.MetricsNamespace)
		if err != nil {
			c.initErrors["businessMetrics"] = fmt.Errorf("failed to create business metrics: %w", err)
			return
		}
		c.businessMetrics = bm
	})
	if storedErr, exists := c.initErrors["businessMetrics"]; exists {
		return nil, storedErr
	}
	return c.businessMetrics, nil
}

// HTTPServer returns the API server, initializing all handler dependencies.
func (c *Container) HTTPServer() (*appHTTP.Server, error) {
	c.httpServerInit.Do(func() {
		server, err := c.initHTTPServer()
		if err != nil {
			c.initErrors["httpServer"] = err
			return
		}
		c.httpServer = server
	})
	if storedErr, exists := c.initErrors["httpServer"]; exists {
		return nil, storedErr
	}
	return c.httpServer, nil
}

// MetricsServer returns the Prometheus exposition server, or nil when metrics
// are disabled.
func (c *Container) MetricsServer() (*appHTTP.MetricsServer, error) {
	if !c.config.MetricsEnabled {
		return nil, nil
	}
	c.metricsServerInit.Do(func() {
		provider, err := c.MetricsProvider()
		if err != nil {
			c.initErrors["metricsServer"] = err
			return
		}
		c.metricsServer = appHTTP.NewMetricsServer(
			c.config.ServerHost,
			c.config.MetricsPort,
			c.Logger(),
			provider,
		)
	})
	if storedErr, exists := c.initErrors["metricsServer"]; exists {
		return nil, storedErr
	}
	return c.metricsServer, nil
}

// Shutdown performs cleanup of all initialized resources.
func (c *Container) Shutdown(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	var shutdownErrors []error

	if c.metricsProvider != nil {
		if err := c.metricsProvider.Shutdown(ctx); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("metrics provider shutdown: %w", err))
		}
	}

	if c.fileStore != nil {
		if err := c.fileStore.Close(); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("file store close: %w", err))
		}
	}

	if c.db != nil {
		if err := c.db.Close(); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("database close: %w", err))
		}
	}

	if len(shutdownErrors) > 0 {
		return fmt.Errorf("shutdown errors: %v", shutdownErrors)
	}

	return nil
}

// initLogger creates a structured JSON logger based on the configured level.
func (c *Container) initLogger() *slog.Logger {
	var logLevel slog.Level
	switch c.config.LogLevel {
	case "debug":
		logLevel = slog.LevelDebug
	case "info":
		logLevel = slog.LevelInfo
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	})

	return slog.New(handler)
}

// initDB creates and configures the database connection.
func (c *Container) initDB() (*sql.DB, error) {
	db, err := database.Connect(database.Config{
		Driver:             c.config.DBDriver,
		ConnectionString:   c.config.DBConnectionString,
		MaxOpenConnections: c.config.DBMaxOpenConnections,
		MaxIdleConnections: c.config.DBMaxIdleConnections,
		ConnMaxLifetime:    c.config.DBConnMaxLifetime,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return db, nil
}

// initHTTPServer creates the API server with all its dependencies.
func (c *Container) initHTTPServer() (*appHTTP.Server, error) {
	logger := c.Logger()

	tokenHandler, err := c.TokenHandler()
	if err != nil {
		return nil, fmt.Errorf("failed to get token handler for http server: %w", err)
	}

	documentHandler, err := c.DocumentHandler()
	if err != nil {
		return nil, fmt.Errorf("failed to get document handler for http server: %w", err)
	}

	fileHandler, err := c.FileHandler()
	if err != nil {
		return nil, fmt.Errorf("failed to get file handler for http server: %w", err)
	}

	bearerService, err := c.BearerService()
	if err != nil {
		return nil, fmt.Errorf("failed to get bearer service for http server: %w", err)
	}

	rc := appHTTP.RouterConfig{
		TokenHandler:     tokenHandler,
		DocumentHandler:  documentHandler,
		FileHandler:      fileHandler,
		BearerService:    bearerService,
		CORSEnabled:      c.config.CORSEnabled,
		CORSAllowOrigins: c.config.CORSAllowOrigins,
		RateLimitEnabled: c.config.RateLimitEnabled,
		RateLimitRPS:     c.config.RateLimitRequestsPerSec,
		RateLimitBurst:   c.config.RateLimitBurst,
	}

	if provider, err := c.MetricsProvider(); err != nil {
		return nil, err
	} else if provider != nil {
		rc.MetricsMiddleware = metrics.HTTPMetricsMiddleware(provider.MeterProvider(), c.config.MetricsNamespace)
	}

	if db, err := c.DB(); err == nil {
		rc.ReadyCheck = func(ctx context.Context) error {
			return db.PingContext(ctx)
		}
	} else {
		return nil, fmt.Errorf("failed to get database for readiness check: %w", err)
	}

	server := appHTTP.NewServer(
		c.config.ServerHost,
		c.config.ServerPort,
		logger,
		rc,
	)

	return server, nil
}
