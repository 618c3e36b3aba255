package server

import (
	"log/slog"
	"net/http"

	"github.com/alkime/jailu/internal/config"
	"github.com/alkime/jailu/internal/prompt"
	"github.com/alkime/jailu/internal/reformulate"
	"github.com/alkime/jailu/internal/tone"
	"github.com/gin-contrib/static"
	"github.com/gin-gonic/gin"
)

// Server represents the HTTP server
type Server struct {
	config   *config.Config
	logger   *slog.Logger
	router   *gin.Engine
	gen      prompt.Generator
	tones    *tone.Store
	sessions *sessions
}

// Option configures a Server.
type Option func(*Server)

// WithClock sets the clock used by reformulation sessions.
func WithClock(clock reformulate.Clock) Option {
	return func(s *Server) {
		s.sessions.clock = clock
	}
}

// New creates a new Server instance
func New(cfg *config.Config, gen prompt.Generator, tones *tone.Store, logger *slog.Logger, opts ...Option) *Server {
	// Set Gin mode based on environment
	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	// Create router; requests are logged through slog instead of gin's logger
	router := gin.New()
	router.Use(gin.Recovery(), requestContext(logger))

	// Configure proxy trust for production (Fly.io)
	if cfg.Env == config.EnvProduction {
		router.TrustedPlatform = gin.PlatformFlyIO
		logger.Debug("Configured trusted platform", "platform", "fly.io")
	}
	if err := router.SetTrustedProxies(cfg.TrustedProxies); err != nil {
		logger.Error("Failed to set trusted proxies", "error", err)
	}

	server := &Server{
		config:   cfg,
		logger:   logger,
		router:   router,
		gen:      gen,
		tones:    tones,
		sessions: newSessions(gen, cfg.SessionIdleTTL, logger),
	}
	for _, opt := range opts {
		opt(server)
	}

	// Setup middleware and routes
	setupSecurityMiddleware(router, cfg, logger)
	server.setupRoutes()

	go server.sessions.reapEvery(server.sessions.idleTTL / 2)

	return server
}

// Router returns the HTTP handler, for tests and embedding.
func (s *Server) Router() *gin.Engine {
	return s.router
}

// Close ends every reformulation session.
func (s *Server) Close() {
	s.sessions.closeAll()
}

// Run starts the HTTP server
func Run(s *Server) error {
	s.logger.Info("Server listening", "port", s.config.Port)
	return s.router.Run(":" + s.config.Port)
}

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes() {
	// Health check endpoint
	s.router.GET("/health", s.handleHealth)

	api := s.router.Group("/api/v1")
	{
		api.GET("/languages", s.handleLanguages)

		api.GET("/tones", s.handleListTones)
		api.POST("/tones", s.handleCreateTone)
		api.DELETE("/tones/:id", s.handleDeleteTone)

		api.POST("/ingest", s.handleIngest)

		api.POST("/sessions", s.handleCreateSession)
		api.GET("/sessions/:id", s.handleGetSession)
		api.PUT("/sessions/:id", s.handleUpdateSession)
		api.DELETE("/sessions/:id", s.handleDeleteSession)
		api.POST("/sessions/:id/submit", s.handleSubmit)
		api.POST("/sessions/:id/retry", s.handleRetry)
		api.POST("/sessions/:id/dismiss", s.handleDismiss)
		api.GET("/sessions/:id/events", s.handleEvents)
	}

	// Serve the browser application; API routes take precedence
	s.router.Use(static.Serve("/", static.LocalFile(s.config.PublicDir, false)))
}

// handleHealth handles the health check endpoint
func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"service":   "jailu",
		"sessions":  s.sessions.count(),
		"generator": s.gen != nil,
	})
}

// errorResponse writes a JSON error body.
func errorResponse(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, gin.H{"error": msg})
}
