package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/FelipeCostaAraujo/olx-webscraping/internal/config"
	"github.com/FelipeCostaAraujo/olx-webscraping/internal/logger"
	"github.com/FelipeCostaAraujo/olx-webscraping/internal/metrics"
)

const defaultShutdownTimeout = 15 * time.Second

// Dependencies are the collaborators served by the API.
type Dependencies struct {
	Ads           AdStore
	Notifications NotificationStore
	Notifier      TestNotifier
	// Scrape is nil when the process does not run passes.
	Scrape  ScrapeTrigger
	Metrics *metrics.Metrics
}

// Server is the HTTP API server.
type Server struct {
	router *gin.Engine
	server *http.Server
	log    logger.Logger
}

// NewServer builds the router and the underlying http.Server.
func NewServer(cfg config.ServerConfig, deps Dependencies, debug bool, log logger.Logger) *Server {
	if debug {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(recoveryMiddleware(log))
	router.Use(requestLoggerMiddleware(log))
	router.Use(accessLogMiddleware())

	setupRoutes(router, deps)

	return &Server{
		router: router,
		server: &http.Server{
			Addr:         cfg.Address,
			Handler:      router,
			ReadTimeout:  cfg.ReadTimeout,
			WriteTimeout: cfg.WriteTimeout,
		},
		log: log,
	}
}

func setupRoutes(router *gin.Engine, deps Dependencies) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})
	router.GET("/metrics", gin.WrapH(deps.Metrics.Handler()))

	ads := newAdsHandler(deps.Ads)
	notifications := newNotificationsHandler(deps.Notifications, deps.Notifier)

	v1 := router.Group("/api/v1")
	v1.GET("/ads", ads.List)
	v1.GET("/ads/price-trends", ads.PriceTrends)
	v1.GET("/ads/:id/price-trend", ads.PriceTrend)
	v1.DELETE("/ads/:id", ads.Blacklist)
	v1.GET("/notifications", notifications.List)
	v1.POST("/notifications/test", notifications.Test)
	if deps.Scrape != nil {
		v1.POST("/scrape", newScrapeHandler(deps.Scrape).Trigger)
	}
}

// Handler returns the root http.Handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start serves until the server is shut down.
func (s *Server) Start() error {
	s.log.Info("Starting HTTP server", logger.String("address", s.server.Addr))
	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// StartAsync runs Start in a goroutine. The channel receives a start error,
// if any, and is closed when the server stops.
func (s *Server) StartAsync() <-chan error {
	errCh := make(chan error, 1)
	go func() {
		if err := s.Start(); err != nil {
			errCh <- err
		}
		close(errCh)
	}()
	return errCh
}

// Shutdown stops accepting requests and waits for in-flight ones.
func (s *Server) Shutdown(ctx context.Context) error {
	shutdownCtx, cancel := context.WithTimeout(ctx, defaultShutdownTimeout)
	defer cancel()

	if err := s.server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown error: %w", err)
	}
	s.log.Info("HTTP server stopped")
	return nil
}
