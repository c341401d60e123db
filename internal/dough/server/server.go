package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/slok/kitchen/internal/conventions"
	"github.com/slok/kitchen/internal/log"
)

// Config is the configuration for the mock dough API server.
type Config struct {
	ListenAddr string
	// FailEvery makes every item whose ID is a multiple of it fail with a 500 (0 disables it).
	FailEvery int
	// Latency is added to every make item response.
	Latency time.Duration
	Logger  log.Logger
}

func (c *Config) defaults() error {
	if c.ListenAddr == "" {
		c.ListenAddr = conventions.MockAPIListenAddr
	}

	if c.FailEvery < 0 {
		return fmt.Errorf("fail every must be 0 or positive, got: %d", c.FailEvery)
	}

	if c.Latency < 0 {
		return fmt.Errorf("latency must be 0 or positive, got: %s", c.Latency)
	}

	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "dough.MockAPI"})

	return nil
}

// Server is a mock of the dough API used to run bakes locally.
type Server struct {
	server    *http.Server
	engine    *gin.Engine
	failEvery int
	latency   time.Duration
	logger    log.Logger

	made   atomic.Int64
	failed atomic.Int64
}

// New returns a new mock dough API server.
func New(cfg Config) (*Server, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	s := &Server{
		failEvery: cfg.FailEvery,
		latency:   cfg.Latency,
		logger:    cfg.Logger,
	}

	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery(), s.logRequest)
	engine.Use(cors.New(cors.Config{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept"},
		MaxAge:       12 * time.Hour,
	}))

	engine.GET(conventions.MockAPIHealthPath, s.health)
	engine.POST(conventions.MockAPIMakePizzaPath, s.makeItem)
	engine.POST(conventions.MockAPIMakeItemPath, s.makeItem)

	s.engine = engine
	s.server = &http.Server{
		Addr:    cfg.ListenAddr,
		Handler: engine,
	}

	return s, nil
}

// Handler returns the HTTP handler of the API.
func (s *Server) Handler() http.Handler { return s.engine }

// Run starts the server and blocks until ctx is cancelled. It performs a
// graceful shutdown when the context is done.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Infof("mock dough API listening on %s", s.server.Addr)
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("mock dough API server error: %w", err)
	case <-ctx.Done():
		s.logger.Infof("shutting down mock dough API (made: %d, failed: %d)", s.made.Load(), s.failed.Load())
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("mock dough API shutdown error: %w", err)
		}
		return nil
	}
}

type makeItemRequest struct {
	ItemID int `json:"itemId"`
}

func (s *Server) makeItem(c *gin.Context) {
	// The body is optional, clients may POST without it.
	var req makeItemRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("invalid body: %v", err)})
		return
	}

	if s.latency > 0 {
		select {
		case <-time.After(s.latency):
		case <-c.Request.Context().Done():
			return
		}
	}

	if s.shouldFail(req.ItemID) {
		s.failed.Add(1)
		s.logger.Warningf("failing item %d", req.ItemID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": fmt.Sprintf("could not make item %d", req.ItemID)})
		return
	}

	s.made.Add(1)
	c.JSON(http.StatusOK, gin.H{
		"itemId": req.ItemID,
		"status": "completed",
	})
}

func (s *Server) shouldFail(itemID int) bool {
	return s.failEvery > 0 && itemID > 0 && itemID%s.failEvery == 0
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"made":   s.made.Load(),
		"failed": s.failed.Load(),
	})
}

func (s *Server) logRequest(c *gin.Context) {
	start := time.Now()
	c.Next()
	s.logger.Debugf("%s %s %d (%s)", c.Request.Method, c.Request.URL.Path, c.Writer.Status(), time.Since(start))
}
