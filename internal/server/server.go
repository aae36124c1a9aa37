package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	v1 "github.com/21f1001434/Agentic-AI/api/v1"
	"github.com/21f1001434/Agentic-AI/internal/config"
)

const (
	ModeDev  = "dev"
	ModeProd = "prod"

	apiPrefix         = "/api/v1"
	readHeaderTimeout = 10 * time.Second
)

// Server serves the analytics API over HTTP.
type Server struct {
	srv    *http.Server
	engine *gin.Engine
}

// NewServer builds the gin engine and lets registerHandlerFn mount the API
// routes on the /api/v1 group.
func NewServer(cfg *config.Configuration, registerHandlerFn func(router *gin.RouterGroup)) (*Server, error) {
	switch cfg.Server.ServerMode {
	case ModeProd:
		gin.SetMode(gin.ReleaseMode)
	case ModeDev, "":
		gin.SetMode(gin.DebugMode)
	default:
		return nil, fmt.Errorf("invalid server mode %q", cfg.Server.ServerMode)
	}

	engine := gin.New()
	logger := zap.L().Named("http")
	engine.Use(
		ginzap.GinzapWithConfig(logger, &ginzap.Config{
			TimeFormat: time.RFC3339,
			UTC:        true,
			SkipPaths:  []string{"/health"},
		}),
		ginzap.RecoveryWithZap(logger, true),
	)

	engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, v1.HealthResponse{Status: "ok"})
	})

	api := engine.Group(apiPrefix)
	registerHandlerFn(api)

	engine.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, v1.ErrorResponse{Error: "route not found"})
	})

	return &Server{
		engine: engine,
		srv: &http.Server{
			Addr:              fmt.Sprintf(":%d", cfg.Server.HTTPPort),
			Handler:           engine,
			ReadHeaderTimeout: readHeaderTimeout,
		},
	}, nil
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Start blocks until the server stops. Request contexts derive from ctx. It
// returns nil after a graceful Stop.
func (s *Server) Start(ctx context.Context) error {
	zap.S().Named("server").Infow("starting http server", "addr", s.srv.Addr)
	s.srv.BaseContext = func(net.Listener) context.Context { return ctx }
	if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Stop shuts the server down, waiting for in-flight requests until ctx ends.
func (s *Server) Stop(ctx context.Context) error {
	zap.S().Named("server").Info("stopping http server")
	return s.srv.Shutdown(ctx)
}
