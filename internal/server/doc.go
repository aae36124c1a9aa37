// Package server provides the HTTP server for the analytics API.
//
// # Architecture Overview
//
//	┌───────────────────────────────────────────────────────────────┐
//	│                      HTTP Server (:8000)                      │
//	├───────────────────────────────────────────────────────────────┤
//	│                       Middleware Stack                        │
//	│  ┌─────────────────────────────────────────────────────────┐  │
//	│  │  ginzap.GinzapWithConfig (request logging, "http")      │  │
//	│  │  ginzap.RecoveryWithZap (panic recovery with stack)     │  │
//	│  └─────────────────────────────────────────────────────────┘  │
//	├───────────────────────────────────────────────────────────────┤
//	│  GET /health                                                  │
//	│  Router (/api/v1) - handlers registered via callback          │
//	│  NoRoute - JSON 404                                           │
//	└───────────────────────────────────────────────────────────────┘
//
// # Server Modes
//
// ServerMode "dev" runs gin in debug mode, "prod" in release mode. Any other
// value is rejected by NewServer.
//
// # Usage Example
//
//	srv, err := server.NewServer(cfg, func(router *gin.RouterGroup) {
//	    v1.RegisterHandlers(router, handler)
//	})
//	if err != nil {
//	    return err
//	}
//
//	go func() {
//	    if err := srv.Start(ctx); err != nil {
//	        zap.S().Errorw("server error", "error", err)
//	    }
//	}()
//
//	<-ctx.Done()
//	srv.Stop(shutdownCtx)
package server
