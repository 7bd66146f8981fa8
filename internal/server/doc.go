// Package server provides the optional HTTP server exposing the migration status.
//
// The server uses the Gin web framework and only runs when a status address is
// configured. It serves the API and nothing else.
//
// # Architecture Overview
//
//	┌───────────────────────────────────────────────────────────────┐
//	│                         HTTP Server                           │
//	├───────────────────────────────────────────────────────────────┤
//	│                       Middleware Stack                        │
//	│  ┌─────────────────────────────────────────────────────────┐  │
//	│  │  Logger (request/response logging with ginzap)          │  │
//	│  │  Recovery (panic recovery with zap logging)             │  │
//	│  └─────────────────────────────────────────────────────────┘  │
//	├───────────────────────────────────────────────────────────────┤
//	│                       Router (/api/v1)                        │
//	│  ┌─────────────────────────────────────────────────────────┐  │
//	│  │  Handlers (registered via callback)                     │  │
//	│  └─────────────────────────────────────────────────────────┘  │
//	└───────────────────────────────────────────────────────────────┘
//
// Unknown routes answer 404 with {"error": "not found"}.
//
// # Usage
//
//	srv := server.NewServer(":8080", func(router *gin.RouterGroup) {
//	    handlers.RegisterHandlers(router, handlers.New(tracker))
//	})
//
//	go func() {
//	    if err := srv.Start(ctx); err != nil {
//	        zap.S().Errorw("status server stopped", "error", err)
//	    }
//	}()
//	defer srv.Stop(context.Background())
//
// # Lifecycle
//
// Start blocks until the server is stopped and returns nil after a graceful
// shutdown. Stop waits up to five seconds for in-flight requests.
package server
