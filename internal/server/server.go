// Package server hosts the MCP streamable HTTP endpoint behind the same
// middleware stack for local and tailnet use.
package server

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// MCPPath is where the MCP endpoint is mounted.
const MCPPath = "/mcp"

// Server holds dependencies for HTTP handlers.
type Server struct {
	mcp     http.Handler
	version string
	log     *slog.Logger
	apiKey  string
	router  chi.Router
}

// New creates a new Server with all routes configured. An empty apiKey
// leaves the MCP endpoint open, for loopback or tailnet-only listeners.
func New(mcpHandler http.Handler, apiKey, version string, log *slog.Logger) *Server {
	s := &Server{
		mcp:     mcpHandler,
		version: version,
		log:     log,
		apiKey:  apiKey,
		router:  chi.NewRouter(),
	}
	s.routes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	s.router.Use(RequestID)
	s.router.Use(RequestLogging(s.log))
	s.router.Use(CORS)

	s.router.Get("/healthz", s.handleHealth)

	s.router.Group(func(r chi.Router) {
		if s.apiKey != "" {
			r.Use(APIKeyAuth(s.apiKey))
		}
		r.Handle(MCPPath, s.mcp)
	})
}
