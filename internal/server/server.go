// Package server assembles the MCP server and, for the http transport, the
// chi router it is mounted on.
package server

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	sdkserver "github.com/mark3labs/mcp-go/server"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/noteflow/noteflow/internal/tools"
)

// NewMCP constructs the MCP server with every enabled tool registered.
// Sampling is enabled so tool handlers can route LLM work through the host.
func NewMCP(d tools.Deps, enabled func(string) bool, version string) *sdkserver.MCPServer {
	s := sdkserver.NewMCPServer(
		"noteflow",
		version,
		sdkserver.WithToolCapabilities(false),
		sdkserver.WithRecovery(),
	)
	s.EnableSampling()
	tools.Register(s, d, enabled)
	return s
}

// NewHTTPHandler mounts the Streamable HTTP MCP endpoint under /mcp next to
// the liveness and metrics endpoints.
func NewHTTPHandler(s *sdkserver.MCPServer, allowedOrigins []string) http.Handler {
	r := chi.NewRouter()
	if len(allowedOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: allowedOrigins,
			AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
			AllowedHeaders: []string{"*"},
		}))
	}
	streamable := sdkserver.NewStreamableHTTPServer(
		s,
		sdkserver.WithHTTPContextFunc(func(ctx context.Context, r *http.Request) context.Context {
			return ctx
		}),
	)
	r.Mount("/mcp", streamable)
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/metrics", promhttp.Handler())
	return r
}
