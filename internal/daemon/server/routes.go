package server

import (
	"log/slog"
	"net/http"

	"github.com/automat-io/automat/internal/daemon/store"
)

// NewHandler creates the full HTTP handler with routes and middleware.
func NewHandler(st store.Store, logger *slog.Logger) http.Handler {
	h := &handler{store: st, logger: logger}

	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", h.health)
	mux.HandleFunc("GET /api/config", h.getConfig)
	mux.HandleFunc("POST /api/config", h.saveConfig)

	// recovery -> requestID -> logging
	var handler http.Handler = mux
	handler = logging(logger, handler)
	handler = requestID(handler)
	handler = recovery(logger, handler)

	return handler
}
