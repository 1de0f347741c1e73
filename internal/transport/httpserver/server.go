package httpserver

import (
	"net/http"
	"time"

	"wedding-registry-go/internal/config"
)

// New builds the HTTP server. WriteTimeout sits above the router's 30s
// request timeout so that middleware gets to answer first.
func New(cfg config.Config, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      35 * time.Second,
		IdleTimeout:       90 * time.Second,
	}
}
