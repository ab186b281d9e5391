package httpserver

import (
	"net/http"
	"time"
)

// New builds an HTTP server with sane defaults for this project. The write
// timeout leaves headroom above the resolve timeout so aggregated lookups can
// finish before the connection is cut.
func New(addr string, handler http.Handler, resolveTimeout time.Duration) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      resolveTimeout + 5*time.Second,
		IdleTimeout:       60 * time.Second,
	}
}
