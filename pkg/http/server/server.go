package server

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"
)

const DEFAULT_TIMEOUT = 30 * time.Second

type Config struct {
	Port    int
	Timeout time.Duration

	UseRateLimit    bool
	RateLimit       float64 // requests per second
	RateLimitBurst  int
	MaxBatchQueries int
}

// New returns an http.Server whose request contexts derive from ctx.
func New(ctx context.Context, handler http.Handler, config Config) *http.Server {
	if config.Timeout <= 0 {
		config.Timeout = DEFAULT_TIMEOUT
	}
	return &http.Server{
		Addr:    fmt.Sprintf(":%d", config.Port),
		Handler: http.TimeoutHandler(handler, config.Timeout, "request timed out"),
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
		ReadTimeout:       config.Timeout,
		WriteTimeout:      config.Timeout + 5*time.Second,
		IdleTimeout:       2 * config.Timeout,
		ReadHeaderTimeout: 5 * time.Second,
	}
}
