package http

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	http_router "github.com/lintang-b-s/routeplanner/pkg/http/router"
	"github.com/lintang-b-s/routeplanner/pkg/http/router/controllers"
	http_server "github.com/lintang-b-s/routeplanner/pkg/http/server"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type Server struct {
	Log *zap.Logger
	g   *errgroup.Group
}

func NewServer(log *zap.Logger) *Server {
	return &Server{Log: log}
}

// Use starts the API in the background. Wait returns its error once ctx is done.
func (s *Server) Use(
	ctx context.Context,
	log *zap.Logger,

	useRateLimit bool,
	routingService controllers.RoutingService,
) (*Server, error) {
	config := http_server.Config{
		Port:            viper.GetInt("API_PORT"),
		Timeout:         viper.GetDuration("API_TIMEOUT"),
		UseRateLimit:    useRateLimit,
		RateLimit:       viper.GetFloat64("RATE_LIMIT_RPS"),
		RateLimitBurst:  viper.GetInt("RATE_LIMIT_BURST"),
		MaxBatchQueries: viper.GetInt("BATCH_MAX_QUERIES"),
	}

	server := http_router.NewAPI(log)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return server.Run(gctx, config, routingService)
	})
	s.g = g

	return s, nil
}

func (s *Server) Wait() error {
	if s.g == nil {
		return nil
	}
	return s.g.Wait()
}

// GracefulShutdown blocks until SIGINT or SIGTERM arrives.
func GracefulShutdown() os.Signal {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)
	return <-quit
}
