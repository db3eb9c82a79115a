package main

import (
	"context"
	"flag"

	"github.com/lintang-b-s/routeplanner/pkg/engine"
	"github.com/lintang-b-s/routeplanner/pkg/http"
	"github.com/lintang-b-s/routeplanner/pkg/http/usecases"
	"github.com/lintang-b-s/routeplanner/pkg/logger"
	"github.com/lintang-b-s/routeplanner/pkg/util"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var (
	useRateLimit = flag.Bool("rate_limit", true, "limit requests per second to RATE_LIMIT_RPS")
	citiesFile   = flag.String("cities", "", "city registry file, overrides CITIES_FILE")
	linksFile    = flag.String("links", "", "links file (.bz2 allowed), overrides LINKS_FILE")
)

func main() {
	flag.Parse()
	if err := util.ReadConfig(); err != nil {
		panic(err)
	}
	if *citiesFile != "" {
		viper.Set("CITIES_FILE", *citiesFile)
	}
	if *linksFile != "" {
		viper.Set("LINKS_FILE", *linksFile)
	}

	logger, err := logger.New()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	routePlanner, err := engine.NewEngine(viper.GetString("CITIES_FILE"), viper.GetString("LINKS_FILE"),
		engine.Config{
			SearchStrategy:  viper.GetString("ROUTING_SEARCH_STRATEGY"),
			CacheSize:       viper.GetInt("ROUTING_CACHE_SIZE"),
			CandidateFilter: viper.GetString("ROUTING_CANDIDATE_FILTER"),
			CorridorMargin:  viper.GetFloat64("CORRIDOR_MARGIN_KM"),
			CorridorWidth:   viper.GetFloat64("CORRIDOR_WIDTH_KM"),
		}, logger)
	if err != nil {
		logger.Fatal("failed to start route planner engine", zap.Error(err))
	}

	routingService := usecases.NewRoutingService(logger, routePlanner.GetRoutingEngine(), routePlanner.GetCities(),
		viper.GetInt("BATCH_WORKERS"))

	ctx, cleanup, err := NewContext()
	if err != nil {
		panic(err)
	}

	api, err := http.NewServer(logger).Use(ctx, logger, *useRateLimit, routingService)
	if err != nil {
		logger.Fatal("failed to start http server", zap.Error(err))
	}

	signal := http.GracefulShutdown()
	logger.Info("Route Planner Server Stopped", zap.String("signal", signal.String()))
	cleanup()

	if err := api.Wait(); err != nil {
		logger.Error("http server", zap.Error(err))
	}

	metricsFile := viper.GetString("METRICS_FILE")
	if err := routePlanner.GetQueryCounter().WriteToFile(metricsFile); err != nil {
		logger.Error("writing query metrics", zap.String("metricsFile", metricsFile), zap.Error(err))
	}
}

func NewContext() (context.Context, func(), error) {
	ctx, cancel := context.WithCancel(context.Background())
	cb := func() {
		cancel()
	}

	return ctx, cb, nil
}
