package engine

import (
	"fmt"
	"strings"

	da "github.com/lintang-b-s/routeplanner/pkg/datastructure"
	"github.com/lintang-b-s/routeplanner/pkg/engine/routing"
	"github.com/lintang-b-s/routeplanner/pkg/metrics"
	"github.com/lintang-b-s/routeplanner/pkg/registry"
	"github.com/lintang-b-s/routeplanner/pkg/spatialindex"
	"go.uber.org/zap"
)

const (
	FILTER_NONE      = "none"
	FILTER_RECTANGLE = "rectangle"
	FILTER_CORRIDOR  = "corridor"
)

type Config struct {
	SearchStrategy  string
	CacheSize       int // 0 disables the route cache
	CandidateFilter string
	CorridorMargin  float64 // km
	CorridorWidth   float64 // km
}

type Engine struct {
	cities        *registry.Cities
	routingEngine *routing.RoutingEngine
	queryCounter  *metrics.QueryCounter
	corridor      *spatialindex.Corridor
	lastLinksLoad routing.LoadSummary
}

func (e *Engine) GetRoutingEngine() *routing.RoutingEngine {
	return e.routingEngine
}

func (e *Engine) GetCities() *registry.Cities {
	return e.cities
}

func (e *Engine) GetQueryCounter() *metrics.QueryCounter {
	return e.queryCounter
}

func (e *Engine) GetLastLinksLoad() routing.LoadSummary {
	return e.lastLinksLoad
}

// NewEngine reads the city registry and the links. The cities file is required; a missing links file is
// logged and leaves the engine without links.
func NewEngine(citiesFilePath, linksFilePath string, cfg Config, logger *zap.Logger) (*Engine, error) {
	logger.Info("Starting route planner engine...")

	cities := registry.NewCities(logger)
	logger.Info("Reading cities from ", zap.String("citiesFilePath", citiesFilePath))
	if _, err := cities.ReadCities(citiesFilePath); err != nil {
		return nil, err
	}

	e, err := NewEngineDirect(cities, cfg, logger)
	if err != nil {
		return nil, err
	}

	logger.Info("Reading links from ", zap.String("linksFilePath", linksFilePath))
	summary, err := e.routingEngine.ReadLinks(linksFilePath)
	if err != nil {
		logger.Warn("continuing without links", zap.Error(err))
	}
	e.lastLinksLoad = summary
	return e, nil
}

// NewEngineDirect wires an engine around an already populated registry.
func NewEngineDirect(cities *registry.Cities, cfg Config, logger *zap.Logger) (*Engine, error) {
	re := routing.NewRoutingEngine(cities, logger)

	strategy, err := routing.ParseSearchStrategy(cfg.SearchStrategy)
	if err != nil {
		return nil, err
	}
	re.SetSearchStrategy(strategy)

	if cfg.CacheSize > 0 {
		if err := re.EnableCache(cfg.CacheSize); err != nil {
			return nil, err
		}
	}

	e := &Engine{
		cities:        cities,
		routingEngine: re,
		queryCounter:  metrics.NewQueryCounter(),
	}

	switch strings.ToLower(cfg.CandidateFilter) {
	case "", FILTER_NONE:
	case FILTER_RECTANGLE:
		re.SetCandidateFilter(routing.CandidateFilterFunc(cities.FindCitiesBetween))
	case FILTER_CORRIDOR:
		e.corridor = spatialindex.NewCorridor(cfg.CorridorMargin, cfg.CorridorWidth)
		e.corridor.Build(cities.All(), logger)
		re.SetCandidateFilter(e.corridor)
	default:
		return nil, fmt.Errorf("unknown candidate filter: %q", cfg.CandidateFilter)
	}

	re.Subscribe(e.queryCounter)

	logger.Info("route planner engine ready",
		zap.Int("cities", cities.Count()),
		zap.Stringer("searchStrategy", strategy),
		zap.String("candidateFilter", cfg.CandidateFilter),
		zap.Int("cacheSize", cfg.CacheSize))
	return e, nil
}

func (e *Engine) FindCity(name string) (da.City, bool) {
	return e.cities.FindCity(name)
}
