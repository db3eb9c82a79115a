package usecases

import (
	"context"
	"errors"

	"github.com/lintang-b-s/routeplanner/pkg"
	"github.com/lintang-b-s/routeplanner/pkg/concurrent"
	da "github.com/lintang-b-s/routeplanner/pkg/datastructure"
	"github.com/lintang-b-s/routeplanner/pkg/geo"
	"github.com/lintang-b-s/routeplanner/pkg/util"
	"go.uber.org/zap"
)

var (
	ErrRouteNotFound = errors.New("route not found")
	ErrCityNotFound  = errors.New("city not found")
)

type RouteQuery struct {
	From string
	To   string
	Mode pkg.TransportMode
}

type Route struct {
	From     da.City
	To       da.City
	Links    []da.Link
	Distance float64 // km
	Polyline string
}

type RouteResult struct {
	Query RouteQuery
	Route Route
	Err   error
}

type RoutingService struct {
	log          *zap.Logger
	engine       RoutingEngine
	cities       CityLookup
	batchWorkers int
}

func NewRoutingService(log *zap.Logger, engine RoutingEngine, cities CityLookup, batchWorkers int) *RoutingService {
	return &RoutingService{
		log:          log,
		engine:       engine,
		cities:       cities,
		batchWorkers: batchWorkers,
	}
}

// ShortestRoute. the error code is util.ErrNotFound for an unknown city or when no route exists under mode.
func (rs *RoutingService) ShortestRoute(fromName, toName string, mode pkg.TransportMode) (Route, error) {
	links, found := rs.engine.FindShortestRoute(fromName, toName, mode)

	from, okFrom := rs.cities.FindCity(fromName)
	if !okFrom {
		return Route{}, util.WrapErrorf(ErrCityNotFound, util.ErrNotFound, "unknown origin %q", fromName)
	}
	to, okTo := rs.cities.FindCity(toName)
	if !okTo {
		return Route{}, util.WrapErrorf(ErrCityNotFound, util.ErrNotFound, "unknown destination %q", toName)
	}
	if !found {
		return Route{}, util.WrapErrorf(ErrRouteNotFound, util.ErrNotFound, "no %s route from %s to %s",
			mode, from.GetName(), to.GetName())
	}

	coords := make([]geo.Coordinate, 0, len(links)+1)
	coords = append(coords, from.GetLocation().Coordinate())
	for _, l := range links {
		coords = append(coords, l.GetTo().GetLocation().Coordinate())
	}

	return Route{
		From:     from,
		To:       to,
		Links:    links,
		Distance: da.TotalDistance(links),
		Polyline: geo.PolylineFromCoords(coords),
	}, nil
}

type batchJob struct {
	idx   int
	query RouteQuery
}

type batchResult struct {
	idx    int
	result RouteResult
}

// ShortestRoutes answers queries in parallel on a worker pool. results[i] belongs to queries[i].
// Queries not started before ctx is done carry ctx.Err().
func (rs *RoutingService) ShortestRoutes(ctx context.Context, queries []RouteQuery) ([]RouteResult, error) {
	results := make([]RouteResult, len(queries))
	if len(queries) == 0 {
		return results, nil
	}

	workers := rs.batchWorkers
	if workers > len(queries) {
		workers = len(queries)
	}

	pool := concurrent.NewWorkerPool[batchJob, batchResult](workers, len(queries))
	pool.Start(func(job batchJob) batchResult {
		res := RouteResult{Query: job.query}
		if err := ctx.Err(); err != nil {
			res.Err = err
			return batchResult{idx: job.idx, result: res}
		}
		res.Route, res.Err = rs.ShortestRoute(job.query.From, job.query.To, job.query.Mode)
		return batchResult{idx: job.idx, result: res}
	})

	for i, q := range queries {
		pool.AddJob(batchJob{idx: i, query: q})
	}
	pool.Close()
	pool.Wait()

	for r := range pool.CollectResults() {
		results[r.idx] = r.result
	}

	rs.log.Debug("batch route queries done", zap.Int("queries", len(queries)), zap.Int("workers", workers))
	return results, ctx.Err()
}

func (rs *RoutingService) Cities(mode pkg.TransportMode) []da.City {
	return rs.engine.DistinctCitiesByMode(mode)
}

func (rs *RoutingService) Neighbors(cityName string, mode pkg.TransportMode) (da.City, []da.City, error) {
	city, ok := rs.cities.FindCity(cityName)
	if !ok {
		return da.City{}, nil, util.WrapErrorf(ErrCityNotFound, util.ErrNotFound, "unknown city %q", cityName)
	}
	return city, rs.engine.NeighborsOf(city, mode), nil
}
