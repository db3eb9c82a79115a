package usecases

import (
	"context"
	"errors"
	"testing"

	"github.com/lintang-b-s/routeplanner/pkg"
	da "github.com/lintang-b-s/routeplanner/pkg/datastructure"
	"github.com/lintang-b-s/routeplanner/pkg/engine/routing"
	"github.com/lintang-b-s/routeplanner/pkg/geo"
	"github.com/lintang-b-s/routeplanner/pkg/registry"
	"github.com/lintang-b-s/routeplanner/pkg/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestService(t *testing.T) *RoutingService {
	t.Helper()
	log := zap.NewNop()

	cities := registry.NewCities(log)
	bern := da.NewCity("Bern", "Switzerland", 75000, geo.MustWayPoint("Bern", 46.95, 7.44))
	olten := da.NewCity("Olten", "Switzerland", 18000, geo.MustWayPoint("Olten", 47.35, 7.90))
	zurich := da.NewCity("Zürich", "Switzerland", 380000, geo.MustWayPoint("Zürich", 47.38, 8.54))
	luzern := da.NewCity("Luzern", "Switzerland", 57000, geo.MustWayPoint("Luzern", 47.05, 8.31))
	for _, c := range []da.City{bern, olten, zurich, luzern} {
		require.True(t, cities.Add(c))
	}

	re := routing.NewRoutingEngine(cities, log)
	re.AddLink(da.NewLinkWithDistance(bern, olten, 60, pkg.RAIL))
	re.AddLink(da.NewLinkWithDistance(zurich, olten, 50, pkg.RAIL))
	re.AddLink(da.NewLinkWithDistance(bern, luzern, 90, pkg.BUS))

	return NewRoutingService(log, re, cities, 3)
}

func TestShortestRoute(t *testing.T) {
	rs := newTestService(t)

	route, err := rs.ShortestRoute("bern", "Zürich", pkg.RAIL)
	require.NoError(t, err)

	assert.Equal(t, "Bern", route.From.GetName())
	assert.Equal(t, "Zürich", route.To.GetName())
	require.Len(t, route.Links, 2)
	assert.Equal(t, "Olten", route.Links[0].GetTo().GetName())
	assert.Equal(t, "Olten", route.Links[1].GetFrom().GetName())
	assert.InDelta(t, 110.0, route.Distance, 1e-9)
	assert.NotEmpty(t, route.Polyline)
}

func TestShortestRouteSelf(t *testing.T) {
	rs := newTestService(t)

	route, err := rs.ShortestRoute("Luzern", "Luzern", pkg.FLIGHT)
	require.NoError(t, err)
	assert.Empty(t, route.Links)
	assert.Equal(t, 0.0, route.Distance)
}

func TestShortestRouteNotFound(t *testing.T) {
	rs := newTestService(t)

	tests := []struct {
		name     string
		from, to string
		mode     pkg.TransportMode
		cause    error
	}{
		{"unknown origin", "Atlantis", "Bern", pkg.RAIL, ErrCityNotFound},
		{"unknown destination", "Bern", "Atlantis", pkg.RAIL, ErrCityNotFound},
		{"no link of mode", "Bern", "Zürich", pkg.BUS, ErrRouteNotFound},
		{"disconnected", "Luzern", "Zürich", pkg.RAIL, ErrRouteNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := rs.ShortestRoute(tt.from, tt.to, tt.mode)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.cause))
			assert.Equal(t, util.ErrNotFound, util.ErrorCode(err))
		})
	}
}

func TestShortestRoutes(t *testing.T) {
	rs := newTestService(t)

	queries := []RouteQuery{
		{From: "Bern", To: "Zürich", Mode: pkg.RAIL},
		{From: "Bern", To: "Luzern", Mode: pkg.BUS},
		{From: "Bern", To: "Luzern", Mode: pkg.RAIL},
		{From: "Zürich", To: "Bern", Mode: pkg.RAIL},
		{From: "Nowhere", To: "Bern", Mode: pkg.RAIL},
	}

	results, err := rs.ShortestRoutes(context.Background(), queries)
	require.NoError(t, err)
	require.Len(t, results, len(queries))

	for i, r := range results {
		assert.Equal(t, queries[i], r.Query)
	}
	assert.NoError(t, results[0].Err)
	assert.InDelta(t, 110.0, results[0].Route.Distance, 1e-9)
	assert.NoError(t, results[1].Err)
	assert.InDelta(t, 90.0, results[1].Route.Distance, 1e-9)
	assert.ErrorIs(t, results[2].Err, ErrRouteNotFound)
	assert.NoError(t, results[3].Err)
	assert.Equal(t, "Zürich", results[3].Route.Links[0].GetFrom().GetName())
	assert.ErrorIs(t, results[4].Err, ErrCityNotFound)
}

func TestShortestRoutesCanceled(t *testing.T) {
	rs := newTestService(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results, err := rs.ShortestRoutes(ctx, []RouteQuery{{From: "Bern", To: "Zürich", Mode: pkg.RAIL}})
	assert.ErrorIs(t, err, context.Canceled)
	require.Len(t, results, 1)
	assert.ErrorIs(t, results[0].Err, context.Canceled)

	empty, err := rs.ShortestRoutes(context.Background(), nil)
	assert.NoError(t, err)
	assert.Empty(t, empty)
}

func TestCitiesAndNeighbors(t *testing.T) {
	rs := newTestService(t)

	names := func(cs []da.City) []string {
		out := make([]string, 0, len(cs))
		for _, c := range cs {
			out = append(out, c.GetName())
		}
		return out
	}

	assert.Equal(t, []string{"Bern", "Olten", "Zürich"}, names(rs.Cities(pkg.RAIL)))
	assert.Empty(t, rs.Cities(pkg.SHIP))

	city, neighbors, err := rs.Neighbors("olten", pkg.RAIL)
	require.NoError(t, err)
	assert.Equal(t, "Olten", city.GetName())
	assert.Equal(t, []string{"Bern", "Zürich"}, names(neighbors))

	_, _, err = rs.Neighbors("Atlantis", pkg.RAIL)
	assert.ErrorIs(t, err, ErrCityNotFound)
}
