package routing

import (
	"bytes"
	"fmt"
	"math"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/dsnet/compress/bzip2"
	"github.com/lintang-b-s/routeplanner/pkg"
	da "github.com/lintang-b-s/routeplanner/pkg/datastructure"
	"github.com/lintang-b-s/routeplanner/pkg/geo"
	"github.com/lintang-b-s/routeplanner/pkg/registry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var strategies = []SearchStrategy{LINEAR_SCAN, PRIORITY_QUEUE}

func newCities(t *testing.T, cities ...da.City) *registry.Cities {
	t.Helper()
	cs := registry.NewCities(zap.NewNop())
	for _, c := range cities {
		require.True(t, cs.Add(c))
	}
	return cs
}

func newCity(name string, lat, lon float64) da.City {
	return da.NewCity(name, "", 0, geo.MustWayPoint(name, lat, lon))
}

func routeNames(links []da.Link) []string {
	out := make([]string, len(links))
	for i, l := range links {
		out[i] = l.GetFrom().GetName() + "-" + l.GetTo().GetName()
	}
	return out
}

// A(47.0,8.0) - B(47.1,8.1) - C(47.2,8.2), rail only
func abcEngine(t *testing.T) (*RoutingEngine, da.City, da.City, da.City) {
	a := newCity("A", 47.0, 8.0)
	b := newCity("B", 47.1, 8.1)
	c := newCity("C", 47.2, 8.2)
	re := NewRoutingEngine(newCities(t, a, b, c), zap.NewNop())
	re.AddLink(da.NewLink(a, b, pkg.RAIL))
	re.AddLink(da.NewLink(b, c, pkg.RAIL))
	return re, a, b, c
}

func TestFindShortestRouteTwoHops(t *testing.T) {
	for _, strategy := range strategies {
		t.Run(strategy.String(), func(t *testing.T) {
			re, a, b, c := abcEngine(t)
			re.SetSearchStrategy(strategy)

			route, found := re.FindShortestRoute("A", "C", pkg.RAIL)
			require.True(t, found)
			assert.Equal(t, []string{"A-B", "B-C"}, routeNames(route))
			assert.InDelta(t, geo.Distance(a.GetLocation(), b.GetLocation()), route[0].GetDistance(), 1e-9)
			assert.InDelta(t, geo.Distance(b.GetLocation(), c.GetLocation()), route[1].GetDistance(), 1e-9)
			for _, l := range route {
				assert.Equal(t, pkg.RAIL, l.GetTransportMode())
			}

			route, found = re.FindShortestRoute("A", "C", pkg.CAR)
			assert.False(t, found)
			assert.Empty(t, route)
		})
	}
}

func TestFindShortestRoutePrefersShorterDetour(t *testing.T) {
	for _, strategy := range strategies {
		t.Run(strategy.String(), func(t *testing.T) {
			re, a, _, c := abcEngine(t)
			re.SetSearchStrategy(strategy)
			// a long direct rail line, e.g. a winding mountain track
			re.AddLink(da.NewLinkWithDistance(a, c, 100, pkg.RAIL))

			route, found := re.FindShortestRoute("A", "C", pkg.RAIL)
			require.True(t, found)
			assert.Equal(t, []string{"A-B", "B-C"}, routeNames(route))
		})
	}
}

func TestFindShortestRouteUsesDirectLinkWhenShorter(t *testing.T) {
	re, a, _, c := abcEngine(t)
	re.AddLink(da.NewLink(a, c, pkg.RAIL))

	route, found := re.FindShortestRoute("A", "C", pkg.RAIL)
	require.True(t, found)
	assert.Equal(t, []string{"A-C"}, routeNames(route))
}

func TestFindShortestRouteSelf(t *testing.T) {
	re, _, _, _ := abcEngine(t)

	for _, mode := range []pkg.TransportMode{pkg.RAIL, pkg.CAR} {
		route, found := re.FindShortestRoute("B", "B", mode)
		assert.True(t, found)
		assert.NotNil(t, route)
		assert.Len(t, route, 0)
	}

	route, found := re.FindShortestRoute("b", "B", pkg.RAIL)
	assert.True(t, found, "names resolve case-insensitively")
	assert.Len(t, route, 0)
}

func TestFindShortestRouteNoRoute(t *testing.T) {
	a := newCity("A", 47.0, 8.0)
	b := newCity("B", 47.1, 8.1)
	c := newCity("C", 47.2, 8.2)
	d := newCity("D", 46.0, 7.0)
	e := newCity("E", 46.1, 7.1)

	testCases := []struct {
		name     string
		links    []da.Link
		from, to string
		mode     pkg.TransportMode
	}{
		{
			name: "empty link set",
			from: "A", to: "B", mode: pkg.RAIL,
		},
		{
			name:  "unknown origin",
			links: []da.Link{da.NewLink(a, b, pkg.RAIL)},
			from:  "Atlantis", to: "B", mode: pkg.RAIL,
		},
		{
			name:  "unknown destination",
			links: []da.Link{da.NewLink(a, b, pkg.RAIL)},
			from:  "A", to: "Atlantis", mode: pkg.RAIL,
		},
		{
			name:  "disconnected components",
			links: []da.Link{da.NewLink(a, b, pkg.RAIL), da.NewLink(d, e, pkg.RAIL)},
			from:  "A", to: "E", mode: pkg.RAIL,
		},
		{
			name:  "neither endpoint has a link of the mode",
			links: []da.Link{da.NewLink(a, b, pkg.RAIL), da.NewLink(b, c, pkg.RAIL), da.NewLink(d, e, pkg.BUS)},
			from:  "A", to: "C", mode: pkg.FLIGHT,
		},
		{
			name:  "target only reachable by another mode",
			links: []da.Link{da.NewLink(a, b, pkg.RAIL), da.NewLink(b, c, pkg.CAR)},
			from:  "A", to: "C", mode: pkg.RAIL,
		},
	}

	for _, tt := range testCases {
		for _, strategy := range strategies {
			t.Run(tt.name+"/"+strategy.String(), func(t *testing.T) {
				re := NewRoutingEngine(newCities(t, a, b, c, d, e), zap.NewNop())
				re.SetSearchStrategy(strategy)
				for _, l := range tt.links {
					re.AddLink(l)
				}
				route, found := re.FindShortestRoute(tt.from, tt.to, tt.mode)
				assert.False(t, found)
				assert.Nil(t, route)
			})
		}
	}
}

func TestFindShortestRouteOrientsStoredLinks(t *testing.T) {
	a := newCity("A", 47.0, 8.0)
	b := newCity("B", 47.1, 8.1)
	re := NewRoutingEngine(newCities(t, a, b), zap.NewNop())
	re.AddLink(da.NewLinkWithDistance(b, a, 42, pkg.BUS))

	route, found := re.FindShortestRoute("A", "B", pkg.BUS)
	require.True(t, found)
	require.Len(t, route, 1)
	assert.Equal(t, "A", route[0].GetFrom().GetName())
	assert.Equal(t, "B", route[0].GetTo().GetName())
	assert.Equal(t, 42.0, route[0].GetDistance())
}

func TestFindShortestRouteIgnoresUnusableWeights(t *testing.T) {
	for _, strategy := range strategies {
		t.Run(strategy.String(), func(t *testing.T) {
			re, a, b, c := abcEngine(t)
			re.SetSearchStrategy(strategy)
			re.AddLink(da.NewLinkWithDistance(a, c, math.NaN(), pkg.RAIL))
			re.AddLink(da.NewLinkWithDistance(a, c, -5, pkg.RAIL))
			re.AddLink(da.NewLinkWithDistance(a, b, math.Inf(1), pkg.TRAM))

			route, found := re.FindShortestRoute("A", "C", pkg.RAIL)
			require.True(t, found)
			assert.Equal(t, []string{"A-B", "B-C"}, routeNames(route))

			_, found = re.FindShortestRoute("A", "B", pkg.TRAM)
			assert.False(t, found)
		})
	}
}

func TestFindShortestRouteIdempotent(t *testing.T) {
	re, _, _, _ := abcEngine(t)
	first, found := re.FindShortestRoute("C", "A", pkg.RAIL)
	require.True(t, found)
	for i := 0; i < 5; i++ {
		again, found := re.FindShortestRoute("C", "A", pkg.RAIL)
		require.True(t, found)
		assert.Equal(t, first, again)
	}
	assert.Equal(t, []string{"C-B", "B-A"}, routeNames(first))
}

func TestFindShortestRouteCandidateFilter(t *testing.T) {
	re, _, _, _ := abcEngine(t)

	var calls int
	re.SetCandidateFilter(CandidateFilterFunc(func(source, target da.City) []da.City {
		calls++
		return []da.City{source, target}
	}))
	_, found := re.FindShortestRoute("A", "C", pkg.RAIL)
	assert.False(t, found, "B is outside the candidate set")
	assert.Equal(t, 1, calls)

	re.SetCandidateFilter(nil)
	_, found = re.FindShortestRoute("A", "C", pkg.RAIL)
	assert.True(t, found)
}

func TestFindShortestRouteWithRegistryFilter(t *testing.T) {
	a := newCity("A", 47.0, 8.0)
	b := newCity("B", 47.1, 8.1)
	c := newCity("C", 47.2, 8.2)
	far := newCity("Far", 40.0, 20.0)
	cs := newCities(t, a, b, c, far)

	re := NewRoutingEngine(cs, zap.NewNop())
	re.SetCandidateFilter(CandidateFilterFunc(cs.FindCitiesBetween))
	re.AddLink(da.NewLink(a, b, pkg.RAIL))
	re.AddLink(da.NewLink(b, c, pkg.RAIL))
	re.AddLink(da.NewLink(a, far, pkg.RAIL))

	route, found := re.FindShortestRoute("A", "C", pkg.RAIL)
	require.True(t, found)
	assert.Equal(t, []string{"A-B", "B-C"}, routeNames(route))
}

// brute force all-pairs distances to check optimality on random graphs
func floydWarshall(n int, edges [][3]float64) [][]float64 {
	d := make([][]float64, n)
	for i := range d {
		d[i] = make([]float64, n)
		for j := range d[i] {
			if i != j {
				d[i][j] = math.Inf(1)
			}
		}
	}
	for _, e := range edges {
		u, v, w := int(e[0]), int(e[1]), e[2]
		if w < d[u][v] {
			d[u][v], d[v][u] = w, w
		}
	}
	for k := 0; k < n; k++ {
		for i := 0; i < n; i++ {
			for j := 0; j < n; j++ {
				if d[i][k]+d[k][j] < d[i][j] {
					d[i][j] = d[i][k] + d[k][j]
				}
			}
		}
	}
	return d
}

func TestFindShortestRouteOptimality(t *testing.T) {
	rnd := rand.New(rand.NewSource(42))
	const n = 25

	cities := make([]da.City, n)
	for i := range cities {
		cities[i] = newCity(fmt.Sprintf("city-%02d", i), 45+rnd.Float64()*3, 6+rnd.Float64()*4)
	}
	cs := newCities(t, cities...)

	re := NewRoutingEngine(cs, zap.NewNop())
	edges := make([][3]float64, 0)
	for i := 0; i < 60; i++ {
		u, v := rnd.Intn(n), rnd.Intn(n)
		mode := pkg.RAIL
		if rnd.Intn(4) == 0 {
			mode = pkg.CAR
		}
		var l da.Link
		if rnd.Intn(3) == 0 {
			l = da.NewLinkWithDistance(cities[u], cities[v], 5+rnd.Float64()*200, mode)
		} else {
			l = da.NewLink(cities[u], cities[v], mode)
		}
		re.AddLink(l)
		if mode == pkg.RAIL {
			edges = append(edges, [3]float64{float64(u), float64(v), l.GetDistance()})
		}
	}
	want := floydWarshall(n, edges)

	for _, strategy := range strategies {
		re.SetSearchStrategy(strategy)
		for i := 0; i < n; i++ {
			for j := 0; j < n; j++ {
				route, found := re.FindShortestRoute(cities[i].GetName(), cities[j].GetName(), pkg.RAIL)
				if math.IsInf(want[i][j], 1) {
					assert.False(t, found, "%s %d->%d", strategy, i, j)
					continue
				}
				require.True(t, found, "%s %d->%d", strategy, i, j)
				assert.InDelta(t, want[i][j], da.TotalDistance(route), 1e-6, "%s %d->%d", strategy, i, j)

				// route is connected and in travel order
				cur := cities[i]
				for _, l := range route {
					assert.True(t, l.GetFrom().Equal(cur))
					assert.Equal(t, pkg.RAIL, l.GetTransportMode())
					cur = l.GetTo()
				}
				assert.True(t, cur.Equal(cities[j]))
			}
		}
	}
}

func TestRouteRequestObservers(t *testing.T) {
	re, _, _, _ := abcEngine(t)

	var order []string
	var got []RouteRequest
	re.Subscribe(RouteRequestObserverFunc(func(req RouteRequest) {
		order = append(order, "first")
		got = append(got, req)
	}))
	re.Subscribe(RouteRequestObserverFunc(func(req RouteRequest) {
		order = append(order, "panicking")
		panic("observer bug")
	}))
	re.Subscribe(RouteRequestObserverFunc(func(req RouteRequest) {
		order = append(order, "third")
	}))

	route, found := re.FindShortestRoute("A", "C", pkg.RAIL)
	require.True(t, found)
	assert.Equal(t, []string{"A-B", "B-C"}, routeNames(route))
	assert.Equal(t, []string{"first", "panicking", "third"}, order)
	assert.Equal(t, []RouteRequest{{From: "A", To: "C", Mode: pkg.RAIL}}, got)

	// observers see unresolvable requests too
	_, found = re.FindShortestRoute("Atlantis", "C", pkg.RAIL)
	assert.False(t, found)
	require.Len(t, got, 2)
	assert.Equal(t, "Atlantis", got[1].From)
}

func TestRouteCache(t *testing.T) {
	re, a, _, c := abcEngine(t)
	require.NoError(t, re.EnableCache(16))

	route, found := re.FindShortestRoute("A", "C", pkg.RAIL)
	require.True(t, found)
	assert.Len(t, route, 2)

	// mutating a returned route must not leak into the cache
	route[0] = da.Link{}
	cached, found := re.FindShortestRoute("A", "C", pkg.RAIL)
	require.True(t, found)
	assert.Equal(t, []string{"A-B", "B-C"}, routeNames(cached))

	// adding links purges the cache
	re.AddLink(da.NewLinkWithDistance(a, c, 1, pkg.RAIL))
	route, found = re.FindShortestRoute("A", "C", pkg.RAIL)
	require.True(t, found)
	assert.Equal(t, []string{"A-C"}, routeNames(route))

	assert.Error(t, re.EnableCache(0))
}

func TestDistinctCitiesByMode(t *testing.T) {
	re, a, b, c := abcEngine(t)
	d := newCity("D", 46.0, 7.0)
	re.AddLink(da.NewLink(a, d, pkg.BUS))
	re.AddLink(da.NewLink(a, b, pkg.RAIL))

	rail := re.DistinctCitiesByMode(pkg.RAIL)
	assert.Equal(t, []da.City{a, b, c}, rail)

	bus := re.DistinctCitiesByMode(pkg.BUS)
	assert.Equal(t, []da.City{a, d}, bus)

	assert.Empty(t, re.DistinctCitiesByMode(pkg.SHIP))
}

func TestNeighborsOf(t *testing.T) {
	re, a, b, c := abcEngine(t)
	d := newCity("D", 46.0, 7.0)
	re.AddLink(da.NewLink(d, b, pkg.BUS))

	assert.Equal(t, []da.City{a, c}, re.NeighborsOf(b, pkg.RAIL))
	assert.Equal(t, []da.City{d}, re.NeighborsOf(b, pkg.BUS))
	assert.Equal(t, []da.City{b}, re.NeighborsOf(a, pkg.RAIL))
	assert.Empty(t, re.NeighborsOf(d, pkg.RAIL))
}

func TestConcurrentQueries(t *testing.T) {
	re, _, _, _ := abcEngine(t)
	require.NoError(t, re.EnableCache(4))

	var wg sync.WaitGroup
	errs := make(chan string, 64)
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			from, to := "A", "C"
			if i%2 == 0 {
				from, to = to, from
			}
			route, found := re.FindShortestRoute(from, to, pkg.RAIL)
			if !found || len(route) != 2 {
				errs <- fmt.Sprintf("query %d: found=%v len=%d", i, found, len(route))
			}
		}(i)
	}
	wg.Wait()
	close(errs)
	for e := range errs {
		t.Error(e)
	}
}

const linksCities = `A	CH	1	47.0	8.0
B	CH	1	47.1	8.1
C	CH	1	47.2	8.2
D	CH	1	47.3	8.3
`

func loadEngine(t *testing.T) *RoutingEngine {
	cs := registry.NewCities(zap.NewNop())
	require.Equal(t, 4, cs.LoadCities(strings.NewReader(linksCities)))
	return NewRoutingEngine(cs, zap.NewNop())
}

func TestLoadLinks(t *testing.T) {
	re := loadEngine(t)

	summary, err := re.LoadLinks(strings.NewReader("A\tB\nAtlantis\tB\nB\tC\textra\tfields\n\nC\tD\nlonely\n"))
	require.NoError(t, err)
	assert.Equal(t, LoadSummary{Read: 5, Added: 3, SkippedUnknown: 1, SkippedMalformed: 1}, summary)
	assert.Equal(t, 3, re.Count())

	for _, l := range re.Links() {
		assert.Equal(t, pkg.DEFAULT_LOAD_MODE, l.GetTransportMode())
		assert.InDelta(t, geo.Distance(l.GetFrom().GetLocation(), l.GetTo().GetLocation()), l.GetDistance(), 1e-12)
	}

	route, found := re.FindShortestRoute("A", "D", pkg.RAIL)
	require.True(t, found)
	assert.Equal(t, []string{"A-B", "B-C", "C-D"}, routeNames(route))
}

func TestReadLinks(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "links.txt")
	require.NoError(t, os.WriteFile(path, []byte("Atlantis\tA\nA\tB\nB\tC\nC\tD\n"), 0644))

	re := loadEngine(t)
	summary, err := re.ReadLinks(path)
	require.NoError(t, err)
	assert.Equal(t, 3, summary.Added)
	assert.Equal(t, 1, summary.SkippedUnknown)
	assert.Equal(t, 3, re.Count())

	summary, err = re.ReadLinks(filepath.Join(dir, "missing.txt"))
	assert.Error(t, err)
	assert.Equal(t, LoadSummary{}, summary)
	assert.Equal(t, 3, re.Count(), "a failed load keeps the links read before")

	_, found := re.FindShortestRoute("A", "D", pkg.RAIL)
	assert.True(t, found)
}

func TestReadLinksBzip2(t *testing.T) {
	var buf bytes.Buffer
	bz, err := bzip2.NewWriter(&buf, &bzip2.WriterConfig{})
	require.NoError(t, err)
	_, err = bz.Write([]byte("A\tB\nB\tC\n"))
	require.NoError(t, err)
	require.NoError(t, bz.Close())

	path := filepath.Join(t.TempDir(), "links.txt.bz2")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0644))

	re := loadEngine(t)
	summary, err := re.ReadLinks(path)
	require.NoError(t, err)
	assert.Equal(t, 2, summary.Added)
}

type failingReader struct{ sent bool }

func (f *failingReader) Read(p []byte) (int, error) {
	if !f.sent {
		f.sent = true
		return copy(p, "A\tB\n"), nil
	}
	return 0, fmt.Errorf("disk on fire")
}

func TestLoadLinksReadErrorAddsNothing(t *testing.T) {
	re := loadEngine(t)
	_, err := re.LoadLinks(strings.NewReader("C\tD\n"))
	require.NoError(t, err)

	summary, err := re.LoadLinks(&failingReader{})
	assert.Error(t, err)
	assert.Equal(t, 0, summary.Added)
	assert.Equal(t, 1, re.Count())
}

func TestParseSearchStrategy(t *testing.T) {
	s, err := ParseSearchStrategy("heap")
	require.NoError(t, err)
	assert.Equal(t, PRIORITY_QUEUE, s)

	s, err = ParseSearchStrategy("")
	require.NoError(t, err)
	assert.Equal(t, LINEAR_SCAN, s)

	_, err = ParseSearchStrategy("bellman-ford")
	assert.Error(t, err)
}
