package routing

import (
	"github.com/lintang-b-s/routeplanner/pkg"
	da "github.com/lintang-b-s/routeplanner/pkg/datastructure"
	"go.uber.org/zap"
)

// FindShortestRoute returns the links of a shortest fromName->toName route using only links of the given mode,
// in travel order. found is false when a name does not resolve, the link set is empty or the two cities are
// not connected under mode. A query from a city to itself returns an empty route.
// Observers are notified before anything else.
func (re *RoutingEngine) FindShortestRoute(fromName, toName string, mode pkg.TransportMode) ([]da.Link, bool) {
	re.notifyRouteRequest(RouteRequest{From: fromName, To: toName, Mode: mode})

	from, okFrom := re.cities.FindCity(fromName)
	to, okTo := re.cities.FindCity(toName)
	if !okFrom || !okTo {
		re.logger.Debug("route endpoint not found",
			zap.String("from", fromName), zap.Bool("fromFound", okFrom),
			zap.String("to", toName), zap.Bool("toFound", okTo))
		return nil, false
	}
	if from.Equal(to) {
		return []da.Link{}, true
	}

	re.mu.RLock()
	defer re.mu.RUnlock()

	key := routeCacheKey{from: from.Key(), to: to.Key(), mode: mode}
	if re.cache != nil {
		if entry, ok := re.cache.Get(key); ok {
			return copyLinks(entry.links), entry.found
		}
	}

	links, found := re.search(from, to, mode)
	if re.cache != nil {
		re.cache.Add(key, routeCacheEntry{links: copyLinks(links), found: found})
	}
	return links, found
}

// search. caller must hold the read lock
func (re *RoutingEngine) search(from, to da.City, mode pkg.TransportMode) ([]da.Link, bool) {
	if len(re.links) == 0 {
		return nil, false
	}

	var filtered []da.City
	if re.filter != nil {
		filtered = re.filter.CitiesBetween(from, to)
	} else {
		filtered = distinctCitiesByMode(re.links, mode)
	}
	candidates := make([]da.City, 0, len(filtered)+2)
	candidates = append(candidates, filtered...)
	candidates = append(candidates, from, to)

	sg := newSearchGraph(candidates, re.links, mode)
	source := sg.index[from.Key()]
	target := sg.index[to.Key()]

	var infos []vertexInfo
	switch re.strategy {
	case PRIORITY_QUEUE:
		infos = sg.priorityQueueSearch(source, target)
	default:
		infos = sg.linearScanSearch(source, target)
	}

	path, found := sg.path(source, target, infos)
	if !found {
		re.logger.Debug("no route",
			zap.String("from", from.GetName()), zap.String("to", to.GetName()), zap.Stringer("mode", mode),
			zap.Int("candidates", sg.numberOfVertices()))
		return nil, false
	}
	return path, true
}

func copyLinks(links []da.Link) []da.Link {
	if links == nil {
		return nil
	}
	out := make([]da.Link, len(links))
	copy(out, links)
	return out
}
