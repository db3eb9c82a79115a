package routing

import (
	"github.com/lintang-b-s/routeplanner/pkg"
	da "github.com/lintang-b-s/routeplanner/pkg/datastructure"
)

// DistinctCitiesByMode returns every city touched by a link of the given mode, once, in first-seen order.
func (re *RoutingEngine) DistinctCitiesByMode(mode pkg.TransportMode) []da.City {
	re.mu.RLock()
	defer re.mu.RUnlock()
	return distinctCitiesByMode(re.links, mode)
}

// NeighborsOf returns the opposite endpoint of every link of the given mode touching city, one entry per link.
func (re *RoutingEngine) NeighborsOf(city da.City, mode pkg.TransportMode) []da.City {
	re.mu.RLock()
	defer re.mu.RUnlock()

	neighbors := make([]da.City, 0)
	for _, l := range re.links {
		if l.HasMode(mode) && l.Connects(city) {
			neighbors = append(neighbors, l.Other(city))
		}
	}
	return neighbors
}

func distinctCitiesByMode(links []da.Link, mode pkg.TransportMode) []da.City {
	seen := make(map[string]struct{})
	cities := make([]da.City, 0)
	add := func(c da.City) {
		if _, ok := seen[c.Key()]; ok {
			return
		}
		seen[c.Key()] = struct{}{}
		cities = append(cities, c)
	}
	for _, l := range links {
		if !l.HasMode(mode) {
			continue
		}
		add(l.GetFrom())
		add(l.GetTo())
	}
	return cities
}
