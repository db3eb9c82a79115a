package usecases

import (
	"github.com/lintang-b-s/routeplanner/pkg"
	da "github.com/lintang-b-s/routeplanner/pkg/datastructure"
	"github.com/lintang-b-s/routeplanner/pkg/engine/routing"
)

type RoutingEngine interface {
	routing.Router
	DistinctCitiesByMode(mode pkg.TransportMode) []da.City
	NeighborsOf(city da.City, mode pkg.TransportMode) []da.City
}

type CityLookup interface {
	routing.CityLookup
}
