package routing

import (
	"github.com/lintang-b-s/routeplanner/pkg"
	da "github.com/lintang-b-s/routeplanner/pkg/datastructure"
)

// CityLookup resolves a city name. It is implemented by the city registry.
type CityLookup interface {
	FindCity(name string) (da.City, bool)
}

// CandidateFilter bounds the search space of a query around its two endpoints.
type CandidateFilter interface {
	CitiesBetween(source, target da.City) []da.City
}

// CandidateFilterFunc adapts a plain function, e.g. (*registry.Cities).FindCitiesBetween.
type CandidateFilterFunc func(source, target da.City) []da.City

func (f CandidateFilterFunc) CitiesBetween(source, target da.City) []da.City {
	return f(source, target)
}

type RouteRequest struct {
	From string
	To   string
	Mode pkg.TransportMode
}

// RouteRequestObserver is notified synchronously before every route search.
type RouteRequestObserver interface {
	OnRouteRequest(req RouteRequest)
}

type RouteRequestObserverFunc func(req RouteRequest)

func (f RouteRequestObserverFunc) OnRouteRequest(req RouteRequest) {
	f(req)
}

type Router interface {
	FindShortestRoute(fromName, toName string, mode pkg.TransportMode) ([]da.Link, bool)
}
