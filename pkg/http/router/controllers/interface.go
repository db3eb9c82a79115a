package controllers

import (
	"context"

	"github.com/lintang-b-s/routeplanner/pkg"
	da "github.com/lintang-b-s/routeplanner/pkg/datastructure"
	"github.com/lintang-b-s/routeplanner/pkg/http/usecases"
)

type RoutingService interface {
	ShortestRoute(fromName, toName string, mode pkg.TransportMode) (usecases.Route, error)
	ShortestRoutes(ctx context.Context, queries []usecases.RouteQuery) ([]usecases.RouteResult, error)
	Cities(mode pkg.TransportMode) []da.City
	Neighbors(cityName string, mode pkg.TransportMode) (da.City, []da.City, error)
}
