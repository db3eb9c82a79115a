package controllers

import (
	"github.com/lintang-b-s/routeplanner/pkg"
	da "github.com/lintang-b-s/routeplanner/pkg/datastructure"
	"github.com/lintang-b-s/routeplanner/pkg/http/usecases"
	"github.com/lintang-b-s/routeplanner/pkg/util"
)

type shortestRouteRequest struct {
	From string `json:"from" validate:"required"`
	To   string `json:"to" validate:"required"`
	Mode string `json:"mode" validate:"required"`
}

type shortestRoutesRequest struct {
	Queries []shortestRouteRequest `json:"queries" validate:"required,min=1,dive"`
}

type linkResponse struct {
	From     string  `json:"from"`
	To       string  `json:"to"`
	Distance float64 `json:"distance"`
	Mode     string  `json:"mode"`
}

func newLinksResponse(links []da.Link) []linkResponse {
	out := make([]linkResponse, 0, len(links))
	for _, l := range links {
		out = append(out, linkResponse{
			From:     l.GetFrom().GetName(),
			To:       l.GetTo().GetName(),
			Distance: util.RoundFloat(l.GetDistance(), 3),
			Mode:     l.GetTransportMode().String(),
		})
	}
	return out
}

type shortestRouteResponse struct {
	From  string         `json:"from"`
	To    string         `json:"to"`
	Mode  string         `json:"mode"`
	Dist  float64        `json:"distance"`
	Path  string         `json:"path"`
	Links []linkResponse `json:"links"`
}

func NewShortestRouteResponse(route usecases.Route, mode pkg.TransportMode) shortestRouteResponse {
	return shortestRouteResponse{
		From:  route.From.GetName(),
		To:    route.To.GetName(),
		Mode:  mode.String(),
		Dist:  util.RoundFloat(route.Distance, 3),
		Path:  route.Polyline,
		Links: newLinksResponse(route.Links),
	}
}

type batchRouteResponse struct {
	Found bool                   `json:"found"`
	Route *shortestRouteResponse `json:"route,omitempty"`
	Error string                 `json:"error,omitempty"`
}

func NewBatchRouteResponse(results []usecases.RouteResult) []batchRouteResponse {
	out := make([]batchRouteResponse, 0, len(results))
	for _, r := range results {
		if r.Err != nil {
			out = append(out, batchRouteResponse{Error: r.Err.Error()})
			continue
		}
		route := NewShortestRouteResponse(r.Route, r.Query.Mode)
		out = append(out, batchRouteResponse{Found: true, Route: &route})
	}
	return out
}

type cityResponse struct {
	Name       string  `json:"name"`
	Country    string  `json:"country"`
	Population int     `json:"population"`
	Lat        float64 `json:"lat"`
	Lon        float64 `json:"lon"`
}

func NewCitiesResponse(cities []da.City) []cityResponse {
	out := make([]cityResponse, 0, len(cities))
	for _, c := range cities {
		out = append(out, cityResponse{
			Name:       c.GetName(),
			Country:    c.GetCountry(),
			Population: c.GetPopulation(),
			Lat:        c.GetLocation().GetLat(),
			Lon:        c.GetLocation().GetLon(),
		})
	}
	return out
}

type errorResponse struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}
