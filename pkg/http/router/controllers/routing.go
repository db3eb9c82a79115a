package controllers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"
	"github.com/julienschmidt/httprouter"
	"github.com/lintang-b-s/routeplanner/pkg"
	helper "github.com/lintang-b-s/routeplanner/pkg/http/router/routerhelper"
	"github.com/lintang-b-s/routeplanner/pkg/http/usecases"
	"go.uber.org/zap"
)

type routingAPI struct {
	routingService  RoutingService
	log             *zap.Logger
	maxBatchQueries int

	validate *validator.Validate
	trans    ut.Translator
}

func New(routingService RoutingService, maxBatchQueries int, log *zap.Logger) *routingAPI {
	validate := validator.New()
	english := en.New()
	uni := ut.New(english, english)
	trans, _ := uni.GetTranslator("en")
	_ = enTranslations.RegisterDefaultTranslations(validate, trans)

	return &routingAPI{
		routingService:  routingService,
		log:             log,
		maxBatchQueries: maxBatchQueries,
		validate:        validate,
		trans:           trans,
	}
}

func (api *routingAPI) Routes(group *helper.RouteGroup) {
	group.GET("/computeRoutes", api.shortestRoute)
	group.POST("/computeRoutesBatch", api.shortestRoutes)
	group.GET("/cities", api.cities)
	group.GET("/neighbors", api.neighbors)
}

func (api *routingAPI) shortestRoute(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	query := r.URL.Query()
	request := shortestRouteRequest{
		From: query.Get("from"),
		To:   query.Get("to"),
		Mode: query.Get("mode"),
	}
	if err := api.validateRequest(request); err != nil {
		api.BadRequestResponse(w, r, err)
		return
	}
	mode, err := pkg.ParseTransportMode(request.Mode)
	if err != nil {
		api.BadRequestResponse(w, r, err)
		return
	}

	route, err := api.routingService.ShortestRoute(request.From, request.To, mode)
	if err != nil {
		api.getStatusCode(w, r, err)
		return
	}

	headers := make(http.Header)
	if err := api.writeJSON(w, http.StatusOK, envelope{"data": NewShortestRouteResponse(route, mode)}, headers); err != nil {
		api.ServerErrorResponse(w, r, err)
		return
	}
}

func (api *routingAPI) shortestRoutes(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	var request shortestRoutesRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		api.BadRequestResponse(w, r, err)
		return
	}
	if err := r.Body.Close(); err != nil {
		api.ServerErrorResponse(w, r, err)
		return
	}

	if err := api.validateRequest(request); err != nil {
		api.BadRequestResponse(w, r, err)
		return
	}
	if api.maxBatchQueries > 0 && len(request.Queries) > api.maxBatchQueries {
		api.BadRequestResponse(w, r, fmt.Errorf("at most %d queries per batch", api.maxBatchQueries))
		return
	}

	queries := make([]usecases.RouteQuery, 0, len(request.Queries))
	for i, q := range request.Queries {
		mode, err := pkg.ParseTransportMode(q.Mode)
		if err != nil {
			api.BadRequestResponse(w, r, fmt.Errorf("queries[%d]: %w", i, err))
			return
		}
		queries = append(queries, usecases.RouteQuery{From: q.From, To: q.To, Mode: mode})
	}

	results, err := api.routingService.ShortestRoutes(r.Context(), queries)
	if err != nil {
		api.ServerErrorResponse(w, r, err)
		return
	}

	if err := api.writeJSON(w, http.StatusOK, envelope{"data": NewBatchRouteResponse(results)}, nil); err != nil {
		api.ServerErrorResponse(w, r, err)
		return
	}
}

func (api *routingAPI) cities(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	mode, err := pkg.ParseTransportMode(r.URL.Query().Get("mode"))
	if err != nil {
		api.BadRequestResponse(w, r, err)
		return
	}

	if err := api.writeJSON(w, http.StatusOK, envelope{"data": NewCitiesResponse(api.routingService.Cities(mode))}, nil); err != nil {
		api.ServerErrorResponse(w, r, err)
		return
	}
}

func (api *routingAPI) neighbors(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	query := r.URL.Query()
	cityName := query.Get("city")
	if cityName == "" {
		api.BadRequestResponse(w, r, fmt.Errorf("city is required"))
		return
	}
	mode, err := pkg.ParseTransportMode(query.Get("mode"))
	if err != nil {
		api.BadRequestResponse(w, r, err)
		return
	}

	city, neighbors, err := api.routingService.Neighbors(cityName, mode)
	if err != nil {
		api.getStatusCode(w, r, err)
		return
	}

	data := envelope{
		"city":      city.GetName(),
		"mode":      mode.String(),
		"neighbors": NewCitiesResponse(neighbors),
	}
	if err := api.writeJSON(w, http.StatusOK, envelope{"data": data}, nil); err != nil {
		api.ServerErrorResponse(w, r, err)
		return
	}
}
