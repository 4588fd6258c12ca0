package controllers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/julienschmidt/httprouter"
	helper "github.com/lintang-b-s/navigatorx-guidance/pkg/http/router/routerhelper"
	"go.uber.org/zap"
)

type turnAPI struct {
	turnService TurnService
	validator   *requestValidator
	log         *zap.Logger
}

func New(turnService TurnService, log *zap.Logger) *turnAPI {
	return &turnAPI{
		turnService: turnService,
		validator:   newRequestValidator(),
		log:         log,
	}
}

func (api *turnAPI) Routes(group *helper.RouteGroup) {
	turns := group.Group("/turns")
	turns.GET("/edge/:edge_id", api.edgeTurns)
	turns.GET("/junction", api.junctionTurns)
	turns.GET("/junction/geojson", api.junctionGeoJSON)
	turns.POST("/directions", api.directions)
}

// edgeTurns
//
//	@Summary		kandidat turn setelah melewati satu edge
//	@Description	turn table (angle, instruksi, penalty) untuk via edge edge_id. diambil dari kv, dihitung ulang kalau tidak ada.
//	@Tags			turns
//	@Param			edge_id	path	int	true	"via edge id"
//	@Produce		application/json
//	@Router			/turns/edge/{edge_id} [get]
//	@Success		200	{object}	approachResponse
//	@Failure		400	{object}	errorResponse
//	@Failure		404	{object}	errorResponse
func (api *turnAPI) edgeTurns(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	var (
		request edgeTurnsRequest
		err     error
	)

	request.EdgeID, err = strconv.ParseInt(p.ByName("edge_id"), 10, 64)
	if err != nil {
		api.BadRequestResponse(w, r, errors.New("edge_id must be a valid integer"))
		return
	}
	if vv := api.validator.Struct(request); vv != nil {
		api.ValidationErrorResponse(w, r, vv)
		return
	}

	approach, err := api.turnService.TurnsAtEdge(request.EdgeID)
	if err != nil {
		api.getStatusCode(w, r, err)
		return
	}

	if err := api.writeJSON(w, http.StatusOK, envelope{"data": NewApproachResponse(approach)}, nil); err != nil {
		api.ServerErrorResponse(w, r, err)
	}
}

func (api *turnAPI) parseJunctionRequest(w http.ResponseWriter, r *http.Request) (junctionRequest, bool) {
	var (
		request junctionRequest
		err     error
	)
	request.Lat, err = queryFloat(r, "lat")
	if err != nil {
		api.BadRequestResponse(w, r, err)
		return request, false
	}
	request.Lon, err = queryFloat(r, "lon")
	if err != nil {
		api.BadRequestResponse(w, r, err)
		return request, false
	}
	if vv := api.validator.Struct(request); vv != nil {
		api.ValidationErrorResponse(w, r, vv)
		return request, false
	}
	return request, true
}

// junctionTurns
//
//	@Summary		turn semua approach di junction terdekat
//	@Tags			turns
//	@Param			lat	query	number	true	"latitude"
//	@Param			lon	query	number	true	"longitude"
//	@Produce		application/json
//	@Router			/turns/junction [get]
//	@Success		200	{object}	junctionResponse
//	@Failure		400	{object}	errorResponse
//	@Failure		404	{object}	errorResponse
func (api *turnAPI) junctionTurns(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	request, ok := api.parseJunctionRequest(w, r)
	if !ok {
		return
	}

	junction, err := api.turnService.TurnsAtJunction(request.Lat, request.Lon)
	if err != nil {
		api.getStatusCode(w, r, err)
		return
	}

	if err := api.writeJSON(w, http.StatusOK, envelope{"data": NewJunctionResponse(junction)}, nil); err != nil {
		api.ServerErrorResponse(w, r, err)
	}
}

// junctionGeoJSON
//
//	@Summary		geometri junction terdekat sebagai geojson FeatureCollection
//	@Tags			turns
//	@Param			lat	query	number	true	"latitude"
//	@Param			lon	query	number	true	"longitude"
//	@Produce		application/geo+json
//	@Router			/turns/junction/geojson [get]
//	@Failure		400	{object}	errorResponse
//	@Failure		404	{object}	errorResponse
func (api *turnAPI) junctionGeoJSON(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	request, ok := api.parseJunctionRequest(w, r)
	if !ok {
		return
	}

	fc, err := api.turnService.JunctionGeoJSON(request.Lat, request.Lon)
	if err != nil {
		api.getStatusCode(w, r, err)
		return
	}

	// FeatureCollection langsung, tanpa envelope, supaya bisa dibuka di geojson viewer
	if err := api.writeJSON(w, http.StatusOK, fc, nil); err != nil {
		api.ServerErrorResponse(w, r, err)
	}
}

// directions
//
//	@Summary		langkah navigasi untuk path (urutan edge id)
//	@Tags			turns
//	@Param			body	body	directionsRequest	true	"edge ids"
//	@Accept			application/json
//	@Produce		application/json
//	@Router			/turns/directions [post]
//	@Success		200	{object}	directionsResponse
//	@Failure		400	{object}	errorResponse
func (api *turnAPI) directions(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	var request directionsRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		api.BadRequestResponse(w, r, err)
		return
	}
	if err := r.Body.Close(); err != nil {
		api.ServerErrorResponse(w, r, err)
		return
	}
	if vv := api.validator.Struct(request); vv != nil {
		api.ValidationErrorResponse(w, r, vv)
		return
	}

	steps, err := api.turnService.Directions(request.EdgeIDs)
	if err != nil {
		api.getStatusCode(w, r, err)
		return
	}

	if err := api.writeJSON(w, http.StatusOK, envelope{"data": NewDirectionsResponse(steps)}, nil); err != nil {
		api.ServerErrorResponse(w, r, err)
	}
}
