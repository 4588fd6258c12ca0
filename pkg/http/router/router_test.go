package router

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	da "github.com/lintang-b-s/navigatorx-guidance/pkg/datastructure"
	"github.com/lintang-b-s/navigatorx-guidance/pkg/guidance"
	"github.com/lintang-b-s/navigatorx-guidance/pkg/http/usecases"
	"github.com/lintang-b-s/navigatorx-guidance/pkg/metrics"
	"github.com/lintang-b-s/navigatorx-guidance/pkg/spatialindex"
	"github.com/lintang-b-s/navigatorx-guidance/pkg/util"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

type fakeTurnService struct {
	lastEdge  int64
	lastPath  []int64
	panicking bool
}

func (f *fakeTurnService) TurnsAtEdge(edgeID int64) (usecases.Approach, error) {
	if f.panicking {
		panic("corrupted turn table")
	}
	f.lastEdge = edgeID
	if edgeID == 404 {
		return usecases.Approach{}, util.WrapErrorf(nil, util.ErrNotFound, "edge %d not found", edgeID)
	}
	return usecases.Approach{
		ViaEdge:    da.Index(edgeID),
		FromNode:   3,
		StreetName: "Jalan Kaliurang",
		FromStore:  true,
		Turns: []usecases.Turn{
			{
				Record:      da.TurnRecord{ToEdge: 9, Angle: 90, Valid: true, Penalty: 7.2},
				Instruction: guidance.NewTurnInstruction(guidance.TURN_TURN, guidance.DIRECTION_RIGHT),
				StreetName:  "Jalan Colombo",
				Announced:   true,
			},
			{
				Record:      da.TurnRecord{ToEdge: 10, Angle: 0},
				Instruction: guidance.NewTurnInstruction(guidance.TURN_INVALID, guidance.DIRECTION_UTURN),
			},
		},
	}, nil
}

func (f *fakeTurnService) TurnsAtJunction(lat, lon float64) (usecases.JunctionTurns, error) {
	a, _ := f.TurnsAtEdge(1)
	return usecases.JunctionTurns{
		Junction:   spatialindex.Junction{Vertex: 5, Lat: lat, Lon: lon, Degree: 4},
		Approaches: []usecases.Approach{a},
	}, nil
}

func (f *fakeTurnService) JunctionGeoJSON(lat, lon float64) (*geojson.FeatureCollection, error) {
	fc := geojson.NewFeatureCollection()
	fc.Append(geojson.NewFeature(orb.Point{lon, lat}))
	return fc, nil
}

func (f *fakeTurnService) Directions(edgeIDs []int64) ([]guidance.RouteStep, error) {
	f.lastPath = edgeIDs
	return []guidance.RouteStep{{Instruction: guidance.Depart(), Text: "Depart"}}, nil
}

func newTestHandler(t *testing.T, svc *fakeTurnService, rateLimit RateLimit) (http.Handler, *metrics.Metrics) {
	t.Helper()
	m := metrics.NewMetrics(prometheus.NewRegistry())
	return NewAPI(zaptest.NewLogger(t), m).Handler(svc, rateLimit), m
}

func do(h http.Handler, method, target, contentType, body string) *httptest.ResponseRecorder {
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, r)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestEdgeTurns(t *testing.T) {
	svc := &fakeTurnService{}
	h, _ := newTestHandler(t, svc, RateLimit{})

	rec := do(h, http.MethodGet, "/api/turns/edge/42", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(42), svc.lastEdge)

	data := decode(t, rec)["data"].(map[string]any)
	assert.Equal(t, 42.0, data["via_edge"])
	assert.Equal(t, true, data["cached"])
	turns := data["turns"].([]any)
	require.Len(t, turns, 2)

	right := turns[0].(map[string]any)
	assert.Equal(t, "turn", right["turn_type"])
	maneuver := right["maneuver"].(map[string]any)
	assert.Equal(t, "right", maneuver["modifier"])
	assert.Equal(t, "Turn right onto Jalan Colombo", maneuver["text"])

	_, hasManeuver := turns[1].(map[string]any)["maneuver"]
	assert.False(t, hasManeuver)
}

func TestEdgeTurnsErrors(t *testing.T) {
	h, _ := newTestHandler(t, &fakeTurnService{}, RateLimit{})

	testCases := []struct {
		name   string
		target string
		want   int
	}{
		{"not a number", "/api/turns/edge/jalan", http.StatusBadRequest},
		{"negative", "/api/turns/edge/-3", http.StatusBadRequest},
		{"unknown edge", "/api/turns/edge/404", http.StatusNotFound},
		{"unknown route", "/api/turns/vertex/1", http.StatusNotFound},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(h, http.MethodGet, tt.target, "", "")
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}

func TestJunctionTurns(t *testing.T) {
	h, _ := newTestHandler(t, &fakeTurnService{}, RateLimit{})

	rec := do(h, http.MethodGet, "/api/turns/junction?lat=-7.7829&lon=110.3671", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	data := decode(t, rec)["data"].(map[string]any)
	assert.Equal(t, 5.0, data["vertex"])
	assert.Len(t, data["approaches"], 1)

	rec = do(h, http.MethodGet, "/api/turns/junction?lat=-97&lon=110.3671", "", "")
	require.Equal(t, http.StatusBadRequest, rec.Code)
	body := decode(t, rec)["error"].(map[string]any)
	assert.Equal(t, "validation error", body["message"])
	assert.NotEmpty(t, body["validation"])

	rec = do(h, http.MethodGet, "/api/turns/junction?lat=-7.7829", "", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestJunctionGeoJSON(t *testing.T) {
	h, _ := newTestHandler(t, &fakeTurnService{}, RateLimit{})

	rec := do(h, http.MethodGet, "/api/turns/junction/geojson?lat=-7.7829&lon=110.3671", "", "")
	require.Equal(t, http.StatusOK, rec.Code)

	fc, err := geojson.UnmarshalFeatureCollection(rec.Body.Bytes())
	require.NoError(t, err)
	require.Len(t, fc.Features, 1)
	assert.Equal(t, orb.Point{110.3671, -7.7829}, fc.Features[0].Geometry)
}

func TestDirections(t *testing.T) {
	svc := &fakeTurnService{}
	h, _ := newTestHandler(t, svc, RateLimit{})

	rec := do(h, http.MethodPost, "/api/turns/directions", "application/json", `{"edge_ids":[4,7]}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []int64{4, 7}, svc.lastPath)

	rec = do(h, http.MethodPost, "/api/turns/directions", "application/json", `{"edge_ids":[]}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(h, http.MethodPost, "/api/turns/directions", "text/plain", `{"edge_ids":[4]}`)
	assert.Equal(t, http.StatusUnsupportedMediaType, rec.Code)
}

func TestMiddlewares(t *testing.T) {
	svc := &fakeTurnService{}
	h, m := newTestHandler(t, svc, RateLimit{Enabled: true, RPS: 0.001, Burst: 1})

	rec := do(h, http.MethodGet, "/healthz", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, ".", rec.Body.String())

	// healthz dijawab sebelum rate limiter
	rec = do(h, http.MethodGet, "/api/turns/edge/1", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	rec = do(h, http.MethodGet, "/api/turns/edge/1", "", "")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)

	mh := httptest.NewRecorder()
	m.Handler().ServeHTTP(mh, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Contains(t, mh.Body.String(), `navigatorx_http_request_duration_seconds_count{method="GET",route="/api/turns/edge/:id",status="429"} 1`)
}

func TestRecoverPanic(t *testing.T) {
	h, _ := newTestHandler(t, &fakeTurnService{panicking: true}, RateLimit{})

	rec := do(h, http.MethodGet, "/api/turns/edge/1", "", "")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "close", rec.Header().Get("Connection"))
}

func TestRouteLabel(t *testing.T) {
	assert.Equal(t, "/api/turns/edge/:id", routeLabel("/api/turns/edge/1234"))
	assert.Equal(t, "/api/turns/junction", routeLabel("/api/turns/junction"))
	assert.Equal(t, "/", routeLabel("/"))
}

func TestRealIP(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Forwarded-For", "10.1.2.3, 192.168.0.1")
	assert.Equal(t, "10.1.2.3", realIP(req))

	req.Header.Set("X-Real-IP", "172.16.0.9")
	assert.Equal(t, "172.16.0.9", realIP(req))
}
