package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/lintang-b-s/navigatorx-guidance/pkg/guidance"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// counterValue. nilai counter dengan label persis sama, 0 kalau tidak ada.
func counterValue(t *testing.T, reg *prometheus.Registry, name string, labels map[string]string) float64 {
	t.Helper()
	families, err := reg.Gather()
	require.NoError(t, err)
	for _, mf := range families {
		if mf.GetName() != name {
			continue
		}
	metricLoop:
		for _, metric := range mf.GetMetric() {
			for _, lp := range metric.GetLabel() {
				if labels[lp.GetName()] != lp.GetValue() {
					continue metricLoop
				}
			}
			return metric.GetCounter().GetValue()
		}
	}
	return 0
}

func TestObserveTurns(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)
	m.ObserveTurns([]guidance.TurnCandidate{
		{Valid: false, Instruction: guidance.UTurn()},
		{Valid: true, Angle: 90, Instruction: guidance.NewTurnInstruction(guidance.TURN_TURN, guidance.DIRECTION_RIGHT)},
		{Valid: true, Angle: 270, Instruction: guidance.NewTurnInstruction(guidance.TURN_TURN, guidance.DIRECTION_RIGHT)},
	})

	assert.Equal(t, 1.0, counterValue(t, reg, "navigatorx_guidance_analyzed_approaches_total", nil))
	assert.Equal(t, 2.0, counterValue(t, reg, "navigatorx_guidance_classified_turns_total", map[string]string{
		"type": guidance.TURN_TURN.String(), "modifier": guidance.DIRECTION_RIGHT.String(), "valid": "true",
	}))
	assert.Equal(t, 1.0, counterValue(t, reg, "navigatorx_guidance_classified_turns_total", map[string]string{
		"type": guidance.TURN_UTURN.String(), "modifier": guidance.DIRECTION_UTURN.String(), "valid": "false",
	}))
}

func TestHandlerExposesRequestDuration(t *testing.T) {
	m := NewDefaultMetrics()
	m.ObserveRequest(http.MethodGet, "/api/turns/edge/:edge_id", http.StatusOK, 15*time.Millisecond)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), "navigatorx_http_request_duration_seconds"))
}

func TestNilMetrics(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveTurns([]guidance.TurnCandidate{{Valid: true}})
		m.ObserveRequest(http.MethodGet, "/", http.StatusOK, time.Millisecond)
	})
	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
