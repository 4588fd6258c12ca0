package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/lintang-b-s/navigatorx-guidance/pkg/guidance"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "navigatorx"

/*
Metrics. counter hasil klasifikasi turn + histogram durasi request http.
semua method aman dipanggil di nil *Metrics (dipakai kalau metrics dimatikan).
*/
type Metrics struct {
	registry        *prometheus.Registry
	classifiedTurns *prometheus.CounterVec
	junctions       prometheus.Counter
	requestDuration *prometheus.HistogramVec
}

func NewMetrics(reg *prometheus.Registry) *Metrics {
	m := &Metrics{
		registry: reg,
		classifiedTurns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "guidance",
			Name:      "classified_turns_total",
			Help:      "Number of classified turn candidates by turn type and direction modifier.",
		}, []string{"type", "modifier", "valid"}),
		junctions: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "guidance",
			Name:      "analyzed_approaches_total",
			Help:      "Number of (from node, via edge) approaches run through turn analysis.",
		}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of http requests.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
	}
	reg.MustRegister(m.classifiedTurns, m.junctions, m.requestDuration)
	return m
}

// NewDefaultMetrics registers the go runtime and process collectors next to the guidance metrics.
func NewDefaultMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	return NewMetrics(reg)
}

func (m *Metrics) ObserveTurns(turns []guidance.TurnCandidate) {
	if m == nil {
		return
	}
	m.junctions.Inc()
	for _, c := range turns {
		m.classifiedTurns.WithLabelValues(c.Instruction.Type.String(), c.Instruction.Modifier.String(),
			strconv.FormatBool(c.Valid)).Inc()
	}
}

func (m *Metrics) ObserveRequest(method, route string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.requestDuration.WithLabelValues(method, route, strconv.Itoa(status)).Observe(elapsed.Seconds())
}

func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
