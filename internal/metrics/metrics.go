// Package metrics holds the Prometheus collectors of the assistant.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"voice-assistant/internal/model"
)

const namespace = "voice_assistant"

// Metrics is the set of collectors registered on one registry.
type Metrics struct {
	gatherer prometheus.Gatherer

	RequestCount     *prometheus.CounterVec
	RequestDuration  *prometheus.HistogramVec
	Intents          *prometheus.CounterVec
	Replies          *prometheus.CounterVec
	ReplyTurns       prometheus.Histogram
	ToolCalls        *prometheus.CounterVec
	MemoryOperations *prometheus.CounterVec
	ActiveSockets    prometheus.Gauge
}

// New registers the collectors on a fresh registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	f := promauto.With(reg)

	return &Metrics{
		gatherer: reg,
		RequestCount: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		}, []string{"method", "endpoint", "status"}),
		RequestDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds",
		}, []string{"method", "endpoint"}),
		Intents: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "intents_total",
			Help:      "Utterances by routed intent",
		}, []string{"intent"}),
		Replies: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "model_replies_total",
			Help:      "Conversation replies by the tier that produced them",
		}, []string{"tier"}),
		ReplyTurns: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "model_reply_generations",
			Help:      "Generations used per conversation reply",
			Buckets:   []float64{1, 2, 3, 4, 5},
		}),
		ToolCalls: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tool_calls_total",
			Help:      "Tool calls made by the tool-use loop",
		}, []string{"server", "tool"}),
		MemoryOperations: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "memory_operations_total",
			Help:      "Memory writes by outcome",
		}, []string{"outcome"}),
		ActiveSockets: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "active_websockets",
			Help:      "Number of open voice websockets",
		}),
	}
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}

// ObserveRequest records one HTTP request.
func (m *Metrics) ObserveRequest(method, endpoint string, status int, elapsed time.Duration) {
	m.RequestCount.WithLabelValues(method, endpoint, strconv.Itoa(status)).Inc()
	m.RequestDuration.WithLabelValues(method, endpoint).Observe(elapsed.Seconds())
}

// ObserveIntent counts one routed utterance.
func (m *Metrics) ObserveIntent(name model.IntentName) {
	m.Intents.WithLabelValues(string(name)).Inc()
}

// ObserveReply records a conversation reply and the tools it used.
func (m *Metrics) ObserveReply(tier model.Tier, turns int, calls []model.ToolCall) {
	m.Replies.WithLabelValues(string(tier)).Inc()
	m.ReplyTurns.Observe(float64(turns))
	for _, c := range calls {
		m.ToolCalls.WithLabelValues(c.ServerID, c.ToolName).Inc()
	}
}

// ObserveMemoryWrite counts one AddMemory outcome.
func (m *Metrics) ObserveMemoryWrite(ok bool) {
	outcome := "failed"
	if ok {
		outcome = "stored"
	}
	m.MemoryOperations.WithLabelValues(outcome).Inc()
}
