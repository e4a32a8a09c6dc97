package metrics

import (
	"net/http"

	"github.com/badnails/TestProjectGateway/internal/domain"
	"github.com/badnails/TestProjectGateway/internal/ports"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder counts flow events on its own registry so repeated construction
// in tests never collides with the global one.
type Recorder struct {
	registry        *prometheus.Registry
	stepTransitions *prometheus.CounterVec
	gatewayRequests *prometheus.CounterVec
	sessionResets   prometheus.Counter
}

var _ ports.FlowObserver = (*Recorder)(nil)

func NewRecorder() *Recorder {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(registry)

	return &Recorder{
		registry: registry,
		stepTransitions: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "paygate_step_transitions_total",
				Help: "Total confirmation flow step transitions",
			},
			[]string{"from", "to"},
		),
		gatewayRequests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "paygate_gateway_requests_total",
				Help: "Total payment gateway requests by outcome",
			},
			[]string{"operation", "outcome"},
		),
		sessionResets: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "paygate_session_resets_total",
				Help: "Total stored sessions discarded on load",
			},
		),
	}
}

func (r *Recorder) StepChanged(from, to domain.Step) {
	r.stepTransitions.WithLabelValues(string(from), string(to)).Inc()
}

func (r *Recorder) GatewayCalled(op ports.GatewayOperation, outcome ports.GatewayOutcome) {
	r.gatewayRequests.WithLabelValues(string(op), string(outcome)).Inc()
}

func (r *Recorder) SessionReset() {
	r.sessionResets.Inc()
}

func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{Registry: r.registry})
}
