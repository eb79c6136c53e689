package metrics

import (
	"strconv"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

const namespace = "hxhooks"

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	requestDuration *prom.HistogramVec
	transitions     *prom.CounterVec
	validations     *prom.CounterVec
	debounce        *prom.CounterVec
	activeOwners    prom.Gauge
}

// NewPrometheusRecorder constructs the metrics and registers them on reg.
// A nil reg gets a fresh private registry.
func NewPrometheusRecorder(reg prom.Registerer) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{
		requestDuration: prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "component_request_duration_seconds",
			Help:      "Component request latency by component, action and status",
			Buckets:   prom.DefBuckets,
		}, []string{"component", "action", "status"}),
		transitions: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "state_transitions_total",
			Help:      "State container transitions by container and operation",
		}, []string{"container", "op"}),
		validations: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "form_validations_total",
			Help:      "Form validation runs by form and outcome",
		}, []string{"form", "result"}),
		debounce: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "debounce_events_total",
			Help:      "Debouncer lifecycle events",
		}, []string{"event"}),
		activeOwners: prom.NewGauge(prom.GaugeOpts{
			Namespace: namespace,
			Name:      "active_owners",
			Help:      "Live per-owner debouncers held by the demo",
		}),
	}
	reg.MustRegister(pr.requestDuration, pr.transitions, pr.validations, pr.debounce, pr.activeOwners)
	return pr
}

func (p *PrometheusRecorder) ObserveRequest(component, action string, status int, elapsed time.Duration) {
	if p == nil {
		return
	}
	p.requestDuration.WithLabelValues(component, action, strconv.Itoa(status)).Observe(elapsed.Seconds())
}

func (p *PrometheusRecorder) IncTransition(container, op string) {
	if p == nil {
		return
	}
	p.transitions.WithLabelValues(container, op).Inc()
}

func (p *PrometheusRecorder) IncValidation(form string, valid bool) {
	if p == nil {
		return
	}
	res := "invalid"
	if valid {
		res = "valid"
	}
	p.validations.WithLabelValues(form, res).Inc()
}

func (p *PrometheusRecorder) IncDebounce(event DebounceEvent) {
	if p == nil {
		return
	}
	p.debounce.WithLabelValues(string(event)).Inc()
}

func (p *PrometheusRecorder) SetActiveOwners(n int) {
	if p == nil {
		return
	}
	p.activeOwners.Set(float64(n))
}
