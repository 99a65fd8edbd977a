// Package metrics provides Prometheus metrics for namespace operations.
package metrics

import (
	"github.com/mwantia/ossfm/namespace"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	outcomeSuccess = "success"
	outcomeFailure = "failure"
)

// Metrics implements namespace.Observer and counts store traffic.
type Metrics struct {
	plansTotal       *prometheus.CounterVec
	stepsTotal       *prometheus.CounterVec
	partialMutations *prometheus.CounterVec
	listPagesTotal   *prometheus.CounterVec
	downloadedBytes  prometheus.Counter
}

// New registers every metric on reg. A nil reg uses prometheus.DefaultRegisterer.
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)

	return &Metrics{
		plansTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ossfm_plans_total",
				Help: "Total number of executed mutation plans",
			},
			[]string{"kind", "outcome"},
		),
		stepsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ossfm_plan_steps_total",
				Help: "Total number of remote store calls issued by plans",
			},
			[]string{"op", "outcome"},
		),
		partialMutations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ossfm_partial_mutations_total",
				Help: "Plans that failed after changing the store, leaving a duplicate object",
			},
			[]string{"kind"},
		),
		listPagesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ossfm_list_pages_total",
				Help: "Total number of listing pages requested from the remote store",
			},
			[]string{"store", "outcome"},
		),
		downloadedBytes: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "ossfm_downloaded_bytes_total",
				Help: "Total bytes fetched from the remote store for offline use or reading",
			},
		),
	}
}

func outcome(err error) string {
	if err != nil {
		return outcomeFailure
	}
	return outcomeSuccess
}

func (m *Metrics) ObservePlan(kind namespace.Kind, err error) {
	m.plansTotal.WithLabelValues(string(kind), outcome(err)).Inc()
}

func (m *Metrics) ObserveStep(op namespace.Op, err error) {
	m.stepsTotal.WithLabelValues(string(op), outcome(err)).Inc()
}

func (m *Metrics) ObservePartialMutation(kind namespace.Kind) {
	m.partialMutations.WithLabelValues(string(kind)).Inc()
}

// ObserveList records one listing request against the named store.
func (m *Metrics) ObserveList(store string, err error) {
	m.listPagesTotal.WithLabelValues(store, outcome(err)).Inc()
}

func (m *Metrics) ObserveDownload(size int) {
	m.downloadedBytes.Add(float64(size))
}
