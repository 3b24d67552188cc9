// Package metrics holds the Prometheus collectors exported on /metrics.
package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds Prometheus metrics for RPC traffic and settlement runs.
type Metrics struct {
	rpcRequests          *prometheus.CounterVec
	rpcDuration          *prometheus.HistogramVec
	settlements          prometheus.Counter
	transfers            prometheus.Histogram
	droppedContributions prometheus.Counter
	staleParticipants    prometheus.Gauge
}

var (
	metricsOnce   sync.Once
	globalMetrics *Metrics
)

// Get initializes metrics if they haven't been, and returns them.
// promauto registers with the default registry, which panics on duplicates.
func Get() *Metrics {
	metricsOnce.Do(func() {
		globalMetrics = &Metrics{
			rpcRequests: promauto.NewCounterVec(prometheus.CounterOpts{
				Name: "settleup_rpc_requests_total",
				Help: "Total number of RPC requests by procedure and result code",
			}, []string{"procedure", "code"}),
			rpcDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
				Name:    "settleup_rpc_duration_seconds",
				Help:    "Time taken to serve RPC requests",
				Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
			}, []string{"procedure"}),
			settlements: promauto.NewCounter(prometheus.CounterOpts{
				Name: "settleup_settlements_total",
				Help: "Total number of settlement computations",
			}),
			transfers: promauto.NewHistogram(prometheus.HistogramOpts{
				Name:    "settleup_settlement_transfers",
				Help:    "Number of transfers produced per settlement",
				Buckets: prometheus.LinearBuckets(0, 2, 10),
			}),
			droppedContributions: promauto.NewCounter(prometheus.CounterOpts{
				Name: "settleup_dropped_contributions_total",
				Help: "Total number of expense contributions ignored because the participant left the roster",
			}),
			staleParticipants: promauto.NewGauge(prometheus.GaugeOpts{
				Name: "settleup_stale_participants",
				Help: "Participants referenced by expenses but missing from the roster, as of the last settlement",
			}),
		}
	})
	return globalMetrics
}

// ObserveRPC records one finished RPC. code is "ok" or a Connect code name.
func (m *Metrics) ObserveRPC(procedure, code string, elapsed time.Duration) {
	m.rpcRequests.WithLabelValues(procedure, code).Inc()
	m.rpcDuration.WithLabelValues(procedure).Observe(elapsed.Seconds())
}

// ObserveSettlement records the outcome of one settlement computation.
func (m *Metrics) ObserveSettlement(transfers, dropped, stale int) {
	m.settlements.Inc()
	m.transfers.Observe(float64(transfers))
	m.droppedContributions.Add(float64(dropped))
	m.staleParticipants.Set(float64(stale))
}
