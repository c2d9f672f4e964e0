// Package metrics defines the Prometheus collectors exported by the server.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// RPC metrics
	RPCRequests *prometheus.CounterVec
	RPCDuration *prometheus.HistogramVec

	// Calculator metrics
	Calculations      *prometheus.CounterVec
	CalculationErrors *prometheus.CounterVec
	SettlementSize    prometheus.Histogram
	RoundingDrift     prometheus.Histogram

	// History metrics
	HistoryWrites *prometheus.CounterVec
	DevicesIssued prometheus.Counter
}

// New creates all metrics and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		RPCRequests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "calckit_rpc_requests_total",
				Help: "Total number of RPC requests",
			},
			[]string{"procedure", "code"},
		),
		RPCDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "calckit_rpc_duration_seconds",
				Help:    "RPC latency",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"procedure"},
		),
		Calculations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "calckit_calculations_total",
				Help: "Total number of calculations by calculator",
			},
			[]string{"calculator"},
		),
		CalculationErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "calckit_calculation_errors_total",
				Help: "Calculations rejected by validation",
			},
			[]string{"calculator"},
		),
		SettlementSize: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "calckit_settlement_transfers",
			Help:    "Number of transfers produced per settlement",
			Buckets: []float64{0, 1, 2, 3, 5, 8, 13, 21},
		}),
		RoundingDrift: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "calckit_settlement_rounding_drift",
			Help:    "Absolute rounding drift left unresolved, in currency units",
			Buckets: []float64{0, 1, 2, 5, 10, 50},
		}),
		HistoryWrites: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "calckit_history_writes_total",
				Help: "History and preset writes by operation",
			},
			[]string{"operation"},
		),
		DevicesIssued: factory.NewCounter(prometheus.CounterOpts{
			Name: "calckit_devices_issued_total",
			Help: "Device tokens issued",
		}),
	}
}
