// Package metrics registers the Prometheus collectors exported on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ParticipantTransitions counts successful participant state changes by target status.
	ParticipantTransitions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "splitcollect_participant_transitions_total",
		Help: "Participant payment state transitions",
	}, []string{"status"})

	// ReconcileRows counts processed ledger rows by outcome.
	ReconcileRows = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "splitcollect_reconcile_rows_total",
		Help: "Ledger rows processed by the reconciliation matcher",
	}, []string{"outcome"})

	// SplitsCreated counts persisted splits by kind and allocation mode.
	SplitsCreated = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "splitcollect_splits_created_total",
		Help: "Splits and payment requests created",
	}, []string{"kind", "mode"})

	// RPCDuration observes Connect call latency.
	RPCDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "splitcollect_rpc_duration_seconds",
		Help:    "Connect RPC latency",
		Buckets: []float64{0.005, 0.01, 0.05, 0.1, 0.5, 1},
	}, []string{"procedure", "code"})
)
