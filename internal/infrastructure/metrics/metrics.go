// Package metrics exposes the Prometheus collectors for the demo ledger.
// Collectors are package-level so they register once at init time regardless
// of how many stores or services a process constructs.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/shopspring/decimal"
)

var (
	transfersCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "demobank_transfers_created_total",
		Help: "Total number of transfers created",
	})

	transferErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "demobank_transfer_errors_total",
			Help: "Total number of rejected transfer requests",
		},
		[]string{"reason"},
	)

	transferAmount = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "demobank_transfer_amount",
		Help:    "Transfer amounts",
		Buckets: []float64{1, 10, 100, 1000, 10000, 100000},
	})

	usersCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "demobank_users_created_total",
		Help: "Total number of demo users created",
	})

	persistenceOps = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "demobank_persistence_operations_total",
			Help: "Total number of blob store operations",
		},
		[]string{"op"},
	)

	persistenceErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "demobank_persistence_errors_total",
			Help: "Total number of failed blob store operations",
		},
		[]string{"op"},
	)
)

// RecordTransfer records a successfully created transfer.
func RecordTransfer(amount decimal.Decimal) {
	transfersCreated.Inc()
	f, _ := amount.Float64()
	transferAmount.Observe(f)
}

// RecordTransferError records a rejected transfer request by reason.
func RecordTransferError(reason string) {
	transferErrors.WithLabelValues(reason).Inc()
}

// RecordUserCreated records a new demo user registration.
func RecordUserCreated() {
	usersCreated.Inc()
}

// RecordPersistence records a blob store operation and its outcome.
func RecordPersistence(op string, err error) {
	persistenceOps.WithLabelValues(op).Inc()
	if err != nil {
		persistenceErrors.WithLabelValues(op).Inc()
	}
}
