package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// DeletionTotal tracks deletion requests by terminal outcome
	// (committed, denied, or error)
	DeletionTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "quirzy_account_deletion_total",
			Help: "Total number of account deletion requests by outcome (committed, denied, or error)",
		},
		[]string{"outcome"},
	)

	// VerificationFailureTotal tracks denied verifications by taxonomy kind
	VerificationFailureTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "quirzy_verification_failure_total",
			Help: "Total number of failed identity verifications by failure kind",
		},
		[]string{"reason"},
	)

	// RowsDeletedTotal tracks rows removed by the cascade, per entity
	RowsDeletedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "quirzy_rows_deleted_total",
			Help: "Total number of rows removed by cascade deletions, per entity",
		},
		[]string{"entity"},
	)
)

// RecordDeletion records a deletion request with the given outcome
func RecordDeletion(outcome string) {
	DeletionTotal.WithLabelValues(outcome).Inc()
}

// RecordVerificationFailure records a denied verification
func RecordVerificationFailure(reason string) {
	VerificationFailureTotal.WithLabelValues(reason).Inc()
}

// RecordRowsDeleted records rows removed from one entity by a cascade
func RecordRowsDeleted(entity string, rows int64) {
	RowsDeletedTotal.WithLabelValues(entity).Add(float64(rows))
}
