// internal/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// DispatchesTotal counts messages handed to the delivery backend
	DispatchesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "delivery_dispatches_total",
			Help: "Messages dispatched to the vendor backend",
		},
	)

	// ReceiptsTotal counts terminal delivery outcomes by status
	ReceiptsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "delivery_receipts_total",
			Help: "Delivery receipts processed, by terminal status",
		},
		[]string{"status"}, // SENT or FAILED
	)

	// CustomersIngestedTotal counts bulk/CSV ingestion outcomes
	CustomersIngestedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "customers_ingested_total",
			Help: "Customer ingestion outcomes across bulk create and CSV import",
		},
		[]string{"result"}, // added, skipped or invalid
	)
)
