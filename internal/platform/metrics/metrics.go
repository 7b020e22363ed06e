package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "gercamp"

var (
	once sync.Once

	reservationsCreated = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reservations_created_total",
			Help:      "Count of reservations created by kind (booking, travel_booking, order).",
		},
		[]string{"kind"},
	)

	reservationConflicts = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reservation_conflicts_total",
			Help:      "Count of writes rejected because of overlap, capacity or stock.",
		},
		[]string{"kind"},
	)

	statusTransitions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "status_transitions_total",
			Help:      "Count of accepted status changes by kind and target status.",
		},
		[]string{"kind", "status"},
	)

	stockRestored = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "stock_units_restored_total",
			Help:      "Units returned to stock by order cancellation or deletion.",
		},
	)
)

// Register registers metrics (idempotent).
func Register() {
	once.Do(func() {
		prometheus.MustRegister(reservationsCreated, reservationConflicts, statusTransitions, stockRestored)
	})
}

func IncReservationCreated(kind string) {
	reservationsCreated.WithLabelValues(kind).Inc()
}

func IncConflict(kind string) {
	reservationConflicts.WithLabelValues(kind).Inc()
}

func IncTransition(kind, status string) {
	statusTransitions.WithLabelValues(kind, status).Inc()
}

func AddStockRestored(units int) {
	stockRestored.Add(float64(units))
}
