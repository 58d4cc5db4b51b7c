package monitoring

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type DBMetrics struct {
	QueryDuration *prometheus.HistogramVec
}

type BusinessMetrics struct {
	CustomersCreatedTotal prometheus.Counter
	CustomersDeletedTotal prometheus.Counter
	DeletesBlockedTotal   prometheus.Counter
	AddressesChangedTotal *prometheus.CounterVec
	PrimaryRepairsTotal   prometheus.Counter
}

var (
	DB = DBMetrics{
		QueryDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "customer_registry_db_query_duration_seconds",
				Help:    "Histogram of database query latencies.",
				Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
			},
			[]string{"query_name", "status"},
		),
	}

	Business = BusinessMetrics{
		CustomersCreatedTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "customer_registry_customers_created_total",
				Help: "Total number of customers successfully created.",
			},
		),
		CustomersDeletedTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "customer_registry_customers_deleted_total",
				Help: "Total number of customers successfully deleted.",
			},
		),
		DeletesBlockedTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "customer_registry_customer_deletes_blocked_total",
				Help: "Total number of customer deletes rejected because of linked transactions.",
			},
		),
		AddressesChangedTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "customer_registry_addresses_changed_total",
				Help: "Total number of address mutations by operation.",
			},
			[]string{"operation"},
		),
		PrimaryRepairsTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "customer_registry_primary_address_repairs_total",
				Help: "Total number of address rows rewritten by the primary address audit.",
			},
		),
	}
)

func RecordDBQuery(queryName, status string, duration time.Duration) {
	DB.QueryDuration.WithLabelValues(queryName, status).Observe(duration.Seconds())
}

func RecordCustomerCreated() {
	Business.CustomersCreatedTotal.Inc()
}

func RecordCustomerDeleted() {
	Business.CustomersDeletedTotal.Inc()
}

func RecordDeleteBlocked() {
	Business.DeletesBlockedTotal.Inc()
}

func RecordAddressChanged(operation string) {
	Business.AddressesChangedTotal.WithLabelValues(operation).Inc()
}

func RecordPrimaryRepairs(n int64) {
	Business.PrimaryRepairsTotal.Add(float64(n))
}
