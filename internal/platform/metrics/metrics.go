package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics for the application.
type Metrics struct {
	UsersCreated     prometheus.Counter
	LoginsSucceeded  prometheus.Counter
	LoginsRejected   prometheus.Counter
	Recharges        prometheus.Counter
	SnapshotFailures prometheus.Counter
	RequestDuration  *prometheus.HistogramVec
}

// New creates and registers all Prometheus metrics.
func New() *Metrics {
	return &Metrics{
		UsersCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "smartcommute_users_created_total",
			Help: "Total number of users created in the directory",
		}),
		LoginsSucceeded: promauto.NewCounter(prometheus.CounterOpts{
			Name: "smartcommute_logins_succeeded_total",
			Help: "Total number of successful credential authentications",
		}),
		LoginsRejected: promauto.NewCounter(prometheus.CounterOpts{
			Name: "smartcommute_logins_rejected_total",
			Help: "Total number of rejected credential authentications",
		}),
		Recharges: promauto.NewCounter(prometheus.CounterOpts{
			Name: "smartcommute_card_recharges_total",
			Help: "Total number of successful card recharges",
		}),
		SnapshotFailures: promauto.NewCounter(prometheus.CounterOpts{
			Name: "smartcommute_snapshot_write_failures_total",
			Help: "Total number of failed user snapshot writes",
		}),
		RequestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "smartcommute_http_request_duration_seconds",
			Help:    "HTTP request latency by route and status",
			Buckets: prometheus.DefBuckets,
		}, []string{"route", "status"}),
	}
}

// Handler exposes the default registry for scraping.
func (m *Metrics) Handler() http.Handler {
	return promhttp.Handler()
}

func (m *Metrics) IncrementUsersCreated() {
	m.UsersCreated.Inc()
}

func (m *Metrics) IncrementLoginsSucceeded() {
	m.LoginsSucceeded.Inc()
}

func (m *Metrics) IncrementLoginsRejected() {
	m.LoginsRejected.Inc()
}

func (m *Metrics) IncrementRecharges() {
	m.Recharges.Inc()
}

func (m *Metrics) IncrementSnapshotFailures() {
	m.SnapshotFailures.Inc()
}

// ObserveRequest records one served request.
func (m *Metrics) ObserveRequest(route, status string, seconds float64) {
	m.RequestDuration.WithLabelValues(route, status).Observe(seconds)
}
