package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
)

// PrometheusSink implements Sink with Prometheus collectors. Registration
// failures are logged and the collector keeps working unregistered.
type PrometheusSink struct {
	logger zerolog.Logger

	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec

	jobsCreatedTotal  *prometheus.CounterVec
	jobsRejectedTotal *prometheus.CounterVec
	jobUpdatesTotal   *prometheus.CounterVec

	backendSwapsTotal *prometheus.CounterVec
	activeBackend     *prometheus.GaugeVec
}

func NewPrometheusSink(reg prometheus.Registerer, logger zerolog.Logger) *PrometheusSink {
	s := &PrometheusSink{logger: logger.With().Str("component", "metrics").Logger()}
	s.initHTTPMetrics(reg)
	s.initJobMetrics(reg)
	s.initBackendMetrics(reg)
	return s
}

func (s *PrometheusSink) initHTTPMetrics(reg prometheus.Registerer) {
	s.requestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "job_service_http_requests_total",
		Help: "Total number of HTTP requests handled.",
	}, []string{"method", "route", "status"})
	s.requestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "job_service_http_request_duration_seconds",
		Help:    "HTTP request latency in seconds.",
		Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
	}, []string{"method", "route"})

	s.register(reg, s.requestsTotal, "job_service_http_requests_total")
	s.register(reg, s.requestDuration, "job_service_http_request_duration_seconds")
}

func (s *PrometheusSink) initJobMetrics(reg prometheus.Registerer) {
	s.jobsCreatedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "job_service_jobs_created_total",
		Help: "Total number of jobs created.",
	}, []string{"backend", "operation"})
	s.jobsRejectedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "job_service_jobs_rejected_total",
		Help: "Total number of job submissions that were not stored.",
	}, []string{"backend", "reason"})
	s.jobUpdatesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "job_service_job_updates_total",
		Help: "Total number of job updates, by resulting status.",
	}, []string{"backend", "status"})

	s.register(reg, s.jobsCreatedTotal, "job_service_jobs_created_total")
	s.register(reg, s.jobsRejectedTotal, "job_service_jobs_rejected_total")
	s.register(reg, s.jobUpdatesTotal, "job_service_job_updates_total")
}

func (s *PrometheusSink) initBackendMetrics(reg prometheus.Registerer) {
	s.backendSwapsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "job_service_backend_swaps_total",
		Help: "Total number of storage backend swaps, by newly active backend.",
	}, []string{"backend"})
	s.activeBackend = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "job_service_active_backend",
		Help: "1 for the storage backend currently serving requests.",
	}, []string{"backend"})

	s.register(reg, s.backendSwapsTotal, "job_service_backend_swaps_total")
	s.register(reg, s.activeBackend, "job_service_active_backend")
}

func (s *PrometheusSink) register(reg prometheus.Registerer, c prometheus.Collector, name string) {
	if err := reg.Register(c); err != nil {
		s.logger.Warn().Err(err).Str("metric", name).Msg("failed to register metric")
	}
}

func (s *PrometheusSink) RequestObserved(method, route string, status int, duration time.Duration) {
	s.requestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	s.requestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

func (s *PrometheusSink) JobCreated(backend, operation string) {
	s.jobsCreatedTotal.WithLabelValues(backend, operation).Inc()
}

func (s *PrometheusSink) JobRejected(backend, reason string) {
	s.jobsRejectedTotal.WithLabelValues(backend, reason).Inc()
}

func (s *PrometheusSink) JobUpdated(backend, status string) {
	s.jobUpdatesTotal.WithLabelValues(backend, status).Inc()
}

// BackendSwapped marks backend as the only active one.
func (s *PrometheusSink) BackendSwapped(backend string) {
	s.backendSwapsTotal.WithLabelValues(backend).Inc()
	s.activeBackend.Reset()
	s.activeBackend.WithLabelValues(backend).Set(1)
}

// SetActiveBackend records the backend selected at startup without counting a
// swap.
func (s *PrometheusSink) SetActiveBackend(backend string) {
	s.activeBackend.Reset()
	s.activeBackend.WithLabelValues(backend).Set(1)
}
