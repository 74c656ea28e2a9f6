package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "kanso_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 12), // 1ms to ~4s
		},
		[]string{"method", "path", "status"},
	)

	DaysRecorded = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kanso_days_recorded_total",
			Help: "Daily completion submissions",
		},
		[]string{"outcome"}, // ok, unsaved, rejected
	)

	SetupSubmissions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kanso_setup_submissions_total",
			Help: "First-run habit setup submissions",
		},
		[]string{"outcome"},
	)

	StorageWriteFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "kanso_storage_write_failures_total",
			Help: "Habit data writes that failed and were kept in memory only",
		},
	)

	CacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kanso_cache_lookups_total",
			Help: "Read-through cache lookups",
		},
		[]string{"result"}, // hit, miss, error, bypass
	)
)

func RecordHTTPRequestDuration(method, path, status string, duration time.Duration) {
	HTTPRequestDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())
}

func IncrementDayRecorded(outcome string) {
	DaysRecorded.WithLabelValues(outcome).Inc()
}

func IncrementSetupSubmission(outcome string) {
	SetupSubmissions.WithLabelValues(outcome).Inc()
}

func IncrementStorageWriteFailure() {
	StorageWriteFailures.Inc()
}

func IncrementCacheLookup(result string) {
	CacheLookups.WithLabelValues(result).Inc()
}
