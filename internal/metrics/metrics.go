package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "catalog_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)
	imageUploads = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_image_uploads_total",
			Help: "Image uploads by storage backend and outcome",
		},
		[]string{"backend", "outcome"},
	)
	imageDeletes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_image_deletes_total",
			Help: "Image deletions by storage backend and whether an object was removed",
		},
		[]string{"backend", "removed"},
	)
)

// RecordImageUpload counts one upload attempt. outcome is a short label such
// as "ok", "rejected", "invalid_image" or "backend_error".
func RecordImageUpload(backend, outcome string) {
	imageUploads.WithLabelValues(backend, outcome).Inc()
}

// RecordImageDelete counts one delete attempt.
func RecordImageDelete(backend string, removed bool) {
	label := "false"
	if removed {
		label = "true"
	}
	imageDeletes.WithLabelValues(backend, label).Inc()
}
