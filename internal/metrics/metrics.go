// Package metrics holds the Prometheus collectors for extraction and scoring.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ExtractionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "resume_extractions_total",
			Help: "Total number of document extractions by format and status",
		},
		[]string{"format", "status"},
	)

	ExtractionDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "resume_extraction_duration_seconds",
			Help:    "Duration of document extraction in seconds",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
		},
		[]string{"format"},
	)

	OCRPagesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "resume_ocr_pages_total",
			Help: "Total number of PDF pages sent to OCR, by outcome",
		},
		[]string{"outcome"},
	)

	ScoresTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "resume_scores_total",
			Help: "Total number of resume/job similarity scores computed",
		},
	)

	PoolJobsActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "resume_extraction_pool_active",
			Help: "Number of extractions currently running on the pool",
		},
	)
)
