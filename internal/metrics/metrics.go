package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Sheet metrics
var (
	SheetsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "contact_sheet_sheets_total",
			Help: "Total number of finished contact-sheet jobs by status",
		},
		[]string{"status"},
	)

	SheetDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "contact_sheet_sheet_duration_seconds",
			Help:    "End-to-end duration of one file's pipeline run",
			Buckets: []float64{0.5, 1, 2.5, 5, 10, 30, 60, 120, 300},
		},
	)
)

// Sampling metrics
var (
	FramesSampled = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "contact_sheet_frames_sampled_total",
			Help: "Total number of frames successfully decoded",
		},
	)

	FallbackScans = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "contact_sheet_fallback_scans_total",
			Help: "Total number of linear-scan fallbacks after a failed seek",
		},
	)

	FrameMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "contact_sheet_frame_misses_total",
			Help: "Total number of timestamps where no frame could be decoded",
		},
	)
)

// Pool metrics
var (
	WorkersActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "contact_sheet_workers_active",
			Help: "Number of workers currently processing a video",
		},
	)
)

// InitializeStatuses pre-populates the per-status counters so every series
// is exported from the first scrape.
func InitializeStatuses() {
	for _, status := range []string{"done", "skipped", "failed"} {
		SheetsTotal.WithLabelValues(status)
	}
}
