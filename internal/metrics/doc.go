// Package metrics provides Prometheus instrumentation for the contact-sheet
// pipeline.
//
// All metrics are prefixed with "contact_sheet_" to avoid naming collisions
// with other applications.
//
// # Metric Categories
//
// Sheet metrics track per-file outcomes:
//   - SheetsTotal: Counter of finished jobs by status (done, skipped, failed)
//   - SheetDuration: Histogram of end-to-end per-file pipeline duration
//
// Sampling metrics track decode work:
//   - FramesSampled: Counter of frames successfully decoded
//   - FallbackScans: Counter of linear-scan fallbacks after failed seeks
//   - FrameMisses: Counter of timestamps with no decodable frame
//
// Pool metrics:
//   - WorkersActive: Gauge of the configured worker count for the run
//
// The scrape endpoint is optional: Serve starts an HTTP server exposing
// /metrics and /healthz when the operator asks for one. When disabled, the
// collectors are still registered and simply never scraped.
package metrics
