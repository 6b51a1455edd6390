// Package logging provides the leveled event sink used by the contact-sheet
// pipeline.
//
// It supports the following log levels:
//   - DEBUG: per-frame decode detail
//   - INFO: general operational messages
//   - WARN: recoverable conditions (fallback scans, clamped settings)
//   - ERROR: failures recorded against a file's result
//   - FATAL: fatal errors that terminate the application
//
// The log level is configured via the LOG_LEVEL environment variable or
// programmatically with SetLevel. Emitting packages never decide whether a
// level is displayed; they only emit at the appropriate level.
package logging
