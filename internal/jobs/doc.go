// Package jobs runs the contact-sheet pipeline over a batch of videos.
//
// A bounded worker pool pulls file paths from a queue and drives each one
// through probe, frame sampling, assembly and encode. Failures are isolated
// per file: one broken video never aborts the batch, and every attempted
// file produces a Result carrying its terminal status and, when failed, an
// error kind for reporting.
package jobs
