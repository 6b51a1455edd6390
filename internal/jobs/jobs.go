package jobs

import (
	"errors"
	"time"

	"contact-sheet/internal/video"
)

// Status is a file's position in the pipeline. Done, Skipped and Failed are
// terminal.
type Status string

// Pipeline states.
const (
	StatusPending    Status = "pending"
	StatusProbing    Status = "probing"
	StatusSampling   Status = "sampling"
	StatusAssembling Status = "assembling"
	StatusDone       Status = "done"
	StatusSkipped    Status = "skipped"
	StatusFailed     Status = "failed"
)

// Kind classifies a failed file for reporting.
type Kind string

// Failure kinds.
const (
	KindFileOpen      Kind = "file_open"
	KindNoVideoStream Kind = "no_video_stream"
	KindInvalidVideo  Kind = "invalid_video"
	KindEmptyGrid     Kind = "empty_grid"
	KindEncodeWrite   Kind = "encode_write"
)

func classify(err error) Kind {
	switch {
	case errors.Is(err, video.ErrFileOpen):
		return KindFileOpen
	case errors.Is(err, video.ErrNoVideoStream):
		return KindNoVideoStream
	case errors.Is(err, video.ErrInvalidDuration):
		return KindInvalidVideo
	case errors.Is(err, video.ErrEmptyGrid):
		return KindEmptyGrid
	}
	return KindEncodeWrite
}

// Result is the outcome for a single video.
type Result struct {
	Path    string
	Output  string
	Status  Status
	Kind    Kind
	Err     error
	Misses  int
	Elapsed time.Duration
}

// Summary aggregates a batch run. Total counts attempted files only; files
// still queued when the run is cancelled are not counted.
type Summary struct {
	Total   int
	Done    int
	Skipped int
	Failed  int
	Misses  int
	Elapsed time.Duration
}
