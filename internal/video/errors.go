package video

import "errors"

// Sentinel errors produced by probing, planning and sampling. The job
// orchestrator classifies them with errors.Is to build per-file results.
var (
	// ErrFileOpen means the container could not be opened or demuxed at all.
	ErrFileOpen = errors.New("cannot open video file")

	// ErrNoVideoStream means the container opened but holds no decodable
	// video track.
	ErrNoVideoStream = errors.New("no video stream found")

	// ErrInvalidDuration means the probed duration is non-positive, so no
	// sample plan can be produced.
	ErrInvalidDuration = errors.New("non-positive video duration")

	// ErrEmptyGrid means the requested grid has no cells.
	ErrEmptyGrid = errors.New("grid has no cells")

	// ErrFrameMiss means no frame could be decoded for one timestamp after
	// both the seek and the linear-scan fallback. It is non-fatal: the run
	// continues with a placeholder cell.
	ErrFrameMiss = errors.New("no frame decoded at timestamp")
)
