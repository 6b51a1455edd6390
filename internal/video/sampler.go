package video

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"regexp"
	"strconv"
	"time"

	"contact-sheet/internal/logging"
	"contact-sheet/internal/metrics"

	_ "image/png" // ffmpeg emits frames as PNG on stdout
)

// Frame is one decoded sample: the image plus the timestamp it was requested
// for and the timestamp actually obtained (they differ when seeking landed on
// a keyframe-adjacent frame). Frames live only within a single pipeline run.
type Frame struct {
	Image     image.Image
	Requested float64
	Actual    float64
}

// Budget bounds the cost of obtaining one frame. Both limits guard against
// pathological inputs (corrupt or variable-frame-rate streams) where decoding
// would otherwise run unbounded.
type Budget struct {
	// SeekBudget bounds the fast path: keyframe seek plus decode-forward to
	// the target timestamp.
	SeekBudget time.Duration

	// ScanCeiling is the hard cap on the linear-scan fallback, which decodes
	// sequentially from the container start.
	ScanCeiling time.Duration
}

// DefaultBudget returns the sampling limits used by the CLI.
func DefaultBudget() Budget {
	return Budget{
		SeekBudget:  10 * time.Second,
		ScanCeiling: 45 * time.Second,
	}
}

// sampleState is the per-timestamp extraction state machine.
type sampleState int

const (
	stateSeek sampleState = iota
	stateScan
	stateMiss
)

// showinfoPTS extracts the decoded frame's presentation time from ffmpeg's
// showinfo filter output on stderr.
var showinfoPTS = regexp.MustCompile(`pts_time:([0-9]+(?:\.[0-9]+)?)`)

// SampleFrame extracts the frame nearest the target timestamp (seconds).
//
// The protocol is Seek → LinearScan → Miss: first a keyframe seek with
// decode-forward bounded by b.SeekBudget, then, on failure, a linear scan
// from the container start capped at b.ScanCeiling, and finally an ErrFrameMiss
// that the caller absorbs with a placeholder cell. A single bad timestamp
// never aborts the whole file; cancellation of ctx does.
func (h *Handle) SampleFrame(ctx context.Context, target float64, b Budget) (Frame, error) {
	state := stateSeek
	for {
		if err := ctx.Err(); err != nil {
			return Frame{}, err
		}

		switch state {
		case stateSeek:
			img, offset, err := h.extractFrame(ctx, target, true, b.SeekBudget)
			if err == nil {
				metrics.FramesSampled.Inc()
				return Frame{Image: img, Requested: target, Actual: target + offset}, nil
			}
			logging.Warn("Seek failed @ %.2fs in %s: %v", target, h.meta.Name, err)
			state = stateScan

		case stateScan:
			logging.Info("Falling back to linear scan @ %.2fs for %s", target, h.meta.Name)
			metrics.FallbackScans.Inc()

			img, _, err := h.extractFrame(ctx, target, false, b.ScanCeiling)
			if err == nil {
				metrics.FramesSampled.Inc()
				return Frame{Image: img, Requested: target, Actual: target}, nil
			}
			logging.Warn("Linear scan failed @ %.2fs in %s: %v", target, h.meta.Name, err)
			state = stateMiss

		case stateMiss:
			metrics.FrameMisses.Inc()
			return Frame{}, fmt.Errorf("%w: %.2fs in %s", ErrFrameMiss, target, h.meta.Name)
		}
	}
}

// extractFrame runs one ffmpeg invocation for a single frame. With inputSeek
// the -ss option precedes -i, so ffmpeg seeks the demuxer to the nearest
// keyframe at or before the target and decodes forward from there. Without
// it the -ss option follows -i and ffmpeg decodes linearly from the start,
// discarding frames until the target. The returned offset is the decoded
// frame's distance from the seek point when ffmpeg reports it, 0 otherwise.
func (h *Handle) extractFrame(ctx context.Context, target float64, inputSeek bool, limit time.Duration) (image.Image, float64, error) {
	ctx, cancel := context.WithTimeout(ctx, limit)
	defer cancel()

	ts := strconv.FormatFloat(target, 'f', 3, 64)

	var args []string
	if inputSeek {
		args = []string{
			"-hide_banner", "-nostats", "-loglevel", "info",
			"-ss", ts,
			"-i", h.path,
			"-vf", "showinfo",
			"-frames:v", "1",
			"-f", "image2pipe",
			"-vcodec", "png",
			"-",
		}
	} else {
		// showinfo is omitted here: with output-side seeking every decoded
		// frame passes the filter graph, which floods stderr on long scans.
		args = []string{
			"-hide_banner", "-nostats", "-loglevel", "error",
			"-i", h.path,
			"-ss", ts,
			"-frames:v", "1",
			"-f", "image2pipe",
			"-vcodec", "png",
			"-",
		}
	}

	stdout, stderr, err := h.run(ctx, args)
	if err != nil {
		return nil, 0, fmt.Errorf("ffmpeg: %w - %s", err, firstLine(stderr))
	}
	if len(stdout) == 0 {
		return nil, 0, fmt.Errorf("ffmpeg produced no frame data")
	}

	img, _, err := image.Decode(bytes.NewReader(stdout))
	if err != nil {
		return nil, 0, fmt.Errorf("decoding frame: %w", err)
	}

	offset := 0.0
	if m := showinfoPTS.FindSubmatch(stderr); m != nil {
		if v, err := strconv.ParseFloat(string(m[1]), 64); err == nil {
			offset = v
		}
	}

	logging.Debug("Decoded frame @ %.2fs (+%.3fs) from %s, %d bytes", target, offset, h.meta.Name, len(stdout))
	return img, offset, nil
}

// firstLine trims ffmpeg stderr down to its first line for error messages.
func firstLine(b []byte) []byte {
	if i := bytes.IndexByte(b, '\n'); i >= 0 {
		return bytes.TrimSpace(b[:i])
	}
	return bytes.TrimSpace(b)
}
