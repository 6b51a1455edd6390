package video

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"sync"

	"contact-sheet/internal/logging"
)

// Handle is the decode context bound to one video file. It owns the ffmpeg
// process used for frame extraction and is exclusively held by a single
// pipeline run; Close must be called on every exit path of that run.
type Handle struct {
	path       string
	ffmpegPath string
	meta       Metadata

	// run executes one ffmpeg invocation and returns its stdout and stderr.
	// Swapped out in tests to sample without a real ffmpeg.
	run func(ctx context.Context, args []string) (stdout, stderr []byte, err error)

	mu     sync.Mutex
	cmd    *exec.Cmd
	closed bool
}

// Open probes path and returns a ready-to-sample Handle. The returned
// metadata is derived once here and read-only afterwards. Failure to stat or
// demux the file wraps ErrFileOpen; a container without a decodable video
// track wraps ErrNoVideoStream.
func Open(ctx context.Context, path string) (*Handle, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFileOpen, err)
	}

	ffmpeg, err := exec.LookPath("ffmpeg")
	if err != nil {
		return nil, fmt.Errorf("%w: ffmpeg not found: %v", ErrFileOpen, err)
	}

	meta, err := probe(ctx, path)
	if err != nil {
		return nil, err
	}
	meta.Size = info.Size()

	h := &Handle{
		path:       path,
		ffmpegPath: ffmpeg,
		meta:       meta,
	}
	h.run = h.runFFmpeg
	return h, nil
}

// Metadata returns the metadata probed when the handle was opened.
func (h *Handle) Metadata() Metadata {
	return h.meta
}

// Close releases the handle. Any in-flight ffmpeg process is killed, so a
// cancelled run does not leave decoders behind.
func (h *Handle) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.closed = true
	if h.cmd != nil && h.cmd.Process != nil {
		logging.Debug("Killing in-flight ffmpeg for %s", h.meta.Name)
		if err := h.cmd.Process.Kill(); err != nil {
			logging.Warn("Failed to kill ffmpeg for %s: %v", h.meta.Name, err)
		}
	}
}

// runFFmpeg executes ffmpeg with the given arguments, tracking the process
// so Close can kill it from another goroutine.
func (h *Handle) runFFmpeg(ctx context.Context, args []string) ([]byte, []byte, error) {
	cmd := exec.CommandContext(ctx, h.ffmpegPath, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		return nil, nil, errors.New("handle closed")
	}
	h.cmd = cmd
	h.mu.Unlock()

	err := cmd.Run()

	h.mu.Lock()
	h.cmd = nil
	h.mu.Unlock()

	return stdout.Bytes(), stderr.Bytes(), err
}
