package video

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"contact-sheet/internal/logging"
)

// Metadata describes one video file. It is derived once per run by Open and
// read-only thereafter; the label composer and the sampler share it.
type Metadata struct {
	Duration float64 // seconds
	Width    int
	Height   int
	Codec    string // display name, e.g. "H.264"
	Size     int64  // container size in bytes
	Name     string // display name (base name of the file)
}

// codecNames maps ffprobe codec identifiers to their user-facing names.
var codecNames = map[string]string{
	"H264":       "H.264",
	"AVC1":       "H.264",
	"H265":       "H.265",
	"HEVC":       "H.265",
	"MPEG4":      "MPEG-4",
	"MPEG2":      "MPEG-2",
	"MPEG2VIDEO": "MPEG-2",
	"VP8":        "VP8",
	"VP9":        "VP9",
	"AV1":        "AV1",
}

// displayCodec normalizes an ffprobe codec_name for the label block.
func displayCodec(name string) string {
	if name == "" {
		return "Unknown"
	}
	upper := strings.ToUpper(name)
	if display, ok := codecNames[upper]; ok {
		return display
	}
	return upper
}

// probeOutput mirrors the subset of ffprobe's JSON output we ask for.
type probeOutput struct {
	Streams []struct {
		Width      int    `json:"width"`
		Height     int    `json:"height"`
		CodecName  string `json:"codec_name"`
		NBFrames   string `json:"nb_frames"`
		RFrameRate string `json:"r_frame_rate"`
	} `json:"streams"`
	Format struct {
		Duration string `json:"duration"`
	} `json:"format"`
}

// probe runs ffprobe on the file and extracts stream and container metadata.
// No frames are decoded; this is the cheap part of a run.
func probe(ctx context.Context, path string) (Metadata, error) {
	ffprobe, err := exec.LookPath("ffprobe")
	if err != nil {
		return Metadata{}, fmt.Errorf("%w: ffprobe not found: %v", ErrFileOpen, err)
	}

	cmd := exec.CommandContext(ctx, ffprobe,
		"-v", "error",
		"-select_streams", "v:0",
		"-show_entries", "stream=width,height,codec_name,nb_frames,r_frame_rate",
		"-show_entries", "format=duration",
		"-of", "json",
		path,
	)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return Metadata{}, fmt.Errorf("%w: ffprobe: %v - %s", ErrFileOpen, err, strings.TrimSpace(stderr.String()))
	}

	var out probeOutput
	if err := json.Unmarshal(stdout.Bytes(), &out); err != nil {
		return Metadata{}, fmt.Errorf("%w: parsing ffprobe output: %v", ErrFileOpen, err)
	}

	if len(out.Streams) == 0 {
		return Metadata{}, fmt.Errorf("%w: %s", ErrNoVideoStream, filepath.Base(path))
	}

	stream := out.Streams[0]
	if stream.Width <= 0 || stream.Height <= 0 {
		return Metadata{}, fmt.Errorf("%w: stream reports %dx%d", ErrNoVideoStream, stream.Width, stream.Height)
	}

	meta := Metadata{
		Width:  stream.Width,
		Height: stream.Height,
		Codec:  displayCodec(stream.CodecName),
		Name:   filepath.Base(path),
	}

	if out.Format.Duration != "" {
		if d, err := strconv.ParseFloat(out.Format.Duration, 64); err == nil {
			meta.Duration = d
		}
	}
	if meta.Duration == 0 {
		// Some containers omit format duration; derive it from the frame
		// count and rate when present.
		meta.Duration = durationFromFrames(stream.NBFrames, stream.RFrameRate)
	}

	logging.Debug("Probed %s: %dx%d %s %.2fs", meta.Name, meta.Width, meta.Height, meta.Codec, meta.Duration)
	return meta, nil
}

// durationFromFrames computes duration from nb_frames and r_frame_rate
// (e.g. "30000/1001"). Returns 0 when either value is unusable.
func durationFromFrames(nbFrames, frameRate string) float64 {
	frames, err := strconv.ParseFloat(nbFrames, 64)
	if err != nil || frames <= 0 {
		return 0
	}

	num, den, ok := strings.Cut(frameRate, "/")
	if !ok {
		return 0
	}
	n, err := strconv.ParseFloat(num, 64)
	if err != nil || n <= 0 {
		return 0
	}
	d, err := strconv.ParseFloat(den, 64)
	if err != nil || d <= 0 {
		return 0
	}

	return frames / (n / d)
}
