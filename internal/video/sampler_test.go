package video

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"
	"testing"
	"time"
)

// fakeHandle builds a Handle whose ffmpeg invocations are served by fn.
func fakeHandle(fn func(ctx context.Context, args []string) ([]byte, []byte, error)) *Handle {
	h := &Handle{
		path: "/videos/fake.mp4",
		meta: Metadata{Duration: 60, Width: 64, Height: 48, Codec: "H.264", Name: "fake.mp4"},
	}
	h.run = fn
	return h
}

// pngFrame encodes a small solid-color frame the way ffmpeg pipes one out.
func pngFrame(t *testing.T) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, 64, 48))
	for i := range img.Pix {
		img.Pix[i] = 0xff
	}
	img.Set(0, 0, color.NRGBA{R: 0xff, A: 0xff})

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encoding test frame: %v", err)
	}
	return buf.Bytes()
}

// argIndex returns the position of value in args, or -1.
func argIndex(args []string, value string) int {
	for i, a := range args {
		if a == value {
			return i
		}
	}
	return -1
}

func TestSampleFrameSeekSuccess(t *testing.T) {
	frame := pngFrame(t)
	var calls [][]string

	h := fakeHandle(func(_ context.Context, args []string) ([]byte, []byte, error) {
		calls = append(calls, args)
		return frame, []byte("[Parsed_showinfo_0] n:0 pts:1024 pts_time:0.04 duration:0.04"), nil
	})

	got, err := h.SampleFrame(context.Background(), 30, DefaultBudget())
	if err != nil {
		t.Fatalf("SampleFrame: %v", err)
	}

	if len(calls) != 1 {
		t.Fatalf("SampleFrame made %d ffmpeg calls, want 1", len(calls))
	}
	// The fast path must seek on the input side: -ss before -i.
	args := calls[0]
	if ss, in := argIndex(args, "-ss"), argIndex(args, "-i"); ss == -1 || in == -1 || ss > in {
		t.Errorf("seek attempt args = %v, want -ss before -i", args)
	}

	if got.Image == nil {
		t.Fatal("SampleFrame returned nil image")
	}
	if got.Requested != 30 {
		t.Errorf("Requested = %v, want 30", got.Requested)
	}
	if math.Abs(got.Actual-30.04) > 1e-9 {
		t.Errorf("Actual = %v, want 30.04 (requested + showinfo offset)", got.Actual)
	}
}

func TestSampleFrameFallbackScan(t *testing.T) {
	frame := pngFrame(t)
	var calls [][]string

	h := fakeHandle(func(_ context.Context, args []string) ([]byte, []byte, error) {
		calls = append(calls, args)
		if len(calls) == 1 {
			return nil, []byte("mock.mp4: corrupt keyframe index"), fmt.Errorf("exit status 1")
		}
		return frame, nil, nil
	})

	got, err := h.SampleFrame(context.Background(), 12.5, DefaultBudget())
	if err != nil {
		t.Fatalf("SampleFrame: %v", err)
	}

	if len(calls) != 2 {
		t.Fatalf("SampleFrame made %d ffmpeg calls, want 2 (seek then scan)", len(calls))
	}
	// The fallback must scan linearly: -ss after -i.
	args := calls[1]
	if ss, in := argIndex(args, "-ss"), argIndex(args, "-i"); ss == -1 || in == -1 || ss < in {
		t.Errorf("scan attempt args = %v, want -ss after -i", args)
	}

	if got.Image == nil {
		t.Fatal("SampleFrame returned nil image after fallback")
	}
	if got.Requested != 12.5 || got.Actual != 12.5 {
		t.Errorf("timestamps = (%v, %v), want (12.5, 12.5)", got.Requested, got.Actual)
	}
}

func TestSampleFrameMiss(t *testing.T) {
	var calls int

	h := fakeHandle(func(_ context.Context, _ []string) ([]byte, []byte, error) {
		calls++
		return nil, nil, fmt.Errorf("exit status 1")
	})

	_, err := h.SampleFrame(context.Background(), 5, DefaultBudget())
	if !errors.Is(err, ErrFrameMiss) {
		t.Fatalf("SampleFrame error = %v, want ErrFrameMiss", err)
	}
	if calls != 2 {
		t.Errorf("SampleFrame made %d ffmpeg calls before the miss, want 2", calls)
	}
}

func TestSampleFrameEmptyOutput(t *testing.T) {
	// ffmpeg exiting zero with no frame on stdout is still a failed attempt.
	h := fakeHandle(func(_ context.Context, _ []string) ([]byte, []byte, error) {
		return nil, nil, nil
	})

	_, err := h.SampleFrame(context.Background(), 5, DefaultBudget())
	if !errors.Is(err, ErrFrameMiss) {
		t.Fatalf("SampleFrame error = %v, want ErrFrameMiss", err)
	}
}

func TestSampleFrameGarbageOutput(t *testing.T) {
	h := fakeHandle(func(_ context.Context, _ []string) ([]byte, []byte, error) {
		return []byte("not a png"), nil, nil
	})

	_, err := h.SampleFrame(context.Background(), 5, DefaultBudget())
	if !errors.Is(err, ErrFrameMiss) {
		t.Fatalf("SampleFrame error = %v, want ErrFrameMiss", err)
	}
}

func TestSampleFrameCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	h := fakeHandle(func(_ context.Context, _ []string) ([]byte, []byte, error) {
		t.Fatal("ffmpeg should not run on a cancelled context")
		return nil, nil, nil
	})

	_, err := h.SampleFrame(ctx, 5, DefaultBudget())
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("SampleFrame error = %v, want context.Canceled", err)
	}
}

func TestSampleFrameBudgetTimeout(t *testing.T) {
	frame := pngFrame(t)
	var calls int

	// The first (seek) attempt stalls past its budget; the scan succeeds.
	h := fakeHandle(func(ctx context.Context, _ []string) ([]byte, []byte, error) {
		calls++
		if calls == 1 {
			<-ctx.Done()
			return nil, nil, ctx.Err()
		}
		return frame, nil, nil
	})

	b := Budget{SeekBudget: 10 * time.Millisecond, ScanCeiling: time.Second}
	got, err := h.SampleFrame(context.Background(), 5, b)
	if err != nil {
		t.Fatalf("SampleFrame: %v", err)
	}
	if got.Image == nil {
		t.Fatal("SampleFrame returned nil image")
	}
	if calls != 2 {
		t.Errorf("SampleFrame made %d calls, want 2", calls)
	}
}

func TestHandleCloseRejectsRuns(t *testing.T) {
	h := fakeHandle(nil)
	h.run = h.runFFmpeg
	h.ffmpegPath = "/nonexistent/ffmpeg"
	h.Close()

	_, _, err := h.run(context.Background(), []string{"-version"})
	if err == nil {
		t.Fatal("runFFmpeg on a closed handle should fail")
	}
}
