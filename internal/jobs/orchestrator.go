package jobs

import (
	"context"
	"errors"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"contact-sheet/internal/logging"
	"contact-sheet/internal/metrics"
	"contact-sheet/internal/sheet"
	"contact-sheet/internal/video"
	"contact-sheet/internal/workers"
)

// Options tunes a batch run.
type Options struct {
	// Workers caps the pool size. Zero picks a CPU-derived default.
	Workers int
	// Budget bounds per-frame extraction; the zero value takes defaults.
	Budget video.Budget
	// InputRoot is the scanned directory, used to compute relative paths
	// when MirrorTree is set.
	InputRoot string
	// OutputRoot receives the sheets. Empty writes each sheet next to its
	// source video.
	OutputRoot string
	// MirrorTree reproduces the input directory layout under OutputRoot.
	MirrorTree bool
	// OnResult, when set, observes every terminal Result as it lands.
	// It is called from the collecting goroutine, never concurrently.
	OnResult func(Result)
}

// frameSource is the slice of *video.Handle the per-file pipeline consumes.
type frameSource interface {
	Metadata() video.Metadata
	SampleFrame(ctx context.Context, target float64, b video.Budget) (video.Frame, error)
	Close()
}

// Orchestrator fans a batch of videos out over a worker pool.
type Orchestrator struct {
	cfg  sheet.Config
	opts Options

	// process and open are swapped by tests to exercise the pool and the
	// per-file pipeline without ffmpeg.
	process func(ctx context.Context, path string) (Result, bool)
	open    func(ctx context.Context, path string) (frameSource, error)
}

// New builds an Orchestrator for the given sheet configuration.
func New(cfg sheet.Config, opts Options) *Orchestrator {
	if opts.Budget == (video.Budget{}) {
		opts.Budget = video.DefaultBudget()
	}
	o := &Orchestrator{cfg: cfg, opts: opts}
	o.process = o.processFile
	o.open = func(ctx context.Context, path string) (frameSource, error) {
		return video.Open(ctx, path)
	}
	return o
}

// Run processes every path and returns the batch summary. Individual file
// failures land in their Results; Run itself only errors on an unusable
// configuration. Cancelling ctx stops feeding new files and interrupts
// in-flight extraction.
func (o *Orchestrator) Run(ctx context.Context, paths []string) (Summary, error) {
	if err := o.cfg.Validate(); err != nil {
		return Summary{}, err
	}
	start := time.Now()

	n := o.opts.Workers
	if n < 1 {
		n = workers.ForMixed(0)
	}
	if n > len(paths) {
		n = len(paths)
	}
	if n < 1 {
		n = 1
	}
	logging.Info("processing %d videos with %d workers", len(paths), n)

	queue := make(chan string)
	results := make(chan Result)

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for path := range queue {
				metrics.WorkersActive.Inc()
				res, attempted := o.process(ctx, path)
				metrics.WorkersActive.Dec()
				if attempted {
					results <- res
				}
			}
		}()
	}

	go func() {
		defer close(queue)
		for _, path := range paths {
			select {
			case queue <- path:
			case <-ctx.Done():
				return
			}
		}
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	var sum Summary
	for res := range results {
		sum.Total++
		sum.Misses += res.Misses
		switch res.Status {
		case StatusDone:
			sum.Done++
			metrics.SheetsTotal.WithLabelValues(string(StatusDone)).Inc()
			metrics.SheetDuration.Observe(res.Elapsed.Seconds())
		case StatusSkipped:
			sum.Skipped++
			metrics.SheetsTotal.WithLabelValues(string(StatusSkipped)).Inc()
		case StatusFailed:
			sum.Failed++
			metrics.SheetsTotal.WithLabelValues(string(StatusFailed)).Inc()
		}
		if o.opts.OnResult != nil {
			o.opts.OnResult(res)
		}
	}
	sum.Elapsed = time.Since(start)
	return sum, nil
}

// processFile drives one video through the pipeline. The second return is
// false when the file was never really attempted because the run was
// cancelled; such files stay out of the summary.
func (o *Orchestrator) processFile(ctx context.Context, path string) (Result, bool) {
	start := time.Now()
	res := Result{Path: path, Status: StatusPending}

	failAs := func(kind Kind, err error) (Result, bool) {
		res.Status = StatusFailed
		res.Kind = kind
		res.Err = err
		res.Elapsed = time.Since(start)
		logging.Error("%s: %s: %v", path, kind, err)
		return res, true
	}
	fail := func(err error) (Result, bool) {
		return failAs(classify(err), err)
	}

	out, err := o.outputPath(path)
	if err != nil {
		return fail(fmt.Errorf("resolving output path: %w", err))
	}
	res.Output = out

	if !o.cfg.Overwrite {
		if _, err := os.Stat(out); err == nil {
			logging.Debug("%s: sheet exists, skipping", path)
			res.Status = StatusSkipped
			res.Elapsed = time.Since(start)
			return res, true
		}
	}

	res.Status = StatusProbing
	h, err := o.open(ctx, path)
	if err != nil {
		if ctx.Err() != nil {
			return res, false
		}
		return fail(err)
	}
	defer h.Close()
	meta := h.Metadata()

	res.Status = StatusSampling
	plan, err := video.Plan(meta.Duration, o.cfg.Cells())
	if err != nil {
		return fail(err)
	}

	cells := make([]sheet.Cell, len(plan))
	for i, ts := range plan {
		frame, err := h.SampleFrame(ctx, ts, o.opts.Budget)
		if err != nil {
			if errors.Is(err, video.ErrFrameMiss) {
				res.Misses++
				cells[i] = sheet.Cell{Timestamp: ts}
				continue
			}
			if ctx.Err() != nil {
				return res, false
			}
			return failAs(KindInvalidVideo, fmt.Errorf("sampling at %.2fs: %w", ts, err))
		}
		thumb, err := sheet.Resize(frame.Image, o.cfg.CellWidth, o.cfg.CellHeight)
		if err != nil {
			logging.Warn("%s: frame at %.2fs unusable: %v", path, ts, err)
			metrics.FrameMisses.Inc()
			res.Misses++
			cells[i] = sheet.Cell{Timestamp: ts}
			continue
		}
		cells[i] = sheet.Cell{Image: thumb, Timestamp: frame.Actual}
	}

	res.Status = StatusAssembling
	img, err := sheet.Assemble(cells, meta, o.cfg)
	if err != nil {
		return fail(err)
	}
	if err := o.writeSheet(out, img); err != nil {
		return fail(err)
	}

	res.Status = StatusDone
	res.Elapsed = time.Since(start)
	logging.Info("%s: sheet written to %s (%d misses, %s)", path, out, res.Misses, res.Elapsed.Round(time.Millisecond))
	return res, true
}

// writeSheet encodes to a temp file in the target directory and renames it
// into place so a crash never leaves a truncated sheet behind.
func (o *Orchestrator) writeSheet(out string, img image.Image) error {
	dir := filepath.Dir(out)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	tmp, err := os.CreateTemp(dir, filepath.Base(out)+".*")
	if err != nil {
		return fmt.Errorf("creating sheet file: %w", err)
	}
	if err := sheet.Encode(tmp, img, o.cfg); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("writing sheet: %w", err)
	}
	if err := os.Rename(tmp.Name(), out); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("writing sheet: %w", err)
	}
	return nil
}

func (o *Orchestrator) outputPath(path string) (string, error) {
	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)) + o.cfg.Format.Ext()
	if o.opts.OutputRoot == "" {
		return filepath.Join(filepath.Dir(path), base), nil
	}
	if o.opts.MirrorTree && o.opts.InputRoot != "" {
		rel, err := filepath.Rel(o.opts.InputRoot, path)
		if err != nil {
			return "", err
		}
		return filepath.Join(o.opts.OutputRoot, filepath.Dir(rel), base), nil
	}
	return filepath.Join(o.opts.OutputRoot, base), nil
}
