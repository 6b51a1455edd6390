package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"golang.org/x/term"

	"contact-sheet/internal/jobs"
	"contact-sheet/internal/logging"
	"contact-sheet/internal/metrics"
	"contact-sheet/internal/scanner"
	"contact-sheet/internal/sheet"
	"contact-sheet/internal/video"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout))
}

func run(args []string, stdout io.Writer) int {
	fs := flag.NewFlagSet("contact-sheet", flag.ContinueOnError)
	var (
		dir         = fs.String("dir", ".", "directory to scan for videos")
		out         = fs.String("out", "", "output directory for sheets (default: next to each video)")
		mirror      = fs.Bool("mirror", false, "mirror the input directory layout under -out")
		rows        = fs.Int("rows", 4, "grid rows")
		cols        = fs.Int("cols", 4, "grid columns")
		cellWidth   = fs.Int("width", 320, "cell width in pixels")
		cellHeight  = fs.Int("height", 240, "cell height in pixels")
		quality     = fs.Int("quality", 75, "JPG quality (1-100)")
		format      = fs.String("format", "jpg", "output format: jpg or png")
		labels      = fs.String("labels", "title,resolution,size,duration", "comma-separated labels: title, resolution, size, duration, codec, timestamps, none")
		overwrite   = fs.Bool("overwrite", false, "regenerate sheets that already exist")
		workerCount = fs.Int("workers", 0, "worker pool size (default derived from CPU count)")
		seekBudget  = fs.Duration("seek-budget", video.DefaultBudget().SeekBudget, "per-frame budget for the seek fast path")
		scanCeiling = fs.Duration("scan-ceiling", video.DefaultBudget().ScanCeiling, "per-frame ceiling for the linear-scan fallback")
		metricsPort = fs.String("metrics-port", "", "serve Prometheus metrics on this port (empty disables)")
		verbose     = fs.Bool("v", false, "verbose logging")
	)
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if *verbose {
		logging.SetLevel(logging.LevelDebug)
	}

	cfg := sheet.Default()
	cfg.Rows = *rows
	cfg.Columns = *cols
	cfg.CellWidth = *cellWidth
	cfg.CellHeight = *cellHeight
	cfg.Quality = *quality
	cfg.Overwrite = *overwrite

	var err error
	if cfg.Format, err = sheet.ParseFormat(*format); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}
	if cfg.Labels, err = parseLabels(*labels); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go handleShutdown(cancel)

	if *metricsPort != "" {
		metrics.Serve(*metricsPort)
	}

	videos, err := scanner.FindVideos(ctx, *dir, scanner.DefaultOptions())
	if err != nil {
		logging.Error("scanning %s: %v", *dir, err)
		return 1
	}
	if len(videos) == 0 {
		fmt.Fprintf(stdout, "no videos found under %s\n", *dir)
		return 0
	}

	interactive := term.IsTerminal(int(os.Stdout.Fd()))
	processed := 0
	opts := jobs.Options{
		Workers:    *workerCount,
		Budget:     video.Budget{SeekBudget: *seekBudget, ScanCeiling: *scanCeiling},
		InputRoot:  *dir,
		OutputRoot: *out,
		MirrorTree: *mirror,
		OnResult: func(res jobs.Result) {
			processed++
			if interactive {
				fmt.Fprintf(stdout, "\r%d/%d %s", processed, len(videos), res.Status)
			}
		},
	}

	sum, err := jobs.New(cfg, opts).Run(ctx, videos)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}
	if interactive && processed > 0 {
		fmt.Fprintln(stdout)
	}

	fmt.Fprintf(stdout, "%d videos: %d sheets written, %d skipped, %d failed (%d missed frames, %s)\n",
		sum.Total, sum.Done, sum.Skipped, sum.Failed, sum.Misses, sum.Elapsed.Round(time.Millisecond))
	if notAttempted := len(videos) - sum.Total; notAttempted > 0 {
		logging.Warn("interrupted: %d of %d videos not attempted", notAttempted, len(videos))
	}
	if sum.Failed > 0 {
		return 1
	}
	return 0
}

func parseLabels(spec string) (sheet.Labels, error) {
	var l sheet.Labels
	for _, name := range strings.Split(spec, ",") {
		switch strings.TrimSpace(name) {
		case "", "none":
		case "title":
			l.Title = true
		case "resolution":
			l.Resolution = true
		case "size":
			l.FileSize = true
		case "duration":
			l.Duration = true
		case "codec":
			l.Codec = true
		case "timestamps":
			l.Timestamps = true
		default:
			return sheet.Labels{}, fmt.Errorf("unknown label %q", strings.TrimSpace(name))
		}
	}
	return l, nil
}

func handleShutdown(cancel context.CancelFunc) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigChan
	logging.Warn("received %s, stopping", sig)
	cancel()
}
