package scanner

import (
	"context"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"contact-sheet/internal/logging"
	"contact-sheet/internal/mediatypes"
)

// Options controls the directory walk.
type Options struct {
	// SkipHidden skips files and directories whose name starts with ".".
	SkipHidden bool
}

// DefaultOptions returns the options used by the CLI.
func DefaultOptions() Options {
	return Options{SkipHidden: true}
}

// FindVideos walks root recursively and returns the sorted paths of all
// supported video files. Unreadable subtrees are logged and skipped; only a
// failure to access root itself is returned as an error. The walk observes
// ctx and stops early when it is cancelled.
func FindVideos(ctx context.Context, root string, opts Options) ([]string, error) {
	var videos []string

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if ctx.Err() != nil {
			return fs.SkipAll
		}

		if err != nil {
			if path == root {
				return err
			}
			logging.Warn("Error accessing path %s: %v", path, err)
			return nil
		}

		if opts.SkipHidden && path != root && strings.HasPrefix(d.Name(), ".") {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if d.IsDir() {
			return nil
		}

		if mediatypes.IsVideo(path) {
			videos = append(videos, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(videos)
	logging.Debug("Scanner found %d video files under %s", len(videos), root)
	return videos, nil
}
