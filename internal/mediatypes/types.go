package mediatypes

import (
	"path/filepath"
	"sort"
	"strings"
)

// VideoExtensions maps file extensions to whether they are supported video
// container formats. Keys are lower-case and include the leading dot.
var VideoExtensions = map[string]bool{
	".mp4":  true,
	".avi":  true,
	".wmv":  true,
	".mkv":  true,
	".mov":  true,
	".m4v":  true,
	".webm": true,
}

// IsVideo reports whether the given path has a supported video extension.
// Matching is case-insensitive.
func IsVideo(path string) bool {
	return VideoExtensions[strings.ToLower(filepath.Ext(path))]
}

// Extensions returns the supported extension set as a sorted slice, useful
// for help text and error messages.
func Extensions() []string {
	exts := make([]string, 0, len(VideoExtensions))
	for ext := range VideoExtensions {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}
