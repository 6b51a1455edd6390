package sheet

import (
	"fmt"

	"github.com/dustin/go-humanize"
)

// FormatSize renders a byte count in binary units, e.g. "1.5 MiB".
func FormatSize(bytes int64) string {
	if bytes < 0 {
		bytes = 0
	}
	return humanize.IBytes(uint64(bytes))
}

// FormatDuration renders seconds as HH:MM:SS, dropping the hour field when
// the duration is under an hour.
func FormatDuration(seconds float64) string {
	if seconds < 0 {
		seconds = 0
	}
	total := int(seconds)
	h := total / 3600
	m := total % 3600 / 60
	s := total % 60
	if h > 0 {
		return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%02d:%02d", m, s)
}

// FormatTimestamp renders a frame timestamp for the per-cell overlay. It uses
// the same layout as FormatDuration so overlays and the header line agree.
func FormatTimestamp(seconds float64) string {
	return FormatDuration(seconds)
}
