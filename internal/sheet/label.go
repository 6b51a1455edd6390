package sheet

import (
	"fmt"
	"image"
	"image/color"

	"github.com/disintegration/imaging"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"contact-sheet/internal/video"
)

const (
	labelPadding    = 10
	labelLineHeight = 18
)

var (
	headerColor = color.NRGBA{R: 26, G: 26, B: 26, A: 255}
	textColor   = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
)

// ComposeLabel renders the metadata header block for a sheet. It returns nil
// when no header lines are enabled, in which case the grid starts at the top
// of the canvas.
func ComposeLabel(meta video.Metadata, labels Labels, width int) *image.NRGBA {
	lines := labelLines(meta, labels)
	if len(lines) == 0 || width < 1 {
		return nil
	}
	height := len(lines)*labelLineHeight + 2*labelPadding
	img := imaging.New(width, height, headerColor)
	for i, line := range lines {
		baseline := labelPadding + i*labelLineHeight + basicfont.Face7x13.Ascent
		drawText(img, line, labelPadding, baseline)
	}
	return img
}

func labelLines(meta video.Metadata, labels Labels) []string {
	var lines []string
	if labels.Title {
		lines = append(lines, "Title: "+meta.Name)
	}
	if labels.Resolution {
		lines = append(lines, fmt.Sprintf("Resolution: %dx%d", meta.Width, meta.Height))
	}
	if labels.FileSize {
		lines = append(lines, "File Size: "+FormatSize(meta.Size))
	}
	if labels.Duration {
		lines = append(lines, "Duration: "+FormatDuration(meta.Duration))
	}
	if labels.Codec && meta.Codec != "" {
		lines = append(lines, "Codec: "+meta.Codec)
	}
	return lines
}

func drawText(dst *image.NRGBA, text string, x, y int) {
	d := font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(textColor),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(text)
}
