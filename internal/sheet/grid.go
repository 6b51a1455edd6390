package sheet

import (
	"fmt"
	"image"
	"image/color"
	"io"

	"github.com/disintegration/imaging"

	"contact-sheet/internal/logging"
	"contact-sheet/internal/video"
)

var (
	backgroundColor  = color.NRGBA{A: 255}
	placeholderColor = color.NRGBA{R: 24, G: 24, B: 24, A: 255}
)

// Cell is one grid slot. A nil Image marks a missed frame and is rendered as
// a placeholder so the grid keeps its shape.
type Cell struct {
	Image     image.Image
	Timestamp float64
}

// Assemble composes resized cells and the metadata header into a single
// sheet image. cells must hold exactly cfg.Cells() entries in row-major
// order; cell images larger than the configured cell box are a caller bug
// and are pasted clipped rather than rescaled.
func Assemble(cells []Cell, meta video.Metadata, cfg Config) (image.Image, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if len(cells) != cfg.Cells() {
		return nil, fmt.Errorf("grid needs %d cells, got %d", cfg.Cells(), len(cells))
	}

	width := cfg.Columns * cfg.CellWidth
	label := ComposeLabel(meta, cfg.Labels, width)
	labelH := 0
	if label != nil {
		labelH = label.Bounds().Dy()
	}

	canvas := imaging.New(width, cfg.Rows*cfg.CellHeight+labelH, backgroundColor)
	if label != nil {
		canvas = imaging.Paste(canvas, label, image.Pt(0, 0))
	}

	for i, cell := range cells {
		x := i % cfg.Columns * cfg.CellWidth
		y := labelH + i/cfg.Columns*cfg.CellHeight
		if cell.Image == nil {
			ph := imaging.New(cfg.CellWidth, cfg.CellHeight, placeholderColor)
			canvas = imaging.Paste(canvas, ph, image.Pt(x, y))
			continue
		}
		b := cell.Image.Bounds()
		offX := (cfg.CellWidth - b.Dx()) / 2
		offY := (cfg.CellHeight - b.Dy()) / 2
		if offX < 0 {
			offX = 0
		}
		if offY < 0 {
			offY = 0
		}
		canvas = imaging.Paste(canvas, cell.Image, image.Pt(x+offX, y+offY))
		if cfg.Labels.Timestamps {
			drawText(canvas, FormatTimestamp(cell.Timestamp), x+4, y+cfg.CellHeight-6)
		}
	}
	return canvas, nil
}

// Encode writes img to w in the configured format. JPG quality outside
// [1, 100] is clamped with a warning rather than failing the sheet.
func Encode(w io.Writer, img image.Image, cfg Config) error {
	if cfg.Format == FormatPNG {
		if err := imaging.Encode(w, img, imaging.PNG); err != nil {
			return fmt.Errorf("encoding png: %w", err)
		}
		return nil
	}
	q := clampQuality(cfg.Quality)
	if q != cfg.Quality {
		logging.Warn("JPG quality %d out of range, clamped to %d", cfg.Quality, q)
	}
	if err := imaging.Encode(w, img, imaging.JPEG, imaging.JPEGQuality(q)); err != nil {
		return fmt.Errorf("encoding jpg: %w", err)
	}
	return nil
}

func clampQuality(q int) int {
	if q < 1 {
		return 1
	}
	if q > 100 {
		return 100
	}
	return q
}
