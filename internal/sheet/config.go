package sheet

import (
	"fmt"

	"contact-sheet/internal/video"
)

// Format selects the output image encoding.
type Format string

// Supported output formats.
const (
	FormatJPG Format = "jpg"
	FormatPNG Format = "png"
)

// Ext returns the file extension for the format, including the dot.
func (f Format) Ext() string {
	if f == FormatPNG {
		return ".png"
	}
	return ".jpg"
}

// ParseFormat converts a user-supplied format name to a Format.
func ParseFormat(name string) (Format, error) {
	switch name {
	case "jpg", "jpeg":
		return FormatJPG, nil
	case "png":
		return FormatPNG, nil
	}
	return "", fmt.Errorf("unknown output format %q (want jpg or png)", name)
}

// Labels selects which pieces of metadata are drawn on the sheet. The first
// five are lines in the header block above the grid; Timestamps overlays each
// cell with the timestamp its frame was sampled at.
type Labels struct {
	Title      bool
	Resolution bool
	FileSize   bool
	Duration   bool
	Codec      bool
	Timestamps bool
}

// Config describes how a contact sheet is laid out and encoded.
type Config struct {
	Rows       int
	Columns    int
	CellWidth  int
	CellHeight int
	Quality    int
	Format     Format
	Labels     Labels
	Overwrite  bool
}

// Default returns the standard configuration: a 4x4 grid of 320x240 cells,
// JPG at quality 75, with title, resolution, file size and duration labels.
func Default() Config {
	return Config{
		Rows:       4,
		Columns:    4,
		CellWidth:  320,
		CellHeight: 240,
		Quality:    75,
		Format:     FormatJPG,
		Labels: Labels{
			Title:      true,
			Resolution: true,
			FileSize:   true,
			Duration:   true,
		},
	}
}

// Cells returns the number of frames the grid holds.
func (c Config) Cells() int {
	return c.Rows * c.Columns
}

// Validate rejects configurations that cannot produce an image. A grid with
// no cells wraps video.ErrEmptyGrid so callers can classify it.
func (c Config) Validate() error {
	if c.Rows < 1 || c.Columns < 1 {
		return fmt.Errorf("%w: %dx%d grid", video.ErrEmptyGrid, c.Rows, c.Columns)
	}
	if c.CellWidth < 1 || c.CellHeight < 1 {
		return fmt.Errorf("invalid cell box %dx%d", c.CellWidth, c.CellHeight)
	}
	return nil
}
