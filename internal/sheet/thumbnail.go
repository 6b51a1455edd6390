package sheet

import (
	"errors"
	"fmt"
	"image"

	"github.com/disintegration/imaging"
)

// ErrInvalidFrame reports a decoded frame with no drawable area.
var ErrInvalidFrame = errors.New("zero-area frame")

// Resize scales img to fit within maxW x maxH while preserving aspect ratio.
// Dimensions are computed with integer arithmetic so the bound side lands
// exactly on the box edge; the free side floors, with a minimum of 1 pixel.
// Frames already inside the box are returned unscaled.
func Resize(img image.Image, maxW, maxH int) (image.Image, error) {
	if img == nil {
		return nil, fmt.Errorf("%w: nil image", ErrInvalidFrame)
	}
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w < 1 || h < 1 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidFrame, w, h)
	}
	if maxW < 1 || maxH < 1 {
		return nil, fmt.Errorf("invalid cell box %dx%d", maxW, maxH)
	}
	if w <= maxW && h <= maxH {
		return img, nil
	}

	var tw, th int
	if w*maxH >= h*maxW {
		tw = maxW
		th = h * maxW / w
	} else {
		th = maxH
		tw = w * maxH / h
	}
	if tw < 1 {
		tw = 1
	}
	if th < 1 {
		th = 1
	}
	return imaging.Resize(img, tw, th, imaging.Lanczos), nil
}
