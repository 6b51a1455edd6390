// Package sheet composes sampled frames into the final contact-sheet image.
//
// It covers the render configuration (grid geometry, cell box, quality,
// label selection), aspect-preserving thumbnail resize, the optional metadata
// header block, grid assembly with placeholder cells for missed frames, and
// JPG/PNG encoding.
//
// The canvas contract: output width is columns × cell width, output height is
// rows × cell height plus the label block height. Every cell is padded to the
// uniform cell box; a thumbnail smaller than the box is centered on a neutral
// background.
package sheet
