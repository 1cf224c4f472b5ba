package raster

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/ericpauley/go-quantize/quantize"
)

// Number of distinct sample values
const levels = MaxSample + 1

// ColorModel implements image.Image.
func (g *Grid) ColorModel() color.Model {
	return color.GrayModel
}

// Bounds implements image.Image.
func (g *Grid) Bounds() image.Rectangle {
	return image.Rect(0, 0, g.Width, g.Height)
}

// At implements image.Image. Samples are scaled from 5 to 8 bits.
func (g *Grid) At(x, y int) color.Color {
	if !image.Pt(x, y).In(g.Bounds()) {
		return color.Gray{}
	}
	return color.Gray{Y: expand(g.Sample(x, y))}
}

func expand(s uint8) uint8 {
	return s<<3 | s>>2
}

func reduce(c color.Color) uint8 {
	return color.GrayModel.Convert(c).(color.Gray).Y >> 3
}

// FromImage converts m to a grid tagged with magic. The image is first
// reduced to at most 32 tones with a median cut quantizer and each tone is
// then mapped to its nearest sample value.
func FromImage(m image.Image, magic Magic) (*Grid, error) {
	b := m.Bounds()

	g, err := NewGrid(magic, b.Dx(), b.Dy())
	if err != nil {
		return nil, err
	}

	q := quantize.MedianCutQuantizer{}
	pm := image.NewPaletted(b, q.Quantize(make(color.Palette, 0, levels), m))
	draw.Draw(pm, b, m, b.Min, draw.Src)

	// Map each palette entry once rather than every pixel
	samples := make([]uint8, len(pm.Palette))
	for i, c := range pm.Palette {
		samples[i] = reduce(c)
	}

	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			g.SetSample(x, y, samples[pm.ColorIndexAt(b.Min.X+x, b.Min.Y+y)])
		}
	}

	return g, nil
}
