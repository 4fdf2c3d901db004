// seehuhn.de/go/meshfield - scalar fields on meshes, rendered in software
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package meshfield

import (
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"

	"seehuhn.de/go/geom/rect"
)

// Framebuffer is a colour image together with a depth buffer.
type Framebuffer struct {
	Image *image.NRGBA

	// Depth holds the normalised device depth of the nearest fragment
	// for every pixel, in row-major order.  Cleared to +Inf.
	Depth []float32
}

// NewFramebuffer allocates a width×height frame buffer, cleared to white.
func NewFramebuffer(width, height int) *Framebuffer {
	fb := &Framebuffer{
		Image: image.NewNRGBA(image.Rect(0, 0, width, height)),
		Depth: make([]float32, width*height),
	}
	fb.Clear(color.White)
	return fb
}

// Width returns the width of the frame buffer in pixels.
func (fb *Framebuffer) Width() int {
	return fb.Image.Rect.Dx()
}

// Height returns the height of the frame buffer in pixels.
func (fb *Framebuffer) Height() int {
	return fb.Image.Rect.Dy()
}

// Clip returns the frame buffer area as a rasteriser clip rectangle.
func (fb *Framebuffer) Clip() rect.Rect {
	return rect.Rect{LLx: 0, LLy: 0, URx: float64(fb.Width()), URy: float64(fb.Height())}
}

// Clear fills the image with bg and resets the depth buffer.
func (fb *Framebuffer) Clear(bg color.Color) {
	draw.Draw(fb.Image, fb.Image.Rect, image.NewUniform(bg), image.Point{}, draw.Src)
	inf := float32(math.Inf(1))
	for i := range fb.Depth {
		fb.Depth[i] = inf
	}
}

// At returns the colour of pixel (x, y).
func (fb *Framebuffer) At(x, y int) color.NRGBA {
	return fb.Image.NRGBAAt(x, y)
}

// WritePNG encodes the image as PNG.
func (fb *Framebuffer) WritePNG(w io.Writer) error {
	return png.Encode(w, fb.Image)
}

// depthTest writes c at (x, y) if depth passes the test against the
// stored depth.  With orEqual set, fragments at the stored depth pass too.
func (fb *Framebuffer) depthTest(x, y int, depth float32, orEqual bool, c color.NRGBA) bool {
	i := y*fb.Width() + x
	stored := fb.Depth[i]
	if depth > stored || (depth == stored && !orEqual) {
		return false
	}
	fb.Depth[i] = depth
	fb.Image.SetNRGBA(x, y, c)
	return true
}
