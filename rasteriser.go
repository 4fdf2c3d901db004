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
	"cmp"
	"math"
	"slices"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf/graphics"
)

// SpanFunc receives the coverage of one scanline, starting at pixel xMin.
// The coverage slice is only valid during the call.
type SpanFunc func(y, xMin int, coverage []float32)

// edge is a polygon edge in device coordinates.
type edge struct {
	x0, y0 float64
	x1, y1 float64
	dxdy   float64 // (x1-x0)/(y1-y0)
}

// Rasteriser computes, for every pixel, the fraction of the pixel area
// covered by a polygon.  Polygons are given as vertex lists in
// normalised device coordinates (or any other space which Viewport
// maps to pixels).  Buffers are kept between calls, so that a single
// Rasteriser can be reused for all primitives of a frame without
// allocations.
//
// A Rasteriser is not safe for concurrent use.
type Rasteriser struct {
	// Viewport maps polygon coordinates to device pixels.
	// Must be non-singular.
	Viewport matrix.Matrix

	// Clip bounds the output, in device coordinates.
	// Coordinates must be integer-aligned.
	Clip rect.Rect

	// Width is the line width for strokes, in device pixels.
	// Must be positive.
	Width float64

	// Cap is the cap style at both ends of a stroked segment.
	Cap graphics.LineCapStyle

	// smallPathThreshold is the maximum bounding box area (in pixels)
	// for which 2D accumulation buffers are used.  Larger polygons are
	// scanned with an active edge list.
	smallPathThreshold int

	cover       []float32 // signed cover change per pixel; reused for the output
	area        []float32 // signed area within the pixel
	edges       []edge
	activeIdx   []int
	rowHasEdges []bool
	crossings   []float64 // y values where an edge crosses a pixel column boundary
	outline     []vec.Vec2 // stroke outline in device space

	bboxFirst bool
	devXMin   float64
	devXMax   float64
	devYMin   float64
	devYMax   float64
}

// NewRasteriser returns a Rasteriser with the given clip rectangle and
// the identity as viewport.
func NewRasteriser(clip rect.Rect) *Rasteriser {
	return &Rasteriser{
		Viewport:           matrix.Identity,
		Clip:               clip,
		Width:              1,
		Cap:                graphics.LineCapButt,
		smallPathThreshold: smallPathThreshold,
	}
}

// ViewportMatrix returns the matrix which maps normalised device
// coordinates in [-1, 1]² onto a width×height pixel grid, with y pointing
// down as in [image.Image].
func ViewportMatrix(width, height int) matrix.Matrix {
	w := float64(width) / 2
	h := float64(height) / 2
	return matrix.Matrix{w, 0, 0, -h, w, h}
}

// Reset prepares the Rasteriser for a new frame, keeping buffer capacity.
func (r *Rasteriser) Reset(clip rect.Rect) {
	r.Viewport = matrix.Identity
	r.Clip = clip
	r.Width = 1
	r.Cap = graphics.LineCapButt

	r.cover = r.cover[:0]
	r.area = r.area[:0]
	r.edges = r.edges[:0]
	r.activeIdx = r.activeIdx[:0]
	r.rowHasEdges = r.rowHasEdges[:0]
	r.crossings = r.crossings[:0]
	r.outline = r.outline[:0]
}

// FillPolygon computes the coverage of a closed polygon under the
// nonzero winding rule.
func (r *Rasteriser) FillPolygon(poly []vec.Vec2, emit SpanFunc) {
	r.beginEdges()
	for i := range poly {
		r.addEdge(poly[i], poly[(i+1)%len(poly)])
	}
	xMin, xMax, yMin, yMax, ok := r.edgeBounds()
	if !ok {
		return
	}
	r.scan(xMin, xMax, yMin, yMax, emit)
}

func (r *Rasteriser) scan(xMin, xMax, yMin, yMax int, emit SpanFunc) {
	if (xMax-xMin)*(yMax-yMin) < r.smallPathThreshold {
		r.fillSmallPath(xMin, xMax, yMin, yMax, emit)
	} else {
		r.fillLargePath(xMin, xMax, yMin, yMax, emit)
	}
}

func (r *Rasteriser) beginEdges() {
	r.edges = r.edges[:0]
	r.bboxFirst = true
}

// edgeBounds returns the pixel bounding box of the collected edges,
// clamped to the clip rectangle.
func (r *Rasteriser) edgeBounds() (xMin, xMax, yMin, yMax int, ok bool) {
	if len(r.edges) == 0 {
		return 0, 0, 0, 0, false
	}

	xMin = max(int(math.Floor(r.devXMin)), int(r.Clip.LLx))
	xMax = min(int(math.Floor(r.devXMax))+1, int(r.Clip.URx))
	yMin = max(int(math.Floor(r.devYMin)), int(r.Clip.LLy))
	yMax = min(int(math.Floor(r.devYMax))+1, int(r.Clip.URy))
	if xMin >= xMax || yMin >= yMax {
		return 0, 0, 0, 0, false
	}
	return xMin, xMax, yMin, yMax, true
}

// addEdge transforms p0→p1 to device space and appends it to the edge list.
func (r *Rasteriser) addEdge(p0, p1 vec.Vec2) {
	m := r.Viewport
	dx0 := m[0]*p0.X + m[2]*p0.Y + m[4]
	dy0 := m[1]*p0.X + m[3]*p0.Y + m[5]
	dx1 := m[0]*p1.X + m[2]*p1.Y + m[4]
	dy1 := m[1]*p1.X + m[3]*p1.Y + m[5]

	dy := dy1 - dy0
	if dy > -horizontalEdgeThreshold && dy < horizontalEdgeThreshold {
		return
	}

	r.edges = append(r.edges, edge{
		x0: dx0, y0: dy0,
		x1: dx1, y1: dy1,
		dxdy: (dx1 - dx0) / dy,
	})

	if r.bboxFirst {
		r.devXMin, r.devXMax = min(dx0, dx1), max(dx0, dx1)
		r.devYMin, r.devYMax = min(dy0, dy1), max(dy0, dy1)
		r.bboxFirst = false
	} else {
		r.devXMin = min(r.devXMin, dx0, dx1)
		r.devXMax = max(r.devXMax, dx0, dx1)
		r.devYMin = min(r.devYMin, dy0, dy1)
		r.devYMax = max(r.devYMax, dy0, dy1)
	}
}

// Coverage is accumulated per pixel in two buffers:
//
//	cover: signed vertical extent of the edges crossing the pixel column
//	area:  the same, weighted by the part of the pixel right of the edge
//
// Integrating a scanline left to right, the coverage of pixel i is
// sum(cover[:i]) + area[i].  Contributions of edges left of the bounding
// box are folded into pixel 0.

// accumulateEdge adds the contribution of e to scanline y.  The buffers
// are indexed by x - bboxXMin.
func (r *Rasteriser) accumulateEdge(e *edge, y int, cover, area []float32, bboxXMin, bboxXMax int) {
	yTop := max(float64(y), min(e.y0, e.y1))
	yBot := min(float64(y+1), max(e.y0, e.y1))
	if yBot <= yTop {
		return
	}

	sign := float32(1)
	if e.y1 < e.y0 {
		sign = -1
	}

	xLeft := e.x0 + e.dxdy*(yTop-e.y0)
	xRight := e.x0 + e.dxdy*(yBot-e.y0)
	if xLeft > xRight {
		xLeft, xRight = xRight, xLeft
	}
	pixLeft := int(math.Floor(xLeft))
	pixRight := int(math.Floor(xRight))

	if pixRight < bboxXMin {
		c := sign * float32(yBot-yTop)
		cover[0] += c
		area[0] += c
		return
	}
	if pixLeft >= bboxXMax {
		return
	}

	if pixLeft == pixRight {
		deposit(e, yTop, yBot, sign, cover, area, bboxXMin, bboxXMax)
		return
	}

	// The edge crosses pixel columns: split it where it meets the
	// column boundaries and deposit each piece separately.
	dydx := 1 / e.dxdy
	r.crossings = append(r.crossings[:0], yTop, yBot)
	for x := pixLeft + 1; x <= pixRight; x++ {
		yAtX := e.y0 + dydx*(float64(x)-e.x0)
		if yAtX > yTop && yAtX < yBot {
			r.crossings = append(r.crossings, yAtX)
		}
	}
	slices.Sort(r.crossings)

	for i := range len(r.crossings) - 1 {
		deposit(e, r.crossings[i], r.crossings[i+1], sign, cover, area, bboxXMin, bboxXMax)
	}
}

// deposit adds the piece of e between y0 and y1, which must lie within a
// single pixel column, to the buffers.
func deposit(e *edge, y0, y1 float64, sign float32, cover, area []float32, bboxXMin, bboxXMax int) {
	if y1 <= y0 {
		return
	}
	c := sign * float32(y1-y0)

	xMid := e.x0 + e.dxdy*((y0+y1)/2-e.y0)
	pix := int(math.Floor(xMid))
	switch {
	case pix < bboxXMin:
		cover[0] += c
		area[0] += c
	case pix < bboxXMax:
		idx := pix - bboxXMin
		cover[idx] += c
		area[idx] += c * float32(1-(xMid-float64(pix)))
	}
}

// integrateScanline turns the accumulated cover and area of one row into
// nonzero-winding coverage, in place.
func integrateScanline(cover, area []float32) {
	var accum float32
	for i := range cover {
		raw := accum + area[i]
		accum += cover[i]

		if raw < 0 {
			raw = -raw
		}
		cover[i] = min(raw, 1)
	}
}

// trimZeros returns the non-zero part of coverage and its offset.
func trimZeros(coverage []float32) (trimmed []float32, offset int) {
	lo, hi := 0, len(coverage)
	for lo < hi && coverage[lo] == 0 {
		lo++
	}
	if lo == hi {
		return nil, 0
	}
	for coverage[hi-1] == 0 {
		hi--
	}
	return coverage[lo:hi], lo
}

// fillSmallPath accumulates all rows at once in 2D buffers.
func (r *Rasteriser) fillSmallPath(xMin, xMax, yMin, yMax int, emit SpanFunc) {
	width := xMax - xMin
	height := yMax - yMin

	size := width * height
	r.cover = slices.Grow(r.cover[:0], size)[:size]
	r.area = slices.Grow(r.area[:0], size)[:size]
	clear(r.cover)
	clear(r.area)
	r.rowHasEdges = slices.Grow(r.rowHasEdges[:0], height)[:height]
	clear(r.rowHasEdges)

	for i := range r.edges {
		e := &r.edges[i]
		top := max(int(math.Floor(min(e.y0, e.y1))), yMin)
		bot := min(int(math.Floor(max(e.y0, e.y1)))+1, yMax)
		for y := top; y < bot; y++ {
			row := y - yMin
			off := row * width
			r.accumulateEdge(e, y, r.cover[off:off+width], r.area[off:off+width], xMin, xMax)
			r.rowHasEdges[row] = true
		}
	}

	for row := range height {
		if !r.rowHasEdges[row] {
			continue
		}
		off := row * width
		coverage := r.cover[off : off+width]
		integrateScanline(coverage, r.area[off:off+width])
		if trimmed, offset := trimZeros(coverage); trimmed != nil {
			emit(yMin+row, xMin+offset, trimmed)
		}
	}
}

// fillLargePath scans row by row, keeping a list of active edges.
func (r *Rasteriser) fillLargePath(xMin, xMax, yMin, yMax int, emit SpanFunc) {
	width := xMax - xMin
	r.cover = slices.Grow(r.cover[:0], width)[:width]
	r.area = slices.Grow(r.area[:0], width)[:width]

	slices.SortFunc(r.edges, func(a, b edge) int {
		return cmp.Compare(min(a.y0, a.y1), min(b.y0, b.y1))
	})

	r.activeIdx = r.activeIdx[:0]
	next := 0
	for y := yMin; y < yMax; y++ {
		yf := float64(y)

		for next < len(r.edges) && min(r.edges[next].y0, r.edges[next].y1) < yf+1 {
			r.activeIdx = append(r.activeIdx, next)
			next++
		}
		if len(r.activeIdx) == 0 {
			continue
		}

		clear(r.cover)
		clear(r.area)
		touched := false
		for i := 0; i < len(r.activeIdx); {
			e := &r.edges[r.activeIdx[i]]
			if max(e.y0, e.y1) <= yf {
				last := len(r.activeIdx) - 1
				r.activeIdx[i] = r.activeIdx[last]
				r.activeIdx = r.activeIdx[:last]
				continue
			}
			r.accumulateEdge(e, y, r.cover, r.area, xMin, xMax)
			touched = true
			i++
		}
		if !touched {
			continue
		}

		integrateScanline(r.cover, r.area)
		if trimmed, offset := trimZeros(r.cover); trimmed != nil {
			emit(y, xMin+offset, trimmed)
		}
	}
}

const (
	// horizontalEdgeThreshold is the minimum vertical extent of an edge.
	// Flatter edges do not contribute to coverage.
	horizontalEdgeThreshold = 1e-10

	// smallPathThreshold is the default bounding box area (in pixels) up
	// to which 2D accumulation buffers are used.
	smallPathThreshold = 65536

	// coveredThreshold is the coverage at which a pixel counts as part of
	// a stroked line.
	coveredThreshold = 0.5
)

// covered reports whether a pixel with coverage c belongs to a stroked
// line.
func covered(c float32) bool {
	return c >= coveredThreshold
}

// inDepthRange reports whether an NDC depth lies between the near and the
// far plane.
func inDepthRange(depth float32) bool {
	return depth >= -1 && depth <= 1
}
