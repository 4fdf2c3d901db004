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
	"math"
	"testing"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf/graphics"
)

// coverageGrid rasterises into a dense width×height grid.
func coverageGrid(width, height int) ([]float32, SpanFunc) {
	grid := make([]float32, width*height)
	return grid, func(y, xMin int, coverage []float32) {
		copy(grid[y*width+xMin:], coverage)
	}
}

// TestTriangleCoverage verifies exact coverage values for a simple triangle.
// The triangle (0,0)→(10,0)→(10,1) has a diagonal edge y = x/10.
// Each pixel X should have coverage (2X+1)/20: 0.05, 0.15, ..., 0.95.
func TestTriangleCoverage(t *testing.T) {
	triangle := []vec.Vec2{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 1}}

	for _, threshold := range []int{1 << 30, 0} {
		r := NewRasteriser(rect.Rect{LLx: 0, LLy: 0, URx: 10, URy: 1})
		r.smallPathThreshold = threshold

		coverage, emit := coverageGrid(10, 1)
		r.FillPolygon(triangle, emit)

		const epsilon = 1e-6
		for x := range 10 {
			expected := float32(2*x+1) / 20.0
			actual := coverage[x]
			if math.Abs(float64(actual-expected)) > epsilon {
				t.Errorf("threshold %d, pixel %d: expected coverage %.4f, got %.4f",
					threshold, x, expected, actual)
			}
		}
	}
}

func TestOrientationIndependent(t *testing.T) {
	ccw := []vec.Vec2{{X: 1, Y: 1}, {X: 15, Y: 3}, {X: 6, Y: 14}}
	cw := []vec.Vec2{ccw[2], ccw[1], ccw[0]}

	clip := rect.Rect{URx: 16, URy: 16}
	a, emitA := coverageGrid(16, 16)
	b, emitB := coverageGrid(16, 16)
	NewRasteriser(clip).FillPolygon(ccw, emitA)
	NewRasteriser(clip).FillPolygon(cw, emitB)

	var sum float64
	for i := range a {
		if math.Abs(float64(a[i]-b[i])) > 1e-5 {
			t.Fatalf("pixel %d: %g != %g", i, a[i], b[i])
		}
		sum += float64(a[i])
	}
	// area of the triangle is 86
	if math.Abs(sum-86) > 1e-3 {
		t.Errorf("total coverage %g, want 86", sum)
	}
}

func TestApproachesAgree(t *testing.T) {
	poly := []vec.Vec2{{X: -5, Y: 3.5}, {X: 40.2, Y: -2}, {X: 61, Y: 50.5}, {X: 12.25, Y: 70}}
	clip := rect.Rect{URx: 64, URy: 64}

	small := NewRasteriser(clip)
	small.smallPathThreshold = 1 << 30
	large := NewRasteriser(clip)
	large.smallPathThreshold = 0

	a, emitA := coverageGrid(64, 64)
	b, emitB := coverageGrid(64, 64)
	small.FillPolygon(poly, emitA)
	large.FillPolygon(poly, emitB)
	for i := range a {
		if math.Abs(float64(a[i]-b[i])) > 1e-5 {
			t.Fatalf("pixel (%d, %d): %g != %g", i%64, i/64, a[i], b[i])
		}
	}
}

func TestViewportMatrix(t *testing.T) {
	m := ViewportMatrix(200, 100)
	r := NewRasteriser(rect.Rect{URx: 200, URy: 100})
	r.Viewport = m

	cases := []struct{ in, want vec.Vec2 }{
		{vec.Vec2{X: -1, Y: 1}, vec.Vec2{X: 0, Y: 0}},
		{vec.Vec2{X: 1, Y: -1}, vec.Vec2{X: 200, Y: 100}},
		{vec.Vec2{X: 0, Y: 0}, vec.Vec2{X: 100, Y: 50}},
	}
	for _, c := range cases {
		if got := r.toDevice(c.in); got != c.want {
			t.Errorf("toDevice(%v) = %v, want %v", c.in, got, c.want)
		}
	}
	if m == matrix.Identity {
		t.Error("viewport is the identity")
	}
}

func TestStrokeWidth(t *testing.T) {
	clip := rect.Rect{URx: 20, URy: 20}
	for _, width := range []float64{1, 2, 4} {
		r := NewRasteriser(clip)
		r.Width = width
		grid, emit := coverageGrid(20, 20)
		r.StrokeSegment(vec.Vec2{X: 4, Y: 10}, vec.Vec2{X: 16, Y: 10}, emit)

		var sum float64
		for _, c := range grid {
			sum += float64(c)
		}
		if want := 12 * width; math.Abs(sum-want) > 1e-4 {
			t.Errorf("width %g: total coverage %g, want %g", width, sum, want)
		}
	}
}

func TestStrokeCaps(t *testing.T) {
	clip := rect.Rect{URx: 20, URy: 20}
	a, b := vec.Vec2{X: 5, Y: 10}, vec.Vec2{X: 15, Y: 10}
	const width = 2

	total := func(c graphics.LineCapStyle, p, q vec.Vec2) float64 {
		r := NewRasteriser(clip)
		r.Width = width
		r.Cap = c
		grid, emit := coverageGrid(20, 20)
		r.StrokeSegment(p, q, emit)
		var sum float64
		for _, v := range grid {
			sum += float64(v)
		}
		return sum
	}

	butt := total(graphics.LineCapButt, a, b)
	square := total(graphics.LineCapSquare, a, b)
	round := total(graphics.LineCapRound, a, b)
	if math.Abs(butt-20) > 1e-4 {
		t.Errorf("butt: %g, want 20", butt)
	}
	// two half squares of 1×2
	if math.Abs(square-24) > 1e-4 {
		t.Errorf("square: %g, want 24", square)
	}
	// two half discs of radius 1, less the flattening error
	if want := 20 + math.Pi; round > want+1e-4 || round <= butt {
		t.Errorf("round: %g, want between %g and %g", round, butt, want)
	}

	if dot := total(graphics.LineCapButt, a, a); dot != 0 {
		t.Errorf("zero-length butt segment: %g, want 0", dot)
	}
	if dot := total(graphics.LineCapSquare, a, a); math.Abs(dot-4) > 1e-4 {
		t.Errorf("zero-length square segment: %g, want 4", dot)
	}
}

func TestCovered(t *testing.T) {
	for c, want := range map[float32]bool{0: false, 0.49: false, 0.5: true, 1: true} {
		if got := covered(c); got != want {
			t.Errorf("covered(%g) = %v", c, got)
		}
	}
}

func TestInDepthRange(t *testing.T) {
	nan := float32(math.NaN())
	inf := float32(math.Inf(1))
	for d, want := range map[float32]bool{-1: true, 0: true, 1: true, -1.0001: false, 1.0001: false, inf: false, -inf: false} {
		if got := inDepthRange(d); got != want {
			t.Errorf("inDepthRange(%g) = %v", d, got)
		}
	}
	if inDepthRange(nan) {
		t.Error("inDepthRange(NaN) = true")
	}
}
