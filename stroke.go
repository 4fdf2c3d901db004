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

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf/graphics"
)

// StrokeSegment computes the coverage of the straight segment a→b,
// stroked with r.Width and r.Cap.  The endpoints are transformed by
// r.Viewport; the width is measured in device pixels, so that lines keep
// their thickness under perspective.  Segments are stroked independently
// and have no joins.
func (r *Rasteriser) StrokeSegment(a, b vec.Vec2, emit SpanFunc) {
	r.outline = r.outline[:0]
	r.addSegmentOutline(r.toDevice(a), r.toDevice(b), r.Width/2)
	if len(r.outline) < 3 {
		return
	}

	vp := r.Viewport
	r.Viewport = matrix.Identity
	r.FillPolygon(r.outline, emit)
	r.Viewport = vp
}

func (r *Rasteriser) toDevice(p vec.Vec2) vec.Vec2 {
	m := r.Viewport
	return vec.Vec2{
		X: m[0]*p.X + m[2]*p.Y + m[4],
		Y: m[1]*p.X + m[3]*p.Y + m[5],
	}
}

// addSegmentOutline appends the outline of the stroked segment a→b to
// r.outline.  d is half the line width.
func (r *Rasteriser) addSegmentOutline(a, b vec.Vec2, d float64) {
	ab := b.Sub(a)
	length := ab.Length()
	if length < zeroLengthThreshold {
		r.addDot(a, d)
		return
	}
	T := ab.Mul(1 / length)
	N := vec.Vec2{X: -T.Y, Y: T.X}

	r.outline = append(r.outline, a.Add(N.Mul(d)), b.Add(N.Mul(d)))
	r.addCap(b, T, d)
	r.outline = append(r.outline, b.Sub(N.Mul(d)), a.Sub(N.Mul(d)))
	r.addCap(a, T.Mul(-1), d)
}

// addCap adds the cap at P, where T points away from the segment.
// The points P+N·d and P-N·d are added by the caller.
func (r *Rasteriser) addCap(P, T vec.Vec2, d float64) {
	N := vec.Vec2{X: -T.Y, Y: T.X}

	switch r.Cap {
	case graphics.LineCapSquare:
		ext := P.Add(T.Mul(d))
		r.outline = append(r.outline, ext.Add(N.Mul(d)), ext.Sub(N.Mul(d)))
	case graphics.LineCapRound:
		r.addArc(P, d, N, -math.Pi, false)
	}
}

// addDot handles zero-length segments.  Butt caps draw nothing, square
// caps an axis-aligned square and round caps a disc.
func (r *Rasteriser) addDot(P vec.Vec2, d float64) {
	switch r.Cap {
	case graphics.LineCapSquare:
		r.outline = append(r.outline,
			vec.Vec2{X: P.X - d, Y: P.Y - d},
			vec.Vec2{X: P.X + d, Y: P.Y - d},
			vec.Vec2{X: P.X + d, Y: P.Y + d},
			vec.Vec2{X: P.X - d, Y: P.Y + d},
		)
	case graphics.LineCapRound:
		r.addArc(P, d, vec.Vec2{X: 1}, 2*math.Pi, true)
	}
}

// addArc appends points of the arc around center, starting in direction
// startDir and sweeping by sweep radians (positive is counter-clockwise).
// The end point is always included; the start point only if includeStart
// is set.  The outline is in device space, so the chord deviation is
// kept below arcFlatness pixels.
func (r *Rasteriser) addArc(center vec.Vec2, radius float64, startDir vec.Vec2, sweep float64, includeStart bool) {
	n := 1
	if radius > arcFlatness {
		// A chord spanning the angle θ deviates from the circle by
		// radius*(1 - cos(θ/2)).
		step := 2 * math.Acos(1-arcFlatness/radius)
		n = max(int(math.Ceil(math.Abs(sweep)/step)), 1)
	}

	first := 1
	if includeStart {
		first = 0
	}
	dt := sweep / float64(n)
	for i := first; i <= n; i++ {
		sin, cos := math.Sincos(float64(i) * dt)
		dir := vec.Vec2{
			X: startDir.X*cos - startDir.Y*sin,
			Y: startDir.X*sin + startDir.Y*cos,
		}
		r.outline = append(r.outline, center.Add(dir.Mul(radius)))
	}
}

const (
	// zeroLengthThreshold is the device-space length below which a
	// segment is treated as a single point.
	zeroLengthThreshold = 1e-10

	// arcFlatness is the maximum deviation, in pixels, between a round
	// cap and its polygonal approximation.
	arcFlatness = 0.25
)
