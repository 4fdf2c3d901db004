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
	"context"
	"fmt"
	"image/color"
	"runtime"

	"cogentcore.org/core/math32"
	"golang.org/x/sync/errgroup"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf/graphics"
)

// Scene is everything needed to draw one frame of a dataset.
type Scene struct {
	// Transform maps model coordinates to clip space.  It is shared by
	// all three passes.
	Transform math32.Matrix4

	// Field lists the triangles of the field pass, three vertices each.
	Field []FieldVertex

	// FreeEdges and Wireframe list line segments, two endpoints each.
	FreeEdges []math32.Vector3
	Wireframe []math32.Vector3
}

// Renderer draws scenes into a frame buffer.
//
// A Renderer is not safe for concurrent use.  Fragment colours are
// computed on several goroutines, but primitives are resolved against the
// depth buffer in submission order.
type Renderer struct {
	Frame *Framebuffer

	// Background is the colour the frame is cleared to by Render.
	Background color.Color

	// CullBackFaces discards triangles which appear clockwise on screen.
	CullBackFaces bool

	// LineWidth is the width of edges and wireframe lines, in pixels.
	LineWidth float64

	// LineCap is the cap style of edges and wireframe lines.
	LineCap graphics.LineCapStyle

	// LineDepthBias is subtracted from the depth of line fragments, so
	// that lines lying on the surface are drawn on top of it.
	LineDepthBias float32

	// Workers limits the number of goroutines used for fragment shading.
	// Zero means GOMAXPROCS.
	Workers int

	raster *Rasteriser
	poly   []FieldVarying
	frags  []fragment
	colors []RGB
}

// fragment is a covered pixel of the field pass, with its interpolated
// varyings.
type fragment struct {
	x, y  int
	depth float32
	in    FieldVarying // Clip is unused after rasterisation
}

// NewRenderer returns a renderer for a width×height frame with back-face
// culling enabled and one pixel wide lines.
func NewRenderer(width, height int) *Renderer {
	fb := NewFramebuffer(width, height)
	return &Renderer{
		Frame:         fb,
		Background:    color.White,
		CullBackFaces: true,
		LineWidth:     1,
		LineCap:       graphics.LineCapButt,
		LineDepthBias: defaultLineDepthBias,
		raster:        NewRasteriser(fb.Clip()),
	}
}

// PassStats counts what happened to the primitives of one pass.
type PassStats struct {
	Primitives int // submitted
	Culled     int // back faces
	Clipped    int // entirely in front of the near plane
	Fragments  int // written to the frame buffer
}

// Render clears the frame and draws the field, the free edges and the
// wireframe of s, in this order.
func (r *Renderer) Render(ctx context.Context, s *Scene) error {
	r.Frame.Clear(r.Background)

	if _, err := r.DrawField(ctx, s.Field, &s.Transform); err != nil {
		return fmt.Errorf("field pass: %w", err)
	}
	if _, err := r.DrawLines(ctx, s.FreeEdges, &s.Transform); err != nil {
		return fmt.Errorf("edge pass: %w", err)
	}
	if _, err := r.DrawLines(ctx, s.Wireframe, &s.Transform); err != nil {
		return fmt.Errorf("wireframe pass: %w", err)
	}
	return nil
}

// DrawField draws a triangle list coloured by the scalar field.
// Trailing vertices which do not form a full triangle are ignored.
func (r *Renderer) DrawField(ctx context.Context, verts []FieldVertex, m *math32.Matrix4) (PassStats, error) {
	r.prepare()
	var stats PassStats

	r.frags = r.frags[:0]
	var tri [3]FieldVarying
	for i := 0; i+3 <= len(verts); i += 3 {
		if i%(3*cancelCheckInterval) == 0 {
			if err := ctx.Err(); err != nil {
				return stats, err
			}
		}
		stats.Primitives++

		for k := range 3 {
			tri[k] = TransformField(verts[i+k], m)
		}
		r.poly = clipPolygon(r.poly[:0], tri[:])
		if len(r.poly) < 3 || !allPositiveW(r.poly) {
			stats.Clipped++
			continue
		}
		if r.CullBackFaces && signedAreaNDC(r.poly) < 0 {
			stats.Culled++
			continue
		}
		for k := 1; k+1 < len(r.poly); k++ {
			r.rasteriseTriangle(r.poly[0], r.poly[k], r.poly[k+1])
		}
	}

	if err := r.shadeFragments(ctx); err != nil {
		return stats, err
	}

	for i, f := range r.frags {
		if r.Frame.depthTest(f.x, f.y, f.depth, false, r.colors[i].NRGBA()) {
			stats.Fragments++
		}
	}

	Logger().Debug("field pass",
		"triangles", stats.Primitives,
		"culled", stats.Culled,
		"clipped", stats.Clipped,
		"fragments", stats.Fragments)
	return stats, nil
}

// DrawLines draws a list of line segments in the constant edge colour.
// A trailing unpaired endpoint is ignored.
func (r *Renderer) DrawLines(ctx context.Context, ends []math32.Vector3, m *math32.Matrix4) (PassStats, error) {
	r.prepare()
	var stats PassStats

	col := EdgeColor()
	for i := 0; i+2 <= len(ends); i += 2 {
		if i%(2*cancelCheckInterval) == 0 {
			if err := ctx.Err(); err != nil {
				return stats, err
			}
		}
		stats.Primitives++

		a, b, ok := clipSegment(TransformEdge(ends[i], m), TransformEdge(ends[i+1], m))
		if !ok || a.W <= 0 || b.W <= 0 {
			stats.Clipped++
			continue
		}
		na := a.PerspDiv()
		nb := b.PerspDiv()
		pa := vec.Vec2{X: float64(na.X), Y: float64(na.Y)}
		pb := vec.Vec2{X: float64(nb.X), Y: float64(nb.Y)}
		da := r.raster.toDevice(pa)
		db := r.raster.toDevice(pb)

		r.raster.StrokeSegment(pa, pb, func(y, xMin int, coverage []float32) {
			for j, c := range coverage {
				if !covered(c) {
					continue
				}
				x := xMin + j
				s := segmentParameter(da, db, vec.Vec2{X: float64(x) + 0.5, Y: float64(y) + 0.5})
				depth := na.Z + (nb.Z-na.Z)*float32(s)
				if !inDepthRange(depth) {
					continue
				}
				if r.Frame.depthTest(x, y, depth-r.LineDepthBias, true, col) {
					stats.Fragments++
				}
			}
		})
	}

	Logger().Debug("line pass",
		"segments", stats.Primitives,
		"clipped", stats.Clipped,
		"fragments", stats.Fragments)
	return stats, nil
}

// prepare synchronises the rasteriser with the current settings.
func (r *Renderer) prepare() {
	r.raster.Reset(r.Frame.Clip())
	r.raster.Viewport = ViewportMatrix(r.Frame.Width(), r.Frame.Height())
	r.raster.Width = r.LineWidth
	r.raster.Cap = r.LineCap
}

// rasteriseTriangle appends the fragments of one clipped triangle,
// interpolating the varyings perspective-correctly at pixel centres.
//
// The coverage spans only bound the pixels which are examined.  A pixel
// belongs to the triangle if its centre is inside; centres on an edge are
// resolved by the top-left rule, so that the triangles of a closed mesh
// own every pixel exactly once, including pixels at shared vertices.
func (r *Renderer) rasteriseTriangle(v0, v1, v2 FieldVarying) {
	vs := [3]FieldVarying{v0, v1, v2}
	var ndc [3]math32.Vector3
	var dev [3]vec.Vec2
	var invW [3]float64
	var poly [3]vec.Vec2
	for k, v := range vs {
		ndc[k] = v.Clip.PerspDiv()
		poly[k] = vec.Vec2{X: float64(ndc[k].X), Y: float64(ndc[k].Y)}
		dev[k] = r.raster.toDevice(poly[k])
		invW[k] = 1 / float64(v.Clip.W)
	}

	area := edgeFunction(dev[0], dev[1], dev[2])
	if area > -degenerateArea && area < degenerateArea {
		return
	}
	orient := 1.0
	if area < 0 {
		orient = -1
	}

	r.raster.FillPolygon(poly[:], func(y, xMin int, coverage []float32) {
		for j := range coverage {
			x := xMin + j
			p := vec.Vec2{X: float64(x) + 0.5, Y: float64(y) + 0.5}

			w0 := orientedEdge(dev[1], dev[2], p)
			w1 := orientedEdge(dev[2], dev[0], p)
			w2 := orientedEdge(dev[0], dev[1], p)
			if !ownsSample(w0*orient, dev[2].Sub(dev[1]).Mul(orient)) ||
				!ownsSample(w1*orient, dev[0].Sub(dev[2]).Mul(orient)) ||
				!ownsSample(w2*orient, dev[1].Sub(dev[0]).Mul(orient)) {
				continue
			}

			// screen-space barycentric weights
			l0 := w0 / area
			l1 := w1 / area
			l2 := w2 / area

			depth := float32(l0*float64(ndc[0].Z) + l1*float64(ndc[1].Z) + l2*float64(ndc[2].Z))
			if !inDepthRange(depth) {
				continue
			}

			q0, q1, q2 := l0*invW[0], l1*invW[1], l2*invW[2]
			sum := q0 + q1 + q2
			w := [3]float32{float32(q0 / sum), float32(q1 / sum), float32(q2 / sum)}

			r.frags = append(r.frags, fragment{
				x:     x,
				y:     y,
				depth: depth,
				in:    interpolate(vs, w),
			})
		}
	})
}

// interpolate blends the varyings of a triangle with weights w.
func interpolate(vs [3]FieldVarying, w [3]float32) FieldVarying {
	var out FieldVarying
	for k, v := range vs {
		out.Field += w[k] * v.Field
		out.Bary = math32.Vec3(out.Bary.X+w[k]*v.Bary.X, out.Bary.Y+w[k]*v.Bary.Y, out.Bary.Z+w[k]*v.Bary.Z)
		out.ClipCopy = out.ClipCopy.Add(v.ClipCopy.MulScalar(w[k]))
	}
	return out
}

// shadeFragments runs the fragment colour stage for all collected
// fragments, in parallel.
func (r *Renderer) shadeFragments(ctx context.Context) error {
	n := len(r.frags)
	if cap(r.colors) < n {
		r.colors = make([]RGB, n)
	}
	r.colors = r.colors[:n]

	workers := r.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for start := 0; start < n; start += classifyChunk {
		end := min(start+classifyChunk, n)
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			for i := start; i < end; i++ {
				r.colors[i] = Classify(float64(r.frags[i].in.Field))
			}
			return nil
		})
	}
	return g.Wait()
}

// edgeFunction is twice the signed area of the triangle a, b, p.
func edgeFunction(a, b, p vec.Vec2) float64 {
	return (b.X-a.X)*(p.Y-a.Y) - (b.Y-a.Y)*(p.X-a.X)
}

// orientedEdge is edgeFunction with the endpoints put into a fixed order,
// so that two triangles sharing the edge a-b get exactly opposite values
// at every sample point.
func orientedEdge(a, b, p vec.Vec2) float64 {
	if b.X < a.X || (b.X == a.X && b.Y < a.Y) {
		return -edgeFunction(b, a, p)
	}
	return edgeFunction(a, b, p)
}

// ownsSample applies the top-left rule to a sample with edge value w,
// for an edge with direction d of a triangle whose interior has w > 0.
// A sample on the edge is owned if it lies on the inside after shifting
// it by an infinitesimal amount to the right and, to break ties, down.
func ownsSample(w float64, d vec.Vec2) bool {
	if w != 0 {
		return w > 0
	}
	return d.Y < 0 || (d.Y == 0 && d.X > 0)
}

// signedAreaNDC returns twice the signed area of the projected polygon,
// positive for counter-clockwise (front facing) polygons.
func signedAreaNDC(poly []FieldVarying) float64 {
	var sum float64
	for i, v := range poly {
		a := v.Clip.PerspDiv()
		b := poly[(i+1)%len(poly)].Clip.PerspDiv()
		sum += float64(a.X)*float64(b.Y) - float64(b.X)*float64(a.Y)
	}
	return sum
}

func allPositiveW(poly []FieldVarying) bool {
	for _, v := range poly {
		if v.Clip.W <= 0 {
			return false
		}
	}
	return true
}

// segmentParameter returns the parameter in [0, 1] of the point on a→b
// closest to p.
func segmentParameter(a, b, p vec.Vec2) float64 {
	ab := b.Sub(a)
	l2 := ab.Dot(ab)
	if l2 == 0 {
		return 0
	}
	return min(max(p.Sub(a).Dot(ab)/l2, 0), 1)
}

const (
	// degenerateArea is the minimal doubled device-space area of a
	// triangle which gets rasterised.
	degenerateArea = 1e-12

	defaultLineDepthBias = 1e-4

	// cancelCheckInterval is the number of primitives processed between
	// checks of the context.
	cancelCheckInterval = 1024
)
