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
	"image/color"
	"maps"
	"slices"
	"testing"

	"cogentcore.org/core/math32"
	"cogentcore.org/core/math32/minmax"

	"seehuhn.de/go/meshfield/camera"
	"seehuhn.de/go/meshfield/testcases"
)

// renderCase draws a test scene, using the given rasteriser threshold.
func renderCase(t testing.TB, tc testcases.TestCase, threshold int) (*Renderer, PassStats) {
	t.Helper()

	m := &Mesh{
		Nodes:     tc.Nodes,
		Center:    tc.Center,
		Triangles: tc.Triangles,
		Wireframe: tc.Wireframe,
		FreeEdges: tc.FreeEdges,
		Field:     tc.Field,
	}
	if tc.Elemental {
		m.FieldType = Elemental
	}

	cam := camera.New(tc.Width, tc.Height)
	cam.Center = math32.Vec3(float32(tc.Center[0]), float32(tc.Center[1]), float32(tc.Center[2]))
	if tc.Scale != 0 {
		cam.Scale = tc.Scale
	}
	if tc.RotateDegrees != 0 {
		axis := math32.Vec3(tc.RotateAxis[0], tc.RotateAxis[1], tc.RotateAxis[2])
		cam.Rotate(axis, math32.DegToRad(tc.RotateDegrees))
	}
	transform := cam.Transform()

	s, err := m.Scene(&transform, SceneOptions{
		Range:          minmax.F64{Min: tc.Min, Max: tc.Max},
		ElementAverage: tc.ElementAverage,
	})
	if err != nil {
		t.Fatal(err)
	}

	r := NewRenderer(tc.Width, tc.Height)
	r.raster.smallPathThreshold = threshold
	if tc.LineWidth != 0 {
		r.LineWidth = tc.LineWidth
	}
	r.LineCap = tc.Cap

	ctx := context.Background()
	r.Frame.Clear(r.Background)
	field, err := r.DrawField(ctx, s.Field, &s.Transform)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := r.DrawLines(ctx, s.FreeEdges, &s.Transform); err != nil {
		t.Fatal(err)
	}
	if _, err := r.DrawLines(ctx, s.Wireframe, &s.Transform); err != nil {
		t.Fatal(err)
	}
	return r, field
}

// TestScenes renders every scene with both rasteriser strategies and
// checks that the images use only palette colours and agree, up to a few
// pixels whose coverage is within rounding error of the threshold.
func TestScenes(t *testing.T) {
	allowed := map[color.NRGBA]bool{
		Fallback.NRGBA(): true,
		EdgeColor():      true,
	}
	for _, b := range Bands {
		allowed[b.Color.NRGBA()] = true
	}

	for _, category := range slices.Sorted(maps.Keys(testcases.All)) {
		for _, tc := range testcases.All[category] {
			t.Run(category+"_"+tc.Name, func(t *testing.T) {
				a, statsA := renderCase(t, tc, 1<<30)
				b, statsB := renderCase(t, tc, 0)

				if len(tc.Triangles) > 0 && statsA.Fragments == 0 {
					t.Error("no field fragments")
				}
				statsA.Fragments, statsB.Fragments = 0, 0
				if statsA != statsB {
					t.Errorf("field pass stats differ: %+v != %+v", statsA, statsB)
				}
				diff := 0
				for y := range tc.Height {
					for x := range tc.Width {
						ca, cb := a.Frame.At(x, y), b.Frame.At(x, y)
						if !allowed[ca] {
							t.Fatalf("pixel (%d, %d) has colour %v", x, y, ca)
						}
						if ca != cb {
							diff++
						}
					}
				}
				if limit := max(2, tc.Width*tc.Height/200); diff > limit {
					t.Errorf("%d pixels differ between strategies", diff)
				}
			})
		}
	}
}
