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
	"testing"

	"cogentcore.org/core/math32"
)

func TestTransformFieldIdentity(t *testing.T) {
	m := math32.Identity4()
	v := FieldVertex{
		Position: math32.Vec3(1, 2, 3),
		Field:    0.25,
		Bary:     math32.Vec3(0, 1, 0),
	}
	out := TransformField(v, m)
	if want := math32.Vec4(1, 2, 3, 1); out.Clip != want {
		t.Errorf("Clip = %v, want %v", out.Clip, want)
	}
	if out.ClipCopy != out.Clip {
		t.Errorf("ClipCopy = %v, want %v", out.ClipCopy, out.Clip)
	}
	if out.Field != v.Field || out.Bary != v.Bary {
		t.Errorf("varyings changed: %+v", out)
	}
}

func TestTransformEdgeTranslation(t *testing.T) {
	m := math32.Identity4()
	m.SetTransform(math32.Vec3(10, -5, 2), math32.Quat{W: 1}, math32.Vec3(1, 1, 1))
	got := TransformEdge(math32.Vec3(1, 1, 1), m)
	if want := math32.Vec4(11, -4, 3, 1); got != want {
		t.Errorf("TransformEdge = %v, want %v", got, want)
	}
}

// denseMatrix has sixteen distinct non-zero entries, given row by row.
func denseMatrix() *math32.Matrix4 {
	m := &math32.Matrix4{}
	m.Set(
		2, -3, 5, 7,
		-11, 13, 17, -19,
		23, 29, -31, 37,
		41, -43, 47, 53,
	)
	return m
}

func TestTransformDenseMatrix(t *testing.T) {
	m := denseMatrix()
	cases := []struct {
		p    math32.Vector3
		want math32.Vector4
	}{
		{math32.Vec3(0, 0, 0), math32.Vec4(7, -19, 37, 53)},
		{math32.Vec3(1, 2, -3), math32.Vec4(-12, -55, 211, -133)},
		{math32.Vec3(0.5, -4, 2), math32.Vec4(30, -42.5, -129.5, 339.5)},
	}
	for _, c := range cases {
		if got := TransformEdge(c.p, m); got != c.want {
			t.Errorf("TransformEdge(%v) = %v, want %v", c.p, got, c.want)
		}

		v := FieldVertex{Position: c.p, Field: 0.75, Bary: math32.Vec3(0, 0, 1)}
		out := TransformField(v, m)
		if out.Clip != c.want || out.ClipCopy != c.want {
			t.Errorf("TransformField(%v): Clip %v, ClipCopy %v, want %v", c.p, out.Clip, out.ClipCopy, c.want)
		}
		if out.Field != v.Field || out.Bary != v.Bary {
			t.Errorf("TransformField(%v): varyings changed: %+v", c.p, out)
		}
	}
}

func TestTransformRepeatable(t *testing.T) {
	m := denseMatrix()
	before := *m
	v := FieldVertex{Position: math32.Vec3(0.3, -1.7, 4.1), Field: 0.42, Bary: math32.Vec3(1, 0, 0)}

	first := TransformField(v, m)
	second := TransformField(v, m)
	if first != second {
		t.Errorf("repeated calls differ: %+v != %+v", first, second)
	}
	if a, b := TransformEdge(v.Position, m), TransformEdge(v.Position, m); a != b {
		t.Errorf("repeated edge calls differ: %v != %v", a, b)
	}
	if *m != before {
		t.Error("matrix modified")
	}
}

func TestTransformFieldAgreesWithEdge(t *testing.T) {
	m := math32.Identity4()
	m.SetPerspective(30, 4.0/3, 1, 2000)
	p := math32.Vec3(3, -7, -50)
	a := TransformField(FieldVertex{Position: p}, m)
	b := TransformEdge(p, m)
	if a.Clip != b {
		t.Errorf("field and edge stages disagree: %v != %v", a.Clip, b)
	}
}

func TestVaryingLerp(t *testing.T) {
	a := FieldVarying{Clip: math32.Vec4(0, 0, 0, 1), Field: 0, Bary: math32.Vec3(1, 0, 0)}
	a.ClipCopy = a.Clip
	b := FieldVarying{Clip: math32.Vec4(2, 4, -2, 3), Field: 1, Bary: math32.Vec3(0, 1, 0)}
	b.ClipCopy = b.Clip

	mid := a.lerp(b, 0.5)
	if want := math32.Vec4(1, 2, -1, 2); mid.Clip != want || mid.ClipCopy != want {
		t.Errorf("Clip = %v, want %v", mid.Clip, want)
	}
	if mid.Field != 0.5 {
		t.Errorf("Field = %g", mid.Field)
	}
	if want := math32.Vec3(0.5, 0.5, 0); mid.Bary != want {
		t.Errorf("Bary = %v, want %v", mid.Bary, want)
	}
}
