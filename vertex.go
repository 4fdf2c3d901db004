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

import "cogentcore.org/core/math32"

// FieldVertex holds the attributes of one vertex of the field pass.
type FieldVertex struct {
	Position math32.Vector3
	Field    float32        // normalised scalar field value
	Bary     math32.Vector3 // barycentric corner, (1,0,0), (0,1,0) or (0,0,1)
}

// FieldVarying is the output of the field vertex stage.  All fields except
// Clip are interpolated across the primitive before fragment shading.
type FieldVarying struct {
	Clip     math32.Vector4 // clip-space position
	Field    float32
	Bary     math32.Vector3
	ClipCopy math32.Vector4 // copy of Clip, available to fragment shading
}

// TransformField is the vertex stage of the field pass.
// It maps the position to clip space and forwards the scalar value and
// the barycentric coordinate unchanged.
func TransformField(v FieldVertex, m *math32.Matrix4) FieldVarying {
	clip := TransformEdge(v.Position, m)
	return FieldVarying{
		Clip:     clip,
		Field:    v.Field,
		Bary:     v.Bary,
		ClipCopy: clip,
	}
}

// TransformEdge is the vertex stage of the edge and wireframe passes.
func TransformEdge(p math32.Vector3, m *math32.Matrix4) math32.Vector4 {
	return math32.Vector4FromVector3(p, 1).MulMatrix4(m)
}

// lerp interpolates linearly between two varyings.  It is used by the
// clipper, which operates before the perspective division.
func (a FieldVarying) lerp(b FieldVarying, t float32) FieldVarying {
	return FieldVarying{
		Clip:     a.Clip.Lerp(b.Clip, t),
		Field:    a.Field + (b.Field-a.Field)*t,
		Bary:     lerp3(a.Bary, b.Bary, t),
		ClipCopy: a.ClipCopy.Lerp(b.ClipCopy, t),
	}
}

func lerp3(a, b math32.Vector3, t float32) math32.Vector3 {
	return math32.Vec3(a.X+(b.X-a.X)*t, a.Y+(b.Y-a.Y)*t, a.Z+(b.Z-a.Z)*t)
}
