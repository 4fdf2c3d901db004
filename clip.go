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

// clipPolygon clips a convex polygon in clip space against the near plane
// z + w >= 0 and appends the result to dst.  Varyings of new vertices are
// interpolated linearly in clip space.
func clipPolygon(dst, src []FieldVarying) []FieldVarying {
	for i, cur := range src {
		prev := src[(i+len(src)-1)%len(src)]
		dPrev := nearDistance(prev.Clip)
		dCur := nearDistance(cur.Clip)
		if (dPrev >= 0) != (dCur >= 0) {
			dst = append(dst, prev.lerp(cur, dPrev/(dPrev-dCur)))
		}
		if dCur >= 0 {
			dst = append(dst, cur)
		}
	}
	return dst
}

// clipSegment clips the segment a→b in clip space against the near plane.
// The last return value is false if nothing of the segment is left.
func clipSegment(a, b math32.Vector4) (math32.Vector4, math32.Vector4, bool) {
	da := nearDistance(a)
	db := nearDistance(b)
	switch {
	case da < 0 && db < 0:
		return a, b, false
	case da < 0:
		a = a.Lerp(b, da/(da-db))
	case db < 0:
		b = b.Lerp(a, db/(db-da))
	}
	return a, b, true
}

// nearDistance is the signed distance-like quantity z + w, which is
// non-negative exactly on the visible side of the near plane.
func nearDistance(c math32.Vector4) float32 {
	return c.Z + c.W
}
