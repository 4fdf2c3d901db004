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


package testcases

// strip returns a row of n unit quads along the x axis, with field value
// i at both nodes of column i.
func strip(n int) (nodes []float64, tris []int, field []float64) {
	for i := range n + 1 {
		x := float64(i)
		nodes = append(nodes, x, 0, 0, x, 1, 0)
		field = append(field, float64(i), float64(i))
	}
	for i := range n {
		a, b, c, d := 2*i, 2*i+2, 2*i+3, 2*i+1
		tris = append(tris, a, b, c, a, c, d)
	}
	return nodes, tris, field
}

var stripNodes, stripTriangles, stripField = strip(21)

var precisionCases = []TestCase{
	{
		// one band per column; node values fall exactly on band bounds
		Name:      "band_boundaries",
		Width:     256,
		Height:    32,
		Nodes:     stripNodes,
		Center:    [3]float64{10.5, 0.5, 0},
		Triangles: stripTriangles,
		Field:     stripField,
		Min:       0,
		Max:       21,
		Scale:     8,
	},
	{
		Name:   "sliver",
		Width:  64,
		Height: 64,
		Nodes: []float64{
			0, 0, 0,
			1, 0.01, 0,
			1, 0.03, 0,
			0, 0.04, 0,
		},
		Center:    [3]float64{0.5, 0.02, 0},
		Triangles: []int{0, 1, 2, 0, 2, 3},
		Field:     []float64{0.1, 0.9, 0.9, 0.1},
		Min:       0,
		Max:       1,
		Scale:     40,
	},
	{
		// the near part of the square is cut off by the near plane
		Name:   "near_plane",
		Width:  64,
		Height: 64,
		Nodes: []float64{
			-1, -1, -1,
			1, -1, -1,
			1, 1, 1.1,
			-1, 1, 1.1,
		},
		Triangles: unitSquare.tris,
		FreeEdges: boundary(0, 1, 2, 3),
		Field:     []float64{0, 0, 1, 1},
		Min:       0,
		Max:       1.05,
		Scale:     100,
	},
	{
		Name:      "subpixel_offset",
		Width:     64,
		Height:    64,
		Nodes:     []float64{0.013, 0.007, 0, 1.013, 0.007, 0, 1.013, 1.007, 0, 0.013, 1.007, 0},
		Center:    [3]float64{0.5, 0.5, 0},
		Triangles: unitSquare.tris,
		Field:     []float64{0.5, 0.5, 0.5, 0.5},
		Min:       0,
		Max:       1,
		Scale:     20,
	},
}
