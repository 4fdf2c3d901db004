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

import "seehuhn.de/go/pdf/graphics"

// star returns n spokes from the origin, as nodes and segments.
func star(n int) (nodes []float64, segs []int) {
	nodes = append(nodes, 0, 0, 0)
	for i := range n {
		// avoid trigonometry, so that exported coordinates are exact
		x := float64(i%3) - 1
		y := float64(i/3) - 1
		if x == 0 && y == 0 {
			x, y = 1.5, 1.5
		}
		nodes = append(nodes, x, y, 0)
		segs = append(segs, 0, i+1)
	}
	return nodes, segs
}

var starNodes, starSegments = star(9)

var lineCases = []TestCase{
	{
		Name:      "spokes_butt",
		Width:     64,
		Height:    64,
		Nodes:     starNodes,
		Wireframe: starSegments,
		Min:       0,
		Max:       1,
		Scale:     15,
		LineWidth: 3,
		Cap:       graphics.LineCapButt,
	},
	{
		Name:      "spokes_round",
		Width:     64,
		Height:    64,
		Nodes:     starNodes,
		Wireframe: starSegments,
		Min:       0,
		Max:       1,
		Scale:     15,
		LineWidth: 3,
		Cap:       graphics.LineCapRound,
	},
	{
		Name:      "spokes_square",
		Width:     64,
		Height:    64,
		Nodes:     starNodes,
		FreeEdges: starSegments,
		Min:       0,
		Max:       1,
		Scale:     15,
		LineWidth: 3,
		Cap:       graphics.LineCapSquare,
	},
	{
		// the wireframe lies in the surface and must stay visible
		Name:      "wireframe_on_surface",
		Width:     64,
		Height:    64,
		Nodes:     unitSquare.nodes,
		Center:    [3]float64{0.5, 0.5, 0},
		Triangles: unitSquare.tris,
		Wireframe: triangleEdges(unitSquare.tris),
		FreeEdges: boundary(0, 1, 2, 3),
		Field:     []float64{1, 1, 1, 1},
		Min:       0,
		Max:       2,
		Scale:     30,
		LineWidth: 2,
	},
	{
		// zero-length segments: nothing for butt caps, a dot otherwise
		Name:      "degenerate_round",
		Width:     32,
		Height:    32,
		Nodes:     []float64{0, 0, 0},
		Wireframe: []int{0, 0},
		Min:       0,
		Max:       1,
		LineWidth: 6,
		Cap:       graphics.LineCapRound,
	},
}
