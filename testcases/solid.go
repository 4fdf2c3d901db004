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

// Closed surfaces with outward-facing, counter-clockwise triangles.

var tetrahedron = struct {
	nodes []float64
	tris  []int
}{
	nodes: []float64{0, 0, 0, 1, 0, 0, 0, 1, 0, 0, 0, 1},
	tris:  []int{0, 2, 1, 0, 1, 3, 0, 3, 2, 1, 2, 3},
}

// cube has node x + 2y + 4z at the corner (x, y, z).
var cube = struct {
	nodes []float64
	tris  []int
	edges []int
}{
	nodes: []float64{
		0, 0, 0, 1, 0, 0, 0, 1, 0, 1, 1, 0,
		0, 0, 1, 1, 0, 1, 0, 1, 1, 1, 1, 1,
	},
	tris: []int{
		0, 2, 3, 0, 3, 1, // z = 0
		4, 5, 7, 4, 7, 6, // z = 1
		0, 1, 5, 0, 5, 4, // y = 0
		2, 6, 7, 2, 7, 3, // y = 1
		0, 4, 6, 0, 6, 2, // x = 0
		1, 3, 7, 1, 7, 5, // x = 1
	},
	edges: []int{
		0, 1, 2, 3, 4, 5, 6, 7,
		0, 2, 1, 3, 4, 6, 5, 7,
		0, 4, 1, 5, 2, 6, 3, 7,
	},
}

// cornerField is the sum of the coordinates of each node.
func cornerField(nodes []float64) []float64 {
	out := make([]float64, len(nodes)/3)
	for i := range out {
		out[i] = nodes[3*i] + nodes[3*i+1] + nodes[3*i+2]
	}
	return out
}

var solidCases = []TestCase{
	{
		Name:          "tetrahedron",
		Width:         96,
		Height:        96,
		Nodes:         tetrahedron.nodes,
		Center:        [3]float64{0.25, 0.25, 0.25},
		Triangles:     tetrahedron.tris,
		Wireframe:     triangleEdges(tetrahedron.tris),
		Field:         cornerField(tetrahedron.nodes),
		Min:           0,
		Max:           1.05,
		Scale:         30,
		RotateAxis:    [3]float32{1, 1, 0},
		RotateDegrees: 30,
	},
	{
		Name:      "cube_front",
		Width:     96,
		Height:    96,
		Nodes:     cube.nodes,
		Center:    [3]float64{0.5, 0.5, 0.5},
		Triangles: cube.tris,
		FreeEdges: cube.edges,
		Field:     cornerField(cube.nodes),
		Min:       0,
		Max:       3.15,
		Scale:     25,
	},
	{
		Name:          "cube_rotated",
		Width:         96,
		Height:        96,
		Nodes:         cube.nodes,
		Center:        [3]float64{0.5, 0.5, 0.5},
		Triangles:     cube.tris,
		FreeEdges:     cube.edges,
		Field:         cornerField(cube.nodes),
		Min:           0,
		Max:           3.15,
		Scale:         25,
		RotateAxis:    [3]float32{1, 2, 0.5},
		RotateDegrees: 40,
	},
	{
		Name:           "cube_averaged",
		Width:          96,
		Height:         96,
		Nodes:          cube.nodes,
		Center:         [3]float64{0.5, 0.5, 0.5},
		Triangles:      cube.tris,
		Wireframe:      triangleEdges(cube.tris),
		Field:          cornerField(cube.nodes),
		Min:            0,
		Max:            3.15,
		ElementAverage: true,
		Scale:          25,
		RotateAxis:     [3]float32{0, 1, 0},
		RotateDegrees:  35,
	},
}
