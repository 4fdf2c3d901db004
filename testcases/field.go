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

// unitSquare is the square [0,1]² in the plane z=0, split into two
// counter-clockwise triangles.
var unitSquare = struct {
	nodes []float64
	tris  []int
}{
	nodes: []float64{0, 0, 0, 1, 0, 0, 1, 1, 0, 0, 1, 0},
	tris:  []int{0, 1, 2, 0, 2, 3},
}

var fieldCases = []TestCase{
	{
		Name:      "square_gradient",
		Width:     64,
		Height:    64,
		Nodes:     unitSquare.nodes,
		Center:    [3]float64{0.5, 0.5, 0},
		Triangles: unitSquare.tris,
		FreeEdges: boundary(0, 1, 2, 3),
		Field:     []float64{0, 10, 20, 30},
		Min:       0,
		Max:       40,
		Scale:     30,
	},
	{
		Name:           "square_averaged",
		Width:          64,
		Height:         64,
		Nodes:          unitSquare.nodes,
		Center:         [3]float64{0.5, 0.5, 0},
		Triangles:      unitSquare.tris,
		FreeEdges:      boundary(0, 1, 2, 3),
		Field:          []float64{0, 10, 20, 30},
		Min:            0,
		Max:            40,
		ElementAverage: true,
		Scale:          30,
	},
	{
		// parts of the square are outside the range and stay white
		Name:      "out_of_range",
		Width:     64,
		Height:    64,
		Nodes:     unitSquare.nodes,
		Center:    [3]float64{0.5, 0.5, 0},
		Triangles: unitSquare.tris,
		FreeEdges: boundary(0, 1, 2, 3),
		Field:     []float64{-10, 10, 50, 30},
		Min:       0,
		Max:       40,
		Scale:     30,
	},
	{
		// the two triangles disagree along the shared diagonal
		Name:      "square_elemental",
		Width:     64,
		Height:    64,
		Nodes:     unitSquare.nodes,
		Center:    [3]float64{0.5, 0.5, 0},
		Triangles: unitSquare.tris,
		FreeEdges: boundary(0, 1, 2, 3),
		Field:     []float64{0, 10, 20, 40, 35, 30},
		Elemental: true,
		Min:       0,
		Max:       40,
		Scale:     30,
	},
	{
		Name:      "no_field",
		Width:     64,
		Height:    64,
		Nodes:     unitSquare.nodes,
		Center:    [3]float64{0.5, 0.5, 0},
		Triangles: unitSquare.tris,
		Wireframe: triangleEdges(unitSquare.tris),
		Min:       0,
		Max:       1,
		Scale:     30,
	},
}
