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


// Package testcases contains small mesh scenes which exercise the
// renderer.  The scenes do not depend on the renderer itself, so that
// they can be exported for other implementations.
package testcases

import "seehuhn.de/go/pdf/graphics"

// TestCase defines a single scene.
type TestCase struct {
	Name   string // lowercase a-z and _ only
	Width  int    // canvas width in pixels
	Height int    // canvas height in pixels

	Nodes     []float64  // x, y, z per node
	Center    [3]float64 // moved to the origin before scaling
	Triangles []int      // three node indices per triangle
	Wireframe []int      // two node indices per segment
	FreeEdges []int      // two node indices per segment
	Field     []float64  // one value per node, or nil

	// Elemental means that Field holds one value per triangle vertex
	// instead of one per node.
	Elemental bool

	// Min and Max give the field range mapped onto the palette.
	Min, Max float64

	// ElementAverage colours each triangle by the mean of its nodes.
	ElementAverage bool

	// Scale is the dataset scale; zero means the camera default.
	Scale float32

	// RotateAxis and RotateDegrees turn the dataset about its centre.
	RotateAxis    [3]float32
	RotateDegrees float32

	LineWidth float64               // zero means 1
	Cap       graphics.LineCapStyle // cap of edge and wireframe lines
}

// NumNodes returns the number of mesh nodes.
func (tc TestCase) NumNodes() int {
	return len(tc.Nodes) / 3
}

// boundary returns the closed loop through the given nodes as a list of
// segments.
func boundary(nodes ...int) []int {
	out := make([]int, 0, 2*len(nodes))
	for i, n := range nodes {
		out = append(out, n, nodes[(i+1)%len(nodes)])
	}
	return out
}

// triangleEdges returns every edge of every triangle, once per triangle.
func triangleEdges(tris []int) []int {
	out := make([]int, 0, 2*len(tris))
	for i := 0; i+3 <= len(tris); i += 3 {
		out = append(out, boundary(tris[i], tris[i+1], tris[i+2])...)
	}
	return out
}
