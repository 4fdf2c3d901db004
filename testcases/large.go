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

import "math"

// largeCases cover more than 65536 pixels per primitive, to exercise the
// active edge list in the rasteriser.
var largeCases = []TestCase{
	grid("grid_wave", 512, 40, false),
	grid("grid_wave_averaged", 512, 40, true),
}

// grid builds an n×n grid of quads on [0,1]² with a wave-shaped field.
func grid(name string, size, n int, average bool) TestCase {
	var nodes, field []float64
	for j := range n + 1 {
		for i := range n + 1 {
			x := float64(i) / float64(n)
			y := float64(j) / float64(n)
			nodes = append(nodes, x, y, 0)
			field = append(field, math.Sin(2*math.Pi*x)*math.Cos(3*math.Pi*y))
		}
	}

	var tris, free []int
	idx := func(i, j int) int { return j*(n+1) + i }
	for j := range n {
		for i := range n {
			a, b, c, d := idx(i, j), idx(i+1, j), idx(i+1, j+1), idx(i, j+1)
			tris = append(tris, a, b, c, a, c, d)
		}
	}
	for i := range n {
		free = append(free,
			idx(i, 0), idx(i+1, 0),
			idx(n, i), idx(n, i+1),
			idx(i+1, n), idx(i, n),
			idx(0, i+1), idx(0, i))
	}

	return TestCase{
		Name:           name,
		Width:          size,
		Height:         size,
		Nodes:          nodes,
		Center:         [3]float64{0.5, 0.5, 0},
		Triangles:      tris,
		FreeEdges:      free,
		Field:          field,
		Min:            -1.05,
		Max:            1.05,
		ElementAverage: average,
		Scale:          45,
		LineWidth:      1.5,
	}
}
