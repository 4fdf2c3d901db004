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
	"errors"
	"fmt"
	"math"

	"cogentcore.org/core/math32"
	"cogentcore.org/core/math32/minmax"
)

var (
	// ErrChunkSize is returned when a flat array is not a multiple of
	// the number of values per entry.
	ErrChunkSize = errors.New("length is not a multiple of the chunk size")

	// ErrIndexRange is returned for indices outside the node array.
	ErrIndexRange = errors.New("index out of range")

	// ErrFieldLength is returned when the number of field values does not
	// match the number of nodes (nodal fields) or triangle vertices
	// (elemental fields).
	ErrFieldLength = errors.New("field length does not match the mesh")

	// ErrEmptyRange is returned when a field has no finite values.
	ErrEmptyRange = errors.New("no finite field values")
)

// FieldType says where the values of a field are located.
type FieldType int

// These are the supported field types.
const (
	// Nodal fields have one value per node.  Triangles sharing a node
	// share its value.
	Nodal FieldType = iota

	// Elemental fields have one value per triangle vertex, in the order
	// of Mesh.Triangles, so that neighbouring elements can differ.
	Elemental
)

func (t FieldType) String() string {
	switch t {
	case Nodal:
		return "nodal"
	case Elemental:
		return "elemental"
	}
	return fmt.Sprintf("FieldType(%d)", int(t))
}

// ParseFieldType converts the name used by the data backend into a
// FieldType.  The empty name and "__no_type__" are read as nodal.
func ParseFieldType(name string) (FieldType, error) {
	switch name {
	case "", "nodal", "__no_type__":
		return Nodal, nil
	case "elemental":
		return Elemental, nil
	}
	return 0, fmt.Errorf("unknown field type %q", name)
}

// Mesh is the surface of a dataset, as sent by the data backend.  Nodes
// are stored once; triangles and line segments refer to them by index.
type Mesh struct {
	Nodes     []float64  // x, y, z for each node
	Center    [3]float64 // centre of the dataset, in model coordinates
	Triangles []int      // three node indices per surface triangle
	Wireframe []int      // two node indices per wireframe segment
	FreeEdges []int      // two node indices per boundary segment
	Field     []float64  // scalar values, located as given by FieldType; may be empty
	FieldType FieldType
}

// NumNodes returns the number of nodes of the mesh.
func (m *Mesh) NumNodes() int {
	return len(m.Nodes) / 3
}

// Validate checks the array lengths and all indices.
func (m *Mesh) Validate() error {
	if len(m.Nodes)%3 != 0 {
		return fmt.Errorf("nodes: %w", ErrChunkSize)
	}
	n := m.NumNodes()
	if len(m.Triangles)%3 != 0 {
		return fmt.Errorf("triangles: %w", ErrChunkSize)
	}
	if len(m.Wireframe)%2 != 0 {
		return fmt.Errorf("wireframe: %w", ErrChunkSize)
	}
	if len(m.FreeEdges)%2 != 0 {
		return fmt.Errorf("free edges: %w", ErrChunkSize)
	}
	for _, list := range []struct {
		name    string
		indices []int
	}{
		{"triangles", m.Triangles},
		{"wireframe", m.Wireframe},
		{"free edges", m.FreeEdges},
	} {
		for i, idx := range list.indices {
			if idx < 0 || idx >= n {
				return fmt.Errorf("%s[%d] = %d with %d nodes: %w", list.name, i, idx, n, ErrIndexRange)
			}
		}
	}
	if len(m.Field) == 0 {
		return nil
	}
	switch m.FieldType {
	case Nodal:
		if len(m.Field) != n {
			return fmt.Errorf("%d values for %d nodes: %w", len(m.Field), n, ErrFieldLength)
		}
	case Elemental:
		if len(m.Field) != len(m.Triangles) {
			return fmt.Errorf("%d values for %d triangle vertices: %w", len(m.Field), len(m.Triangles), ErrFieldLength)
		}
	default:
		return fmt.Errorf("field type %s", m.FieldType)
	}
	return nil
}

// ExpandIndices replaces every index by the chunk values it refers to:
// the result holds data[chunk*idx : chunk*idx+chunk] for each idx, in
// order.  This turns shared per-node data into per-vertex data.
func ExpandIndices(indices []int, data []float64, chunk int) ([]float64, error) {
	if chunk <= 0 || len(data)%chunk != 0 {
		return nil, ErrChunkSize
	}
	n := len(data) / chunk
	out := make([]float64, 0, len(indices)*chunk)
	for i, idx := range indices {
		if idx < 0 || idx >= n {
			return nil, fmt.Errorf("index %d at position %d: %w", idx, i, ErrIndexRange)
		}
		out = append(out, data[chunk*idx:chunk*idx+chunk]...)
	}
	return out, nil
}

// FieldRange returns the smallest and largest finite value.
func FieldRange(values []float64) (minmax.F64, error) {
	var rng minmax.F64
	rng.SetInfinity()
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		rng.FitValInRange(v)
	}
	if !rng.IsValid() {
		return rng, ErrEmptyRange
	}
	return rng, nil
}

// Rescale maps values linearly so that rng.Min becomes 0 and rng.Max
// becomes 1.  Values are not clipped: anything outside rng ends up
// outside [0, 1] and is drawn in the fallback colour.  An empty range
// (Min == Max) yields NaN or ±Inf, which is drawn in the fallback colour,
// too.
func Rescale(values []float64, rng minmax.F64) []float64 {
	return RescaleInto(make([]float64, len(values)), values, rng)
}

// RescaleInto is like [Rescale], but writes the result to dst, which must
// be at least as long as values, and returns dst[:len(values)].  dst and
// values may be the same slice.
func RescaleInto(dst, values []float64, rng minmax.F64) []float64 {
	dst = dst[:len(values)]
	delta := rng.Range()
	for i, v := range values {
		dst[i] = (v - rng.Min) / delta
	}
	return dst
}

// AverageOverElements replaces the values of each consecutive triple by
// their mean, so that every triangle is drawn in a single colour.
func AverageOverElements(values []float64) ([]float64, error) {
	if len(values)%3 != 0 {
		return nil, ErrChunkSize
	}
	out := make([]float64, len(values))
	for i := 0; i < len(values); i += 3 {
		avg := (values[i] + values[i+1] + values[i+2]) / 3
		out[i], out[i+1], out[i+2] = avg, avg, avg
	}
	return out, nil
}

// corners are the barycentric coordinates of the three triangle vertices.
var corners = [3]math32.Vector3{
	{X: 1, Y: 0, Z: 0},
	{X: 0, Y: 1, Z: 0},
	{X: 0, Y: 0, Z: 1},
}

// FieldVertices builds the vertex buffer of the field pass.  Nodal fields
// are expanded to the triangle vertices, elemental fields are used as
// they are.  The field is rescaled to rng; if average is set, each
// triangle gets the mean of its three vertex values.  Meshes without a field get NaN everywhere, which is
// drawn in the fallback colour.
func (m *Mesh) FieldVertices(rng minmax.F64, average bool) ([]FieldVertex, error) {
	pos, err := ExpandIndices(m.Triangles, m.Nodes, 3)
	if err != nil {
		return nil, fmt.Errorf("positions: %w", err)
	}

	var field []float64
	if len(m.Field) == 0 {
		field = make([]float64, len(m.Triangles))
		for i := range field {
			field[i] = math.NaN()
		}
	} else {
		switch m.FieldType {
		case Elemental:
			if len(m.Field) != len(m.Triangles) {
				return nil, fmt.Errorf("field: %w", ErrFieldLength)
			}
			field = m.Field
		default:
			field, err = ExpandIndices(m.Triangles, m.Field, 1)
			if err != nil {
				return nil, fmt.Errorf("field: %w", err)
			}
		}
		if average {
			field, err = AverageOverElements(field)
			if err != nil {
				return nil, err
			}
		}
		field = Rescale(field, rng)
	}

	verts := make([]FieldVertex, len(m.Triangles))
	for i := range verts {
		verts[i] = FieldVertex{
			Position: math32.Vec3(float32(pos[3*i]), float32(pos[3*i+1]), float32(pos[3*i+2])),
			Field:    float32(field[i]),
			Bary:     corners[i%3],
		}
	}
	return verts, nil
}

// EdgeVertices builds the vertex buffer of a line pass from a list of
// node index pairs, such as m.Wireframe or m.FreeEdges.
func (m *Mesh) EdgeVertices(indices []int) ([]math32.Vector3, error) {
	pos, err := ExpandIndices(indices, m.Nodes, 3)
	if err != nil {
		return nil, err
	}
	out := make([]math32.Vector3, len(indices))
	for i := range out {
		out[i] = math32.Vec3(float32(pos[3*i]), float32(pos[3*i+1]), float32(pos[3*i+2]))
	}
	return out, nil
}

// SceneOptions controls how [Mesh.Scene] turns a mesh into a scene.
type SceneOptions struct {
	// Range is the part of the field mapped onto the palette.
	Range minmax.F64

	// ElementAverage colours each triangle by the mean of its nodes.
	ElementAverage bool

	SkipField     bool
	SkipFreeEdges bool
	SkipWireframe bool
}

// Scene builds the vertex buffers of all enabled passes.
func (m *Mesh) Scene(transform *math32.Matrix4, opt SceneOptions) (*Scene, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}
	s := &Scene{Transform: *transform}

	var err error
	if !opt.SkipField {
		s.Field, err = m.FieldVertices(opt.Range, opt.ElementAverage)
		if err != nil {
			return nil, err
		}
	}
	if !opt.SkipFreeEdges {
		s.FreeEdges, err = m.EdgeVertices(m.FreeEdges)
		if err != nil {
			return nil, fmt.Errorf("free edges: %w", err)
		}
	}
	if !opt.SkipWireframe {
		s.Wireframe, err = m.EdgeVertices(m.Wireframe)
		if err != nil {
			return nil, fmt.Errorf("wireframe: %w", err)
		}
	}
	return s, nil
}
