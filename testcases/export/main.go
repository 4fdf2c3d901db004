// Command export writes the test scenes as compressed mesh files, together
// with a JSON index of the camera and pass settings.
// Run from the module root directory.
package main

import (
	"encoding/json"
	"maps"
	"os"
	"path/filepath"
	"slices"

	"seehuhn.de/go/meshfield"
	"seehuhn.de/go/meshfield/meshio"
	"seehuhn.de/go/meshfield/testcases"
)

const outDir = "testdata/meshes"

func main() {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		panic(err)
	}

	var out struct {
		TestCases []jsonTestCase `json:"testcases"`
	}

	for _, category := range slices.Sorted(maps.Keys(testcases.All)) {
		for _, tc := range testcases.All[category] {
			name := category + "_" + tc.Name
			file := filepath.Join(outDir, name+".json.gz")
			if err := meshio.Create(file, toMesh(tc)); err != nil {
				panic(err)
			}
			out.TestCases = append(out.TestCases, toJSON(name, file, tc))
		}
	}

	f, err := os.Create("testdata/testcases.json")
	if err != nil {
		panic(err)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		panic(err)
	}
}

type jsonTestCase struct {
	Name           string     `json:"name"`
	Mesh           string     `json:"mesh"`
	Width          int        `json:"width"`
	Height         int        `json:"height"`
	Min            float64    `json:"min"`
	Max            float64    `json:"max"`
	ElementAverage bool       `json:"element_average,omitempty"`
	Scale          float32    `json:"dataset_scale,omitempty"`
	RotateAxis     [3]float32 `json:"rotate_axis"`
	RotateDegrees  float32    `json:"rotate_degrees,omitempty"`
	LineWidth      float64    `json:"line_width,omitempty"`
	LineCap        string     `json:"line_cap"`
}

func toMesh(tc testcases.TestCase) *meshfield.Mesh {
	m := &meshfield.Mesh{
		Nodes:     tc.Nodes,
		Center:    tc.Center,
		Triangles: tc.Triangles,
		Wireframe: tc.Wireframe,
		FreeEdges: tc.FreeEdges,
		Field:     tc.Field,
	}
	if tc.Elemental {
		m.FieldType = meshfield.Elemental
	}
	return m
}

func toJSON(name, file string, tc testcases.TestCase) jsonTestCase {
	return jsonTestCase{
		Name:           name,
		Mesh:           filepath.ToSlash(file),
		Width:          tc.Width,
		Height:         tc.Height,
		Min:            tc.Min,
		Max:            tc.Max,
		ElementAverage: tc.ElementAverage,
		Scale:          tc.Scale,
		RotateAxis:     tc.RotateAxis,
		RotateDegrees:  tc.RotateDegrees,
		LineWidth:      tc.LineWidth,
		LineCap:        tc.Cap.String(),
	}
}
