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


package main

import (
	"bytes"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"seehuhn.de/go/meshfield"
	"seehuhn.de/go/meshfield/meshio"
)

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestClassify(t *testing.T) {
	out, err := execute(t, "0.5\n0 NaN\n1.5", "classify")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "0.000000 0.501961 0.000000", lines[0])
	assert.Equal(t, "0.501961 0.000000 1.000000", lines[1])
	assert.Equal(t, "1.000000 1.000000 1.000000", lines[2])
	assert.Equal(t, "1.000000 1.000000 1.000000", lines[3])
}

func TestClassifyRescale(t *testing.T) {
	out, err := execute(t, "400 -1", "classify", "--min", "0", "--max", "800")
	require.NoError(t, err)
	assert.Equal(t, "0.000000 0.501961 0.000000\n1.000000 1.000000 1.000000\n", out)
}

func TestClassifyBadInput(t *testing.T) {
	_, err := execute(t, "0.5 zebra", "classify")
	assert.Error(t, err)
}

func TestRender(t *testing.T) {
	dir := t.TempDir()
	meshPath := filepath.Join(dir, "square.json.gz")
	m := &meshfield.Mesh{
		Nodes:     []float64{0, 0, 0, 1, 0, 0, 1, 1, 0, 0, 1, 0},
		Center:    [3]float64{0.5, 0.5, 0},
		Triangles: []int{0, 1, 2, 0, 2, 3},
		FreeEdges: []int{0, 1, 1, 2, 2, 3, 3, 0},
		Field:     []float64{0, 1, 2, 3},
	}
	require.NoError(t, meshio.Create(meshPath, m))

	cfgPath := filepath.Join(dir, "scene.yaml")
	cfg := `
image:
  width: 64
  height: 48
camera:
  dataset_scale: 30
field:
  auto_range: true
`
	require.NoError(t, os.WriteFile(cfgPath, []byte(cfg), 0o644))

	outPath := filepath.Join(dir, "field.png")
	legendPath := filepath.Join(dir, "legend.png")
	_, err := execute(t, "", "render", "-c", cfgPath, "-o", outPath, "--legend", legendPath, meshPath)
	require.NoError(t, err)

	f, err := os.Open(outPath)
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, 64, img.Bounds().Dx())
	assert.Equal(t, 48, img.Bounds().Dy())

	// the square is coloured, the corners are background
	r, g, b, _ := img.At(36, 20).RGBA()
	assert.False(t, r == 0xffff && g == 0xffff && b == 0xffff, "pixel inside the square is white")
	r, g, b, _ = img.At(0, 0).RGBA()
	assert.True(t, r == 0xffff && g == 0xffff && b == 0xffff, "corner pixel is not white")

	_, err = os.Stat(legendPath)
	assert.NoError(t, err)
}

func TestRenderMissingMesh(t *testing.T) {
	dir := t.TempDir()
	_, err := execute(t, "", "render", "-c", filepath.Join(dir, "none.yaml"), "-o", filepath.Join(dir, "x.png"), filepath.Join(dir, "none.json"))
	assert.Error(t, err)
}
