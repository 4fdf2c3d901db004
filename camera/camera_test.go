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

package camera

import (
	"math"
	"testing"

	"cogentcore.org/core/math32"
	"github.com/stretchr/testify/assert"
)

const tol = 1e-3

func apply(m *math32.Matrix4, p math32.Vector3) math32.Vector4 {
	return math32.Vector4FromVector3(p, 1).MulMatrix4(m)
}

func TestModelCentresDataset(t *testing.T) {
	c := New(200, 100)
	c.Center = math32.Vec3(1, 2, 3)
	m := c.Model()

	got := apply(&m, c.Center)
	assert.InDelta(t, 0, got.X, tol)
	assert.InDelta(t, 0, got.Y, tol)
	assert.InDelta(t, 0, got.Z, tol)
	assert.InDelta(t, 1, got.W, tol)

	// one unit in model space is Scale units in world space
	got = apply(&m, math32.Vec3(2, 2, 3))
	assert.InDelta(t, DefaultScale, got.X, tol)
}

func TestModelTranslation(t *testing.T) {
	c := New(100, 100)
	c.Center = math32.Vec3(5, 5, 5)
	c.Translate(math32.Vec3(10, 0, 0))
	c.Translate(math32.Vec3(0, -3, 0))
	m := c.Model()

	got := apply(&m, c.Center)
	assert.InDelta(t, 10, got.X, tol)
	assert.InDelta(t, -3, got.Y, tol)
	assert.InDelta(t, 0, got.Z, tol)
}

func TestCentreProjectsToScreenCentre(t *testing.T) {
	c := New(640, 480)
	c.Center = math32.Vec3(0.5, 0.5, 0.5)

	x, y, ok := c.WorldToScreen(c.Center, 640, 480)
	assert.True(t, ok)
	assert.InDelta(t, 320, x, tol)
	assert.InDelta(t, 240, y, tol)
}

func TestTransformIsProduct(t *testing.T) {
	c := New(300, 200)
	c.Center = math32.Vec3(0.1, 0.2, 0.3)
	c.Rotate(math32.Vec3(0, 1, 0), 0.7)

	pvm := c.Transform()
	p, v, m := c.Projection(), c.View(), c.Model()

	pt := math32.Vec3(0.3, -0.2, 0.05)
	world := apply(&m, pt)
	eye := world.MulMatrix4(&v)
	clip := eye.MulMatrix4(&p)
	got := apply(&pvm, pt)
	assert.InDelta(t, clip.X, got.X, tol)
	assert.InDelta(t, clip.Y, got.Y, tol)
	assert.InDelta(t, clip.Z, got.Z, tol)
	assert.InDelta(t, clip.W, got.W, tol)
}

func TestFullTurnIsIdentity(t *testing.T) {
	c := New(100, 100)
	before := c.Model()
	for range 4 {
		c.Rotate(math32.Vec3(0, 0, 1), math.Pi/2)
	}
	after := c.Model()
	for i := range before {
		assert.InDelta(t, before[i], after[i], tol, "element %d", i)
	}
}

func TestRotationKeepsCentre(t *testing.T) {
	c := New(100, 100)
	c.Center = math32.Vec3(1, 1, 1)
	c.Rotate(math32.Vec3(1, 1, 0), 1.1)
	m := c.Model()

	got := apply(&m, c.Center)
	assert.InDelta(t, 0, got.X, tol)
	assert.InDelta(t, 0, got.Y, tol)
	assert.InDelta(t, 0, got.Z, tol)
}

func TestBehindCamera(t *testing.T) {
	c := New(100, 100)
	c.Scale = 1
	_, _, ok := c.WorldToScreen(math32.Vec3(0, 0, 500), 100, 100)
	assert.False(t, ok)
}

func TestPerspectiveShrinksDistantPoints(t *testing.T) {
	c := New(100, 100)
	c.Scale = 1

	xNear, _, ok := c.WorldToScreen(math32.Vec3(10, 0, 0), 100, 100)
	assert.True(t, ok)
	xFar, _, ok := c.WorldToScreen(math32.Vec3(10, 0, -500), 100, 100)
	assert.True(t, ok)

	assert.Less(t, math.Abs(float64(xFar-50)), math.Abs(float64(xNear-50)))
}
