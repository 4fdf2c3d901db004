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

// Package camera builds the transformation matrix which places a dataset
// in front of a perspective camera.
//
// The matrix is composed as Projection · View · Model, where the model
// matrix centres and scales the dataset and then applies the dataset's
// own rotation and translation.
package camera

import "cogentcore.org/core/math32"

// Camera describes the frustum, the camera position and the placement of
// one dataset.
type Camera struct {
	FOV    float32 // vertical field of view, in degrees
	Aspect float32 // width / height
	Near   float32
	Far    float32

	Eye    math32.Vector3
	Target math32.Vector3
	Up     math32.Vector3

	// Center is moved to the origin before the dataset is scaled by Scale.
	Center math32.Vector3
	Scale  float32

	Rotation    math32.Quat
	Translation math32.Vector3
}

// New returns a camera for a width×height canvas, 100 units in front of
// the origin on the z axis, with y pointing down the screen.
func New(width, height int) *Camera {
	aspect := float32(1)
	if width > 0 && height > 0 {
		aspect = float32(width) / float32(height)
	}
	return &Camera{
		FOV:      DefaultFOV,
		Aspect:   aspect,
		Near:     DefaultNear,
		Far:      DefaultFar,
		Eye:      math32.Vec3(0, 0, 100),
		Target:   math32.Vec3(0, 0, 0),
		Up:       math32.Vec3(0, -1, 0),
		Scale:    DefaultScale,
		Rotation: math32.Quat{W: 1},
	}
}

// Default frustum and dataset scale.
const (
	DefaultFOV   = 30
	DefaultNear  = 1
	DefaultFar   = 2000
	DefaultScale = 100
)

// Projection returns the perspective projection matrix.
func (c *Camera) Projection() math32.Matrix4 {
	var p math32.Matrix4
	p.SetPerspective(c.FOV, c.Aspect, c.Near, c.Far)
	return p
}

// View returns the matrix which maps world coordinates to camera
// coordinates: the inverse of the camera placement.
func (c *Camera) View() math32.Matrix4 {
	var look math32.Quat
	look.SetFromRotationMatrix(math32.NewLookAt(c.Eye, c.Target, c.Up))
	var placement math32.Matrix4
	placement.SetTransform(c.Eye, look, math32.Vec3(1, 1, 1))

	view, err := placement.Inverse()
	if err != nil {
		// Eye and Target coincide, or Up is parallel to the view
		// direction.
		var id math32.Matrix4
		id.SetIdentity()
		return id
	}
	return *view
}

// Model returns the matrix which centres, scales, rotates and finally
// translates the dataset.
func (c *Camera) Model() math32.Matrix4 {
	s := c.Scale
	var centre math32.Matrix4
	centre.SetTransform(math32.Vec3(-s*c.Center.X, -s*c.Center.Y, -s*c.Center.Z), math32.Quat{W: 1}, math32.Vec3(s, s, s))

	var placement math32.Matrix4
	placement.SetTransform(c.Translation, c.Rotation, math32.Vec3(1, 1, 1))

	var m math32.Matrix4
	m.MulMatrices(&placement, &centre)
	return m
}

// Transform returns Projection · View · Model.
func (c *Camera) Transform() math32.Matrix4 {
	p := c.Projection()
	v := c.View()
	m := c.Model()

	var vm, pvm math32.Matrix4
	vm.MulMatrices(&v, &m)
	pvm.MulMatrices(&p, &vm)
	return pvm
}

// Rotate turns the dataset by angle radians around axis, after any
// earlier rotation.  The rotation is about the dataset's current
// position.
func (c *Camera) Rotate(axis math32.Vector3, angle float32) {
	dq := math32.NewQuatAxisAngle(axis.Normal(), angle)
	c.Rotation = dq.Mul(c.Rotation)
}

// Translate moves the dataset by d, in world coordinates.
func (c *Camera) Translate(d math32.Vector3) {
	c.Translation = c.Translation.Add(d)
}

// WorldToScreen returns the pixel position of the model point p on a
// width×height canvas, with y pointing down.  ok is false for points
// behind the camera.
func (c *Camera) WorldToScreen(p math32.Vector3, width, height int) (x, y float32, ok bool) {
	m := c.Transform()
	clip := math32.Vector4FromVector3(p, 1).MulMatrix4(&m)
	if clip.W <= 0 {
		return 0, 0, false
	}
	ndc := clip.PerspDiv()
	x = (ndc.X + 1) / 2 * float32(width)
	y = (1 - ndc.Y) / 2 * float32(height)
	return x, y, true
}
