// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xyz

import (
	"fmt"

	"github.com/xyzgallery/frames/math32"
)

// Pose contains the full specification of position, orientation
// and scale, always relative to the parent element.
type Pose struct {

	// Pos is the position of the center of the element (relative to parent).
	Pos math32.Vector3

	// Scale is the scale (relative to parent).
	Scale math32.Vector3

	// Quat is the rotation specified as a Quat (relative to parent).
	Quat math32.Quat
}

// NewPose returns a pose at the given position with identity
// rotation and unit scale.
func NewPose(pos math32.Vector3) Pose {
	ps := Pose{Pos: pos}
	ps.Defaults()
	return ps
}

// Defaults sets defaults only if current values are nil
func (ps *Pose) Defaults() {
	if ps.Scale == (math32.Vector3{}) {
		ps.Scale.Set(1, 1, 1)
	}
	if ps.Quat.IsNil() {
		ps.Quat.SetIdentity()
	}
}

func (ps Pose) String() string {
	return fmt.Sprintf("Pos: %v Quat: %v Scale: %v", ps.Pos, ps.Quat, ps.Scale)
}

// IsFinite returns whether all pose values are finite numbers.
func (ps Pose) IsFinite() bool {
	return ps.Pos.IsFinite() && ps.Quat.IsFinite() && ps.Scale.IsFinite()
}

// SetUniformScale sets all three scale components to s.
func (ps *Pose) SetUniformScale(s float32) {
	ps.Scale.SetScalar(s)
}

// SetEulerRotation sets the rotation in Euler angles (degrees).
func (ps *Pose) SetEulerRotation(x, y, z float32) {
	ps.Quat.SetFromEuler(math32.Vec3(x, y, z).MulScalar(math32.DegToRadFactor))
}

// SetAxisRotation sets rotation from local axis and angle in degrees.
func (ps *Pose) SetAxisRotation(x, y, z, angle float32) {
	ps.Quat.SetFromAxisAngle(math32.Vec3(x, y, z).Normal(), math32.DegToRad(angle))
}

// RotateOnAxis rotates around the specified local axis the specified angle in degrees.
func (ps *Pose) RotateOnAxis(x, y, z, angle float32) {
	ps.Quat = ps.Quat.Mul(math32.NewQuatAxisAngle(math32.Vec3(x, y, z).Normal(), math32.DegToRad(angle)))
}

// MoveOnAxis moves (translates) the specified distance on the specified local axis,
// relative to the current rotation orientation.
func (ps *Pose) MoveOnAxis(x, y, z, dist float32) {
	ps.Pos.SetAdd(math32.Vec3(x, y, z).Normal().MulQuat(ps.Quat).MulScalar(dist))
}

// LookAt points the element at given target location using given up direction,
// with the local -Z axis facing the target.
func (ps *Pose) LookAt(target, upDir math32.Vector3) {
	z := ps.Pos.Sub(target).Normal()
	if z == (math32.Vector3{}) {
		z = math32.Vector3Z
	}
	x := upDir.Cross(z).Normal()
	if x == (math32.Vector3{}) {
		// up is parallel to the view direction: pick any perpendicular
		x = math32.Vector3X.Cross(z).Normal()
		if x == (math32.Vector3{}) {
			x = math32.Vector3Y.Cross(z).Normal()
		}
	}
	y := z.Cross(x)
	ps.Quat.SetFromBasis(x, y, z)
	ps.Quat.Normalize()
}
