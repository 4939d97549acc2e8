// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package frame

import (
	"github.com/xyzgallery/frames/math32"
	"github.com/xyzgallery/frames/xyz"
)

// Settings are the per-asset tuning values of a frame. The defaults
// suit a frame mesh authored facing +Z.
type Settings struct {

	// FlipAngle is the rotation in degrees about the camera up axis
	// applied to the camera orientation when inspecting, so that the
	// front of the mesh faces the camera.
	FlipAngle float32 `default:"180"`

	// Tilt is the local rotation of the frame content in degrees
	// (Euler X, Y, Z), applied as a child transform under the frame pose.
	Tilt math32.Vector3

	// InspectDistance is how far in front of the camera an active frame sits.
	InspectDistance float32 `default:"1.5"`

	// InspectOffset is added to the inspection position.
	InspectOffset math32.Vector3

	// HoverScale multiplies the rest scale while hovered.
	HoverScale float32 `default:"1.05"`

	// ActiveRate is the smoothing rate while active.
	ActiveRate float32 `default:"4"`

	// RestRate is the smoothing rate while not active.
	RestRate float32 `default:"8"`
}

// Defaults sets the default settings.
func (st *Settings) Defaults() {
	st.FlipAngle = 180
	st.InspectDistance = 1.5
	st.HoverScale = 1.05
	st.ActiveRate = 4
	st.RestRate = 8
}

// Rate returns the smoothing rate for the given active state.
func (st *Settings) Rate(active bool) float32 {
	if active {
		return st.ActiveRate
	}
	return st.RestRate
}

// TargetInput is everything the target pose depends on for one tick.
type TargetInput struct {
	Camera   xyz.Camera
	Rest     xyz.Pose
	Active   bool
	Hovered  bool
	Settings *Settings
}

// Target is the pose the frame is moving toward.
type Target struct {
	Pos   math32.Vector3
	Quat  math32.Quat
	Scale math32.Vector3
}

// Pose returns the target as a [xyz.Pose].
func (tg Target) Pose() xyz.Pose {
	return xyz.Pose{Pos: tg.Pos, Quat: tg.Quat, Scale: tg.Scale}
}

// ResolveTarget returns the target pose: in front of the camera and
// facing it when active, the rest pose slightly enlarged when hovered,
// and the rest pose otherwise.
func ResolveTarget(in TargetInput) Target {
	st := in.Settings
	switch {
	case in.Active:
		cam := in.Camera.Pose
		pos := cam.Pos.Add(in.Camera.Forward().MulScalar(st.InspectDistance)).Add(st.InspectOffset)
		flip := math32.NewQuatAxisAngle(math32.Vector3Y, math32.DegToRad(st.FlipAngle))
		q := cam.Quat.Mul(flip)
		q.Normalize()
		return Target{Pos: pos, Quat: q, Scale: math32.Vector3Scalar(1)}
	case in.Hovered:
		return Target{Pos: in.Rest.Pos, Quat: in.Rest.Quat, Scale: in.Rest.Scale.MulScalar(st.HoverScale)}
	default:
		return Target{Pos: in.Rest.Pos, Quat: in.Rest.Quat, Scale: in.Rest.Scale}
	}
}
