// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xyz

import "github.com/xyzgallery/frames/math32"

// Camera defines the properties of the camera that matter to
// camera-relative placement: its world position and orientation,
// relative to pointing at negative Z axis with up (positive Y) direction.
type Camera struct {

	// Pose is the overall orientation and position of the camera.
	Pose Pose

	// Target is where the camera is pointing at, reset by LookAt.
	Target math32.Vector3

	// UpDir is the up direction for the camera, reset by LookAt.
	UpDir math32.Vector3
}

// Defaults sets the default camera pose, looking at the origin
// from 0,0,10 with up Y axis.
func (cm *Camera) Defaults() {
	cm.Pose = NewPose(math32.Vec3(0, 0, 10))
	cm.LookAt(math32.Vector3{}, math32.Vector3Y)
}

// LookAt points the camera at given target location, using given up direction,
// and sets the Target, UpDir fields for future camera movements.
func (cm *Camera) LookAt(target, upDir math32.Vector3) {
	cm.Pose.Defaults()
	cm.Target = target
	if upDir == (math32.Vector3{}) {
		upDir = math32.Vector3Y
	}
	cm.UpDir = upDir
	cm.Pose.LookAt(target, upDir)
}

// Forward returns the unit direction the camera is facing in world space.
func (cm *Camera) Forward() math32.Vector3 {
	return math32.Vec3(0, 0, -1).MulQuat(cm.Pose.Quat).Normal()
}
