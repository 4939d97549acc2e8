// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package frame

import (
	"github.com/xyzgallery/frames/math32"
	"github.com/xyzgallery/frames/xyz"
)

// Smooth moves the current pose toward the target by the fraction
// 1 - e^(-dt*rate) of the remaining distance, so the motion does not
// depend on the tick rate. Position and scale are interpolated
// linearly and orientation along the shortest arc. A dt that is not
// positive and finite leaves the pose unchanged.
func Smooth(cur *xyz.Pose, tgt Target, dt, rate float32) {
	f := math32.ExpDecay(dt, rate)
	if f == 0 {
		return
	}
	cur.Pos = cur.Pos.Lerp(tgt.Pos, f)
	cur.Scale = cur.Scale.Lerp(tgt.Scale, f)
	cur.Quat = cur.Quat.Slerp(tgt.Quat, f)
}

// Distance returns a combined measure of how far the pose is from the
// target: the sum of the position distance, the rotation angle in
// radians and the scale distance.
func Distance(cur xyz.Pose, tgt Target) float32 {
	return cur.Pos.DistanceTo(tgt.Pos) + cur.Quat.Angle(tgt.Quat) + cur.Scale.DistanceTo(tgt.Scale)
}
