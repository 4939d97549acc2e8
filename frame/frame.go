// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package frame implements an interactive picture frame in a 3D scene:
// a frame mesh with an image or video surface and a caption, which
// rests at a fixed pose and, when active, moves in front of the camera
// for inspection.
//
// Each tick, [Frame.Update] resolves the target pose from the camera,
// the rest pose and the interaction state, and smoothly moves the
// current pose toward it.
package frame

import (
	"fmt"
	"log/slog"

	"github.com/xyzgallery/frames/caption"
	"github.com/xyzgallery/frames/events"
	"github.com/xyzgallery/frames/math32"
	"github.com/xyzgallery/frames/surface"
	"github.com/xyzgallery/frames/xyz"
)

// CameraSource provides the current camera, sampled every tick.
type CameraSource interface {
	Camera() xyz.Camera
}

// Params are the caller supplied parameters of a frame.
type Params struct {

	// ID identifies the frame in toggle requests.
	ID string

	// URL is the source of the media content.
	URL string

	// Kind is the kind of media content.
	Kind surface.Kinds

	// Caption is the text shown under the image; empty for none.
	Caption string

	// CaptionStyle is used to render the caption; defaults if nil.
	CaptionStyle *caption.Style

	// Layout places the image and caption on the mesh; defaults if nil.
	Layout *Layout

	// Settings are the per-asset tuning values; defaults if nil.
	Settings *Settings

	// Rest is the wall-mounted pose of the frame.
	Rest xyz.Pose

	// OnToggle is called with the ID when the frame is clicked.
	OnToggle func(id string)

	// Active returns the active state held by the caller. It is read
	// by pointer handlers between updates and by [Frame.UpdateFrom].
	Active func() bool
}

// Frame is one picture frame instance.
type Frame struct {

	// ID identifies the frame.
	ID string

	// URL is the source of the media content.
	URL string

	// Kind is the kind of media content.
	Kind surface.Kinds

	// Layout places the image and caption on the mesh.
	Layout Layout

	// Settings are the per-asset tuning values.
	Settings Settings

	// Current is the animated pose, updated every tick.
	Current xyz.Pose

	// Mesh is the instance handle onto the shared frame mesh.
	Mesh *xyz.MeshRef

	// Caption is the rendered caption, nil if there is none.
	Caption *caption.Caption

	// Controller handles pointer events on the frame.
	Controller Controller

	// Listeners receive the pointer events dispatched to the frame.
	Listeners events.Listeners

	rest     xyz.Pose
	srf      *surface.Surface
	geom     GeometryCache
	lastGeom Geometry
	closed   bool
}

// New returns a new frame for the given mesh instance and mounted surface.
func New(params Params, mesh *xyz.MeshRef, srf *surface.Surface) *Frame {
	fr := &Frame{ID: params.ID, URL: params.URL, Kind: params.Kind, Mesh: mesh, srf: srf}
	if params.Layout != nil {
		fr.Layout = *params.Layout
	} else {
		fr.Layout.Defaults()
	}
	if params.Settings != nil {
		fr.Settings = *params.Settings
	} else {
		fr.Settings.Defaults()
	}
	fr.rest = params.Rest
	fr.rest.Defaults()
	fr.Current = fr.rest
	if params.Caption != "" {
		st := params.CaptionStyle
		if st == nil {
			st = &caption.Style{}
			st.Defaults()
		}
		fr.Caption = caption.Render(params.Caption, st)
	}
	fr.Controller = Controller{ID: params.ID, OnToggle: params.OnToggle, Active: params.Active}
	fr.Controller.Listen(&fr.Listeners)
	fr.lastGeom = fr.geom.Geometry(fr.meshData(), fr.Layout)
	return fr
}

func (fr *Frame) String() string {
	return fmt.Sprintf("Frame %q: %v", fr.ID, fr.Current)
}

// Rest returns the rest pose.
func (fr *Frame) Rest() xyz.Pose {
	return fr.rest
}

// Surface returns the mounted surface, nil if there is none.
func (fr *Frame) Surface() *surface.Surface {
	return fr.srf
}

// Geometry returns the geometry derived in the last update.
func (fr *Frame) Geometry() Geometry {
	return fr.lastGeom
}

// Hovered returns whether the pointer is over the frame.
func (fr *Frame) Hovered() bool {
	return fr.Controller.Hovered()
}

// Closed returns whether the frame has been closed.
func (fr *Frame) Closed() bool {
	return fr.closed
}

func (fr *Frame) meshData() *xyz.Mesh {
	if fr.Mesh == nil {
		return nil
	}
	return fr.Mesh.Mesh
}

// Update advances the frame by dt seconds, given the current camera
// and the active state owned by the caller. It returns the target
// the frame is moving toward.
func (fr *Frame) Update(dt float32, cam xyz.Camera, active bool) Target {
	fr.Controller.Sync(active)
	fr.lastGeom = fr.geom.Geometry(fr.meshData(), fr.Layout)
	tgt := ResolveTarget(TargetInput{
		Camera:   cam,
		Rest:     fr.rest,
		Active:   active,
		Hovered:  fr.Controller.Hovered(),
		Settings: &fr.Settings,
	})
	Smooth(&fr.Current, tgt, dt, fr.Settings.Rate(active))
	return tgt
}

// UpdateFrom calls [Frame.Update] with the camera of the given source
// and the active state from [Params.Active].
func (fr *Frame) UpdateFrom(dt float32, src CameraSource) Target {
	return fr.Update(dt, src.Camera(), fr.Controller.IsActive())
}

// ContentPose returns the local pose of the frame content (mesh,
// image and caption) under the frame pose, carrying the asset tilt.
func (fr *Frame) ContentPose() xyz.Pose {
	ps := xyz.NewPose(math32.Vector3{})
	t := fr.Settings.Tilt
	ps.SetEulerRotation(t.X, t.Y, t.Z)
	return ps
}

// ImagePose returns the local pose of the image plane within the
// content, scaled to the image size.
func (fr *Frame) ImagePose() xyz.Pose {
	ps := xyz.NewPose(fr.lastGeom.ImagePos)
	ps.Scale = math32.Vec3(fr.lastGeom.ImageWidth, fr.lastGeom.ImageHeight, 1)
	return ps
}

// CaptionPose returns the local pose of the caption plane within the
// content, scaled to the caption size. The caption is anchored at its
// top center.
func (fr *Frame) CaptionPose() xyz.Pose {
	ps := xyz.NewPose(fr.lastGeom.CaptionPos)
	if fr.Caption == nil {
		ps.Scale = math32.Vector3{}
		return ps
	}
	ps.Pos.Y -= fr.Caption.Size.Y / 2
	ps.Scale = math32.Vec3(fr.Caption.Size.X, fr.Caption.Size.Y, 1)
	return ps
}

// SetSurface replaces the mounted surface, releasing the previous one.
func (fr *Frame) SetSurface(srf *surface.Surface) error {
	if srf == fr.srf {
		return nil
	}
	old := fr.srf
	fr.srf = srf
	if srf != nil {
		fr.URL = srf.URL
		fr.Kind = srf.Kind
	}
	return old.Release()
}

// Close releases the surface and drops the caption. Only the first
// call has any effect.
func (fr *Frame) Close() error {
	if fr.closed {
		return nil
	}
	fr.closed = true
	fr.Caption = nil
	slog.Debug("frame: close", "id", fr.ID)
	return fr.srf.Release()
}
