// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package frame

import (
	"context"
	"image"
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xyzgallery/frames/events"
	"github.com/xyzgallery/frames/math32"
	"github.com/xyzgallery/frames/surface"
	"github.com/xyzgallery/frames/xyz"
)

const tick = float32(1) / 60

// boxMesh returns a mesh spanning -1..1 x -0.75..0.75 x -0.1..0.1.
func boxMesh() *xyz.Mesh {
	return &xyz.Mesh{
		Name:   "box",
		Vertex: []float32{-1, -0.75, -0.1, 1, 0.75, 0.1, 1, -0.75, 0},
		Index:  []uint32{0, 1, 2},
	}
}

func defaultCamera(pos math32.Vector3) xyz.Camera {
	cam := xyz.Camera{Pose: xyz.NewPose(pos)}
	cam.LookAt(pos.Add(math32.Vec3(0, 0, -1)), math32.Vector3Y)
	return cam
}

func newTestFrame(rest xyz.Pose) *Frame {
	return New(Params{ID: "f1", Rest: rest}, &xyz.MeshRef{Mesh: boxMesh()}, nil)
}

type testImages struct{}

func (testImages) LoadImage(ctx context.Context, url string) (*xyz.Texture, error) {
	return xyz.NewTexture(url, image.NewRGBA(image.Rect(0, 0, 4, 4))), nil
}

func TestDeriveGeometry(t *testing.T) {
	ly := Layout{}
	ly.Defaults()
	bbox := boxMesh().BBox()
	gm := DeriveGeometry(bbox, ly)
	assert.InDelta(t, 2*0.82, gm.ImageWidth, 1e-5)
	assert.InDelta(t, 1.5*0.82, gm.ImageHeight, 1e-5)
	assert.InDelta(t, 0.05, gm.ImagePos.Y, 1e-6)
	assert.InDelta(t, -0.27, gm.ImagePos.Z, 1e-6)
	assert.InDelta(t, 0.05-1.5*0.82/2-0.04, gm.CaptionPos.Y, 1e-5)
	assert.InDelta(t, -0.26, gm.CaptionPos.Z, 1e-6)

	// deterministic
	for range 5 {
		assert.Equal(t, gm, DeriveGeometry(bbox, ly))
	}

	ly.ImageScale = math32.Vec2(0.5, 1)
	gm = DeriveGeometry(bbox, ly)
	assert.InDelta(t, 1, gm.ImageWidth, 1e-6)
	assert.InDelta(t, 1.5, gm.ImageHeight, 1e-6)

	ly.SetImageScale(0.5)
	gm = DeriveGeometry(bbox, ly)
	assert.InDelta(t, 1, gm.ImageWidth, 1e-6)
	assert.InDelta(t, 0.75, gm.ImageHeight, 1e-6)
}

func TestDeriveGeometryDegenerate(t *testing.T) {
	ly := Layout{}
	ly.Defaults()
	gm := DeriveGeometry(math32.B3Empty(), ly)
	assert.Equal(t, float32(0), gm.ImageWidth)
	assert.Equal(t, float32(0), gm.ImageHeight)
	assert.Equal(t, ly.ImageOffset, gm.ImagePos)

	flat := DeriveGeometry(math32.B3(0, 0, 0, 0, 0, 0), ly)
	assert.Equal(t, float32(0), flat.ImageWidth)
	assert.True(t, flat.ImagePos.IsFinite())
}

func TestGeometryCache(t *testing.T) {
	ly := Layout{}
	ly.Defaults()
	gc := GeometryCache{}
	ms := boxMesh()
	a := gc.Geometry(ms, ly)
	b := gc.Geometry(ms, ly)
	assert.Equal(t, a, b)
	assert.Equal(t, 1, gc.Computes())

	gc.Geometry(boxMesh(), ly)
	assert.Equal(t, 2, gc.Computes(), "new mesh recomputes")

	gc.Geometry(nil, ly)
	assert.Equal(t, 3, gc.Computes())
	assert.Equal(t, float32(0), gc.Geometry(nil, ly).ImageWidth)
	assert.Equal(t, 3, gc.Computes())
}

func TestSmoothIdempotentAtZero(t *testing.T) {
	cur := xyz.NewPose(math32.Vec3(1, 2, 3))
	cur.SetAxisRotation(0, 1, 0, 40)
	before := cur
	tgt := Target{Quat: math32.QuatIdentity(), Scale: math32.Vector3Scalar(2)}
	Smooth(&cur, tgt, 0, 8)
	assert.Equal(t, before, cur)
	Smooth(&cur, tgt, -1, 8)
	assert.Equal(t, before, cur)
	Smooth(&cur, tgt, float32(math.NaN()), 8)
	assert.Equal(t, before, cur)
}

func TestRestRateOneTick(t *testing.T) {
	fr := newTestFrame(xyz.NewPose(math32.Vector3{}))
	fr.Current.Pos = math32.Vec3(1, 0, 0)
	fr.Update(1, defaultCamera(math32.Vec3(0, 0, 10)), false)
	// 1 - e^-8 of the way to the rest position
	assert.InDelta(t, math.Exp(-8), fr.Current.Pos.X, 1e-6)
	assert.InDelta(t, 1-math.Exp(-8), 1-fr.Current.Pos.X, 1e-6)
}

func TestActiveRateOneTick(t *testing.T) {
	cam := defaultCamera(math32.Vec3(0, 0, 5))
	fr := newTestFrame(xyz.NewPose(math32.Vec3(0, 0, 4.5)))
	tgt := fr.Update(1, cam, true)
	// 1 - e^-4, about 98.2%, of the way from 4.5 to 3.5
	moved := 4.5 - fr.Current.Pos.Z
	assert.InDelta(t, 1-math.Exp(-4), moved, 1e-5)
	assert.InDelta(t, 0.982, moved, 1e-3)
	assert.InDelta(t, 3.5, tgt.Pos.Z, 1e-5)
}

func TestInspectTarget(t *testing.T) {
	st := Settings{}
	st.Defaults()
	cam := defaultCamera(math32.Vec3(0, 0, 5))
	rest := xyz.NewPose(math32.Vec3(3, 1, -2))
	tgt := ResolveTarget(TargetInput{Camera: cam, Rest: rest, Active: true, Hovered: true, Settings: &st})
	assert.InDelta(t, 0, tgt.Pos.X, 1e-5)
	assert.InDelta(t, 0, tgt.Pos.Y, 1e-5)
	assert.InDelta(t, 3.5, tgt.Pos.Z, 1e-5)
	assert.Equal(t, math32.Vector3Scalar(1), tgt.Scale)

	want := cam.Pose.Quat.Mul(math32.NewQuatAxisAngle(math32.Vector3Y, math32.Pi))
	assert.InDelta(t, 0, tgt.Quat.Angle(want), 1e-3)
	// the front of the frame (+Z) now faces the camera
	front := math32.Vec3(0, 0, 1).MulQuat(tgt.Quat)
	assert.InDelta(t, -1, front.Z, 1e-5)

	st.InspectOffset = math32.Vec3(0, -0.2, 0)
	st.InspectDistance = 2
	tgt = ResolveTarget(TargetInput{Camera: cam, Rest: rest, Active: true, Settings: &st})
	assert.InDelta(t, -0.2, tgt.Pos.Y, 1e-5)
	assert.InDelta(t, 3, tgt.Pos.Z, 1e-5)
}

func TestInspectTargetTurnedCamera(t *testing.T) {
	st := Settings{}
	st.Defaults()
	cam := xyz.Camera{Pose: xyz.NewPose(math32.Vector3{})}
	cam.LookAt(math32.Vec3(10, 0, 0), math32.Vector3Y)
	tgt := ResolveTarget(TargetInput{Camera: cam, Active: true, Settings: &st})
	assert.InDelta(t, 1.5, tgt.Pos.X, 1e-5)
	assert.InDelta(t, 0, tgt.Pos.Z, 1e-5)
	front := math32.Vec3(0, 0, 1).MulQuat(tgt.Quat)
	assert.InDelta(t, 1, front.X, 1e-5)
}

func TestHoverTarget(t *testing.T) {
	st := Settings{}
	st.Defaults()
	rest := xyz.NewPose(math32.Vec3(1, 2, 3))
	rest.SetUniformScale(2)
	rest.SetAxisRotation(0, 1, 0, 90)
	cam := defaultCamera(math32.Vec3(0, 0, 5))

	tgt := ResolveTarget(TargetInput{Camera: cam, Rest: rest, Hovered: true, Settings: &st})
	assert.InDelta(t, 2.1, tgt.Scale.X, 1e-5)
	assert.InDelta(t, 2.1, tgt.Scale.Y, 1e-5)
	assert.InDelta(t, 2.1, tgt.Scale.Z, 1e-5)
	assert.Equal(t, rest.Pos, tgt.Pos)
	assert.Equal(t, rest.Quat, tgt.Quat)

	idle := ResolveTarget(TargetInput{Camera: cam, Rest: rest, Settings: &st})
	assert.Equal(t, rest, idle.Pose())
}

func TestMonotonicConvergence(t *testing.T) {
	rest := xyz.NewPose(math32.Vec3(2, 0, -1))
	rest.SetUniformScale(1.5)
	fr := newTestFrame(rest)
	fr.Current = xyz.NewPose(math32.Vec3(-1, 1, 2))
	cam := defaultCamera(math32.Vec3(0, 0, 10))

	tgt := ResolveTarget(TargetInput{Camera: cam, Rest: fr.Rest(), Settings: &fr.Settings})
	prev := fr.Current.Pos.DistanceTo(tgt.Pos) + fr.Current.Scale.DistanceTo(tgt.Scale)
	for range 60 {
		fr.Update(tick, cam, false)
		d := fr.Current.Pos.DistanceTo(tgt.Pos) + fr.Current.Scale.DistanceTo(tgt.Scale)
		require.Less(t, d, prev)
		prev = d
	}
	for range 600 {
		fr.Update(tick, cam, false)
	}
	assert.Less(t, Distance(fr.Current, tgt), float32(1e-4))
}

func TestOrientationConverges(t *testing.T) {
	rest := xyz.NewPose(math32.Vector3{})
	rest.SetAxisRotation(0, 1, 0, 170)
	fr := newTestFrame(rest)
	cam := defaultCamera(math32.Vec3(0, 0, 10))
	tgt := ResolveTarget(TargetInput{Camera: cam, Rest: fr.Rest(), Settings: &fr.Settings})
	fr.Current.Quat = math32.QuatIdentity()
	prev := fr.Current.Quat.Angle(tgt.Quat)
	for range 60 {
		fr.Update(tick, cam, false)
		a := fr.Current.Quat.Angle(tgt.Quat)
		require.True(t, fr.Current.IsFinite())
		assert.LessOrEqual(t, a, prev+1e-4)
		prev = a
	}
	assert.Less(t, prev, float32(0.02))
}

func TestRoundTrip(t *testing.T) {
	rest := xyz.NewPose(math32.Vec3(2, 1, -3))
	rest.SetEulerRotation(0, 30, 0)
	fr := newTestFrame(rest)
	cam := defaultCamera(math32.Vec3(0, 1, 4))

	var tgt Target
	for range 300 {
		tgt = fr.Update(tick, cam, true)
	}
	assert.Less(t, fr.Current.Pos.DistanceTo(tgt.Pos), float32(1e-3))
	assert.Less(t, fr.Current.Quat.Angle(tgt.Quat), float32(1e-2))

	for range 300 {
		fr.Update(tick, cam, false)
	}
	assert.Less(t, fr.Current.Pos.DistanceTo(rest.Pos), float32(1e-3))
	assert.Less(t, fr.Current.Quat.Angle(rest.Quat), float32(1e-2))
	assert.Less(t, fr.Current.Scale.DistanceTo(rest.Scale), float32(1e-3))
}

func TestRapidToggle(t *testing.T) {
	fr := newTestFrame(xyz.NewPose(math32.Vector3{}))
	cam := defaultCamera(math32.Vec3(0, 0, 5))
	for i := range 200 {
		fr.Update(tick, cam, i%3 != 0)
		require.True(t, fr.Current.IsFinite(), "tick %d: %v", i, fr.Current)
	}
}

type fixedCamera xyz.Camera

func (fc fixedCamera) Camera() xyz.Camera {
	return xyz.Camera(fc)
}

func TestHoverNeverWhileActive(t *testing.T) {
	rnd := rand.New(rand.NewSource(7))
	active := false
	toggles := 0
	fr := New(Params{ID: "f1", OnToggle: func(id string) {
		assert.Equal(t, "f1", id)
		toggles++
		active = !active
	}, Active: func() bool { return active }}, &xyz.MeshRef{Mesh: boxMesh()}, nil)
	cam := fixedCamera(defaultCamera(math32.Vec3(0, 0, 5)))

	clicks := 0
	for i := range 2000 {
		switch rnd.Intn(6) {
		case 0:
			fr.Controller.PointerEnter(events.NewPointer(events.MouseEnter, events.NoButton, math32.Vector3{}), active)
		case 1:
			events.Dispatch(events.NewPointer(events.MouseLeave, events.NoButton, math32.Vector3{}), &fr.Listeners)
		case 2:
			clicks++
			events.Dispatch(events.NewPointer(events.Click, events.Left, math32.Vector3{}), &fr.Listeners)
		case 3, 4:
			events.Dispatch(events.NewPointer(events.MouseEnter, events.NoButton, math32.Vector3{}), &fr.Listeners)
		case 5:
			fr.UpdateFrom(tick, cam)
		}
		require.False(t, fr.Controller.hovered && active, "step %d", i)
		require.False(t, fr.Hovered() && active, "step %d", i)
	}
	assert.Equal(t, clicks, toggles)
}

func TestClickIntoActiveClearsHover(t *testing.T) {
	active := false
	fr := New(Params{ID: "f1", OnToggle: func(id string) { active = !active },
		Active: func() bool { return active }}, &xyz.MeshRef{Mesh: boxMesh()}, nil)

	events.Dispatch(events.NewPointer(events.MouseEnter, events.NoButton, math32.Vector3{}), &fr.Listeners)
	assert.True(t, fr.Hovered())
	events.Dispatch(events.NewPointer(events.Click, events.Left, math32.Vector3{}), &fr.Listeners)
	assert.True(t, active)
	assert.False(t, fr.Hovered())

	// no update in between: the owner's state is read directly
	events.Dispatch(events.NewPointer(events.MouseLeave, events.NoButton, math32.Vector3{}), &fr.Listeners)
	events.Dispatch(events.NewPointer(events.MouseEnter, events.NoButton, math32.Vector3{}), &fr.Listeners)
	assert.False(t, fr.Hovered())

	// another frame becoming active is reported by the owner, not a click
	active = false
	events.Dispatch(events.NewPointer(events.MouseEnter, events.NoButton, math32.Vector3{}), &fr.Listeners)
	assert.True(t, fr.Hovered())
	active = true
	assert.False(t, fr.Hovered())
	tgt := fr.UpdateFrom(tick, fixedCamera(defaultCamera(math32.Vec3(0, 0, 5))))
	assert.InDelta(t, 3.5, tgt.Pos.Z, 1e-5, "UpdateFrom reads the owner's active state")
}

func TestHandlersStopPropagation(t *testing.T) {
	fr := newTestFrame(xyz.NewPose(math32.Vector3{}))
	behind := events.Listeners{}
	reached := 0
	behind.Add(events.Click, func(ev events.Event) { reached++ })
	behind.Add(events.MouseEnter, func(ev events.Event) { reached++ })

	ev := events.NewPointer(events.MouseEnter, events.NoButton, math32.Vector3{})
	events.Dispatch(ev, &fr.Listeners, &behind)
	assert.True(t, ev.IsHandled())
	assert.True(t, fr.Hovered())

	events.Dispatch(events.NewPointer(events.Click, events.Left, math32.Vector3{}), &fr.Listeners, &behind)
	leave := events.NewPointer(events.MouseLeave, events.NoButton, math32.Vector3{})
	events.Dispatch(leave, &fr.Listeners, &behind)
	assert.True(t, leave.IsHandled())
	assert.False(t, fr.Hovered())
	assert.Equal(t, 0, reached)
}

func TestEnterWhileActiveIgnored(t *testing.T) {
	fr := newTestFrame(xyz.NewPose(math32.Vector3{}))
	cam := defaultCamera(math32.Vec3(0, 0, 5))
	fr.Update(tick, cam, true)
	ev := events.NewPointer(events.MouseEnter, events.NoButton, math32.Vector3{})
	events.Dispatch(ev, &fr.Listeners)
	assert.True(t, ev.IsHandled())
	assert.False(t, fr.Hovered())

	fr.Update(tick, cam, false)
	events.Dispatch(events.NewPointer(events.MouseEnter, events.NoButton, math32.Vector3{}), &fr.Listeners)
	assert.True(t, fr.Hovered())
	fr.Update(tick, cam, true)
	assert.False(t, fr.Hovered(), "activation clears hover")
}

func TestContentPose(t *testing.T) {
	st := Settings{}
	st.Defaults()
	st.Tilt = math32.Vec3(-10, 0, 0)
	fr := New(Params{ID: "f", Settings: &st, Caption: "Title"}, &xyz.MeshRef{Mesh: boxMesh()}, nil)
	cp := fr.ContentPose()
	up := math32.Vec3(0, 1, 0).MulQuat(cp.Quat)
	assert.InDelta(t, math.Cos(10*math.Pi/180), up.Y, 1e-5)
	assert.Equal(t, math32.Vector3{}, cp.Pos)

	ip := fr.ImagePose()
	assert.InDelta(t, 2*0.82, ip.Scale.X, 1e-5)
	require.NotNil(t, fr.Caption)
	cp = fr.CaptionPose()
	assert.Less(t, cp.Pos.Y, ip.Pos.Y-ip.Scale.Y/2)
	assert.InDelta(t, fr.Caption.Size.X, cp.Scale.X, 1e-6)

	none := newTestFrame(xyz.NewPose(math32.Vector3{}))
	assert.Nil(t, none.Caption)
	assert.Equal(t, math32.Vector3{}, none.CaptionPose().Scale)
}

func TestCloseReleasesOnce(t *testing.T) {
	dev := xyz.NewMemDevice(16)
	pv := surface.NewProvider(dev, testImages{}, nil)
	srf, err := pv.Mount(context.Background(), "a.png", surface.Image)
	require.NoError(t, err)

	fr := New(Params{ID: "f", URL: "a.png"}, &xyz.MeshRef{Mesh: boxMesh()}, srf)
	cam := defaultCamera(math32.Vec3(0, 0, 5))
	// close in the middle of a transition
	for range 5 {
		fr.Update(tick, cam, true)
	}
	require.NoError(t, fr.Close())
	require.NoError(t, fr.Close())
	assert.True(t, fr.Closed())
	created, released := dev.Counts()
	assert.Equal(t, 1, created)
	assert.Equal(t, 1, released)
	assert.Equal(t, 0, dev.Live())
}

func TestSetSurface(t *testing.T) {
	dev := xyz.NewMemDevice(16)
	pv := surface.NewProvider(dev, testImages{}, nil)
	ctx := context.Background()
	a, err := pv.Mount(ctx, "a.png", surface.Image)
	require.NoError(t, err)
	b, err := pv.Mount(ctx, "b.png", surface.Image)
	require.NoError(t, err)

	fr := New(Params{ID: "f", URL: "a.png"}, nil, a)
	require.NoError(t, fr.SetSurface(a))
	assert.False(t, a.Released())
	require.NoError(t, fr.SetSurface(b))
	assert.True(t, a.Released())
	assert.Equal(t, "b.png", fr.URL)
	require.NoError(t, fr.Close())
	_, released := dev.Counts()
	assert.Equal(t, 2, released)
	assert.Equal(t, 0, dev.Live())
}
