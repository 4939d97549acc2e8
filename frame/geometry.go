// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package frame

import (
	"fmt"

	"github.com/xyzgallery/frames/math32"
	"github.com/xyzgallery/frames/xyz"
)

// Layout has the parameters that place the image plane and the
// caption relative to the bounding box of the frame mesh.
type Layout struct {

	// ImageScale is the fraction of the mesh width and height
	// covered by the image plane.
	ImageScale math32.Vector2 `default:"{0.82 0.82}"`

	// ImageOffset is added to the mesh center to position the image plane.
	ImageOffset math32.Vector3 `default:"{0 0.05 -0.27}"`

	// CaptionOffset is added to the bottom center of the image plane
	// to position the caption.
	CaptionOffset math32.Vector3 `default:"{0 -0.04 0.01}"`

	// Inset is the depth of the image behind the frame border.
	// It is carried for renderers that use it and does not
	// affect the derived positions.
	Inset float32
}

// Defaults sets the default layout values.
func (ly *Layout) Defaults() {
	ly.ImageScale = math32.Vec2(0.82, 0.82)
	ly.ImageOffset = math32.Vec3(0, 0.05, -0.27)
	ly.CaptionOffset = math32.Vec3(0, -0.04, 0.01)
}

// SetImageScale sets the same image scale for width and height.
func (ly *Layout) SetImageScale(s float32) {
	ly.ImageScale = math32.Vector2Scalar(s)
}

// Geometry is the layout of the image plane and caption derived from
// the bounding box of the frame mesh.
type Geometry struct {

	// Size is the size of the mesh bounding box.
	Size math32.Vector3

	// Center is the center of the mesh bounding box.
	Center math32.Vector3

	// ImageWidth is the width of the image plane.
	ImageWidth float32

	// ImageHeight is the height of the image plane.
	ImageHeight float32

	// ImagePos is the center of the image plane.
	ImagePos math32.Vector3

	// CaptionPos is the anchor of the caption, under the image.
	CaptionPos math32.Vector3

	// Inset is copied from the [Layout].
	Inset float32
}

func (gm Geometry) String() string {
	return fmt.Sprintf("Image: %gx%g at %v Caption: %v", gm.ImageWidth, gm.ImageHeight, gm.ImagePos, gm.CaptionPos)
}

// DeriveGeometry returns the geometry for the given mesh bounding box.
// An empty or flat box yields a zero-size image plane, not an error.
func DeriveGeometry(bbox math32.Box3, ly Layout) Geometry {
	gm := Geometry{Inset: ly.Inset}
	gm.Size = bbox.Size()
	gm.Center = bbox.Center()
	gm.ImageWidth = gm.Size.X * ly.ImageScale.X
	gm.ImageHeight = gm.Size.Y * ly.ImageScale.Y
	gm.ImagePos = gm.Center.Add(ly.ImageOffset)
	gm.CaptionPos = gm.ImagePos.Add(math32.Vec3(0, -gm.ImageHeight/2, 0)).Add(ly.CaptionOffset)
	return gm
}

// GeometryCache holds the geometry of the current mesh, recomputing it
// only when the mesh or the layout changes.
type GeometryCache struct {
	mesh     *xyz.Mesh
	layout   Layout
	geom     Geometry
	valid    bool
	computes int
}

// Geometry returns the geometry for the given mesh.
func (gc *GeometryCache) Geometry(ms *xyz.Mesh, ly Layout) Geometry {
	if gc.valid && gc.mesh == ms && gc.layout == ly {
		return gc.geom
	}
	var bbox math32.Box3
	if ms != nil {
		bbox = ms.BBox()
	} else {
		bbox = math32.B3Empty()
	}
	gc.mesh = ms
	gc.layout = ly
	gc.geom = DeriveGeometry(bbox, ly)
	gc.valid = true
	gc.computes++
	return gc.geom
}

// Computes returns how many times the geometry has been derived.
func (gc *GeometryCache) Computes() int {
	return gc.computes
}
