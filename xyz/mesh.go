// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xyz

import (
	"sync"

	"github.com/xyzgallery/frames/math32"
)

// Mesh is an indexed triangle mesh loaded from an asset.
// Once added to a [Library] it is shared by every instance
// and must be treated as immutable.
type Mesh struct {

	// Name is the name of the mesh, unique within its [Library].
	Name string

	// Vertex holds the vertex positions as x, y, z triples.
	Vertex []float32

	// Normal holds the vertex normals as x, y, z triples.
	Normal []float32

	// TexCoord holds the vertex texture coordinates as u, v pairs.
	TexCoord []float32

	// Index holds the triangle vertex indexes.
	Index []uint32

	bboxOnce sync.Once
	bbox     math32.Box3
}

// NumVertex returns the number of vertex points.
func (ms *Mesh) NumVertex() int {
	return len(ms.Vertex) / 3
}

// VertexAt returns the position of vertex i.
func (ms *Mesh) VertexAt(i int) math32.Vector3 {
	return math32.Vec3(ms.Vertex[3*i], ms.Vertex[3*i+1], ms.Vertex[3*i+2])
}

// BBox returns the bounding box of the mesh vertices. It is computed
// on first use and cached, since the vertex data never changes.
// A mesh with no vertices has an empty box.
func (ms *Mesh) BBox() math32.Box3 {
	ms.bboxOnce.Do(func() {
		ms.bbox = BBoxFromVertex(ms.Vertex)
	})
	return ms.bbox
}

// BBoxFromVertex returns the bounding box of the given x, y, z triples.
func BBoxFromVertex(vertex []float32) math32.Box3 {
	bb := math32.B3Empty()
	for i := 0; i+2 < len(vertex); i += 3 {
		bb.ExpandByPoint(math32.Vec3(vertex[i], vertex[i+1], vertex[i+2]))
	}
	return bb
}

// MeshRef is a lightweight per-instance handle onto a shared [Mesh].
// It does not own the mesh data: the [Library] does. Each instance
// gets its own local Pose for the mesh node.
type MeshRef struct {

	// Mesh is the shared, immutable mesh.
	Mesh *Mesh

	// Pose is this instance's local transform of the mesh node.
	Pose Pose
}

// BBox returns the bounding box of the referenced mesh.
func (mr *MeshRef) BBox() math32.Box3 {
	if mr == nil || mr.Mesh == nil {
		return math32.B3Empty()
	}
	return mr.Mesh.BBox()
}
