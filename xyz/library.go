// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xyz

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"golang.org/x/sync/singleflight"
)

// Decoder decodes a mesh from an asset stream.
type Decoder interface {
	// Decode reads the mesh data from r; name is used as the mesh name.
	Decode(r io.Reader, name string) (*Mesh, error)
}

// Decoders is the global registry of mesh decoders by file extension
// (including the leading dot), used by [Library.Open].
var Decoders = map[string]Decoder{
	".obj": &OBJDecoder{},
}

// Library is a shared cache of loaded meshes. Each asset is loaded
// once and then handed out to any number of instances as a
// non-owning [MeshRef]. It is safe for concurrent use.
type Library struct {
	mu     sync.Mutex
	meshes map[string]*Mesh

	// loads collapses concurrent Open calls for the same path.
	loads singleflight.Group
}

// NewLibrary returns a new empty library.
func NewLibrary() *Library {
	return &Library{meshes: make(map[string]*Mesh)}
}

// Add adds given mesh to library, using its name as unique key,
// replacing any existing mesh of the same name.
func (lb *Library) Add(ms *Mesh) {
	lb.mu.Lock()
	defer lb.mu.Unlock()
	if lb.meshes == nil {
		lb.meshes = make(map[string]*Mesh)
	}
	lb.meshes[ms.Name] = ms
}

// Mesh returns the mesh of the given name, or an error if not found.
func (lb *Library) Mesh(name string) (*Mesh, error) {
	lb.mu.Lock()
	defer lb.mu.Unlock()
	ms, ok := lb.meshes[name]
	if !ok {
		return nil, fmt.Errorf("xyz.Library: mesh %q not found", name)
	}
	return ms, nil
}

// Open loads the mesh at the given path, unless it is already in
// the library under that path, using the [Decoders] entry for its
// file extension. Concurrent calls for the same path share one load.
func (lb *Library) Open(ctx context.Context, path string) (*Mesh, error) {
	if ms, err := lb.Mesh(path); err == nil {
		return ms, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	v, err, _ := lb.loads.Do(path, func() (any, error) {
		if ms, err := lb.Mesh(path); err == nil {
			return ms, nil
		}
		ms, err := decodeFile(path)
		if err != nil {
			return nil, err
		}
		lb.Add(ms)
		return ms, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Mesh), nil
}

func decodeFile(path string) (*Mesh, error) {
	ext := strings.ToLower(filepath.Ext(path))
	dec, ok := Decoders[ext]
	if !ok {
		return nil, fmt.Errorf("xyz.Library: no decoder for extension %q of %q", ext, path)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("xyz.Library: %w", err)
	}
	defer f.Close()
	ms, err := dec.Decode(f, path)
	if err != nil {
		return nil, fmt.Errorf("xyz.Library: decoding %q: %w", path, err)
	}
	ms.Name = path
	slog.Debug("xyz.Library: loaded mesh", "file", path, "vertices", ms.NumVertex(), "indexes", len(ms.Index))
	return ms, nil
}

// Instance returns a new per-instance handle onto the named mesh.
// The returned [MeshRef] references the shared mesh, it does not copy it.
func (lb *Library) Instance(name string) (*MeshRef, error) {
	ms, err := lb.Mesh(name)
	if err != nil {
		return nil, err
	}
	mr := &MeshRef{Mesh: ms}
	mr.Pose.Defaults()
	return mr, nil
}
