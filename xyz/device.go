// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xyz

import (
	"fmt"
	"image"
	"log/slog"
	"sync"
)

// MaterialID identifies a material resource held by a [Device].
type MaterialID uint64

// Device is the narrow interface to the renderer for creating and
// releasing GPU-side material resources.
type Device interface {
	// MaxAnisotropy returns the maximum supported anisotropic filtering level.
	MaxAnisotropy() int

	// NewMaterial uploads the material and its texture,
	// returning the id of the new resource.
	NewMaterial(mt *Material) (MaterialID, error)

	// UpdateTexture replaces the texture image of the given material.
	UpdateTexture(id MaterialID, img *image.RGBA) error

	// ReleaseMaterial frees the resources of the given material.
	ReleaseMaterial(id MaterialID) error
}

// MemDevice is a [Device] that keeps materials in memory and tracks
// their lifetime. It is used for headless runs and tests: it reports
// double releases and releases of unknown materials as errors.
type MemDevice struct {

	// Anisotropy is the value returned by MaxAnisotropy.
	Anisotropy int

	mu       sync.Mutex
	next     MaterialID
	live     map[MaterialID]*Material
	created  int
	released int
}

// NewMemDevice returns a new in-memory device with the given
// maximum anisotropy.
func NewMemDevice(anisotropy int) *MemDevice {
	return &MemDevice{Anisotropy: anisotropy, live: make(map[MaterialID]*Material)}
}

func (md *MemDevice) MaxAnisotropy() int {
	return md.Anisotropy
}

func (md *MemDevice) NewMaterial(mt *Material) (MaterialID, error) {
	if mt == nil {
		return 0, fmt.Errorf("xyz.MemDevice: nil material")
	}
	md.mu.Lock()
	defer md.mu.Unlock()
	if md.live == nil {
		md.live = make(map[MaterialID]*Material)
	}
	md.next++
	md.live[md.next] = mt
	md.created++
	return md.next, nil
}

func (md *MemDevice) UpdateTexture(id MaterialID, img *image.RGBA) error {
	md.mu.Lock()
	defer md.mu.Unlock()
	mt, ok := md.live[id]
	if !ok {
		return fmt.Errorf("xyz.MemDevice: update of unknown material %d", id)
	}
	if mt.Texture != nil {
		mt.Texture.RGBA = img
	}
	return nil
}

func (md *MemDevice) ReleaseMaterial(id MaterialID) error {
	md.mu.Lock()
	defer md.mu.Unlock()
	if _, ok := md.live[id]; !ok {
		return fmt.Errorf("xyz.MemDevice: release of unknown or released material %d", id)
	}
	delete(md.live, id)
	md.released++
	slog.Debug("xyz.MemDevice: released material", "id", id)
	return nil
}

// Material returns the live material of the given id, or nil.
func (md *MemDevice) Material(id MaterialID) *Material {
	md.mu.Lock()
	defer md.mu.Unlock()
	return md.live[id]
}

// Live returns the number of materials currently allocated.
func (md *MemDevice) Live() int {
	md.mu.Lock()
	defer md.mu.Unlock()
	return len(md.live)
}

// Counts returns the total number of materials created and released.
func (md *MemDevice) Counts() (created, released int) {
	md.mu.Lock()
	defer md.mu.Unlock()
	return md.created, md.released
}
