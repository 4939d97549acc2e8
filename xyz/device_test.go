// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xyz

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemDeviceLifetime(t *testing.T) {
	md := NewMemDevice(16)
	assert.Equal(t, 16, md.MaxAnisotropy())

	mt := &Material{}
	mt.Defaults()
	mt.Texture = NewTexture("a", image.NewRGBA(image.Rect(0, 0, 2, 2)))
	id, err := md.NewMaterial(mt)
	require.NoError(t, err)
	assert.Equal(t, 1, md.Live())
	assert.Same(t, mt, md.Material(id))

	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	require.NoError(t, md.UpdateTexture(id, img))
	assert.Same(t, img, mt.Texture.RGBA)

	require.NoError(t, md.ReleaseMaterial(id))
	assert.Equal(t, 0, md.Live())
	assert.Error(t, md.ReleaseMaterial(id), "double release is reported")
	assert.Error(t, md.UpdateTexture(id, img))

	created, released := md.Counts()
	assert.Equal(t, 1, created)
	assert.Equal(t, 1, released)

	_, err = md.NewMaterial(nil)
	assert.Error(t, err)
}

func TestTextureAlpha(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 1, 1))
	assert.True(t, NewTexture("clear", img).Transparent)
	img.Pix[3] = 0xFF
	tx := NewTexture("opaque", img)
	assert.False(t, tx.Transparent)
	assert.Equal(t, SRGB, tx.ColorSpace)
	assert.Equal(t, image.Pt(1, 1), tx.Size())

	var mt Material
	mt.Defaults()
	assert.False(t, mt.DoubleSided())
	assert.True(t, mt.ToneMapped)
	assert.False(t, mt.IsTransparent())
}
