// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xyz

import "image"

// ColorSpaces are the encodings of texture color data.
type ColorSpaces int32

const (
	// Linear texture data is sampled as is.
	Linear ColorSpaces = iota

	// SRGB texture data is display-referred and is converted
	// to linear when sampled.
	SRGB
)

func (cs ColorSpaces) String() string {
	if cs == SRGB {
		return "SRGB"
	}
	return "Linear"
}

// Texture is an image to be sampled on the GPU. It uses an
// [image.RGBA] as the underlying image storage to facilitate
// interface with the GPU.
type Texture struct {

	// Name is the name of the texture, typically its source url.
	Name string

	// RGBA is the current image of the texture. For video textures
	// this is replaced as frames advance.
	RGBA *image.RGBA

	// ColorSpace is the encoding of the RGBA data.
	ColorSpace ColorSpaces

	// Anisotropy is the level of anisotropic filtering to use when
	// sampling; 0 disables it.
	Anisotropy int

	// Transparent is whether the texture has transparency.
	Transparent bool
}

// NewTexture returns a new texture of the given name and image,
// marked as display-referred sRGB content.
func NewTexture(name string, img *image.RGBA) *Texture {
	tx := &Texture{Name: name, RGBA: img, ColorSpace: SRGB}
	tx.Transparent = hasAlpha(img)
	return tx
}

// Size returns the pixel size of the texture image.
func (tx *Texture) Size() image.Point {
	if tx == nil || tx.RGBA == nil {
		return image.Point{}
	}
	return tx.RGBA.Bounds().Size()
}

func hasAlpha(img *image.RGBA) bool {
	if img == nil {
		return false
	}
	for i := 3; i < len(img.Pix); i += 4 {
		if img.Pix[i] != 0xFF {
			return true
		}
	}
	return false
}
