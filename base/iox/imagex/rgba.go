// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package imagex

import (
	"image"
	"image/draw"

	"github.com/anthonynsimon/bild/transform"
)

// CloneAsRGBA returns an RGBA copy of the supplied image.
func CloneAsRGBA(src image.Image) *image.RGBA {
	if src == nil {
		return nil
	}
	bounds := src.Bounds()
	img := image.NewRGBA(bounds)
	draw.Draw(img, bounds, src, bounds.Min, draw.Src)
	return img
}

// AsRGBA returns the image as an RGBA: if it already is one, then
// it returns that image directly. Otherwise it returns a clone.
func AsRGBA(src image.Image) *image.RGBA {
	if src == nil {
		return nil
	}
	if rgba, ok := src.(*image.RGBA); ok {
		return rgba
	}
	return CloneAsRGBA(src)
}

// FitSize returns the image scaled down (preserving aspect ratio)
// so that neither dimension exceeds maxSize. Images already within
// bounds, and any maxSize <= 0, return the RGBA form of the source.
func FitSize(src image.Image, maxSize int) *image.RGBA {
	if src == nil {
		return nil
	}
	sz := src.Bounds().Size()
	if maxSize <= 0 || (sz.X <= maxSize && sz.Y <= maxSize) {
		return AsRGBA(src)
	}
	w, h := maxSize, maxSize
	if sz.X >= sz.Y {
		h = max(1, sz.Y*maxSize/sz.X)
	} else {
		w = max(1, sz.X*maxSize/sz.Y)
	}
	return transform.Resize(src, w, h, transform.Linear)
}
