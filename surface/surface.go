// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package surface provides the textured front face of a picture frame:
// it loads image or video content into a texture, binds it to a
// self-lit material on a [xyz.Device], and releases that material
// exactly once when the content is unmounted or replaced.
package surface

import (
	"context"
	"fmt"
	"image"
	"log/slog"

	"github.com/xyzgallery/frames/base/errors"
	"github.com/xyzgallery/frames/xyz"
)

// ImageLoader loads a static image texture from a url.
type ImageLoader interface {
	LoadImage(ctx context.Context, url string) (*xyz.Texture, error)
}

// VideoLoader opens a video from a url, returning a texture holding
// the first frame and the source of subsequent frames.
type VideoLoader interface {
	LoadVideo(ctx context.Context, url string) (*xyz.Texture, FrameSource, error)
}

// FrameSource produces successive video frames.
type FrameSource interface {
	// NextFrame returns the next decoded frame; ok is false at end of stream.
	NextFrame() (img *image.RGBA, ok bool, err error)

	// Close frees the decoder.
	Close() error
}

// Surface is mounted media content bound to a device material.
type Surface struct {

	// URL is the media source.
	URL string

	// Kind is the kind of media.
	Kind Kinds

	// Material is the material the content is bound to.
	Material *xyz.Material

	// ID is the device resource of the material.
	ID xyz.MaterialID

	device   xyz.Device
	source   FrameSource
	released bool
}

// Texture returns the texture of the surface.
func (sf *Surface) Texture() *xyz.Texture {
	return sf.Material.Texture
}

// Released returns whether [Surface.Release] has been called.
func (sf *Surface) Released() bool {
	return sf.released
}

// Advance pulls the next frame of a video surface into its texture.
// It returns false when there is no new frame: for images, at the end
// of the video, and after release. The renderer runtime calls this on
// its own schedule, independent of the frame animation tick.
func (sf *Surface) Advance() (bool, error) {
	if sf.released || sf.source == nil {
		return false, nil
	}
	img, ok, err := sf.source.NextFrame()
	if err != nil || !ok {
		return false, err
	}
	sf.Material.Texture.RGBA = img
	if err := sf.device.UpdateTexture(sf.ID, img); err != nil {
		return false, fmt.Errorf("surface: updating video texture %q: %w", sf.URL, err)
	}
	return true, nil
}

// Release frees the device material, and closes the video source
// if any. Only the first call has any effect; later calls return nil.
func (sf *Surface) Release() error {
	if sf == nil || sf.released {
		return nil
	}
	sf.released = true
	var errs []error
	if sf.source != nil {
		errs = append(errs, sf.source.Close())
	}
	errs = append(errs, sf.device.ReleaseMaterial(sf.ID))
	slog.Debug("surface: released", "url", sf.URL, "kind", sf.Kind, "id", sf.ID)
	return errors.Join(errs...)
}
