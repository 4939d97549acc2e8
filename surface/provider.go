// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package surface

import (
	"context"
	"fmt"

	"github.com/xyzgallery/frames/base/errors"
	"github.com/xyzgallery/frames/xyz"
)

// Roughness is the material roughness of mounted media:
// low, so the surface reads as a glossy print or screen.
const Roughness = 0.2

// Provider produces surfaces for media urls.
type Provider struct {

	// Device creates and releases the material resources.
	Device xyz.Device

	// Images loads static image textures.
	Images ImageLoader

	// Videos opens video textures.
	Videos VideoLoader
}

// NewProvider returns a new provider using the given device and loaders.
func NewProvider(dev xyz.Device, images ImageLoader, videos VideoLoader) *Provider {
	return &Provider{Device: dev, Images: images, Videos: videos}
}

// Mount loads the media at url and binds it to a new device material.
// It returns only once the content is loaded: there is no placeholder
// state. Load failures are returned wrapped with the url.
func (pv *Provider) Mount(ctx context.Context, url string, kind Kinds) (*Surface, error) {
	sf := &Surface{URL: url, Kind: kind, device: pv.Device}
	var tex *xyz.Texture
	var err error
	switch kind {
	case Image:
		if pv.Images == nil {
			return nil, fmt.Errorf("surface: no image loader for %q", url)
		}
		tex, err = pv.Images.LoadImage(ctx, url)
		if err == nil {
			tex.Anisotropy = pv.Device.MaxAnisotropy()
		}
	case Video:
		if pv.Videos == nil {
			return nil, fmt.Errorf("surface: no video loader for %q", url)
		}
		// video streams are not mip-mapped, so anisotropic filtering is left off
		tex, sf.source, err = pv.Videos.LoadVideo(ctx, url)
	default:
		return nil, fmt.Errorf("surface: invalid media kind %v for %q", kind, url)
	}
	if err != nil {
		return nil, fmt.Errorf("surface: loading %s %q: %w", kind, url, err)
	}
	tex.ColorSpace = xyz.SRGB

	sf.Material = NewMaterial(tex)
	sf.ID, err = pv.Device.NewMaterial(sf.Material)
	if err != nil {
		if sf.source != nil {
			errors.Log(sf.source.Close())
		}
		return nil, fmt.Errorf("surface: creating material for %q: %w", url, err)
	}
	return sf, nil
}

// NewMaterial returns the material used for media content: double sided,
// not tone mapped (the content is treated as self-lit), low roughness
// and non-metallic.
func NewMaterial(tex *xyz.Texture) *xyz.Material {
	mt := &xyz.Material{}
	mt.Defaults()
	mt.Texture = tex
	mt.CullBack = false
	mt.ToneMapped = false
	mt.Roughness = Roughness
	mt.Metalness = 0
	return mt
}
