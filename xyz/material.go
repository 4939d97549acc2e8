// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xyz

import (
	"fmt"
	"image/color"
)

// Material describes the material properties of a surface
// (colors, roughness, texture).
// Main color is multiplied with the texture, and its alpha component
// is used for opacity. The Emissive color is only for glowing objects.
type Material struct {

	// Color is the main color of surface, multiplied with the texture.
	Color color.RGBA

	// Emissive is the color that surface emits independent of any lighting.
	Emissive color.RGBA

	// Roughness is the microfacet roughness, 0 = mirror, 1 = fully diffuse.
	Roughness float32

	// Metalness is 0 for dielectrics and 1 for metals.
	Metalness float32

	// Texture provides the color for the surface, if set.
	Texture *Texture

	// CullBack indicates to cull the back-facing surfaces.
	CullBack bool

	// ToneMapped is whether the final color goes through the scene's
	// exposure and tone curve. Self-lit media content turns this off.
	ToneMapped bool
}

// Defaults sets default surface parameters
func (mt *Material) Defaults() {
	mt.Color = color.RGBA{0xFF, 0xFF, 0xFF, 0xFF}
	mt.Emissive = color.RGBA{}
	mt.Roughness = 1
	mt.Metalness = 0
	mt.CullBack = true
	mt.ToneMapped = true
}

// DoubleSided returns whether both faces of the surface are rendered.
func (mt *Material) DoubleSided() bool {
	return !mt.CullBack
}

// IsTransparent returns true if texture says it is, or if color has alpha < 255
func (mt *Material) IsTransparent() bool {
	if mt.Texture != nil && mt.Texture.Transparent {
		return true
	}
	return mt.Color.A < 255
}

func (mt *Material) String() string {
	tex := ""
	if mt.Texture != nil {
		tex = mt.Texture.Name
	}
	return fmt.Sprintf("Material{Texture: %q, Roughness: %g, Metalness: %g, DoubleSided: %v, ToneMapped: %v}",
		tex, mt.Roughness, mt.Metalness, mt.DoubleSided(), mt.ToneMapped)
}
