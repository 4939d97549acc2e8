// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package caption renders the text overlay shown under a frame's
// image into a texture sized for placement in the scene.
package caption

import (
	"image"
	"image/color"
	"image/draw"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/xyzgallery/frames/math32"
	"github.com/xyzgallery/frames/xyz"
)

// Style has the parameters for rendering a caption.
type Style struct {

	// Color is the text color.
	Color color.RGBA

	// Background is the fill behind the text; transparent by default.
	Background color.RGBA

	// Padding is the margin in pixels around the text.
	Padding int

	// WorldPerPixel is the world-space size of one texture pixel,
	// used to size the caption plane.
	WorldPerPixel float32

	// Face is the font face, typically from [OpenFace]. If it is nil,
	// basicfont.Face7x13 is used, which only covers Latin-1.
	Face font.Face
}

// Defaults sets default style values.
func (st *Style) Defaults() {
	st.Color = color.RGBA{0xF0, 0xF0, 0xF0, 0xFF}
	st.Padding = 4
	st.WorldPerPixel = 0.004
}

// Caption is a rendered caption.
type Caption struct {

	// Text is the source text.
	Text string

	// Texture holds the rendered text.
	Texture *xyz.Texture

	// Size is the world-space width and height of the caption plane.
	Size math32.Vector2
}

// Render rasterizes the given text, one line per newline, into a
// texture. Empty (or all-space) text yields nil: there is no caption.
func Render(text string, st *Style) *Caption {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	face := st.Face
	if face == nil {
		face = basicfont.Face7x13
	}
	lines := strings.Split(text, "\n")
	met := face.Metrics()
	lineHt := met.Height.Ceil()
	width := 0
	for _, ln := range lines {
		width = max(width, font.MeasureString(face, ln).Ceil())
	}
	w := width + 2*st.Padding
	h := lineHt*len(lines) + 2*st.Padding
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	if st.Background.A > 0 {
		draw.Draw(img, img.Bounds(), image.NewUniform(st.Background), image.Point{}, draw.Src)
	}

	d := &font.Drawer{Dst: img, Src: image.NewUniform(st.Color), Face: face}
	for i, ln := range lines {
		// center each line horizontally
		lw := font.MeasureString(face, ln).Ceil()
		x := st.Padding + (width-lw)/2
		y := st.Padding + i*lineHt + met.Ascent.Ceil()
		d.Dot = fixed.P(x, y)
		d.DrawString(ln)
	}

	tex := xyz.NewTexture("caption:"+text, img)
	return &Caption{
		Text:    text,
		Texture: tex,
		Size:    math32.Vec2(float32(w)*st.WorldPerPixel, float32(h)*st.WorldPerPixel),
	}
}
