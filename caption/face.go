// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package caption

import (
	"fmt"
	"os"

	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
)

// ParseFace returns a face for the given TrueType or OpenType font
// data at the given size in points, at 72 dpi (one point per pixel).
func ParseFace(data []byte, size float64) (font.Face, error) {
	if size <= 0 {
		return nil, fmt.Errorf("caption: invalid font size %g", size)
	}
	fnt, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("caption: parsing font: %w", err)
	}
	return opentype.NewFace(fnt, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
}

// OpenFace returns a face for the font in the given .ttf or .otf file.
func OpenFace(filename string, size float64) (font.Face, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	face, err := ParseFace(data, size)
	if err != nil {
		return nil, fmt.Errorf("%w (%s)", err, filename)
	}
	return face, nil
}
