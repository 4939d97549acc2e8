// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package surface

import (
	"context"
	"image"
	"io/fs"

	"github.com/xyzgallery/frames/base/iox/imagex"
	"github.com/xyzgallery/frames/xyz"
)

// DefaultMaxSize is the default maximum texture dimension in pixels.
const DefaultMaxSize = 2048

// FileImageLoader loads image textures from files, either on the
// local file system or from FS if it is set (e.g., embedded files).
// png, jpeg, gif, tiff, bmp, and webp are supported.
type FileImageLoader struct {

	// FS is the filesystem to open urls from, if non-nil.
	FS fs.FS

	// MaxSize bounds the texture dimensions: larger images are
	// scaled down preserving aspect ratio. 0 means no limit.
	MaxSize int
}

func (ld *FileImageLoader) LoadImage(ctx context.Context, url string) (*xyz.Texture, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var img image.Image
	var err error
	if ld.FS != nil {
		img, _, err = imagex.OpenFS(ld.FS, url)
	} else {
		img, _, err = imagex.Open(url)
	}
	if err != nil {
		return nil, err
	}
	return xyz.NewTexture(url, imagex.FitSize(img, ld.MaxSize)), nil
}
