// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package surface

import (
	"context"
	"errors"
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xyzgallery/frames/xyz"
)

type fakeImages struct {
	loads int
	fail  bool
}

func (fi *fakeImages) LoadImage(ctx context.Context, url string) (*xyz.Texture, error) {
	fi.loads++
	if fi.fail {
		return nil, errors.New("not found")
	}
	return xyz.NewTexture(url, image.NewRGBA(image.Rect(0, 0, 8, 4))), nil
}

type fakeFrames struct {
	left   int
	closed int
}

func (ff *fakeFrames) NextFrame() (*image.RGBA, bool, error) {
	if ff.left == 0 {
		return nil, false, nil
	}
	ff.left--
	return image.NewRGBA(image.Rect(0, 0, 2, 2)), true, nil
}

func (ff *fakeFrames) Close() error {
	ff.closed++
	return nil
}

type fakeVideos struct {
	sources []*fakeFrames
}

func (fv *fakeVideos) LoadVideo(ctx context.Context, url string) (*xyz.Texture, FrameSource, error) {
	src := &fakeFrames{left: 2}
	fv.sources = append(fv.sources, src)
	return xyz.NewTexture(url, image.NewRGBA(image.Rect(0, 0, 2, 2))), src, nil
}

func newTestProvider() (*Provider, *xyz.MemDevice, *fakeImages, *fakeVideos) {
	dev := xyz.NewMemDevice(16)
	imgs := &fakeImages{}
	vids := &fakeVideos{}
	return NewProvider(dev, imgs, vids), dev, imgs, vids
}

func TestMountImage(t *testing.T) {
	pv, dev, _, _ := newTestProvider()
	sf, err := pv.Mount(context.Background(), "a.png", Image)
	require.NoError(t, err)
	assert.Equal(t, 1, dev.Live())

	mt := dev.Material(sf.ID)
	require.NotNil(t, mt)
	assert.True(t, mt.DoubleSided())
	assert.False(t, mt.ToneMapped)
	assert.Equal(t, float32(Roughness), mt.Roughness)
	assert.Equal(t, float32(0), mt.Metalness)
	assert.Equal(t, xyz.SRGB, sf.Texture().ColorSpace)
	assert.Equal(t, 16, sf.Texture().Anisotropy)

	ok, err := sf.Advance()
	assert.NoError(t, err)
	assert.False(t, ok, "images do not advance")

	require.NoError(t, sf.Release())
	require.NoError(t, sf.Release(), "second release is a no-op")
	assert.True(t, sf.Released())
	created, released := dev.Counts()
	assert.Equal(t, 1, created)
	assert.Equal(t, 1, released)
}

func TestMountVideo(t *testing.T) {
	pv, dev, _, vids := newTestProvider()
	sf, err := pv.Mount(context.Background(), "clip.mp4", Video)
	require.NoError(t, err)
	assert.Equal(t, 0, sf.Texture().Anisotropy, "video skips anisotropic filtering")
	assert.Equal(t, xyz.SRGB, sf.Texture().ColorSpace)

	for i := 0; i < 2; i++ {
		ok, err := sf.Advance()
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Same(t, sf.Texture().RGBA, dev.Material(sf.ID).Texture.RGBA)
	}
	ok, err := sf.Advance()
	assert.NoError(t, err)
	assert.False(t, ok, "end of stream")

	require.NoError(t, sf.Release())
	require.NoError(t, sf.Release())
	assert.Equal(t, 1, vids.sources[0].closed)
	assert.Equal(t, 0, dev.Live())

	ok, _ = sf.Advance()
	assert.False(t, ok, "released surfaces do not advance")
}

func TestMountErrors(t *testing.T) {
	pv, dev, imgs, _ := newTestProvider()
	imgs.fail = true
	_, err := pv.Mount(context.Background(), "missing.png", Image)
	assert.ErrorContains(t, err, "missing.png")
	assert.Equal(t, 0, dev.Live())

	_, err = pv.Mount(context.Background(), "x", Kinds(7))
	assert.Error(t, err)

	bare := NewProvider(dev, nil, nil)
	_, err = bare.Mount(context.Background(), "a.png", Image)
	assert.Error(t, err)
	_, err = bare.Mount(context.Background(), "a.mp4", Video)
	assert.Error(t, err)
}

func TestMounterReleasesOnChange(t *testing.T) {
	pv, dev, imgs, vids := newTestProvider()
	mn := NewMounter(pv)
	ctx := context.Background()

	a, err := mn.Set(ctx, "a.png", Image)
	require.NoError(t, err)
	same, err := mn.Set(ctx, "a.png", Image)
	require.NoError(t, err)
	assert.Same(t, a, same)
	assert.Equal(t, 1, imgs.loads, "unchanged media is not reloaded")

	b, err := mn.Set(ctx, "b.png", Image)
	require.NoError(t, err)
	assert.True(t, a.Released())
	assert.False(t, b.Released())
	assert.Equal(t, 1, dev.Live())

	_, err = mn.Set(ctx, "b.mp4", Video)
	require.NoError(t, err)
	assert.True(t, b.Released())

	require.NoError(t, mn.Unmount())
	require.NoError(t, mn.Unmount())
	assert.Nil(t, mn.Surface())
	assert.Equal(t, 1, vids.sources[0].closed)

	created, released := dev.Counts()
	assert.Equal(t, 3, created)
	assert.Equal(t, 3, released)
	assert.Equal(t, 0, dev.Live())
}

func TestMounterFailedLoad(t *testing.T) {
	pv, dev, imgs, _ := newTestProvider()
	mn := NewMounter(pv)
	a, err := mn.Set(context.Background(), "a.png", Image)
	require.NoError(t, err)

	imgs.fail = true
	_, err = mn.Set(context.Background(), "b.png", Image)
	assert.Error(t, err)
	assert.True(t, a.Released())
	assert.Nil(t, mn.Surface())
	assert.Equal(t, 0, dev.Live())
}

func TestMounterRemountsReleased(t *testing.T) {
	pv, dev, imgs, _ := newTestProvider()
	mn := NewMounter(pv)
	ctx := context.Background()

	a, err := mn.Set(ctx, "a.png", Image)
	require.NoError(t, err)
	// released elsewhere, e.g. by the frame that displays it
	require.NoError(t, a.Release())

	b, err := mn.Set(ctx, "a.png", Image)
	require.NoError(t, err)
	assert.NotSame(t, a, b)
	assert.False(t, b.Released())
	assert.NotEqual(t, a.ID, b.ID)
	assert.Equal(t, 2, imgs.loads)
	assert.Equal(t, 1, dev.Live())
	assert.NotNil(t, dev.Material(b.ID))

	require.NoError(t, mn.Unmount())
	created, released := dev.Counts()
	assert.Equal(t, 2, created)
	assert.Equal(t, 2, released)
}
