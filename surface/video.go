// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package surface

import (
	"context"
	"errors"
	"fmt"
	"image"

	"github.com/cogentcore/reisen"

	"github.com/xyzgallery/frames/xyz"
)

// ReisenVideoLoader opens video files with the ffmpeg-based reisen decoder.
// Audio streams are ignored.
type ReisenVideoLoader struct{}

func (ld *ReisenVideoLoader) LoadVideo(ctx context.Context, url string) (*xyz.Texture, FrameSource, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}
	src, err := openReisen(url)
	if err != nil {
		return nil, nil, err
	}
	first, ok, err := src.NextFrame()
	if err == nil && !ok {
		err = errors.New("video has no frames")
	}
	if err != nil {
		src.Close()
		return nil, nil, err
	}
	return xyz.NewTexture(url, first), src, nil
}

// reisenSource is a [FrameSource] reading the first video stream of a media file.
type reisenSource struct {
	media  *reisen.Media
	stream *reisen.VideoStream
	done   bool
}

func openReisen(url string) (*reisenSource, error) {
	media, err := reisen.NewMedia(url)
	if err != nil {
		return nil, err
	}
	if err := media.OpenDecode(); err != nil {
		media.Close()
		return nil, err
	}
	vs := media.VideoStreams()
	if len(vs) == 0 {
		media.CloseDecode()
		media.Close()
		return nil, fmt.Errorf("no video stream in %q", url)
	}
	stream := vs[0]
	if err := stream.Open(); err != nil {
		media.CloseDecode()
		media.Close()
		return nil, err
	}
	return &reisenSource{media: media, stream: stream}, nil
}

func (rs *reisenSource) NextFrame() (*image.RGBA, bool, error) {
	for !rs.done {
		packet, gotPacket, err := rs.media.ReadPacket()
		if err != nil {
			return nil, false, err
		}
		if !gotPacket {
			rs.done = true
			break
		}
		if packet.Type() != reisen.StreamVideo || packet.StreamIndex() != rs.stream.Index() {
			continue
		}
		frame, gotFrame, err := rs.stream.ReadVideoFrame()
		if err != nil {
			return nil, false, err
		}
		if !gotFrame || frame == nil {
			continue
		}
		return frame.Image(), true, nil
	}
	return nil, false, nil
}

func (rs *reisenSource) Close() error {
	err := rs.stream.Close()
	if cerr := rs.media.CloseDecode(); err == nil {
		err = cerr
	}
	rs.media.Close()
	return err
}
