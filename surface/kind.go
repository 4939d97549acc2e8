// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package surface

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/h2non/filetype"
)

// Kinds are the kinds of media a surface can show.
type Kinds int32

const (
	// Image is a static image texture.
	Image Kinds = iota

	// Video is a streaming texture whose frames advance over time.
	Video
)

func (k Kinds) String() string {
	switch k {
	case Image:
		return "image"
	case Video:
		return "video"
	}
	return fmt.Sprintf("Kinds(%d)", int32(k))
}

// ParseKind returns the kind named by s ("image" or "video").
func ParseKind(s string) (Kinds, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "image", "":
		return Image, nil
	case "video":
		return Video, nil
	}
	return Image, fmt.Errorf("surface: unknown media kind %q", s)
}

// MarshalText implements [encoding.TextMarshaler] so kinds read
// naturally in config files.
func (k Kinds) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText implements [encoding.TextUnmarshaler].
func (k *Kinds) UnmarshalText(text []byte) error {
	kn, err := ParseKind(string(text))
	if err != nil {
		return err
	}
	*k = kn
	return nil
}

// SniffKind determines the media kind from the leading bytes of
// the content.
func SniffKind(head []byte) (Kinds, error) {
	switch {
	case filetype.IsVideo(head):
		return Video, nil
	case filetype.IsImage(head):
		return Image, nil
	}
	kind, _ := filetype.Match(head)
	return Image, fmt.Errorf("surface: content type %q is neither image nor video", kind.MIME.Value)
}

// KindFromFile determines the media kind of the given file
// from its header bytes.
func KindFromFile(filename string) (Kinds, error) {
	f, err := os.Open(filename)
	if err != nil {
		return Image, err
	}
	defer f.Close()
	// 261 bytes is the maximum header length filetype inspects
	head := make([]byte, 261)
	n, err := io.ReadFull(f, head)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return Image, err
	}
	kind, err := SniffKind(head[:n])
	if err != nil {
		return kind, fmt.Errorf("%w: %s", err, filename)
	}
	return kind, nil
}
