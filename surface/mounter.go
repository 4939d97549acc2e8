// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package surface

import "context"

// Mounter holds the currently mounted surface of one frame and
// releases it when the media changes or the frame is unmounted.
type Mounter struct {

	// Provider creates new surfaces.
	Provider *Provider

	current *Surface
}

// NewMounter returns a new mounter using the given provider.
func NewMounter(pv *Provider) *Mounter {
	return &Mounter{Provider: pv}
}

// Surface returns the currently mounted surface, or nil.
func (mn *Mounter) Surface() *Surface {
	return mn.current
}

// Set mounts the given media. If it is the same as the current media
// and still mounted, the current surface is returned unchanged. Otherwise the current
// surface is released and the new one mounted. On load failure the
// previous surface has still been released and nothing is mounted.
func (mn *Mounter) Set(ctx context.Context, url string, kind Kinds) (*Surface, error) {
	if cur := mn.current; cur != nil && cur.URL == url && cur.Kind == kind && !cur.Released() {
		return cur, nil
	}
	if err := mn.Unmount(); err != nil {
		return nil, err
	}
	sf, err := mn.Provider.Mount(ctx, url, kind)
	if err != nil {
		return nil, err
	}
	mn.current = sf
	return sf, nil
}

// Unmount releases the current surface, if any.
func (mn *Mounter) Unmount() error {
	cur := mn.current
	mn.current = nil
	return cur.Release()
}
