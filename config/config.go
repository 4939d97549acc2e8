// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package config contains the configuration of a picture frame:
// the per-asset tuning of the frame mesh and the parameters of the
// frame instance, stored as TOML or YAML.
package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/xyzgallery/frames/base/iox/tomlx"
	"github.com/xyzgallery/frames/caption"
	"github.com/xyzgallery/frames/base/iox/yamlx"
	"github.com/xyzgallery/frames/frame"
	"github.com/xyzgallery/frames/math32"
	"github.com/xyzgallery/frames/surface"
	"github.com/xyzgallery/frames/xyz"
)

// Config is the main config struct.
type Config struct {

	// Frame has the tuning values of the frame mesh asset.
	Frame frame.Settings

	// Layout places the image and caption on the frame mesh.
	Layout frame.Layout

	// Instance has the parameters of the frame instance.
	Instance Instance
}

// Instance has the parameters of one frame instance.
type Instance struct {

	// ID identifies the frame.
	ID string

	// URL is the source of the media content.
	URL string

	// Kind is the kind of media content: image or video.
	Kind surface.Kinds

	// Caption is the text shown under the image.
	Caption string

	// CaptionFont is the path of a .ttf or .otf font for the caption.
	// If empty, a fixed Latin-1 bitmap face is used.
	CaptionFont string

	// CaptionSize is the caption font size in points.
	CaptionSize float32 `default:"16"`

	// Mesh is the path of the frame mesh file.
	Mesh string

	// RestPos is the wall-mounted position.
	RestPos math32.Vector3

	// RestEuler is the wall-mounted rotation in degrees.
	RestEuler math32.Vector3

	// RestScale is the uniform wall-mounted scale.
	RestScale float32 `default:"1"`
}

// New returns a new config with default values.
func New() *Config {
	cfg := &Config{}
	cfg.Defaults()
	return cfg
}

// Defaults sets default values.
func (cfg *Config) Defaults() {
	cfg.Frame.Defaults()
	cfg.Layout.Defaults()
	cfg.Instance.Defaults()
}

// Defaults sets default values.
func (in *Instance) Defaults() {
	in.ID = "frame"
	in.CaptionSize = 16
	in.RestScale = 1
}

// Rest returns the rest pose of the instance.
func (in *Instance) Rest() xyz.Pose {
	ps := xyz.NewPose(in.RestPos)
	ps.SetEulerRotation(in.RestEuler.X, in.RestEuler.Y, in.RestEuler.Z)
	if in.RestScale != 0 {
		ps.SetUniformScale(in.RestScale)
	}
	return ps
}

// CaptionStyle returns the caption style of the instance, with the
// face loaded from CaptionFont if set.
func (in *Instance) CaptionStyle() (*caption.Style, error) {
	st := &caption.Style{}
	st.Defaults()
	if in.CaptionFont == "" {
		return st, nil
	}
	face, err := caption.OpenFace(in.CaptionFont, float64(in.CaptionSize))
	if err != nil {
		return nil, err
	}
	st.Face = face
	return st, nil
}

// Params returns the frame parameters for this config.
func (cfg *Config) Params(onToggle func(id string)) frame.Params {
	return frame.Params{
		ID:       cfg.Instance.ID,
		URL:      cfg.Instance.URL,
		Kind:     cfg.Instance.Kind,
		Caption:  cfg.Instance.Caption,
		Layout:   &cfg.Layout,
		Settings: &cfg.Frame,
		Rest:     cfg.Instance.Rest(),
		OnToggle: onToggle,
	}
}

// Formats are the supported config file formats.
type Formats int32

const (
	TOML Formats = iota
	YAML
)

// FormatFromPath returns the format for the extension of the given file.
func FormatFromPath(filename string) (Formats, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".toml":
		return TOML, nil
	case ".yaml", ".yml":
		return YAML, nil
	}
	return TOML, fmt.Errorf("config: unsupported file type %q", filename)
}

// Open returns the config from the given file, with defaults for
// values the file does not set.
func Open(filename string) (*Config, error) {
	cfg := New()
	if err := cfg.Open(filename); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Open reads the given file into the config.
func (cfg *Config) Open(filename string) error {
	ft, err := FormatFromPath(filename)
	if err != nil {
		return err
	}
	if ft == YAML {
		err = yamlx.Open(cfg, filename)
	} else {
		err = tomlx.Open(cfg, filename)
	}
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

// Save writes the config to the given file.
func (cfg *Config) Save(filename string) error {
	ft, err := FormatFromPath(filename)
	if err != nil {
		return err
	}
	if ft == YAML {
		return yamlx.Save(cfg, filename)
	}
	return tomlx.Save(cfg, filename)
}
