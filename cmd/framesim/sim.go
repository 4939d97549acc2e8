// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/xyzgallery/frames/base/errors"
	"github.com/xyzgallery/frames/caption"
	"github.com/xyzgallery/frames/config"
	"github.com/xyzgallery/frames/events"
	"github.com/xyzgallery/frames/frame"
	"github.com/xyzgallery/frames/math32"
	"github.com/xyzgallery/frames/surface"
	"github.com/xyzgallery/frames/xyz"
)

// orbitCamera is a [frame.CameraSource] that slowly circles the origin.
type orbitCamera struct {
	radius float32
	height float32
	speed  float32
	t      float32
}

func (oc *orbitCamera) advance(dt float32) {
	oc.t += dt
}

func (oc *orbitCamera) Camera() xyz.Camera {
	ang := oc.t * oc.speed
	cam := xyz.Camera{Pose: xyz.NewPose(math32.Vec3(oc.radius*math32.Sin(ang), oc.height, oc.radius*math32.Cos(ang)))}
	cam.LookAt(math32.Vec3(0, oc.height, 0), math32.Vector3Y)
	return cam
}

// sim is one simulation run.
type sim struct {
	opts    *Options
	cfg     *config.Config
	lib     *xyz.Library
	device  *xyz.MemDevice
	mounter *surface.Mounter
	frame   *frame.Frame
	camera  *orbitCamera
	active  bool
}

func newSim(opts *Options, cfg *config.Config) *sim {
	dev := xyz.NewMemDevice(16)
	pv := surface.NewProvider(dev, &surface.FileImageLoader{MaxSize: surface.DefaultMaxSize}, &surface.ReisenVideoLoader{})
	return &sim{
		opts:    opts,
		cfg:     cfg,
		lib:     xyz.NewLibrary(),
		device:  dev,
		mounter: surface.NewMounter(pv),
		camera:  &orbitCamera{radius: 6, height: 1.6, speed: 0.1},
	}
}

func run(ctx context.Context, opts *Options) error {
	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}
	kind, err := mediaKind(cfg, opts)
	if err != nil {
		return err
	}
	cfg.Instance.Kind = kind
	sm := newSim(opts, cfg)
	if err := sm.load(ctx); err != nil {
		return err
	}
	defer sm.close()

	if !opts.Watch || opts.Config == "" {
		return sm.loop(ctx, nil)
	}
	g, gctx := errgroup.WithContext(ctx)
	reloads := make(chan *config.Config, 1)
	wctx, cancel := context.WithCancel(gctx)
	g.Go(func() error {
		return config.Watch(wctx, opts.Config, func(c *config.Config, err error) {
			if errors.Log(err) != nil {
				return
			}
			applyFlags(c, opts)
			select {
			case reloads <- c:
			case <-wctx.Done():
			}
		})
	})
	g.Go(func() error {
		defer cancel()
		return sm.loop(gctx, reloads)
	})
	return g.Wait()
}

// load loads the mesh and mounts the media concurrently, then
// creates the frame.
func (sm *sim) load(ctx context.Context) error {
	in := &sm.cfg.Instance
	var mesh *xyz.MeshRef
	var style *caption.Style
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		style, err = in.CaptionStyle()
		return err
	})
	g.Go(func() error {
		if _, err := sm.lib.Open(gctx, in.Mesh); err != nil {
			return err
		}
		var err error
		mesh, err = sm.lib.Instance(in.Mesh)
		return err
	})
	if in.URL != "" {
		g.Go(func() error {
			_, err := sm.mounter.Set(gctx, in.URL, in.Kind)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		errors.Log(sm.mounter.Unmount())
		return err
	}
	params := sm.cfg.Params(sm.toggle)
	params.Active = func() bool { return sm.active }
	params.CaptionStyle = style
	sm.frame = frame.New(params, mesh, sm.mounter.Surface())
	slog.Info("frame loaded", "id", sm.frame.ID, "mesh", in.Mesh, "url", in.URL, "kind", in.Kind, "geometry", sm.frame.Geometry())
	return nil
}

// toggle is the owner of the active state, answering toggle requests.
func (sm *sim) toggle(id string) {
	sm.active = !sm.active
	slog.Info("toggle", "id", id, "active", sm.active)
}

// click sends a pointer click to the frame, entering it first.
func (sm *sim) click() {
	fr := sm.frame
	events.Dispatch(events.NewPointer(events.MouseEnter, events.NoButton, fr.Current.Pos), &fr.Listeners)
	events.Dispatch(events.NewPointer(events.Click, events.Left, fr.Current.Pos), &fr.Listeners)
}

// reload applies a changed config to the running frame.
func (sm *sim) reload(ctx context.Context, cfg *config.Config) {
	fr := sm.frame
	fr.Settings = cfg.Frame
	fr.Layout = cfg.Layout
	in := cfg.Instance
	if in.URL != "" && (in.URL != fr.URL || in.Kind != fr.Kind || sm.mounter.Surface() == nil) {
		srf, err := sm.mounter.Set(ctx, in.URL, in.Kind)
		if errors.Log(err) == nil {
			errors.Log(fr.SetSurface(srf))
		}
	}
	sm.cfg = cfg
	slog.Info("config reloaded", "file", sm.opts.Config)
}

func (sm *sim) loop(ctx context.Context, reloads <-chan *config.Config) error {
	opts := sm.opts
	dt := 1 / float32(max(opts.FPS, 1))
	var ticker *time.Ticker
	if opts.Realtime || opts.Watch {
		ticker = time.NewTicker(time.Duration(float32(time.Second) * dt))
		defer ticker.Stop()
	}
	fr := sm.frame
	for i := 0; opts.Ticks <= 0 || i < opts.Ticks; i++ {
		if ticker != nil {
			select {
			case <-ctx.Done():
				return nil
			case cfg := <-reloads:
				sm.reload(ctx, cfg)
			case <-ticker.C:
			}
		} else if ctx.Err() != nil {
			return nil
		}
		if i == opts.ActivateAt || i == opts.ReleaseAt {
			sm.click()
		}
		sm.camera.advance(dt)
		if srf := fr.Surface(); srf != nil {
			if _, err := srf.Advance(); errors.Log(err) != nil {
				errors.Log(sm.mounter.Unmount())
			}
		}
		tgt := fr.UpdateFrom(dt, sm.camera)
		if opts.LogEvery > 0 && i%opts.LogEvery == 0 {
			slog.Info("tick", "n", i, "active", sm.active, "hovered", fr.Hovered(), "pos", fr.Current.Pos, "scale", fr.Current.Scale.X, "distance", frame.Distance(fr.Current, tgt))
		}
		slog.Debug("pose", "n", i, "pose", fr.Current)
	}
	return nil
}

func (sm *sim) close() {
	if sm.frame != nil {
		errors.Log(sm.frame.Close())
	}
	errors.Log(sm.mounter.Unmount())
	created, released := sm.device.Counts()
	slog.Info("done", "materials", created, "released", released, "live", sm.device.Live())
}
