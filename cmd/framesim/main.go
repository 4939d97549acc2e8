// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command framesim runs a picture frame headlessly: it loads the frame
// mesh and media, then simulates ticks of a camera and pointer
// interaction, logging the frame pose as it animates.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/xyzgallery/frames/config"
	"github.com/xyzgallery/frames/frame"
	"github.com/xyzgallery/frames/surface"
	"github.com/xyzgallery/frames/xyz"
)

// Options are the command line options of a simulation run.
type Options struct {
	Config      string
	Mesh        string
	URL         string
	Kind        string
	Caption     string
	CaptionFont string
	Ticks       int
	FPS         int
	ActivateAt  int
	ReleaseAt   int
	LogEvery    int
	Realtime    bool
	Watch       bool
	Verbose     bool
}

func main() {
	cmd := newRootCmd(&Options{})
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := cmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

// newRootCmd returns the root command, with its flags bound to opts.
func newRootCmd(opts *Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "framesim [config.toml|config.yaml]",
		Short: "Simulate an interactive picture frame",
		Long: `framesim loads a frame mesh and its image or video content, then
simulates ticks: the pointer hovers the frame, clicks it into inspection in
front of the camera, and clicks it back to its rest pose.`,
		Args: cobra.MaximumNArgs(1),
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			setupLogging(opts.Verbose)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				opts.Config = args[0]
			}
			return run(cmd.Context(), opts)
		},
	}
	fl := cmd.Flags()
	fl.StringVar(&opts.Mesh, "mesh", "", "frame mesh file (.obj), overrides the config")
	fl.StringVar(&opts.URL, "url", "", "media file, overrides the config")
	fl.StringVar(&opts.Kind, "kind", "", "media kind: image, video, or auto to detect from the file")
	fl.StringVar(&opts.Caption, "caption", "", "caption text, overrides the config")
	fl.StringVar(&opts.CaptionFont, "caption-font", "", "caption font file (.ttf or .otf), overrides the config")
	fl.IntVar(&opts.Ticks, "ticks", 240, "number of ticks to simulate")
	fl.IntVar(&opts.FPS, "fps", 60, "ticks per second")
	fl.IntVar(&opts.ActivateAt, "activate-at", 30, "tick at which the frame is clicked into inspection; -1 for never")
	fl.IntVar(&opts.ReleaseAt, "release-at", 150, "tick at which the frame is clicked back; -1 for never")
	fl.IntVar(&opts.LogEvery, "log-every", 15, "log the frame pose every this many ticks")
	fl.BoolVar(&opts.Realtime, "realtime", false, "run ticks at the wall clock rate")
	fl.BoolVar(&opts.Watch, "watch", false, "reload the config file when it changes (implies --realtime)")
	cmd.PersistentFlags().StringVarP(&opts.Config, "config", "c", "", "config file (.toml or .yaml); the argument of the root command takes precedence")
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "log debug messages")

	info := &cobra.Command{
		Use:   "info <mesh.obj>",
		Short: "Display the frame geometry derived from a mesh",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInfo(cmd.Context(), cmd.OutOrStdout(), opts, args[0])
		},
	}
	cmd.AddCommand(info)
	return cmd
}

func setupLogging(verbose bool) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}

// loadConfig returns the config from the options: the config file if
// any, with flag overrides applied.
func loadConfig(opts *Options) (*config.Config, error) {
	cfg := config.New()
	if opts.Config != "" {
		if err := cfg.Open(opts.Config); err != nil {
			return nil, err
		}
	}
	applyFlags(cfg, opts)
	if cfg.Instance.Mesh == "" {
		return nil, fmt.Errorf("no frame mesh: use --mesh or set Instance.Mesh in the config")
	}
	return cfg, nil
}

func applyFlags(cfg *config.Config, opts *Options) {
	if opts.Mesh != "" {
		cfg.Instance.Mesh = opts.Mesh
	}
	if opts.URL != "" {
		cfg.Instance.URL = opts.URL
	}
	if opts.Caption != "" {
		cfg.Instance.Caption = opts.Caption
	}
	if opts.CaptionFont != "" {
		cfg.Instance.CaptionFont = opts.CaptionFont
	}
}

// mediaKind returns the kind of the configured media, detecting it
// from the file header when the kind option is auto.
func mediaKind(cfg *config.Config, opts *Options) (surface.Kinds, error) {
	switch opts.Kind {
	case "":
		return cfg.Instance.Kind, nil
	case "auto":
		return surface.KindFromFile(cfg.Instance.URL)
	}
	return surface.ParseKind(opts.Kind)
}

func runInfo(ctx context.Context, w io.Writer, opts *Options, path string) error {
	cfg := config.New()
	if opts.Config != "" {
		if err := cfg.Open(opts.Config); err != nil {
			return err
		}
	}
	ms, err := xyz.NewLibrary().Open(ctx, path)
	if err != nil {
		return err
	}
	bb := ms.BBox()
	gm := frame.DeriveGeometry(bb, cfg.Layout)
	fmt.Fprintf(w, "Mesh:       %s\n", ms.Name)
	fmt.Fprintf(w, "Vertices:   %d\n", ms.NumVertex())
	fmt.Fprintf(w, "Triangles:  %d\n", len(ms.Index)/3)
	fmt.Fprintf(w, "Bounds:     %v - %v\n", bb.Min, bb.Max)
	fmt.Fprintf(w, "Image:      %.3f x %.3f at %v\n", gm.ImageWidth, gm.ImageHeight, gm.ImagePos)
	fmt.Fprintf(w, "Caption at: %v\n", gm.CaptionPos)
	return nil
}
