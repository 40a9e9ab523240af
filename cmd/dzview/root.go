// seehuhn.de/go/deepzoom - navigation for multi-resolution tiled images
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package main

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"seehuhn.de/go/deepzoom/config"
	"seehuhn.de/go/deepzoom/gesture"
	"seehuhn.de/go/deepzoom/internal/buildinfo"
	"seehuhn.de/go/deepzoom/internal/profile"
	"seehuhn.de/go/deepzoom/surface"
	"seehuhn.de/go/deepzoom/viewer"
)

// globals holds the values of the persistent flags.
type globals struct {
	debug      bool
	cpuprofile string
	memprofile string
	configFile string
	size       string

	logger      *slog.Logger
	stopProfile func() error
}

func newRootCommand() *cobra.Command {
	g := &globals{}

	cmd := &cobra.Command{
		Use:           "dzview",
		Short:         "Navigate Deep Zoom images and collections",
		Version:       buildinfo.Version(),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level := slog.LevelInfo
			if g.debug {
				level = slog.LevelDebug
			}
			g.logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

			stop, err := profile.Start(g.cpuprofile, g.memprofile)
			if err != nil {
				return err
			}
			g.stopProfile = stop
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if g.stopProfile == nil {
				return nil
			}
			return g.stopProfile()
		},
	}
	cmd.SetVersionTemplate(buildinfo.Short("dzview") + "\n")

	flags := cmd.PersistentFlags()
	flags.BoolVar(&g.debug, "debug", false, "enable debug logging")
	flags.StringVar(&g.cpuprofile, "cpuprofile", "", "write CPU profile to `file`")
	flags.StringVar(&g.memprofile, "memprofile", "", "write memory profile to `file`")
	flags.StringVar(&g.configFile, "config", "", "read navigation settings from `file`")
	flags.StringVar(&g.size, "size", "800x600", "surface size in pixels, as `WxH`")

	cmd.AddCommand(
		newRegionsCommand(g),
		newReplayCommand(g),
		newRenderCommand(g),
		newWatchCommand(g),
	)
	return cmd
}

// session is a surface with a viewer, driven by a manual clock.
type session struct {
	img   *surface.Image
	v     *viewer.Viewer
	clock *gesture.ManualClock
}

// open creates a surface of the configured size and loads the given
// descriptor into it.
func (g *globals) open(path string) (*session, error) {
	cfg := config.Default()
	if g.configFile != "" {
		var err error
		cfg, err = config.Load(g.configFile)
		if err != nil {
			return nil, err
		}
	}
	w, h, err := parseSize(g.size)
	if err != nil {
		return nil, err
	}

	s := &session{
		img:   surface.New(w, h),
		clock: &gesture.ManualClock{},
	}
	opt := cfg.ViewerOptions(g.logger)
	opt.Gesture.Clock = s.clock
	s.v, err = viewer.New(s.img, opt)
	if err != nil {
		return nil, err
	}
	s.img.AddOpenListener(s.v)

	if err := s.img.Open(path); err != nil {
		return nil, err
	}
	return s, nil
}

func parseSize(s string) (width, height float64, err error) {
	ws, hs, ok := strings.Cut(s, "x")
	if ok {
		width, err = strconv.ParseFloat(ws, 64)
	}
	if ok && err == nil {
		height, err = strconv.ParseFloat(hs, 64)
	}
	if !ok || err != nil || !(width > 0) || !(height > 0) {
		return 0, 0, fmt.Errorf("invalid size %q, want WxH", s)
	}
	return width, height, nil
}
