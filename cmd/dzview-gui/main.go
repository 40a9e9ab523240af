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

// Dzview-gui shows a Deep Zoom image or collection in a window.
//
// Drag to pan, use the mouse wheel to zoom, click a region to focus it and
// click again to return to the home view.  H goes home, Q or Escape quits.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/hajimehoshi/ebiten/v2"

	"seehuhn.de/go/deepzoom/config"
	"seehuhn.de/go/deepzoom/surface"
	"seehuhn.de/go/deepzoom/viewer"
)

var (
	configFile = flag.String("config", "", "read navigation settings from `file`")
	debug      = flag.Bool("debug", false, "enable debug logging")
	cacheSize  = flag.Int("cache", 32, "number of pyramid levels kept in memory")
	width      = flag.Int("width", 1024, "initial window width")
	height     = flag.Int("height", 768, "initial window height")
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [options] file.dzc|file.dzi\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() != 1 || *width <= 0 || *height <= 0 {
		flag.Usage()
		os.Exit(2)
	}

	if err := run(flag.Arg(0)); err != nil {
		fmt.Fprintln(os.Stderr, "dzview-gui:", err)
		os.Exit(1)
	}
}

func run(path string) error {
	level := slog.LevelInfo
	if *debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	cfg := config.Default()
	if *configFile != "" {
		var err error
		cfg, err = config.Load(*configFile)
		if err != nil {
			return err
		}
	}

	img := surface.New(float64(*width), float64(*height))
	v, err := viewer.New(img, cfg.ViewerOptions(logger))
	if err != nil {
		return err
	}
	img.AddOpenListener(v)
	if err := img.Open(path); err != nil {
		return err
	}

	g := newGame(img, v, surface.NewRenderer(surface.FileLoader{}, *cacheSize), logger)

	ebiten.SetWindowSize(*width, *height)
	ebiten.SetWindowTitle(path + " - dzview")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	return ebiten.RunGame(g)
}
