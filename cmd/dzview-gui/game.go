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

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/deepzoom"
	"seehuhn.de/go/deepzoom/surface"
	"seehuhn.de/go/deepzoom/viewer"
)

type game struct {
	img *surface.Image
	v   *viewer.Viewer
	r   *surface.Renderer
	log *slog.Logger

	cursor    vec.Vec2
	hasCursor bool

	frame     *ebiten.Image
	drawn     viewer.Snapshot
	drawnSize deepzoom.Size
	valid     bool
	renderErr error
}

func newGame(img *surface.Image, v *viewer.Viewer, r *surface.Renderer, log *slog.Logger) *game {
	return &game{img: img, v: v, r: r, log: log}
}

// inputState holds the input polled for a single frame.
type inputState struct {
	quit bool
	home bool

	cursor   vec.Vec2
	pressed  bool
	released bool
	wheelY   float64
}

func pollInput() inputState {
	_, wheelY := ebiten.Wheel()
	mx, my := ebiten.CursorPosition()
	return inputState{
		quit: inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape),
		home: inpututil.IsKeyJustPressed(ebiten.KeyH),

		cursor:   vec.Vec2{X: float64(mx), Y: float64(my)},
		pressed:  inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft),
		released: inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft),
		wheelY:   wheelY,
	}
}

func (g *game) Update() error {
	in := pollInput()
	if in.quit {
		return ebiten.Termination
	}
	g.handleInput(in)
	g.refresh()
	return nil
}

// handleInput forwards the input of one frame to the viewer, in the order
// move, press, wheel, release.
func (g *game) handleInput(in inputState) {
	if in.home {
		g.v.GoHome()
	}
	if !g.hasCursor || in.cursor != g.cursor {
		g.cursor, g.hasCursor = in.cursor, true
		g.v.PointerMove(in.cursor)
	}
	if in.pressed {
		g.v.PointerDown(in.cursor)
	}
	if in.wheelY != 0 {
		g.v.Wheel(in.wheelY, in.cursor)
	}
	if in.released {
		a := g.v.PointerUp(in.cursor)
		g.log.Debug("pointer up", "action", a)
	}
}

// refresh re-renders the surface if the view has changed since the last
// frame.
func (g *game) refresh() {
	snap := g.v.Snapshot()
	size := g.img.ActualSize()
	if g.valid && snap == g.drawn && size == g.drawnSize {
		return
	}
	g.drawn, g.drawnSize, g.valid = snap, size, true

	rgba, err := g.r.Render(g.img)
	if err != nil {
		if g.renderErr == nil || err.Error() != g.renderErr.Error() {
			g.log.Error("cannot render", "error", err)
		}
		g.renderErr = err
		return
	}
	g.renderErr = nil

	b := rgba.Bounds()
	if g.frame == nil || g.frame.Bounds().Size() != b.Size() {
		if g.frame != nil {
			g.frame.Deallocate()
		}
		g.frame = ebiten.NewImage(b.Dx(), b.Dy())
	}
	g.frame.WritePixels(rgba.Pix)
}

func (g *game) Draw(screen *ebiten.Image) {
	if g.frame != nil {
		screen.DrawImage(g.frame, nil)
	}

	msg := fmt.Sprintf("zoom %.3g", g.drawn.Zoom)
	if g.drawn.HasFocus {
		msg += fmt.Sprintf("  region %d", g.drawn.Focused)
	}
	if !g.drawn.Attached {
		msg += "  (no image)"
	}
	if g.renderErr != nil {
		msg += "\n" + g.renderErr.Error()
	}
	ebitenutil.DebugPrint(screen, msg)
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	want := deepzoom.Size{Width: float64(outsideWidth), Height: float64(outsideHeight)}
	if want.IsEmpty() {
		return outsideWidth, outsideHeight
	}
	if g.img.ActualSize() != want {
		g.img.Resize(want.Width, want.Height)
	}
	return outsideWidth, outsideHeight
}

var _ ebiten.Game = (*game)(nil)
