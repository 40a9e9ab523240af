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

// Package focus frames a region of the image so that it fills the surface.
package focus

import (
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/deepzoom/logical"
	"seehuhn.de/go/deepzoom/region"
	"seehuhn.de/go/deepzoom/viewport"
)

// DefaultPadding is the factor by which the framed width is enlarged to
// leave a margin around the region.
const DefaultPadding = 1.3

// Navigator moves the viewport to regions and back home.
type Navigator struct {
	st      *viewport.State
	padding float64
}

// New returns a navigator for the given viewport.  If padding is not
// positive, [DefaultPadding] is used.
func New(st *viewport.State, padding float64) *Navigator {
	if !(padding > 0) {
		padding = DefaultPadding
	}
	return &Navigator{st: st, padding: padding}
}

// Padding returns the padding factor of the navigator.
func (n *Navigator) Padding() float64 {
	return n.padding
}

// Frame computes the viewport which shows the focal part of r.
// The focal rectangle is relative to r: [logical.UnitRect] selects all of r.
//
// If the surface is wider than the focal area, the width is enlarged and the
// area is centred horizontally.  Otherwise only the vertical position is
// adjusted.  The result is then padded on all sides.
func (n *Navigator) Frame(r region.Region, focal rect.Rect) viewport.Target {
	fr := logical.MapFocal(r.Rect, focal)

	width := fr.Dx()
	origin := vec.Vec2{X: fr.LLx, Y: fr.LLy}

	sar := n.st.Size().AspectRatio()
	far := logical.AspectRatio(fr)
	if sar > far {
		width = (sar / far) * fr.Dx()
		origin.X += (fr.Dx() - width) / 2
	} else {
		h := (far / sar) * fr.Dy()
		origin.Y += (fr.Dy() - h) / 2
	}

	d := width*n.padding - width
	width += d
	origin.X -= d / 2
	origin.Y -= d / (2 * sar)

	return viewport.Target{Origin: origin, Width: width}
}

// FocusOn moves the viewport to the focal part of r and marks r as focused.
func (n *Navigator) FocusOn(r region.Region, focal rect.Rect) {
	n.st.Apply(n.Frame(r, focal))
	n.st.Focus().Set(r.ID)
}

// GoHome shows the complete image and clears the focus.
func (n *Navigator) GoHome() {
	n.st.GoHome()
}

// Focused returns the id of the focused region.
func (n *Navigator) Focused() (int, bool) {
	return n.st.Focus().Get()
}
