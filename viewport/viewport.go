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

// Package viewport implements the mutable viewport of a deep zoom surface:
// panning, zooming within bounds, and returning to the home view.
//
// The viewport origin and width are stored in the surface.  State adds the
// zoom level, which is measured relative to the home width, and keeps it
// within the configured bounds.  Every operation which moves the viewport
// clears the focused region.
package viewport

import (
	"golang.org/x/exp/constraints"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/deepzoom"
	"seehuhn.de/go/deepzoom/region"
)

// Default navigation parameters.
const (
	DefaultZoomMin   = 0.8
	DefaultZoomMax   = 40.0
	DefaultHomeWidth = 1.0
)

// Bounds holds the current zoom level and its permitted range.
// Zoom levels are multiplicative: a level of 2 shows half the home width.
type Bounds struct {
	Min, Max float64
	Current  float64
}

// DefaultBounds returns the bounds used when nothing else is configured.
func DefaultBounds() Bounds {
	return Bounds{Min: DefaultZoomMin, Max: DefaultZoomMax, Current: 1}
}

// Check verifies that the bounds are usable.
func (b Bounds) Check() error {
	if !(b.Min > 0) {
		return &deepzoom.ConfigError{Field: "zoom minimum", Value: b.Min, Reason: "must be positive"}
	}
	if !(b.Max >= b.Min) {
		return &deepzoom.ConfigError{Field: "zoom maximum", Value: b.Max, Reason: "must not be smaller than the minimum"}
	}
	if b.Min > 1 || b.Max < 1 {
		return &deepzoom.ConfigError{Field: "zoom range", Value: b.Min, Reason: "must include the home zoom level 1"}
	}
	if !(b.Current >= b.Min && b.Current <= b.Max) {
		return &deepzoom.ConfigError{Field: "zoom level", Value: b.Current, Reason: "outside the zoom range"}
	}
	return nil
}

// Clamp restricts z to the range of the bounds.
func (b Bounds) Clamp(z float64) float64 {
	return clamp(z, b.Min, b.Max)
}

// Target is a viewport to be applied in one step.
type Target struct {
	Origin vec.Vec2
	Width  float64
}

// State is the viewport of a surface together with its zoom bounds.
type State struct {
	surface   deepzoom.Surface
	bounds    Bounds
	homeWidth float64
	focus     *region.Focus
}

// New creates the viewport state for a surface and moves the surface to the
// home view.  The focus is cleared whenever the viewport is moved; it may be
// nil if no regions are used.
func New(s deepzoom.Surface, bounds Bounds, homeWidth float64, focus *region.Focus) (*State, error) {
	if s == nil {
		return nil, deepzoom.ErrNoSurface
	}
	if err := bounds.Check(); err != nil {
		return nil, err
	}
	if !(homeWidth > 0) {
		return nil, &deepzoom.ConfigError{Field: "home width", Value: homeWidth, Reason: "must be positive"}
	}
	if focus == nil {
		focus = &region.Focus{}
	}

	st := &State{
		surface:   s,
		bounds:    bounds,
		homeWidth: homeWidth,
		focus:     focus,
	}
	st.surface.SetViewportWidth(homeWidth)
	st.surface.SetViewportOrigin(vec.Vec2{})
	return st, nil
}

// Surface returns the surface controlled by st.
func (st *State) Surface() deepzoom.Surface {
	return st.surface
}

// Focus returns the focus record which is cleared by viewport changes.
func (st *State) Focus() *region.Focus {
	return st.focus
}

// Origin returns the logical point shown at the top-left corner.
func (st *State) Origin() vec.Vec2 {
	return st.surface.ViewportOrigin()
}

// Width returns the viewport width in logical units.
func (st *State) Width() float64 {
	return st.surface.ViewportWidth()
}

// Size returns the size of the surface in pixels.
func (st *State) Size() deepzoom.Size {
	return st.surface.ActualSize()
}

// Bounds returns the zoom bounds, including the current zoom level.
func (st *State) Bounds() Bounds {
	return st.bounds
}

// Zoom returns the current zoom level.
func (st *State) Zoom() float64 {
	return st.bounds.Current
}

// HomeWidth returns the viewport width of the home view.
func (st *State) HomeWidth() float64 {
	return st.homeWidth
}

// ToLogical converts an element point to logical coordinates under the
// current viewport, using the projection of the surface.
func (st *State) ToLogical(p vec.Vec2) vec.Vec2 {
	return st.surface.ElementToLogicalPoint(p)
}

// Pan moves the viewport so that the logical point which was under anchor
// when the drag started is now under focal.  originAtStart is the viewport
// origin recorded at the start of the drag.  Both axes are scaled by the
// viewport width.
func (st *State) Pan(focal, anchor, originAtStart vec.Vec2) {
	st.focus.Clear()

	size := st.Size()
	width := st.Width()
	st.surface.SetViewportOrigin(vec.Vec2{
		X: originAtStart.X - ((focal.X-anchor.X)/size.Width)*width,
		Y: originAtStart.Y - ((focal.Y-anchor.Y)/size.Height)*width,
	})
}

// ZoomAbout multiplies the zoom level by factor, keeping the element point
// p fixed on screen.  The new zoom level is clamped to the bounds, and the
// factor which was actually applied is returned.
func (st *State) ZoomAbout(factor float64, p vec.Vec2) float64 {
	st.focus.Clear()

	current := st.bounds.Current
	next := st.bounds.Clamp(current * factor)
	applied := next / current

	q := st.ToLogical(p)
	st.surface.ZoomAboutLogicalPoint(applied, q.X, q.Y)
	st.bounds.Current = next
	return applied
}

// GoHome shows the complete image at zoom level 1.
func (st *State) GoHome() {
	st.focus.Clear()
	st.surface.SetViewportWidth(st.homeWidth)
	st.surface.SetViewportOrigin(vec.Vec2{})
	st.bounds.Current = 1
}

// Apply moves the viewport to t and sets the zoom level to match the new
// width.  If the zoom level for t lies outside the bounds, the width is
// changed to the nearest allowed one, keeping the center of t in place.
// The focus is left unchanged.
func (st *State) Apply(t Target) {
	want := st.homeWidth / t.Width
	zoom := st.bounds.Clamp(want)
	if zoom != want {
		width := st.homeWidth / zoom
		d := width - t.Width
		t.Origin.X -= d / 2
		if size := st.Size(); !size.IsEmpty() {
			t.Origin.Y -= d / (2 * size.AspectRatio())
		}
		t.Width = width
	}

	st.surface.SetViewportOrigin(t.Origin)
	st.surface.SetViewportWidth(t.Width)
	st.bounds.Current = zoom
}

func clamp[T constraints.Float](x, lo, hi T) T {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
