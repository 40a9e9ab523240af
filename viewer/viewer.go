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

// Package viewer connects a multi-scale surface to the navigation code.
//
// A [Viewer] owns the viewport state, the region index and the gesture
// controller for one surface.  Input events are only acted upon after the
// surface has reported that an image was opened successfully; while a new
// source is loading, or after loading failed, all input is ignored.
package viewer

import (
	"io"
	"log/slog"

	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/deepzoom"
	"seehuhn.de/go/deepzoom/focus"
	"seehuhn.de/go/deepzoom/gesture"
	"seehuhn.de/go/deepzoom/logical"
	"seehuhn.de/go/deepzoom/region"
	"seehuhn.de/go/deepzoom/viewport"
)

// Options configure a [Viewer].  The zero value selects the defaults.
type Options struct {
	// Bounds gives the zoom range.  If Bounds.Max is zero,
	// [viewport.DefaultBounds] is used.
	Bounds viewport.Bounds

	// HomeWidth is the viewport width of the home view.
	// If zero, [viewport.DefaultHomeWidth] is used.
	HomeWidth float64

	// Padding is the margin factor used when focusing a region.
	// If zero, [focus.DefaultPadding] is used.
	Padding float64

	Gesture gesture.Options

	// Logger receives lifecycle messages.  If nil, nothing is logged.
	Logger *slog.Logger
}

// Viewer handles the input for one surface.
type Viewer struct {
	surface deepzoom.Surface
	st      *viewport.State
	idx     *region.Index
	nav     *focus.Navigator
	ctl     *gesture.Controller
	log     *slog.Logger

	attached bool
}

// New creates a viewer for s.  The viewer starts detached; call
// [Viewer.ImageOpenSucceeded] once the surface shows an image.
func New(s deepzoom.Surface, opt *Options) (*Viewer, error) {
	if opt == nil {
		opt = &Options{}
	}
	bounds := opt.Bounds
	if bounds.Max == 0 {
		bounds = viewport.DefaultBounds()
	}
	homeWidth := opt.HomeWidth
	if homeWidth == 0 {
		homeWidth = viewport.DefaultHomeWidth
	}
	logger := opt.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	st, err := viewport.New(s, bounds, homeWidth, nil)
	if err != nil {
		return nil, err
	}
	idx := region.NewIndex(st.Focus())
	nav := focus.New(st, opt.Padding)

	v := &Viewer{
		surface: s,
		st:      st,
		idx:     idx,
		nav:     nav,
		ctl:     gesture.New(st, idx, nav, &opt.Gesture),
		log:     logger,
	}
	return v, nil
}

// Attached reports whether input events are currently handled.
func (v *Viewer) Attached() bool {
	return v.attached
}

// SourceChanged must be called when the surface starts loading a new image.
// Input handling stops until the next call to ImageOpenSucceeded, and any
// gesture in progress is abandoned.
func (v *Viewer) SourceChanged() {
	v.ctl.Reset()
	if v.attached {
		v.log.Debug("input detached")
	}
	v.attached = false
}

// ImageOpenSucceeded rebuilds the region index from the surface and starts
// handling input.
func (v *Viewer) ImageOpenSucceeded() {
	v.Rebuild()
	if !v.attached {
		v.log.Debug("input attached")
	}
	v.attached = true
}

// ImageOpenFailed records that the surface could not open its image.
// The viewer stays detached.
func (v *Viewer) ImageOpenFailed(err error) {
	v.ctl.Reset()
	v.attached = false
	v.log.Warn("cannot open image", "error", err)
}

// Rebuild re-reads the sub-images of the surface.  If the focused region
// no longer exists, the focus is cleared and true is returned.
func (v *Viewer) Rebuild() bool {
	dropped := v.idx.RebuildFromSubImages(v.surface.SubImages())
	v.log.Debug("regions rebuilt", "count", v.idx.Len(), "focus_dropped", dropped)
	return dropped
}

// PointerDown forwards a button press to the gesture controller.
func (v *Viewer) PointerDown(p vec.Vec2) {
	if !v.attached {
		return
	}
	v.ctl.PointerDown(p)
}

// PointerMove forwards a pointer movement to the gesture controller.
func (v *Viewer) PointerMove(p vec.Vec2) {
	if !v.attached {
		return
	}
	v.ctl.PointerMove(p)
}

// PointerUp forwards a button release to the gesture controller.
func (v *Viewer) PointerUp(p vec.Vec2) gesture.Action {
	if !v.attached {
		return gesture.NoAction
	}
	a := v.ctl.PointerUp(p)
	if a == gesture.Focused {
		id, _ := v.st.Focus().Get()
		v.log.Debug("region focused", "id", id, "zoom", v.st.Zoom())
	}
	return a
}

// Wheel forwards a wheel event to the gesture controller and returns the
// zoom factor which was applied.
func (v *Viewer) Wheel(delta float64, p vec.Vec2) float64 {
	if !v.attached {
		return 1
	}
	return v.ctl.Wheel(delta, p)
}

// GoHome shows the complete image.
func (v *Viewer) GoHome() {
	v.nav.GoHome()
}

// FocusRegion frames the region with the given id.  It reports whether the
// region exists.
func (v *Viewer) FocusRegion(id int) bool {
	r, ok := v.idx.Lookup(id)
	if !ok {
		return false
	}
	v.nav.FocusOn(r, logical.UnitRect)
	return true
}

// Regions returns the regions of the current image, in collection order.
func (v *Viewer) Regions() []region.Region {
	return v.idx.Regions()
}

// State returns the viewport state of the viewer.
func (v *Viewer) State() *viewport.State {
	return v.st
}

// Snapshot describes the navigation state at one point in time.
type Snapshot struct {
	Origin vec.Vec2
	Width  float64
	Zoom   float64

	// Focused is the id of the focused region, valid if HasFocus is true.
	Focused  int
	HasFocus bool

	Gesture  gesture.State
	Attached bool
}

// Snapshot returns the current navigation state.
func (v *Viewer) Snapshot() Snapshot {
	id, ok := v.st.Focus().Get()
	return Snapshot{
		Origin:   v.st.Origin(),
		Width:    v.st.Width(),
		Zoom:     v.st.Zoom(),
		Focused:  id,
		HasFocus: ok,
		Gesture:  v.ctl.State(),
		Attached: v.attached,
	}
}
