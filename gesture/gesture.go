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

// Package gesture turns pointer and wheel events into viewport changes.
//
// A [Controller] is a small state machine.  Pressing the button moves it
// from [Idle] to [PointerDown].  Moving the pointer further than the drag
// threshold from the point where the button was pressed starts a drag, and
// every following move pans the viewport.  Releasing the button without
// dragging is a click: clicking a region focuses it, clicking anywhere else
// (or clicking the focused region again) returns to the home view.
// Clicks which follow the previous release within the double-click
// interval are ignored.
//
// The controller is not safe for concurrent use.  Events must be delivered
// in order, from a single goroutine.
package gesture

import (
	"math"
	"strconv"
	"time"

	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/deepzoom"
	"seehuhn.de/go/deepzoom/focus"
	"seehuhn.de/go/deepzoom/logical"
	"seehuhn.de/go/deepzoom/region"
	"seehuhn.de/go/deepzoom/viewport"
)

// State is the state of the pointer state machine.
type State int

// These are the states of a [Controller].
const (
	Idle State = iota
	PointerDown
	Dragging
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case PointerDown:
		return "down"
	case Dragging:
		return "dragging"
	default:
		return "State(" + strconv.Itoa(int(s)) + ")"
	}
}

// Action reports what a pointer release did.
type Action int

// These are the possible results of [Controller.PointerUp].
const (
	// NoAction is returned if the release was ignored.
	NoAction Action = iota

	// Suppressed is returned if the release came too soon after the
	// previous one.
	Suppressed

	// DragEnded is returned at the end of a drag.
	DragEnded

	// Focused is returned if a region was focused.
	Focused

	// WentHome is returned if the home view was restored.
	WentHome
)

func (a Action) String() string {
	switch a {
	case NoAction:
		return "none"
	case Suppressed:
		return "suppressed"
	case DragEnded:
		return "drag"
	case Focused:
		return "focus"
	case WentHome:
		return "home"
	default:
		return "Action(" + strconv.Itoa(int(a)) + ")"
	}
}

// Default values for [Options].
const (
	DefaultDragThreshold = 5.0
	DefaultDoubleClick   = 300 * time.Millisecond
	DefaultWheelIn       = 1.5
	DefaultWheelOut      = 0.5
)

// Options control the behaviour of a [Controller].
// Zero fields are replaced by the defaults.
type Options struct {
	// DragThreshold is the distance in pixels, along either axis, which
	// the pointer must move away from the press position before a drag
	// starts.
	DragThreshold float64

	// DoubleClick is the interval after a release during which a second
	// release is ignored.
	DoubleClick time.Duration

	// WheelIn and WheelOut are the zoom factors for wheel events with
	// non-negative and negative delta.
	WheelIn, WheelOut float64

	// Capturer, if set, is asked to capture the pointer while the button
	// is held down.
	Capturer deepzoom.Capturer

	// Clock is used to time clicks.  If nil, the system clock is used.
	Clock Clock
}

// Controller dispatches pointer events to the viewport.
type Controller struct {
	st  *viewport.State
	idx *region.Index
	nav *focus.Navigator
	opt Options

	state         State
	anchor        vec.Vec2
	originAtStart vec.Vec2

	// lastPos is the pointer position of the most recent move event.
	lastPos vec.Vec2
	hasPos  bool

	hover   region.Region
	hasOver bool

	lastClick time.Time
	clicked   bool
}

// New returns a controller in the [Idle] state.  The region index is used
// to find the region under the pointer; it may be shared with the code
// which rebuilds it.  opt may be nil.
func New(st *viewport.State, idx *region.Index, nav *focus.Navigator, opt *Options) *Controller {
	c := &Controller{
		st:  st,
		idx: idx,
		nav: nav,
	}
	if opt != nil {
		c.opt = *opt
	}
	if c.opt.DragThreshold <= 0 {
		c.opt.DragThreshold = DefaultDragThreshold
	}
	if c.opt.DoubleClick <= 0 {
		c.opt.DoubleClick = DefaultDoubleClick
	}
	if c.opt.WheelIn <= 0 {
		c.opt.WheelIn = DefaultWheelIn
	}
	if c.opt.WheelOut <= 0 {
		c.opt.WheelOut = DefaultWheelOut
	}
	if c.opt.Clock == nil {
		c.opt.Clock = SystemClock
	}
	return c
}

// State returns the current state of the controller.
func (c *Controller) State() State {
	return c.state
}

// Hover returns the id of the region under the pointer, as found by the
// most recent move event.
func (c *Controller) Hover() (int, bool) {
	return c.hover.ID, c.hasOver
}

// PointerDown handles a press of the pointer button at p.
// Presses are ignored unless the controller is idle.
func (c *Controller) PointerDown(p vec.Vec2) {
	if c.state != Idle {
		return
	}
	if c.opt.Capturer != nil {
		c.opt.Capturer.CaptureMouse()
	}
	c.anchor = p
	c.originAtStart = c.st.Origin()
	c.state = PointerDown
}

// PointerMove handles a pointer movement to p.  The region under the
// pointer is updated on every move.  While the button is held down, the
// move may start a drag, and during a drag the viewport follows the
// pointer.
func (c *Controller) PointerMove(p vec.Vec2) {
	if c.state == PointerDown && c.beyondThreshold(p) {
		c.state = Dragging
	}

	c.lastPos = p
	c.hasPos = true
	c.hover, c.hasOver = c.idx.HitTest(c.st.ToLogical(p))

	if c.state == Dragging {
		c.st.Pan(p, c.anchor, c.originAtStart)
	}
}

func (c *Controller) beyondThreshold(p vec.Vec2) bool {
	return math.Abs(p.X-c.anchor.X) > c.opt.DragThreshold ||
		math.Abs(p.Y-c.anchor.Y) > c.opt.DragThreshold
}

// PointerUp handles a release of the pointer button and returns what the
// release did.  Releases while the controller is idle are ignored.
func (c *Controller) PointerUp(p vec.Vec2) Action {
	if c.state == Idle {
		return NoAction
	}
	if c.opt.Capturer != nil {
		c.opt.Capturer.ReleaseMouseCapture()
	}

	now := c.opt.Clock.Now()
	action := Suppressed
	if !c.clicked || now.Sub(c.lastClick) > c.opt.DoubleClick {
		action = c.resolve()
	}

	c.state = Idle
	c.lastClick = now
	c.clicked = true
	return action
}

func (c *Controller) resolve() Action {
	if c.state == Dragging {
		return DragEnded
	}
	if c.hasOver && !c.st.Focus().Is(c.hover.ID) {
		// The index may have been rebuilt since the last move.
		if r, ok := c.idx.Lookup(c.hover.ID); ok {
			c.nav.FocusOn(r, logical.UnitRect)
			return Focused
		}
	}
	c.nav.GoHome()
	return WentHome
}

// Wheel handles a wheel event at p.  Non-negative deltas zoom in, negative
// deltas zoom out, by a fixed factor.  The zoom is anchored at the pointer
// position of the most recent move event, or at p if there has been no
// move yet.  Wheel events during a drag are ignored.
//
// The zoom factor which was applied after clamping is returned.
func (c *Controller) Wheel(delta float64, p vec.Vec2) float64 {
	if c.state == Dragging {
		return 1
	}
	factor := c.opt.WheelIn
	if delta < 0 {
		factor = c.opt.WheelOut
	}
	anchor := p
	if c.hasPos {
		anchor = c.lastPos
	}
	return c.st.ZoomAbout(factor, anchor)
}

// Reset abandons any gesture in progress and forgets the pointer position.
// The time of the last click is kept.
func (c *Controller) Reset() {
	if c.state != Idle && c.opt.Capturer != nil {
		c.opt.Capturer.ReleaseMouseCapture()
	}
	c.state = Idle
	c.hasPos = false
	c.hover, c.hasOver = region.Region{}, false
}
