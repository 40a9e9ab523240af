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

package viewport

import (
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/deepzoom"
	"seehuhn.de/go/deepzoom/logical"
	"seehuhn.de/go/deepzoom/region"
	"seehuhn.de/go/deepzoom/surface"
)

var approx = cmpopts.EquateApprox(0, 1e-9)

func newTestState(t *testing.T) (*State, *surface.Image) {
	t.Helper()
	img := surface.New(800, 600)
	img.SetViewportWidth(3)
	img.SetViewportOrigin(vec.Vec2{X: 5, Y: 5})
	st, err := New(img, DefaultBounds(), DefaultHomeWidth, nil)
	if err != nil {
		t.Fatal(err)
	}
	return st, img
}

func TestNew(t *testing.T) {
	st, img := newTestState(t)
	if img.ViewportWidth() != 1 || img.ViewportOrigin() != (vec.Vec2{}) {
		t.Errorf("surface not at home view: width %g, origin %v",
			img.ViewportWidth(), img.ViewportOrigin())
	}
	if st.Zoom() != 1 {
		t.Errorf("Zoom = %g, want 1", st.Zoom())
	}
	if _, ok := st.Focus().Get(); ok {
		t.Error("new state has focus")
	}

	_, err := New(nil, DefaultBounds(), 1, nil)
	if !errors.Is(err, deepzoom.ErrNoSurface) {
		t.Errorf("nil surface: got %v", err)
	}

	_, err = New(img, DefaultBounds(), 0, nil)
	var cErr *deepzoom.ConfigError
	if !errors.As(err, &cErr) {
		t.Errorf("zero home width: got %v", err)
	}
}

func TestBoundsCheck(t *testing.T) {
	cases := []struct {
		b  Bounds
		ok bool
	}{
		{DefaultBounds(), true},
		{Bounds{Min: 1, Max: 1, Current: 1}, true},
		{Bounds{Min: 0, Max: 40, Current: 1}, false},
		{Bounds{Min: -1, Max: 40, Current: 1}, false},
		{Bounds{Min: 2, Max: 1, Current: 1}, false},
		{Bounds{Min: 1.5, Max: 4, Current: 2}, false},
		{Bounds{Min: 0.1, Max: 0.5, Current: 0.2}, false},
		{Bounds{Min: 0.8, Max: 40, Current: 50}, false},
		{Bounds{Min: math.NaN(), Max: 40, Current: 1}, false},
	}
	for _, c := range cases {
		err := c.b.Check()
		if (err == nil) != c.ok {
			t.Errorf("%v.Check() = %v, want ok=%t", c.b, err, c.ok)
		}
	}
}

func TestZoomClamp(t *testing.T) {
	st, img := newTestState(t)
	center := img.ActualSize().Center()

	applied := st.ZoomAbout(0.5, center)
	if math.Abs(applied-0.8) > 1e-12 || math.Abs(st.Zoom()-0.8) > 1e-12 {
		t.Errorf("zoom out: applied %g, zoom %g, want 0.8, 0.8", applied, st.Zoom())
	}
	if math.Abs(img.ViewportWidth()-1.25) > 1e-12 {
		t.Errorf("width = %g, want 1.25", img.ViewportWidth())
	}

	// at the lower limit, zooming out further changes nothing
	before := img.ViewportOrigin()
	applied = st.ZoomAbout(0.5, center)
	if applied != 1 || st.Zoom() != 0.8 {
		t.Errorf("at limit: applied %g, zoom %g", applied, st.Zoom())
	}
	if d := cmp.Diff(before, img.ViewportOrigin(), approx); d != "" {
		t.Errorf("origin moved at the zoom limit: %s", d)
	}

	for range 20 {
		st.ZoomAbout(1.5, center)
		if z := st.Zoom(); z < DefaultZoomMin || z > DefaultZoomMax {
			t.Fatalf("zoom %g outside bounds", z)
		}
	}
	if st.Zoom() != DefaultZoomMax {
		t.Errorf("Zoom = %g, want %g", st.Zoom(), DefaultZoomMax)
	}
}

func TestZoomKeepsAnchor(t *testing.T) {
	st, _ := newTestState(t)
	p := vec.Vec2{X: 200, Y: 150}

	for _, f := range []float64{2, 1.5, 0.5, 3} {
		before := st.ToLogical(p)
		st.ZoomAbout(f, p)
		after := st.ToLogical(p)
		if d := cmp.Diff(before, after, approx); d != "" {
			t.Errorf("factor %g moved the anchor: %s", f, d)
		}
	}

	st.GoHome()
	st.ZoomAbout(2, p)
	want := vec.Vec2{X: 0.125, Y: 0.125}
	if d := cmp.Diff(want, st.Origin(), approx); d != "" {
		t.Error(d)
	}
	if math.Abs(st.Width()-0.5) > 1e-12 {
		t.Errorf("width = %g, want 0.5", st.Width())
	}
}

func TestPan(t *testing.T) {
	st, _ := newTestState(t)
	st.Focus().Set(4)

	start := st.Origin()
	st.Pan(vec.Vec2{X: 180, Y: 160}, vec.Vec2{X: 100, Y: 100}, start)

	want := vec.Vec2{X: -0.1, Y: -0.1}
	if d := cmp.Diff(want, st.Origin(), approx); d != "" {
		t.Error(d)
	}
	if _, ok := st.Focus().Get(); ok {
		t.Error("pan did not clear the focus")
	}

	// the y axis is scaled by the width as well
	st.ZoomAbout(2, vec.Vec2{})
	start = st.Origin()
	st.Pan(vec.Vec2{X: 0, Y: 60}, vec.Vec2{}, start)
	want = vec.Vec2{X: start.X, Y: start.Y - 0.1*st.Width()}
	if d := cmp.Diff(want, st.Origin(), approx); d != "" {
		t.Error(d)
	}
}

func TestGoHome(t *testing.T) {
	st, img := newTestState(t)
	st.ZoomAbout(3, vec.Vec2{X: 10, Y: 20})
	st.Pan(vec.Vec2{X: 50, Y: 50}, vec.Vec2{}, st.Origin())
	st.Focus().Set(1)

	for range 2 {
		st.GoHome()
		if img.ViewportWidth() != DefaultHomeWidth || img.ViewportOrigin() != (vec.Vec2{}) {
			t.Errorf("not at home: width %g, origin %v", img.ViewportWidth(), img.ViewportOrigin())
		}
		if st.Zoom() != 1 {
			t.Errorf("Zoom = %g, want 1", st.Zoom())
		}
		if _, ok := st.Focus().Get(); ok {
			t.Error("focus survived GoHome")
		}
	}
}

func TestApply(t *testing.T) {
	focus := &region.Focus{}
	img := surface.New(400, 400)
	st, err := New(img, DefaultBounds(), 2, focus)
	if err != nil {
		t.Fatal(err)
	}
	focus.Set(3)

	st.Apply(Target{Origin: vec.Vec2{X: 0.5, Y: 0.25}, Width: 0.5})
	if st.Zoom() != 4 {
		t.Errorf("Zoom = %g, want 4", st.Zoom())
	}
	if img.ViewportWidth() != 0.5 || img.ViewportOrigin() != (vec.Vec2{X: 0.5, Y: 0.25}) {
		t.Errorf("viewport not applied: width %g, origin %v", img.ViewportWidth(), img.ViewportOrigin())
	}
	if !focus.Is(3) {
		t.Error("Apply changed the focus")
	}

	// targets beyond the zoom bounds are widened or narrowed about
	// their center
	tests := []struct {
		target Target
		zoom   float64
		want   Target
	}{
		{Target{Width: 0.01}, DefaultZoomMax, Target{Origin: vec.Vec2{X: -0.02, Y: -0.02}, Width: 0.05}},
		{Target{Width: 10}, DefaultZoomMin, Target{Origin: vec.Vec2{X: 3.75, Y: 3.75}, Width: 2.5}},
	}
	for _, test := range tests {
		st.Apply(test.target)
		if st.Zoom() != test.zoom {
			t.Errorf("%v: Zoom = %g, want %g", test.target, st.Zoom(), test.zoom)
		}
		got := Target{Origin: img.ViewportOrigin(), Width: img.ViewportWidth()}
		if d := cmp.Diff(test.want, got, approx); d != "" {
			t.Errorf("%v: %s", test.target, d)
		}
		if d := cmp.Diff(st.HomeWidth()/st.Zoom(), st.Width(), approx); d != "" {
			t.Errorf("%v: zoom and width disagree: %s", test.target, d)
		}
	}
}

// projection is a minimal surface which implements the element to logical
// projection directly and counts how often it is used.
type projection struct {
	origin vec.Vec2
	width  float64
	size   deepzoom.Size

	toLogical int
}

func (s *projection) ElementToLogicalPoint(p vec.Vec2) vec.Vec2 {
	s.toLogical++
	return vec.Vec2{
		X: s.origin.X + p.X/s.size.Width*s.width,
		Y: s.origin.Y + p.Y/s.size.Height*s.width,
	}
}

// logicalToElement is the forward transform of the surface.
func (s *projection) logicalToElement(q vec.Vec2) vec.Vec2 {
	return vec.Vec2{
		X: (q.X - s.origin.X) / s.width * s.size.Width,
		Y: (q.Y - s.origin.Y) / s.width * s.size.Height,
	}
}

func (s *projection) ZoomAboutLogicalPoint(factor, x, y float64) {
	s.origin = vec.Vec2{
		X: x - (x-s.origin.X)/factor,
		Y: y - (y-s.origin.Y)/factor,
	}
	s.width /= factor
}

func (s *projection) ViewportOrigin() vec.Vec2          { return s.origin }
func (s *projection) SetViewportOrigin(origin vec.Vec2) { s.origin = origin }
func (s *projection) ViewportWidth() float64            { return s.width }
func (s *projection) SetViewportWidth(width float64)    { s.width = width }
func (s *projection) ActualSize() deepzoom.Size         { return s.size }
func (s *projection) SubImages() []deepzoom.SubImage    { return nil }

var _ deepzoom.Surface = (*projection)(nil)

func TestToLogicalUsesSurface(t *testing.T) {
	s := &projection{size: deepzoom.Size{Width: 640, Height: 480}}
	st, err := New(s, DefaultBounds(), DefaultHomeWidth, nil)
	if err != nil {
		t.Fatal(err)
	}
	st.Pan(vec.Vec2{X: 10, Y: 20}, vec.Vec2{X: 100, Y: 50}, vec.Vec2{})

	p := vec.Vec2{X: 123, Y: 456}
	q := st.ToLogical(p)
	if s.toLogical != 1 {
		t.Errorf("surface projection used %d times, want 1", s.toLogical)
	}
	if d := cmp.Diff(logical.ScreenToLogical(p, st.Origin(), st.Width(), st.Size()), q, approx); d != "" {
		t.Error(d)
	}

	st.ZoomAbout(2, p)
	if s.toLogical != 2 {
		t.Errorf("ZoomAbout did not use the surface projection")
	}
}

func TestScreenToLogicalRoundTrip(t *testing.T) {
	s := &projection{size: deepzoom.Size{Width: 800, Height: 500}}
	st, err := New(s, DefaultBounds(), DefaultHomeWidth, nil)
	if err != nil {
		t.Fatal(err)
	}

	views := []func(){
		func() {},
		func() { st.ZoomAbout(3, vec.Vec2{X: 400, Y: 100}) },
		func() { st.Pan(vec.Vec2{X: 700, Y: 20}, vec.Vec2{X: 10, Y: 400}, st.Origin()) },
		func() { st.ZoomAbout(0.5, vec.Vec2{X: 0, Y: 500}) },
	}
	points := []vec.Vec2{{X: 0, Y: 0}, {X: 0.5, Y: 0.5}, {X: 1, Y: 0.625}, {X: 0.1, Y: 0.9}}
	for i, move := range views {
		move()
		for _, q := range points {
			p := s.logicalToElement(q)
			back := logical.ScreenToLogical(p, st.Origin(), st.Width(), st.Size())
			if d := cmp.Diff(q, back, approx); d != "" {
				t.Errorf("view %d, point %v: %s", i, q, d)
			}
		}
	}
}
