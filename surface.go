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

package deepzoom

import (
	"seehuhn.de/go/geom/vec"
)

// Surface is a multi-scale image which renders tiles for its current
// viewport.  The navigation code reads and changes the viewport only through
// this interface.
type Surface interface {
	// ElementToLogicalPoint converts a point in element coordinates to
	// logical coordinates, using the current viewport.
	ElementToLogicalPoint(p vec.Vec2) vec.Vec2

	// ZoomAboutLogicalPoint changes the viewport width by the given factor
	// while keeping the logical point (x, y) at the same position on
	// screen.  Factors larger than 1 zoom in.
	ZoomAboutLogicalPoint(factor, x, y float64)

	ViewportOrigin() vec.Vec2
	SetViewportOrigin(origin vec.Vec2)
	ViewportWidth() float64
	SetViewportWidth(width float64)

	// ActualSize returns the rendered size of the surface, in pixels.
	ActualSize() Size

	// SubImages returns the sub-images of the current source, in collection
	// order.  For a single image, the result is empty.
	SubImages() []SubImage
}

// Size is the size of a surface in element coordinates.
type Size struct {
	Width, Height float64
}

// AspectRatio returns width divided by height.
func (s Size) AspectRatio() float64 {
	return s.Width / s.Height
}

// Center returns the element coordinates of the center of the surface.
func (s Size) Center() vec.Vec2 {
	return vec.Vec2{X: s.Width / 2, Y: s.Height / 2}
}

// IsEmpty reports whether the surface has no area.
func (s Size) IsEmpty() bool {
	return !(s.Width > 0 && s.Height > 0)
}

// SubImage describes one image inside a collection.
//
// The viewport fields use the coordinate system of the sub-image: they give
// the part of the sub-image which would be visible if the sub-image filled
// the collection's viewport.  An unscaled sub-image at the top-left corner
// of the collection has ViewportOrigin (0, 0) and ViewportWidth 1.
type SubImage struct {
	ID             int
	ViewportOrigin vec.Vec2
	ViewportWidth  float64

	// AspectRatio is the width of the sub-image divided by its height.
	AspectRatio float64
}

// Capturer is implemented by hosts which route all pointer events to the
// viewer while a button is held down.
type Capturer interface {
	CaptureMouse()
	ReleaseMouseCapture()
}
