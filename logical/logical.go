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

// Package logical converts between element coordinates, logical image
// coordinates and the rectangles occupied by sub-images.
//
// All functions are pure.  The caller must make sure that the surface size
// is non-empty and that viewport widths are positive; otherwise the results
// contain infinities or NaNs.
package logical

import (
	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/deepzoom"
)

// UnitRect is the focal rectangle which selects a complete sub-image.
var UnitRect = rect.Rect{LLx: 0, LLy: 0, URx: 1, URy: 1}

// ScreenToLogical converts the element point p to logical coordinates, for
// the viewport with the given origin and width.  Both axes are scaled by the
// viewport width.
func ScreenToLogical(p, origin vec.Vec2, width float64, size deepzoom.Size) vec.Vec2 {
	return vec.Vec2{
		X: origin.X + (p.X/size.Width)*width,
		Y: origin.Y + (p.Y/size.Height)*width,
	}
}

// LogicalToScreen is the inverse of [ScreenToLogical].
func LogicalToScreen(p, origin vec.Vec2, width float64, size deepzoom.Size) vec.Vec2 {
	return Map(Inverse(origin, width, size), p)
}

// Map applies the affine map M to the point p.
func Map(M matrix.Matrix, p vec.Vec2) vec.Vec2 {
	x, y := M.Apply(p.X, p.Y)
	return vec.Vec2{X: x, Y: y}
}

// Transform returns the affine map from element coordinates to logical
// coordinates.
func Transform(origin vec.Vec2, width float64, size deepzoom.Size) matrix.Matrix {
	return matrix.Scale(width/size.Width, width/size.Height).
		Mul(matrix.Translate(origin.X, origin.Y))
}

// Inverse returns the affine map from logical coordinates to element
// coordinates.
func Inverse(origin vec.Vec2, width float64, size deepzoom.Size) matrix.Matrix {
	return matrix.Translate(-origin.X, -origin.Y).
		Mul(matrix.Scale(size.Width/width, size.Height/width))
}

// SubImageRect returns the rectangle covered by a sub-image, in the logical
// coordinates of the enclosing collection.
//
// The sub-image's own viewport gives the origin and width of the collection
// as seen from the sub-image, so the rectangle is obtained by inverting
// this viewport.  LLx/LLy hold the top-left corner.
func SubImageRect(origin vec.Vec2, viewportWidth, aspectRatio float64) rect.Rect {
	x := origin.X / -viewportWidth
	y := origin.Y / -viewportWidth
	return rect.Rect{
		LLx: x,
		LLy: y,
		URx: x + 1.0/viewportWidth,
		URy: y + 1.0/(viewportWidth*aspectRatio),
	}
}

// Contains reports whether p lies in r.  Points on the boundary are
// included.
func Contains(r rect.Rect, p vec.Vec2) bool {
	return p.X >= r.LLx && p.X <= r.URx && p.Y >= r.LLy && p.Y <= r.URy
}

// MapFocal maps a unit-relative focal rectangle into r.
// The focal rectangle {0, 0, 1, 1} maps to r itself.
func MapFocal(r, focal rect.Rect) rect.Rect {
	w := r.Dx()
	h := r.Dy()
	x := r.LLx + w*focal.LLx
	y := r.LLy + h*focal.LLy
	return rect.Rect{
		LLx: x,
		LLy: y,
		URx: x + w*focal.Dx(),
		URy: y + h*focal.Dy(),
	}
}

// AspectRatio returns the width of r divided by its height.
func AspectRatio(r rect.Rect) float64 {
	return r.Dx() / r.Dy()
}
