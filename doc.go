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

// Package deepzoom implements viewport navigation for multi-resolution tiled
// images ("deep zoom" images and collections).
//
// The image itself is drawn by a multi-scale surface, which is described by
// the [Surface] interface.  The packages in this module turn pointer
// gestures into changes of the surface's viewport:
//
//   - [seehuhn.de/go/deepzoom/logical] converts between element (screen)
//     coordinates and logical image coordinates.
//   - [seehuhn.de/go/deepzoom/viewport] holds the zoom bounds and implements
//     panning, clamped zooming and the home view.
//   - [seehuhn.de/go/deepzoom/region] maintains the set of sub-images which
//     can be focused, and the currently focused one.
//   - [seehuhn.de/go/deepzoom/focus] frames a sub-image on screen.
//   - [seehuhn.de/go/deepzoom/gesture] interprets pointer and wheel events.
//   - [seehuhn.de/go/deepzoom/viewer] ties everything to the lifecycle of a
//     surface.
//
// # Coordinate Systems
//
// Logical coordinates span the full image.  The x-axis runs from 0 to 1
// across the width of the image, and the y-axis uses the same unit, so
// that the image covers y values from 0 to 1/aspectRatio.  A viewport is
// given by its origin (the logical point shown at the top-left corner of
// the surface) and its width in logical units.  Both axes of element
// coordinates are scaled by the viewport width:
//
//	logical.x = origin.x + element.x/surfaceWidth * viewportWidth
//	logical.y = origin.y + element.y/surfaceHeight * viewportWidth
//
// A sub-image of a collection is described by its own viewport, relative to
// the sub-image.  See [seehuhn.de/go/deepzoom/logical.SubImageRect] for the
// conversion to a rectangle in the logical space of the collection.
package deepzoom
