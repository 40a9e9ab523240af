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

// Package surface provides an in-memory multi-scale surface, which keeps
// the viewport of a deep zoom image or collection and can render it.
//
// [Image] implements [deepzoom.Surface].  Viewport changes take effect
// immediately; there is no animation.
package surface

import (
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/deepzoom"
	"seehuhn.de/go/deepzoom/dzi"
	"seehuhn.de/go/deepzoom/logical"
)

// OpenListener is notified when the source of a surface changes.
// SourceChanged is called before a new source is loaded, followed by
// exactly one of the other two methods.
type OpenListener interface {
	SourceChanged()
	ImageOpenSucceeded()
	ImageOpenFailed(err error)
}

var _ deepzoom.Surface = (*Image)(nil)

// Image is a multi-scale surface.
type Image struct {
	origin vec.Vec2
	width  float64
	size   deepzoom.Size

	subImages []deepzoom.SubImage

	// Source is the descriptor opened last, or nil.
	Source *dzi.Source

	listeners []OpenListener
}

// New returns a surface of the given size, showing the home view.
func New(width, height float64) *Image {
	return &Image{
		width: 1,
		size:  deepzoom.Size{Width: width, Height: height},
	}
}

// AddOpenListener registers l to be notified by Open and SetSource.
func (img *Image) AddOpenListener(l OpenListener) {
	img.listeners = append(img.listeners, l)
}

// Open reads a .dzi or .dzc descriptor and makes it the current source.
// Listeners are notified of success or failure; the error is also returned.
// On failure the previous source is kept.
func (img *Image) Open(path string) error {
	for _, l := range img.listeners {
		l.SourceChanged()
	}
	src, err := dzi.Open(path)
	if err != nil {
		for _, l := range img.listeners {
			l.ImageOpenFailed(err)
		}
		return err
	}
	img.setSource(src)
	return nil
}

// SetSource makes src the current source and notifies the listeners.
func (img *Image) SetSource(src *dzi.Source) {
	for _, l := range img.listeners {
		l.SourceChanged()
	}
	img.setSource(src)
}

func (img *Image) setSource(src *dzi.Source) {
	img.Source = src
	img.subImages = src.SubImages()
	for _, l := range img.listeners {
		l.ImageOpenSucceeded()
	}
}

// SetSubImages replaces the sub-images without changing the source.
func (img *Image) SetSubImages(images []deepzoom.SubImage) {
	img.subImages = images
}

// SubImages implements the [deepzoom.Surface] interface.
func (img *Image) SubImages() []deepzoom.SubImage {
	return img.subImages
}

// ActualSize implements the [deepzoom.Surface] interface.
func (img *Image) ActualSize() deepzoom.Size {
	return img.size
}

// Resize changes the size of the surface in pixels.
func (img *Image) Resize(width, height float64) {
	img.size = deepzoom.Size{Width: width, Height: height}
}

// ViewportOrigin implements the [deepzoom.Surface] interface.
func (img *Image) ViewportOrigin() vec.Vec2 {
	return img.origin
}

// SetViewportOrigin implements the [deepzoom.Surface] interface.
func (img *Image) SetViewportOrigin(origin vec.Vec2) {
	img.origin = origin
}

// ViewportWidth implements the [deepzoom.Surface] interface.
func (img *Image) ViewportWidth() float64 {
	return img.width
}

// SetViewportWidth implements the [deepzoom.Surface] interface.
func (img *Image) SetViewportWidth(width float64) {
	img.width = width
}

// ElementToLogicalPoint implements the [deepzoom.Surface] interface.
func (img *Image) ElementToLogicalPoint(p vec.Vec2) vec.Vec2 {
	return logical.Map(logical.Transform(img.origin, img.width, img.size), p)
}

// LogicalToElementPoint converts a logical point to element coordinates.
func (img *Image) LogicalToElementPoint(p vec.Vec2) vec.Vec2 {
	return logical.Map(logical.Inverse(img.origin, img.width, img.size), p)
}

// ZoomAboutLogicalPoint implements the [deepzoom.Surface] interface.
// The viewport width is divided by factor and the origin is moved towards
// (x, y), so that (x, y) stays at the same element position.
func (img *Image) ZoomAboutLogicalPoint(factor, x, y float64) {
	img.origin = vec.Vec2{
		X: x - (x-img.origin.X)/factor,
		Y: y - (y-img.origin.Y)/factor,
	}
	img.width /= factor
}
