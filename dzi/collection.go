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

package dzi

import (
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/deepzoom"
)

// Collection describes a Deep Zoom collection.
type Collection struct {
	MaxLevel   int
	TileSize   int
	Format     string
	NextItemID int

	Items []Item
}

// Item is one image of a collection.
type Item struct {
	ID int

	// N is the position of the item in the collection's Morton order.
	N int

	// Source is the path of the item's .dzi descriptor, relative to the
	// collection descriptor.
	Source string

	Width, Height int

	// Viewport places the item inside the collection.
	Viewport Viewport
}

// Viewport gives the part of the collection which is visible when the item
// fills the screen, in the coordinates of the item.
type Viewport struct {
	Width float64
	X, Y  float64
}

// DefaultViewport is used for items without a viewport element.
var DefaultViewport = Viewport{Width: 1}

// AspectRatio returns the width of the item divided by its height.
func (it *Item) AspectRatio() float64 {
	return float64(it.Width) / float64(it.Height)
}

// SubImage converts the item into a sub-image record.
func (it *Item) SubImage() deepzoom.SubImage {
	return deepzoom.SubImage{
		ID:             it.ID,
		ViewportOrigin: vec.Vec2{X: it.Viewport.X, Y: it.Viewport.Y},
		ViewportWidth:  it.Viewport.Width,
		AspectRatio:    it.AspectRatio(),
	}
}

// SubImages returns the items of the collection as sub-image records, in
// collection order.
func (c *Collection) SubImages() []deepzoom.SubImage {
	res := make([]deepzoom.SubImage, len(c.Items))
	for i := range c.Items {
		res[i] = c.Items[i].SubImage()
	}
	return res
}

// Find returns the item with the given id, or nil.
func (c *Collection) Find(id int) *Item {
	for i := range c.Items {
		if c.Items[i].ID == id {
			return &c.Items[i]
		}
	}
	return nil
}
