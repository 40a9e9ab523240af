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

// Package region keeps track of the sub-images of a collection which can be
// focused by clicking on them.
package region

import (
	"slices"

	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/deepzoom"
	"seehuhn.de/go/deepzoom/logical"
)

// Region is a navigable area inside the image.
type Region struct {
	ID int

	// Rect is the area covered by the region, in the logical coordinates of
	// the enclosing image.  LLx/LLy hold the top-left corner.
	Rect rect.Rect

	// AspectRatio is the width of the region's image divided by its height.
	AspectRatio float64
}

// FromSubImage converts a sub-image record into a region.
func FromSubImage(s deepzoom.SubImage) Region {
	return Region{
		ID:          s.ID,
		Rect:        logical.SubImageRect(s.ViewportOrigin, s.ViewportWidth, s.AspectRatio),
		AspectRatio: s.AspectRatio,
	}
}

// Focus records which region, if any, is currently focused.
// The zero value has no region focused.
type Focus struct {
	id  int
	set bool
}

// Get returns the id of the focused region.
// The second return value is false if no region is focused.
func (f *Focus) Get() (int, bool) {
	return f.id, f.set
}

// Is reports whether the region with the given id is focused.
func (f *Focus) Is(id int) bool {
	return f.set && f.id == id
}

// Set marks the region with the given id as focused.
func (f *Focus) Set(id int) {
	f.id = id
	f.set = true
}

// Clear removes the focus.
func (f *Focus) Clear() {
	f.id = 0
	f.set = false
}

// Index is a snapshot of the regions of the current image.
// The index is read-only between calls to Rebuild.
type Index struct {
	regions []Region
	byID    map[int]int
	focus   *Focus
}

// NewIndex returns an empty index.  If focus is not nil, Rebuild clears it
// when the focused region disappears.
func NewIndex(focus *Focus) *Index {
	return &Index{
		byID:  make(map[int]int),
		focus: focus,
	}
}

// Rebuild replaces the contents of the index.  The order of regions is
// significant for HitTest.  The return value reports whether the focus was
// cleared because the focused region is no longer present.
func (idx *Index) Rebuild(regions []Region) bool {
	idx.regions = slices.Clone(regions)
	idx.byID = make(map[int]int, len(regions))
	for i, r := range idx.regions {
		idx.byID[r.ID] = i
	}

	if idx.focus == nil {
		return false
	}
	id, ok := idx.focus.Get()
	if !ok {
		return false
	}
	if _, present := idx.byID[id]; present {
		return false
	}
	idx.focus.Clear()
	return true
}

// RebuildFromSubImages replaces the contents of the index by the given
// sub-images.  See [Index.Rebuild].
func (idx *Index) RebuildFromSubImages(images []deepzoom.SubImage) bool {
	regions := make([]Region, len(images))
	for i, s := range images {
		regions[i] = FromSubImage(s)
	}
	return idx.Rebuild(regions)
}

// HitTest returns the region containing the logical point p.
// If several regions contain p, the one added last wins.
func (idx *Index) HitTest(p vec.Vec2) (Region, bool) {
	for i := len(idx.regions) - 1; i >= 0; i-- {
		if logical.Contains(idx.regions[i].Rect, p) {
			return idx.regions[i], true
		}
	}
	return Region{}, false
}

// Lookup returns the region with the given id.
func (idx *Index) Lookup(id int) (Region, bool) {
	i, ok := idx.byID[id]
	if !ok {
		return Region{}, false
	}
	return idx.regions[i], true
}

// Len returns the number of regions in the index.
func (idx *Index) Len() int {
	return len(idx.regions)
}

// Regions returns a copy of the regions, in index order.
func (idx *Index) Regions() []Region {
	return slices.Clone(idx.regions)
}
