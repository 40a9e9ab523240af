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

package surface

import "image"

// LevelKey identifies one pyramid level of one image.
type LevelKey struct {
	// Path is the file name of the image descriptor.
	Path  string
	Level int
}

// LevelCache keeps recently used pyramid levels in memory.
// Once the capacity is reached, the least recently used level is dropped.
type LevelCache struct {
	capacity    int
	entries     map[LevelKey]*levelEntry
	first, last *levelEntry
}

type levelEntry struct {
	prev, next *levelEntry
	key        LevelKey
	img        *image.RGBA
}

// NewLevelCache creates a cache which holds up to capacity levels.
// A cache with capacity 0 stores nothing.
func NewLevelCache(capacity int) *LevelCache {
	return &LevelCache{
		capacity: capacity,
		entries:  make(map[LevelKey]*levelEntry, capacity),
	}
}

// Put adds a level to the cache.
func (c *LevelCache) Put(key LevelKey, img *image.RGBA) {
	if c.capacity <= 0 {
		return
	}

	if ent, ok := c.entries[key]; ok {
		ent.img = img
		c.moveToFront(ent)
		return
	}

	ent := &levelEntry{key: key, img: img}
	c.entries[key] = ent
	c.moveToFront(ent)

	if len(c.entries) > c.capacity {
		c.removeLast()
	}
}

// Get returns a level from the cache and marks it as recently used.
func (c *LevelCache) Get(key LevelKey) (*image.RGBA, bool) {
	ent, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	c.moveToFront(ent)
	return ent.img, true
}

// Len returns the number of cached levels.
func (c *LevelCache) Len() int {
	return len(c.entries)
}

// Purge removes all levels of the image with the given descriptor path.
func (c *LevelCache) Purge(path string) {
	for key, ent := range c.entries {
		if key.Path == path {
			c.unlink(ent)
			delete(c.entries, key)
		}
	}
}

func (c *LevelCache) moveToFront(ent *levelEntry) {
	if ent == c.first {
		return
	}
	c.unlink(ent)

	ent.next = c.first
	if c.first != nil {
		c.first.prev = ent
	}
	c.first = ent
	if c.last == nil {
		c.last = ent
	}
}

func (c *LevelCache) unlink(ent *levelEntry) {
	if ent.prev != nil {
		ent.prev.next = ent.next
	}
	if ent.next != nil {
		ent.next.prev = ent.prev
	}
	if ent == c.first {
		c.first = ent.next
	}
	if ent == c.last {
		c.last = ent.prev
	}
	ent.prev = nil
	ent.next = nil
}

func (c *LevelCache) removeLast() {
	if c.last == nil {
		return
	}
	ent := c.last
	c.unlink(ent)
	delete(c.entries, ent.key)
}
