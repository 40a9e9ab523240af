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

// Package dzi reads Deep Zoom descriptor files.
//
// A Deep Zoom image (.dzi) describes a tile pyramid: the full resolution
// image is stored at the highest level, and every lower level halves the
// size, down to a single pixel at level 0.  Each level is cut into square
// tiles, which overlap their neighbours by a few pixels.  Tiles are stored
// next to the descriptor, in "<name>_files/<level>/<column>_<row>.<format>".
//
// A Deep Zoom collection (.dzc) arranges several images.  Each item gives
// the size of the image and, optionally, a viewport which places the image
// inside the collection.
package dzi

import (
	"image"
	"math"
	"path/filepath"
	"strconv"
	"strings"
)

// Image describes the tile pyramid of a single Deep Zoom image.
type Image struct {
	Width, Height int

	TileSize int
	Overlap  int

	// Format is the file extension of the tiles, for example "jpg".
	Format string
}

// MaxLevel returns the level which holds the full resolution image.
func (im *Image) MaxLevel() int {
	return maxLevel(max(im.Width, im.Height))
}

func maxLevel(size int) int {
	if size <= 1 {
		return 0
	}
	return int(math.Ceil(math.Log2(float64(size))))
}

// LevelSize returns the size of the image at the given level.
func (im *Image) LevelSize(level int) (width, height int) {
	scale := math.Ldexp(1, level-im.MaxLevel())
	width = int(math.Ceil(float64(im.Width) * scale))
	height = int(math.Ceil(float64(im.Height) * scale))
	return max(width, 1), max(height, 1)
}

// TileCount returns the number of tile columns and rows at the given level.
func (im *Image) TileCount(level int) (cols, rows int) {
	w, h := im.LevelSize(level)
	cols = (w + im.TileSize - 1) / im.TileSize
	rows = (h + im.TileSize - 1) / im.TileSize
	return cols, rows
}

// TileRect returns the pixel area covered by a tile, including the overlap
// with neighbouring tiles, in the coordinates of the given level.
func (im *Image) TileRect(level, col, row int) image.Rectangle {
	w, h := im.LevelSize(level)
	x0 := col * im.TileSize
	y0 := row * im.TileSize
	if col > 0 {
		x0 -= im.Overlap
	}
	if row > 0 {
		y0 -= im.Overlap
	}
	x1 := min((col+1)*im.TileSize+im.Overlap, w)
	y1 := min((row+1)*im.TileSize+im.Overlap, h)
	return image.Rect(x0, y0, x1, y1)
}

// TilePath returns the file name of a tile, for an image whose descriptor
// is stored at descPath.
func (im *Image) TilePath(descPath string, level, col, row int) string {
	base := strings.TrimSuffix(descPath, filepath.Ext(descPath))
	name := strconv.Itoa(col) + "_" + strconv.Itoa(row) + "." + im.Format
	return filepath.Join(base+"_files", strconv.Itoa(level), name)
}

// AspectRatio returns the width of the image divided by its height.
func (im *Image) AspectRatio() float64 {
	return float64(im.Width) / float64(im.Height)
}
