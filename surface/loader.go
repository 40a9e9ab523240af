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

import (
	"errors"
	"fmt"
	"image"
	_ "image/jpeg" // register the tile formats
	_ "image/png"
	"os"

	"seehuhn.de/go/deepzoom/dzi"
)

// TileLoader gives access to the descriptors and tiles of Deep Zoom images.
type TileLoader interface {
	// Descriptor returns the tile pyramid of the image whose descriptor
	// is stored at path.
	Descriptor(path string) (*dzi.Image, error)

	// Tile returns one tile of the image whose descriptor is stored at
	// path.
	Tile(path string, im *dzi.Image, level, col, row int) (image.Image, error)
}

// FileLoader reads descriptors and tiles from the file system.
type FileLoader struct{}

// Descriptor implements the [TileLoader] interface.
func (FileLoader) Descriptor(path string) (*dzi.Image, error) {
	src, err := dzi.Open(path)
	if err != nil {
		return nil, err
	}
	if src.Image == nil {
		return nil, &dzi.MalformedError{Path: path, Err: errNotImage}
	}
	return src.Image, nil
}

// Tile implements the [TileLoader] interface.
func (FileLoader) Tile(path string, im *dzi.Image, level, col, row int) (image.Image, error) {
	name := im.TilePath(path, level, col, row)
	fd, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer fd.Close()

	tile, _, err := image.Decode(fd)
	if err != nil {
		return nil, fmt.Errorf("tile %s: %w", name, err)
	}
	return tile, nil
}

var errNotImage = errors.New("expected an image descriptor, found a collection")
