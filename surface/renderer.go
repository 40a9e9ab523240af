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
	"image"
	"image/color"
	"math"

	xdraw "golang.org/x/image/draw"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/deepzoom/dzi"
	"seehuhn.de/go/deepzoom/logical"
)

// Renderer draws the visible part of a surface.
//
// For every image on the surface, the smallest pyramid level which is at
// least as wide as the image on screen is loaded and scaled into place.
// Loaded levels are kept in a [LevelCache].
type Renderer struct {
	Loader     TileLoader
	Cache      *LevelCache
	Background color.Color

	descriptors map[string]*dzi.Image
}

// NewRenderer returns a renderer which keeps up to cacheLevels pyramid
// levels in memory.
func NewRenderer(loader TileLoader, cacheLevels int) *Renderer {
	return &Renderer{
		Loader:      loader,
		Cache:       NewLevelCache(cacheLevels),
		Background:  color.Black,
		descriptors: make(map[string]*dzi.Image),
	}
}

// piece is one image placed in logical space.
type piece struct {
	path string
	im   *dzi.Image
	rect rect.Rect
}

// Render draws the current viewport of s into a new image of the size of
// the surface.
func (r *Renderer) Render(s *Image) (*image.RGBA, error) {
	size := s.ActualSize()
	bounds := image.Rect(0, 0, int(math.Ceil(size.Width)), int(math.Ceil(size.Height)))
	dst := image.NewRGBA(bounds)
	xdraw.Draw(dst, bounds, image.NewUniform(r.Background), image.Point{}, xdraw.Src)

	if s.Source == nil || size.IsEmpty() {
		return dst, nil
	}
	pieces, err := r.pieces(s.Source)
	if err != nil {
		return nil, err
	}

	toScreen := logical.Inverse(s.ViewportOrigin(), s.ViewportWidth(), size)
	for _, p := range pieces {
		ll := logical.Map(toScreen, vec.Vec2{X: p.rect.LLx, Y: p.rect.LLy})
		ur := logical.Map(toScreen, vec.Vec2{X: p.rect.URx, Y: p.rect.URy})
		dr := image.Rect(
			int(math.Floor(ll.X)), int(math.Floor(ll.Y)),
			int(math.Ceil(ur.X)), int(math.Ceil(ur.Y)))
		if !dr.Overlaps(bounds) {
			continue
		}

		level := SelectLevel(p.im, ur.X-ll.X)
		src, err := r.level(p.path, p.im, level)
		if err != nil {
			return nil, err
		}
		xdraw.BiLinear.Scale(dst, dr, src, src.Bounds(), xdraw.Over, nil)
	}
	return dst, nil
}

// pieces lists the images of a source in drawing order.
func (r *Renderer) pieces(src *dzi.Source) ([]piece, error) {
	if src.Image != nil {
		ar := src.Image.AspectRatio()
		return []piece{{
			path: src.Path,
			im:   src.Image,
			rect: rect.Rect{URx: 1, URy: 1 / ar},
		}}, nil
	}

	res := make([]piece, 0, len(src.Collection.Items))
	for i := range src.Collection.Items {
		it := &src.Collection.Items[i]
		path := src.ItemPath(it)
		im, err := r.descriptor(path)
		if err != nil {
			return nil, err
		}
		sub := it.SubImage()
		res = append(res, piece{
			path: path,
			im:   im,
			rect: logical.SubImageRect(sub.ViewportOrigin, sub.ViewportWidth, sub.AspectRatio),
		})
	}
	return res, nil
}

func (r *Renderer) descriptor(path string) (*dzi.Image, error) {
	if im, ok := r.descriptors[path]; ok {
		return im, nil
	}
	im, err := r.Loader.Descriptor(path)
	if err != nil {
		return nil, err
	}
	if r.descriptors == nil {
		r.descriptors = make(map[string]*dzi.Image)
	}
	r.descriptors[path] = im
	return im, nil
}

// Forget drops all cached data for the image with the given descriptor
// path, so that it is reloaded on the next call to Render.
func (r *Renderer) Forget(path string) {
	delete(r.descriptors, path)
	r.Cache.Purge(path)
}

// level returns a complete pyramid level, stitched together from its tiles.
func (r *Renderer) level(path string, im *dzi.Image, level int) (*image.RGBA, error) {
	key := LevelKey{Path: path, Level: level}
	if img, ok := r.Cache.Get(key); ok {
		return img, nil
	}

	w, h := im.LevelSize(level)
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	cols, rows := im.TileCount(level)
	for row := range rows {
		for col := range cols {
			tile, err := r.Loader.Tile(path, im, level, col, row)
			if err != nil {
				return nil, err
			}
			tr := im.TileRect(level, col, row)
			xdraw.Draw(img, tr, tile, tile.Bounds().Min, xdraw.Src)
		}
	}

	r.Cache.Put(key, img)
	return img, nil
}

// SelectLevel returns the smallest pyramid level which is at least
// pixelWidth pixels wide.  If no level is wide enough, the highest level
// is returned.
func SelectLevel(im *dzi.Image, pixelWidth float64) int {
	top := im.MaxLevel()
	for level := 0; level < top; level++ {
		w, _ := im.LevelSize(level)
		if float64(w) >= pixelWidth {
			return level
		}
	}
	return top
}
