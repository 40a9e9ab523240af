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
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"seehuhn.de/go/deepzoom"
)

// Namespace is the XML namespace of Deep Zoom descriptors.
const Namespace = "http://schemas.microsoft.com/deepzoom/2008"

// MalformedError is returned when a descriptor cannot be parsed or
// describes an impossible image.
type MalformedError struct {
	Path string
	Err  error
}

func (err *MalformedError) Error() string {
	if err.Path == "" {
		return "dzi: malformed descriptor: " + err.Err.Error()
	}
	return "dzi: malformed descriptor " + err.Path + ": " + err.Err.Error()
}

func (err *MalformedError) Unwrap() error {
	return err.Err
}

func malformed(format string, args ...any) error {
	return &MalformedError{Err: fmt.Errorf(format, args...)}
}

// Source is an opened descriptor.  Exactly one of Image and Collection
// is set.
type Source struct {
	// Path is the file name of the descriptor.  Tile paths are resolved
	// relative to it.
	Path string

	Image      *Image
	Collection *Collection
}

// SubImages returns the sub-images of a collection.  A single image has
// no sub-images.
func (src *Source) SubImages() []deepzoom.SubImage {
	if src == nil || src.Collection == nil {
		return nil
	}
	return src.Collection.SubImages()
}

// ItemPath returns the file name of the descriptor of a collection item.
func (src *Source) ItemPath(it *Item) string {
	if filepath.IsAbs(it.Source) {
		return it.Source
	}
	return filepath.Join(filepath.Dir(src.Path), filepath.FromSlash(it.Source))
}

// Open reads the descriptor stored in the named file.  Both .dzi and .dzc
// files are recognised by their root element.
func Open(path string) (*Source, error) {
	fd, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer fd.Close()

	src, err := Read(fd)
	if err != nil {
		var mErr *MalformedError
		if errors.As(err, &mErr) {
			mErr.Path = path
		}
		return nil, err
	}
	src.Path = path
	return src, nil
}

// Read reads an image or collection descriptor from r.
func Read(r io.Reader) (*Source, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	root, err := rootElement(data)
	if err != nil {
		return nil, err
	}

	switch root {
	case "Image":
		im, err := ReadImage(bytes.NewReader(data))
		if err != nil {
			return nil, err
		}
		return &Source{Image: im}, nil
	case "Collection":
		c, err := ReadCollection(bytes.NewReader(data))
		if err != nil {
			return nil, err
		}
		return &Source{Collection: c}, nil
	default:
		return nil, malformed("unexpected root element <%s>", root)
	}
}

func rootElement(data []byte) (string, error) {
	dec := xml.NewDecoder(bytes.NewReader(data))
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			return "", malformed("no root element")
		} else if err != nil {
			return "", &MalformedError{Err: err}
		}
		if start, ok := tok.(xml.StartElement); ok {
			return start.Name.Local, nil
		}
	}
}

type xmlSize struct {
	Width  int `xml:"Width,attr"`
	Height int `xml:"Height,attr"`
}

type xmlImage struct {
	XMLName  xml.Name `xml:"Image"`
	TileSize int      `xml:"TileSize,attr"`
	Overlap  int      `xml:"Overlap,attr"`
	Format   string   `xml:"Format,attr"`
	Size     *xmlSize `xml:"Size"`
}

// ReadImage reads a .dzi descriptor.
func ReadImage(r io.Reader) (*Image, error) {
	var x xmlImage
	if err := xml.NewDecoder(r).Decode(&x); err != nil {
		return nil, &MalformedError{Err: err}
	}
	if x.Size == nil {
		return nil, malformed("missing <Size> element")
	}

	im := &Image{
		Width:    x.Size.Width,
		Height:   x.Size.Height,
		TileSize: x.TileSize,
		Overlap:  x.Overlap,
		Format:   x.Format,
	}
	if im.Width <= 0 || im.Height <= 0 {
		return nil, malformed("invalid image size %dx%d", im.Width, im.Height)
	}
	if im.TileSize <= 0 {
		return nil, malformed("invalid tile size %d", im.TileSize)
	}
	if im.Overlap < 0 || im.Overlap >= im.TileSize {
		return nil, malformed("invalid tile overlap %d", im.Overlap)
	}
	if im.Format == "" {
		return nil, malformed("missing tile format")
	}
	return im, nil
}

type xmlViewport struct {
	Width float64 `xml:"Width,attr"`
	X     float64 `xml:"X,attr"`
	Y     float64 `xml:"Y,attr"`
}

type xmlItem struct {
	ID       int          `xml:"Id,attr"`
	N        int          `xml:"N,attr"`
	Source   string       `xml:"Source,attr"`
	Size     *xmlSize     `xml:"Size"`
	Viewport *xmlViewport `xml:"Viewport"`
}

type xmlCollection struct {
	XMLName    xml.Name  `xml:"Collection"`
	MaxLevel   int       `xml:"MaxLevel,attr"`
	TileSize   int       `xml:"TileSize,attr"`
	Format     string    `xml:"Format,attr"`
	NextItemID int       `xml:"NextItemId,attr"`
	Items      []xmlItem `xml:"Items>I"`
}

// ReadCollection reads a .dzc descriptor.  Items without a viewport element
// are given [DefaultViewport].
func ReadCollection(r io.Reader) (*Collection, error) {
	var x xmlCollection
	if err := xml.NewDecoder(r).Decode(&x); err != nil {
		return nil, &MalformedError{Err: err}
	}

	c := &Collection{
		MaxLevel:   x.MaxLevel,
		TileSize:   x.TileSize,
		Format:     x.Format,
		NextItemID: x.NextItemID,
		Items:      make([]Item, 0, len(x.Items)),
	}
	seen := make(map[int]bool, len(x.Items))
	for i, xi := range x.Items {
		if seen[xi.ID] {
			return nil, malformed("duplicate item id %d", xi.ID)
		}
		seen[xi.ID] = true

		if xi.Size == nil || xi.Size.Width <= 0 || xi.Size.Height <= 0 {
			return nil, malformed("item %d: missing or invalid size", i)
		}
		it := Item{
			ID:       xi.ID,
			N:        xi.N,
			Source:   xi.Source,
			Width:    xi.Size.Width,
			Height:   xi.Size.Height,
			Viewport: DefaultViewport,
		}
		if xi.Viewport != nil {
			if !(xi.Viewport.Width > 0) {
				return nil, malformed("item %d: invalid viewport width %g", i, xi.Viewport.Width)
			}
			it.Viewport = Viewport{Width: xi.Viewport.Width, X: xi.Viewport.X, Y: xi.Viewport.Y}
		}
		c.Items = append(c.Items, it)
	}
	return c, nil
}
