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
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/deepzoom"
	"seehuhn.de/go/deepzoom/dzi"
	"seehuhn.de/go/deepzoom/logical"
)

var approx = cmpopts.EquateApprox(0, 1e-9)

func TestElementToLogicalPoint(t *testing.T) {
	img := New(800, 600)
	img.SetViewportOrigin(vec.Vec2{X: 0.25, Y: -0.5})
	img.SetViewportWidth(0.5)

	points := []vec.Vec2{{}, {X: 800, Y: 600}, {X: 123, Y: 456}, {X: -10, Y: 700}}
	for _, p := range points {
		want := logical.ScreenToLogical(p, img.ViewportOrigin(), img.ViewportWidth(), img.ActualSize())
		got := img.ElementToLogicalPoint(p)
		if d := cmp.Diff(want, got, approx); d != "" {
			t.Errorf("point %v: %s", p, d)
		}
		if d := cmp.Diff(p, img.LogicalToElementPoint(got), approx); d != "" {
			t.Errorf("round trip %v: %s", p, d)
		}
	}
}

func TestZoomAboutLogicalPoint(t *testing.T) {
	img := New(640, 480)
	p := vec.Vec2{X: 200, Y: 300}
	q := img.ElementToLogicalPoint(p)

	img.ZoomAboutLogicalPoint(4, q.X, q.Y)
	if img.ViewportWidth() != 0.25 {
		t.Errorf("width = %g, want 0.25", img.ViewportWidth())
	}
	if d := cmp.Diff(p, img.LogicalToElementPoint(q), approx); d != "" {
		t.Errorf("zoom moved the anchor: %s", d)
	}
}

type listener struct {
	events []string
	err    error
}

func (l *listener) SourceChanged()      { l.events = append(l.events, "changed") }
func (l *listener) ImageOpenSucceeded() { l.events = append(l.events, "ok") }
func (l *listener) ImageOpenFailed(err error) {
	l.events = append(l.events, "failed")
	l.err = err
}

func TestOpenNotifies(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "c.dzc")
	data := `<Collection MaxLevel="8" TileSize="256" Format="png"><Items>
		<I Id="3" N="0" Source="a.dzi"><Size Width="20" Height="10"/></I>
	</Items></Collection>`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	img := New(100, 100)
	l := &listener{}
	img.AddOpenListener(l)

	if err := img.Open(path); err != nil {
		t.Fatal(err)
	}
	want := []deepzoom.SubImage{{ID: 3, ViewportWidth: 1, AspectRatio: 2}}
	if d := cmp.Diff(want, img.SubImages()); d != "" {
		t.Error(d)
	}

	err := img.Open(filepath.Join(dir, "missing.dzc"))
	if !errors.Is(err, os.ErrNotExist) || !errors.Is(l.err, os.ErrNotExist) {
		t.Errorf("Open(missing) = %v, listener got %v", err, l.err)
	}
	if img.Source == nil || img.Source.Path != path {
		t.Error("failed open replaced the source")
	}

	if d := cmp.Diff([]string{"changed", "ok", "changed", "failed"}, l.events); d != "" {
		t.Error(d)
	}
}

// memLoader serves one image whose tiles are filled with a colour
// depending on the tile position.
type memLoader struct {
	im    *dzi.Image
	loads int
}

func tileColor(col, row int) color.RGBA {
	return color.RGBA{R: uint8(50 + 100*col), G: uint8(50 + 100*row), B: 7, A: 255}
}

func (m *memLoader) Descriptor(string) (*dzi.Image, error) {
	return m.im, nil
}

func (m *memLoader) Tile(_ string, im *dzi.Image, level, col, row int) (image.Image, error) {
	m.loads++
	tile := image.NewRGBA(im.TileRect(level, col, row))
	c := tileColor(col, row)
	b := tile.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			tile.SetRGBA(x, y, c)
		}
	}
	return tile, nil
}

func TestSelectLevel(t *testing.T) {
	im := &dzi.Image{Width: 1000, Height: 500, TileSize: 256, Format: "png"}
	cases := []struct {
		width float64
		want  int
	}{
		{0.5, 0},
		{1, 0},
		{2, 1},
		{100, 7},
		{125, 7},
		{126, 8},
		{1000, 10},
		{5000, 10},
	}
	for _, c := range cases {
		if got := SelectLevel(im, c.width); got != c.want {
			t.Errorf("SelectLevel(%g) = %d, want %d", c.width, got, c.want)
		}
	}
}

func TestRenderSingleImage(t *testing.T) {
	loader := &memLoader{im: &dzi.Image{Width: 8, Height: 8, TileSize: 4, Format: "png"}}
	r := NewRenderer(loader, 4)

	img := New(8, 8)
	img.SetSource(&dzi.Source{Path: "mem.dzi", Image: loader.im})

	out, err := r.Render(img)
	if err != nil {
		t.Fatal(err)
	}
	if out.Bounds() != image.Rect(0, 0, 8, 8) {
		t.Fatalf("bounds %v", out.Bounds())
	}
	if got := out.RGBAAt(1, 1); got != tileColor(0, 0) {
		t.Errorf("pixel (1,1) = %v, want %v", got, tileColor(0, 0))
	}
	if got := out.RGBAAt(6, 6); got != tileColor(1, 1) {
		t.Errorf("pixel (6,6) = %v, want %v", got, tileColor(1, 1))
	}
	if loader.loads != 4 {
		t.Errorf("%d tiles loaded, want 4", loader.loads)
	}

	// the level comes from the cache the second time
	if _, err := r.Render(img); err != nil {
		t.Fatal(err)
	}
	if loader.loads != 4 {
		t.Errorf("%d tiles loaded after second render, want 4", loader.loads)
	}

	// zoomed out, a smaller level is drawn into the top-left quarter
	img.SetViewportWidth(2)
	out, err = r.Render(img)
	if err != nil {
		t.Fatal(err)
	}
	if loader.loads != 5 {
		t.Errorf("%d tiles loaded, want 5", loader.loads)
	}
	if got := out.RGBAAt(6, 6); got != (color.RGBA{A: 255}) {
		t.Errorf("pixel (6,6) = %v, want background", got)
	}

	r.Forget("mem.dzi")
	if r.Cache.Len() != 0 {
		t.Errorf("%d levels cached after Forget", r.Cache.Len())
	}
}

func TestRenderFromFiles(t *testing.T) {
	dir := t.TempDir()
	desc := `<Image TileSize="4" Overlap="0" Format="png"><Size Width="2" Height="2"/></Image>`
	path := filepath.Join(dir, "tiny.dzi")
	if err := os.WriteFile(path, []byte(desc), 0o644); err != nil {
		t.Fatal(err)
	}

	red := color.RGBA{R: 255, A: 255}
	for level, size := range []int{1, 2} {
		tile := image.NewRGBA(image.Rect(0, 0, size, size))
		for y := range size {
			for x := range size {
				tile.SetRGBA(x, y, red)
			}
		}
		name := (&dzi.Image{Format: "png"}).TilePath(path, level, 0, 0)
		if err := os.MkdirAll(filepath.Dir(name), 0o755); err != nil {
			t.Fatal(err)
		}
		fd, err := os.Create(name)
		if err != nil {
			t.Fatal(err)
		}
		if err := png.Encode(fd, tile); err != nil {
			t.Fatal(err)
		}
		if err := fd.Close(); err != nil {
			t.Fatal(err)
		}
	}

	img := New(4, 4)
	if err := img.Open(path); err != nil {
		t.Fatal(err)
	}
	out, err := NewRenderer(FileLoader{}, 2).Render(img)
	if err != nil {
		t.Fatal(err)
	}
	if got := out.RGBAAt(2, 2); got != red {
		t.Errorf("pixel (2,2) = %v, want %v", got, red)
	}

	// a collection is not an image descriptor
	coll := filepath.Join(dir, "c.dzc")
	if err := os.WriteFile(coll, []byte("<Collection/>"), 0o644); err != nil {
		t.Fatal(err)
	}
	var mErr *dzi.MalformedError
	if _, err := (FileLoader{}).Descriptor(coll); !errors.As(err, &mErr) {
		t.Errorf("Descriptor(collection) = %v", err)
	}
}
