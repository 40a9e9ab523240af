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

package script

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"seehuhn.de/go/deepzoom/dzi"
	"seehuhn.de/go/deepzoom/gesture"
	"seehuhn.de/go/deepzoom/surface"
	"seehuhn.de/go/deepzoom/viewer"
)

const doubleClick = `
- move: [100, 100]
- down: [100, 100]
- up: [100, 100]
- at: 150ms
  click: [100, 100]
- at: 400ms
  click: [100, 100]
`

func newTarget(t *testing.T) (*viewer.Viewer, *gesture.ManualClock) {
	t.Helper()
	clock := &gesture.ManualClock{T: time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)}
	img := surface.New(400, 400)
	v, err := viewer.New(img, &viewer.Options{Gesture: gesture.Options{Clock: clock}})
	require.NoError(t, err)
	img.AddOpenListener(v)
	img.SetSource(&dzi.Source{Collection: &dzi.Collection{
		Items: []dzi.Item{
			{ID: 4, Width: 10, Height: 10, Viewport: dzi.Viewport{Width: 2}},
		},
	}})
	return v, clock
}

func TestParse(t *testing.T) {
	steps, err := Parse([]byte(doubleClick))
	require.NoError(t, err)
	require.Len(t, steps, 5)

	assert.Equal(t, "move", steps[0].Kind())
	assert.Equal(t, &Point{100, 100}, steps[2].Up)
	assert.Equal(t, "click", steps[3].Kind())
	assert.Equal(t, 150*time.Millisecond, steps[3].At)

	steps, err = Parse([]byte("- wheel: {delta: -1, at: [3, 4]}\n- focus: 0\n- home: true\n"))
	require.NoError(t, err)
	assert.Equal(t, &Wheel{Delta: -1, At: &Point{3, 4}}, steps[0].Wheel)
	assert.Equal(t, "focus", steps[1].Kind())
	assert.Equal(t, 0, *steps[1].Focus)
	assert.Equal(t, "home", steps[2].Kind())

	steps, err = Parse(nil)
	require.NoError(t, err)
	assert.Empty(t, steps)
}

func TestParseErrors(t *testing.T) {
	cases := []struct {
		name  string
		data  string
		index int
	}{
		{"no event", "- at: 1s\n", 0},
		{"two events", "- move: [1, 1]\n- down: [1, 1]\n  up: [1, 1]\n", 1},
		{"time backwards", "- at: 1s\n  home: true\n- at: 500ms\n  home: true\n", 1},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := Parse([]byte(c.data))
			var sErr *StepError
			require.True(t, errors.As(err, &sErr), "got %v", err)
			assert.Equal(t, c.index, sErr.Index)
		})
	}

	_, err := Parse([]byte("- press: [1, 1]\n"))
	assert.ErrorContains(t, err, "press")

	_, err = Parse([]byte("- move: [1, 2, 3]\n"))
	assert.Error(t, err)
}

func TestRunDoubleClick(t *testing.T) {
	v, clock := newTarget(t)
	steps, err := Parse([]byte(doubleClick))
	require.NoError(t, err)

	var results []Result
	err = Run(steps, v, clock, func(r Result) error {
		results = append(results, r)
		return nil
	})
	require.NoError(t, err)
	require.Len(t, results, 5)

	assert.Equal(t, gesture.Focused, results[2].Action)
	assert.True(t, results[2].State.HasFocus)
	assert.Equal(t, 4, results[2].State.Focused)

	assert.Equal(t, gesture.Suppressed, results[3].Action)
	assert.True(t, results[3].State.HasFocus)

	// 250ms after the suppressed click
	assert.Equal(t, gesture.Suppressed, results[4].Action)

	assert.Equal(t, time.Date(2026, 5, 1, 9, 0, 0, 400_000_000, time.UTC), clock.Now())
}

func TestRunWheelAndFocus(t *testing.T) {
	v, clock := newTarget(t)
	steps, err := Parse([]byte(`
- wheel: {delta: -1, at: [200, 200]}
- focus: 4
- home: true
- wheel: {delta: 1}
`))
	require.NoError(t, err)

	var zooms []float64
	err = Run(steps, v, clock, func(r Result) error {
		zooms = append(zooms, r.State.Zoom)
		return nil
	})
	require.NoError(t, err)
	require.Len(t, zooms, 4)
	assert.Equal(t, 0.8, zooms[0])
	assert.InDelta(t, 1/0.65, zooms[1], 1e-9)
	assert.Equal(t, 1.0, zooms[2])
	assert.Equal(t, 1.5, zooms[3])
}

func TestRunErrors(t *testing.T) {
	v, clock := newTarget(t)

	err := Run([]Step{{Focus: new(int)}}, v, clock, nil)
	var sErr *StepError
	require.True(t, errors.As(err, &sErr), "got %v", err)
	assert.ErrorIs(t, err, errNoRegion)

	stop := errors.New("stop")
	n := 0
	err = Run([]Step{{Home: true}, {Home: true}}, v, clock, func(Result) error {
		n++
		return stop
	})
	assert.ErrorIs(t, err, stop)
	assert.Equal(t, 1, n)

	err = Run([]Step{{}}, v, clock, nil)
	assert.True(t, errors.As(err, &sErr))
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "s.yaml")
	require.NoError(t, os.WriteFile(path, []byte(doubleClick), 0o644))
	steps, err := Load(path)
	require.NoError(t, err)
	assert.Len(t, steps, 5)

	_, err = Load(path + ".missing")
	assert.ErrorIs(t, err, os.ErrNotExist)
}

var _ Target = (*viewer.Viewer)(nil)
