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

// Package script reads and replays recorded navigation gestures.
//
// A script is a YAML list of steps.  Each step carries exactly one event,
// and optionally the time at which it happens, measured from the start of
// the script:
//
//	# zoom.yaml
//	- move: [120, 80]
//	- down: [120, 80]
//	- at: 40ms
//	  up: [120, 80]
//	- at: 1s
//	  wheel: {delta: -1, at: [300, 200]}
//	- click: [400, 300]
//	- focus: 3
//	- home: true
//
// A click is a move, a press and a release at the same point.
package script

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/deepzoom/gesture"
	"seehuhn.de/go/deepzoom/viewer"
)

// Point is a position in element coordinates.
type Point [2]float64

// Vec converts p to a vector.
func (p Point) Vec() vec.Vec2 {
	return vec.Vec2{X: p[0], Y: p[1]}
}

// Wheel is a wheel event.  If At is nil, the wheel event is delivered at
// the origin of the element.
type Wheel struct {
	Delta float64 `yaml:"delta"`
	At    *Point  `yaml:"at,omitempty"`
}

// Step is one event of a script.
type Step struct {
	At time.Duration `yaml:"at,omitempty"`

	Move  *Point `yaml:"move,omitempty"`
	Down  *Point `yaml:"down,omitempty"`
	Up    *Point `yaml:"up,omitempty"`
	Click *Point `yaml:"click,omitempty"`
	Wheel *Wheel `yaml:"wheel,omitempty"`
	Home  bool   `yaml:"home,omitempty"`
	Focus *int   `yaml:"focus,omitempty"`
}

// Kind returns the name of the event in s, or the empty string if s
// does not contain exactly one event.
func (s *Step) Kind() string {
	kind := ""
	n := 0
	set := func(ok bool, name string) {
		if ok {
			kind = name
			n++
		}
	}
	set(s.Move != nil, "move")
	set(s.Down != nil, "down")
	set(s.Up != nil, "up")
	set(s.Click != nil, "click")
	set(s.Wheel != nil, "wheel")
	set(s.Home, "home")
	set(s.Focus != nil, "focus")
	if n != 1 {
		return ""
	}
	return kind
}

// StepError reports a problem with one step of a script.
type StepError struct {
	Index int
	Err   error
}

func (err *StepError) Error() string {
	return fmt.Sprintf("script: step %d: %v", err.Index, err.Err)
}

func (err *StepError) Unwrap() error {
	return err.Err
}

var (
	errEvents   = errors.New("need exactly one event")
	errTime     = errors.New("time goes backwards")
	errNoRegion = errors.New("no such region")
)

// Parse decodes and checks a script.
func Parse(data []byte) ([]Step, error) {
	var steps []Step
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	err := dec.Decode(&steps)
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("script: %w", err)
	}
	if err := Check(steps); err != nil {
		return nil, err
	}
	return steps, nil
}

// Load reads a script from the named file.
func Load(path string) ([]Step, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	steps, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return steps, nil
}

// Check verifies that every step has exactly one event and that the
// step times do not decrease.
func Check(steps []Step) error {
	var last time.Duration
	for i := range steps {
		if steps[i].Kind() == "" {
			return &StepError{Index: i, Err: errEvents}
		}
		if steps[i].At < last {
			return &StepError{Index: i, Err: errTime}
		}
		last = steps[i].At
	}
	return nil
}

// Target receives the events of a script.
// [*viewer.Viewer] implements this interface.
type Target interface {
	PointerDown(p vec.Vec2)
	PointerMove(p vec.Vec2)
	PointerUp(p vec.Vec2) gesture.Action
	Wheel(delta float64, p vec.Vec2) float64
	GoHome()
	FocusRegion(id int) bool
	Snapshot() viewer.Snapshot
}

// Result describes the state after one step.
type Result struct {
	Index int
	Kind  string
	Time  time.Duration

	// Action is the effect of a release or click.
	Action gesture.Action

	State viewer.Snapshot
}

// Run delivers the steps to target.  Before each step the clock is set to
// the step time, relative to the clock's time when Run is called.  If
// observe is not nil, it is called after every step; an error returned by
// observe stops the replay.
func Run(steps []Step, target Target, clock *gesture.ManualClock, observe func(Result) error) error {
	if err := Check(steps); err != nil {
		return err
	}

	start := clock.Now()
	for i := range steps {
		s := &steps[i]
		clock.Set(start.Add(s.At))

		res := Result{Index: i, Kind: s.Kind(), Time: s.At}
		switch {
		case s.Move != nil:
			target.PointerMove(s.Move.Vec())
		case s.Down != nil:
			target.PointerDown(s.Down.Vec())
		case s.Up != nil:
			res.Action = target.PointerUp(s.Up.Vec())
		case s.Click != nil:
			p := s.Click.Vec()
			target.PointerMove(p)
			target.PointerDown(p)
			res.Action = target.PointerUp(p)
		case s.Wheel != nil:
			var p vec.Vec2
			if s.Wheel.At != nil {
				p = s.Wheel.At.Vec()
			}
			target.Wheel(s.Wheel.Delta, p)
		case s.Home:
			target.GoHome()
		case s.Focus != nil:
			if !target.FocusRegion(*s.Focus) {
				return &StepError{Index: i, Err: fmt.Errorf("%w %d", errNoRegion, *s.Focus)}
			}
		}

		if observe != nil {
			res.State = target.Snapshot()
			if err := observe(res); err != nil {
				return err
			}
		}
	}
	return nil
}
