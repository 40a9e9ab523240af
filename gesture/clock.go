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

package gesture

import "time"

// Clock tells the controller the current time.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time {
	return time.Now()
}

// SystemClock reads the wall clock.
var SystemClock Clock = systemClock{}

// ManualClock is a clock which only moves when it is told to.
// The zero value starts at the zero time.
type ManualClock struct {
	T time.Time
}

// Now implements the [Clock] interface.
func (c *ManualClock) Now() time.Time {
	return c.T
}

// Set moves the clock to t.
func (c *ManualClock) Set(t time.Time) {
	c.T = t
}

// Advance moves the clock forward by d.
func (c *ManualClock) Advance(d time.Duration) {
	c.T = c.T.Add(d)
}
