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

package deepzoom

import (
	"errors"
	"strconv"
)

// ErrNoSurface is returned when a viewer is constructed without a surface.
var ErrNoSurface = errors.New("deepzoom: no surface")

// ConfigError indicates that a navigation parameter is out of range.
type ConfigError struct {
	Field  string
	Value  float64
	Reason string
}

func (err *ConfigError) Error() string {
	return "deepzoom: invalid " + err.Field + " " +
		strconv.FormatFloat(err.Value, 'g', -1, 64) + ": " + err.Reason
}
