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

// Package config reads the navigation settings from a YAML file.
//
// All fields are optional.  Missing fields keep their default values,
// unknown fields are an error.  Example:
//
//	zoom_min: 0.5
//	zoom_max: 100
//	double_click: 250ms
//	focus_padding: 1.1
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"seehuhn.de/go/deepzoom"
	"seehuhn.de/go/deepzoom/focus"
	"seehuhn.de/go/deepzoom/gesture"
	"seehuhn.de/go/deepzoom/viewer"
	"seehuhn.de/go/deepzoom/viewport"
)

// Config holds the navigation settings.
type Config struct {
	ZoomMin   float64 `yaml:"zoom_min"`
	ZoomMax   float64 `yaml:"zoom_max"`
	HomeWidth float64 `yaml:"home_width"`

	DragThreshold float64       `yaml:"drag_threshold"`
	DoubleClick   time.Duration `yaml:"double_click"`
	WheelIn       float64       `yaml:"wheel_in"`
	WheelOut      float64       `yaml:"wheel_out"`

	FocusPadding float64 `yaml:"focus_padding"`
}

// Default returns the default settings.
func Default() *Config {
	return &Config{
		ZoomMin:       viewport.DefaultZoomMin,
		ZoomMax:       viewport.DefaultZoomMax,
		HomeWidth:     viewport.DefaultHomeWidth,
		DragThreshold: gesture.DefaultDragThreshold,
		DoubleClick:   gesture.DefaultDoubleClick,
		WheelIn:       gesture.DefaultWheelIn,
		WheelOut:      gesture.DefaultWheelOut,
		FocusPadding:  focus.DefaultPadding,
	}
}

// Parse decodes YAML settings.  Fields not present in data keep their
// default values.
func Parse(data []byte) (*Config, error) {
	c := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	err := dec.Decode(c)
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Load reads settings from the named file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// Validate checks that the settings can be used.
func (c *Config) Validate() error {
	if err := c.Bounds().Check(); err != nil {
		return err
	}
	positive := []struct {
		name string
		val  float64
	}{
		{"home_width", c.HomeWidth},
		{"drag_threshold", c.DragThreshold},
		{"double_click", c.DoubleClick.Seconds()},
		{"wheel_in", c.WheelIn},
		{"wheel_out", c.WheelOut},
		{"focus_padding", c.FocusPadding},
	}
	for _, p := range positive {
		if !(p.val > 0) {
			return &deepzoom.ConfigError{Field: p.name, Value: p.val, Reason: "must be positive"}
		}
	}
	if c.WheelIn < 1 {
		return &deepzoom.ConfigError{Field: "wheel_in", Value: c.WheelIn, Reason: "must zoom in"}
	}
	if c.WheelOut > 1 {
		return &deepzoom.ConfigError{Field: "wheel_out", Value: c.WheelOut, Reason: "must zoom out"}
	}
	return nil
}

// Bounds returns the zoom bounds, starting at zoom level 1.
func (c *Config) Bounds() viewport.Bounds {
	return viewport.Bounds{Min: c.ZoomMin, Max: c.ZoomMax, Current: 1}
}

// GestureOptions returns the options for the gesture controller.
// Clock and capturer are left unset.
func (c *Config) GestureOptions() gesture.Options {
	return gesture.Options{
		DragThreshold: c.DragThreshold,
		DoubleClick:   c.DoubleClick,
		WheelIn:       c.WheelIn,
		WheelOut:      c.WheelOut,
	}
}

// ViewerOptions returns the options for a viewer using these settings.
func (c *Config) ViewerOptions(logger *slog.Logger) *viewer.Options {
	return &viewer.Options{
		Bounds:    c.Bounds(),
		HomeWidth: c.HomeWidth,
		Padding:   c.FocusPadding,
		Gesture:   c.GestureOptions(),
		Logger:    logger,
	}
}
