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

package main

import (
	"errors"
	"image/png"
	"os"

	"github.com/spf13/cobra"

	"seehuhn.de/go/deepzoom/script"
	"seehuhn.de/go/deepzoom/surface"
)

func newRenderCommand(g *globals) *cobra.Command {
	var output, scriptFile string
	var cacheLevels int

	cmd := &cobra.Command{
		Use:   "render [--script s.yaml] -o out.png file.dzc|file.dzi",
		Short: "Render the current view to a PNG file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var steps []script.Step
			if scriptFile != "" {
				var err error
				steps, err = script.Load(scriptFile)
				if err != nil {
					return err
				}
			}

			s, err := g.open(args[0])
			if err != nil {
				return err
			}
			if err := script.Run(steps, s.v, s.clock, nil); err != nil {
				return err
			}

			r := surface.NewRenderer(surface.FileLoader{}, cacheLevels)
			img, err := r.Render(s.img)
			if err != nil {
				return err
			}

			out, err := os.Create(output)
			if err != nil {
				return err
			}
			err = png.Encode(out, img)
			return errors.Join(err, out.Close())
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "write the image to `file`")
	cmd.Flags().StringVar(&scriptFile, "script", "", "replay the gestures in `file` before rendering")
	cmd.Flags().IntVar(&cacheLevels, "cache", 16, "number of pyramid levels kept in memory")
	_ = cmd.MarkFlagRequired("output")
	return cmd
}
