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
	"time"

	"github.com/spf13/cobra"

	"seehuhn.de/go/deepzoom/internal/watch"
)

func newWatchCommand(g *globals) *cobra.Command {
	var delay time.Duration

	cmd := &cobra.Command{
		Use:   "watch file.dzc",
		Short: "Reload a descriptor whenever it changes and report the regions",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			s, err := g.open(path)
			if err != nil {
				return err
			}
			g.logger.Info("watching", "file", path, "regions", len(s.v.Regions()))

			return watch.File(cmd.Context(), path, delay, func() {
				// failures are logged by the viewer, and the previous
				// source stays loaded
				if err := s.img.Open(path); err != nil {
					return
				}
				g.logger.Info("reloaded", "file", path, "regions", len(s.v.Regions()))
			})
		},
	}
	cmd.Flags().DurationVar(&delay, "delay", watch.DefaultDelay, "quiet period before reloading")
	return cmd
}
