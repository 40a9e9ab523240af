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
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"seehuhn.de/go/deepzoom/script"
)

func newReplayCommand(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "replay file.dzc script.yaml",
		Short: "Replay a gesture script and print the view after every step",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			steps, err := script.Load(args[1])
			if err != nil {
				return err
			}
			s, err := g.open(args[0])
			if err != nil {
				return err
			}
			return replay(cmd.OutOrStdout(), s, steps)
		},
	}
}

func replay(out io.Writer, s *session, steps []script.Step) error {
	t := newTable(out)
	t.row("step", "time", "event", "action", "x", "y", "width", "zoom", "focus")
	err := script.Run(steps, s.v, s.clock, func(r script.Result) error {
		action := "-"
		if r.Kind == "up" || r.Kind == "click" {
			action = r.Action.String()
		}
		focus := "-"
		if r.State.HasFocus {
			focus = fmt.Sprint(r.State.Focused)
		}
		t.row(
			fmt.Sprint(r.Index),
			r.Time.String(),
			r.Kind,
			action,
			formatFloat(r.State.Origin.X),
			formatFloat(r.State.Origin.Y),
			formatFloat(r.State.Width),
			formatFloat(r.State.Zoom),
			focus,
		)
		return t.err
	})
	if err != nil {
		return err
	}
	return t.flush()
}
