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
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"seehuhn.de/go/deepzoom/region"
)

func newRegionsCommand(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "regions file.dzc",
		Short: "List the regions of a collection in logical coordinates",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := g.open(args[0])
			if err != nil {
				return err
			}
			return writeRegions(cmd.OutOrStdout(), s.v.Regions())
		},
	}
}

func writeRegions(out io.Writer, regions []region.Region) error {
	t := newTable(out)
	t.row("id", "x", "y", "width", "height", "aspect")
	for _, r := range regions {
		t.row(
			fmt.Sprint(r.ID),
			formatFloat(r.Rect.LLx),
			formatFloat(r.Rect.LLy),
			formatFloat(r.Rect.Dx()),
			formatFloat(r.Rect.Dy()),
			formatFloat(r.AspectRatio),
		)
	}
	return t.flush()
}

// formatFloat formats x with six significant digits.  Negative zero,
// which the sub-image rectangle formula produces for items at the origin,
// is printed as 0.
func formatFloat(x float64) string {
	if x == 0 {
		x = 0
	}
	return fmt.Sprintf("%.6g", x)
}

// table writes rows either aligned, if out is a terminal, or as
// tab-separated values.
type table struct {
	out io.Writer
	tw  *tabwriter.Writer
	err error
}

func newTable(out io.Writer) *table {
	t := &table{out: out}
	if f, ok := out.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		t.tw = tabwriter.NewWriter(out, 0, 8, 2, ' ', 0)
		t.out = t.tw
	}
	return t
}

func (t *table) row(cols ...string) {
	if t.err != nil {
		return
	}
	for i, c := range cols {
		if i > 0 {
			_, t.err = io.WriteString(t.out, "\t")
		}
		if t.err == nil {
			_, t.err = io.WriteString(t.out, c)
		}
	}
	if t.err == nil {
		_, t.err = io.WriteString(t.out, "\n")
	}
}

func (t *table) flush() error {
	if t.err == nil && t.tw != nil {
		t.err = t.tw.Flush()
	}
	return t.err
}
