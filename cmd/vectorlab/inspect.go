// seehuhn.de/go/vectorlab - layered parametric pattern rendering
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
	"bytes"
	"flag"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/alecthomas/chroma/v2/quick"
	"golang.org/x/term"

	"seehuhn.de/go/vectorlab/canvas"
	"seehuhn.de/go/vectorlab/config"
	"seehuhn.de/go/vectorlab/scene"
)

func cmdInspect(cfg *config.Config, fs *flag.FlagSet, args []string) error {
	t := fs.Float64("t", 0, "animation time in seconds")
	style := fs.String("style", "monokai", "highlighting style for terminal output")
	fs.Parse(args)

	d, err := readProject(fs)
	if err != nil {
		return err
	}

	buf := &bytes.Buffer{}
	if err := scene.Encode(buf, d); err != nil {
		return err
	}
	if term.IsTerminal(int(os.Stdout.Fd())) {
		err = quick.Highlight(os.Stdout, buf.String(), "json", "terminal256", *style)
	} else {
		_, err = buf.WriteTo(os.Stdout)
	}
	if err != nil {
		return err
	}

	fmt.Println()
	return writeCounts(os.Stdout, d, *t)
}

// writeCounts prints the number of drawing primitives each visible
// layer produces at time t.
func writeCounts(w io.Writer, d *scene.Document, t float64) error {
	width, height := float64(d.Width), float64(d.Height)
	rec := canvas.NewRecorder(width, height)
	total := 0
	for i := range d.Layers {
		l := &d.Layers[i]
		if !l.Visible {
			fmt.Fprintf(w, "layer %d %q: hidden\n", l.ID, l.Name)
			continue
		}
		rec.Reset()
		scene.RenderLayer(rec, l, width, height, t)

		counts := rec.Counts()
		kinds := make([]canvas.Kind, 0, len(counts))
		for k := range counts {
			kinds = append(kinds, k)
		}
		slices.Sort(kinds)
		var parts []string
		for _, k := range kinds {
			parts = append(parts, fmt.Sprintf("%d %s", counts[k], k))
		}
		if len(parts) == 0 {
			parts = append(parts, "nothing")
		}
		fmt.Fprintf(w, "layer %d %q (%s): %s\n", l.ID, l.Name, l.Pattern, strings.Join(parts, ", "))
		total += len(rec.Ops)
	}
	_, err := fmt.Fprintf(w, "%d primitives at t=%gs\n", total, t)
	return err
}
