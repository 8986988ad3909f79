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

// Command genpdf writes every scenario as a PDF page and as a PNG image,
// so that the vector and raster renderers can be compared side by side.
package main

import (
	"flag"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"slices"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"seehuhn.de/go/vectorlab/pdfout"
	"seehuhn.de/go/vectorlab/raster"
	"seehuhn.de/go/vectorlab/scene"
	"seehuhn.de/go/vectorlab/testcases"
)

func main() {
	outDir := flag.String("o", "testdata/reference", "output directory")
	density := flag.Int("density", 2, "pixel density of the PNG files")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	if err := os.MkdirAll(*outDir, 0755); err != nil {
		log.Fatal().Err(err).Msg("cannot create output directory")
	}

	for _, category := range slices.Sorted(maps.Keys(testcases.All)) {
		for _, s := range testcases.All[category] {
			name := category + "_" + s.Name
			base := filepath.Join(*outDir, name)

			if err := writePDF(s, base+".pdf"); err != nil {
				log.Fatal().Err(err).Str("case", name).Msg("pdf")
			}
			if err := writePNG(s, base+".png", *density); err != nil {
				log.Fatal().Err(err).Str("case", name).Msg("png")
			}
			log.Debug().Str("case", name).Msg("written")
		}
	}
}

func writePDF(s testcases.Scenario, fname string) error {
	page, err := pdfout.Create(fname, float64(s.Width), float64(s.Height))
	if err != nil {
		return err
	}
	scene.RenderFrame(page, s.Document(), s.Time)
	return page.Close()
}

func writePNG(s testcases.Scenario, fname string, density int) error {
	im := raster.NewImage(s.Width, s.Height, density)
	scene.RenderFrame(im, s.Document(), s.Time)
	if err := im.WritePNG(fname); err != nil {
		return fmt.Errorf("%s: %w", fname, err)
	}
	return nil
}
