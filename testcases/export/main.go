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

// Command export writes every scenario as a project file, together with
// an index listing the file names and render times.
package main

import (
	"encoding/json"
	"flag"
	"maps"
	"os"
	"path/filepath"
	"slices"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"seehuhn.de/go/vectorlab/scene"
	"seehuhn.de/go/vectorlab/testcases"
)

type indexEntry struct {
	Name   string  `json:"name"`
	File   string  `json:"file"`
	Width  int     `json:"width"`
	Height int     `json:"height"`
	Time   float64 `json:"time"`
	Layers int     `json:"layers"`
}

func main() {
	outDir := flag.String("o", "testdata/projects", "output directory")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	if err := os.MkdirAll(*outDir, 0755); err != nil {
		log.Fatal().Err(err).Msg("cannot create output directory")
	}

	var index struct {
		Scenarios []indexEntry `json:"scenarios"`
	}
	for _, category := range slices.Sorted(maps.Keys(testcases.All)) {
		for _, s := range testcases.All[category] {
			name := category + "_" + s.Name
			d := s.Document()
			file := name + ".json"
			if err := scene.WriteFile(filepath.Join(*outDir, file), d); err != nil {
				log.Fatal().Err(err).Str("case", name).Msg("write project")
			}
			index.Scenarios = append(index.Scenarios, indexEntry{
				Name:   name,
				File:   file,
				Width:  d.Width,
				Height: d.Height,
				Time:   s.Time,
				Layers: len(d.Layers),
			})
		}
	}

	f, err := os.Create(filepath.Join(*outDir, "index.json"))
	if err != nil {
		log.Fatal().Err(err).Msg("create index")
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(index); err != nil {
		log.Fatal().Err(err).Msg("write index")
	}
	log.Info().Int("scenarios", len(index.Scenarios)).Str("dir", *outDir).Msg("exported")
}
