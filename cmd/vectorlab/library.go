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
	"context"
	"errors"
	"flag"
	"fmt"
	"math/rand/v2"
	"os"
	"text/tabwriter"
	"time"

	"github.com/rs/zerolog/log"

	"seehuhn.de/go/vectorlab/config"
	"seehuhn.de/go/vectorlab/scene"
	"seehuhn.de/go/vectorlab/store"
)

func libraryFlag(cfg *config.Config, fs *flag.FlagSet) {
	fs.StringVar(&cfg.Library.Path, "db", cfg.Library.Path, "project library file")
}

func cmdNew(cfg *config.Config, fs *flag.FlagSet, args []string) error {
	random := fs.Bool("random", false, "randomise the first layer")
	seed := fs.Uint64("seed", 0, "random seed (0 picks one)")
	out := fs.String("o", "project.json", "output file")
	fs.IntVar(&cfg.Canvas.Width, "width", cfg.Canvas.Width, "canvas width")
	fs.IntVar(&cfg.Canvas.Height, "height", cfg.Canvas.Height, "canvas height")
	fs.Parse(args)

	d := scene.New()
	d.SetSize(cfg.Canvas.Width, cfg.Canvas.Height)
	if *random {
		s := *seed
		if s == 0 {
			s = uint64(time.Now().UnixNano())
		}
		rng := rand.New(rand.NewPCG(s, 0))
		l, err := d.ActiveLayer()
		if err != nil {
			return err
		}
		scene.Randomize(&l, rng)
		if err := d.CommitLayer(l.ID, l); err != nil {
			return err
		}
		log.Info().Uint64("seed", s).Str("pattern", string(l.Pattern)).Msg("randomised")
	}
	if err := scene.WriteFile(*out, d); err != nil {
		return err
	}
	log.Info().Str("file", *out).Msg("project written")
	return nil
}

func cmdSave(cfg *config.Config, fs *flag.FlagSet, args []string) error {
	name := fs.String("name", "", "name in the library")
	libraryFlag(cfg, fs)
	fs.Parse(args)
	if *name == "" {
		fs.Usage()
		return errors.New("missing -name")
	}

	d, err := readProject(fs)
	if err != nil {
		return err
	}
	lib, err := store.Open(cfg.Library.Path)
	if err != nil {
		return err
	}
	defer lib.Close()
	if err := lib.Save(context.Background(), *name, d); err != nil {
		return err
	}
	log.Info().Str("name", *name).Int("layers", len(d.Layers)).Msg("project saved")
	return nil
}

func cmdLoad(cfg *config.Config, fs *flag.FlagSet, args []string) error {
	out := fs.String("o", "-", "output file, - for standard output")
	libraryFlag(cfg, fs)
	fs.Parse(args)
	if fs.NArg() != 1 {
		fs.Usage()
		return errors.New("expected one project name")
	}

	lib, err := store.Open(cfg.Library.Path)
	if err != nil {
		return err
	}
	defer lib.Close()
	d, err := lib.Load(context.Background(), fs.Arg(0))
	if err != nil {
		return err
	}
	if *out == "-" {
		return scene.Encode(os.Stdout, d)
	}
	return scene.WriteFile(*out, d)
}

func cmdList(cfg *config.Config, fs *flag.FlagSet, args []string) error {
	libraryFlag(cfg, fs)
	fs.Parse(args)

	lib, err := store.Open(cfg.Library.Path)
	if err != nil {
		return err
	}
	defer lib.Close()
	entries, err := lib.List(context.Background())
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(os.Stdout, 0, 8, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tSAVED\tLAYERS\tSIZE")
	for _, e := range entries {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%dx%d\n", e.Name, e.Saved.Local().Format(time.DateTime), e.Layers, e.Width, e.Height)
	}
	return tw.Flush()
}

func cmdDelete(cfg *config.Config, fs *flag.FlagSet, args []string) error {
	libraryFlag(cfg, fs)
	fs.Parse(args)
	if fs.NArg() != 1 {
		fs.Usage()
		return errors.New("expected one project name")
	}

	lib, err := store.Open(cfg.Library.Path)
	if err != nil {
		return err
	}
	defer lib.Close()
	if err := lib.Delete(context.Background(), fs.Arg(0)); err != nil {
		return err
	}
	log.Info().Str("name", fs.Arg(0)).Msg("project deleted")
	return nil
}
