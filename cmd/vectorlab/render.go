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
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/rs/zerolog/log"

	"seehuhn.de/go/geom/matrix"

	"seehuhn.de/go/vectorlab/canvas"
	"seehuhn.de/go/vectorlab/config"
	"seehuhn.de/go/vectorlab/ggcanvas"
	"seehuhn.de/go/vectorlab/pdfout"
	"seehuhn.de/go/vectorlab/raster"
	"seehuhn.de/go/vectorlab/scene"
)

// readProject reads the project named by the only positional argument.
// "-" reads standard input.
func readProject(fs *flag.FlagSet) (*scene.Document, error) {
	if fs.NArg() != 1 {
		fs.Usage()
		return nil, errors.New("expected one project file")
	}
	name := fs.Arg(0)
	if name == "-" {
		return scene.Decode(os.Stdin)
	}
	return scene.ReadFile(name)
}

// surface is a raster canvas which can be written as PNG.
type surface interface {
	canvas.Canvas
	EncodePNG(w io.Writer) error
}

// newSurface returns a canvas for a w×h document using the configured
// backend.  The returned function releases the canvas.
func newSurface(cfg *config.Config, w, h int) (surface, func()) {
	d := max(cfg.Canvas.Density, 1)
	switch cfg.Render.Backend {
	case config.BackendGG:
		c := ggcanvas.New(w*d, h*d)
		c.Transform(matrix.Scale(float64(d), float64(d)))
		return c, func() {
			if err := c.Close(); err != nil {
				log.Warn().Err(err).Msg("close gg context")
			}
		}
	default:
		im := raster.NewImage(w, h, d)
		im.SetFlatness(cfg.Render.Flatness)
		return im, func() {}
	}
}

func writePNG(fname string, s surface) (err error) {
	f, err := os.Create(fname)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return s.EncodePNG(f)
}

func renderFlags(cfg *config.Config, fs *flag.FlagSet) {
	fs.IntVar(&cfg.Canvas.Density, "density", cfg.Canvas.Density, "pixel density (1, 2 or 4)")
	fs.StringVar(&cfg.Render.Backend, "backend", cfg.Render.Backend, "rendering backend (raster or gg)")
	fs.Float64Var(&cfg.Render.Flatness, "flatness", cfg.Render.Flatness, "curve flattening tolerance in device pixels")
}

func cmdRender(cfg *config.Config, fs *flag.FlagSet, args []string) error {
	t := fs.Float64("t", 0, "animation time in seconds")
	out := fs.String("o", "out.png", "output file")
	renderFlags(cfg, fs)
	fs.Parse(args)
	if err := cfg.Validate(); err != nil {
		return err
	}

	d, err := readProject(fs)
	if err != nil {
		return err
	}
	s, release := newSurface(cfg, d.Width, d.Height)
	defer release()
	scene.RenderFrame(s, d, *t)
	if err := writePNG(*out, s); err != nil {
		return err
	}
	log.Info().Str("file", *out).Float64("time", *t).Msg("frame written")
	return nil
}

func cmdFrames(cfg *config.Config, fs *flag.FlagSet, args []string) error {
	fs.IntVar(&cfg.Render.FPS, "fps", cfg.Render.FPS, "frames per second")
	fs.DurationVar(&cfg.Render.Duration, "duration", cfg.Render.Duration, "length of the sequence")
	fs.IntVar(&cfg.Render.Frames, "n", cfg.Render.Frames, "number of frames (overrides -duration)")
	start := fs.Float64("t", 0, "time of the first frame in seconds")
	out := fs.String("o", "frame-%04d.png", "output file name pattern")
	renderFlags(cfg, fs)
	fs.Parse(args)
	if err := cfg.Validate(); err != nil {
		return err
	}

	d, err := readProject(fs)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(*out); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	n := cfg.Render.FrameCount()
	begin := time.Now()
	for i := range n {
		if err := ctx.Err(); err != nil {
			log.Warn().Int("frame", i).Int("total", n).Msg("interrupted")
			return err
		}
		s, release := newSurface(cfg, d.Width, d.Height)
		scene.RenderFrame(s, d, *start+float64(i)/float64(cfg.Render.FPS))
		fname := fmt.Sprintf(*out, i)
		err := writePNG(fname, s)
		release()
		if err != nil {
			return err
		}
		log.Debug().Int("frame", i).Str("file", fname).Msg("frame written")
	}
	log.Info().Int("frames", n).Dur("elapsed", time.Since(begin)).Msg("sequence written")
	return nil
}

func cmdPDF(cfg *config.Config, fs *flag.FlagSet, args []string) error {
	t := fs.Float64("t", 0, "animation time in seconds")
	out := fs.String("o", "out.pdf", "output file")
	fs.Parse(args)

	d, err := readProject(fs)
	if err != nil {
		return err
	}
	page, err := pdfout.Create(*out, float64(d.Width), float64(d.Height))
	if err != nil {
		return err
	}
	scene.RenderFrame(page, d, *t)
	if err := page.Close(); err != nil {
		return err
	}
	log.Info().Str("file", *out).Float64("time", *t).Msg("page written")
	return nil
}
