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
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog/log"

	"seehuhn.de/go/vectorlab/config"
	"seehuhn.de/go/vectorlab/internal/vlog"
	"seehuhn.de/go/vectorlab/preview"
	"seehuhn.de/go/vectorlab/scene"
	"seehuhn.de/go/vectorlab/store"
	"seehuhn.de/go/vectorlab/termview"
)

// startProject reads the project given on the command line.  Without
// an argument, the autosaved project is used if resume is set, and a
// new document otherwise.
func startProject(ctx context.Context, cfg *config.Config, fs *flag.FlagSet, lib *store.Library, resume bool) (*scene.Document, error) {
	if fs.NArg() > 0 {
		return readProject(fs)
	}
	if resume && lib != nil {
		d, saved, err := lib.LoadAutosave(ctx)
		if err == nil {
			log.Info().Time("saved", saved).Msg("resuming autosaved project")
			return d, nil
		} else if !errors.Is(err, store.ErrNotFound) {
			return nil, err
		}
	}
	d := scene.New()
	d.SetSize(cfg.Canvas.Width, cfg.Canvas.Height)
	return d, nil
}

func cmdServe(cfg *config.Config, fs *flag.FlagSet, args []string) error {
	fs.StringVar(&cfg.Preview.Addr, "addr", cfg.Preview.Addr, "HTTP listen address")
	fs.IntVar(&cfg.Render.FPS, "fps", cfg.Render.FPS, "frames per second")
	resume := fs.Bool("resume", false, "continue with the autosaved project")
	noSave := fs.Bool("no-autosave", false, "do not autosave edits to the library")
	fs.Parse(args)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var lib *store.Library
	if !*noSave || *resume {
		var err error
		lib, err = store.Open(cfg.Library.Path)
		if err != nil {
			return err
		}
		defer lib.Close()
	}

	d, err := startProject(ctx, cfg, fs, lib, *resume)
	if err != nil {
		return err
	}

	s := preview.New(d, cfg.Render.FPS)
	s.Density = cfg.Canvas.Density
	s.Flatness = cfg.Render.Flatness
	if lib != nil && !*noSave {
		s.OnChange = func(d *scene.Document) {
			if err := lib.Autosave(context.Background(), d); err != nil {
				log.Warn().Err(err).Msg("autosave failed")
			}
		}
	}

	srv := &http.Server{
		Addr:         cfg.Preview.Addr,
		Handler:      withCORS(s.Handler()),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		if err := s.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			log.Error().Err(err).Msg("render loop stopped")
		}
	}()
	go func() {
		log.Info().Str("addr", srv.Addr).Int("fps", s.FPS).Msg("preview server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("http server error")
			stop()
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func withCORS(h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		h.ServeHTTP(w, r)
	})
}

func cmdView(cfg *config.Config, fs *flag.FlagSet, args []string) error {
	fs.IntVar(&cfg.Render.FPS, "fps", cfg.Render.FPS, "frames per second")
	fs.Parse(args)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	d, err := startProject(ctx, cfg, fs, nil, false)
	if err != nil {
		return err
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()

	// log output would corrupt the screen
	vlog.Set(nil)
	defer vlog.Set(&log.Logger)

	v := termview.New(d, cfg.Render.FPS)
	err = v.Run(ctx, screen)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
