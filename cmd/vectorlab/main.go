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

// Vectorlab renders layered parametric patterns.
//
// Usage:
//
//	vectorlab [-config file] [-v level] command [arguments]
//
// The commands are:
//
//	render    render one frame to PNG
//	frames    render a PNG sequence
//	pdf       render one frame to PDF
//	serve     run the live preview server
//	view      show a project in the terminal
//	inspect   print a project and its primitive counts
//	new       write a new project file
//	save      store a project in the library
//	load      fetch a project from the library
//	list      list the library
//	delete    remove a project from the library
//	config    write the effective settings file
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"seehuhn.de/go/vectorlab/config"
	"seehuhn.de/go/vectorlab/internal/vlog"
)

type command struct {
	name  string
	usage string
	run   func(cfg *config.Config, fs *flag.FlagSet, args []string) error
}

var commands = []command{
	{"render", "[-t sec] [-o out.png] project.json", cmdRender},
	{"frames", "[-fps n] [-duration d] [-o pattern] project.json", cmdFrames},
	{"pdf", "[-t sec] [-o out.pdf] project.json", cmdPDF},
	{"serve", "[-addr host:port] [-resume] [project.json]", cmdServe},
	{"view", "[project.json]", cmdView},
	{"inspect", "[-t sec] project.json", cmdInspect},
	{"new", "[-random] [-seed n] [-o out.json]", cmdNew},
	{"save", "-name name project.json", cmdSave},
	{"load", "[-o out.json] name", cmdLoad},
	{"list", "", cmdList},
	{"delete", "name", cmdDelete},
	{"config", "[-o file]", cmdConfig},
}

var configPath *string

func usage() {
	out := flag.CommandLine.Output()
	fmt.Fprintf(out, "usage: vectorlab [flags] command [arguments]\n\n")
	fmt.Fprintf(out, "flags:\n")
	flag.PrintDefaults()
	fmt.Fprintf(out, "\ncommands:\n")
	for _, c := range commands {
		fmt.Fprintf(out, "  %-8s %s\n", c.name, c.usage)
	}
}

func main() {
	configPath = flag.String("config", "vectorlab.yaml", "path to the settings file")
	level := flag.String("v", "", "log level (debug, info, warn, error)")
	flag.Usage = usage
	flag.Parse()

	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("cannot load settings")
	}
	if *level != "" {
		cfg.Log.Level = *level
	}
	zerolog.SetGlobalLevel(cfg.LogLevel())
	vlog.Set(&log.Logger)

	if flag.NArg() < 1 {
		usage()
		os.Exit(2)
	}
	name, args := flag.Arg(0), flag.Args()[1:]
	for _, c := range commands {
		if c.name != name {
			continue
		}
		if err := c.run(cfg, newFlags(c.name, c.usage), args); err != nil {
			log.Fatal().Err(err).Str("command", name).Msg("failed")
		}
		return
	}
	fmt.Fprintf(os.Stderr, "vectorlab: unknown command %q\n", name)
	usage()
	os.Exit(2)
}

// newFlags returns the flag set of a sub-command.
func newFlags(name, usage string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "usage: vectorlab %s %s\n", name, usage)
		fs.PrintDefaults()
	}
	return fs
}

func cmdConfig(cfg *config.Config, fs *flag.FlagSet, args []string) error {
	out := fs.String("o", *configPath, "output file")
	fs.Parse(args)
	if err := config.Save(*out, cfg); err != nil {
		return err
	}
	log.Info().Str("file", *out).Msg("settings written")
	return nil
}
