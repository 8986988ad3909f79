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

// Package termview shows an animated document in a terminal.
//
// Every character cell displays two pixels using the upper half block
// character, with the foreground colour for the top pixel and the
// background colour for the bottom one.  The last row of the screen is
// used as a status line.
package termview

import (
	"context"
	"errors"
	"fmt"
	"image"
	"math/rand/v2"
	"time"

	"github.com/gdamore/tcell/v2"

	"seehuhn.de/go/geom/matrix"

	"seehuhn.de/go/vectorlab/internal/vlog"
	"seehuhn.de/go/vectorlab/palette"
	"seehuhn.de/go/vectorlab/pattern"
	"seehuhn.de/go/vectorlab/raster"
	"seehuhn.de/go/vectorlab/scene"
)

const halfBlock = '▀'

// Action tells the event loop what to do after a key press.
type Action int

const (
	None Action = iota
	Redraw
	Quit
)

// Viewer holds the state of an interactive terminal session.
type Viewer struct {
	Doc    *scene.Document
	FPS    int
	Paused bool

	// Time is the animation time in seconds.  It only advances while
	// the viewer is not paused.
	Time float64

	status string
	rng    *rand.Rand
}

// New returns a viewer for d.  The document is edited in place.
func New(d *scene.Document, fps int) *Viewer {
	return &Viewer{
		Doc: d,
		FPS: max(fps, 1),
		rng: rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0)),
	}
}

// HandleKey applies a key press to the viewer.
func (v *Viewer) HandleKey(ev *tcell.EventKey) Action {
	switch ev.Key() {
	case tcell.KeyEsc, tcell.KeyCtrlC:
		return Quit
	case tcell.KeyLeft:
		v.Doc.SelectOffset(-1)
		return Redraw
	case tcell.KeyRight:
		v.Doc.SelectOffset(1)
		return Redraw
	case tcell.KeyRune:
	default:
		return None
	}

	var err error
	switch ev.Rune() {
	case 'q':
		return Quit
	case ' ':
		v.Paused = !v.Paused
	case 'v':
		err = v.Doc.ToggleVisible(v.Doc.Active)
	case 'd':
		_, err = v.Doc.DuplicateLayer(v.Doc.Active)
	case 'x':
		err = v.Doc.RemoveLayer(v.Doc.Active)
	case 'r':
		var l pattern.Layer
		l, err = v.Doc.ActiveLayer()
		if err == nil {
			scene.Randomize(&l, v.rng)
			err = v.Doc.CommitLayer(l.ID, l)
		}
	default:
		return None
	}
	v.status = ""
	if err != nil {
		v.status = err.Error()
	}
	return Redraw
}

// Status returns the text of the status line.
func (v *Viewer) Status() string {
	d := v.Doc
	pos := 0
	name := "?"
	hidden := ""
	for i, l := range d.Layers {
		if l.ID == d.Active {
			pos = i + 1
			name = l.Name
			if !l.Visible {
				hidden = " (hidden)"
			}
		}
	}
	s := fmt.Sprintf("%d/%d %s%s  t=%.1fs", pos, len(d.Layers), name, hidden, v.Time)
	if v.Paused {
		s += "  paused"
	}
	if v.status != "" {
		s += "  " + v.status
	}
	return s
}

// Frame renders d at the given time for a terminal with cols×rows
// character cells.  The document is scaled uniformly to fit and
// centred; the result has cols×2·rows pixels.
func Frame(d *scene.Document, cols, rows int, time float64) *image.NRGBA {
	w, h := cols, 2*rows
	im := raster.NewImage(w, h, 1)
	im.Clear(palette.Black.NRGBA(255))
	if w > 0 && h > 0 && d.Width > 0 && d.Height > 0 {
		s := min(float64(w)/float64(d.Width), float64(h)/float64(d.Height))
		ox := (float64(w) - s*float64(d.Width)) / 2
		oy := (float64(h) - s*float64(d.Height)) / 2
		im.Push()
		im.Transform(matrix.Matrix{s, 0, 0, s, ox, oy})
		scene.RenderFrame(im, d, time)
		im.Pop()
	}
	return im.NRGBA()
}

// Paint copies img to the screen, two pixel rows per character row,
// starting at the top-left corner.
func Paint(screen tcell.Screen, img *image.NRGBA) {
	b := img.Bounds()
	for y := 0; 2*y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			top := img.NRGBAAt(b.Min.X+x, b.Min.Y+2*y)
			bot := img.NRGBAAt(b.Min.X+x, b.Min.Y+2*y+1)
			style := tcell.StyleDefault.
				Foreground(tcell.NewRGBColor(int32(top.R), int32(top.G), int32(top.B))).
				Background(tcell.NewRGBColor(int32(bot.R), int32(bot.G), int32(bot.B)))
			screen.SetContent(x, y, halfBlock, nil, style)
		}
	}
}

func drawText(screen tcell.Screen, x, y int, text string) {
	w, _ := screen.Size()
	for _, r := range text {
		if x >= w {
			return
		}
		screen.SetContent(x, y, r, nil, tcell.StyleDefault)
		x++
	}
}

// Draw renders the current frame and the status line.
func (v *Viewer) Draw(screen tcell.Screen) {
	cols, rows := screen.Size()
	screen.Clear()
	if rows > 1 {
		Paint(screen, Frame(v.Doc, cols, rows-1, v.Time))
	}
	if rows > 0 {
		drawText(screen, 0, rows-1, v.Status())
	}
	screen.Show()
}

// Run shows the document on screen until the user quits or ctx is
// cancelled.  The screen must be initialised; Run does not finalise it.
func (v *Viewer) Run(ctx context.Context, screen tcell.Screen) error {
	events := make(chan tcell.Event, 16)
	quit := make(chan struct{})
	defer close(quit)
	go screen.ChannelEvents(events, quit)

	dt := time.Second / time.Duration(v.FPS)
	ticker := time.NewTicker(dt)
	defer ticker.Stop()

	v.Draw(screen)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-events:
			if !ok {
				return errors.New("terminal closed")
			}
			switch ev := ev.(type) {
			case *tcell.EventResize:
				screen.Sync()
				v.Draw(screen)
			case *tcell.EventKey:
				switch v.HandleKey(ev) {
				case Quit:
					return nil
				case Redraw:
					v.Draw(screen)
				}
			}
		case <-ticker.C:
			if v.Paused {
				continue
			}
			v.Time += dt.Seconds()
			start := time.Now()
			v.Draw(screen)
			if el := time.Since(start); el > dt {
				vlog.L().Debug().Dur("elapsed", el).Msg("frame took longer than the tick")
			}
		}
	}
}
