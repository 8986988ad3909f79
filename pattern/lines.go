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

package pattern

import (
	"math"

	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/vectorlab/canvas"
)

// linesRenderer draws parallel lines across the canvas.
type linesRenderer struct{}

func (linesRenderer) Kind() Kind { return Lines }

func (linesRenderer) Render(c canvas.Canvas, l *Layer, f Frame) {
	n := l.ElementCount(f.Time)
	s := newSampler(l, n, f.Time)
	elems := s.sampleLine(n, progress1D)

	w, h := f.W, f.H
	switch l.Direction {
	case Horizontal:
		pos := positions(l.resolveLayout(), elems, h)
		for i, e := range elems {
			halfGap := (1 - e.length) / 2 * w
			c.StrokeLine(canvas.Pt(halfGap, pos[i]), canvas.Pt(w-halfGap, pos[i]),
				e.strokeWidth(), e.color)
		}
	case Diagonal:
		step := w / float64(n) * 1.5
		for i, e := range elems {
			offset := (float64(i) - float64(n)/2) * step
			a := canvas.Pt(offset, 0)
			b := canvas.Pt(offset+w, h)
			a, b = shorten(a, b, e.length)
			c.StrokeLine(a, b, e.strokeWidth(), e.color)
		}
	default:
		pos := positions(l.resolveLayout(), elems, w)
		for i, e := range elems {
			halfGap := (1 - e.length) / 2 * h
			c.StrokeLine(canvas.Pt(pos[i], halfGap), canvas.Pt(pos[i], h-halfGap),
				e.strokeWidth(), e.color)
		}
	}
}

// shorten scales the segment from a to b by the factor frac about its
// midpoint.
func shorten(a, b vec.Vec2, frac float64) (vec.Vec2, vec.Vec2) {
	if frac == 1 || math.IsNaN(frac) {
		return a, b
	}
	mx, my := (a.X+b.X)/2, (a.Y+b.Y)/2
	a.X = mx + (a.X-mx)*frac
	a.Y = my + (a.Y-my)*frac
	b.X = mx + (b.X-mx)*frac
	b.Y = my + (b.Y-my)*frac
	return a, b
}
