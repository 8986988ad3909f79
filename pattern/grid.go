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
	"seehuhn.de/go/vectorlab/attr"
	"seehuhn.de/go/vectorlab/canvas"
)

// gridRenderer draws one shape per cell of a square grid: stroked
// rectangles, or filled dots if dots is set.
type gridRenderer struct {
	dots bool
}

func (r gridRenderer) Kind() Kind {
	if r.dots {
		return Dots
	}
	return Grid
}

func (r gridRenderer) Render(c canvas.Canvas, l *Layer, f Frame) {
	g := gridSize(l.ElementCount(f.Time))
	s := newSampler(l, g*g, f.Time)

	elems := make([]element, 0, g*g)
	for row := range g {
		for col := range g {
			elems = append(elems, s.sample(progress{
				weight:  attr.Project(col, row, g, g, l.Weight.Axis),
				spacing: attr.Project(col, row, g, g, l.Spacing.Axis),
				length:  attr.Project(col, row, g, g, l.Length.Axis),
				opacity: attr.Project(col, row, g, g, l.Opacity.Axis),
				color:   attr.Project(col, row, g, g, l.Color.Axis),
			}))
		}
	}

	cellW := f.W / float64(g)
	cellH := f.H / float64(g)
	for row := range g {
		for col := range g {
			e := elems[row*g+col]
			cx := (float64(col) + 0.5) * cellW
			cy := (float64(row) + 0.5) * cellH
			if r.dots {
				if e.weight > 0 {
					c.FillCircle(canvas.Pt(cx, cy), e.weight, e.color)
				}
				continue
			}
			size := e.length * e.spacing
			rw := cellW * size
			rh := cellH * size
			c.StrokeRect(cx-rw/2, cy-rh/2, rw, rh, e.strokeWidth(), e.color)
		}
	}
}
