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

	"seehuhn.de/go/vectorlab/canvas"
)

// radialRenderer draws spokes around the canvas centre.
type radialRenderer struct{}

func (radialRenderer) Kind() Kind { return Radial }

func (radialRenderer) Render(c canvas.Canvas, l *Layer, f Frame) {
	n := l.ElementCount(f.Time)
	s := newSampler(l, n, f.Time)
	elems := s.sampleLine(n, func(i, n int) float64 {
		return float64(i) / float64(n)
	})

	cx, cy := f.W/2, f.H/2
	outer := min(f.W, f.H) * 0.7
	for i, e := range elems {
		angle := float64(i) / float64(n) * 2 * math.Pi
		sin, cos := math.Sincos(angle)
		inner := outer * (1 - e.length)
		a := canvas.Pt(cx+cos*inner, cy+sin*inner)
		b := canvas.Pt(cx+cos*outer, cy+sin*outer)
		c.StrokeLine(a, b, e.strokeWidth(), e.color)
	}
}
