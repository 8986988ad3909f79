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

import "seehuhn.de/go/vectorlab/canvas"

// circlesRenderer draws concentric rings.
type circlesRenderer struct{}

func (circlesRenderer) Kind() Kind { return Circles }

func (circlesRenderer) Render(c canvas.Canvas, l *Layer, f Frame) {
	n := l.ElementCount(f.Time)
	s := newSampler(l, n, f.Time)
	elems := s.sampleLine(n, progress1D)

	center := canvas.Pt(f.W/2, f.H/2)
	maxR := min(f.W, f.H) * 0.45

	var radii []float64
	if layout := l.resolveLayout(); layout == LayoutUniform {
		radii = make([]float64, n)
		for i := range radii {
			t := progress1D(i, n)
			radii[i] = (t*0.9 + 0.1) * maxR
		}
	} else {
		radii = positions(layout, elems, maxR)
	}

	for i, e := range elems {
		if radii[i] <= 0 {
			continue
		}
		c.StrokeCircle(center, radii[i], e.strokeWidth(), e.color)
	}
}
