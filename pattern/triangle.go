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

// triangleRenderer fills an isosceles triangle with horizontal lines.
type triangleRenderer struct{}

func (triangleRenderer) Kind() Kind { return Triangle }

func (triangleRenderer) Render(c canvas.Canvas, l *Layer, f Frame) {
	n := l.ElementCount(f.Time)
	s := newSampler(l, n, f.Time)
	elems := s.sampleLine(n, progress1D)

	apexX, apexY := f.W/2, f.H*0.1
	leftX, rightX := f.W*0.1, f.W*0.9
	baseY := f.H * 0.9
	extent := baseY - apexY

	var offsets []float64
	layout := l.resolveLayout()
	if layout == LayoutUniform && l.Layout != LayoutUniform {
		// constant spacing runs the scan lines from apex to base
		offsets = make([]float64, n)
		for i := range offsets {
			offsets[i] = progress1D(i, n) * extent
		}
	} else {
		offsets = positions(layout, elems, extent)
	}

	for i, e := range elems {
		p := offsets[i] / extent
		y := apexY + offsets[i]
		xl := apexX + (leftX-apexX)*p
		xr := apexX + (rightX-apexX)*p
		c.StrokeLine(canvas.Pt(xl, y), canvas.Pt(xr, y), e.strokeWidth(), e.color)
	}
}
