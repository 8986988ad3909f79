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

package scene

import (
	"math"

	"seehuhn.de/go/geom/matrix"

	"seehuhn.de/go/vectorlab/canvas"
	"seehuhn.de/go/vectorlab/pattern"
)

// LayerMatrix returns the transformation which maps canvas-local layer
// coordinates to canvas coordinates, for a w×h canvas.
//
// Reading from the outside in, the layer is moved to the canvas centre,
// rotated by RotZ, compressed vertically by cos(RotX), sheared
// horizontally by tan(RotY/2), shifted by the position offset, scaled,
// and finally moved back so that the canvas centre stays fixed.
func LayerMatrix(t pattern.Transform, w, h float64) matrix.Matrix {
	cx, cy := w/2, h/2
	rz := t.RotZ * math.Pi / 180
	rx := t.RotX * math.Pi / 180
	ry := t.RotY * math.Pi / 180
	sin, cos := math.Sincos(rz)
	s := t.Scale / 100

	// Mul applies the left factor first, so the factors are listed from
	// the innermost to the outermost.
	m := translate(-cx, -cy)
	m = m.Mul(matrix.Matrix{s, 0, 0, s, 0, 0})
	m = m.Mul(translate((t.PosX-50)/100*w, (t.PosY-50)/100*h))
	m = m.Mul(matrix.Matrix{1, 0, math.Tan(ry / 2), 1, 0, 0})
	m = m.Mul(matrix.Matrix{1, 0, 0, math.Cos(rx), 0, 0})
	m = m.Mul(matrix.Matrix{cos, sin, -sin, cos, 0, 0})
	m = m.Mul(translate(cx, cy))
	return m
}

func translate(dx, dy float64) matrix.Matrix {
	return matrix.Matrix{1, 0, 0, 1, dx, dy}
}

// RenderLayer draws a single layer on a w×h canvas at the given time.
// The canvas transformation is restored before RenderLayer returns.
func RenderLayer(c canvas.Canvas, l *pattern.Layer, w, h, time float64) {
	c.Push()
	defer c.Pop()
	c.Transform(LayerMatrix(l.Transform, w, h))
	pattern.Render(c, l, pattern.Frame{W: w, H: h, Time: time})
}

// RenderFrame draws the background and all visible layers of the
// document, bottom layer first.
func RenderFrame(c canvas.Canvas, d *Document, time float64) {
	w, h := float64(d.Width), float64(d.Height)
	DrawBackground(c, d.Background, w, h)
	for i := range d.Layers {
		l := &d.Layers[i]
		if !l.Visible {
			continue
		}
		RenderLayer(c, l, w, h, time)
	}
}
