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

// Package canvas defines the drawing surface used by the pattern
// renderers.
//
// Coordinates are in pixels with the origin in the top-left corner and
// y pointing down.  Lines are drawn with round caps, rectangles with
// mitered corners.  All colours are non-premultiplied.
package canvas

import (
	"image/color"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/vec"
)

// Canvas is a drawing surface with a current transformation matrix.
type Canvas interface {
	// Size returns the dimensions of the surface in pixels.
	Size() (w, h float64)

	// Push saves the current transformation.  Pop restores the most
	// recently saved one.
	Push()
	Pop()

	// Transform prepends m to the current transformation, so that m is
	// applied to coordinates before everything set up so far.
	Transform(m matrix.Matrix)

	StrokeLine(a, b vec.Vec2, width float64, col color.NRGBA)
	StrokeRect(x, y, w, h, width float64, col color.NRGBA)
	StrokeCircle(center vec.Vec2, r, width float64, col color.NRGBA)

	FillRect(x, y, w, h float64, col color.NRGBA)
	FillCircle(center vec.Vec2, r float64, col color.NRGBA)

	// Clear paints the whole surface, ignoring the transformation.
	Clear(col color.NRGBA)
}

// Pt returns the point (x, y).
func Pt(x, y float64) vec.Vec2 {
	return vec.Vec2{X: x, Y: y}
}

// Apply maps p through m.
func Apply(m matrix.Matrix, p vec.Vec2) vec.Vec2 {
	return vec.Vec2{
		X: m[0]*p.X + m[2]*p.Y + m[4],
		Y: m[1]*p.X + m[3]*p.Y + m[5],
	}
}

// Stack keeps track of a current transformation and the saved states of
// a canvas.  Backends embed it to implement Push, Pop and Transform.
type Stack struct {
	CTM   matrix.Matrix
	saved []matrix.Matrix
}

// NewStack returns a stack with the given base transformation.
func NewStack(base matrix.Matrix) Stack {
	return Stack{CTM: base}
}

// Push implements [Canvas].
func (s *Stack) Push() {
	s.saved = append(s.saved, s.CTM)
}

// Pop implements [Canvas].  Unbalanced calls are ignored.
func (s *Stack) Pop() {
	n := len(s.saved)
	if n == 0 {
		return
	}
	s.CTM = s.saved[n-1]
	s.saved = s.saved[:n-1]
}

// Transform implements [Canvas].
func (s *Stack) Transform(m matrix.Matrix) {
	s.CTM = m.Mul(s.CTM)
}

// Depth returns the number of saved states.
func (s *Stack) Depth() int {
	return len(s.saved)
}
