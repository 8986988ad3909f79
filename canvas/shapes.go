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

package canvas

import (
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"
)

// kappa places the control points of a cubic Bézier quarter circle.
const kappa = 0.5522847498307936

// Circle returns a closed path approximating the circle with the given
// centre and radius by four cubic Bézier arcs.  The path runs clockwise
// on screen, starting at the rightmost point.
func Circle(c vec.Vec2, r float64) *path.Data {
	k := kappa * r
	x, y := c.X, c.Y
	return (&path.Data{}).
		MoveTo(Pt(x+r, y)).
		CubeTo(Pt(x+r, y+k), Pt(x+k, y+r), Pt(x, y+r)).
		CubeTo(Pt(x-k, y+r), Pt(x-r, y+k), Pt(x-r, y)).
		CubeTo(Pt(x-r, y-k), Pt(x-k, y-r), Pt(x, y-r)).
		CubeTo(Pt(x+k, y-r), Pt(x+r, y-k), Pt(x+r, y)).
		Close()
}

// Rect returns the closed path of an axis-parallel rectangle.
func Rect(x, y, w, h float64) *path.Data {
	return (&path.Data{}).
		MoveTo(Pt(x, y)).
		LineTo(Pt(x+w, y)).
		LineTo(Pt(x+w, y+h)).
		LineTo(Pt(x, y+h)).
		Close()
}

// Line returns the open path from a to b.
func Line(a, b vec.Vec2) *path.Data {
	return (&path.Data{}).MoveTo(a).LineTo(b)
}
