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

package attr

// Axis selects how a grid cell is turned into a progress value.
type Axis string

// The supported axes.
const (
	AxisX    Axis = "x"
	AxisY    Axis = "y"
	AxisXY   Axis = "xy"
	AxisNone Axis = "none"
)

// Axes lists all axes in presentation order.
var Axes = []Axis{AxisX, AxisY, AxisXY, AxisNone}

// Valid reports whether a is a known axis.  The empty string is accepted
// and behaves as [AxisNone].
func (a Axis) Valid() bool {
	switch a {
	case "", AxisX, AxisY, AxisXY, AxisNone:
		return true
	}
	return false
}

// Project returns the progress of cell (col, row) in a grid with cx
// columns and cy rows.
//
// For [AxisX] and [AxisY] the progress runs along one direction of the
// grid, [AxisXY] averages both.  [AxisNone] orders the cells row by row.
// A grid with a single column (or row) places that column at 0.5.
func Project(col, row, cx, cy int, axis Axis) float64 {
	tx := 0.5
	if cx > 1 {
		tx = float64(col) / float64(cx-1)
	}
	ty := 0.5
	if cy > 1 {
		ty = float64(row) / float64(cy-1)
	}

	switch axis {
	case AxisX:
		return tx
	case AxisY:
		return ty
	case AxisXY:
		return (tx + ty) / 2
	default:
		n := cx * cy
		if n <= 1 {
			return 0.5
		}
		return float64(row*cx+col) / float64(n-1)
	}
}
