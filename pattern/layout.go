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

// resolveLayout replaces [LayoutAuto] by the policy it stands for.
// Constant spacing gives a uniform layout, varying spacing a
// proportional one.
func (l *Layer) resolveLayout() Layout {
	switch l.Layout {
	case LayoutUniform, LayoutProportional, LayoutFit, LayoutNoFit:
		return l.Layout
	}
	if l.Spacing.Range.Start == l.Spacing.Range.End && l.Spacing.Rate == 0 {
		return LayoutUniform
	}
	return LayoutProportional
}

// positions places the centres of the given elements along [0, extent]
// using the policy p.
func positions(p Layout, elems []element, extent float64) []float64 {
	n := len(elems)
	pos := make([]float64, n)
	switch p {
	case LayoutProportional:
		var total float64
		for _, e := range elems {
			total += e.spacing
		}
		if total <= 0 {
			return positions(LayoutUniform, elems, extent)
		}
		var acc float64
		for i, e := range elems {
			acc += e.spacing
			pos[i] = extent * acc / total
		}
	case LayoutFit, LayoutNoFit:
		weights := make([]float64, n)
		gaps := make([]float64, n)
		unit := extent / float64(n)
		for i, e := range elems {
			weights[i] = e.strokeWidth()
			gaps[i] = e.spacing * unit
		}
		return WeightedGap(weights, gaps, extent, p == LayoutFit)
	default:
		for i := range pos {
			pos[i] = (float64(i) + 0.5) / float64(n) * extent
		}
	}
	return pos
}

// WeightedGap places elements of the given widths along [0, extent] so
// that gaps[i] is the free space between the edges of elements i-1 and
// i.  The distance between neighbouring centres is
// weights[i-1]/2 + gaps[i] + weights[i]/2.  gaps[0] is not used.
//
// If fit is true, the centres are scaled so that the first centre is at
// 0 and the last one at extent.  Otherwise the centres keep their
// distances and the whole arrangement, including the element widths, is
// centred in [0, extent].  A single element is placed in the middle.
func WeightedGap(weights, gaps []float64, extent float64, fit bool) []float64 {
	n := len(weights)
	pos := make([]float64, n)
	if n == 0 {
		return pos
	}
	for i := 1; i < n; i++ {
		pos[i] = pos[i-1] + weights[i-1]/2 + gaps[i] + weights[i]/2
	}

	if fit {
		last := pos[n-1]
		if n == 1 || last <= 0 {
			for i := range pos {
				pos[i] = extent / 2
			}
			return pos
		}
		scale := extent / last
		for i := range pos {
			pos[i] *= scale
		}
		pos[n-1] = extent
		return pos
	}

	lo := pos[0] - weights[0]/2
	hi := pos[n-1] + weights[n-1]/2
	shift := (extent-(hi-lo))/2 - lo
	for i := range pos {
		pos[i] += shift
	}
	return pos
}
