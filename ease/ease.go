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

// Package ease implements the shaping curves and periodic waves used to
// turn a normalised progress value or a point in time into a weight.
//
// Shaping curves are split into two halves at an adjustable midpoint.
// The first half maps [0, mid] onto [0, 0.5] and the second half maps
// [mid, 1] onto [0.5, 1], so moving the midpoint moves the inflection of
// the curve without changing its end points.
package ease

import "math"

// Curve names a shaping curve.
type Curve string

// The supported shaping curves.
const (
	Linear    Curve = "linear"
	EaseIn    Curve = "easeIn"
	EaseOut   Curve = "easeOut"
	EaseInOut Curve = "easeInOut"
	Step      Curve = "step"
)

// Curves lists all shaping curves in presentation order.
var Curves = []Curve{Linear, EaseIn, EaseOut, EaseInOut, Step}

// Valid reports whether c is one of the known curves.
// The empty string is accepted and behaves as [Linear].
func (c Curve) Valid() bool {
	switch c {
	case "", Linear, EaseIn, EaseOut, EaseInOut, Step:
		return true
	}
	return false
}

// minMid keeps both halves of a split curve non-degenerate.
const minMid = 1e-6

// Shape maps t ∈ [0,1] through the curve c with the inflection point at
// mid ∈ [0,1].  Values of t outside [0,1] are clamped.  Unknown curves
// behave as [Linear].
func Shape(t float64, c Curve, mid float64) float64 {
	t = clamp01(t)
	mid = min(max(mid, minMid), 1-minMid)

	switch c {
	case EaseIn:
		if t < mid {
			x := t / mid
			return x * x * 0.5
		}
		return 0.5 + (t-mid)/(1-mid)*0.5
	case EaseOut:
		if t < mid {
			return t / mid * 0.5
		}
		x := (t - mid) / (1 - mid)
		return 0.5 + (1-(1-x)*(1-x))*0.5
	case EaseInOut:
		if t < mid {
			x := t / mid
			return smoothstep(x) * 0.5
		}
		x := (t - mid) / (1 - mid)
		return 0.5 + smoothstep(x)*0.5
	case Step:
		if t < mid {
			return 0
		}
		return 1
	default:
		return t
	}
}

func smoothstep(x float64) float64 {
	return x * x * (3 - 2*x)
}

func clamp01(x float64) float64 {
	if x < 0 || math.IsNaN(x) {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}
