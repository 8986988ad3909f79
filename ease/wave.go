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

package ease

import "math"

// WaveKind names a periodic wave form with period 1.
type WaveKind string

// The supported wave forms.
const (
	Sine     WaveKind = "sine"
	Triangle WaveKind = "triangle"
	Square   WaveKind = "square"
	Saw      WaveKind = "saw"
)

// Waves lists all wave forms in presentation order.
var Waves = []WaveKind{Sine, Triangle, Square, Saw}

// Valid reports whether w is a known wave form.
// The empty string is accepted and behaves as [Sine].
func (w WaveKind) Valid() bool {
	switch w {
	case "", Sine, Triangle, Square, Saw:
		return true
	}
	return false
}

// Wave evaluates the wave form w at the given phase.  The result lies in
// [-1, 1].  Unknown wave forms behave as [Sine].
//
// The triangle wave starts at -1, reaches 1 at phase 0.5 and returns to
// -1 at phase 1.  The square wave is 1 on the first half of each period.
func Wave(w WaveKind, phase float64) float64 {
	switch w {
	case Triangle:
		f := frac(phase)
		if f < 0.5 {
			return 4*f - 1
		}
		return 3 - 4*f
	case Square:
		if frac(phase) < 0.5 {
			return 1
		}
		return -1
	case Saw:
		return 2*frac(phase) - 1
	default:
		return math.Sin(2 * math.Pi * phase)
	}
}

// Wave01 is [Wave] rescaled to the range [0, 1].
func Wave01(w WaveKind, phase float64) float64 {
	return (Wave(w, phase) + 1) / 2
}

// frac returns the fractional part of x in [0, 1), also for negative x.
func frac(x float64) float64 {
	f := x - math.Floor(x)
	if f >= 1 {
		// x was a tiny negative number
		return 0
	}
	return f
}
