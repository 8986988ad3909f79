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

import (
	"math"
	"testing"
)

func TestShapeEndPoints(t *testing.T) {
	for _, c := range Curves {
		for _, mid := range []float64{0.5, 0.2, 0.8} {
			if got := Shape(0, c, mid); got != 0 {
				t.Errorf("Shape(0, %s, %g) = %g, want 0", c, mid, got)
			}
			if got := Shape(1, c, mid); got != 1 {
				t.Errorf("Shape(1, %s, %g) = %g, want 1", c, mid, got)
			}
		}
	}
}

func TestShapeMidpoint(t *testing.T) {
	// every curve except step passes through (mid, 0.5)
	for _, c := range []Curve{EaseIn, EaseOut, EaseInOut} {
		for _, mid := range []float64{0.25, 0.5, 0.75} {
			got := Shape(mid, c, mid)
			if math.Abs(got-0.5) > 1e-12 {
				t.Errorf("Shape(%g, %s, %g) = %g, want 0.5", mid, c, mid, got)
			}
		}
	}
}

func TestShapeValues(t *testing.T) {
	cases := []struct {
		t    float64
		c    Curve
		mid  float64
		want float64
	}{
		{0.3, Linear, 0.5, 0.3},
		{0.3, Linear, 0.9, 0.3},
		{0.25, EaseIn, 0.5, 0.125},
		{0.75, EaseIn, 0.5, 0.75},
		{0.25, EaseOut, 0.5, 0.25},
		{0.75, EaseOut, 0.5, 0.875},
		{0.25, EaseInOut, 0.5, 0.25},
		{0.49, Step, 0.5, 0},
		{0.5, Step, 0.5, 1},
		{0.1, Step, 0.05, 1},
		{-1, EaseIn, 0.5, 0},
		{2, EaseOut, 0.5, 1},
		{0.4, "bogus", 0.5, 0.4},
	}
	for _, tc := range cases {
		got := Shape(tc.t, tc.c, tc.mid)
		if math.Abs(got-tc.want) > 1e-12 {
			t.Errorf("Shape(%g, %q, %g) = %g, want %g", tc.t, tc.c, tc.mid, got, tc.want)
		}
	}
}

func TestShapeMonotone(t *testing.T) {
	for _, c := range Curves {
		prev := -1.0
		for i := 0; i <= 1000; i++ {
			x := float64(i) / 1000
			y := Shape(x, c, 0.3)
			if y < prev {
				t.Fatalf("%s not monotone at %g: %g < %g", c, x, y, prev)
			}
			prev = y
		}
	}
}

func TestShapeDegenerateMid(t *testing.T) {
	for _, c := range Curves {
		for _, mid := range []float64{0, 1, -3, 7} {
			for _, x := range []float64{0, 0.5, 1} {
				y := Shape(x, c, mid)
				if math.IsNaN(y) || y < 0 || y > 1 {
					t.Errorf("Shape(%g, %s, %g) = %g", x, c, mid, y)
				}
			}
		}
	}
}

func TestWave(t *testing.T) {
	cases := []struct {
		w     WaveKind
		phase float64
		want  float64
	}{
		{Sine, 0, 0},
		{Sine, 0.25, 1},
		{Sine, 0.75, -1},
		{Triangle, 0, -1},
		{Triangle, 0.25, 0},
		{Triangle, 0.5, 1},
		{Triangle, 0.75, 0},
		{Triangle, 1.5, 1},
		{Square, 0.1, 1},
		{Square, 0.6, -1},
		{Square, -0.25, -1},
		{Saw, 0, -1},
		{Saw, 0.5, 0},
		{Saw, 2.75, 0.5},
		{Saw, -0.25, 0.5},
		{"", 0.25, 1},
	}
	for _, tc := range cases {
		got := Wave(tc.w, tc.phase)
		if math.Abs(got-tc.want) > 1e-12 {
			t.Errorf("Wave(%q, %g) = %g, want %g", tc.w, tc.phase, got, tc.want)
		}
	}
}

func TestWaveRange(t *testing.T) {
	for _, w := range Waves {
		for i := -200; i <= 200; i++ {
			phase := float64(i) * 0.0137
			v := Wave(w, phase)
			if v < -1 || v > 1 {
				t.Fatalf("Wave(%s, %g) = %g out of range", w, phase, v)
			}
			u := Wave01(w, phase)
			if u < 0 || u > 1 {
				t.Fatalf("Wave01(%s, %g) = %g out of range", w, phase, u)
			}
		}
	}
}
