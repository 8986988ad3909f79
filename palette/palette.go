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

// Package palette converts hex colour strings and resolves multi-stop
// gradients at a given progress.
package palette

import (
	"fmt"
	"image/color"
	"math"
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"seehuhn.de/go/vectorlab/attr"
)

// RGB is an opaque 8-bit colour.
type RGB struct {
	R, G, B uint8
}

// White is used wherever a colour cannot be determined.
var White = RGB{255, 255, 255}

// Black is the default background colour.
var Black = RGB{0, 0, 0}

// Parse converts a colour of the form "#rrggbb" or "#rgb" into an RGB
// value.  Malformed input gives [White].
func Parse(hex string) RGB {
	c, err := ParseErr(hex)
	if err != nil {
		return White
	}
	return c
}

// ParseErr is like [Parse] but reports malformed input.
func ParseErr(hex string) (RGB, error) {
	s := strings.TrimSpace(hex)
	if !strings.HasPrefix(s, "#") {
		s = "#" + s
	}
	if len(s) != 4 && len(s) != 7 {
		return White, fmt.Errorf("invalid colour %q: wrong length", hex)
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return White, fmt.Errorf("invalid colour %q: %w", hex, err)
	}
	r, g, b := c.RGB255()
	return RGB{r, g, b}, nil
}

// Hex returns the colour in the form "#rrggbb".
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// NRGBA returns the colour with the given alpha.
func (c RGB) NRGBA(alpha uint8) color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: alpha}
}

// Lerp blends from a to b.  Each channel is rounded half up.
func Lerp(a, b RGB, t float64) RGB {
	t = Clamp(t, 0, 1)
	return RGB{
		R: lerp8(a.R, b.R, t),
		G: lerp8(a.G, b.G, t),
		B: lerp8(a.B, b.B, t),
	}
}

func lerp8(a, b uint8, t float64) uint8 {
	x := float64(a) + (float64(b)-float64(a))*t
	return uint8(Clamp(math.Floor(x+0.5), 0, 255))
}

// Clamp limits x to the interval [lo, hi].  NaN maps to lo.
func Clamp(x, lo, hi float64) float64 {
	if x < lo || math.IsNaN(x) {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

// Alpha converts an opacity in percent to an 8-bit alpha value.
func Alpha(opacity float64) uint8 {
	return uint8(math.Floor(Clamp(opacity, 0, 100)/100*255 + 0.5))
}

// Resolve returns the colour of the gradient through the given stops at
// progress t.
//
// The fade window, given in percent, selects the part of the progress
// range over which the gradient runs; before and after it the first and
// last stops are used.  If steps is positive, the faded progress is
// quantised into that many levels.  Without stops the result is white,
// a single stop gives a solid colour.
func Resolve(colors []string, t, fadeStart, fadeEnd float64, steps int) RGB {
	switch len(colors) {
	case 0:
		return White
	case 1:
		return Parse(colors[0])
	}

	fs, fe := attr.Window(fadeStart, fadeEnd)
	t = attr.Fade(Clamp(t, 0, 1), fs, fe)
	t = attr.Quantize(t, steps)

	n := len(colors) - 1
	x := t * float64(n)
	i := int(math.Floor(x))
	if i >= n {
		return Parse(colors[n])
	}
	return Lerp(Parse(colors[i]), Parse(colors[i+1]), x-float64(i))
}
