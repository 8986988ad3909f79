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
	"errors"
	"fmt"
	"math"
	"slices"

	"seehuhn.de/go/vectorlab/canvas"
	"seehuhn.de/go/vectorlab/palette"
	"seehuhn.de/go/vectorlab/pattern"
)

// GradientDir selects the direction of a background gradient.
type GradientDir string

// The supported gradient directions.
const (
	GradientVertical   GradientDir = "vertical"
	GradientHorizontal GradientDir = "horizontal"
	GradientRadial     GradientDir = "radial"
)

// Background describes how the canvas is painted before any layer is
// drawn.  In solid mode the first colour is used.
type Background struct {
	Mode      pattern.ColorMode `json:"mode"`
	Colors    []string          `json:"colors"`
	Direction GradientDir       `json:"direction"`
}

// DefaultBackground returns a black background.  Switching it to fade
// mode gives a vertical gradient into dark blue.
func DefaultBackground() Background {
	return Background{
		Mode:      pattern.Solid,
		Colors:    []string{"#000000", "#1a1a2e"},
		Direction: GradientVertical,
	}
}

// Validate reports all problems with the background.
func (b Background) Validate() error {
	var errs []error
	switch b.Mode {
	case pattern.Solid, pattern.Fade:
	default:
		errs = append(errs, fmt.Errorf("unknown background mode %q", b.Mode))
	}
	switch b.Direction {
	case GradientVertical, GradientHorizontal, GradientRadial:
	default:
		errs = append(errs, fmt.Errorf("unknown gradient direction %q", b.Direction))
	}
	for _, c := range b.Colors {
		if _, err := palette.ParseErr(c); err != nil {
			errs = append(errs, err)
		}
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("background: %w", err)
	}
	return nil
}

// Normalize repairs everything [Background.Validate] complains about.
func (b *Background) Normalize() {
	if b.Mode != pattern.Solid && b.Mode != pattern.Fade {
		b.Mode = pattern.Solid
	}
	if !slices.Contains([]GradientDir{GradientVertical, GradientHorizontal, GradientRadial}, b.Direction) {
		b.Direction = GradientVertical
	}
	for i, c := range b.Colors {
		b.Colors[i] = palette.Parse(c).Hex()
	}
}

// maxBands limits the number of gradient bands drawn per frame.
const maxBands = 1024

// DrawBackground paints the background of a w×h canvas.
//
// Linear gradients are drawn as bands at most ⌈extent/1024⌉ pixels
// wide.  Radial gradients are drawn as filled circles from the outside
// in, using at most 512 circles.
func DrawBackground(c canvas.Canvas, bg Background, w, h float64) {
	if bg.Mode != pattern.Fade || len(bg.Colors) < 2 {
		col := palette.Black
		if len(bg.Colors) > 0 {
			col = palette.Parse(bg.Colors[0])
		}
		c.Clear(col.NRGBA(255))
		return
	}

	at := func(t float64) palette.RGB {
		return palette.Resolve(bg.Colors, t, 0, 100, 0)
	}

	switch bg.Direction {
	case GradientHorizontal:
		stride := bandStride(w)
		for x := 0.0; x < w; x += stride {
			c.FillRect(x, 0, min(stride, w-x), h, at(x/w).NRGBA(255))
		}
	case GradientRadial:
		c.Clear(at(0).NRGBA(255))
		maxR := max(w, h) * 0.7
		step := max(2, maxR/512)
		center := canvas.Pt(w/2, h/2)
		for r := maxR; r > 0; r -= step {
			c.FillCircle(center, r, at(1-r/maxR).NRGBA(255))
		}
	default:
		stride := bandStride(h)
		for y := 0.0; y < h; y += stride {
			c.FillRect(0, y, w, min(stride, h-y), at(y/h).NRGBA(255))
		}
	}
}

func bandStride(extent float64) float64 {
	return max(1, math.Ceil(extent/maxBands))
}
