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

// Package pattern implements the layer record and the renderers which
// turn a layer into drawing calls on a [canvas.Canvas].
//
// Every renderer works in three passes.  First the progress of every
// element is computed, then all attribute values are evaluated, and only
// then are the elements placed and drawn.  Placement may depend on the
// weights of neighbouring elements, so no element is drawn before all
// weights are known.
//
// Renderers draw in canvas-local coordinates.  The caller is responsible
// for setting up the layer transformation.
package pattern

import (
	"image/color"
	"math"

	"seehuhn.de/go/vectorlab/attr"
	"seehuhn.de/go/vectorlab/canvas"
	"seehuhn.de/go/vectorlab/palette"
)

// Frame describes the surface and the point in time being rendered.
type Frame struct {
	W, H float64
	Time float64 // seconds
}

// Renderer draws one kind of pattern.
type Renderer interface {
	Kind() Kind
	Render(c canvas.Canvas, l *Layer, f Frame)
}

// Kinds lists the built-in patterns in presentation order.
var Kinds = []Kind{Lines, Radial, Circles, Grid, Dots, Triangle}

var renderers = map[Kind]Renderer{
	Lines:    linesRenderer{},
	Radial:   radialRenderer{},
	Circles:  circlesRenderer{},
	Grid:     gridRenderer{dots: false},
	Dots:     gridRenderer{dots: true},
	Triangle: triangleRenderer{},
}

// Lookup returns the renderer for the given pattern.
func Lookup(k Kind) (Renderer, bool) {
	r, ok := renderers[k]
	return r, ok
}

// Render draws the layer using the renderer registered for its pattern.
// Layers with an unknown pattern are not drawn.
func Render(c canvas.Canvas, l *Layer, f Frame) bool {
	r, ok := Lookup(l.Pattern)
	if !ok {
		return false
	}
	r.Render(c, l, f)
	return true
}

// MinStrokeWidth is the thinnest stroke drawn.
const MinStrokeWidth = 0.5

// progress holds the progress values used for the individual attributes
// of one element.  One-dimensional patterns use the same value for all
// fields.
type progress struct {
	weight, spacing, length, opacity, color float64
}

func uniformProgress(t float64) progress {
	return progress{t, t, t, t, t}
}

// progress1D returns the progress of element i out of n.
func progress1D(i, n int) float64 {
	if n <= 1 {
		return 0.5
	}
	return float64(i) / float64(n-1)
}

// element holds the evaluated attributes of one pattern element.
type element struct {
	weight  float64
	spacing float64
	length  float64 // fraction of the full length
	color   color.NRGBA
}

// strokeWidth is the weight, limited to the minimal stroke width.
func (e element) strokeWidth() float64 {
	return max(MinStrokeWidth, e.weight)
}

// sampler evaluates the attributes of a layer for a pattern with a
// fixed number of elements.
type sampler struct {
	weight, spacing, length, opacity attr.Attribute
	color                            ColorSpec
	time                             float64
}

func newSampler(l *Layer, n int, time float64) *sampler {
	return &sampler{
		weight:  l.Weight.Limit(n),
		spacing: l.Spacing.Limit(n),
		length:  l.Length.Limit(n),
		opacity: l.Opacity.Limit(n),
		color:   l.Color,
		time:    time,
	}
}

func (s *sampler) sample(p progress) element {
	rgb := s.color.At(p.color, s.time)
	alpha := palette.Alpha(attr.Evaluate(s.opacity, p.opacity, s.time))
	return element{
		weight:  attr.Evaluate(s.weight, p.weight, s.time),
		spacing: attr.Evaluate(s.spacing, p.spacing, s.time),
		length:  attr.Evaluate(s.length, p.length, s.time) / 100,
		color:   rgb.NRGBA(alpha),
	}
}

// sampleLine evaluates all elements of a one-dimensional pattern.
func (s *sampler) sampleLine(n int, prog func(i, n int) float64) []element {
	res := make([]element, n)
	for i := range res {
		res[i] = s.sample(uniformProgress(prog(i, n)))
	}
	return res
}

// gridSize returns the number of rows and columns used for n elements.
func gridSize(n int) int {
	return max(1, int(math.Ceil(math.Sqrt(float64(n)))))
}
