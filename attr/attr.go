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

// Package attr implements animatable attributes: a value range that is
// sampled at a normalised progress and a point in time.
//
// Evaluation happens in a fixed order.  Progress is first quantised
// (if Steps is set), then the range is modulated in time (if Rate is
// set), then the fade window and shaping curve select a value from the
// range, and finally the multiplier and the optional animation are
// applied.
package attr

import (
	"errors"
	"fmt"
	"math"

	"seehuhn.de/go/vectorlab/ease"
)

// Range holds the values of an attribute at progress 0 and progress 1.
type Range struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

// Anim describes a multiplicative oscillation of an evaluated value.
// The value v becomes v·(1 + Wave(time·Freq)·Amp/100).
type Anim struct {
	Wave ease.WaveKind `json:"wave"`
	Amp  float64       `json:"amp"`  // percent
	Freq float64       `json:"freq"` // periods per second
}

// Apply applies the animation to v at the given time.
func (a Anim) Apply(v, time float64) float64 {
	if a.Amp == 0 {
		return v
	}
	return v * (1 + ease.Wave(a.Wave, time*a.Freq)*a.Amp/100)
}

// Attribute is a value which varies along the elements of a pattern and
// over time.
type Attribute struct {
	Range Range `json:"range"`

	// Axis selects which grid coordinate drives progress in
	// two-dimensional patterns.
	Axis Axis `json:"axis"`

	// FadeStart and FadeEnd give the progress window, in percent, over
	// which the value moves from Range.Start to Range.End.
	FadeStart float64 `json:"fadeStart"`
	FadeEnd   float64 `json:"fadeEnd"`

	Curve    ease.Curve `json:"curve"`
	CurvePos float64    `json:"curvePos"` // percent

	// Steps quantises progress into this many levels.  Zero or negative
	// values disable quantisation.
	Steps int `json:"steps,omitempty"`

	Mult float64 `json:"mult"`

	// Rate is the frequency, in periods per second, at which the range
	// oscillates about its midpoint.  RateCurve selects the wave form.
	Rate      float64       `json:"rate,omitempty"`
	RateCurve ease.WaveKind `json:"rateCurve"`

	Anim Anim `json:"anim"`
}

// Default returns an attribute which evaluates to start at progress 0 and
// to end at progress 1, linearly, without any time dependence.
func Default(start, end float64) Attribute {
	return Attribute{
		Range:     Range{Start: start, End: end},
		Axis:      AxisNone,
		FadeStart: 0,
		FadeEnd:   100,
		Curve:     ease.Linear,
		CurvePos:  50,
		Mult:      1,
		RateCurve: ease.Sine,
		Anim:      Anim{Wave: ease.Sine, Freq: 1},
	}
}

// Constant reports whether the attribute has the same value for every
// element at every point in time.
func (a Attribute) Constant() bool {
	return a.Range.Start == a.Range.End && a.Anim.Amp == 0
}

// Limit returns a copy of a suitable for a pattern with n elements.
// Quantisation into n or more levels has no visible effect and is
// dropped.
func (a Attribute) Limit(n int) Attribute {
	if a.Steps >= n {
		a.Steps = 0
	}
	return a
}

// Evaluate returns the value of the attribute at progress t ∈ [0,1] and
// the given time in seconds.
func Evaluate(a Attribute, t, time float64) float64 {
	t = Quantize(t, a.Steps)

	start, end := a.Range.Start, a.Range.End
	if a.Rate > 0 {
		mid := (start + end) / 2
		half := (end - start) / 2
		w := ease.Wave(a.RateCurve, time*a.Rate)
		start = mid - half*w
		end = mid + half*w
	}

	var v float64
	fs, fe := Window(a.FadeStart, a.FadeEnd)
	switch {
	case t <= fs:
		v = start
	case t >= fe:
		v = end
	default:
		local := (t - fs) / (fe - fs)
		s := ease.Shape(local, a.Curve, a.CurvePos/100)
		v = start + (end-start)*s
	}

	v *= a.Mult
	return a.Anim.Apply(v, time)
}

// Window converts a fade window given in percent into progress values
// fs ≤ fe in [0,1].  Reversed windows are swapped.
func Window(fadeStart, fadeEnd float64) (fs, fe float64) {
	fs = clamp01(fadeStart / 100)
	fe = clamp01(fadeEnd / 100)
	if fs > fe {
		fs, fe = fe, fs
	}
	return fs, fe
}

// Fade maps t through the fade window [fs, fe] without any shaping.
// Values before the window map to 0 and values after it map to 1.
// An empty window acts as a hard step at fs.
func Fade(t, fs, fe float64) float64 {
	switch {
	case t <= fs:
		return 0
	case t >= fe:
		return 1
	}
	return (t - fs) / (fe - fs)
}

// Quantize snaps t ∈ [0,1] to one of steps levels, so that the result
// takes the values 0, 1/(steps-1), ..., 1.  With steps ≤ 0 the value is
// only clamped.  A single step maps everything to 0.
func Quantize(t float64, steps int) float64 {
	t = clamp01(t)
	if steps <= 0 {
		return t
	}
	if steps == 1 {
		return 0
	}
	n := float64(steps)
	return clamp01(math.Floor(t*n) / (n - 1))
}

// Validate checks that the attribute only refers to known curves, waves
// and axes.
func (a Attribute) Validate() error {
	var errs []error
	if !a.Curve.Valid() {
		errs = append(errs, fmt.Errorf("unknown curve %q", a.Curve))
	}
	if !a.RateCurve.Valid() {
		errs = append(errs, fmt.Errorf("unknown rate curve %q", a.RateCurve))
	}
	if !a.Anim.Wave.Valid() {
		errs = append(errs, fmt.Errorf("unknown animation wave %q", a.Anim.Wave))
	}
	if !a.Axis.Valid() {
		errs = append(errs, fmt.Errorf("unknown axis %q", a.Axis))
	}
	if math.IsNaN(a.Range.Start) || math.IsNaN(a.Range.End) {
		errs = append(errs, errors.New("range is NaN"))
	}
	return errors.Join(errs...)
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
