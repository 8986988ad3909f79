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

import (
	"errors"
	"fmt"
	"math"
	"slices"

	"seehuhn.de/go/vectorlab/attr"
	"seehuhn.de/go/vectorlab/ease"
	"seehuhn.de/go/vectorlab/palette"
)

// Kind names a pattern.
type Kind string

// The built-in patterns.
const (
	Lines    Kind = "lines"
	Radial   Kind = "radial"
	Circles  Kind = "circles"
	Grid     Kind = "grid"
	Dots     Kind = "dots"
	Triangle Kind = "triangle"
)

// Direction selects the orientation of a lines pattern.
type Direction string

// The supported line directions.
const (
	Vertical   Direction = "vertical"
	Horizontal Direction = "horizontal"
	Diagonal   Direction = "diagonal"
)

// MaxCount is the largest number of elements a layer draws.
const MaxCount = 10000

// Directions lists all line directions.
var Directions = []Direction{Vertical, Horizontal, Diagonal}

// Layout selects how elements are spaced along an extent.
type Layout string

// The supported layout policies.
const (
	LayoutAuto         Layout = "auto"
	LayoutUniform      Layout = "uniform"
	LayoutProportional Layout = "proportional"
	LayoutFit          Layout = "fit"
	LayoutNoFit        Layout = "nofit"
)

// Layouts lists all layout policies.
var Layouts = []Layout{LayoutAuto, LayoutUniform, LayoutProportional, LayoutFit, LayoutNoFit}

// ColorMode selects between a single colour and a gradient.
type ColorMode string

// The supported colour modes.
const (
	Solid ColorMode = "solid"
	Fade  ColorMode = "fade"
)

// ColorSpec describes how the elements of a layer are coloured.
type ColorSpec struct {
	Mode   ColorMode `json:"mode"`
	Colors []string  `json:"colors"`

	Axis      attr.Axis `json:"axis"`
	FadeStart float64   `json:"fadeStart"`
	FadeEnd   float64   `json:"fadeEnd"`
	Steps     int       `json:"steps,omitempty"`

	// Rate scrolls the gradient along the elements, in periods per
	// second.
	Rate      float64       `json:"rate,omitempty"`
	RateCurve ease.WaveKind `json:"rateCurve"`
}

// At returns the colour at progress t and the given time.
func (c ColorSpec) At(t, time float64) palette.RGB {
	if c.Mode == Solid {
		if len(c.Colors) == 0 {
			return palette.White
		}
		return palette.Parse(c.Colors[0])
	}
	if c.Rate > 0 {
		t += ease.Wave01(c.RateCurve, time*c.Rate)
		t -= math.Floor(t)
	}
	return palette.Resolve(c.Colors, t, c.FadeStart, c.FadeEnd, c.Steps)
}

// Transform positions a layer on the canvas.  Angles are in degrees,
// positions and scale in percent.
type Transform struct {
	RotX  float64 `json:"rotX"`
	RotY  float64 `json:"rotY"`
	RotZ  float64 `json:"rotZ"`
	PosX  float64 `json:"posX"`
	PosY  float64 `json:"posY"`
	Scale float64 `json:"scale"`
}

// DefaultTransform is the transform which leaves a layer in place.
var DefaultTransform = Transform{PosX: 50, PosY: 50, Scale: 100}

// Layer is one pattern together with all its styling.
type Layer struct {
	ID      int    `json:"id"`
	Name    string `json:"name"`
	Visible bool   `json:"visible"`

	Pattern   Kind      `json:"pattern"`
	Direction Direction `json:"direction"`
	Count     int       `json:"count"`
	CountAnim attr.Anim `json:"countAnim"`

	Weight  attr.Attribute `json:"weight"`
	Spacing attr.Attribute `json:"spacing"`
	Length  attr.Attribute `json:"length"`
	Opacity attr.Attribute `json:"opacity"`

	Layout Layout    `json:"layout"`
	Color  ColorSpec `json:"color"`

	Transform Transform `json:"transform"`
}

// DefaultLayer returns twenty white vertical lines of width 2.
func DefaultLayer() Layer {
	return Layer{
		Name:      "Layer 1",
		Visible:   true,
		Pattern:   Lines,
		Direction: Vertical,
		Count:     20,
		CountAnim: attr.Anim{Wave: ease.Sine, Freq: 1},
		Weight:    attr.Default(2, 2),
		Spacing:   attr.Default(1, 1),
		Length:    attr.Default(100, 100),
		Opacity:   attr.Default(100, 100),
		Layout:    LayoutAuto,
		Color: ColorSpec{
			Mode:      Solid,
			Colors:    []string{"#ffffff"},
			Axis:      attr.AxisNone,
			FadeStart: 0,
			FadeEnd:   100,
			RateCurve: ease.Sine,
		},
		Transform: DefaultTransform,
	}
}

// Clone returns a deep copy of the layer.
func (l Layer) Clone() Layer {
	l.Color.Colors = slices.Clone(l.Color.Colors)
	return l
}

// Attribute returns a pointer to the named attribute, or nil if there is
// no such attribute.
func (l *Layer) Attribute(name string) *attr.Attribute {
	switch name {
	case "weight":
		return &l.Weight
	case "spacing":
		return &l.Spacing
	case "length":
		return &l.Length
	case "opacity":
		return &l.Opacity
	}
	return nil
}

// AttributeNames lists the animatable attributes of a layer.
var AttributeNames = []string{"weight", "spacing", "length", "opacity"}

// ElementCount returns the number of elements drawn at the given time.
func (l *Layer) ElementCount(time float64) int {
	n := math.Round(l.CountAnim.Apply(float64(l.Count), time))
	switch {
	case n < 1 || math.IsNaN(n):
		return 1
	case n > MaxCount:
		return MaxCount
	}
	return int(n)
}

// Validate reports all problems with the layer.
func (l *Layer) Validate() error {
	var errs []error
	if _, ok := Lookup(l.Pattern); !ok {
		errs = append(errs, fmt.Errorf("unknown pattern %q", l.Pattern))
	}
	if l.Pattern == Lines && !slices.Contains(Directions, l.Direction) {
		errs = append(errs, fmt.Errorf("unknown direction %q", l.Direction))
	}
	if l.Count < 1 {
		errs = append(errs, fmt.Errorf("count %d < 1", l.Count))
	} else if l.Count > MaxCount {
		errs = append(errs, fmt.Errorf("count %d > %d", l.Count, MaxCount))
	}
	if l.Layout != "" && !slices.Contains(Layouts, l.Layout) {
		errs = append(errs, fmt.Errorf("unknown layout %q", l.Layout))
	}
	for _, name := range AttributeNames {
		if err := l.Attribute(name).Validate(); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", name, err))
		}
	}
	if !l.CountAnim.Wave.Valid() {
		errs = append(errs, fmt.Errorf("unknown count wave %q", l.CountAnim.Wave))
	}
	switch l.Color.Mode {
	case Solid, Fade:
	default:
		errs = append(errs, fmt.Errorf("unknown colour mode %q", l.Color.Mode))
	}
	for _, c := range l.Color.Colors {
		if _, err := palette.ParseErr(c); err != nil {
			errs = append(errs, err)
		}
	}
	if !l.Color.Axis.Valid() {
		errs = append(errs, fmt.Errorf("unknown colour axis %q", l.Color.Axis))
	}
	if l.Transform.Scale < 0 {
		errs = append(errs, errors.New("negative scale"))
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("layer %d: %w", l.ID, err)
	}
	return nil
}

// Normalize replaces invalid settings by usable ones, so that the layer
// passes [Layer.Validate].
func (l *Layer) Normalize() {
	def := DefaultLayer()
	if _, ok := Lookup(l.Pattern); !ok {
		l.Pattern = def.Pattern
	}
	if l.Pattern == Lines && !slices.Contains(Directions, l.Direction) {
		l.Direction = def.Direction
	}
	l.Count = min(max(l.Count, 1), MaxCount)
	if l.Layout != "" && !slices.Contains(Layouts, l.Layout) {
		l.Layout = LayoutAuto
	}
	for _, name := range AttributeNames {
		normalizeAttr(l.Attribute(name))
	}
	if !l.CountAnim.Wave.Valid() {
		l.CountAnim.Wave = ease.Sine
	}
	if l.Color.Mode != Solid && l.Color.Mode != Fade {
		l.Color.Mode = Solid
	}
	for i, c := range l.Color.Colors {
		l.Color.Colors[i] = palette.Parse(c).Hex()
	}
	if !l.Color.Axis.Valid() {
		l.Color.Axis = attr.AxisNone
	}
	l.Transform.Scale = max(l.Transform.Scale, 0)
}

func normalizeAttr(a *attr.Attribute) {
	if !a.Curve.Valid() {
		a.Curve = ease.Linear
	}
	if !a.RateCurve.Valid() {
		a.RateCurve = ease.Sine
	}
	if !a.Anim.Wave.Valid() {
		a.Anim.Wave = ease.Sine
	}
	if !a.Axis.Valid() {
		a.Axis = attr.AxisNone
	}
	if math.IsNaN(a.Range.Start) {
		a.Range.Start = 0
	}
	if math.IsNaN(a.Range.End) {
		a.Range.End = 0
	}
}
