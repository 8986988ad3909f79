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

// Package testcases holds named example documents used to check the
// renderers against each other and to produce reference output.
package testcases

import (
	"seehuhn.de/go/vectorlab/attr"
	"seehuhn.de/go/vectorlab/ease"
	"seehuhn.de/go/vectorlab/pattern"
	"seehuhn.de/go/vectorlab/scene"
)

// Scenario is a document rendered at a fixed point in time.
type Scenario struct {
	Name   string  // lowercase a-z and _ only
	Width  int     // canvas width in pixels
	Height int     // canvas height in pixels
	Time   float64 // animation time in seconds

	Background *scene.Background // nil means the default
	Layers     []pattern.Layer   // bottom layer first
}

// Document returns a fresh document for the scenario.
func (s Scenario) Document() *scene.Document {
	d := scene.New()
	d.SetSize(s.Width, s.Height)
	if s.Background != nil {
		d.Background = *s.Background
		d.Background.Colors = append([]string(nil), s.Background.Colors...)
	}
	if len(s.Layers) > 0 {
		d.Layers = nil
		for _, l := range s.Layers {
			d.AddLayer(l)
		}
	}
	return d
}

// layer returns a default layer with the given pattern and count.
func layer(kind pattern.Kind, count int) pattern.Layer {
	l := pattern.DefaultLayer()
	l.Pattern = kind
	l.Count = count
	return l
}

// ramp returns an attribute going linearly from start to end.
func ramp(start, end float64) attr.Attribute {
	return attr.Default(start, end)
}

// eased returns an attribute going from start to end along curve c.
func eased(start, end float64, c ease.Curve) attr.Attribute {
	a := attr.Default(start, end)
	a.Curve = c
	return a
}

// fade returns a colour gradient through the given stops.
func fade(colors ...string) pattern.ColorSpec {
	return pattern.ColorSpec{
		Mode:      pattern.Fade,
		Colors:    colors,
		Axis:      attr.AxisNone,
		FadeStart: 0,
		FadeEnd:   100,
		RateCurve: ease.Sine,
	}
}
