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
	"encoding/json"
	"fmt"
	"math"
	"math/rand/v2"

	"seehuhn.de/go/vectorlab/attr"
	"seehuhn.de/go/vectorlab/ease"
	"seehuhn.de/go/vectorlab/pattern"
)

// Patch merges a partial JSON object into a layer.  Fields which are not
// mentioned keep their values; this also holds for the fields of nested
// objects such as attributes.  The ID of the layer cannot be changed.
// If the input is invalid, the layer is left unchanged.
func Patch(l *pattern.Layer, data []byte) error {
	tmp := l.Clone()
	if err := json.Unmarshal(data, &tmp); err != nil {
		return fmt.Errorf("patch layer %d: %w", l.ID, err)
	}
	tmp.ID = l.ID
	*l = tmp
	return nil
}

// ResetAttribute restores the default value of a single setting.  Valid
// names are "count", the attribute names, the transform fields and
// "color".
func ResetAttribute(l *pattern.Layer, name string) error {
	def := pattern.DefaultLayer()
	if a := l.Attribute(name); a != nil {
		*a = *def.Attribute(name)
		return nil
	}
	t := &l.Transform
	switch name {
	case "count":
		l.Count = def.Count
		l.CountAnim = def.CountAnim
	case "rotX":
		t.RotX = def.Transform.RotX
	case "rotY":
		t.RotY = def.Transform.RotY
	case "rotZ":
		t.RotZ = def.Transform.RotZ
	case "posX":
		t.PosX = def.Transform.PosX
	case "posY":
		t.PosY = def.Transform.PosY
	case "scale":
		t.Scale = def.Transform.Scale
	case "transform":
		l.Transform = def.Transform
	case "color":
		l.Color = def.Color
	default:
		return fmt.Errorf("unknown setting %q", name)
	}
	return nil
}

// ResetLayer restores all settings of a layer to their defaults.  The
// ID, name and visibility are kept.
func ResetLayer(l *pattern.Layer) {
	def := pattern.DefaultLayer()
	def.ID = l.ID
	def.Name = l.Name
	def.Visible = l.Visible
	*l = def
}

// palettes are the colour pairs used by [Randomize].
var palettes = [][2]string{
	{"#ffffff", "#ffffff"},
	{"#ff6b35", "#ff3366"},
	{"#ff3366", "#00d4ff"},
	{"#00d4ff", "#ffffff"},
	{"#ffcc00", "#ff6b35"},
}

var randomCurves = []ease.Curve{ease.Linear, ease.EaseIn, ease.EaseOut, ease.EaseInOut}

// Randomize replaces the geometry and styling of a layer by random
// values.  The ID, name, visibility and layout policy are kept.
func Randomize(l *pattern.Layer, rng *rand.Rand) {
	uniform := func(lo, hi float64) float64 {
		return lo + (hi-lo)*rng.Float64()
	}
	randomAttr := func(lo, hi float64) attr.Attribute {
		a := attr.Default(uniform(lo, hi), uniform(lo, hi))
		a.Curve = randomCurves[rng.IntN(len(randomCurves))]
		return a
	}

	l.Pattern = pattern.Kinds[rng.IntN(len(pattern.Kinds))]
	l.Direction = pattern.Directions[rng.IntN(len(pattern.Directions))]
	l.Count = 10 + rng.IntN(70)
	l.CountAnim.Amp = 0

	l.Weight = randomAttr(0.5, 15)
	l.Spacing = randomAttr(0.3, 2)
	l.Length = randomAttr(50, 100)
	l.Opacity = randomAttr(60, 100)

	p := palettes[rng.IntN(len(palettes))]
	l.Color.Colors = []string{p[0], p[1]}
	l.Color.Mode = pattern.Fade
	if rng.Float64() < 0.5 {
		l.Color.Mode = pattern.Solid
	}

	if rng.Float64() < 0.4 {
		l.Transform.RotX = math.Floor(uniform(-45, 45))
		l.Transform.RotY = math.Floor(uniform(-45, 45))
	} else {
		l.Transform.RotX = 0
		l.Transform.RotY = 0
	}
	l.Transform.RotZ = math.Floor(uniform(-90, 90))
}
