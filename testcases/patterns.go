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

package testcases

import (
	"seehuhn.de/go/vectorlab/attr"
	"seehuhn.de/go/vectorlab/ease"
	"seehuhn.de/go/vectorlab/pattern"
)

var linesCases = []Scenario{
	{
		Name: "vertical", Width: 200, Height: 150,
		Layers: []pattern.Layer{layer(pattern.Lines, 12)},
	},
	{
		Name: "horizontal_weight_ramp", Width: 200, Height: 150,
		Layers: []pattern.Layer{func() pattern.Layer {
			l := layer(pattern.Lines, 10)
			l.Direction = pattern.Horizontal
			l.Weight = ramp(1, 9)
			l.Layout = pattern.LayoutProportional
			return l
		}()},
	},
	{
		Name: "diagonal_short", Width: 200, Height: 200,
		Layers: []pattern.Layer{func() pattern.Layer {
			l := layer(pattern.Lines, 16)
			l.Direction = pattern.Diagonal
			l.Length = eased(30, 100, ease.EaseInOut)
			l.Color = fade("#ff6b6b", "#4ecdc4")
			return l
		}()},
	},
	{
		Name: "stepped_opacity", Width: 160, Height: 120,
		Layers: []pattern.Layer{func() pattern.Layer {
			l := layer(pattern.Lines, 20)
			l.Weight = ramp(3, 3)
			l.Opacity = ramp(10, 100)
			l.Opacity.Steps = 4
			return l
		}()},
	},
	{
		Name: "animated_count", Width: 160, Height: 120, Time: 0.25,
		Layers: []pattern.Layer{func() pattern.Layer {
			l := layer(pattern.Lines, 10)
			l.CountAnim = attr.Anim{Wave: ease.Sine, Amp: 50, Freq: 1}
			return l
		}()},
	},
}

var radialCases = []Scenario{
	{
		Name: "spokes", Width: 200, Height: 200,
		Layers: []pattern.Layer{layer(pattern.Radial, 24)},
	},
	{
		Name: "tapered", Width: 200, Height: 200,
		Layers: []pattern.Layer{func() pattern.Layer {
			l := layer(pattern.Radial, 36)
			l.Weight = ramp(0.5, 6)
			l.Length = ramp(40, 100)
			l.Color = fade("#f7b733", "#fc4a1a", "#4abdac")
			return l
		}()},
	},
}

var circlesCases = []Scenario{
	{
		Name: "concentric", Width: 200, Height: 200,
		Layers: []pattern.Layer{layer(pattern.Circles, 10)},
	},
	{
		Name: "spacing_ease_in", Width: 240, Height: 180,
		Layers: []pattern.Layer{func() pattern.Layer {
			l := layer(pattern.Circles, 14)
			l.Spacing = eased(0.4, 2, ease.EaseIn)
			l.Weight = ramp(4, 1)
			l.Color = fade("#ffffff", "#3a6186")
			return l
		}()},
	},
	{
		Name: "pulsing", Width: 200, Height: 200, Time: 0.4,
		Layers: []pattern.Layer{func() pattern.Layer {
			l := layer(pattern.Circles, 8)
			l.Weight.Anim = attr.Anim{Wave: ease.Triangle, Amp: 80, Freq: 0.5}
			return l
		}()},
	},
}

var gridCases = []Scenario{
	{
		Name: "square", Width: 200, Height: 200,
		Layers: []pattern.Layer{layer(pattern.Grid, 36)},
	},
	{
		Name: "axis_gradient", Width: 240, Height: 160,
		Layers: []pattern.Layer{func() pattern.Layer {
			l := layer(pattern.Grid, 64)
			l.Weight = ramp(0.5, 4)
			l.Weight.Axis = attr.AxisX
			l.Color = fade("#00c9ff", "#92fe9d")
			l.Color.Axis = attr.AxisY
			return l
		}()},
	},
}

var dotsCases = []Scenario{
	{
		Name: "field", Width: 200, Height: 200,
		Layers: []pattern.Layer{layer(pattern.Dots, 49)},
	},
	{
		Name: "diagonal_size", Width: 200, Height: 200,
		Layers: []pattern.Layer{func() pattern.Layer {
			l := layer(pattern.Dots, 100)
			l.Weight = ramp(1, 8)
			l.Weight.Axis = attr.AxisXY
			l.Color = fade("#e55d87", "#5fc3e4")
			l.Color.Axis = attr.AxisXY
			l.Color.Steps = 5
			return l
		}()},
	},
}

var triangleCases = []Scenario{
	{
		Name: "filled", Width: 200, Height: 200,
		Layers: []pattern.Layer{layer(pattern.Triangle, 30)},
	},
	{
		Name: "fade_window", Width: 200, Height: 180,
		Layers: []pattern.Layer{func() pattern.Layer {
			l := layer(pattern.Triangle, 40)
			l.Weight = ramp(1, 3)
			l.Color = fade("#ffffff", "#ff0080")
			l.Color.FadeStart = 30
			l.Color.FadeEnd = 70
			return l
		}()},
	},
}
