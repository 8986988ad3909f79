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
	"seehuhn.de/go/vectorlab/pattern"
	"seehuhn.de/go/vectorlab/scene"
)

func transformed(l pattern.Layer, t pattern.Transform) pattern.Layer {
	l.Transform = t
	return l
}

var transformCases = []Scenario{
	{
		Name: "rotate_z", Width: 200, Height: 200,
		Layers: []pattern.Layer{transformed(layer(pattern.Lines, 12),
			pattern.Transform{RotZ: 30, PosX: 50, PosY: 50, Scale: 100})},
	},
	{
		Name: "scaled_offset", Width: 240, Height: 180,
		Layers: []pattern.Layer{transformed(layer(pattern.Circles, 8),
			pattern.Transform{PosX: 30, PosY: 70, Scale: 50})},
	},
	{
		Name: "tilt_xy", Width: 200, Height: 200,
		Layers: []pattern.Layer{transformed(layer(pattern.Grid, 25),
			pattern.Transform{RotX: 40, RotY: -25, RotZ: 10, PosX: 50, PosY: 50, Scale: 120})},
	},
	{
		Name: "edge_on", Width: 160, Height: 160,
		Layers: []pattern.Layer{transformed(layer(pattern.Lines, 12),
			pattern.Transform{RotX: 90, PosX: 50, PosY: 50, Scale: 100})},
	},
}

var backgroundCases = []Scenario{
	{
		Name: "solid", Width: 120, Height: 90,
		Background: &scene.Background{
			Mode:      pattern.Solid,
			Colors:    []string{"#203040"},
			Direction: scene.GradientVertical,
		},
		Layers: []pattern.Layer{hidden(layer(pattern.Lines, 1))},
	},
	{
		Name: "vertical", Width: 120, Height: 90,
		Background: &scene.Background{
			Mode:      pattern.Fade,
			Colors:    []string{"#000000", "#1a1a2e", "#e94560"},
			Direction: scene.GradientVertical,
		},
		Layers: []pattern.Layer{hidden(layer(pattern.Lines, 1))},
	},
	{
		Name: "horizontal", Width: 120, Height: 90,
		Background: &scene.Background{
			Mode:      pattern.Fade,
			Colors:    []string{"#0f2027", "#2c5364"},
			Direction: scene.GradientHorizontal,
		},
		Layers: []pattern.Layer{layer(pattern.Lines, 6)},
	},
	{
		Name: "radial", Width: 150, Height: 150,
		Background: &scene.Background{
			Mode:      pattern.Fade,
			Colors:    []string{"#ffffff", "#000000"},
			Direction: scene.GradientRadial,
		},
		Layers: []pattern.Layer{hidden(layer(pattern.Lines, 1))},
	},
}

func hidden(l pattern.Layer) pattern.Layer {
	l.Visible = false
	return l
}

var stackCases = []Scenario{
	{
		Name: "lines_over_circles", Width: 200, Height: 200,
		Layers: []pattern.Layer{
			layer(pattern.Circles, 10),
			func() pattern.Layer {
				l := layer(pattern.Lines, 20)
				l.Color.Colors = []string{"#ff6b6b"}
				l.Opacity = ramp(60, 60)
				return l
			}(),
		},
	},
	{
		Name: "hidden_middle", Width: 200, Height: 200,
		Layers: []pattern.Layer{
			layer(pattern.Grid, 16),
			hidden(layer(pattern.Dots, 49)),
			transformed(layer(pattern.Triangle, 20),
				pattern.Transform{RotZ: 180, PosX: 50, PosY: 50, Scale: 80}),
		},
	},
}
