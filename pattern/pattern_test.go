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
	"image/color"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/vectorlab/attr"
	"seehuhn.de/go/vectorlab/canvas"
	"seehuhn.de/go/vectorlab/ease"
)

var white = color.NRGBA{R: 255, G: 255, B: 255, A: 255}

func render(t *testing.T, l Layer, w, h, time float64) *canvas.Recorder {
	t.Helper()
	rec := canvas.NewRecorder(w, h)
	ok := Render(rec, &l, Frame{W: w, H: h, Time: time})
	require.True(t, ok, "no renderer for %q", l.Pattern)
	return rec
}

func TestVerticalLines(t *testing.T) {
	l := DefaultLayer()
	l.Count = 5
	rec := render(t, l, 800, 800, 0)

	type line struct {
		A, B  vec.Vec2
		Width float64
		Color color.NRGBA
	}
	var got []line
	for _, op := range rec.Ops {
		require.Equal(t, canvas.KindStrokeLine, op.Kind)
		got = append(got, line{op.A, op.B, op.Width, op.Color})
	}
	var want []line
	for _, x := range []float64{80, 240, 400, 560, 720} {
		want = append(want, line{canvas.Pt(x, 0), canvas.Pt(x, 800), 2, white})
	}
	if d := cmp.Diff(want, got, cmpopts.EquateApprox(0, 1e-9)); d != "" {
		t.Errorf("lines mismatch (-want +got):\n%s", d)
	}
}

func TestHorizontalLinesLength(t *testing.T) {
	l := DefaultLayer()
	l.Direction = Horizontal
	l.Count = 2
	l.Length = attr.Default(50, 50)
	rec := render(t, l, 400, 200, 0)

	require.Len(t, rec.Ops, 2)
	op := rec.Ops[0]
	assert.InDelta(t, 100.0, op.A.X, 1e-9)
	assert.InDelta(t, 300.0, op.B.X, 1e-9)
	assert.InDelta(t, 50.0, op.A.Y, 1e-9)
	assert.InDelta(t, 150.0, rec.Ops[1].A.Y, 1e-9)
}

func TestDiagonalLines(t *testing.T) {
	l := DefaultLayer()
	l.Direction = Diagonal
	l.Count = 4
	rec := render(t, l, 400, 300, 0)

	require.Len(t, rec.Ops, 4)
	// offset = (i - count/2)·(w/count)·1.5
	assert.InDelta(t, -300.0, rec.Ops[0].A.X, 1e-9)
	assert.InDelta(t, 150.0, rec.Ops[3].A.X, 1e-9)
	assert.InDelta(t, 550.0, rec.Ops[3].B.X, 1e-9)
	assert.InDelta(t, 300.0, rec.Ops[3].B.Y, 1e-9)
}

func TestMinimumStrokeWidth(t *testing.T) {
	l := DefaultLayer()
	l.Count = 3
	l.Weight = attr.Default(0, 0.1)
	rec := render(t, l, 100, 100, 0)
	for _, op := range rec.Ops {
		assert.Equal(t, MinStrokeWidth, op.Width)
	}
}

func TestSingleElement(t *testing.T) {
	for _, k := range Kinds {
		l := DefaultLayer()
		l.Pattern = k
		l.Count = 1
		l.Weight = attr.Default(1, 9)
		rec := render(t, l, 200, 200, 0)
		require.Len(t, rec.Ops, 1, "pattern %s", k)
		op := rec.Ops[0]
		for _, v := range []float64{op.A.X, op.A.Y, op.B.X, op.B.Y, op.R, op.Width} {
			assert.False(t, math.IsNaN(v) || math.IsInf(v, 0), "pattern %s: %v", k, op)
		}
		if k != Dots {
			// progress 0.5 for a single element (radial uses 0)
			want := 5.0
			if k == Radial {
				want = 1
			}
			assert.InDelta(t, want, op.Width, 1e-9, "pattern %s", k)
		}
	}
}

func TestRadialAngles(t *testing.T) {
	l := DefaultLayer()
	l.Pattern = Radial
	l.Count = 4
	rec := render(t, l, 200, 100, 0)

	require.Len(t, rec.Ops, 4)
	R := 100 * 0.7
	want := []vec.Vec2{{X: R, Y: 0}, {X: 0, Y: R}, {X: -R, Y: 0}, {X: 0, Y: -R}}
	for i, op := range rec.Ops {
		// full length spokes start at the centre
		assert.InDelta(t, 100.0, op.A.X, 1e-9)
		assert.InDelta(t, 50.0, op.A.Y, 1e-9)
		assert.InDelta(t, 100+want[i].X, op.B.X, 1e-9, "spoke %d", i)
		assert.InDelta(t, 50+want[i].Y, op.B.Y, 1e-9, "spoke %d", i)
	}
}

func TestCirclesUniform(t *testing.T) {
	l := DefaultLayer()
	l.Pattern = Circles
	l.Count = 3
	rec := render(t, l, 200, 400, 0)

	require.Len(t, rec.Ops, 3)
	maxR := 200 * 0.45
	for i, want := range []float64{0.1 * maxR, 0.55 * maxR, maxR} {
		op := rec.Ops[i]
		assert.Equal(t, canvas.KindStrokeCircle, op.Kind)
		assert.InDelta(t, want, op.R, 1e-9)
		assert.Equal(t, canvas.Pt(100, 200), op.A)
	}
}

func TestCirclesProportional(t *testing.T) {
	l := DefaultLayer()
	l.Pattern = Circles
	l.Count = 2
	l.Spacing = attr.Default(1, 3)
	rec := render(t, l, 100, 100, 0)

	require.Len(t, rec.Ops, 2)
	assert.InDelta(t, 45*0.25, rec.Ops[0].R, 1e-9)
	assert.InDelta(t, 45.0, rec.Ops[1].R, 1e-9)
}

func TestGridCells(t *testing.T) {
	l := DefaultLayer()
	l.Pattern = Grid
	l.Count = 16
	l.Length = attr.Default(50, 50)
	rec := render(t, l, 400, 400, 0)

	require.Len(t, rec.Ops, 16)
	for i, op := range rec.Ops {
		row, col := i/4, i%4
		assert.Equal(t, canvas.KindStrokeRect, op.Kind)
		assert.InDelta(t, 50.0, op.B.X, 1e-9)
		assert.InDelta(t, 50.0, op.B.Y, 1e-9)
		assert.InDelta(t, float64(col)*100+25, op.A.X, 1e-9)
		assert.InDelta(t, float64(row)*100+25, op.A.Y, 1e-9)
	}
}

func TestGridRoundsUp(t *testing.T) {
	l := DefaultLayer()
	l.Pattern = Grid
	l.Count = 10
	rec := render(t, l, 100, 100, 0)
	assert.Len(t, rec.Ops, 16)
}

func TestGridAxis(t *testing.T) {
	l := DefaultLayer()
	l.Pattern = Dots
	l.Count = 9
	l.Weight = attr.Default(0, 10)
	l.Weight.Axis = attr.AxisX
	rec := render(t, l, 300, 300, 0)

	// the first column has weight 0 and is skipped
	require.Len(t, rec.Ops, 6)
	for _, op := range rec.Ops {
		assert.Equal(t, canvas.KindFillCircle, op.Kind)
		switch op.A.X {
		case 150:
			assert.InDelta(t, 5.0, op.R, 1e-9)
		case 250:
			assert.InDelta(t, 10.0, op.R, 1e-9)
		default:
			t.Errorf("unexpected dot at %v", op.A)
		}
	}
}

func TestTriangleClipped(t *testing.T) {
	l := DefaultLayer()
	l.Pattern = Triangle
	l.Count = 3
	rec := render(t, l, 100, 100, 0)

	require.Len(t, rec.Ops, 3)
	want := [][2]vec.Vec2{
		{{X: 50, Y: 10}, {X: 50, Y: 10}},
		{{X: 30, Y: 50}, {X: 70, Y: 50}},
		{{X: 10, Y: 90}, {X: 90, Y: 90}},
	}
	for i, op := range rec.Ops {
		got := [2]vec.Vec2{op.A, op.B}
		if d := cmp.Diff(want[i], got, cmpopts.EquateApprox(0, 1e-9)); d != "" {
			t.Errorf("scan line %d (-want +got):\n%s", i, d)
		}
	}
}

func TestColorFade(t *testing.T) {
	l := DefaultLayer()
	l.Count = 3
	l.Color.Mode = Fade
	l.Color.Colors = []string{"#000000", "#ffffff"}
	l.Opacity = attr.Default(100, 50)
	rec := render(t, l, 100, 100, 0)

	require.Len(t, rec.Ops, 3)
	assert.Equal(t, color.NRGBA{0, 0, 0, 255}, rec.Ops[0].Color)
	assert.Equal(t, color.NRGBA{128, 128, 128, 191}, rec.Ops[1].Color)
	assert.Equal(t, color.NRGBA{255, 255, 255, 128}, rec.Ops[2].Color)
}

func TestColorScroll(t *testing.T) {
	spec := ColorSpec{
		Mode:      Fade,
		Colors:    []string{"#000000", "#ffffff"},
		FadeEnd:   100,
		Rate:      1,
		RateCurve: ease.Saw,
	}
	// a saw wave at phase 0.75 adds 0.75 to the progress
	assert.Equal(t, "#bfbfbf", spec.At(0, 0.75).Hex())
	assert.Equal(t, "#404040", spec.At(0.5, 0.75).Hex())
}

func TestCountAnim(t *testing.T) {
	l := DefaultLayer()
	l.Count = 10
	l.CountAnim = attr.Anim{Wave: ease.Square, Amp: 50, Freq: 1}
	assert.Equal(t, 15, l.ElementCount(0.1))
	assert.Equal(t, 5, l.ElementCount(0.6))

	l.CountAnim.Amp = 200
	assert.Equal(t, 1, l.ElementCount(0.6))
}

func TestCountLimit(t *testing.T) {
	l := DefaultLayer()
	l.Count = 2_000_000_000
	err := l.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "count")
	assert.Equal(t, MaxCount, l.ElementCount(0))

	l.Normalize()
	require.NoError(t, l.Validate())
	assert.Equal(t, MaxCount, l.Count)

	// the animation may push past the stored count
	l.CountAnim = attr.Anim{Wave: ease.Square, Amp: 100, Freq: 1}
	assert.Equal(t, MaxCount, l.ElementCount(0.1))
}

func TestUnknownPattern(t *testing.T) {
	l := DefaultLayer()
	l.Pattern = "spiral"
	rec := canvas.NewRecorder(10, 10)
	assert.False(t, Render(rec, &l, Frame{W: 10, H: 10}))
	assert.Empty(t, rec.Ops)
	assert.Error(t, l.Validate())
}

func TestValidateNormalize(t *testing.T) {
	l := DefaultLayer()
	require.NoError(t, l.Validate())

	l.Pattern = "spiral"
	l.Count = 0
	l.Layout = "random"
	l.Weight.Curve = "bouncy"
	l.Color.Colors = []string{"#ff0000", "oops"}
	err := l.Validate()
	require.Error(t, err)
	for _, s := range []string{"spiral", "count", "random", "bouncy", "oops"} {
		assert.Contains(t, err.Error(), s)
	}

	l.Normalize()
	require.NoError(t, l.Validate())
	assert.Equal(t, []string{"#ff0000", "#ffffff"}, l.Color.Colors)
	assert.Equal(t, 1, l.Count)
}

func TestClone(t *testing.T) {
	l := DefaultLayer()
	c := l.Clone()
	c.Color.Colors[0] = "#123456"
	assert.Equal(t, "#ffffff", l.Color.Colors[0])
}

func TestRenderersMatchKinds(t *testing.T) {
	for _, k := range Kinds {
		r, ok := Lookup(k)
		require.True(t, ok)
		assert.Equal(t, k, r.Kind())
	}
}
