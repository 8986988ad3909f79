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

package raster

import (
	"math"
	"testing"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf/graphics"
)

func pt(x, y float64) vec.Vec2 {
	return vec.Vec2{X: x, Y: y}
}

// grid collects emitted coverage into a dense w×h array.
type grid struct {
	w, h int
	pix  []float32
}

func newGrid(w, h int) *grid {
	return &grid{w: w, h: h, pix: make([]float32, w*h)}
}

func (g *grid) emit(y, x int, coverage []float32) {
	copy(g.pix[y*g.w+x:], coverage)
}

func (g *grid) at(x, y int) float32 {
	return g.pix[y*g.w+x]
}

func (g *grid) sum() float64 {
	var s float64
	for _, c := range g.pix {
		s += float64(c)
	}
	return s
}

func TestTriangleCoverage(t *testing.T) {
	triangle := (&path.Data{}).
		MoveTo(pt(0, 0)).
		LineTo(pt(10, 0)).
		LineTo(pt(10, 1)).
		Close()

	r := NewRasterizer(rect.Rect{URx: 10, URy: 1})
	g := newGrid(10, 1)
	r.FillNonZero(triangle, g.emit)

	const epsilon = 1e-6
	for x := range 10 {
		want := float32(2*x+1) / 20
		if got := g.at(x, 0); math.Abs(float64(got-want)) > epsilon {
			t.Errorf("pixel %d: coverage %.4f, want %.4f", x, got, want)
		}
	}
}

func TestRectCoverage(t *testing.T) {
	r := NewRasterizer(rect.Rect{URx: 5, URy: 5})
	g := newGrid(5, 5)
	sq := (&path.Data{}).
		MoveTo(pt(1.5, 1.5)).
		LineTo(pt(3.5, 1.5)).
		LineTo(pt(3.5, 3.5)).
		LineTo(pt(1.5, 3.5)).
		Close()
	r.FillNonZero(sq, g.emit)

	want := [5][5]float32{
		{0, 0, 0, 0, 0},
		{0, 0.25, 0.5, 0.25, 0},
		{0, 0.5, 1, 0.5, 0},
		{0, 0.25, 0.5, 0.25, 0},
		{0, 0, 0, 0, 0},
	}
	for y := range 5 {
		for x := range 5 {
			if got := g.at(x, y); math.Abs(float64(got-want[y][x])) > 1e-6 {
				t.Errorf("pixel (%d,%d): coverage %.4f, want %.4f", x, y, got, want[y][x])
			}
		}
	}
}

func TestFillRules(t *testing.T) {
	// two nested squares running the same way
	p := &path.Data{}
	for _, s := range []float64{1, 3} {
		e := 10 - s
		p.MoveTo(pt(s, s)).LineTo(pt(e, s)).LineTo(pt(e, e)).LineTo(pt(s, e)).Close()
	}

	r := NewRasterizer(rect.Rect{URx: 10, URy: 10})
	nz := newGrid(10, 10)
	r.FillNonZero(p, nz.emit)
	eo := newGrid(10, 10)
	r.FillEvenOdd(p, eo.emit)

	if got := nz.at(5, 5); math.Abs(float64(got)-1) > 1e-5 {
		t.Errorf("nonzero centre: %g, want 1", got)
	}
	if got := eo.at(5, 5); math.Abs(float64(got)) > 1e-5 {
		t.Errorf("even-odd centre: %g, want 0", got)
	}
	if got := eo.at(2, 5); math.Abs(float64(got)-1) > 1e-5 {
		t.Errorf("even-odd ring: %g, want 1", got)
	}
	if math.Abs(eo.sum()-(64-16)) > 1e-4 {
		t.Errorf("even-odd area: %g, want 48", eo.sum())
	}
}

func TestClip(t *testing.T) {
	r := NewRasterizer(rect.Rect{LLx: 2, LLy: 2, URx: 4, URy: 4})
	g := newGrid(10, 10)
	big := (&path.Data{}).
		MoveTo(pt(-5, -5)).LineTo(pt(15, -5)).LineTo(pt(15, 15)).LineTo(pt(-5, 15)).Close()
	r.FillNonZero(big, g.emit)
	if s := g.sum(); math.Abs(s-4) > 1e-6 {
		t.Errorf("clipped area: %g, want 4", s)
	}
}

func TestFarOutsideEdges(t *testing.T) {
	// the slanted edge crosses about 6e13 pixel columns per scanline,
	// nearly all of them left of the clip box
	triangle := (&path.Data{}).
		MoveTo(pt(-1e15, 0)).
		LineTo(pt(16, 0)).
		LineTo(pt(16, 16)).
		Close()

	for _, small := range []int{math.MaxInt, 0} {
		r := NewRasterizer(rect.Rect{URx: 32, URy: 32})
		r.smallArea = small
		g := newGrid(32, 32)
		r.FillNonZero(triangle, g.emit)

		if s := g.sum(); math.Abs(s-256) > 1e-2 {
			t.Errorf("smallArea=%d: area %g, want 256", small, s)
		}
		if c := g.at(8, 8); math.Abs(float64(c)-1) > 1e-3 {
			t.Errorf("smallArea=%d: coverage %g inside, want 1", small, c)
		}
		if c := g.at(20, 8); c != 0 {
			t.Errorf("smallArea=%d: coverage %g outside, want 0", small, c)
		}
	}
}

func TestHugeScaleCurve(t *testing.T) {
	r := NewRasterizer(rect.Rect{URx: 16, URy: 16})
	r.CTM = matrix.Scale(1e12, 1e12)
	r.Width = 1
	r.Cap = graphics.LineCapRound
	arc := (&path.Data{}).
		MoveTo(pt(0, 0)).
		CubeTo(pt(1, 0), pt(1, 1), pt(0, 1))

	g := newGrid(16, 16)
	r.Stroke(arc, g.emit)
	r.FillNonZero(arc, g.emit)
	if s := g.sum(); s == 0 {
		t.Error("nothing drawn")
	}
}

// TestApproachesAgree checks that the 2D buffer and the active edge list
// produce the same coverage.
func TestApproachesAgree(t *testing.T) {
	ring := &path.Data{}
	ring.MoveTo(pt(20, 2)).
		CubeTo(pt(30, 2), pt(38, 10), pt(38, 20)).
		CubeTo(pt(38, 30), pt(30, 38), pt(20, 38)).
		CubeTo(pt(10, 38), pt(2, 30), pt(2, 20)).
		CubeTo(pt(2, 10), pt(10, 2), pt(20, 2)).
		Close()
	ring.MoveTo(pt(20, 10)).
		QuadTo(pt(30, 10), pt(30, 20)).
		QuadTo(pt(30, 30), pt(20, 30)).
		QuadTo(pt(10, 30), pt(10, 20)).
		QuadTo(pt(10, 10), pt(20, 10)).
		Close()
	zigzag := (&path.Data{}).
		MoveTo(pt(3, 35)).
		LineTo(pt(12, 5.5)).
		LineTo(pt(21, 33)).
		LineTo(pt(27.3, 8)).
		LineTo(pt(37, 36.2))

	type draw func(r *Rasterizer, emit EmitFunc)
	cases := []struct {
		name string
		draw draw
	}{
		{"ring-nonzero", func(r *Rasterizer, e EmitFunc) { r.FillNonZero(ring, e) }},
		{"ring-evenodd", func(r *Rasterizer, e EmitFunc) { r.FillEvenOdd(ring, e) }},
		{"zigzag-miter", func(r *Rasterizer, e EmitFunc) {
			r.Width = 3
			r.Join = graphics.LineJoinMiter
			r.Stroke(zigzag, e)
		}},
		{"zigzag-round", func(r *Rasterizer, e EmitFunc) {
			r.Width = 2.5
			r.Cap = graphics.LineCapRound
			r.Join = graphics.LineJoinRound
			r.Stroke(zigzag, e)
		}},
		{"rotated", func(r *Rasterizer, e EmitFunc) {
			r.CTM = matrix.Matrix{1, 0, 0, 1, -20, -20}.Mul(matrix.RotateDeg(30)).Translate(20, 20)
			r.FillNonZero(ring, e)
		}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			clip := rect.Rect{URx: 40, URy: 40}

			a := NewRasterizer(clip)
			a.smallArea = math.MaxInt
			ga := newGrid(40, 40)
			tc.draw(a, ga.emit)

			b := NewRasterizer(clip)
			b.smallArea = 0
			gb := newGrid(40, 40)
			tc.draw(b, gb.emit)

			if ga.sum() == 0 {
				t.Fatal("nothing drawn")
			}
			for i := range ga.pix {
				if d := math.Abs(float64(ga.pix[i] - gb.pix[i])); d > 1e-5 {
					t.Fatalf("pixel (%d,%d): %g != %g", i%40, i/40, ga.pix[i], gb.pix[i])
				}
			}
		})
	}
}

func TestStrokeCaps(t *testing.T) {
	line := (&path.Data{}).MoveTo(pt(4, 5)).LineTo(pt(12, 5))
	cases := []struct {
		cap  graphics.LineCapStyle
		want float64
		tol  float64
	}{
		{graphics.LineCapButt, 16, 1e-4},
		{graphics.LineCapSquare, 20, 1e-4},
		{graphics.LineCapRound, 16 + math.Pi, 0.02},
	}
	for _, tc := range cases {
		r := NewRasterizer(rect.Rect{URx: 20, URy: 10})
		r.Flatness = 0.001
		r.Width = 2
		r.Cap = tc.cap
		g := newGrid(20, 10)
		r.Stroke(line, g.emit)
		if s := g.sum(); math.Abs(s-tc.want) > tc.tol {
			t.Errorf("cap %d: area %g, want %g", tc.cap, s, tc.want)
		}
	}
}

func TestStrokeJoins(t *testing.T) {
	sq := (&path.Data{}).
		MoveTo(pt(2, 2)).LineTo(pt(8, 2)).LineTo(pt(8, 8)).LineTo(pt(2, 8)).Close()
	cases := []struct {
		join graphics.LineJoinStyle
		want float64
		tol  float64
	}{
		{graphics.LineJoinMiter, 48, 1e-4},
		{graphics.LineJoinBevel, 46, 1e-4},
		{graphics.LineJoinRound, 48 - 4*(1-math.Pi/4), 0.02},
	}
	for _, tc := range cases {
		r := NewRasterizer(rect.Rect{URx: 10, URy: 10})
		r.Flatness = 0.001
		r.Width = 2
		r.Join = tc.join
		g := newGrid(10, 10)
		r.Stroke(sq, g.emit)
		if s := g.sum(); math.Abs(s-tc.want) > tc.tol {
			t.Errorf("join %d: area %g, want %g", tc.join, s, tc.want)
		}
		if got := g.at(5, 5); math.Abs(float64(got)) > 1e-5 {
			t.Errorf("join %d: inside painted (%g)", tc.join, got)
		}
	}
}

func TestMiterLimit(t *testing.T) {
	// a very sharp corner falls back to a bevel
	sharp := (&path.Data{}).MoveTo(pt(2, 10)).LineTo(pt(30, 11)).LineTo(pt(2, 12))

	r := NewRasterizer(rect.Rect{URx: 60, URy: 30})
	r.Width = 2
	mitered := newGrid(60, 30)
	r.MiterLimit = 1000
	r.Stroke(sharp, mitered.emit)

	bevelled := newGrid(60, 30)
	r.MiterLimit = DefaultMiterLimit
	r.Stroke(sharp, bevelled.emit)

	if mitered.sum() <= bevelled.sum()+1 {
		t.Errorf("miter area %g not larger than bevel area %g", mitered.sum(), bevelled.sum())
	}
	for x := 40; x < 60; x++ {
		if bevelled.at(x, 11) > 1e-5 {
			t.Fatalf("bevelled stroke reaches x=%d", x)
		}
	}
}

func TestStrokeDot(t *testing.T) {
	dot := (&path.Data{}).MoveTo(pt(5, 5)).LineTo(pt(5, 5))

	r := NewRasterizer(rect.Rect{URx: 10, URy: 10})
	r.Flatness = 0.001
	r.Width = 4

	g := newGrid(10, 10)
	r.Stroke(dot, g.emit)
	if g.sum() > 1e-5 {
		t.Errorf("butt dot painted %g", g.sum())
	}

	r.Cap = graphics.LineCapRound
	g = newGrid(10, 10)
	r.Stroke(dot, g.emit)
	if s := g.sum(); math.Abs(s-4*math.Pi) > 0.1 {
		t.Errorf("round dot area %g, want %g", s, 4*math.Pi)
	}

	r.Cap = graphics.LineCapSquare
	g = newGrid(10, 10)
	r.Stroke(dot, g.emit)
	if s := g.sum(); math.Abs(s-16) > 1e-4 {
		t.Errorf("square dot area %g, want 16", s)
	}
}

func TestStrokeTransformed(t *testing.T) {
	// the stroke width is measured in user space
	line := (&path.Data{}).MoveTo(pt(1, 2)).LineTo(pt(5, 2))
	r := NewRasterizer(rect.Rect{URx: 20, URy: 20})
	r.CTM = matrix.Scale(3, 3)
	r.Width = 1
	g := newGrid(20, 20)
	r.Stroke(line, g.emit)
	if s := g.sum(); math.Abs(s-36) > 1e-4 {
		t.Errorf("area %g, want 36", s)
	}
}
