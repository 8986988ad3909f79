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

// Package ggcanvas implements a drawing surface on top of the gogpu/gg
// 2D graphics library.
package ggcanvas

import (
	"image"
	"image/color"
	"io"

	"github.com/gogpu/gg"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/vectorlab/canvas"
	"seehuhn.de/go/vectorlab/internal/vlog"
)

// Canvas is a [canvas.Canvas] backed by a gg.Context.
type Canvas struct {
	ctx   *gg.Context
	depth int
}

var _ canvas.Canvas = (*Canvas)(nil)

// New returns a transparent canvas of w×h pixels.
func New(w, h int) *Canvas {
	return &Canvas{ctx: gg.NewContext(w, h)}
}

// Close releases the resources of the underlying context.
func (c *Canvas) Close() error {
	return c.ctx.Close()
}

// Size implements [canvas.Canvas].
func (c *Canvas) Size() (w, h float64) {
	return float64(c.ctx.Width()), float64(c.ctx.Height())
}

// Push implements [canvas.Canvas].
func (c *Canvas) Push() {
	c.ctx.Push()
	c.depth++
}

// Pop implements [canvas.Canvas].
func (c *Canvas) Pop() {
	if c.depth == 0 {
		return
	}
	c.ctx.Pop()
	c.depth--
}

// Transform implements [canvas.Canvas].
func (c *Canvas) Transform(m matrix.Matrix) {
	c.ctx.Transform(toGG(m))
}

// StrokeLine implements [canvas.Canvas].
func (c *Canvas) StrokeLine(a, b vec.Vec2, width float64, col color.NRGBA) {
	if !c.setStroke(width, gg.LineCapRound, col) {
		return
	}
	c.ctx.DrawLine(a.X, a.Y, b.X, b.Y)
	c.stroke()
}

// StrokeRect implements [canvas.Canvas].
func (c *Canvas) StrokeRect(x, y, w, h, width float64, col color.NRGBA) {
	if !c.setStroke(width, gg.LineCapButt, col) {
		return
	}
	c.ctx.DrawRectangle(x, y, w, h)
	c.stroke()
}

// StrokeCircle implements [canvas.Canvas].
func (c *Canvas) StrokeCircle(center vec.Vec2, r, width float64, col color.NRGBA) {
	if !c.setStroke(width, gg.LineCapButt, col) {
		return
	}
	c.ctx.DrawCircle(center.X, center.Y, r)
	c.stroke()
}

// FillRect implements [canvas.Canvas].
func (c *Canvas) FillRect(x, y, w, h float64, col color.NRGBA) {
	if col.A == 0 {
		return
	}
	c.ctx.SetColor(col)
	c.ctx.DrawRectangle(x, y, w, h)
	c.fill()
}

// FillCircle implements [canvas.Canvas].
func (c *Canvas) FillCircle(center vec.Vec2, r float64, col color.NRGBA) {
	if col.A == 0 {
		return
	}
	c.ctx.SetColor(col)
	c.ctx.DrawCircle(center.X, center.Y, r)
	c.fill()
}

// Clear implements [canvas.Canvas].
func (c *Canvas) Clear(col color.NRGBA) {
	c.ctx.ClearWithColor(gg.RGBA2(
		float64(col.R)/255,
		float64(col.G)/255,
		float64(col.B)/255,
		float64(col.A)/255))
}

// Image returns the current contents of the canvas.
func (c *Canvas) Image() image.Image {
	return c.ctx.Image()
}

// EncodePNG writes the canvas as a PNG image.
func (c *Canvas) EncodePNG(w io.Writer) error {
	return c.ctx.EncodePNG(w)
}

func (c *Canvas) setStroke(width float64, lc gg.LineCap, col color.NRGBA) bool {
	if col.A == 0 || width <= 0 {
		return false
	}
	c.ctx.SetColor(col)
	c.ctx.SetLineWidth(width)
	c.ctx.SetLineCap(lc)
	c.ctx.SetLineJoin(gg.LineJoinMiter)
	return true
}

func (c *Canvas) stroke() {
	if err := c.ctx.Stroke(); err != nil {
		vlog.L().Warn().Err(err).Msg("gg: stroke failed")
	}
}

func (c *Canvas) fill() {
	if err := c.ctx.Fill(); err != nil {
		vlog.L().Warn().Err(err).Msg("gg: fill failed")
	}
}

// toGG converts a matrix into the row-major layout used by gg.
func toGG(m matrix.Matrix) gg.Matrix {
	return gg.Matrix{
		A: m[0], B: m[2], C: m[4],
		D: m[1], E: m[3], F: m[5],
	}
}
