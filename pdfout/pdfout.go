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

// Package pdfout implements a drawing surface which writes a single page
// PDF file.
//
// PDF pages have their origin in the bottom-left corner.  The surface
// flips the y axis once at the start, so that drawing uses the same
// coordinates as on screen.  Transparency is not supported: elements
// with alpha 0 are skipped and all other elements are drawn opaque.
package pdfout

import (
	"image/color"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf"
	"seehuhn.de/go/pdf/document"
	"seehuhn.de/go/pdf/graphics"
	pdfcolor "seehuhn.de/go/pdf/graphics/color"

	"seehuhn.de/go/vectorlab/canvas"
	"seehuhn.de/go/vectorlab/internal/vlog"
)

// Page is a [canvas.Canvas] writing to a PDF file.  The page size in
// PDF points equals the canvas size in pixels.
type Page struct {
	canvas.Stack

	page *document.Page
	w, h float64
}

var _ canvas.Canvas = (*Page)(nil)

// Create starts a new PDF file with a single page of the given size.
// The file is complete once [Page.Close] has been called.
func Create(fname string, w, h float64) (*Page, error) {
	paper := &pdf.Rectangle{URx: w, URy: h}
	page, err := document.CreateSinglePage(fname, paper, pdf.V1_7, nil)
	if err != nil {
		return nil, err
	}

	flip := matrix.Matrix{1, 0, 0, -1, 0, h}
	page.Transform(flip)

	return &Page{
		Stack: canvas.NewStack(matrix.Identity),
		page:  page,
		w:     w,
		h:     h,
	}, nil
}

// Close writes the page and the file trailer.
func (p *Page) Close() error {
	for p.Depth() > 0 {
		p.Pop()
	}
	return p.page.Close()
}

// Size implements [canvas.Canvas].
func (p *Page) Size() (w, h float64) {
	return p.w, p.h
}

// Push implements [canvas.Canvas].
func (p *Page) Push() {
	p.Stack.Push()
	p.page.PushGraphicsState()
}

// Pop implements [canvas.Canvas].
func (p *Page) Pop() {
	if p.Depth() == 0 {
		return
	}
	p.Stack.Pop()
	p.page.PopGraphicsState()
}

// Transform implements [canvas.Canvas].
func (p *Page) Transform(m matrix.Matrix) {
	p.Stack.Transform(m)
	p.page.Transform(m)
}

// StrokeLine implements [canvas.Canvas].
func (p *Page) StrokeLine(a, b vec.Vec2, width float64, col color.NRGBA) {
	if !p.setStroke(width, graphics.LineCapRound, col) {
		return
	}
	p.page.MoveTo(a.X, a.Y)
	p.page.LineTo(b.X, b.Y)
	p.page.Stroke()
}

// StrokeRect implements [canvas.Canvas].
func (p *Page) StrokeRect(x, y, w, h, width float64, col color.NRGBA) {
	if !p.setStroke(width, graphics.LineCapButt, col) {
		return
	}
	p.page.Rectangle(x, y, w, h)
	p.page.Stroke()
}

// StrokeCircle implements [canvas.Canvas].
func (p *Page) StrokeCircle(center vec.Vec2, r, width float64, col color.NRGBA) {
	if !p.setStroke(width, graphics.LineCapButt, col) {
		return
	}
	p.drawPath(canvas.Circle(center, r))
	p.page.Stroke()
}

// FillRect implements [canvas.Canvas].
func (p *Page) FillRect(x, y, w, h float64, col color.NRGBA) {
	if col.A == 0 {
		return
	}
	p.page.SetFillColor(deviceRGB(col))
	p.page.Rectangle(x, y, w, h)
	p.page.Fill()
}

// FillCircle implements [canvas.Canvas].
func (p *Page) FillCircle(center vec.Vec2, r float64, col color.NRGBA) {
	if col.A == 0 {
		return
	}
	p.page.SetFillColor(deviceRGB(col))
	p.drawPath(canvas.Circle(center, r))
	p.page.Fill()
}

// Clear implements [canvas.Canvas].  The rectangle covering the page is
// mapped back through the inverse of the current transformation.  If
// the transformation is singular, nothing is drawn.
func (p *Page) Clear(col color.NRGBA) {
	if col.A == 0 {
		return
	}
	inv, ok := invert(p.CTM)
	if !ok {
		vlog.L().Debug().Msg("pdf: clear under singular transformation skipped")
		return
	}
	corners := [4]vec.Vec2{
		canvas.Apply(inv, canvas.Pt(0, 0)),
		canvas.Apply(inv, canvas.Pt(p.w, 0)),
		canvas.Apply(inv, canvas.Pt(p.w, p.h)),
		canvas.Apply(inv, canvas.Pt(0, p.h)),
	}
	p.page.SetFillColor(deviceRGB(col))
	p.page.MoveTo(corners[0].X, corners[0].Y)
	for _, c := range corners[1:] {
		p.page.LineTo(c.X, c.Y)
	}
	p.page.ClosePath()
	p.page.Fill()
}

func (p *Page) setStroke(width float64, lc graphics.LineCapStyle, col color.NRGBA) bool {
	if col.A == 0 || width <= 0 {
		return false
	}
	p.page.SetStrokeColor(deviceRGB(col))
	p.page.SetLineWidth(width)
	p.page.SetLineCap(lc)
	p.page.SetLineJoin(graphics.LineJoinMiter)
	return true
}

// drawPath appends p to the current path.  Quadratic segments are
// converted to cubic ones, since PDF has no quadratic curves.
func (p *Page) drawPath(d *path.Data) {
	for cmd, pts := range d.Iter().ToCubic() {
		switch cmd {
		case path.CmdMoveTo:
			p.page.MoveTo(pts[0].X, pts[0].Y)
		case path.CmdLineTo:
			p.page.LineTo(pts[0].X, pts[0].Y)
		case path.CmdCubeTo:
			p.page.CurveTo(pts[0].X, pts[0].Y, pts[1].X, pts[1].Y, pts[2].X, pts[2].Y)
		case path.CmdClose:
			p.page.ClosePath()
		}
	}
}

func deviceRGB(c color.NRGBA) pdfcolor.Color {
	return pdfcolor.DeviceRGB{float64(c.R) / 255, float64(c.G) / 255, float64(c.B) / 255}
}

// invert returns the inverse of m, or false if m is singular.
func invert(m matrix.Matrix) (matrix.Matrix, bool) {
	if m[0]*m[3]-m[1]*m[2] == 0 {
		return matrix.Matrix{}, false
	}
	return m.Inv(), true
}
