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
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"

	"golang.org/x/image/draw"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf/graphics"

	"seehuhn.de/go/vectorlab/canvas"
)

// Image is a [canvas.Canvas] which draws into memory.
//
// Drawing happens at Density times the nominal resolution, into a
// premultiplied buffer.  [Image.NRGBA] scales the result down to the
// nominal size.
type Image struct {
	canvas.Stack

	w, h    int
	density int
	work    *image.RGBA
	r       *Rasterizer
}

var _ canvas.Canvas = (*Image)(nil)

// NewImage returns a transparent canvas of w×h pixels.  Density values
// below 1 are treated as 1.
func NewImage(w, h, density int) *Image {
	density = max(density, 1)
	dw, dh := w*density, h*density
	return &Image{
		Stack:   canvas.NewStack(matrix.Identity),
		w:       w,
		h:       h,
		density: density,
		work:    image.NewRGBA(image.Rect(0, 0, dw, dh)),
		r:       NewRasterizer(rect.Rect{URx: float64(dw), URy: float64(dh)}),
	}
}

// Size implements [canvas.Canvas].
func (im *Image) Size() (w, h float64) {
	return float64(im.w), float64(im.h)
}

// Density returns the supersampling factor.
func (im *Image) Density() int {
	return im.density
}

// SetFlatness sets the curve tolerance in output pixels.
func (im *Image) SetFlatness(f float64) {
	if f > 0 {
		im.r.Flatness = f * float64(im.density)
	}
}

// Clear implements [canvas.Canvas].
func (im *Image) Clear(col color.NRGBA) {
	c := color.RGBAModel.Convert(col).(color.RGBA)
	pix := im.work.Pix
	for i := 0; i < len(pix); i += 4 {
		pix[i+0] = c.R
		pix[i+1] = c.G
		pix[i+2] = c.B
		pix[i+3] = c.A
	}
}

// StrokeLine implements [canvas.Canvas].  Lines have round caps.
func (im *Image) StrokeLine(a, b vec.Vec2, width float64, col color.NRGBA) {
	im.stroke(canvas.Line(a, b), width, graphics.LineCapRound, col)
}

// StrokeRect implements [canvas.Canvas].
func (im *Image) StrokeRect(x, y, w, h, width float64, col color.NRGBA) {
	im.stroke(canvas.Rect(x, y, w, h), width, graphics.LineCapButt, col)
}

// StrokeCircle implements [canvas.Canvas].
func (im *Image) StrokeCircle(center vec.Vec2, r, width float64, col color.NRGBA) {
	im.stroke(canvas.Circle(center, r), width, graphics.LineCapButt, col)
}

// FillRect implements [canvas.Canvas].
func (im *Image) FillRect(x, y, w, h float64, col color.NRGBA) {
	im.fill(canvas.Rect(x, y, w, h), col)
}

// FillCircle implements [canvas.Canvas].
func (im *Image) FillCircle(center vec.Vec2, r float64, col color.NRGBA) {
	im.fill(canvas.Circle(center, r), col)
}

func (im *Image) device() matrix.Matrix {
	d := float64(im.density)
	return im.CTM.Mul(matrix.Scale(d, d))
}

func (im *Image) fill(p *path.Data, col color.NRGBA) {
	if col.A == 0 {
		return
	}
	im.r.CTM = im.device()
	im.r.FillNonZero(p, im.blender(col))
}

func (im *Image) stroke(p *path.Data, width float64, lc graphics.LineCapStyle, col color.NRGBA) {
	if col.A == 0 || width <= 0 {
		return
	}
	im.r.CTM = im.device()
	im.r.Width = width
	im.r.Cap = lc
	im.r.Join = graphics.LineJoinMiter
	im.r.Stroke(p, im.blender(col))
}

// blender returns an EmitFunc which composites col over the buffer,
// scaled by the coverage.
func (im *Image) blender(col color.NRGBA) EmitFunc {
	sr := float32(col.R)
	sg := float32(col.G)
	sb := float32(col.B)
	sa := float32(col.A) / 255
	return func(y, x int, coverage []float32) {
		off := im.work.PixOffset(x, y)
		pix := im.work.Pix[off : off+4*len(coverage)]
		for i, c := range coverage {
			a := c * sa
			if a <= 0 {
				continue
			}
			k := 1 - a
			p := pix[4*i : 4*i+4 : 4*i+4]
			p[0] = to8(sr*a + float32(p[0])*k)
			p[1] = to8(sg*a + float32(p[1])*k)
			p[2] = to8(sb*a + float32(p[2])*k)
			p[3] = to8(255*a + float32(p[3])*k)
		}
	}
}

func to8(x float32) uint8 {
	x += 0.5
	if x >= 255 {
		return 255
	}
	if x <= 0 {
		return 0
	}
	return uint8(x)
}

// NRGBA returns the drawing at its nominal size.  With a density above 1
// the buffer is scaled down using Catmull-Rom filtering.
func (im *Image) NRGBA() *image.NRGBA {
	out := image.NewNRGBA(image.Rect(0, 0, im.w, im.h))
	if im.density == 1 {
		draw.Draw(out, out.Bounds(), im.work, image.Point{}, draw.Src)
	} else {
		draw.CatmullRom.Scale(out, out.Bounds(), im.work, im.work.Bounds(), draw.Src, nil)
	}
	return out
}

// EncodePNG writes the drawing as a PNG image.
func (im *Image) EncodePNG(w io.Writer) error {
	return png.Encode(w, im.NRGBA())
}

// WritePNG saves the drawing as a PNG file.
func (im *Image) WritePNG(fname string) (err error) {
	f, err := os.Create(fname)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = cerr
		}
	}()
	if err := im.EncodePNG(f); err != nil {
		return fmt.Errorf("encoding %s: %w", fname, err)
	}
	return nil
}
