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

// Package raster turns vector paths into anti-aliased pixels.
//
// The [Rasterizer] computes the exact area coverage of every pixel
// touched by a filled or stroked path and hands it to a callback one
// scanline at a time.  [Image] uses it to implement a drawing surface
// on top of an in-memory RGBA image.
package raster

import (
	"cmp"
	"math"
	"slices"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf/graphics"
)

// Rule selects how the winding number of a point decides whether it is
// inside a path.
type Rule int

// The supported fill rules.
const (
	NonZero Rule = iota
	EvenOdd
)

// EmitFunc receives the coverage of one scanline.  coverage[i] is the
// fraction of pixel (x+i, y) covered by the path, in [0,1].  The slice is
// only valid during the call.
type EmitFunc func(y, x int, coverage []float32)

const (
	// DefaultFlatness is the curve flattening tolerance in device pixels.
	DefaultFlatness = 0.25

	// DefaultMiterLimit converts joins sharper than about 11.5° into
	// bevels.
	DefaultMiterLimit = 10.0

	// edges with a smaller vertical extent do not contribute coverage
	horizontalEdgeThreshold = 1e-10

	// bounding box area, in pixels, above which the active edge list is
	// used instead of full 2D buffers
	smallPathArea = 65536

	// upper limit for the number of segments used for one curve or disk
	maxCurveSegments = 1024
)

// segmentCount rounds f up to a segment count in [1, maxCurveSegments].
func segmentCount(f float64) int {
	if !(f > 1) {
		return 1
	}
	if f >= maxCurveSegments {
		return maxCurveSegments
	}
	return int(math.Ceil(f))
}

// pixel returns floor(x), limited to [lo, hi].
func pixel(x float64, lo, hi int) int {
	switch {
	case !(x >= float64(lo)):
		return lo
	case x >= float64(hi):
		return hi
	}
	return int(math.Floor(x))
}

// edge is a line segment in device coordinates.
type edge struct {
	x0, y0 float64
	x1, y1 float64
	dxdy   float64
}

func (e *edge) yMin() float64 { return min(e.y0, e.y1) }
func (e *edge) yMax() float64 { return max(e.y0, e.y1) }

// Rasterizer converts paths into per-pixel coverage.  Internal buffers
// grow as needed and are reused, so that a single Rasterizer drawing
// many shapes does not allocate once it has warmed up.
//
// A Rasterizer is not safe for concurrent use.
type Rasterizer struct {
	// CTM maps user space to device space.  It must be non-singular.
	CTM matrix.Matrix

	// Clip bounds the output, in device coordinates.  The coordinates
	// must be integers.
	Clip rect.Rect

	// Flatness is the maximal distance, in device pixels, between a
	// curve and the polygon used to approximate it.
	Flatness float64

	// Width is the stroke width in user space units.
	Width float64

	Cap        graphics.LineCapStyle
	Join       graphics.LineJoinStyle
	MiterLimit float64

	smallArea int

	cover []float32
	area  []float32
	edges []edge

	active  []int
	touched []bool

	bbFirst        bool
	bbXMin, bbXMax float64
	bbYMin, bbYMax float64
	poly           []vec.Vec2
	polyStart      []int
	flat           []vec.Vec2
	flatStart      []int
	flatClosed     []bool
}

// NewRasterizer returns a Rasterizer which draws into the given clip
// rectangle, with an identity CTM, a stroke width of 1, butt caps and
// mitered joins.
func NewRasterizer(clip rect.Rect) *Rasterizer {
	return &Rasterizer{
		CTM:        matrix.Identity,
		Clip:       clip,
		Flatness:   DefaultFlatness,
		Width:      1,
		Cap:        graphics.LineCapButt,
		Join:       graphics.LineJoinMiter,
		MiterLimit: DefaultMiterLimit,
		smallArea:  smallPathArea,
	}
}

// Fill computes the coverage of the interior of p under the given rule.
func (r *Rasterizer) Fill(p *path.Data, rule Rule, emit EmitFunc) {
	r.beginEdges()
	r.walk(p, r.addEdge, nil)
	r.scan(rule, emit)
}

// FillNonZero fills p using the nonzero winding rule.
func (r *Rasterizer) FillNonZero(p *path.Data, emit EmitFunc) {
	r.Fill(p, NonZero, emit)
}

// FillEvenOdd fills p using the even-odd rule.
func (r *Rasterizer) FillEvenOdd(p *path.Data, emit EmitFunc) {
	r.Fill(p, EvenOdd, emit)
}

// walk flattens p in user space.  Every line segment is passed to seg.
// If sub is not nil, it is called at the end of every subpath with the
// start point of the subpath and the closed flag.
func (r *Rasterizer) walk(p *path.Data, seg func(a, b vec.Vec2), sub func(start vec.Vec2, closed bool)) {
	var cur, start vec.Vec2
	open := false
	end := func(closed bool) {
		if open && sub != nil {
			sub(start, closed)
		}
		open = false
	}

	k := 0
	for _, cmd := range p.Cmds {
		switch cmd {
		case path.CmdMoveTo:
			end(false)
			cur = p.Coords[k]
			start = cur
			open = true
			k++
		case path.CmdLineTo:
			seg(cur, p.Coords[k])
			cur = p.Coords[k]
			open = true
			k++
		case path.CmdQuadTo:
			r.flattenQuad(cur, p.Coords[k], p.Coords[k+1], seg)
			cur = p.Coords[k+1]
			open = true
			k += 2
		case path.CmdCubeTo:
			r.flattenCube(cur, p.Coords[k], p.Coords[k+1], p.Coords[k+2], seg)
			cur = p.Coords[k+2]
			open = true
			k += 3
		case path.CmdClose:
			if cur != start {
				seg(cur, start)
			}
			cur = start
			end(true)
		}
	}
	end(false)
}

// linear applies the linear part of the CTM to v.
func (r *Rasterizer) linear(v vec.Vec2) vec.Vec2 {
	return vec.Vec2{
		X: r.CTM[0]*v.X + r.CTM[2]*v.Y,
		Y: r.CTM[1]*v.X + r.CTM[3]*v.Y,
	}
}

// flattenQuad splits a quadratic Bézier curve into enough segments to
// stay within the flatness tolerance in device space.
func (r *Rasterizer) flattenQuad(p0, p1, p2 vec.Vec2, seg func(a, b vec.Vec2)) {
	dev := r.linear(p0.Sub(p1.Mul(2)).Add(p2).Mul(0.25)).Length()
	n := segmentCount(math.Sqrt(dev / r.Flatness))

	prev := p0
	for i := 1; i <= n; i++ {
		t := float64(i) / float64(n)
		s := 1 - t
		pt := p0.Mul(s * s).Add(p1.Mul(2 * s * t)).Add(p2.Mul(t * t))
		seg(prev, pt)
		prev = pt
	}
}

// flattenCube splits a cubic Bézier curve into segments, using Wang's
// formula for the segment count.
func (r *Rasterizer) flattenCube(p0, p1, p2, p3 vec.Vec2, seg func(a, b vec.Vec2)) {
	d1 := r.linear(p0.Sub(p1.Mul(2)).Add(p2)).Length()
	d2 := r.linear(p1.Sub(p2.Mul(2)).Add(p3)).Length()
	n := segmentCount(math.Sqrt(3 * max(d1, d2) / (4 * r.Flatness)))

	prev := p0
	for i := 1; i <= n; i++ {
		t := float64(i) / float64(n)
		s := 1 - t
		pt := p0.Mul(s * s * s).
			Add(p1.Mul(3 * s * s * t)).
			Add(p2.Mul(3 * s * t * t)).
			Add(p3.Mul(t * t * t))
		seg(prev, pt)
		prev = pt
	}
}

func (r *Rasterizer) beginEdges() {
	r.edges = r.edges[:0]
	r.bbFirst = true
}

// addEdge transforms the user space segment from p0 to p1 to device
// space and records it.
func (r *Rasterizer) addEdge(p0, p1 vec.Vec2) {
	m := r.CTM
	x0 := m[0]*p0.X + m[2]*p0.Y + m[4]
	y0 := m[1]*p0.X + m[3]*p0.Y + m[5]
	x1 := m[0]*p1.X + m[2]*p1.Y + m[4]
	y1 := m[1]*p1.X + m[3]*p1.Y + m[5]

	dy := y1 - y0
	if dy > -horizontalEdgeThreshold && dy < horizontalEdgeThreshold {
		return
	}
	r.edges = append(r.edges, edge{x0: x0, y0: y0, x1: x1, y1: y1, dxdy: (x1 - x0) / dy})

	if r.bbFirst {
		r.bbXMin, r.bbXMax = min(x0, x1), max(x0, x1)
		r.bbYMin, r.bbYMax = min(y0, y1), max(y0, y1)
		r.bbFirst = false
		return
	}
	r.bbXMin = min(r.bbXMin, x0, x1)
	r.bbXMax = max(r.bbXMax, x0, x1)
	r.bbYMin = min(r.bbYMin, y0, y1)
	r.bbYMax = max(r.bbYMax, y0, y1)
}

// bounds returns the pixel bounding box of the recorded edges,
// intersected with the clip rectangle.
func (r *Rasterizer) bounds() (xMin, xMax, yMin, yMax int, ok bool) {
	if len(r.edges) == 0 {
		return 0, 0, 0, 0, false
	}
	cx0, cx1 := int(r.Clip.LLx), int(r.Clip.URx)
	cy0, cy1 := int(r.Clip.LLy), int(r.Clip.URy)
	xMin = pixel(r.bbXMin, cx0, cx1)
	xMax = pixel(r.bbXMax, cx0-1, cx1-1) + 1
	yMin = pixel(r.bbYMin, cy0, cy1)
	yMax = pixel(r.bbYMax, cy0-1, cy1-1) + 1
	if xMin >= xMax || yMin >= yMax {
		return 0, 0, 0, 0, false
	}
	return xMin, xMax, yMin, yMax, true
}

// scan turns the recorded edges into coverage.  Small shapes are
// accumulated into a 2D buffer in one pass over the edges.  Large shapes
// are processed one scanline at a time with an active edge list.
func (r *Rasterizer) scan(rule Rule, emit EmitFunc) {
	xMin, xMax, yMin, yMax, ok := r.bounds()
	if !ok {
		return
	}
	if (xMax-xMin)*(yMax-yMin) < r.smallArea {
		r.scanSmall(xMin, xMax, yMin, yMax, rule, emit)
	} else {
		r.scanLarge(xMin, xMax, yMin, yMax, rule, emit)
	}
}

// Each pixel accumulates two values from the edges crossing it: cover is
// the signed vertical extent of the crossing and area is cover weighted
// by the part of the pixel to the right of the crossing.  Summing cover
// from the left and adding area gives the signed area of the path inside
// each pixel.

// accumulate adds the part of e inside scanline y to cover and area,
// which are indexed by x - xMin.  Contributions left of xMin are folded
// into the first pixel.
func accumulate(e *edge, y int, cover, area []float32, xMin, xMax int) {
	yTop := max(float64(y), e.yMin())
	yBot := min(float64(y+1), e.yMax())
	if yBot <= yTop {
		return
	}

	sign := float32(1)
	if e.y1 < e.y0 {
		sign = -1
	}

	xa := e.x0 + e.dxdy*(yTop-e.y0)
	xb := e.x0 + e.dxdy*(yBot-e.y0)
	left := pixel(min(xa, xb), xMin-1, xMax)
	right := pixel(max(xa, xb), xMin-1, xMax)

	switch {
	case right < xMin:
		c := sign * float32(yBot-yTop)
		cover[0] += c
		area[0] += c
		return
	case left >= xMax:
		return
	case left == right:
		addSpan(e, yTop, yBot, sign, left, cover, area, xMin, xMax)
		return
	}

	dydx := 1 / e.dxdy
	if left < xMin {
		// the part left of the clip box only contributes cover
		yx := e.y0 + dydx*(float64(xMin)-e.x0)
		lo, hi := yTop, min(yBot, yx)
		if e.dxdy < 0 {
			lo, hi = max(yTop, yx), yBot
		}
		if hi > lo {
			c := sign * float32(hi-lo)
			cover[0] += c
			area[0] += c
		}
		left = xMin
	}
	right = min(right, xMax-1)
	for pix := left; pix <= right; pix++ {
		ya := e.y0 + dydx*(float64(pix)-e.x0)
		yb := e.y0 + dydx*(float64(pix+1)-e.x0)
		lo := max(min(ya, yb), yTop)
		hi := min(max(ya, yb), yBot)
		if hi <= lo {
			continue
		}
		addSpan(e, lo, hi, sign, pix, cover, area, xMin, xMax)
	}
}

// addSpan records the part of e between lo and hi, which lies inside
// pixel column pix.
func addSpan(e *edge, lo, hi float64, sign float32, pix int, cover, area []float32, xMin, xMax int) {
	c := sign * float32(hi-lo)
	if pix < xMin {
		cover[0] += c
		area[0] += c
		return
	}
	if pix >= xMax {
		return
	}
	xMid := e.x0 + e.dxdy*((lo+hi)/2-e.y0)
	i := pix - xMin
	cover[i] += c
	area[i] += c * float32(1-(xMid-float64(pix)))
}

// integrate turns accumulated cover and area into coverage values,
// in place.
func integrate(cover, area []float32, rule Rule) {
	var acc float32
	for i := range cover {
		raw := acc + area[i]
		acc += cover[i]
		if raw < 0 {
			raw = -raw
		}
		if rule == EvenOdd {
			m := raw - 2*float32(int(raw/2))
			raw = 1 - abs32(1-m)
		} else if raw > 1 {
			raw = 1
		}
		cover[i] = raw
	}
}

func abs32(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}

// trimZeros returns the part of coverage between the first and the last
// non-zero entry, together with its offset.  An all-zero row gives nil.
func trimZeros(coverage []float32) ([]float32, int) {
	lo, hi := 0, len(coverage)
	for lo < hi && coverage[lo] == 0 {
		lo++
	}
	if lo == hi {
		return nil, 0
	}
	for coverage[hi-1] == 0 {
		hi--
	}
	return coverage[lo:hi], lo
}

func (r *Rasterizer) scanSmall(xMin, xMax, yMin, yMax int, rule Rule, emit EmitFunc) {
	w := xMax - xMin
	h := yMax - yMin

	n := w * h
	r.cover = slices.Grow(r.cover[:0], n)[:n]
	r.area = slices.Grow(r.area[:0], n)[:n]
	clear(r.cover)
	clear(r.area)
	r.touched = slices.Grow(r.touched[:0], h)[:h]
	clear(r.touched)

	for i := range r.edges {
		e := &r.edges[i]
		lo := max(int(math.Floor(e.yMin())), yMin)
		hi := min(int(math.Floor(e.yMax()))+1, yMax)
		for y := lo; y < hi; y++ {
			row := y - yMin
			off := row * w
			accumulate(e, y, r.cover[off:off+w], r.area[off:off+w], xMin, xMax)
			r.touched[row] = true
		}
	}

	for row := range h {
		if !r.touched[row] {
			continue
		}
		off := row * w
		cov := r.cover[off : off+w]
		integrate(cov, r.area[off:off+w], rule)
		if t, dx := trimZeros(cov); t != nil {
			emit(yMin+row, xMin+dx, t)
		}
	}
}

func (r *Rasterizer) scanLarge(xMin, xMax, yMin, yMax int, rule Rule, emit EmitFunc) {
	w := xMax - xMin
	r.cover = slices.Grow(r.cover[:0], w)[:w]
	r.area = slices.Grow(r.area[:0], w)[:w]

	slices.SortFunc(r.edges, func(a, b edge) int {
		return cmp.Compare(a.yMin(), b.yMin())
	})

	r.active = r.active[:0]
	next := 0
	for y := yMin; y < yMax; y++ {
		top := float64(y)
		bot := float64(y + 1)

		for next < len(r.edges) && r.edges[next].yMin() < bot {
			r.active = append(r.active, next)
			next++
		}
		if len(r.active) == 0 {
			if next == len(r.edges) {
				break
			}
			continue
		}

		clear(r.cover)
		clear(r.area)
		hit := false
		for i := 0; i < len(r.active); {
			e := &r.edges[r.active[i]]
			if e.yMax() <= top {
				last := len(r.active) - 1
				r.active[i] = r.active[last]
				r.active = r.active[:last]
				continue
			}
			accumulate(e, y, r.cover, r.area, xMin, xMax)
			hit = true
			i++
		}
		if !hit {
			continue
		}

		integrate(r.cover, r.area, rule)
		if t, dx := trimZeros(r.cover); t != nil {
			emit(y, xMin+dx, t)
		}
	}
}
