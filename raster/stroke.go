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
	"slices"

	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf/graphics"
)

const (
	// flattened points closer than this are merged
	zeroLength = 1e-10

	// directions with a smaller cross product count as collinear
	collinear = 1e-6

	minArcSegments = 8
)

// Stroke computes the coverage of the outline of p, using the width, cap,
// join and miter limit of r.
//
// The stroke is built as a union of convex pieces in user space: a
// rectangle for every flattened segment, plus caps and joins.  All
// pieces are oriented the same way, so that the nonzero rule merges
// overlapping parts.
func (r *Rasterizer) Stroke(p *path.Data, emit EmitFunc) {
	if r.Width <= 0 {
		return
	}
	r.flatten(p)

	r.poly = r.poly[:0]
	r.polyStart = r.polyStart[:0]
	for i, start := range r.flatStart {
		end := len(r.flat)
		if i+1 < len(r.flatStart) {
			end = r.flatStart[i+1]
		}
		r.strokeSubpath(r.flat[start:end], r.flatClosed[i])
	}

	r.beginEdges()
	for i, start := range r.polyStart {
		end := len(r.poly)
		if i+1 < len(r.polyStart) {
			end = r.polyStart[i+1]
		}
		pts := r.poly[start:end]
		for j := range pts {
			r.addEdge(pts[j], pts[(j+1)%len(pts)])
		}
	}
	r.scan(NonZero, emit)
}

// flatten converts p into polylines, one per subpath, stored in r.flat.
// Consecutive duplicate points are dropped.  A subpath without extent is
// kept as a single point.
func (r *Rasterizer) flatten(p *path.Data) {
	r.flat = r.flat[:0]
	r.flatStart = r.flatStart[:0]
	r.flatClosed = r.flatClosed[:0]

	cur := 0
	seg := func(a, b vec.Vec2) {
		if len(r.flat) == cur {
			r.flat = append(r.flat, a)
		}
		if b.Sub(r.flat[len(r.flat)-1]).Length() > zeroLength {
			r.flat = append(r.flat, b)
		}
	}
	sub := func(start vec.Vec2, closed bool) {
		if len(r.flat) == cur {
			r.flat = append(r.flat, start)
		}
		n := len(r.flat) - cur
		if closed && n > 1 && r.flat[len(r.flat)-1].Sub(r.flat[cur]).Length() <= zeroLength {
			r.flat = r.flat[:len(r.flat)-1]
		}
		r.flatStart = append(r.flatStart, cur)
		r.flatClosed = append(r.flatClosed, closed)
		cur = len(r.flat)
	}
	r.walk(p, seg, sub)
}

func (r *Rasterizer) strokeSubpath(pts []vec.Vec2, closed bool) {
	h := r.Width / 2
	n := len(pts)

	if n == 1 {
		switch r.Cap {
		case graphics.LineCapRound:
			r.addDisk(pts[0], h)
		case graphics.LineCapSquare:
			c := pts[0]
			r.addConvex(
				vec.Vec2{X: c.X - h, Y: c.Y - h},
				vec.Vec2{X: c.X + h, Y: c.Y - h},
				vec.Vec2{X: c.X + h, Y: c.Y + h},
				vec.Vec2{X: c.X - h, Y: c.Y + h})
		}
		return
	}

	segs := n - 1
	if closed {
		segs = n
	}
	for i := range segs {
		a, b := pts[i], pts[(i+1)%n]
		nrm := normal(a, b).Mul(h)
		r.addConvex(a.Add(nrm), b.Add(nrm), b.Sub(nrm), a.Sub(nrm))
	}

	if closed {
		for i := range n {
			r.addJoin(pts[(i+n-1)%n], pts[i], pts[(i+1)%n], h)
		}
		return
	}
	for i := 1; i < n-1; i++ {
		r.addJoin(pts[i-1], pts[i], pts[i+1], h)
	}
	r.addCap(pts[1], pts[0], h)
	r.addCap(pts[n-2], pts[n-1], h)
}

// addJoin adds the corner piece at vertex p, between the segments
// from a to p and from p to b.
func (r *Rasterizer) addJoin(a, p, b vec.Vec2, h float64) {
	d0 := unit(p.Sub(a))
	d1 := unit(b.Sub(p))
	cross := d0.X*d1.Y - d0.Y*d1.X
	dot := d0.Dot(d1)
	if math.Abs(cross) < collinear && dot > 0 {
		return
	}

	if r.Join == graphics.LineJoinRound {
		r.addDisk(p, h)
		return
	}

	// s selects the outer side of the corner
	s := h
	if cross > 0 {
		s = -h
	}
	n0 := leftNormal(d0)
	n1 := leftNormal(d1)
	pa := p.Add(n0.Mul(s))
	pb := p.Add(n1.Mul(s))

	if r.Join == graphics.LineJoinMiter && 1+dot > collinear {
		ratio := 1 / math.Sqrt((1+dot)/2)
		if ratio <= r.MiterLimit {
			tip := p.Add(unit(n0.Add(n1)).Mul(s * ratio))
			r.addConvex(p, pa, tip, pb)
			return
		}
	}
	r.addConvex(p, pa, pb)
}

// addCap adds the end cap at e, for a line arriving from a.
func (r *Rasterizer) addCap(a, e vec.Vec2, h float64) {
	switch r.Cap {
	case graphics.LineCapRound:
		r.addDisk(e, h)
	case graphics.LineCapSquare:
		d := unit(e.Sub(a)).Mul(h)
		nrm := leftNormal(unit(e.Sub(a))).Mul(h)
		f := e.Add(d)
		r.addConvex(e.Add(nrm), f.Add(nrm), f.Sub(nrm), e.Sub(nrm))
	}
}

// addDisk adds a polygon approximating the disk of radius h around c.
// The number of vertices depends on the size of the disk in device
// space.
func (r *Rasterizer) addDisk(c vec.Vec2, h float64) {
	rDev := h * r.maxScale()
	n := minArcSegments
	if rDev > r.Flatness {
		step := 2 * math.Acos(1-r.Flatness/rDev)
		n = max(n, segmentCount(2*math.Pi/step))
	}

	start := len(r.poly)
	for i := range n {
		phi := 2 * math.Pi * float64(i) / float64(n)
		r.poly = append(r.poly, vec.Vec2{
			X: c.X + h*math.Cos(phi),
			Y: c.Y + h*math.Sin(phi),
		})
	}
	r.polyStart = append(r.polyStart, start)
}

// addConvex adds a convex polygon, oriented counter-clockwise in user
// space.
func (r *Rasterizer) addConvex(pts ...vec.Vec2) {
	start := len(r.poly)
	r.poly = append(r.poly, pts...)
	if signedArea(r.poly[start:]) < 0 {
		slices.Reverse(r.poly[start:])
	}
	r.polyStart = append(r.polyStart, start)
}

// maxScale returns the largest factor by which the CTM stretches a
// vector.
func (r *Rasterizer) maxScale() float64 {
	a, b, c, d := r.CTM[0], r.CTM[1], r.CTM[2], r.CTM[3]
	s := a*a + b*b + c*c + d*d
	det := a*d - b*c
	disc := math.Sqrt(max(s*s-4*det*det, 0))
	return math.Sqrt((s + disc) / 2)
}

func signedArea(pts []vec.Vec2) float64 {
	var sum float64
	for i, p := range pts {
		q := pts[(i+1)%len(pts)]
		sum += p.X*q.Y - q.X*p.Y
	}
	return sum / 2
}

func unit(v vec.Vec2) vec.Vec2 {
	l := v.Length()
	if l == 0 {
		return v
	}
	return v.Mul(1 / l)
}

func leftNormal(d vec.Vec2) vec.Vec2 {
	return vec.Vec2{X: -d.Y, Y: d.X}
}

func normal(a, b vec.Vec2) vec.Vec2 {
	return leftNormal(unit(b.Sub(a)))
}
