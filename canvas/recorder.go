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

package canvas

import (
	"image/color"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/vec"
)

// Kind identifies a drawing primitive.
type Kind int

// These are the primitives of a [Canvas].
const (
	KindStrokeLine Kind = iota
	KindStrokeRect
	KindStrokeCircle
	KindFillRect
	KindFillCircle
	KindClear
)

func (k Kind) String() string {
	switch k {
	case KindStrokeLine:
		return "line"
	case KindStrokeRect:
		return "rect"
	case KindStrokeCircle:
		return "circle"
	case KindFillRect:
		return "fill-rect"
	case KindFillCircle:
		return "fill-circle"
	case KindClear:
		return "clear"
	}
	return "unknown"
}

// Op is one recorded drawing call.
//
// For lines, A and B are the end points.  For rectangles, A is the
// top-left corner and B holds the width and height.  For circles, A is
// the centre and R the radius.  All coordinates are in user space; CTM
// is the transformation which was in effect.
type Op struct {
	Kind  Kind
	A, B  vec.Vec2
	R     float64
	Width float64 // stroke width, zero for fills
	Color color.NRGBA
	CTM   matrix.Matrix
}

// Recorder is a [Canvas] which records all drawing calls.
type Recorder struct {
	Stack
	W, H float64
	Ops  []Op
}

// NewRecorder returns an empty recorder for a surface of the given size.
func NewRecorder(w, h float64) *Recorder {
	return &Recorder{
		Stack: NewStack(matrix.Identity),
		W:     w,
		H:     h,
	}
}

// Size implements [Canvas].
func (r *Recorder) Size() (float64, float64) {
	return r.W, r.H
}

func (r *Recorder) add(op Op) {
	op.CTM = r.CTM
	r.Ops = append(r.Ops, op)
}

// StrokeLine implements [Canvas].
func (r *Recorder) StrokeLine(a, b vec.Vec2, width float64, col color.NRGBA) {
	r.add(Op{Kind: KindStrokeLine, A: a, B: b, Width: width, Color: col})
}

// StrokeRect implements [Canvas].
func (r *Recorder) StrokeRect(x, y, w, h, width float64, col color.NRGBA) {
	r.add(Op{Kind: KindStrokeRect, A: Pt(x, y), B: Pt(w, h), Width: width, Color: col})
}

// StrokeCircle implements [Canvas].
func (r *Recorder) StrokeCircle(center vec.Vec2, radius, width float64, col color.NRGBA) {
	r.add(Op{Kind: KindStrokeCircle, A: center, R: radius, Width: width, Color: col})
}

// FillRect implements [Canvas].
func (r *Recorder) FillRect(x, y, w, h float64, col color.NRGBA) {
	r.add(Op{Kind: KindFillRect, A: Pt(x, y), B: Pt(w, h), Color: col})
}

// FillCircle implements [Canvas].
func (r *Recorder) FillCircle(center vec.Vec2, radius float64, col color.NRGBA) {
	r.add(Op{Kind: KindFillCircle, A: center, R: radius, Color: col})
}

// Clear implements [Canvas].
func (r *Recorder) Clear(col color.NRGBA) {
	r.add(Op{Kind: KindClear, Color: col})
}

// Filter returns the recorded operations of the given kind.
func (r *Recorder) Filter(k Kind) []Op {
	var res []Op
	for _, op := range r.Ops {
		if op.Kind == k {
			res = append(res, op)
		}
	}
	return res
}

// Counts returns the number of recorded operations per kind.
func (r *Recorder) Counts() map[Kind]int {
	res := make(map[Kind]int)
	for _, op := range r.Ops {
		res[op.Kind]++
	}
	return res
}

// Reset discards all recorded operations and saved states.
func (r *Recorder) Reset() {
	r.Ops = r.Ops[:0]
	r.Stack = NewStack(matrix.Identity)
}
