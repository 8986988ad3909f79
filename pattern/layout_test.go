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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"seehuhn.de/go/vectorlab/attr"
)

func TestWeightedGapDistances(t *testing.T) {
	weights := []float64{2, 6, 1, 4, 3}
	gaps := []float64{0, 10, 5, 20, 7.5}

	pos := WeightedGap(weights, gaps, 500, false)
	for i := 1; i < len(pos); i++ {
		want := weights[i-1]/2 + gaps[i] + weights[i]/2
		assert.InDelta(t, want, pos[i]-pos[i-1], 1e-9, "distance %d", i)
	}

	// the bounding box is centred
	lo := pos[0] - weights[0]/2
	hi := pos[4] + weights[4]/2
	assert.InDelta(t, 500-hi, lo, 1e-9)
}

func TestWeightedGapFit(t *testing.T) {
	weights := []float64{2, 6, 1, 4}
	gaps := []float64{0, 10, 5, 20}

	pos := WeightedGap(weights, gaps, 300, true)
	assert.Equal(t, 0.0, pos[0])
	assert.Equal(t, 300.0, pos[3])

	// fitting scales all distances by the same factor
	raw := WeightedGap(weights, gaps, 0, false)
	ratio := (pos[1] - pos[0]) / (raw[1] - raw[0])
	for i := 2; i < len(pos); i++ {
		assert.InDelta(t, ratio, (pos[i]-pos[i-1])/(raw[i]-raw[i-1]), 1e-9)
	}
}

func TestWeightedGapSingle(t *testing.T) {
	assert.Equal(t, []float64{50}, WeightedGap([]float64{4}, []float64{0}, 100, true))
	assert.Equal(t, []float64{50}, WeightedGap([]float64{4}, []float64{0}, 100, false))
	assert.Empty(t, WeightedGap(nil, nil, 100, true))
}

func TestResolveLayout(t *testing.T) {
	l := DefaultLayer()
	assert.Equal(t, LayoutUniform, l.resolveLayout())

	l.Spacing.Rate = 0.5
	assert.Equal(t, LayoutProportional, l.resolveLayout())

	l.Spacing = attr.Default(1, 2)
	assert.Equal(t, LayoutProportional, l.resolveLayout())

	l.Layout = LayoutNoFit
	assert.Equal(t, LayoutNoFit, l.resolveLayout())
}

func TestLinesFitLayout(t *testing.T) {
	l := DefaultLayer()
	l.Count = 4
	l.Layout = LayoutFit
	l.Weight = attr.Default(2, 8)
	rec := render(t, l, 600, 100, 0)

	require.Len(t, rec.Ops, 4)
	assert.InDelta(t, 0.0, rec.Ops[0].A.X, 1e-9)
	assert.InDelta(t, 600.0, rec.Ops[3].A.X, 1e-9)
	for i := 1; i < 4; i++ {
		assert.Greater(t, rec.Ops[i].A.X, rec.Ops[i-1].A.X)
	}
}

func TestProportionalLayout(t *testing.T) {
	elems := []element{{spacing: 1}, {spacing: 1}, {spacing: 2}}
	pos := positions(LayoutProportional, elems, 100)
	assert.InDeltaSlice(t, []float64{25, 50, 100}, pos, 1e-9)

	// zero total spacing falls back to uniform placement
	elems = []element{{}, {}}
	pos = positions(LayoutProportional, elems, 100)
	assert.InDeltaSlice(t, []float64{25, 75}, pos, 1e-9)
}
