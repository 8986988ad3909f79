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

package palette

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	cases := []struct {
		in   string
		want RGB
	}{
		{"#000000", RGB{0, 0, 0}},
		{"#ff6b35", RGB{0xff, 0x6b, 0x35}},
		{"#FF3366", RGB{0xff, 0x33, 0x66}},
		{"00d4ff", RGB{0x00, 0xd4, 0xff}},
		{"#fff", RGB{255, 255, 255}},
		{"#12345", White},
		{"red", White},
		{"", White},
		{"#gg0000", White},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Parse(tc.in), "Parse(%q)", tc.in)
	}

	_, err := ParseErr("#zz")
	require.Error(t, err)
}

func TestHex(t *testing.T) {
	assert.Equal(t, "#ff6b35", RGB{0xff, 0x6b, 0x35}.Hex())
	assert.Equal(t, "#000000", Black.Hex())
}

func TestLerpRounding(t *testing.T) {
	assert.Equal(t, RGB{128, 128, 128}, Lerp(Black, White, 0.5))
	assert.Equal(t, RGB{2, 2, 2}, Lerp(RGB{0, 0, 0}, RGB{3, 3, 3}, 0.5))
	assert.Equal(t, White, Lerp(Black, White, 7))
}

func TestAlpha(t *testing.T) {
	assert.Equal(t, uint8(255), Alpha(100))
	assert.Equal(t, uint8(255), Alpha(150))
	assert.Equal(t, uint8(0), Alpha(-3))
	assert.Equal(t, uint8(128), Alpha(50))
}

func TestResolveSingleStop(t *testing.T) {
	for _, x := range []float64{0, 0.25, 0.5, 1} {
		assert.Equal(t, Parse("#ff3366"), Resolve([]string{"#ff3366"}, x, 0, 100, 100))
	}
	assert.Equal(t, White, Resolve(nil, 0.3, 0, 100, 0))
}

func TestResolveEnds(t *testing.T) {
	stops := []string{"#ff6b35", "#00d4ff", "#ffcc00"}
	assert.Equal(t, Parse(stops[0]), Resolve(stops, 0, 0, 100, 0))
	assert.Equal(t, Parse(stops[2]), Resolve(stops, 1, 0, 100, 0))
	assert.Equal(t, Parse(stops[1]), Resolve(stops, 0.5, 0, 100, 0))
}

func TestResolveMidGrey(t *testing.T) {
	got := Resolve([]string{"#000000", "#ffffff"}, 0.5, 0, 100, 0)
	assert.Equal(t, "#808080", got.Hex())
}

func TestResolveFadeAndSteps(t *testing.T) {
	stops := []string{"#000000", "#ffffff"}

	// outside the window the end stops are used
	assert.Equal(t, Black, Resolve(stops, 0.2, 30, 70, 0))
	assert.Equal(t, White, Resolve(stops, 0.8, 30, 70, 0))
	assert.Equal(t, "#808080", Resolve(stops, 0.5, 30, 70, 0).Hex())

	// two steps give only the end stops
	assert.Equal(t, Black, Resolve(stops, 0.4, 0, 100, 2))
	assert.Equal(t, White, Resolve(stops, 0.6, 0, 100, 2))
}

func TestResolveMalformedStop(t *testing.T) {
	got := Resolve([]string{"nonsense", "#000000"}, 0, 0, 100, 0)
	assert.Equal(t, White, got)
}
