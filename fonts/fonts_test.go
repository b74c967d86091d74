// This file is part of TileTV.
//
// TileTV is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// TileTV is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with TileTV.  If not, see <https://www.gnu.org/licenses/>.

package fonts_test

import (
	"testing"

	"github.com/jetsetilly/tiletv/curated"
	"github.com/jetsetilly/tiletv/fonts"
	"github.com/jetsetilly/tiletv/test"
)

func TestBuiltin(t *testing.T) {
	f := fonts.Builtin()
	test.ExpectEquality(t, f.Height, 8)
	test.ExpectEquality(t, len(f.Glyphs), 128)

	blank := func(g int) bool {
		for _, b := range f.Glyphs[g] {
			if b != 0 {
				return false
			}
		}
		return true
	}

	test.ExpectSuccess(t, blank(' '))
	test.ExpectSuccess(t, blank(0))
	test.ExpectFailure(t, blank('A'))
	test.ExpectFailure(t, blank('0'))

	// the face is seven pixels wide so bit 0 is never set
	for g := range f.Glyphs {
		for _, b := range f.Glyphs[g] {
			test.ExpectEquality(t, b&0x01, 0)
		}
	}
}

func TestLayout(t *testing.T) {
	f := fonts.NewFont(8, 3)
	for g := range f.Glyphs {
		for l := range f.Height {
			f.Glyphs[g][l] = uint8(g<<4 | l)
		}
	}

	data, err := f.Layout(256, false)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, len(data), 8*256)
	test.ExpectEquality(t, data[5*256+2], uint8(0x25))

	data, err = f.Layout(128, false)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, len(data), 4*256)
	test.ExpectEquality(t, data[2*256+0*128+1], uint8(0x14))
	test.ExpectEquality(t, data[2*256+1*128+1], uint8(0x15))

	// little-endian output reverses the pixel order
	f.Glyphs[0][0] = 0xc0
	data, err = f.Layout(128, true)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, data[0], uint8(0x03))

	_, err = f.Layout(64, false)
	test.ExpectSuccess(t, curated.Is(err, fonts.BadLayout))

	_, err = fonts.NewFont(8, 200).Layout(128, false)
	test.ExpectSuccess(t, curated.Is(err, fonts.BadLayout))
}

func TestOffset(t *testing.T) {
	test.ExpectEquality(t, fonts.Offset(256, 10, 3), 3*256+10)
	test.ExpectEquality(t, fonts.Offset(128, 10, 3), 256+128+10)
	test.ExpectEquality(t, fonts.Offset(128, 127, 6), 3*256+127)
}

func TestInverse(t *testing.T) {
	f := fonts.Builtin().Inverse()
	test.ExpectEquality(t, len(f.Glyphs), 256)
	for l := range f.Height {
		test.ExpectEquality(t, f.Glyphs['A'+128][l], ^f.Glyphs['A'][l])
	}
}

func TestBinary(t *testing.T) {
	f := fonts.Builtin()
	b, err := f.MarshalBinary()
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, len(b), 2+128*8)

	var g fonts.Font
	test.DemandSuccess(t, g.UnmarshalBinary(b))
	test.ExpectEquality(t, g.Height, 8)
	test.ExpectEquality(t, len(g.Glyphs), 128)
	test.ExpectEquality(t, g.Glyphs['Z'][4], f.Glyphs['Z'][4])

	err = g.UnmarshalBinary(b[:10])
	test.ExpectSuccess(t, curated.Is(err, fonts.BadFontData))
}
