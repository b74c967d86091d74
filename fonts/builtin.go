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

package fonts

import (
	"image"
	"sync"

	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// the lines of the 7x13 face used for the eight line glyphs. the face has
// room for descenders and accents which are dropped, along with the second
// line of the capitals
var builtinRows = [8]int{2, 4, 5, 6, 7, 8, 9, 10}

var builtin struct {
	once sync.Once
	font *Font
}

// Builtin returns the built-in font. It has 128 glyphs of 8 lines. Glyphs
// 32 to 126 are the printable ASCII characters. All other glyphs are blank.
//
// The returned font is shared and must not be modified.
func Builtin() *Font {
	builtin.once.Do(func() {
		builtin.font = fromFace()
	})
	return builtin.font
}

func fromFace() *Font {
	face := basicfont.Face7x13
	f := NewFont(len(builtinRows), 128)

	for c := ' '; c < 0x7f; c++ {
		dr, mask, maskp, _, ok := face.Glyph(fixed.P(0, face.Ascent), c)
		if !ok {
			continue
		}
		for l, row := range builtinRows {
			var b uint8
			for x := range 7 {
				if alpha(mask, maskp.Add(image.Pt(x, row-dr.Min.Y))) {
					b |= 0x80 >> x
				}
			}
			f.Glyphs[c][l] = b
		}
	}

	return f
}

func alpha(mask image.Image, p image.Point) bool {
	if !p.In(mask.Bounds()) {
		return false
	}
	_, _, _, a := mask.At(p.X, p.Y).RGBA()
	return a > 0x7fff
}
