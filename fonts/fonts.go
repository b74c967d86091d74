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

// Package fonts holds tile bitmaps and arranges them in the memory layouts
// read by the video kernels.
//
// Each glyph is a list of bytes, one per line. Bit 7 of each byte is the
// leftmost pixel. The layouts convert to bit 0 leftmost for little-endian
// output.
package fonts

import (
	"encoding/binary"
	"math/bits"

	"github.com/jetsetilly/tiletv/curated"
)

// Font is a set of glyphs of the same height.
type Font struct {
	Height int
	Glyphs [][]uint8
}

// Sentinel errors.
const (
	BadLayout    = "fonts: cannot lay out %d glyphs in a %d glyph font"
	BadHeight    = "fonts: glyph %d has %d lines, font height is %d"
	BadFontData  = "fonts: font data is not valid: %s"
	GlyphMissing = "fonts: glyph %d is not in the font"
)

// NewFont creates a font with the specified number of blank glyphs.
func NewFont(height int, count int) *Font {
	f := &Font{
		Height: height,
		Glyphs: make([][]uint8, count),
	}
	for i := range f.Glyphs {
		f.Glyphs[i] = make([]uint8, height)
	}
	return f
}

// Offset returns the position of line of a glyph in a font laid out for the
// number of chars. Chars must be 128 or 256.
func Offset(chars int, glyph int, line int) int {
	if chars == 256 {
		return line*256 + glyph
	}
	return (line>>1)*256 + (line&1)*128 + glyph
}

// Layout arranges the glyphs in the layout read by the kernels. Chars is the
// number of glyphs in the layout and must be 128 or 256. Glyphs beyond the
// number in the font are blank.
func (f *Font) Layout(chars int, littleEndian bool) ([]uint8, error) {
	if chars != 128 && chars != 256 {
		return nil, curated.Errorf(BadLayout, len(f.Glyphs), chars)
	}
	if len(f.Glyphs) > chars {
		return nil, curated.Errorf(BadLayout, len(f.Glyphs), chars)
	}

	pages := f.Height
	if chars == 128 {
		pages = (f.Height + 1) / 2
	}

	data := make([]uint8, pages*256)
	for g, lines := range f.Glyphs {
		if len(lines) != f.Height {
			return nil, curated.Errorf(BadHeight, g, len(lines), f.Height)
		}
		for l, b := range lines {
			if littleEndian {
				b = bits.Reverse8(b)
			}
			data[Offset(chars, g, l)] = b
		}
	}

	return data, nil
}

// Inverse adds inverted copies of the first 128 glyphs to make a 256 glyph
// font. The font must have no more than 128 glyphs.
func (f *Font) Inverse() *Font {
	n := NewFont(f.Height, 256)
	for g := range 128 {
		if g >= len(f.Glyphs) {
			for l := range f.Height {
				n.Glyphs[g+128][l] = 0xff
			}
			continue
		}
		for l := range f.Height {
			n.Glyphs[g][l] = f.Glyphs[g][l]
			n.Glyphs[g+128][l] = ^f.Glyphs[g][l]
		}
	}
	return n
}

// Glyph returns the bitmap for the glyph.
func (f *Font) Glyph(g int) ([]uint8, error) {
	if g < 0 || g >= len(f.Glyphs) {
		return nil, curated.Errorf(GlyphMissing, g)
	}
	return f.Glyphs[g], nil
}

// the binary form of a font is a two byte header of height and glyph count
// minus one, followed by the glyph lines in glyph order

// MarshalBinary implements the encoding.BinaryMarshaler interface.
func (f *Font) MarshalBinary() ([]byte, error) {
	if f.Height < 1 || f.Height > 255 || len(f.Glyphs) < 1 || len(f.Glyphs) > 256 {
		return nil, curated.Errorf(BadFontData, "font is empty or too large")
	}

	b := make([]byte, 0, 2+len(f.Glyphs)*f.Height)
	b = binary.BigEndian.AppendUint16(b, uint16(f.Height)<<8|uint16(len(f.Glyphs)-1))
	for g, lines := range f.Glyphs {
		if len(lines) != f.Height {
			return nil, curated.Errorf(BadHeight, g, len(lines), f.Height)
		}
		b = append(b, lines...)
	}
	return b, nil
}

// UnmarshalBinary implements the encoding.BinaryUnmarshaler interface.
func (f *Font) UnmarshalBinary(data []byte) error {
	if len(data) < 2 {
		return curated.Errorf(BadFontData, "no header")
	}
	hdr := binary.BigEndian.Uint16(data)
	height := int(hdr >> 8)
	count := int(hdr&0xff) + 1
	if height == 0 {
		return curated.Errorf(BadFontData, "zero height")
	}

	data = data[2:]
	if len(data) != height*count {
		return curated.Errorf(BadFontData, "wrong length")
	}

	f.Height = height
	f.Glyphs = make([][]uint8, count)
	for g := range f.Glyphs {
		f.Glyphs[g] = append([]uint8(nil), data[g*height:(g+1)*height]...)
	}
	return nil
}
