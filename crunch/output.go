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

package crunch

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"fmt"
	"go/format"
	"io"

	"github.com/jetsetilly/tiletv/crunched"
	"github.com/jetsetilly/tiletv/curated"
	"github.com/jetsetilly/tiletv/fonts"
)

// Sentinel errors.
const (
	BadData = "crunch: tileset data is not valid: %s"
)

// WriteGo writes the tileset and tile maps as Go source in the named
// package. The font variable is named after the tileset and each tile map
// gets a variable and a pair of constants named after the map.
func (ts *Tileset) WriteGo(w io.Writer, pkg string, name string) error {
	var s bytes.Buffer

	fmt.Fprintf(&s, "// Code generated by tiletv crunch. DO NOT EDIT.\n\n")
	fmt.Fprintf(&s, "package %s\n\n", pkg)
	fmt.Fprintf(&s, "import \"github.com/jetsetilly/tiletv/fonts\"\n\n")

	for _, tm := range ts.maps {
		fmt.Fprintf(&s, "// %s is %dx%d tiles\n", tm.Name, tm.Width, tm.Height)
		fmt.Fprintf(&s, "const (\n%sWidth = %d\n%sHeight = %d\n)\n\n", tm.Name, tm.Width, tm.Name, tm.Height)
		fmt.Fprintf(&s, "var %sTiles = []uint8{\n", tm.Name)
		for y := range tm.Height {
			for x := range tm.Width {
				fmt.Fprintf(&s, "0x%02x, ", tm.Tiles[y*tm.Width+x])
			}
			s.WriteString("\n")
		}
		s.WriteString("}\n\n")
	}

	fmt.Fprintf(&s, "// %s has %d tiles of %d lines. bit 7 is the leftmost pixel\n", name, len(ts.tiles), ts.opts.TileHeight)
	fmt.Fprintf(&s, "var %sFont = &fonts.Font{\nHeight: %d,\nGlyphs: [][]uint8{\n", name, ts.opts.TileHeight)
	for i, t := range ts.tiles {
		s.WriteString("{")
		for l, b := range t {
			if l > 0 {
				s.WriteString(", ")
			}
			fmt.Fprintf(&s, "0x%02x", b)
		}
		fmt.Fprintf(&s, "}, // %02x\n", i)
	}
	s.WriteString("},\n}\n")

	src, err := format.Source(s.Bytes())
	if err != nil {
		return curated.Errorf(Crunch, err)
	}

	if _, err := w.Write(src); err != nil {
		return curated.Errorf(Crunch, err)
	}
	return nil
}

// the binary form begins with the magic string and the font. the font is
// followed by the number of tile maps and then each tile map
//
//	magic     [4]byte
//	font      uint16 length, followed by the font's binary form
//	maps      uint16
//	for each map:
//	  name    uint8 length, followed by the name
//	  width   uint16
//	  height  uint16
//	  flags   uint8 (bit 0 set if the tiles are crunched)
//	  tiles   uint16 length, followed by the tiles
//
// all values are big-endian
var magic = [4]byte{'T', 'T', 'V', 'T'}

const flagCrunched = 0x01

// WriteBinary writes the tileset and tile maps in binary form. Tile maps
// are crunched where that makes them smaller.
func (ts *Tileset) WriteBinary(w io.Writer) error {
	bw := bufio.NewWriter(w)

	fnt, err := ts.Font().MarshalBinary()
	if err != nil {
		return curated.Errorf(Crunch, err)
	}

	put := func(v any) {
		if err == nil {
			err = binary.Write(bw, binary.BigEndian, v)
		}
	}

	put(magic)
	put(uint16(len(fnt)))
	put(fnt)
	put(uint16(len(ts.maps)))

	for _, tm := range ts.maps {
		if len(tm.Name) > 255 {
			return curated.Errorf(Crunch, fmt.Sprintf("map name too long: %s", tm.Name))
		}

		d := crunched.NewData(tm.Tiles)
		var flags uint8
		if d.Crunch() {
			flags |= flagCrunched
		}
		data := d.Inspect()

		put(uint8(len(tm.Name)))
		put([]byte(tm.Name))
		put(uint16(tm.Width))
		put(uint16(tm.Height))
		put(flags)
		put(uint16(len(data)))
		put(data)
	}

	if err != nil {
		return curated.Errorf(Crunch, err)
	}
	if err := bw.Flush(); err != nil {
		return curated.Errorf(Crunch, err)
	}
	return nil
}

// ReadBinary reads data written by WriteBinary(). The NewTiles and
// Duplicates fields of the returned tile maps are zero.
func ReadBinary(r io.Reader) (*fonts.Font, []*Tilemap, error) {
	var err error

	get := func(v any) {
		if err == nil {
			err = binary.Read(r, binary.BigEndian, v)
		}
	}

	getBytes := func(n int) []byte {
		b := make([]byte, n)
		if err == nil {
			_, err = io.ReadFull(r, b)
		}
		return b
	}

	var m [4]byte
	get(&m)
	if err == nil && m != magic {
		return nil, nil, curated.Errorf(BadData, "not a tileset")
	}

	var n16 uint16
	get(&n16)
	fnt := getBytes(int(n16))
	if err != nil {
		return nil, nil, curated.Errorf(BadData, err)
	}

	font := &fonts.Font{}
	if err := font.UnmarshalBinary(fnt); err != nil {
		return nil, nil, curated.Errorf(BadData, err)
	}

	var count uint16
	get(&count)

	var maps []*Tilemap
	for range int(count) {
		var n8 uint8
		get(&n8)
		name := getBytes(int(n8))

		var width, height uint16
		var flags uint8
		get(&width)
		get(&height)
		get(&flags)
		get(&n16)
		data := getBytes(int(n16))
		if err != nil {
			return nil, nil, curated.Errorf(BadData, err)
		}

		tm := &Tilemap{
			Name:   string(name),
			Width:  int(width),
			Height: int(height),
		}

		size := tm.Width * tm.Height
		if flags&flagCrunched == flagCrunched {
			d, err := crunched.FromCrunched(data, size)
			if err != nil {
				return nil, nil, curated.Errorf(BadData, err)
			}
			tm.Tiles = d.Bytes()
		} else {
			if len(data) != size {
				return nil, nil, curated.Errorf(BadData, fmt.Sprintf("map %s is the wrong size", tm.Name))
			}
			tm.Tiles = data
		}

		for _, t := range tm.Tiles {
			if int(t) >= len(font.Glyphs) {
				return nil, nil, curated.Errorf(BadData, fmt.Sprintf("map %s uses a missing tile", tm.Name))
			}
		}

		maps = append(maps, tm)
	}

	if err != nil {
		return nil, nil, curated.Errorf(BadData, err)
	}

	return font, maps, nil
}
