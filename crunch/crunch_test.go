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

package crunch_test

import (
	"bytes"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jetsetilly/tiletv/crunch"
	"github.com/jetsetilly/tiletv/test"
	"golang.org/x/image/bmp"
)

// a 24x16 image with a white square in the second tile of the first row and
// a repeat of it in the third tile of the second row
func squares() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, 24, 16))
	for y := range 16 {
		for x := range 24 {
			img.Set(x, y, color.Black)
		}
	}
	for y := 2; y < 6; y++ {
		for x := 2; x < 6; x++ {
			img.Set(8+x, y, color.White)
			img.Set(16+x, 8+y, color.White)
		}
	}
	return img
}

func TestLuminance(t *testing.T) {
	test.ExpectEquality(t, crunch.Luminance(color.Black, crunch.Gamma), 0.0)
	test.ExpectApproximate(t, crunch.Luminance(color.White, crunch.Gamma), 1.0, 0.001)
	test.ExpectApproximate(t, crunch.Luminance(color.White, crunch.Linear), 1.0, 0.001)
	test.ExpectApproximate(t, crunch.Luminance(color.White, crunch.Identity), 1.0, 0.001)

	// green is brighter than blue in both luminance mappings
	green := color.NRGBA{G: 0xff, A: 0xff}
	blue := color.NRGBA{B: 0xff, A: 0xff}
	test.ExpectSuccess(t, crunch.Luminance(green, crunch.Gamma) > crunch.Luminance(blue, crunch.Gamma))
	test.ExpectSuccess(t, crunch.Luminance(green, crunch.Linear) > crunch.Luminance(blue, crunch.Linear))
	test.ExpectApproximate(t, crunch.Luminance(green, crunch.Identity), crunch.Luminance(blue, crunch.Identity), 0.001)

	// grey is brighter than green of the same level
	grey := color.Gray{Y: 0x80}
	test.ExpectSuccess(t, crunch.Luminance(grey, crunch.Gamma) > crunch.Luminance(color.NRGBA{G: 0x80, A: 0xff}, crunch.Gamma))
}

func TestDedupe(t *testing.T) {
	ts, err := crunch.NewTileset(crunch.Options{Dither: crunch.Threshold})
	test.DemandSuccess(t, err)

	tm, err := ts.Add("squares", squares())
	test.DemandSuccess(t, err)

	test.ExpectEquality(t, tm.Width, 3)
	test.ExpectEquality(t, tm.Height, 2)

	// blank tile zero and one square
	test.ExpectEquality(t, ts.Len(), 2)
	test.ExpectEquality(t, tm.NewTiles, 1)
	test.ExpectEquality(t, tm.Duplicates, 5)

	expected := []uint8{0, 1, 0, 0, 0, 1}
	for i, v := range expected {
		test.ExpectEquality(t, tm.Tiles[i], v, i)
	}

	f := ts.Font()
	test.ExpectEquality(t, f.Height, 8)
	g, err := f.Glyph(1)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, g[0], uint8(0x00))
	test.ExpectEquality(t, g[2], uint8(0x3c))
	test.ExpectEquality(t, g[5], uint8(0x3c))
	test.ExpectEquality(t, g[6], uint8(0x00))
}

func TestPermitDupes(t *testing.T) {
	ts, err := crunch.NewTileset(crunch.Options{Dither: crunch.Threshold, PermitDupes: true})
	test.DemandSuccess(t, err)

	tm, err := ts.Add("squares", squares())
	test.DemandSuccess(t, err)

	test.ExpectEquality(t, ts.Len(), 6)
	test.ExpectEquality(t, tm.NewTiles, 6)
	for i := range tm.Tiles {
		test.ExpectEquality(t, tm.Tiles[i], uint8(i))
	}
}

func TestTooManyTiles(t *testing.T) {
	ts, err := crunch.NewTileset(crunch.Options{Dither: crunch.Threshold, MaxTiles: 1})
	test.DemandSuccess(t, err)

	_, err = ts.Add("squares", squares())
	test.ExpectSuccess(t, err != nil && strings.Contains(err.Error(), "more than 1 tiles"))

	_, err = crunch.NewTileset(crunch.Options{MaxTiles: 257})
	test.ExpectFailure(t, err)
}

func TestBadImage(t *testing.T) {
	ts, err := crunch.NewTileset(crunch.Options{})
	test.DemandSuccess(t, err)

	_, err = ts.Add("small", image.NewGray(image.Rect(0, 0, 4, 8)))
	test.ExpectFailure(t, err)
}

func TestPadding(t *testing.T) {
	ts, err := crunch.NewTileset(crunch.Options{Dither: crunch.Threshold, TileHeight: 6})
	test.DemandSuccess(t, err)

	img := image.NewGray(image.Rect(0, 0, 10, 7))
	for i := range img.Pix {
		img.Pix[i] = 0xff
	}

	tm, err := ts.Add("padded", img)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, tm.Width, 2)
	test.ExpectEquality(t, tm.Height, 2)

	rc := ts.Reconstruct(tm)
	test.ExpectEquality(t, rc.Bounds().Dx(), 16)
	test.ExpectEquality(t, rc.Bounds().Dy(), 12)
	test.ExpectEquality(t, rc.GrayAt(9, 6).Y, uint8(0xff))
	test.ExpectEquality(t, rc.GrayAt(10, 6).Y, uint8(0x00))
	test.ExpectEquality(t, rc.GrayAt(9, 7).Y, uint8(0x00))
}

func TestDither(t *testing.T) {
	// a flat mid-grey image should light about half the pixels with either
	// dithering method and none with plain thresholding just below half
	img := image.NewGray(image.Rect(0, 0, 16, 16))
	for i := range img.Pix {
		img.Pix[i] = 0x7f
	}

	lit := func(d crunch.Dither) int {
		ts, err := crunch.NewTileset(crunch.Options{Dither: d, Mapping: crunch.Identity, PermitDupes: true})
		test.DemandSuccess(t, err)
		tm, err := ts.Add("grey", img)
		test.DemandSuccess(t, err)
		rc := ts.Reconstruct(tm)
		var n int
		for _, p := range rc.Pix {
			if p != 0 {
				n++
			}
		}
		return n
	}

	test.ExpectApproximate(t, lit(crunch.FloydSteinberg), 128, 0.1)
	test.ExpectEquality(t, lit(crunch.Ordered), 128)
	test.ExpectEquality(t, lit(crunch.Threshold), 0)
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	fn := filepath.Join(dir, "my-tiles.bmp")

	f, err := os.Create(fn)
	test.DemandSuccess(t, err)
	test.DemandSuccess(t, bmp.Encode(f, squares()))
	test.DemandSuccess(t, f.Close())

	ts, err := crunch.NewTileset(crunch.Options{})
	test.DemandSuccess(t, err)

	tm, err := ts.Load(fn)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, tm.Name, "my_tiles")
	test.ExpectEquality(t, ts.Len(), 2)

	_, err = ts.Load(filepath.Join(dir, "missing.bmp"))
	test.ExpectFailure(t, err)
}

func TestIdentifier(t *testing.T) {
	test.ExpectEquality(t, crunch.Identifier("/a/b/invaders.bmp"), "invaders")
	test.ExpectEquality(t, crunch.Identifier("2x 2.bmp"), "_x_2")
	test.ExpectEquality(t, crunch.Identifier(".bmp"), "_")
}

func TestBinary(t *testing.T) {
	ts, err := crunch.NewTileset(crunch.Options{Dither: crunch.Threshold})
	test.DemandSuccess(t, err)

	// a large empty image so that the tile map is crunched
	big := image.NewGray(image.Rect(0, 0, 320, 200))
	_, err = ts.Add("empty", big)
	test.DemandSuccess(t, err)
	_, err = ts.Add("squares", squares())
	test.DemandSuccess(t, err)

	var b bytes.Buffer
	test.DemandSuccess(t, ts.WriteBinary(&b))

	fnt, maps, err := crunch.ReadBinary(&b)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, len(fnt.Glyphs), 2)
	test.DemandEquality(t, len(maps), 2)

	for i, tm := range ts.Maps() {
		test.ExpectEquality(t, maps[i].Name, tm.Name)
		test.ExpectEquality(t, maps[i].Width, tm.Width)
		test.ExpectEquality(t, maps[i].Height, tm.Height)
		test.ExpectSuccess(t, bytes.Equal(maps[i].Tiles, tm.Tiles))
	}

	_, _, err = crunch.ReadBinary(strings.NewReader("TTVX"))
	test.ExpectFailure(t, err)
	_, _, err = crunch.ReadBinary(strings.NewReader("TTVT\x00"))
	test.ExpectFailure(t, err)
}

func TestGoSource(t *testing.T) {
	ts, err := crunch.NewTileset(crunch.Options{Dither: crunch.Threshold})
	test.DemandSuccess(t, err)
	_, err = ts.Add("squares", squares())
	test.DemandSuccess(t, err)

	var b bytes.Buffer
	test.DemandSuccess(t, ts.WriteGo(&b, "tiles", "demo"))

	src := b.String()
	test.ExpectSuccess(t, strings.HasPrefix(src, "// Code generated"))
	test.ExpectSuccess(t, strings.Contains(src, "package tiles"))
	test.ExpectSuccess(t, strings.Contains(src, "squaresWidth  = 3"))
	test.ExpectSuccess(t, strings.Contains(src, "var demoFont = &fonts.Font{"))
	test.ExpectSuccess(t, strings.Contains(src, "0x3c"))
}

func TestParseOptions(t *testing.T) {
	m, err := crunch.ParseMapping("LINEAR")
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, m, crunch.Linear)
	_, err = crunch.ParseMapping("sepia")
	test.ExpectFailure(t, err)

	d, err := crunch.ParseDither("fs")
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, d, crunch.FloydSteinberg)
	d, err = crunch.ParseDither("Ordered")
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, d, crunch.Ordered)
	_, err = crunch.ParseDither("random")
	test.ExpectFailure(t, err)
}
