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
	"bytes"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/jetsetilly/tiletv/curated"
	"github.com/jetsetilly/tiletv/fonts"
	"github.com/jetsetilly/tiletv/logger"
	"golang.org/x/image/bmp"
)

// TileWidth is the width of every tile in pixels.
const TileWidth = 8

// the largest image accepted in either dimension
const maxImageSize = 4096

// Sentinel errors.
const (
	Crunch       = "crunch: %v"
	BadImage     = "crunch: image is %dx%d. it must be between %d and %d pixels in each dimension"
	BadOptions   = "crunch: %s"
	TooManyTiles = "crunch: more than %d tiles needed"
)

// Options for a Tileset.
type Options struct {
	Mapping Mapping
	Dither  Dither

	// tile height in lines. a value of zero means eight lines
	TileHeight int

	// maximum number of tiles in the tileset. a value of zero means 256
	MaxTiles int

	// every tile position in a tile map gets its own tile
	PermitDupes bool
}

// Tilemap records the tile used at each position of an image.
type Tilemap struct {
	Name string

	// in tiles
	Width  int
	Height int

	// row-major
	Tiles []uint8

	// number of tiles added to the tileset and the number of positions
	// that matched an existing tile
	NewTiles   int
	Duplicates int
}

// Tileset collects the tiles from one or more images.
type Tileset struct {
	opts  Options
	tiles [][]uint8
	maps  []*Tilemap
}

// NewTileset is the preferred method of initialisation for the Tileset type.
func NewTileset(opts Options) (*Tileset, error) {
	if opts.TileHeight == 0 {
		opts.TileHeight = 8
	}
	if opts.MaxTiles == 0 {
		opts.MaxTiles = 256
	}
	if opts.TileHeight < 1 || opts.TileHeight > 255 {
		return nil, curated.Errorf(BadOptions, fmt.Sprintf("tile height of %d is not allowed", opts.TileHeight))
	}
	if opts.MaxTiles < 1 || opts.MaxTiles > 256 {
		return nil, curated.Errorf(BadOptions, fmt.Sprintf("maximum tiles must be between 1 and 256 (not %d)", opts.MaxTiles))
	}

	ts := &Tileset{opts: opts}

	// tile zero is kept blank
	if !opts.PermitDupes {
		ts.tiles = append(ts.tiles, make([]uint8, opts.TileHeight))
	}

	return ts, nil
}

// Options returns the options used to create the tileset.
func (ts *Tileset) Options() Options {
	return ts.opts
}

// Len returns the number of tiles in the tileset.
func (ts *Tileset) Len() int {
	return len(ts.tiles)
}

// Maps returns the tile maps of every image added to the tileset.
func (ts *Tileset) Maps() []*Tilemap {
	return ts.maps
}

// Font returns the tileset as a font. The glyphs are copies of the tiles.
func (ts *Tileset) Font() *fonts.Font {
	f := fonts.NewFont(ts.opts.TileHeight, len(ts.tiles))
	for i, t := range ts.tiles {
		copy(f.Glyphs[i], t)
	}
	return f
}

// Add an image to the tileset. The returned tile map is also added to the
// list returned by Maps().
//
// Images that are not a multiple of the tile size are extended with black
// pixels on the right and bottom.
func (ts *Tileset) Add(name string, img image.Image) (*Tilemap, error) {
	b := img.Bounds()
	if b.Dx() < TileWidth || b.Dy() < ts.opts.TileHeight || b.Dx() > maxImageSize || b.Dy() > maxImageSize {
		return nil, curated.Errorf(BadImage, b.Dx(), b.Dy(), TileWidth, maxImageSize)
	}

	lm := newLumMap(img, ts.opts.Mapping)
	mn, avg, mx := lm.stats()
	logger.Logf(logger.Allow, "crunch", "%s: %dx%d: luminance min %.03f avg %.03f max %.03f (%s)",
		name, lm.width, lm.height, mn, avg, mx, ts.opts.Mapping)

	if ts.opts.Dither == FloydSteinberg {
		lm.diffuse()
	}

	th := ts.opts.TileHeight
	tm := &Tilemap{
		Name:   name,
		Width:  (lm.width + TileWidth - 1) / TileWidth,
		Height: (lm.height + th - 1) / th,
	}
	tm.Tiles = make([]uint8, tm.Width*tm.Height)

	// one byte per eight pixels. bit 7 is the leftmost pixel
	mono := make([]uint8, tm.Width*tm.Height*th)
	for y := range lm.height {
		for x := range lm.width {
			if set(lm.l[y*lm.width+x], x, y, ts.opts.Dither) {
				mono[y*tm.Width+x/8] |= 0x80 >> (x & 0x07)
			}
		}
	}

	for ty := range tm.Height {
		for tx := range tm.Width {
			tile := make([]uint8, th)
			for l := range th {
				tile[l] = mono[(ty*th+l)*tm.Width+tx]
			}

			idx := ts.find(tile)
			if idx >= 0 {
				tm.Duplicates++
			}
			if idx < 0 || ts.opts.PermitDupes {
				if len(ts.tiles) >= ts.opts.MaxTiles {
					return nil, curated.Errorf(TooManyTiles, ts.opts.MaxTiles)
				}
				idx = len(ts.tiles)
				ts.tiles = append(ts.tiles, tile)
				tm.NewTiles++
			}

			tm.Tiles[ty*tm.Width+tx] = uint8(idx)
		}
	}

	logger.Logf(logger.Allow, "crunch", "%s: added %d new tiles with %d duplicates (total %d of %d)",
		name, tm.NewTiles, tm.Duplicates, len(ts.tiles), ts.opts.MaxTiles)

	ts.maps = append(ts.maps, tm)
	return tm, nil
}

func (ts *Tileset) find(tile []uint8) int {
	for i, t := range ts.tiles {
		if bytes.Equal(t, tile) {
			return i
		}
	}
	return -1
}

// Load a BMP file and add it to the tileset. The name of the tile map is
// taken from the filename.
func (ts *Tileset) Load(filename string) (*Tilemap, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, curated.Errorf(Crunch, err)
	}
	defer f.Close()

	img, err := bmp.Decode(f)
	if err != nil {
		return nil, curated.Errorf(Crunch, fmt.Errorf("%s: %w", filename, err))
	}

	return ts.Add(Identifier(filename), img)
}

// Identifier returns a Go identifier based on the filename. The directory
// and extension are removed and any character that cannot appear in an
// identifier is replaced with an underscore.
func Identifier(filename string) string {
	n := filepath.Base(filename)
	n = strings.TrimSuffix(n, filepath.Ext(n))

	var s strings.Builder
	for i, r := range n {
		if r == '_' || unicode.IsLetter(r) || (i > 0 && unicode.IsDigit(r)) {
			s.WriteRune(r)
		} else {
			s.WriteRune('_')
		}
	}

	if s.Len() == 0 {
		return "_"
	}
	return s.String()
}

// Reconstruct the image from the tileset and tile map. Lit pixels are
// white.
func (ts *Tileset) Reconstruct(tm *Tilemap) *image.Gray {
	th := ts.opts.TileHeight
	img := image.NewGray(image.Rect(0, 0, tm.Width*TileWidth, tm.Height*th))
	for ty := range tm.Height {
		for tx := range tm.Width {
			t := ts.tiles[tm.Tiles[ty*tm.Width+tx]]
			for l, b := range t {
				for x := range TileWidth {
					if b&(0x80>>x) != 0 {
						img.Pix[(ty*th+l)*img.Stride+tx*TileWidth+x] = 0xff
					}
				}
			}
		}
	}
	return img
}
