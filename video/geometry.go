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

package video

import (
	"fmt"
	"math"

	"github.com/jetsetilly/tiletv/curated"
	"github.com/jetsetilly/tiletv/hardware/television/specification"
)

// Layout is the requested shape of the display. It is resolved into a
// Geometry by NewGeometry().
type Layout struct {
	Spec specification.Spec
	Mode Mode

	// size of the screen buffer in tiles
	Columns int
	Rows    int

	// number of glyphs in the ROM font (128 or 256) and the number of bitmap
	// lines in each glyph
	FontChars  int
	FontHeight int

	// number of scanlines for each row of tiles. lines beyond the font
	// height are blank. zero means the font height, doubled if DoubleLines
	// is set
	CharHeight int

	// number of RAM tiles. only used by modes that support RAM tiles
	RAMTiles int

	// show each line of the font twice
	DoubleLines bool

	// vertical fine scroll
	VScroll bool

	// dynamic position controls
	HPosOffset bool
	VPosOffset bool

	// pixel order and the bit in the video port that carries the pixel
	LittleEndian bool
	VideoBit     uint8

	// fixed position trims. HPosOrigin is in cycles and VPosOrigin is in
	// scanlines
	HPosOrigin int
	VPosOrigin int

	// copy controls only at the start of the active window. without this
	// controls take effect on the next interrupt
	LatchAtVBlank bool
}

// Geometry is the resolved display geometry. It is immutable once created.
type Geometry struct {
	Layout

	// ICR1 value and the OCR1A values for the two sync pulse widths
	Top   uint16
	HSync uint16
	VSync uint16

	// the scanline at which the vertical sync period ends
	VSyncEnd int

	// number of scanlines rendered by the kernel, including the blank
	// line at the end of the window
	ScreenHeight int

	// earliest cycle after the start of the scanline at which picture
	// information can be shown
	OutputStart int
}

// Sentinel errors.
const (
	BadColumns      = "geometry: %d columns not possible in mode %s"
	BadRows         = "geometry: %d rows not possible"
	BadFontChars    = "geometry: mode %s cannot use a %d glyph font"
	BadFontHeight   = "geometry: font height of %d not possible"
	BadCharHeight   = "geometry: character height of %d not possible with a font height of %d in mode %s"
	BadDoubleLines  = "geometry: double lines not possible in mode %s"
	BadRAMTiles     = "geometry: %d RAM tiles not possible in mode %s"
	BadVideoBit     = "geometry: %s output requires video on bit %d of the port"
	BadActiveWindow = "geometry: active window (lines %d to %d) does not fit in %s frame"
	OverBudget      = "geometry: line needs %d cycles but %s scanline has %d"
)

// the number of cycles the kernels spend between the start of the
// interrupt and the first pixel that are not absorbed by the output delay.
// and the cycles after the last pixel. used only for the budget estimate
const (
	estimateLead = 32
	estimateTail = 48
)

// NewGeometry validates the layout and resolves it into a Geometry.
func NewGeometry(l Layout) (*Geometry, error) {
	if l.CharHeight == 0 {
		l.CharHeight = l.FontHeight
		if l.DoubleLines {
			l.CharHeight <<= 1
		}
	}

	g := &Geometry{
		Layout:      l,
		Top:         uint16(l.Spec.CyclesScanline()),
		HSync:       uint16(specification.CyclesHSync()),
		VSync:       uint16(specification.CyclesVSync()),
		VSyncEnd:    l.Spec.LinesVSync,
		OutputStart: l.Spec.CyclesOutputStart(),
	}

	minColumns := 1
	if l.Mode.HScroll() {
		minColumns = 2
	}
	if l.Columns < minColumns || l.Columns > 255 {
		return nil, curated.Errorf(BadColumns, l.Columns, l.Mode)
	}
	if l.Rows < 1 || l.Rows*l.Columns > 0xffff {
		return nil, curated.Errorf(BadRows, l.Rows)
	}
	if l.FontHeight < 1 || l.FontHeight > 16 {
		return nil, curated.Errorf(BadFontHeight, l.FontHeight)
	}

	switch l.Mode {
	case SixPixelTile:
		if l.FontChars != 128 && l.FontChars != 256 {
			return nil, curated.Errorf(BadFontChars, l.Mode, l.FontChars)
		}
		lines := l.FontHeight
		if l.DoubleLines {
			lines <<= 1
		}
		if l.CharHeight < lines || l.CharHeight > 255 {
			return nil, curated.Errorf(BadCharHeight, l.CharHeight, l.FontHeight, l.Mode)
		}
	case EightPixelTile:
		if l.FontChars != 256 {
			return nil, curated.Errorf(BadFontChars, l.Mode, l.FontChars)
		}
	case EightPixelTileWithRAM, EightPixelTileWithRAMAndScroll:
		if l.FontChars != 128 {
			return nil, curated.Errorf(BadFontChars, l.Mode, l.FontChars)
		}
		if l.RAMTiles < 1 || l.RAMTiles > 128 {
			return nil, curated.Errorf(BadRAMTiles, l.RAMTiles, l.Mode)
		}
	default:
		return nil, curated.Errorf(UnknownMode, l.Mode)
	}

	if l.Mode != SixPixelTile {
		if l.DoubleLines {
			return nil, curated.Errorf(BadDoubleLines, l.Mode)
		}
		if l.CharHeight != l.FontHeight {
			return nil, curated.Errorf(BadCharHeight, l.CharHeight, l.FontHeight, l.Mode)
		}
	}
	if !l.Mode.RAMTiles() {
		g.RAMTiles = 0
	}

	if l.LittleEndian && l.VideoBit != 0 {
		return nil, curated.Errorf(BadVideoBit, "little-endian", 0)
	}
	if !l.LittleEndian && l.VideoBit != 7 {
		return nil, curated.Errorf(BadVideoBit, "big-endian", 7)
	}

	vs := 0
	if l.VScroll {
		vs = 1
	}
	g.ScreenHeight = 1 + (l.Rows-vs)*g.CharHeight
	if g.ScreenHeight < 2 {
		return nil, curated.Errorf(BadRows, l.Rows)
	}

	start := g.StartRender(0)
	end := g.EndRender(start)
	if start <= g.VSyncEnd || end >= l.Spec.LinesFrame {
		return nil, curated.Errorf(BadActiveWindow, start, end, l.Spec.ID)
	}

	need := int(g.OutputDelay(0)) + estimateLead + g.Columns*g.CyclesPerTile() + estimateTail
	if need > int(g.Top) {
		return nil, curated.Errorf(OverBudget, need, l.Spec.ID, g.Top)
	}

	return g, nil
}

func (g *Geometry) String() string {
	return fmt.Sprintf("%s %s %dx%d (lines %d to %d)", g.Spec.ID, g.Mode, g.Columns, g.Rows,
		g.StartRender(0), g.EndRender(g.StartRender(0)))
}

// StartRender is the scanline on which the mode setup is performed. The
// kernel renders from the following scanline. The result is clamped so that
// the active window always fits between the end of vertical sync and the
// end of the frame.
func (g *Geometry) StartRender(vpos int8) int {
	mid := g.Spec.LineMid()
	start := mid - (g.ScreenHeight*(g.Spec.LinesDisplay/max(1, g.ScreenHeight)))/2 + g.Spec.VerticalBias + g.VPosOrigin
	if !g.VPosOffset {
		return start
	}
	start += int(vpos)
	return min(max(start, g.VSyncEnd+1), g.Spec.LinesFrame-g.ScreenHeight-2)
}

// EndRender is the scanline at which the kernel hands back to the inactive
// line routine.
func (g *Geometry) EndRender(start int) int {
	return start + g.ScreenHeight + 1
}

// OutputDelay is the value used by the kernels to place the first pixel.
// The value is clamped to the range of a byte.
func (g *Geometry) OutputDelay(hpos int8) uint8 {
	d := g.OutputStart + g.HPosOrigin
	if g.HPosOffset {
		d += int(hpos)
	}
	return uint8(min(max(d, 0), 255))
}

// DelayRange is the range of output delay for which the kernel is cycle
// exact. entry is the latest cycle after the start of the scanline at which
// the interrupt can reach the kernel and exit the number of cycles from the
// end of the scanline handler to the return from the interrupt.
//
// At the lowest delay the delay loop still absorbs the latest entry at the
// largest scroll, and the first pixel is after the end of the sync pulse. At
// the highest delay the interrupt returns before the next scanline begins.
func (g *Geometry) DelayRange(kt KernelTiming, entry int, exit int) (int, int) {
	scroll := 7 * kt.ScrollCost
	lo := max(entry+kt.Sample+scroll, int(g.HSync)+1+scroll-kt.Lead, 0)
	hi := min(int(g.Top)+1-kt.Length-PostKernelCycles-exit, 0xff)
	return lo, hi
}

// HPosRange is the range of the dynamic horizontal position offset that
// keeps the output delay within DelayRange(). Zero is always in the range.
func (g *Geometry) HPosRange(kt KernelTiming, entry int, exit int) (int8, int8) {
	lo, hi := g.DelayRange(kt, entry, exit)
	base := g.OutputStart + g.HPosOrigin
	return int8(min(max(lo-base, math.MinInt8), 0)), int8(max(min(hi-base, math.MaxInt8), 0))
}

// CyclesPerTile is the number of cycles taken to output one tile.
func (g *Geometry) CyclesPerTile() int {
	if g.Mode == SixPixelTile {
		if g.FontChars == 256 {
			return 16
		}
		return 17
	}
	return 32
}

// PixelsPerTile is the number of pixels in one tile.
func (g *Geometry) PixelsPerTile() int {
	if g.Mode == SixPixelTile {
		return 6
	}
	return 8
}

// FontPages is the number of 256 byte pages required by the ROM font.
//
// A 256 glyph font stores each line of the glyphs in its own page: byte
// line*256+glyph. A 128 glyph font stores two lines per page: byte
// (line>>1)*256 + (line&1)*128 + glyph.
func (g *Geometry) FontPages() int {
	if g.FontChars == 256 {
		return g.FontHeight
	}
	return (g.FontHeight + 1) / 2
}

// RAMTilePages is the number of 256 byte pages required by the RAM tiles.
// RAM tiles use the 128 glyph layout.
func (g *Geometry) RAMTilePages() int {
	if g.RAMTiles == 0 {
		return 0
	}
	return (g.FontHeight + 1) / 2
}

// ScreenBytes is the size of the screen buffer.
func (g *Geometry) ScreenBytes() int {
	return g.Columns * g.Rows
}

// PixelMask returns the value of the horizontal scroll mask for the first
// tile of the line. The first h pixels of the tile are hidden.
func (g *Geometry) PixelMask(h uint8) uint8 {
	h &= 0x07
	if g.LittleEndian {
		return 0xff << h
	}
	return 0xff >> h
}
