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

package video_test

import (
	"fmt"
	"math"
	"testing"

	"github.com/jetsetilly/tiletv/test"
	"github.com/jetsetilly/tiletv/video"
)

func fontPattern(g, l int) uint8 {
	return uint8(g*37 + l*11 + 1)
}

func ramPattern(g, l int) uint8 {
	return ^uint8(g*5 + l*71)
}

// fill the screen and tiles with patterns. returns a function giving the
// bitmap byte for a column of the line k lines into the active window
func prepare(t *testing.T, h *harness) func(col int, k int) uint8 {
	t.Helper()

	h.font(t, fontPattern)
	if h.g.RAMTiles > 0 {
		h.ramTiles(ramPattern)
	}

	tile := func(r, c int) uint8 {
		v := uint8(r*31 + c*17 + 3)
		if h.g.FontChars == 128 && !h.g.Mode.RAMTiles() {
			v &= 0x7f
		}
		return v
	}

	for r := range h.g.Rows {
		for c := range h.g.Columns {
			h.Write(h.screen+uint16(r*h.g.Columns+c), tile(r, c))
		}
	}

	return func(col int, k int) uint8 {
		row := k / h.g.CharHeight
		line := k % h.g.CharHeight
		if h.g.DoubleLines {
			line >>= 1
		}
		v := tile(row, col)
		if h.g.Mode.RAMTiles() {
			if v&0x80 == 0x80 {
				return ramPattern(int(v&0x7f), line)
			}
			return fontPattern(int(v), line)
		}
		return fontPattern(int(v), line)
	}
}

// the pixel at position p of the bitmap byte
func pixel(g *video.Geometry, b uint8, p int) bool {
	if g.LittleEndian {
		return (b>>p)&0x01 == 0x01
	}
	return (b<<p)&0x80 == 0x80
}

// check the writes of one line against the expected bitmaps. returns the
// cycle of the first pixel relative to the start of the period
func checkLine(t *testing.T, h *harness, bitmap func(col int) uint8, tag string) int64 {
	t.Helper()

	k := h.vid.Kernel()
	sched := k.Schedule()
	ppt := len(sched)

	n := k.Slots() * ppt
	test.DemandEquality(t, len(h.writes), n+1, tag)

	for i, w := range h.writes[:n] {
		col := i / ppt
		p := i % ppt
		exp := pixel(h.g, bitmap(col), p)
		if !test.ExpectEquality(t, w.data&(1<<h.g.VideoBit) != 0, exp, tag, col, p) {
			return 0
		}

		next := h.writes[i+1].cycle
		if !test.ExpectEquality(t, int(next-w.cycle), sched[p], tag, col, p) {
			return 0
		}
	}

	// line is black after the last pixel
	test.ExpectEquality(t, h.writes[n].data&(1<<h.g.VideoBit), 0, tag)

	return h.writes[0].cycle - h.p0
}

func TestKernelOutput(t *testing.T) {
	var layouts []video.Layout
	for _, m := range []video.Mode{video.SixPixelTile, video.EightPixelTile, video.EightPixelTileWithRAM} {
		layouts = append(layouts, layout(m))
	}

	six := layout(video.SixPixelTile)
	six.FontChars = 256
	layouts = append(layouts, six)

	le := layout(video.EightPixelTileWithRAM)
	le.LittleEndian = true
	le.VideoBit = 0
	layouts = append(layouts, le)

	for _, l := range layouts {
		h := newHarness(t, l)
		bitmap := prepare(t, h)
		h.untilActive(t)

		var first int64
		for k := range 20 {
			jitter := k % 4
			h.tick(t, jitter)

			tag := fmt.Sprintf("%s/%d/%v line %d", l.Mode, l.FontChars, l.LittleEndian, k)
			f := checkLine(t, h, func(col int) uint8 { return bitmap(col, k) }, tag)

			// the first pixel is not affected by jitter
			if k == 0 {
				first = f
			} else {
				test.ExpectEquality(t, f, first, tag)
			}
		}
	}
}

func TestKernelHScroll(t *testing.T) {
	for _, le := range []bool{false, true} {
		l := layout(video.EightPixelTileWithRAMAndScroll)
		if le {
			l.LittleEndian = true
			l.VideoBit = 0
		}
		h := newHarness(t, l)
		bitmap := prepare(t, h)

		var first int64
		for s := range 8 {
			h.vid.SetHScroll(uint8(s))
			h.untilActive(t)

			mask := h.g.PixelMask(uint8(s))
			cols := h.g.Columns

			for jitter := range 4 {
				h.tick(t, jitter)
				k := jitter

				tag := fmt.Sprintf("le=%v h=%d line %d", le, s, k)
				f := checkLine(t, h, func(col int) uint8 {
					b := bitmap(col, k)
					switch col {
					case 0:
						return b & mask
					case cols - 1:
						return b &^ mask
					}
					return b
				}, tag)

				// the line starts four cycles earlier for each pixel of scroll
				if s == 0 && jitter == 0 {
					first = f
				} else {
					test.ExpectEquality(t, f, first-int64(4*s), tag)
				}
			}
		}
	}
}

func TestKernelBlankLines(t *testing.T) {
	l := layout(video.SixPixelTile)
	l.CharHeight = 10
	h := newHarness(t, l)
	bitmap := prepare(t, h)
	h.untilActive(t)

	for k := range 20 {
		h.tick(t, 0)
		if k%10 >= 8 {
			test.ExpectEquality(t, len(h.writes), 0, k)
			continue
		}
		checkLine(t, h, func(col int) uint8 { return bitmap(col, k) }, fmt.Sprintf("line %d", k))
	}
}

func TestKernelDoubleLines(t *testing.T) {
	l := layout(video.SixPixelTile)
	l.DoubleLines = true
	l.Rows = 11
	h := newHarness(t, l)
	test.ExpectEquality(t, h.g.CharHeight, 16)

	bitmap := prepare(t, h)
	h.untilActive(t)

	for k := range 32 {
		h.tick(t, 0)
		checkLine(t, h, func(col int) uint8 { return bitmap(col, k) }, fmt.Sprintf("line %d", k))
	}
}

func TestKernelHPos(t *testing.T) {
	modes := []video.Mode{video.SixPixelTile, video.EightPixelTile, video.EightPixelTileWithRAM, video.EightPixelTileWithRAMAndScroll}

	for _, m := range modes {
		l := layout(m)
		l.HPosOffset = true
		h := newHarness(t, l)
		h.vid.LimitHPos(latency+3, 0)
		prepare(t, h)

		lo, hi := h.vid.HPosRange()
		test.ExpectSuccess(t, lo < 0, m)
		test.ExpectSuccess(t, hi > 0, m)

		// values outside the range are limited
		h.vid.SetHPos(math.MinInt8)
		test.ExpectEquality(t, h.vid.Controls().HPosOffset, lo, m)
		h.vid.SetHPos(math.MaxInt8)
		test.ExpectEquality(t, h.vid.Controls().HPosOffset, hi, m)

		scroll := 1
		if m.HScroll() {
			scroll = 8
		}

		k := h.vid.Kernel()
		sched := k.Schedule()
		n := k.Slots() * len(sched)

		first := int64(-1)

		for _, p := range []int8{0, lo, lo + 1, -1, 1, hi - 1, hi} {
			h.vid.SetHPos(p)
			for s := range scroll {
				h.vid.SetHScroll(uint8(s))
				for jitter := range 4 {
					if h.vid.State().Handler == video.Inactive {
						h.untilActive(t)
					}
					h.tick(t, jitter)

					tag := fmt.Sprintf("%s hpos=%d h=%d jitter=%d", m, p, s, jitter)
					test.DemandEquality(t, len(h.writes), n+1, tag)
					for i := range n {
						d := int(h.writes[i+1].cycle - h.writes[i].cycle)
						test.DemandEquality(t, d, sched[i%len(sched)], tag, i)
					}

					f := h.writes[0].cycle - h.p0
					if first == -1 {
						first = f
					}

					// the first pixel follows the position and scroll exactly,
					// is after the sync pulse and the line ends in time
					test.ExpectEquality(t, f, first+int64(p)-int64(4*s), tag)
					test.ExpectSuccess(t, f > int64(h.g.HSync), tag)
					test.ExpectSuccess(t, h.mc.Cycles-h.p0 <= int64(h.g.Top)+1, tag)
				}
			}
		}
	}
}
