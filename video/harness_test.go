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
	"testing"

	"github.com/jetsetilly/tiletv/fonts"
	"github.com/jetsetilly/tiletv/hardware/cpu"
	"github.com/jetsetilly/tiletv/hardware/memory"
	"github.com/jetsetilly/tiletv/hardware/memory/bus"
	"github.com/jetsetilly/tiletv/hardware/television/specification"
	"github.com/jetsetilly/tiletv/test"
	"github.com/jetsetilly/tiletv/video"
)

// the interrupt latency used by the harness
const latency = 32

type write struct {
	data  uint8
	cycle int64
}

// harness is the bus, port and timer for a video generator
type harness struct {
	*memory.Memory
	vid *video.Video
	mc  *cpu.CPU
	g   *video.Geometry

	screen uint16
	ram    uint16

	// start of the current period
	p0 int64

	port   uint8
	writes []write

	compare []uint16
}

func (h *harness) ReadSymbol(sym bus.Symbol) uint8 {
	return h.vid.ReadSymbol(sym)
}

func (h *harness) In(reg bus.IO, cycle int64) uint8 {
	if reg == bus.TCNT1L {
		return uint8(cycle - h.p0)
	}
	return h.port
}

func (h *harness) Out(reg bus.IO, data uint8, cycle int64) {
	h.port = data
	h.writes = append(h.writes, write{data: data, cycle: cycle})
}

func (h *harness) SetCompare(v uint16) {
	h.compare = append(h.compare, v)
}

// the layout used by most tests
func layout(m video.Mode) video.Layout {
	l := video.Layout{
		Spec:       specification.SpecNTSC,
		Mode:       m,
		Columns:    22,
		Rows:       22,
		FontChars:  128,
		FontHeight: 8,
		RAMTiles:   128,
		VScroll:    true,
		VideoBit:   7,
		HPosOrigin: -24,
	}
	if m == video.EightPixelTile {
		l.FontChars = 256
	}
	return l
}

func newHarness(t *testing.T, l video.Layout) *harness {
	t.Helper()

	g, err := video.NewGeometry(l)
	test.DemandSuccess(t, err)

	h := &harness{
		Memory: memory.NewMemory(4096, 32768),
		g:      g,
	}
	h.mc = cpu.NewCPU(h)

	h.screen, err = h.Allocate(g.ScreenBytes(), 1)
	test.DemandSuccess(t, err)
	if g.RAMTiles > 0 {
		h.ram, err = h.Allocate(g.RAMTilePages()*256, 256)
		test.DemandSuccess(t, err)
	}

	h.vid, err = video.NewVideo(g, h, h.screen)
	test.DemandSuccess(t, err)
	if h.ram != 0 {
		test.DemandSuccess(t, h.vid.SetRAMTiles(h.ram))
	}

	return h
}

// run one interrupt with the specified entry jitter
func (h *harness) tick(t *testing.T, jitter int) {
	t.Helper()
	h.p0 += int64(h.g.Top) + 1
	h.mc.Cycles = h.p0 + latency + int64(jitter)
	h.writes = h.writes[:0]
	test.DemandSuccess(t, h.vid.Interrupt(h.mc))
}

// run interrupts until the mode setup has been performed. the next
// interrupt will run the kernel for the first line of the active window
func (h *harness) untilActive(t *testing.T) {
	t.Helper()
	for range 2 * h.g.Spec.LinesFrame {
		inactive := h.vid.State().Handler == video.Inactive
		h.tick(t, 0)
		if inactive && h.vid.State().Handler != video.Inactive {
			return
		}
	}
	t.Fatalf("active window never started")
}

// set the font for the harness. glyph g line l has the value f(g, l)
func (h *harness) font(t *testing.T, f func(g, l int) uint8) {
	t.Helper()

	chars := h.g.FontChars
	data := make([]uint8, h.g.FontPages()*256)
	for g := range chars {
		for l := range h.g.FontHeight {
			data[fonts.Offset(chars, g, l)] = f(g, l)
		}
	}
	addr, err := h.Place(data, 256)
	test.DemandSuccess(t, err)
	test.DemandSuccess(t, h.vid.SetFont(addr))
}

// set the RAM tiles. tile g line l has the value f(g, l)
func (h *harness) ramTiles(f func(g, l int) uint8) {
	for g := range h.g.RAMTiles {
		for l := range h.g.FontHeight {
			h.Write(h.ram+uint16(fonts.Offset(128, g, l)), f(g, l))
		}
	}
}
