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

// Package timing is the timing validation pass. It runs the video generator
// for one frame for every possible interrupt entry jitter and, for kernels
// with horizontal scroll, every scroll value. The video and sync lines are
// recorded and every scanline of the active window is checked:
//
//   - every pixel is held for the number of cycles in the kernel's schedule
//   - the line is driven low after the last pixel
//   - the first pixel is at the same cycle for every jitter value, and moves
//     by four cycles for each pixel of horizontal scroll
//   - the first pixel is after the end of the sync pulse
//   - the above hold at both extremes of the dynamic horizontal position
//   - every interrupt returns before the start of the next scanline
//
// A geometry that fails validation cannot be used on real hardware.
package timing

import (
	"fmt"
	"strings"

	"github.com/jetsetilly/tiletv/curated"
	"github.com/jetsetilly/tiletv/fonts"
	"github.com/jetsetilly/tiletv/hardware"
	"github.com/jetsetilly/tiletv/hardware/chips"
	"github.com/jetsetilly/tiletv/hardware/clocks"
	"github.com/jetsetilly/tiletv/hardware/memory"
	"github.com/jetsetilly/tiletv/hardware/television/signal"
	"github.com/jetsetilly/tiletv/logger"
	"github.com/jetsetilly/tiletv/video"
)

// Sentinel errors.
const (
	PixelCount   = "timing: %s: line %d has %d pixels, expected %d"
	PixelSpacing = "timing: %s: line %d pixel %d held for %d cycles, expected %d"
	NotBlack     = "timing: %s: line %d does not end black"
	FirstPixel   = "timing: %s: first pixel at cycle %d, expected %d"
	SyncOverlap  = "timing: first pixel at cycle %d is inside the sync pulse (ends at %d)"
	Deadline     = "timing: %s: interrupt needs %d cycles, scanline has %d"
	NoActiveLine = "timing: %s: no active lines"
	HPosLimit    = "timing: %s: horizontal position limited to %d"
)

// Report is the result of a successful validation.
type Report struct {
	Geom *video.Geometry

	// cycles in one scanline
	Period int64

	// cycle of the first pixel after the start of the scanline, with no
	// horizontal scroll
	FirstPixel int64

	// pixels on each scanline and the hold time of each pixel of a tile
	Pixels   int
	Schedule []int

	// the longest interrupt, measured from the start of the scanline
	WorstCase int64

	// number of simulated scanlines that were checked
	Lines int

	// range of the dynamic horizontal position. both zero if the geometry
	// has no dynamic horizontal position
	HPosMin int8
	HPosMax int8
}

// Slack is the number of cycles left for the main context at the end of the
// longest scanline.
func (r *Report) Slack() int64 {
	return r.Period - r.WorstCase
}

func (r *Report) String() string {
	s := strings.Builder{}
	fmt.Fprintf(&s, "%s\n", r.Geom)
	fmt.Fprintf(&s, "  first pixel: cycle %d (%.2fus)\n", r.FirstPixel, clocks.Microseconds(r.FirstPixel))
	fmt.Fprintf(&s, "  pixels: %d per line, schedule %v\n", r.Pixels, r.Schedule)
	fmt.Fprintf(&s, "  worst case: %d of %d cycles (slack %d)\n", r.WorstCase, r.Period, r.Slack())
	if r.Geom.HPosOffset {
		fmt.Fprintf(&s, "  horizontal position: %d to %d\n", r.HPosMin, r.HPosMax)
	}
	fmt.Fprintf(&s, "  lines checked: %d", r.Lines)
	return s.String()
}

// recorder collects the events written to the output lines
type recorder struct {
	video []signal.Event
}

func (rec *recorder) Signal(ev signal.Event) {
	if ev.Line == signal.Video {
		rec.video = append(rec.video, ev)
	}
}

// Validate the timing of the geometry on the chip. The ints argument gives
// the interrupt latency and the range of jitter to test.
func Validate(chip chips.Chip, geom *video.Geometry, ints hardware.Interrupts) (*Report, error) {
	k, err := video.NewKernel(geom)
	if err != nil {
		return nil, err
	}

	r := &Report{
		Geom:     geom,
		Period:   int64(geom.Top) + 1,
		Pixels:   k.Slots() * len(k.Schedule()),
		Schedule: k.Schedule(),
	}

	scroll := 1
	if geom.Mode.HScroll() {
		scroll = 8
	}

	// the extremes of the dynamic horizontal position are checked as well
	// as the nominal position
	hpos := []int8{0}
	if geom.HPosOffset {
		r.HPosMin, r.HPosMax = geom.HPosRange(k.Timing(), ints.Latency+ints.Jitter, ints.Exit)
		hpos = append(hpos, r.HPosMin, r.HPosMax)
	}

	first := int64(-1)

	for _, p := range hpos {
		for h := range scroll {
			for j := range ints.Jitter + 1 {
				tag := fmt.Sprintf("jitter %d scroll %d hpos %d", j, h, p)

				f, err := r.run(chip, geom, hardware.Interrupts{
					Latency: ints.Latency + j,
					Exit:    ints.Exit,
				}, uint8(h), p, tag)
				if err != nil {
					return nil, err
				}

				if first == -1 {
					first = f
					r.FirstPixel = f
				}

				if exp := first + int64(p) - int64(4*h); f != exp {
					return nil, curated.Errorf(FirstPixel, tag, f, exp)
				}
			}
		}

		if f, end := r.FirstPixel+int64(p)-4*int64(scroll-1), int64(geom.HSync)+1; f < end {
			return nil, curated.Errorf(SyncOverlap, f, end)
		}
	}

	logger.Logf(logger.Allow, "timing", "%s: valid with %d cycles of slack", geom, r.Slack())

	return r, nil
}

// run one frame and check every line. returns the cycle of the first pixel
func (r *Report) run(chip chips.Chip, geom *video.Geometry, ints hardware.Interrupts, h uint8, hpos int8, tag string) (int64, error) {
	m, err := hardware.NewMachine(chip, geom, ints)
	if err != nil {
		return 0, err
	}

	if err := pattern(m); err != nil {
		return 0, err
	}
	m.Video.SetHScroll(h)
	m.Video.SetHPos(hpos)
	if c := m.Video.Controls(); c.HPosOffset != hpos {
		return 0, curated.Errorf(HPosLimit, tag, c.HPosOffset)
	}

	rec := &recorder{}
	m.VideoLine.AddListener(rec)

	// the first frame begins with the first interrupt
	if err := m.RunForFrameCount(1); err != nil {
		return 0, err
	}

	if w := m.WorstCase(); w > r.Period {
		return 0, curated.Errorf(Deadline, tag, w, r.Period)
	}
	r.WorstCase = max(r.WorstCase, m.WorstCase())

	k := m.Video.Kernel()
	sched := k.Schedule()
	first := int64(-1)
	lines := 0

	// group the events by scanline
	ev := rec.video
	for len(ev) > 0 {
		line := ev[0].Cycle / r.Period
		n := 0
		for n < len(ev) && ev[n].Cycle/r.Period == line {
			n++
		}

		f, err := checkLine(ev[:n], sched, r.Pixels, int(line), tag)
		if err != nil {
			return 0, err
		}
		f -= line * r.Period

		if first == -1 {
			first = f
		} else if f != first {
			return 0, curated.Errorf(FirstPixel, fmt.Sprintf("%s line %d", tag, line), f, first)
		}

		lines++
		ev = ev[n:]
	}

	if lines == 0 {
		return 0, curated.Errorf(NoActiveLine, tag)
	}
	r.Lines += lines

	return first, nil
}

// check the writes to the video line during one scanline. the final write is
// the one that drives the line low
func checkLine(ev []signal.Event, sched []int, pixels int, line int, tag string) (int64, error) {
	if len(ev) != pixels+1 {
		return 0, curated.Errorf(PixelCount, tag, line, len(ev)-1, pixels)
	}

	for i := range pixels {
		exp := sched[i%len(sched)]
		if d := int(ev[i+1].Cycle - ev[i].Cycle); d != exp {
			return 0, curated.Errorf(PixelSpacing, tag, line, i, d, exp)
		}
	}

	if ev[pixels].Level {
		return 0, curated.Errorf(NotBlack, tag, line)
	}

	return ev[0].Cycle, nil
}

// fill the font, RAM tiles and screen so that every path through the kernel
// is taken. alternate tiles come from RAM
func pattern(m *hardware.Machine) error {
	g := m.Geom

	// the built-in font where the heights agree. otherwise a pattern that
	// sets every bit somewhere in the font
	f := fonts.Builtin()
	if f.Height != g.FontHeight {
		f = fonts.NewFont(g.FontHeight, 128)
		for i, gl := range f.Glyphs {
			for l := range gl {
				gl[l] = uint8(i*13 + l*29)
			}
		}
	}
	if g.FontChars == 256 {
		f = f.Inverse()
	}
	data, err := f.Layout(g.FontChars, g.LittleEndian)
	if err != nil {
		return err
	}
	if _, err := m.LoadFont(data); err != nil {
		return err
	}

	m.Critical(func(mem *memory.Memory) {
		for i := range g.ScreenBytes() {
			v := uint8('A' + i%26)
			if g.RAMTiles > 0 && i&1 == 1 {
				v = 0x80 | uint8(i%g.RAMTiles)
			}
			mem.Write(m.Screen+uint16(i), v)
		}
		for i := range g.RAMTilePages() * 256 {
			mem.Write(m.RAMTiles+uint16(i), uint8(i*7))
		}
	})

	return nil
}
